package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/alexanderramin/reschool/internal/domain"
	"github.com/alexanderramin/reschool/internal/eschool"
)

// SentMessage records a FakeAPI.SendMessage call.
type SentMessage struct {
	ThreadID int64
	Text     string
}

// LoginCall records a FakeAPI.Login call.
type LoginCall struct {
	Username     string
	PasswordHash string
	Device       domain.DevicePayload
}

// FakeAPI is an in-memory eschool.API. Set the response fields before use;
// Errs injects an error for a method by name ("State", "Login", ...).
// Sessions listed in Expired are rejected by every authenticated call.
type FakeAPI struct {
	mu sync.Mutex

	Session      string
	IssueSession string // handed out by a successful Login
	Expired      map[string]bool
	Errs         map[string]error

	StateResp      *domain.State
	ThreadsResp    []domain.Thread
	MessagesResp   map[int64][]domain.Message
	ThreadIDs      map[int64]int64 // interlocutor prsID -> thread id
	GroupsTreeResp []byte
	Groups         []domain.Group
	PeriodsResp    map[int64]*domain.PeriodContainer // by group id
	UnitsResp      map[int64][]domain.DiaryUnit      // by period id
	LessonsResp    map[int64][]domain.DiaryPeriodLesson
	DiaryResp      *domain.PrsDiary
	PupilUnitsResp []domain.PupilUnit
	UsersResp      []domain.UserSearchItem
	TasksResp      []domain.PupilTask
	ProfileResp    *domain.ExtendedProfile

	Calls      []string
	Logins     []LoginCall
	Sent       []SentMessage
	TaskQuery  eschool.TaskQuery
	DiaryRange [2]domain.Millis
}

// NewFakeAPI returns a FakeAPI answering State with testutil.State().
func NewFakeAPI() *FakeAPI {
	return &FakeAPI{
		IssueSession: "fake-session",
		StateResp:    State(),
		Expired:      map[string]bool{},
		Errs:         map[string]error{},
	}
}

// CallCount reports how many times method was called.
func (f *FakeAPI) CallCount(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.Calls {
		if c == method {
			n++
		}
	}
	return n
}

func (f *FakeAPI) enter(method string, authenticated bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, method)
	if err := f.Errs[method]; err != nil {
		return err
	}
	if authenticated && (f.Session == "" || f.Expired[f.Session]) {
		return fmt.Errorf("%w: fake", eschool.ErrNotAuthenticated)
	}
	return nil
}

func (f *FakeAPI) Login(_ context.Context, username, passwordHash string, device domain.DevicePayload) error {
	if err := f.enter("Login", false); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Logins = append(f.Logins, LoginCall{Username: username, PasswordHash: passwordHash, Device: device})
	f.Session = f.IssueSession
	return nil
}

func (f *FakeAPI) State(context.Context) (*domain.State, error) {
	if err := f.enter("State", true); err != nil {
		return nil, err
	}
	return f.StateResp, nil
}

func (f *FakeAPI) Threads(context.Context, bool, int, int) ([]domain.Thread, error) {
	if err := f.enter("Threads", true); err != nil {
		return nil, err
	}
	return f.ThreadsResp, nil
}

func (f *FakeAPI) Messages(_ context.Context, threadID int64, _, _ int) ([]domain.Message, error) {
	if err := f.enter("Messages", true); err != nil {
		return nil, err
	}
	return f.MessagesResp[threadID], nil
}

func (f *FakeAPI) SendMessage(_ context.Context, threadID int64, text string) error {
	if err := f.enter("SendMessage", true); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Sent = append(f.Sent, SentMessage{ThreadID: threadID, Text: text})
	return nil
}

func (f *FakeAPI) SaveThread(_ context.Context, interlocutorID int64) (int64, error) {
	if err := f.enter("SaveThread", true); err != nil {
		return 0, err
	}
	return f.ThreadIDs[interlocutorID], nil
}

func (f *FakeAPI) GroupsTree(context.Context) ([]byte, error) {
	if err := f.enter("GroupsTree", true); err != nil {
		return nil, err
	}
	return f.GroupsTreeResp, nil
}

func (f *FakeAPI) ClassByUser(context.Context, int64) ([]domain.Group, error) {
	if err := f.enter("ClassByUser", true); err != nil {
		return nil, err
	}
	return f.Groups, nil
}

func (f *FakeAPI) Periods(_ context.Context, groupID int64) (*domain.PeriodContainer, error) {
	if err := f.enter("Periods", true); err != nil {
		return nil, err
	}
	pc, ok := f.PeriodsResp[groupID]
	if !ok {
		return &domain.PeriodContainer{}, nil
	}
	return pc, nil
}

func (f *FakeAPI) DiaryUnits(_ context.Context, _, periodID int64) ([]domain.DiaryUnit, error) {
	if err := f.enter("DiaryUnits", true); err != nil {
		return nil, err
	}
	return f.UnitsResp[periodID], nil
}

func (f *FakeAPI) DiaryPeriod(_ context.Context, _, periodID int64) ([]domain.DiaryPeriodLesson, error) {
	if err := f.enter("DiaryPeriod", true); err != nil {
		return nil, err
	}
	return f.LessonsResp[periodID], nil
}

func (f *FakeAPI) PrsDiary(_ context.Context, _ int64, from, to domain.Millis) (*domain.PrsDiary, error) {
	if err := f.enter("PrsDiary", true); err != nil {
		return nil, err
	}
	f.mu.Lock()
	f.DiaryRange = [2]domain.Millis{from, to}
	f.mu.Unlock()
	if f.DiaryResp == nil {
		return &domain.PrsDiary{}, nil
	}
	return f.DiaryResp, nil
}

func (f *FakeAPI) PupilUnits(context.Context, int64, int64) ([]domain.PupilUnit, error) {
	if err := f.enter("PupilUnits", true); err != nil {
		return nil, err
	}
	return f.PupilUnitsResp, nil
}

func (f *FakeAPI) UserListSearch(context.Context, int64) ([]domain.UserSearchItem, error) {
	if err := f.enter("UserListSearch", true); err != nil {
		return nil, err
	}
	return f.UsersResp, nil
}

func (f *FakeAPI) LPartListPupil(_ context.Context, q eschool.TaskQuery) ([]domain.PupilTask, error) {
	if err := f.enter("LPartListPupil", true); err != nil {
		return nil, err
	}
	f.mu.Lock()
	f.TaskQuery = q
	f.mu.Unlock()
	return f.TasksResp, nil
}

func (f *FakeAPI) ProfileNew(context.Context, int64) (*domain.ExtendedProfile, error) {
	if err := f.enter("ProfileNew", true); err != nil {
		return nil, err
	}
	if f.ProfileResp == nil {
		return &domain.ExtendedProfile{}, nil
	}
	return f.ProfileResp, nil
}

func (f *FakeAPI) SetSession(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Session = id
}

func (f *FakeAPI) SessionID() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Session
}

var _ eschool.API = (*FakeAPI)(nil)
