package eschool

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/reschool/internal/domain"
)

// Login bodies that mean the portal refused the credentials.
var loginFailureBodies = map[string]bool{"1": true, "3": true, "4": true}

// Login posts the credentials and keeps the JSESSIONID cookie the portal
// sets. passwordHash is the SHA-256 hex digest of the password.
func (c *Client) Login(ctx context.Context, username, passwordHash string, device domain.DevicePayload) error {
	deviceJSON, err := json.Marshal(device)
	if err != nil {
		return fmt.Errorf("encoding device payload: %w", err)
	}
	form := url.Values{
		"username": {username},
		"password": {passwordHash},
		"device":   {string(deviceJSON)},
	}

	c.SetSession("")
	resp, err := c.do(ctx, request{
		method:      http.MethodPost,
		path:        "/login",
		body:        []byte(form.Encode()),
		contentType: "application/x-www-form-urlencoded",
		anonymous:   true,
	})
	if err != nil {
		return err
	}
	if loginFailureBodies[strings.TrimSpace(string(resp.body))] {
		return ErrInvalidCredentials
	}
	if c.SessionID() == "" {
		return fmt.Errorf("%w: no session cookie in login response", ErrInvalidCredentials)
	}
	return nil
}

// State returns the authenticated user's state. It is also the cheapest
// way to check whether a session is still valid.
func (c *Client) State(ctx context.Context) (*domain.State, error) {
	var st domain.State
	if err := c.getJSON(ctx, "/state", nil, &st); err != nil {
		return nil, err
	}
	return &st, nil
}

func (c *Client) Threads(ctx context.Context, newOnly bool, row, count int) ([]domain.Thread, error) {
	q := url.Values{
		"newOnly":   {strconv.FormatBool(newOnly)},
		"row":       {strconv.Itoa(row)},
		"rowsCount": {strconv.Itoa(count)},
	}
	var threads []domain.Thread
	if err := c.getJSON(ctx, "/chat/threads", q, &threads); err != nil {
		return nil, err
	}
	return threads, nil
}

// Messages returns a page of a thread, newest first as the portal sends it.
func (c *Client) Messages(ctx context.Context, threadID int64, rowStart, count int) ([]domain.Message, error) {
	q := url.Values{
		"getNew":    {"false"},
		"isSearch":  {"false"},
		"rowStart":  {strconv.Itoa(rowStart)},
		"rowsCount": {strconv.Itoa(count)},
		"threadId":  {strconv.FormatInt(threadID, 10)},
	}
	resp, err := c.do(ctx, request{
		method:      http.MethodPut,
		path:        "/chat/messages",
		query:       q,
		body:        []byte(`{"msgNums":null,"searchText":null}`),
		contentType: "application/json",
	})
	if err != nil {
		return nil, err
	}
	var msgs []domain.Message
	if err := decode("/chat/messages", resp.body, &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

// SendMessage posts text to a thread as multipart form data. msgUID is the
// current time in milliseconds.
func (c *Client) SendMessage(ctx context.Context, threadID int64, text string) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fields := [][2]string{
		{"threadId", strconv.FormatInt(threadID, 10)},
		{"msgText", text},
		{"msgUID", strconv.FormatInt(time.Now().UnixMilli(), 10)},
	}
	for _, f := range fields {
		if err := mw.WriteField(f[0], f[1]); err != nil {
			return fmt.Errorf("encoding message: %w", err)
		}
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("encoding message: %w", err)
	}

	_, err := c.do(ctx, request{
		method:      http.MethodPost,
		path:        "/chat/sendNew",
		body:        buf.Bytes(),
		contentType: mw.FormDataContentType(),
	})
	return err
}

type saveThreadRequest struct {
	ThreadID       *int64  `json:"threadId"`
	SenderID       *int64  `json:"senderId"`
	ImageID        *int64  `json:"imageId"`
	Subject        *string `json:"subject"`
	IsAllowReplay  int     `json:"isAllowReplay"`
	IsGroup        bool    `json:"isGroup"`
	InterlocutorID int64   `json:"interlocutor"`
}

// SaveThread opens (or reuses) a one-to-one thread with a person and
// returns its id.
func (c *Client) SaveThread(ctx context.Context, interlocutorID int64) (int64, error) {
	body, err := json.Marshal(saveThreadRequest{IsAllowReplay: 2, InterlocutorID: interlocutorID})
	if err != nil {
		return 0, fmt.Errorf("encoding request: %w", err)
	}
	resp, err := c.do(ctx, request{
		method:      http.MethodPut,
		path:        "/chat/saveThread",
		body:        body,
		contentType: "application/json",
	})
	if err != nil {
		return 0, err
	}
	id, err := strconv.ParseInt(strings.TrimSpace(string(resp.body)), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: /chat/saveThread: thread id %q", ErrInvalidResponse, resp.body)
	}
	return id, nil
}

// GroupsTree returns the raw school directory JSON.
func (c *Client) GroupsTree(ctx context.Context) ([]byte, error) {
	q := url.Values{
		"bAllTypes":   {"false"},
		"bApplicants": {"true"},
		"bEmployees":  {"true"},
		"bGroups":     {"true"},
	}
	resp, err := c.do(ctx, request{method: http.MethodGet, path: "/groups/tree", query: q})
	if err != nil {
		return nil, err
	}
	return resp.body, nil
}

func (c *Client) ClassByUser(ctx context.Context, userID int64) ([]domain.Group, error) {
	var groups []domain.Group
	q := url.Values{"userId": {strconv.FormatInt(userID, 10)}}
	if err := c.getJSON(ctx, "/usr/getClassByUser", q, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

func (c *Client) Periods(ctx context.Context, groupID int64) (*domain.PeriodContainer, error) {
	var pc domain.PeriodContainer
	q := url.Values{"groupId": {strconv.FormatInt(groupID, 10)}}
	if err := c.getJSON(ctx, "/dict/periods/0", q, &pc); err != nil {
		return nil, err
	}
	return &pc, nil
}

// resultEnvelope is the {"result": [...]} wrapper several student
// endpoints use.
type resultEnvelope[T any] struct {
	Result []T `json:"result"`
}

func getResult[T any](ctx context.Context, c *Client, path string, q url.Values) ([]T, error) {
	var env resultEnvelope[T]
	if err := c.getJSON(ctx, path, q, &env); err != nil {
		return nil, err
	}
	return env.Result, nil
}

func diaryQuery(userID, periodID int64) url.Values {
	return url.Values{
		"userId": {strconv.FormatInt(userID, 10)},
		"eiId":   {strconv.FormatInt(periodID, 10)},
	}
}

func (c *Client) DiaryUnits(ctx context.Context, userID, periodID int64) ([]domain.DiaryUnit, error) {
	return getResult[domain.DiaryUnit](ctx, c, "/student/getDiaryUnits/", diaryQuery(userID, periodID))
}

func (c *Client) DiaryPeriod(ctx context.Context, userID, periodID int64) ([]domain.DiaryPeriodLesson, error) {
	return getResult[domain.DiaryPeriodLesson](ctx, c, "/student/getDiaryPeriod_/", diaryQuery(userID, periodID))
}

func (c *Client) PrsDiary(ctx context.Context, prsID int64, from, to domain.Millis) (*domain.PrsDiary, error) {
	q := url.Values{
		"prsId": {strconv.FormatInt(prsID, 10)},
		"d1":    {from.String()},
		"d2":    {to.String()},
	}
	var diary domain.PrsDiary
	if err := c.getJSON(ctx, "/student/getPrsDiary", q, &diary); err != nil {
		return nil, err
	}
	return &diary, nil
}

func (c *Client) PupilUnits(ctx context.Context, prsID, yearID int64) ([]domain.PupilUnit, error) {
	q := url.Values{
		"prsId":  {strconv.FormatInt(prsID, 10)},
		"yearId": {strconv.FormatInt(yearID, 10)},
	}
	return getResult[domain.PupilUnit](ctx, c, "/student/getPupilUnits", q)
}

func (c *Client) UserListSearch(ctx context.Context, yearID int64) ([]domain.UserSearchItem, error) {
	var users []domain.UserSearchItem
	q := url.Values{"yearId": {strconv.FormatInt(yearID, 10)}}
	if err := c.getJSON(ctx, "/usr/getUserListSearch", q, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// TaskQuery selects assignments for getLPartListPupil.
type TaskQuery struct {
	From   domain.Millis
	To     domain.Millis
	IsOdod int
	PrsID  int64
	YearID int64
}

func (c *Client) LPartListPupil(ctx context.Context, query TaskQuery) ([]domain.PupilTask, error) {
	q := url.Values{
		"begDate": {query.From.String()},
		"endDate": {query.To.String()},
		"isOdod":  {strconv.Itoa(query.IsOdod)},
		"prsId":   {strconv.FormatInt(query.PrsID, 10)},
		"yearId":  {strconv.FormatInt(query.YearID, 10)},
	}
	return getResult[domain.PupilTask](ctx, c, "/student/getLPartListPupil", q)
}

func (c *Client) ProfileNew(ctx context.Context, prsID int64) (*domain.ExtendedProfile, error) {
	var p domain.ExtendedProfile
	q := url.Values{"prsId": {strconv.FormatInt(prsID, 10)}}
	if err := c.getJSON(ctx, "/profile/getProfile_new", q, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

var _ API = (*Client)(nil)
