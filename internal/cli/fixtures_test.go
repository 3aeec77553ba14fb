package cli

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/reschool/internal/domain"
	"github.com/alexanderramin/reschool/internal/periods"
	"github.com/alexanderramin/reschool/internal/repository"
	"github.com/alexanderramin/reschool/internal/service"
	"github.com/alexanderramin/reschool/internal/testutil"
	"github.com/stretchr/testify/require"
)

// testEnv is a full App over a fake portal and an in-memory credential
// store.
type testEnv struct {
	app  *App
	api  *testutil.FakeAPI
	repo *repository.SQLiteCredentialRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	api := testutil.NewFakeAPI()
	repo := repository.NewSQLiteCredentialRepo(testutil.NewTestDB(t))
	session := service.NewSession()

	app := &App{
		Auth:      service.NewAuthService(api, repo, session),
		Diary:     service.NewDiaryService(api, session, periods.Options{}),
		Chat:      service.NewChatService(api, session),
		Directory: service.NewDirectoryService(api),
		Profile:   service.NewProfileService(api, session),
		RunTUI:    func(*App) error { return nil },
	}
	return &testEnv{app: app, api: api, repo: repo}
}

// loggedInEnv stores credentials whose session the fake portal accepts.
func loggedInEnv(t *testing.T) *testEnv {
	t.Helper()
	env := newTestEnv(t)
	require.NoError(t, env.repo.Save(context.Background(), &domain.Credentials{
		Username:     "ivanov",
		PasswordHash: service.HashPassword("password"),
		Device:       testutil.Device(),
		SessionID:    "live",
	}))
	seedPortal(env.api)
	return env
}

var oneDay = 24 * time.Hour

// seedPortal gives class 10A a school year with two quarters, the second
// containing today, and fills every section with one record.
func seedPortal(api *testutil.FakeAPI) {
	now := time.Now()
	ms := func(d time.Duration) domain.Millis { return domain.MillisFrom(now.Add(d)) }

	api.Groups = []domain.Group{{ID: 1, Name: "10A", BegDate: ms(-200 * oneDay)}}
	api.PeriodsResp = map[int64]*domain.PeriodContainer{
		1: testutil.NewTestContainer(
			testutil.NewTestPeriod(100, "2024/2025", ms(-200*oneDay), ms(165*oneDay)),
			testutil.NewTestPeriod(101, "Q1", ms(-200*oneDay), ms(-30*oneDay)),
			testutil.NewTestPeriod(102, "Q2", ms(-29*oneDay), ms(30*oneDay)),
		),
	}
	api.UnitsResp = map[int64][]domain.DiaryUnit{
		102: {{UnitID: 1, UnitName: "Mathematics", OverMark: testutil.Float(4.5)}},
	}
	api.LessonsResp = map[int64][]domain.DiaryPeriodLesson{
		102: {{UnitID: 1, Parts: []domain.DiaryLessonPart{testutil.Mark("5", "4")}}},
	}
	api.DiaryResp = &domain.PrsDiary{Lessons: []domain.PrsDiaryLesson{
		{Date: ms(-oneDay), Unit: domain.DiaryUnitRef{Name: "Physics"}, Parts: []domain.DiaryLessonPart{testutil.Homework("<p>Read chapter 4</p>")}},
	}}
	api.ThreadsResp = []domain.Thread{{ThreadID: 731, Subject: "Field trip", SenderFio: "Petrova A.", MsgPreview: "Bring lunch"}}
	api.MessagesResp = map[int64][]domain.Message{
		731: {{MsgID: 2, Text: "Bring lunch", SenderFio: "Petrova A."}},
		900: {},
	}
	api.ThreadIDs = map[int64]int64{5: 900}
	api.GroupsTreeResp = []byte(`{"groups":[{"groupName":"10A","users":[{"fio":"Petrova A.","prsId":5}]}],"users":[{"fio":"Ivanov I.I.","prsId":8}]}`)
	api.ProfileResp = &domain.ExtendedProfile{
		Fio:    "Ivanov Ivan",
		Pupils: []domain.PupilRecord{{YearID: 88749, EduYear: "2024/2025", ClassName: "10A", Begin: "2024-09-01"}},
	}
	api.PupilUnitsResp = []domain.PupilUnit{{UnitID: "1", Name: "Mathematics"}}
	api.TasksResp = []domain.PupilTask{{PassDate: ms(2 * oneDay), UnitName: "Mathematics", Preview: "Exercise 12"}}
	api.UsersResp = []domain.UserSearchItem{
		{PrsID: 5, Fio: "Petrova A.", IsEmp: 1},
		{PrsID: 8, Fio: "Ivanov I.I.", IsStudent: 1, GroupName: "10A"},
	}
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetIn(new(bytes.Buffer))
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}
