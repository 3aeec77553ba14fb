package service

import (
	"context"
	"errors"
	"testing"

	"github.com/alexanderramin/reschool/internal/eschool"
	"github.com/alexanderramin/reschool/internal/repository"
	"github.com/alexanderramin/reschool/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingObserver struct {
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	o.events = append(o.events, e)
}

func newAuth(t *testing.T) (AuthService, *testutil.FakeAPI, *repository.SQLiteCredentialRepo, *recordingObserver) {
	t.Helper()
	api := testutil.NewFakeAPI()
	repo := repository.NewSQLiteCredentialRepo(testutil.NewTestDB(t))
	obs := &recordingObserver{}
	return NewAuthService(api, repo, NewSession(), obs), api, repo, obs
}

func TestAuthService_Login_HashesPasswordAndRemembers(t *testing.T) {
	svc, api, repo, obs := newAuth(t)
	ctx := context.Background()

	st, err := svc.Login(ctx, "ivanov", "password", true)
	require.NoError(t, err)
	assert.Equal(t, int64(42), st.UserID)

	require.Len(t, api.Logins, 1)
	assert.Equal(t, "5e884898da28047151d0e56f8dc6292773603d0d6aabbdd62a11ef721d1542d8", api.Logins[0].PasswordHash)
	assert.Len(t, api.Logins[0].Device.DeviceID, 32)
	assert.Len(t, api.Logins[0].Device.PushToken, 64)

	stored, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ivanov", stored.Username)
	assert.Equal(t, api.Logins[0].PasswordHash, stored.PasswordHash)
	assert.Equal(t, api.Logins[0].Device, stored.Device)
	assert.Equal(t, "fake-session", stored.SessionID)

	require.Len(t, obs.events, 1)
	assert.Equal(t, "login", obs.events[0].Name)
	assert.True(t, obs.events[0].Success)
}

func TestAuthService_Login_WithoutRememberStoresNothing(t *testing.T) {
	svc, _, repo, _ := newAuth(t)
	ctx := context.Background()

	_, err := svc.Login(ctx, "ivanov", "password", false)
	require.NoError(t, err)

	_, err = repo.Get(ctx)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestAuthService_Login_InvalidCredentials(t *testing.T) {
	svc, api, repo, obs := newAuth(t)
	api.Errs["Login"] = eschool.ErrInvalidCredentials

	_, err := svc.Login(context.Background(), "ivanov", "wrong", true)
	assert.ErrorIs(t, err, eschool.ErrInvalidCredentials)

	_, err = repo.Get(context.Background())
	assert.ErrorIs(t, err, repository.ErrNotFound)
	require.Len(t, obs.events, 1)
	assert.False(t, obs.events[0].Success)
}

func TestAuthService_Login_PersistFailureSurfaces(t *testing.T) {
	api := testutil.NewFakeAPI()
	boom := errors.New("disk full")
	failing := &testutil.FailOnNthExec{DBTX: testutil.NewTestDB(t), FailOn: 1, Err: boom}
	svc := NewAuthService(api, repository.NewSQLiteCredentialRepo(failing), NewSession())

	_, err := svc.Login(context.Background(), "ivanov", "password", true)
	assert.ErrorIs(t, err, boom)
}

func TestAuthService_AutoLogin_NothingStored(t *testing.T) {
	svc, _, _, _ := newAuth(t)

	_, err := svc.AutoLogin(context.Background())
	assert.ErrorIs(t, err, ErrNoSavedCredentials)
}

func TestAuthService_AutoLogin_ReusesValidSession(t *testing.T) {
	svc, api, repo, obs := newAuth(t)
	ctx := context.Background()
	require.NoError(t, repo.Save(ctx, &testCreds))

	st, err := svc.AutoLogin(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(7), st.User.PrsID)
	assert.Equal(t, "stored-session", api.SessionID())
	assert.Equal(t, 0, api.CallCount("Login"))
	require.Len(t, obs.events, 1)
	assert.Equal(t, true, obs.events[0].Fields["reused_session"])
}

func TestAuthService_AutoLogin_ExpiredSessionLogsInAgain(t *testing.T) {
	svc, api, repo, _ := newAuth(t)
	ctx := context.Background()
	require.NoError(t, repo.Save(ctx, &testCreds))
	api.Expired["stored-session"] = true
	api.IssueSession = "new-session"

	_, err := svc.AutoLogin(ctx)
	require.NoError(t, err)

	require.Len(t, api.Logins, 1)
	assert.Equal(t, testCreds.PasswordHash, api.Logins[0].PasswordHash)
	assert.Equal(t, testCreds.Device, api.Logins[0].Device)

	stored, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "new-session", stored.SessionID)
}

func TestAuthService_AutoLogin_TransportErrorDoesNotRelogin(t *testing.T) {
	svc, api, repo, _ := newAuth(t)
	ctx := context.Background()
	require.NoError(t, repo.Save(ctx, &testCreds))
	api.Errs["State"] = eschool.ErrServiceUnavailable

	_, err := svc.AutoLogin(ctx)
	assert.ErrorIs(t, err, eschool.ErrServiceUnavailable)
	assert.Equal(t, 0, api.CallCount("Login"))
}

func TestAuthService_Logout(t *testing.T) {
	svc, api, repo, _ := newAuth(t)
	ctx := context.Background()
	_, err := svc.Login(ctx, "ivanov", "password", true)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx))

	assert.Equal(t, "", api.SessionID())
	_, err = repo.Get(ctx)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = svc.State(ctx)
	assert.ErrorIs(t, err, eschool.ErrNotAuthenticated)
}

func TestAuthService_State_Cached(t *testing.T) {
	svc, api, _, _ := newAuth(t)
	ctx := context.Background()
	_, err := svc.Login(ctx, "ivanov", "password", false)
	require.NoError(t, err)

	_, err = svc.State(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, api.CallCount("State"))
}

func TestNewDevicePayload_Unique(t *testing.T) {
	a, b := NewDevicePayload(), NewDevicePayload()
	assert.NotEqual(t, a.DeviceID, b.DeviceID)
	assert.Equal(t, "web", a.CliType)
	assert.Nil(t, a.CliOsVer)
}
