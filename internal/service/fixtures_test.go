package service

import (
	"github.com/alexanderramin/reschool/internal/domain"
	"github.com/alexanderramin/reschool/internal/testutil"
)

var testCreds = domain.Credentials{
	Username:     "ivanov",
	PasswordHash: HashPassword("password"),
	Device:       testutil.Device(),
	SessionID:    "stored-session",
}

// loggedIn returns a fake API with a live session.
func loggedIn() *testutil.FakeAPI {
	api := testutil.NewFakeAPI()
	api.Session = "live"
	return api
}
