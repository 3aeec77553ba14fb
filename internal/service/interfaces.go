package service

import (
	"context"
	"time"

	"github.com/alexanderramin/reschool/internal/directory"
	"github.com/alexanderramin/reschool/internal/domain"
)

type AuthService interface {
	// Login authenticates with a plain password. When remember is set the
	// hashed password, device payload and session are stored locally.
	Login(ctx context.Context, username, password string, remember bool) (*domain.State, error)
	// AutoLogin restores the stored session, logging in again with the
	// stored hash if the portal no longer accepts it.
	AutoLogin(ctx context.Context) (*domain.State, error)
	Logout(ctx context.Context) error
	State(ctx context.Context) (*domain.State, error)
}

type DiaryService interface {
	PeriodOptions(ctx context.Context) (*PeriodMenu, error)
	Grades(ctx context.Context, periodID int64) ([]domain.SubjectGrades, error)
	Homework(ctx context.Context, period domain.PeriodRecord) ([]domain.HomeworkEntry, error)
}

type ChatService interface {
	Threads(ctx context.Context, newOnly bool) ([]domain.Thread, error)
	// Messages returns the latest page of a thread in chronological order.
	Messages(ctx context.Context, threadID int64) ([]domain.Message, error)
	Send(ctx context.Context, threadID int64, text string) error
	// OpenWith returns the id of a one-to-one thread with prsID.
	OpenWith(ctx context.Context, prsID int64) (int64, error)
}

type DirectoryService interface {
	Browse(ctx context.Context) (*directory.Navigator, error)
}

type ProfileService interface {
	Extended(ctx context.Context) (*domain.ExtendedProfile, error)
	CurrentYearID(ctx context.Context) (int64, error)
	Units(ctx context.Context, yearID int64) ([]domain.PupilUnit, error)
	// Tasks lists assignments passed in [from, to], newest first. Zero
	// bounds default to the last DefaultTaskWindow.
	Tasks(ctx context.Context, yearID int64, from, to time.Time) ([]domain.PupilTask, error)
	SearchUsers(ctx context.Context, yearID int64) (*domain.UserDirectory, error)
}
