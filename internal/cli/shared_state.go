package cli

import (
	"github.com/alexanderramin/reschool/internal/domain"
	"github.com/alexanderramin/reschool/internal/service"
)

// SharedState holds context shared across all views via pointer.
type SharedState struct {
	App *App

	// User is the logged-in account, nil before login.
	User *domain.State

	// Menu caches the period picker for the session.
	Menu *service.PeriodMenu

	// Terminal dimensions
	Width  int
	Height int
}

// UserName is shown in the header.
func (s *SharedState) UserName() string {
	if s.User == nil {
		return ""
	}
	if s.User.Profile != nil {
		if n := s.User.Profile.FullName(); n != "" {
			return n
		}
	}
	return s.User.User.Username
}

// Reset forgets everything tied to the current account.
func (s *SharedState) Reset() {
	s.User = nil
	s.Menu = nil
}

// ContentHeight returns the available height for view content,
// accounting for header (2 lines: title + separator) and
// status bar (2 lines: separator + hints).
func (s *SharedState) ContentHeight() int {
	return max(s.Height-4, 1)
}
