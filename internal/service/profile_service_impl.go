package service

import (
	"cmp"
	"context"
	"errors"
	"slices"
	"time"

	"github.com/alexanderramin/reschool/internal/domain"
	"github.com/alexanderramin/reschool/internal/eschool"
)

// DefaultTaskWindow is how far back Tasks looks when no range is given.
const DefaultTaskWindow = 90 * 24 * time.Hour

type profileService struct {
	api      eschool.API
	session  *Session
	now      func() time.Time
	observer UseCaseObserver
}

func NewProfileService(api eschool.API, session *Session, observers ...UseCaseObserver) ProfileService {
	return &profileService{
		api:      api,
		session:  session,
		now:      time.Now,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *profileService) Extended(ctx context.Context) (p *domain.ExtendedProfile, err error) {
	done := track(ctx, s.observer, "extended-profile", nil)
	defer func() { done(err) }()

	return s.extended(ctx)
}

func (s *profileService) extended(ctx context.Context) (*domain.ExtendedProfile, error) {
	st, err := s.session.ensure(ctx, s.api)
	if err != nil {
		return nil, err
	}
	return s.api.ProfileNew(ctx, st.User.PrsID)
}

// CurrentYearID picks the enrollment with the latest start date.
func (s *profileService) CurrentYearID(ctx context.Context) (yearID int64, err error) {
	done := track(ctx, s.observer, "current-year", nil)
	defer func() { done(err) }()

	var p *domain.ExtendedProfile
	if p, err = s.extended(ctx); err != nil {
		return 0, err
	}
	pupil, ok := latestEnrollment(p.Pupils)
	if !ok || pupil.YearID == 0 {
		return 0, ErrNoSchoolYear
	}
	return pupil.YearID, nil
}

var enrollmentLayouts = []string{"2006-01-02", "02.01.2006", time.RFC3339}

func parseEnrollmentDate(s string) (time.Time, bool) {
	for _, layout := range enrollmentLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func latestEnrollment(pupils []domain.PupilRecord) (domain.PupilRecord, bool) {
	if len(pupils) == 0 {
		return domain.PupilRecord{}, false
	}
	best := pupils[0]
	for _, p := range pupils[1:] {
		bt, bok := parseEnrollmentDate(best.Begin)
		pt, pok := parseEnrollmentDate(p.Begin)
		switch {
		case bok && pok:
			if pt.After(bt) {
				best = p
			}
		case pok:
			best = p
		case !bok && p.Begin > best.Begin:
			best = p
		}
	}
	return best, true
}

func (s *profileService) Units(ctx context.Context, yearID int64) (units []domain.PupilUnit, err error) {
	done := track(ctx, s.observer, "pupil-units", map[string]any{"year_id": yearID})
	defer func() { done(err) }()

	var st *domain.State
	if st, err = s.session.ensure(ctx, s.api); err != nil {
		return nil, err
	}
	return s.api.PupilUnits(ctx, st.User.PrsID, yearID)
}

func (s *profileService) Tasks(ctx context.Context, yearID int64, from, to time.Time) (tasks []domain.PupilTask, err error) {
	if to.IsZero() {
		to = s.now()
	}
	if from.IsZero() {
		from = to.Add(-DefaultTaskWindow)
	}
	done := track(ctx, s.observer, "pupil-tasks", map[string]any{
		"year_id": yearID,
		"days":    int(to.Sub(from).Hours() / 24),
	})
	defer func() { done(err) }()

	if from.After(to) {
		err = errors.New("task range starts after it ends")
		return nil, err
	}
	var st *domain.State
	if st, err = s.session.ensure(ctx, s.api); err != nil {
		return nil, err
	}
	tasks, err = s.api.LPartListPupil(ctx, eschool.TaskQuery{
		From:   domain.MillisFrom(from),
		To:     domain.MillisFrom(to),
		PrsID:  st.User.PrsID,
		YearID: yearID,
	})
	if err != nil {
		return nil, err
	}
	tasks = slices.Clone(tasks)
	slices.SortStableFunc(tasks, func(a, b domain.PupilTask) int {
		return cmp.Compare(b.PassDate, a.PassDate)
	})
	return tasks, nil
}

func (s *profileService) SearchUsers(ctx context.Context, yearID int64) (dir *domain.UserDirectory, err error) {
	done := track(ctx, s.observer, "search-users", map[string]any{"year_id": yearID})
	defer func() { done(err) }()

	var users []domain.UserSearchItem
	if users, err = s.api.UserListSearch(ctx, yearID); err != nil {
		return nil, err
	}
	dir = &domain.UserDirectory{}
	for _, u := range users {
		if u.IsStudent == 1 {
			dir.Students = append(dir.Students, u)
		}
		if u.IsEmp == 1 {
			dir.Teachers = append(dir.Teachers, u)
		}
		if u.IsParent == 1 {
			dir.Parents = append(dir.Parents, u)
		}
	}
	return dir, nil
}
