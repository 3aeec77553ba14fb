package service

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/alexanderramin/reschool/internal/domain"
	"github.com/alexanderramin/reschool/internal/eschool"
	"github.com/alexanderramin/reschool/internal/periods"
)

// PeriodMenu is the combined period picker across all of the user's
// classes.
type PeriodMenu struct {
	Options []periods.MenuOption
	// Default is the index of the period containing today, or 1.
	Default int
	// Dropped lists periods left out because of broken parent links.
	Dropped []periods.Dropped
}

type diaryService struct {
	api      eschool.API
	session  *Session
	opts     periods.Options
	now      func() time.Time
	observer UseCaseObserver
}

func NewDiaryService(api eschool.API, session *Session, opts periods.Options, observers ...UseCaseObserver) DiaryService {
	return &diaryService{
		api:      api,
		session:  session,
		opts:     opts,
		now:      time.Now,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *diaryService) PeriodOptions(ctx context.Context) (menu *PeriodMenu, err error) {
	fields := map[string]any{}
	done := track(ctx, s.observer, "period-options", fields)
	defer func() { done(err) }()

	var st *domain.State
	if st, err = s.session.ensure(ctx, s.api); err != nil {
		return nil, err
	}
	var groups []domain.Group
	if groups, err = s.api.ClassByUser(ctx, st.UserID); err != nil {
		return nil, fmt.Errorf("loading classes: %w", err)
	}
	slices.SortStableFunc(groups, func(a, b domain.Group) int {
		return cmp.Compare(a.BegDate, b.BegDate)
	})

	options := make([]periods.GroupOption, 0, len(groups))
	var dropped []periods.Dropped
	for _, g := range groups {
		pc, perr := s.api.Periods(ctx, g.ID)
		if perr != nil {
			err = fmt.Errorf("loading periods for %s: %w", g.Name, perr)
			return nil, err
		}
		opt := periods.BuildGroupOption(g, *pc, s.opts)
		options = append(options, opt)
		dropped = append(dropped, opt.Dropped...)
	}

	flat := periods.Flatten(options)
	fields["groups"] = len(groups)
	fields["options"] = len(flat)
	fields["dropped"] = len(dropped)
	return &PeriodMenu{
		Options: flat,
		Default: periods.CurrentOption(flat, domain.MillisFrom(s.now())),
		Dropped: dropped,
	}, nil
}

func (s *diaryService) Grades(ctx context.Context, periodID int64) (rows []domain.SubjectGrades, err error) {
	done := track(ctx, s.observer, "grades", map[string]any{"period_id": periodID})
	defer func() { done(err) }()

	var st *domain.State
	if st, err = s.session.ensure(ctx, s.api); err != nil {
		return nil, err
	}
	var units []domain.DiaryUnit
	if units, err = s.api.DiaryUnits(ctx, st.UserID, periodID); err != nil {
		return nil, fmt.Errorf("loading subjects: %w", err)
	}
	var lessons []domain.DiaryPeriodLesson
	if lessons, err = s.api.DiaryPeriod(ctx, st.UserID, periodID); err != nil {
		return nil, fmt.Errorf("loading lessons: %w", err)
	}

	marks := make(map[int64][]string)
	for _, l := range lessons {
		for _, part := range l.Parts {
			for _, m := range part.Marks {
				if v := m.MarkValue.String(); v != "" {
					marks[l.UnitID] = append(marks[l.UnitID], v)
				}
			}
		}
	}

	rows = make([]domain.SubjectGrades, 0, len(units))
	for _, u := range units {
		row := domain.SubjectGrades{
			UnitID:  u.UnitID,
			Subject: u.UnitName,
			Marks:   marks[u.UnitID],
			Total:   u.TotalMark.String(),
		}
		if u.OverMark != nil && *u.OverMark > 0 {
			avg := *u.OverMark
			row.Average = &avg
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (s *diaryService) Homework(ctx context.Context, period domain.PeriodRecord) (entries []domain.HomeworkEntry, err error) {
	done := track(ctx, s.observer, "homework", map[string]any{"period_id": period.ID})
	defer func() { done(err) }()

	var st *domain.State
	if st, err = s.session.ensure(ctx, s.api); err != nil {
		return nil, err
	}
	var diary *domain.PrsDiary
	if diary, err = s.api.PrsDiary(ctx, st.User.PrsID, period.StartDate, period.EndDate); err != nil {
		return nil, fmt.Errorf("loading diary: %w", err)
	}

	lessons := slices.Clone(diary.Lessons)
	slices.SortStableFunc(lessons, func(a, b domain.PrsDiaryLesson) int {
		return cmp.Compare(a.Date, b.Date)
	})

	entries = []domain.HomeworkEntry{}
	for _, l := range lessons {
		subject := domain.CoalesceStr(l.Unit.Name, l.Subject, "Unknown")
		for _, part := range l.Parts {
			if part.Category != domain.HomeworkCategory {
				continue
			}
			for _, v := range part.Variants {
				text := plainText(v.Text)
				var files []string
				for _, f := range v.Files {
					if f.FileName != "" {
						files = append(files, f.FileName)
					}
				}
				if text == "" && len(files) == 0 {
					continue
				}
				entries = append(entries, domain.HomeworkEntry{
					Date:    l.Date,
					Subject: subject,
					Text:    text,
					Files:   files,
				})
			}
		}
	}
	return entries, nil
}
