package testutil

import (
	"github.com/alexanderramin/reschool/internal/domain"
)

// Device returns a fixed device payload.
func Device() domain.DevicePayload {
	return domain.DevicePayload{
		CliType:     "web",
		CliVer:      "v.2515",
		PushToken:   "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef",
		DeviceID:    "0123456789abcdef0123456789abcdef",
		DeviceName:  "Chrome",
		DeviceModel: 120,
		CliOs:       "MacIntel",
	}
}

// State returns a logged-in pupil: user 42, person 7, Ivanov Ivan.
func State() *domain.State {
	return &domain.State{
		UserID: 42,
		User:   domain.UserInfo{PrsID: 7, Username: "ivanov"},
		Profile: &domain.Profile{
			ID:        7,
			FirstName: "Ivan",
			LastName:  "Ivanov",
			PhoneMob:  "+70000000000",
			Email:     "ivanov@example.com",
		},
	}
}

// Period options
type PeriodOption func(*domain.PeriodRecord)

func WithParent(id int64) PeriodOption {
	return func(p *domain.PeriodRecord) { p.ParentID = id }
}

func WithTypeCode(code string) PeriodOption {
	return func(p *domain.PeriodRecord) { p.TypeCode = code }
}

// NewTestPeriod builds a period spanning [start, end].
func NewTestPeriod(id int64, name string, start, end domain.Millis, opts ...PeriodOption) domain.PeriodRecord {
	p := domain.PeriodRecord{
		ID:           id,
		Name:         name,
		StartDate:    start,
		EndDate:      end,
		StartDateStr: start.Time().Format("02.01.2006"),
		EndDateStr:   end.Time().Format("02.01.2006"),
	}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

// NewTestContainer wraps a school year with its sub-periods.
func NewTestContainer(year domain.PeriodRecord, items ...domain.PeriodRecord) *domain.PeriodContainer {
	return &domain.PeriodContainer{PeriodRecord: year, Items: items}
}

// Mark builds a lesson part carrying the given mark values.
func Mark(values ...string) domain.DiaryLessonPart {
	part := domain.DiaryLessonPart{Category: "LES"}
	for i, v := range values {
		part.Marks = append(part.Marks, domain.DiaryMark{MarkID: int64(i + 1), MarkValue: domain.FlexString(v)})
	}
	return part
}

// Homework builds a homework lesson part with one variant.
func Homework(html string, files ...string) domain.DiaryLessonPart {
	v := domain.DiaryVariant{ID: 1, Text: html}
	for i, f := range files {
		v.Files = append(v.Files, domain.DiaryFile{ID: int64(i + 1), FileName: f})
	}
	return domain.DiaryLessonPart{Category: domain.HomeworkCategory, Variants: []domain.DiaryVariant{v}}
}

// Float returns a pointer to f.
func Float(f float64) *float64 { return &f }
