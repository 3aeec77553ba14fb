package formatter

import (
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/reschool/internal/directory"
	"github.com/alexanderramin/reschool/internal/domain"
	"github.com/alexanderramin/reschool/internal/periods"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMenu() []periods.MenuOption {
	rec := func(id int64, name string) domain.PeriodRecord {
		return domain.PeriodRecord{ID: id, Name: name, StartDateStr: "01.09", EndDateStr: "31.12"}
	}
	g := domain.Group{ID: 1, Name: "10A"}
	return []periods.MenuOption{
		{Index: 1, Group: g, Entry: periods.Entry{PeriodRecord: rec(1, "2024/2025"), IsRoot: true}},
		{Index: 2, Group: g, Entry: periods.Entry{PeriodRecord: rec(2, "Semester 1"), Depth: 1}},
		{Index: 3, Group: g, Entry: periods.Entry{PeriodRecord: rec(3, "Q1"), Depth: 2}},
		{Index: 4, Group: g, Entry: periods.Entry{PeriodRecord: rec(4, "Q2"), Depth: 2}},
		{Index: 5, Group: g, Entry: periods.Entry{PeriodRecord: rec(5, "Semester 2"), Depth: 1}},
		{Index: 6, Group: g, Entry: periods.Entry{PeriodRecord: rec(6, "Q3"), Depth: 2}},
	}
}

func TestPeriodRows_Connectors(t *testing.T) {
	rows := PeriodRows(testMenu())
	require.Len(t, rows, 6)

	got := make([]string, len(rows))
	for i, r := range rows {
		got[i] = r.Prefix + r.Label
	}
	assert.Equal(t, []string{
		"10A · 2024/2025",
		"├─ Semester 1",
		"│  ├─ Q1",
		"│  └─ Q2",
		"└─ Semester 2",
		"   └─ Q3",
	}, got)
	assert.True(t, rows[0].IsRoot)
	assert.Equal(t, "01.09 – 31.12", rows[3].Range)
}

func TestRenderPeriodMenu_MarksCurrent(t *testing.T) {
	out := RenderPeriodMenu(testMenu(), 4)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 6)
	assert.Contains(t, lines[3], "4.")
	assert.Contains(t, lines[3], "◂ now")
	assert.NotContains(t, lines[2], "◂ now")
}

func TestFormatGrades(t *testing.T) {
	avg := 4.5
	out := FormatGrades("Q1", []domain.SubjectGrades{
		{Subject: "Math", Average: &avg, Marks: []string{"5", "4"}, Total: "5"},
		{Subject: "Art"},
	})
	assert.Contains(t, out, "GRADES · Q1")
	assert.Contains(t, out, "Math")
	assert.Contains(t, out, "5 4")
	assert.Contains(t, out, "4.50")

	assert.Contains(t, FormatGrades("Q1", nil), "No grades found.")
}

func TestGradesCSV(t *testing.T) {
	avg := 3.333
	headers, rows := GradesCSV([]domain.SubjectGrades{{Subject: "Math", Average: &avg, Marks: []string{"3", "4"}}})
	assert.Equal(t, []string{"subject", "average", "marks", "total"}, headers)
	assert.Equal(t, [][]string{{"Math", "3.33", "3 4", ""}}, rows)
}

func TestFormatHomework_GroupsByDay(t *testing.T) {
	day := domain.MillisFrom(time.Date(2025, 1, 13, 9, 0, 0, 0, time.Local))
	out := FormatHomework("Q3", []domain.HomeworkEntry{
		{Date: day, Subject: "Math", Text: "Ex. 1"},
		{Date: day + 3600_000, Subject: "Physics", Files: []string{"lab.pdf"}},
	})
	assert.Equal(t, 1, strings.Count(out, "13.01.2025"))
	assert.Contains(t, out, "    Ex. 1")
	assert.Contains(t, out, "lab.pdf")

	assert.Contains(t, FormatHomework("Q3", nil), "No homework found.")
}

func TestFormatMessages_OwnMessages(t *testing.T) {
	out := FormatMessages([]domain.Message{
		{Text: "hello", SenderFio: "Petrova A."},
		{Text: "hi", IsOwner: true, SenderFio: "Ivanov Ivan"},
	})
	assert.Contains(t, out, "Petrova A.")
	assert.Contains(t, out, "You")
	assert.NotContains(t, out, "Ivanov Ivan")
}

func TestFormatThreads(t *testing.T) {
	out := FormatThreads([]domain.Thread{{ThreadID: 731, SenderFio: "Petrova A."}})
	assert.Contains(t, out, "731")
	assert.Contains(t, out, "Petrova A.")
	assert.Contains(t, FormatThreads(nil), "No conversations found.")
}

func TestFormatUsers_Sections(t *testing.T) {
	out := FormatUsers(&domain.UserDirectory{
		Teachers: []domain.UserSearchItem{{PrsID: 9, Fio: "Sidorova", Positions: []domain.Position{{PosTypeName: "Teacher"}}}},
	})
	assert.Contains(t, out, "STUDENTS (0)")
	assert.Contains(t, out, "TEACHERS (1)")
	assert.Contains(t, out, "Sidorova  Teacher")
}

func TestFormatDirectoryLevel(t *testing.T) {
	nav, err := directory.New([]byte(`{"groups":[{"groupName":"10A"}],"users":[{"fio":"Ivanov I.I.","prsId":5,"pos":[{"posTypeName":"Pupil"}]}, 42]}`))
	require.NoError(t, err)

	out := FormatDirectoryLevel(nav.BreadcrumbTitle(), nav.CurrentView(), len(nav.Issues()))
	assert.Contains(t, out, "SCHOOL DIRECTORY")
	assert.Contains(t, out, "1. ")
	assert.Contains(t, out, "10A")
	assert.Contains(t, out, "Ivanov I.I.  Pupil")
	assert.Contains(t, out, "(1 unreadable entries skipped)")
}

func TestFormatProfile(t *testing.T) {
	st := &domain.State{UserID: 42, User: domain.UserInfo{PrsID: 7, Username: "ivanov"}, Profile: &domain.Profile{FirstName: "Ivan", LastName: "Ivanov"}}
	out := FormatProfile(st, nil)
	assert.Contains(t, out, "Ivanov Ivan")
	assert.NotContains(t, out, "EXTENDED")

	out = FormatProfile(st, &domain.ExtendedProfile{
		Pupils:    []domain.PupilRecord{{EduYear: "2024/2025", ClassName: "10A"}},
		Relations: []domain.PersonRelation{{RelName: "Mother", Data: domain.RelationData{LastName: "Ivanova", HomePhone: "123"}}},
	})
	assert.Contains(t, out, "2024/2025")
	assert.Contains(t, out, "Ivanova")
	assert.Contains(t, out, "123")
}
