package formatter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/reschool/internal/domain"
)

func field(b *strings.Builder, label, value string) {
	if value == "" {
		value = Dim("—")
	}
	fmt.Fprintf(b, "%s %s\n", Dim(fmt.Sprintf("%-10s", label+":")), value)
}

// FormatProfile renders the account summary and, when ext is not nil, the
// extended profile with enrollments and related people.
func FormatProfile(st *domain.State, ext *domain.ExtendedProfile) string {
	var b strings.Builder
	var p domain.Profile
	if st.Profile != nil {
		p = *st.Profile
	}
	field(&b, "Name", p.FullName())
	field(&b, "Login", st.User.Username)
	field(&b, "Phone", p.PhoneMob)
	field(&b, "Email", p.Email)
	field(&b, "User ID", strconv.FormatInt(st.UserID, 10))
	field(&b, "Person ID", strconv.FormatInt(st.User.PrsID, 10))
	out := RenderBox("Profile", strings.TrimRight(b.String(), "\n"))
	if ext == nil {
		return out + "\n"
	}

	var x strings.Builder
	field(&x, "Birthday", ext.BirthDate)
	if len(ext.Pupils) > 0 {
		x.WriteString("\n" + Header("Enrollments") + "\n")
		for _, pr := range ext.Pupils {
			fmt.Fprintf(&x, "%s  %s  %s\n", Bold(pr.EduYear), pr.ClassName, Dim(pr.Begin+" – "+pr.End))
		}
	}
	if len(ext.Relations) > 0 {
		x.WriteString("\n" + Header("Relatives") + "\n")
		for _, rel := range ext.Relations {
			fmt.Fprintf(&x, "%s  %s  %s\n", Bold(rel.Data.FullName()), Dim(rel.RelName), rel.Data.Phone())
		}
	}
	return out + "\n" + RenderBox("Extended", strings.TrimRight(x.String(), "\n")) + "\n"
}

// FormatUnits renders the subjects a pupil is enrolled in.
func FormatUnits(units []domain.PupilUnit) string {
	if len(units) == 0 {
		return Empty("subjects") + "\n"
	}
	rows := make([][]string, len(units))
	for i, u := range units {
		kind := "core"
		if u.IsOdod == 1 {
			kind = StylePurple.Render("extra")
		}
		rows[i] = []string{strconv.Itoa(i + 1), u.Name, Dim(u.ShortName), kind}
	}
	return RenderTable([]string{"#", "Subject", "Short", "Kind"}, rows)
}

// FormatTasks renders assignments newest first.
func FormatTasks(tasks []domain.PupilTask, now time.Time) string {
	if len(tasks) == 0 {
		return Empty("tasks") + "\n"
	}
	rows := make([][]string, len(tasks))
	for i, t := range tasks {
		status := StyleYellow.Render("open")
		switch {
		case t.IsVerified == 1:
			status = StyleGreen.Render("verified")
		case t.IsDone == 1:
			status = StyleBlue.Render("done")
		}
		files := ""
		if t.AttachCnt > 0 {
			files = fmt.Sprintf("📎%d", t.AttachCnt)
		}
		rows[i] = []string{
			Date(t.PassDate),
			Dim(RelativeDays(t.PassDate.Time(), now)),
			t.UnitName,
			Truncate(t.Preview, 48),
			files,
			status,
		}
	}
	return RenderTable([]string{"Due", "", "Subject", "Task", "Files", "Status"}, rows)
}

// UserLine renders one directory or search entry.
func UserLine(fio string, positions []string) string {
	if len(positions) == 0 {
		return fio
	}
	return fio + "  " + Dim(strings.Join(positions, ", "))
}

// FormatUsers renders a user search split into roles.
func FormatUsers(dir *domain.UserDirectory) string {
	var b strings.Builder
	section := func(title string, users []domain.UserSearchItem) {
		b.WriteString(Header(fmt.Sprintf("%s (%d)", title, len(users))) + "\n")
		if len(users) == 0 {
			b.WriteString(Dim("none") + "\n\n")
			return
		}
		for _, u := range users {
			var pos []string
			for _, p := range u.Positions {
				pos = append(pos, p.PosTypeName)
			}
			line := UserLine(u.Fio, pos)
			if u.GroupName != "" {
				line += "  " + StyleBlue.Render(u.GroupName)
			}
			fmt.Fprintf(&b, "%8d  %s\n", u.PrsID, line)
		}
		b.WriteString("\n")
	}
	section("Students", dir.Students)
	section("Teachers", dir.Teachers)
	section("Parents", dir.Parents)
	return b.String()
}
