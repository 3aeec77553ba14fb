package formatter

import (
	"strconv"
	"strings"

	"github.com/alexanderramin/reschool/internal/domain"
)

// FormatThreads renders the conversation list.
func FormatThreads(threads []domain.Thread) string {
	if len(threads) == 0 {
		return Empty("conversations") + "\n"
	}
	rows := make([][]string, len(threads))
	for i, t := range threads {
		rows[i] = []string{
			strconv.FormatInt(t.ThreadID, 10),
			Truncate(t.Title(), 40),
			Truncate(t.SenderFio, 28),
			Date(t.SendDate),
			Dim(Truncate(t.MsgPreview, 40)),
		}
	}
	return RenderTable([]string{"ID", "Subject", "From", "Date", "Last message"}, rows)
}

// FormatMessages renders a thread oldest first.
func FormatMessages(msgs []domain.Message) string {
	if len(msgs) == 0 {
		return Empty("messages") + "\n"
	}
	var b strings.Builder
	for _, m := range msgs {
		sender := StyleBlue.Render(domainOr(m.SenderFio, "Unknown"))
		if m.IsOwner {
			sender = StyleGreen.Render("You")
		}
		b.WriteString(Dim(DateTime(m.CreateDate)) + "  " + sender + "\n")
		b.WriteString(Indent(m.Text, "  ") + "\n\n")
	}
	return b.String()
}

func domainOr(s, fallback string) string {
	return domain.CoalesceStr(s, fallback)
}
