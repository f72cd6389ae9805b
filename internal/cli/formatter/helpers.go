package formatter

import (
	"fmt"
	"time"

	"github.com/alexanderramin/menudesk/internal/domain"
)

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return styleMuted.Render(id)
}

// HumanDate returns a human-friendly absolute date string.
func HumanDate(t time.Time) string {
	return HumanDateFrom(t, time.Now())
}

// HumanDateFrom is HumanDate against a reference time.
func HumanDateFrom(t, now time.Time) string {
	y1, m1, d1 := now.Date()
	y2, m2, d2 := t.Date()
	if y1 == y2 && m1 == m2 && d1 == d2 {
		return "Today"
	}
	y3, m3, d3 := now.AddDate(0, 0, -1).Date()
	if y2 == y3 && m2 == m3 && d2 == d3 {
		return "Yesterday"
	}
	return t.Format("Jan 2, 2006")
}

// DateRange renders an optional start and end date. Open ends show as "…".
func DateRange(start, end *time.Time) string {
	if start == nil && end == nil {
		return ""
	}
	format := func(t *time.Time) string {
		if t == nil {
			return "…"
		}
		return t.Format(domain.DateLayout)
	}
	return fmt.Sprintf("%s → %s", format(start), format(end))
}

// PublishPill shows where a menu stands against its last publication.
func PublishPill(m *domain.Menu) string {
	switch {
	case m.PublishedVersion == nil && m.Version == 0:
		return styleMuted.Render("○ Empty")
	case m.PublishedVersion == nil:
		return styleAttention.Render("○ Draft")
	case m.HasUnpublishedChanges():
		return styleAttention.Render(fmt.Sprintf("● v%d live, changed", *m.PublishedVersion))
	default:
		return styleOK.Render(fmt.Sprintf("✔ v%d live", *m.PublishedVersion))
	}
}

// KindBadge labels a node kind.
func KindBadge(k domain.NodeKind) string {
	if style, ok := kindStyles[k]; ok {
		return style.Render(string(k))
	}
	return styleMuted.Render(string(k))
}
