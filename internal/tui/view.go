package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/pkm/internal/constants"
	"github.com/julianstephens/pkm/internal/models"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateDays:
		content = m.days.View()
	case StateDetail:
		content = m.detail.View()
	}
	if m.err != nil {
		content = errorStyle.Render("Error: "+m.err.Error()) + "\n" + content
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		docStyle.Render(content),
		m.help.View(m.keys),
	)
}

func (m Model) viewTabs() string {
	detailTitle := "Day"
	if m.selected != "" {
		detailTitle = m.selected
	}
	var tabs []string
	for i, title := range []string{"Days", detailTitle} {
		if m.state == SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func renderDetail(d models.DayDetail) string {
	var b strings.Builder

	b.WriteString(headingStyle.Render(d.Date))
	b.WriteString("\n")

	if d.Entry != nil {
		trait := string(d.Entry.TraitState)
		if d.Entry.TraitState.Active() {
			trait = activeTraitStyle.Render(trait)
		}
		fmt.Fprintf(&b, "%s %s   %s %s\n", labelStyle.Render("Mood:"), d.Entry.Mood, labelStyle.Render("Trait:"), trait)
		fmt.Fprintf(&b, "\n%s\n", d.Entry.JournalEntry)
		if d.Entry.ProjectUpdate != "" {
			fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Project:"), d.Entry.ProjectUpdate)
		}
	}

	if d.Metric != nil {
		b.WriteString(headingStyle.Render("Metrics"))
		b.WriteString("\n")
		fmt.Fprintf(&b, "mood %d/10  energy %d/10  sleep %.1fh\n", d.Metric.MoodRating, d.Metric.EnergyLevel, d.Metric.SleepHours)
		for _, r := range d.Metric.Readings {
			fmt.Fprintf(&b, "  %s  %-20s %6.1f  %s\n", r.Timestamp.Format(constants.TimeFormat), r.Type, r.Value, r.Notes)
		}
	}

	if len(d.Moods) > 0 {
		b.WriteString(headingStyle.Render("Moods"))
		b.WriteString("\n")
		for _, mood := range d.Moods {
			fmt.Fprintf(&b, "  %s  mood %2d  energy %2d  %s\n", mood.LoggedAt.Format(constants.TimeFormat), mood.Mood, mood.Energy, mood.Notes)
		}
	}

	if len(d.WorkLogs) > 0 {
		b.WriteString(headingStyle.Render("Work"))
		b.WriteString("\n")
		for _, w := range d.WorkLogs {
			fmt.Fprintf(&b, "  %s-%s  %-12s %4.1fh  %s\n",
				w.StartTime.Format(constants.TimeFormat), w.EndTime.Format(constants.TimeFormat),
				w.Project, w.TotalHours, w.Description)
		}
	}

	if len(d.HabitLogs) > 0 {
		b.WriteString(headingStyle.Render("Habits"))
		b.WriteString("\n")
		for _, h := range d.HabitLogs {
			fmt.Fprintf(&b, "  %s  %s  %s\n", h.CompletedAt.Format(constants.TimeFormat), h.Habit, h.Notes)
		}
	}

	if len(d.Alcohol) > 0 {
		b.WriteString(headingStyle.Render("Alcohol"))
		b.WriteString("\n")
		for _, a := range d.Alcohol {
			fmt.Fprintf(&b, "  %-10s %.1f units  %s\n", a.DrinkType, a.Units, a.Notes)
		}
	}

	if d.JournalLog != nil {
		b.WriteString(headingStyle.Render("Journal"))
		b.WriteString("\n")
		b.WriteString(d.JournalLog.Content)
		b.WriteString("\n")
	}

	return b.String()
}
