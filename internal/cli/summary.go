package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/pkm/internal/models"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Width(18)
	valueStyle = lipgloss.NewStyle().Bold(true)
)

func writeRow(w io.Writer, label string, value interface{}) {
	fmt.Fprintf(w, "  %s %s\n", labelStyle.Render(label), valueStyle.Render(fmt.Sprint(value)))
}

func writeCounts(w io.Writer, title string, counts models.Counts) {
	fmt.Fprintln(w, titleStyle.Render(title))
	writeRow(w, "habits", counts.Habits)
	writeRow(w, "daily entries", counts.DailyEntries)
	writeRow(w, "sub-daily moods", counts.SubDailyMoods)
	writeRow(w, "daily metrics", counts.DailyMetrics)
	writeRow(w, "work logs", counts.WorkLogs)
	writeRow(w, "habit logs", counts.HabitLogs)
	writeRow(w, "alcohol logs", counts.AlcoholLogs)
}

func totalRecords(c models.Counts) int {
	return c.Habits + c.DailyEntries + c.SubDailyMoods + c.DailyMetrics + c.WorkLogs + c.HabitLogs + c.AlcoholLogs
}
