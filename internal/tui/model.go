package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/pkm/internal/models"
)

// Source is the read side of the store the browser needs.
type Source interface {
	ListDays(ctx context.Context) ([]models.DaySummary, error)
	DayDetail(ctx context.Context, date string) (models.DayDetail, error)
}

type SessionState int

const (
	StateDays SessionState = iota
	StateDetail
)

type daysLoadedMsg struct {
	days []models.DaySummary
	err  error
}

type detailLoadedMsg struct {
	detail models.DayDetail
	err    error
}

// dayItem adapts a DaySummary to the list component.
type dayItem struct {
	day models.DaySummary
}

func (i dayItem) Title() string {
	title := i.day.Date
	if i.day.Mood != "" {
		title += "  " + i.day.Mood
	}
	return title
}

func (i dayItem) Description() string {
	if !i.day.HasMetric {
		return string(i.day.TraitState)
	}
	return fmt.Sprintf("mood %d | energy %d | sleep %.1fh | %s",
		i.day.MoodRating, i.day.EnergyLevel, i.day.SleepHours, i.day.TraitState)
}

func (i dayItem) FilterValue() string { return i.day.Date + " " + i.day.Mood }

type Model struct {
	ctx      context.Context
	source   Source
	state    SessionState
	keys     KeyMap
	help     help.Model
	days     list.Model
	detail   viewport.Model
	selected string
	err      error
	width    int
	height   int
	quitting bool
}

func NewModel(ctx context.Context, source Source) Model {
	l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Days"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	return Model{
		ctx:    ctx,
		source: source,
		state:  StateDays,
		keys:   DefaultKeyMap(),
		help:   help.New(),
		days:   l,
		detail: viewport.New(0, 0),
	}
}

func (m Model) Init() tea.Cmd {
	return m.loadDays()
}

func (m Model) loadDays() tea.Cmd {
	return func() tea.Msg {
		days, err := m.source.ListDays(m.ctx)
		return daysLoadedMsg{days: days, err: err}
	}
}

func (m Model) loadDetail(date string) tea.Cmd {
	return func() tea.Msg {
		detail, err := m.source.DayDetail(m.ctx, date)
		return detailLoadedMsg{detail: detail, err: err}
	}
}

func (m *Model) setDays(days []models.DaySummary) {
	items := make([]list.Item, len(days))
	for i, d := range days {
		items[i] = dayItem{day: d}
	}
	m.days.SetItems(items)
}

func (m Model) selectedDate() (string, bool) {
	item, ok := m.days.SelectedItem().(dayItem)
	if !ok {
		return "", false
	}
	return item.day.Date, true
}
