package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case daysLoadedMsg:
		m.err = msg.err
		if msg.err == nil {
			m.setDays(msg.days)
		}
		return m, nil

	case detailLoadedMsg:
		m.err = msg.err
		if msg.err == nil {
			m.selected = msg.detail.Date
			m.detail.SetContent(renderDetail(msg.detail))
			m.detail.GotoTop()
			m.state = StateDetail
		}
		return m, nil

	case tea.KeyMsg:
		if m.state == StateDays && m.days.FilterState() == list.Filtering {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			m.resize()
			return m, nil
		case key.Matches(msg, m.keys.Refresh):
			return m, m.loadDays()
		}

		switch m.state {
		case StateDays:
			if key.Matches(msg, m.keys.Enter) {
				if date, ok := m.selectedDate(); ok {
					return m, m.loadDetail(date)
				}
				return m, nil
			}
			if key.Matches(msg, m.keys.Tab) && m.selected != "" {
				m.state = StateDetail
				return m, nil
			}
		case StateDetail:
			if key.Matches(msg, m.keys.Back) || key.Matches(msg, m.keys.Tab) {
				m.state = StateDays
				return m, nil
			}
			m.detail, cmd = m.detail.Update(msg)
			return m, cmd
		}
	}

	if m.state == StateDays {
		m.days, cmd = m.days.Update(msg)
	}
	return m, cmd
}

func (m *Model) resize() {
	h, v := docStyle.GetFrameSize()
	// tabs and help
	chrome := 2
	if m.help.ShowAll {
		chrome = 5
	}
	width := m.width - h
	height := m.height - v - chrome
	if height < 0 {
		height = 0
	}
	m.days.SetSize(width, height)
	m.detail.Width = width
	m.detail.Height = height
	m.help.Width = m.width
}
