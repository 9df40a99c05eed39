package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/pomo/internal/history"
)

// statsModel is the root model of the `pomo stats` dashboard.
type statsModel struct {
	store  *history.Store
	width  int
	height int

	offset int // 7-day blocks back from today (0 = current)
	stats  []history.DailyStat
	recent []history.Session

	totalCompleted int
	totalFocus     int64

	chart barchart.Model
	help  help.Model
}

func newStatsModel(s *history.Store) statsModel {
	h := help.New()
	h.ShowAll = false
	return statsModel{
		store: s,
		chart: barchart.New(60, 12),
		help:  h,
	}
}

// RunStats shows the history dashboard until the user quits.
func RunStats(s *history.Store) error {
	p := tea.NewProgram(newStatsModel(s), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("stats: %w", err)
	}
	return nil
}

type statsDataMsg struct {
	stats          []history.DailyStat
	recent         []history.Session
	totalCompleted int
	totalFocus     int64
}

func (m statsModel) Init() tea.Cmd {
	return m.refresh()
}

func (m statsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		from, to := m.dateRange()
		stats, _ := m.store.GetDailyStats(from, to)
		recent, _ := m.store.RecentSessions(8)
		completed, focus, _ := m.store.TotalStats()
		return statsDataMsg{
			stats:          stats,
			recent:         recent,
			totalCompleted: completed,
			totalFocus:     focus,
		}
	}
}

func (m statsModel) dateRange() (time.Time, time.Time) {
	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	end := today.AddDate(0, 0, 1-7*m.offset)
	start := end.AddDate(0, 0, -7)
	return start, end
}

func (m statsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.buildChart()
		return m, nil

	case statsDataMsg:
		m.stats = msg.stats
		m.recent = msg.recent
		m.totalCompleted = msg.totalCompleted
		m.totalFocus = msg.totalFocus
		m.buildChart()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, keys.Left):
			m.offset++
			return m, m.refresh()
		case key.Matches(msg, keys.Right):
			if m.offset > 0 {
				m.offset--
			}
			return m, m.refresh()
		}
	}
	return m, nil
}

func (m *statsModel) buildChart() {
	chartWidth := m.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 10
	if m.height > 30 {
		chartHeight = 14
	}

	m.chart = barchart.New(chartWidth, chartHeight)

	from, to := m.dateRange()

	var bars []barchart.BarData
	for d := from; d.Before(to); d = d.AddDate(0, 0, 1) {
		dateStr := d.Format("2006-01-02")
		label := d.Format("Mon 02")

		var values []barchart.BarValue
		for _, s := range m.stats {
			if s.Date == dateStr {
				hours := float64(s.FocusSeconds) / 3600.0
				values = append(values, barchart.BarValue{
					Name:  "focus",
					Value: hours,
					Style: lipgloss.NewStyle().Foreground(colorPrimary),
				})
			}
		}

		if len(values) == 0 {
			values = []barchart.BarValue{{Name: "", Value: 0, Style: lipgloss.NewStyle().Foreground(colorSubtle)}}
		}

		bars = append(bars, barchart.BarData{
			Label:  label,
			Values: values,
		})
	}

	m.chart.PushAll(bars)
	m.chart.Draw()
}

func (m statsModel) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	w := m.width - 4

	from, to := m.dateRange()
	dateLabel := mutedStyle.Render(fmt.Sprintf("%s — %s",
		from.Format("Jan 02"), to.Add(-24*time.Hour).Format("Jan 02, 2006")))

	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Pomodoro Stats"), "  ", activeTabStyle.Render("Focus hours"), "  ", dateLabel,
	)

	totals := mutedStyle.Render(fmt.Sprintf("  %d pomodoros completed all time · %s focused",
		m.totalCompleted, formatHours(m.totalFocus)))

	content := lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		m.chart.View(),
		"",
		m.renderWeekTable(w),
		"",
		m.renderRecent(w),
		totals,
	)

	footer := footerStyle.Render(m.help.View(keys))

	return lipgloss.JoinVertical(lipgloss.Left,
		panelStyle.Width(w).Render(content),
		footer,
	)
}

func (m statsModel) renderWeekTable(w int) string {
	if len(m.stats) == 0 {
		return mutedStyle.Render("  No sessions in this period")
	}

	var rows []string
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-12s %10s %12s %10s", "Date", "Done", "Interrupted", "Focus")))
	rows = append(rows, mutedStyle.Render("  "+strings.Repeat("─", minInt(w-6, 48))))

	for _, s := range m.stats {
		rows = append(rows, fmt.Sprintf("  %-12s %10d %12d %10s",
			s.Date, s.Completed, s.Interrupted, formatSeconds(s.FocusSeconds)))
	}

	return strings.Join(rows, "\n")
}

func (m statsModel) renderRecent(w int) string {
	if len(m.recent) == 0 {
		return ""
	}

	var rows []string
	rows = append(rows, titleStyle.Render("  Recent sessions"))
	for _, s := range m.recent {
		mark := successStyle.Render("●")
		note := ""
		if s.Status == history.StatusInterrupted {
			mark = warningStyle.Render("◌")
			note = mutedStyle.Render(fmt.Sprintf("  (%s left)", formatSeconds(s.Remaining)))
		}
		started := s.StartedAt.Local().Format("Jan 02 15:04")
		focus := formatSeconds(s.Duration - s.Remaining)
		rows = append(rows, fmt.Sprintf("  %s %s  %s%s",
			mark, started, highlightStyle.Render(focus), note))
	}
	return strings.Join(rows, "\n")
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
