package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/coursepulse/internal/app"
	"github.com/alexanderramin/coursepulse/internal/cli/formatter"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newBrowseCmd(a *App) *cobra.Command {
	var courseID, viewerID int64
	var group string

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse learners interactively and inspect their bars",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !a.interactive() {
				return errors.New("browse needs an interactive terminal; use overview instead")
			}
			m := newBrowseModel(cmd.Context(), a, courseID, viewerID, group)
			_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
			return err
		},
	}

	cmd.Flags().Int64Var(&courseID, "course", 0, "Course ID")
	cmd.Flags().Int64Var(&viewerID, "viewer", 0, "Staff member browsing")
	cmd.Flags().StringVar(&group, "group", "0", `Filter: "0", "group-<id>" or "grouping-<id>"`)
	_ = cmd.MarkFlagRequired("course")
	_ = cmd.MarkFlagRequired("viewer")

	return cmd
}

type browseKeys struct {
	Up      key.Binding
	Down    key.Binding
	Open    key.Binding
	Back    key.Binding
	Refresh key.Binding
	Quit    key.Binding
}

func defaultBrowseKeys() browseKeys {
	return browseKeys{
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Open:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open bar")),
		Back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k browseKeys) help(detail bool) string {
	bindings := []key.Binding{k.Up, k.Down, k.Open, k.Refresh, k.Quit}
	if detail {
		bindings = []key.Binding{k.Back, k.Refresh, k.Quit}
	}
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, h.Key+" "+formatter.Dim(h.Desc))
	}
	return strings.Join(parts, "  ")
}

type overviewLoadedMsg struct {
	resp *app.OverviewResponse
	err  error
}

type barLoadedMsg struct {
	resp *app.BarResponse
	err  error
}

// browseModel lists the overview and opens one learner's full bar on enter.
type browseModel struct {
	ctx      context.Context
	app      *App
	courseID int64
	viewerID int64
	group    string
	keys     browseKeys

	overview *app.OverviewResponse
	cursor   int
	detail   *app.BarResponse
	loading  bool
	err      error
	width    int
}

func newBrowseModel(ctx context.Context, a *App, courseID, viewerID int64, group string) browseModel {
	return browseModel{
		ctx:      ctx,
		app:      a,
		courseID: courseID,
		viewerID: viewerID,
		group:    group,
		keys:     defaultBrowseKeys(),
		loading:  true,
	}
}

func (m browseModel) Init() tea.Cmd {
	return m.loadOverview()
}

func (m browseModel) loadOverview() tea.Cmd {
	a, ctx := m.app, m.ctx
	req := app.NewOverviewRequest(m.courseID, m.viewerID)
	req.Layout = a.Config.Layout()
	req.Layout.Simple = true
	req.Group = m.group
	return func() tea.Msg {
		resp, err := a.Overview.GetOverview(ctx, req)
		return overviewLoadedMsg{resp: resp, err: err}
	}
}

func (m browseModel) loadBar(userID int64) tea.Cmd {
	a, ctx := m.app, m.ctx
	req := app.NewBarRequest(m.courseID, userID)
	req.ViewerID = m.viewerID
	req.Layout = a.Config.Layout()
	return func() tea.Msg {
		resp, err := a.Progress.GetBar(ctx, req)
		return barLoadedMsg{resp: resp, err: err}
	}
}

func (m browseModel) rowCount() int {
	if m.overview == nil {
		return 0
	}
	return len(m.overview.Rows)
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case overviewLoadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.overview = msg.resp
			if m.cursor >= m.rowCount() {
				m.cursor = max(0, m.rowCount()-1)
			}
		}
		return m, nil

	case barLoadedMsg:
		m.loading = false
		m.err = msg.err
		m.detail = msg.resp
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Refresh):
			m.loading = true
			m.err = nil
			if m.detail != nil {
				return m, m.loadBar(m.detail.Learner.ID)
			}
			return m, m.loadOverview()
		}

		if m.detail != nil {
			if key.Matches(msg, m.keys.Back) {
				m.detail = nil
			}
			return m, nil
		}

		switch {
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < m.rowCount()-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Open):
			if m.cursor < m.rowCount() {
				m.loading = true
				return m, m.loadBar(m.overview.Rows[m.cursor].Learner.ID)
			}
		}
	}

	return m, nil
}

func (m browseModel) View() string {
	var b strings.Builder

	switch {
	case m.loading:
		b.WriteString("\n  " + formatter.Dim("Loading..."))
	case m.err != nil:
		b.WriteString("\n")
		b.WriteString(formatter.RenderBox("Error", formatter.StyleRed.Render(m.err.Error())))
	case m.detail != nil:
		b.WriteString("\n")
		b.WriteString(formatter.FormatBar(m.detail))
	case m.overview != nil:
		b.WriteString("\n")
		b.WriteString(m.renderList())
	}

	b.WriteString("\n\n")
	b.WriteString(m.keys.help(m.detail != nil))
	b.WriteString("\n")
	return b.String()
}

func (m browseModel) renderList() string {
	resp := m.overview
	var b strings.Builder
	b.WriteString(formatter.Header(fmt.Sprintf("%s · %s", resp.Course.ShortName, resp.Group.String())))
	b.WriteString("\n\n")
	if len(resp.Rows) == 0 {
		b.WriteString(formatter.Dim("No learners match."))
		return b.String()
	}

	cols := append([]formatter.Column{{Title: " "}}, formatter.OverviewColumns()...)
	rows := make([][]string, 0, len(resp.Rows))
	for i, r := range resp.Rows {
		pointer := " "
		if i == m.cursor {
			pointer = formatter.StyleHeader.Render("›")
		}
		rows = append(rows, append([]string{pointer}, formatter.OverviewRow(r)...))
	}
	b.WriteString(formatter.RenderTable(cols, rows))
	return b.String()
}
