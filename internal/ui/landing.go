package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mjarlund/fableday-tui/internal/session"
	"github.com/mjarlund/fableday-tui/internal/story"
)

const (
	tabStories = "stories"
	tabDemos   = "demos"
)

type landingState struct {
	tab     string
	stories []story.Summary
	demos   []story.Demo
	cursor  int

	loadingStories bool
	loadingDemos   bool
	storiesErr     error // last outcome per refresh leg
	demosErr       error
	creating       bool
	deletePending  string // story id awaiting confirmation
	deleteBusy     bool

	errs *session.Reporter
}

func newLandingState() landingState {
	return landingState{
		tab:            tabStories,
		loadingStories: true,
		loadingDemos:   true,
		errs:           session.NewReporter(),
	}
}

func (l *landingState) rows() int {
	if l.tab == tabDemos {
		return len(l.demos)
	}
	return len(l.stories)
}

func (l *landingState) clampCursor() {
	if n := l.rows(); l.cursor >= n {
		l.cursor = n - 1
	}
	if l.cursor < 0 {
		l.cursor = 0
	}
}

func (l *landingState) selectedStory() (story.Summary, bool) {
	if l.tab != tabStories || l.cursor >= len(l.stories) {
		return story.Summary{}, false
	}
	return l.stories[l.cursor], true
}

func (l *landingState) selectedDemo() (story.Demo, bool) {
	if l.tab != tabDemos || l.cursor >= len(l.demos) {
		return story.Demo{}, false
	}
	return l.demos[l.cursor], true
}

// Key handling ---------------------------------------------------------------

func (m model) handleLandingKey(k string) (tea.Model, tea.Cmd) {
	l := &m.landing

	if l.deletePending != "" {
		if k == "y" {
			id := l.deletePending
			l.deletePending = ""
			l.deleteBusy = true
			return m, m.deleteStoryCmd(id)
		}
		l.deletePending = ""
		return m, nil
	}

	switch k {
	case "q", "esc":
		return m, tea.Quit
	case "tab":
		if l.tab == tabStories {
			l.tab = tabDemos
		} else {
			l.tab = tabStories
		}
		l.cursor = 0
	case "up", "k":
		if l.cursor > 0 {
			l.cursor--
		}
	case "down", "j":
		l.cursor++
		l.clampCursor()
	case "enter":
		return m.openSelected()
	case "n":
		m.form = newFormState()
		m.view = viewNewStory
	case "d":
		if s, ok := l.selectedStory(); ok && !l.deleteBusy {
			l.deletePending = s.ID
		}
	case "r":
		l.loadingStories = true
		l.loadingDemos = true
		return m, tea.Batch(m.loadStoriesCmd(), m.loadDemosCmd())
	case "x":
		l.errs.Dismiss(session.SlotLoad)
		l.errs.Dismiss(session.SlotCreate)
		l.errs.Dismiss(session.SlotDelete)
	case "[":
		m.cycleTheme(-1)
	case "]":
		m.cycleTheme(1)
	case "?":
		m.helpReturn = viewLanding
		m.view = viewHelp
	}
	return m, nil
}

func (m model) openSelected() (tea.Model, tea.Cmd) {
	l := &m.landing
	if l.creating {
		return m, nil
	}
	if s, ok := l.selectedStory(); ok {
		return m.openStory(s.ID)
	}
	if d, ok := l.selectedDemo(); ok {
		l.creating = true
		return m, m.createFromDemoCmd(d)
	}
	return m, nil
}

// Commands -------------------------------------------------------------------

func (m model) loadStoriesCmd() tea.Cmd {
	client, ctx, limit := m.client, m.ctx, m.cfg.ListLimit
	return func() tea.Msg {
		stories, err := client.Stories(ctx, limit)
		return storiesLoadedMsg{stories: stories, err: err}
	}
}

func (m model) loadDemosCmd() tea.Cmd {
	client, ctx := m.client, m.ctx
	return func() tea.Msg {
		demos, err := client.Demos(ctx)
		return demosLoadedMsg{demos: demos, err: err}
	}
}

func (m model) createFromDemoCmd(d story.Demo) tea.Cmd {
	client, ctx := m.client, m.ctx
	return func() tea.Msg {
		created, err := client.CreateFromDemo(ctx, d.ID, d.TotalDays)
		return storyCreatedMsg{id: created.StoryID, err: err}
	}
}

func (m model) deleteStoryCmd(id string) tea.Cmd {
	client, ctx := m.client, m.ctx
	return func() tea.Msg {
		return storyDeletedMsg{id: id, err: client.DeleteStory(ctx, id)}
	}
}

// Rendering ------------------------------------------------------------------

func (m model) renderLanding() string {
	p := m.theme
	l := m.landing
	var b strings.Builder

	title := lipgloss.NewStyle().Bold(true).Foreground(p.Accent).Render("FABLEDAY")
	b.WriteString(title + "  " + lipgloss.NewStyle().Foreground(p.Muted).Render(m.version) + "\n\n")

	tabStyle := lipgloss.NewStyle().Foreground(p.Muted)
	activeTab := lipgloss.NewStyle().Bold(true).Foreground(p.Text).Underline(true)
	stories, demos := tabStyle.Render("Stories"), tabStyle.Render("Demos")
	if l.tab == tabStories {
		stories = activeTab.Render("Stories")
	} else {
		demos = activeTab.Render("Demos")
	}
	b.WriteString(stories + "   " + demos + "\n\n")

	if l.tab == tabStories {
		b.WriteString(m.renderStoryRows())
	} else {
		b.WriteString(m.renderDemoRows())
	}

	b.WriteString("\n")
	if l.deletePending != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(p.Warning).Render("Delete this story? y confirms, any other key cancels") + "\n")
	}
	if l.deleteBusy {
		b.WriteString(lipgloss.NewStyle().Foreground(p.Muted).Render("deleting…") + "\n")
	}
	if l.creating {
		b.WriteString(lipgloss.NewStyle().Foreground(p.Muted).Render("creating story…") + "\n")
	}
	for _, slot := range []session.Slot{session.SlotLoad, session.SlotCreate, session.SlotDelete} {
		if msg, ok := l.errs.Message(slot); ok {
			b.WriteString(lipgloss.NewStyle().Foreground(p.AccentAlt).Render(string(slot)+" failed: "+msg+"  [x] dismiss") + "\n")
		}
	}

	keys := "[Tab] lists  [Enter] open  [n] new  [d] delete  [r] refresh  [ ] theme  [?] help  [q] quit"
	b.WriteString("\n" + lipgloss.NewStyle().Foreground(p.Muted).Render(keys))
	return b.String()
}

func (m model) renderStoryRows() string {
	p := m.theme
	l := m.landing
	if l.loadingStories {
		return lipgloss.NewStyle().Foreground(p.Muted).Render("loading stories…") + "\n"
	}
	if len(l.stories) == 0 {
		return lipgloss.NewStyle().Foreground(p.Muted).Render("(no stories yet; press n to start one)") + "\n"
	}
	var b strings.Builder
	for i, s := range l.stories {
		cursor := "  "
		if i == l.cursor {
			cursor = "> "
		}
		genre := ""
		if s.Genre != "" {
			genre = lipgloss.NewStyle().Foreground(genreColor(s.Genre, p)).Render(s.Genre)
		}
		// Pad before styling so ANSI escapes do not skew the columns.
		progress := fmt.Sprintf("%-12s", fmt.Sprintf("day %d/%d", s.DayIndex, s.MaxDays))
		if s.Finished {
			progress = lipgloss.NewStyle().Foreground(p.Success).Render(fmt.Sprintf("%-12s", "finished"))
		}
		b.WriteString(fmt.Sprintf("%s%-36s %s %s\n", cursor, trim(s.Title, 36), progress, genre))
	}
	return b.String()
}

func (m model) renderDemoRows() string {
	p := m.theme
	l := m.landing
	if l.loadingDemos {
		return lipgloss.NewStyle().Foreground(p.Muted).Render("loading demos…") + "\n"
	}
	if len(l.demos) == 0 {
		return lipgloss.NewStyle().Foreground(p.Muted).Render("(no demo templates available)") + "\n"
	}
	var b strings.Builder
	for i, d := range l.demos {
		cursor := "  "
		if i == l.cursor {
			cursor = "> "
		}
		genre := ""
		if d.Genre != "" {
			genre = lipgloss.NewStyle().Foreground(genreColor(d.Genre, p)).Render(d.Genre)
		}
		b.WriteString(fmt.Sprintf("%s%-32s %2d days  %s\n", cursor, trim(d.Title, 32), d.TotalDays, genre))
		if i == l.cursor && d.Description != "" {
			b.WriteString("    " + lipgloss.NewStyle().Foreground(p.Muted).Render(trim(d.Description, 70)) + "\n")
		}
	}
	return b.String()
}

func trim(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}
