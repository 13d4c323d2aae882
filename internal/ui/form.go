package ui

import (
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mjarlund/fableday-tui/internal/api"
)

const (
	fieldTitle = iota
	fieldProtagonist
	fieldDays
	fieldQuick
	fieldCount
)

type formState struct {
	title       string
	protagonist string
	days        string
	quick       bool

	active int
	busy   bool
	status string
}

func newFormState() formState {
	return formState{days: "7"}
}

func (f *formState) activeText() *string {
	switch f.active {
	case fieldTitle:
		return &f.title
	case fieldProtagonist:
		return &f.protagonist
	case fieldDays:
		return &f.days
	}
	return nil
}

func (m model) handleFormKey(k string) (tea.Model, tea.Cmd) {
	f := &m.form
	if f.busy {
		return m, nil
	}
	switch k {
	case "esc":
		m.view = viewLanding
		return m, nil
	case "tab", "down":
		f.active = (f.active + 1) % fieldCount
	case "shift+tab", "up":
		f.active = (f.active + fieldCount - 1) % fieldCount
	case "enter":
		return m.submitForm()
	case "backspace":
		if t := f.activeText(); t != nil && len(*t) > 0 {
			*t = (*t)[:len(*t)-1]
		}
	case " ":
		if f.active == fieldQuick {
			f.quick = !f.quick
		} else if t := f.activeText(); t != nil && f.active != fieldDays {
			*t += " "
		}
	default:
		if t := f.activeText(); t != nil && isRuneInput(k) {
			if f.active == fieldDays && (k[0] < '0' || k[0] > '9') {
				return m, nil
			}
			*t += k
		}
	}
	return m, nil
}

func (m model) submitForm() (tea.Model, tea.Cmd) {
	f := &m.form
	days, err := strconv.Atoi(strings.TrimSpace(f.days))
	if err != nil || days <= 0 {
		f.status = "total days must be a positive number"
		return m, nil
	}
	req := api.CreateStoryRequest{
		Quick:       f.quick,
		Title:       strings.TrimSpace(f.title),
		Protagonist: strings.TrimSpace(f.protagonist),
		TotalDays:   days,
	}
	f.busy = true
	f.status = ""
	client, ctx := m.client, m.ctx
	return m, func() tea.Msg {
		created, err := client.CreateStory(ctx, req)
		if err != nil {
			return storyCreatedMsg{err: err}
		}
		return storyCreatedMsg{id: created.StoryID}
	}
}

func (m model) renderForm() string {
	f := m.form
	p := m.theme
	box := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(p.Border).Padding(1, 2).Width(60)

	cursor := func(field int) string {
		if f.active == field {
			return lipgloss.NewStyle().Foreground(p.Accent).Render("> ")
		}
		return "  "
	}
	quick := "[ ]"
	if f.quick {
		quick = "[x]"
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(p.Accent).Render("NEW STORY") + "\n\n")
	b.WriteString(cursor(fieldTitle) + "Title:       " + f.title + "\n")
	b.WriteString(cursor(fieldProtagonist) + "Protagonist: " + f.protagonist + "\n")
	b.WriteString(cursor(fieldDays) + "Total days:  " + f.days + "\n")
	b.WriteString(cursor(fieldQuick) + "Quick start: " + quick + lipgloss.NewStyle().Foreground(p.Muted).Render("  (space toggles)") + "\n")
	if f.busy {
		b.WriteString("\n" + lipgloss.NewStyle().Foreground(p.Warning).Render("creating…") + "\n")
	} else if f.status != "" {
		b.WriteString("\n" + lipgloss.NewStyle().Foreground(p.AccentAlt).Render(f.status) + "\n")
	}
	b.WriteString("\n" + lipgloss.NewStyle().Foreground(p.Muted).Render("[tab] next field  [enter] create  [esc] cancel"))
	return box.Render(b.String())
}

func isRuneInput(s string) bool {
	runes := []rune(s)
	return len(runes) == 1 && runes[0] >= 32 && runes[0] < 127
}
