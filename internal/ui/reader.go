package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mjarlund/fableday-tui/internal/session"
	"github.com/mjarlund/fableday-tui/internal/story"
)

type readerState struct {
	ctrl *session.Controller
	st   session.State

	recap     bool
	picker    bool
	pickerIdx int

	scroll    int
	maxScroll int

	rendered    string
	renderedKey string
}

// Key handling ---------------------------------------------------------------

func (m model) handleReaderKey(k string) (tea.Model, tea.Cmd) {
	r := &m.reader
	if r.picker {
		return m.handlePickerKey(k)
	}
	switch k {
	case "q", "esc", "b":
		// The session dies with the view; nothing is persisted locally.
		m.reader = readerState{}
		m.view = viewLanding
		m.landing.loadingStories = true
		m.landing.loadingDemos = true
		return m, tea.Batch(m.loadStoriesCmd(), m.loadDemosCmd())
	case "left", "h":
		m.selectStep(-1)
	case "right", "l":
		m.selectStep(1)
	case "e":
		if r.st.HasSnapshot && r.st.Snapshot.CanAdvance() && !r.st.Busy() {
			r.picker = true
			r.pickerIdx = 0
		}
	case "g":
		if r.st.HasSnapshot && r.st.Snapshot.EndingDue() && r.st.Ending == nil && !r.st.Busy() {
			return m, tea.Batch(m.generateEndingCmd(), tickCmd())
		}
	case "c":
		r.recap = !r.recap
	case "r":
		if !r.st.Busy() {
			return m, tea.Batch(m.reloadCmd(), tickCmd())
		}
	case "x":
		m.dismissFirstError()
	case "pgdown", "ctrl+f":
		r.scroll += 8
		m.clampScroll()
	case "pgup", "ctrl+b":
		r.scroll -= 8
		m.clampScroll()
	case "home":
		r.scroll = 0
	case "end":
		r.scroll = 1 << 30
		m.clampScroll()
	case "[":
		m.cycleTheme(-1)
	case "]":
		m.cycleTheme(1)
	case "?":
		m.helpReturn = viewReader
		m.view = viewHelp
	}
	return m, nil
}

func (m model) handlePickerKey(k string) (tea.Model, tea.Cmd) {
	r := &m.reader
	switch k {
	case "esc", "e":
		r.picker = false
	case "left", "h":
		if r.pickerIdx > 0 {
			r.pickerIdx--
		}
	case "right", "l":
		if r.pickerIdx < len(story.AllEmotions)-1 {
			r.pickerIdx++
		}
	case "enter":
		emotion := story.AllEmotions[r.pickerIdx]
		r.picker = false
		return m, tea.Batch(m.advanceCmd(emotion), tickCmd())
	default:
		if len(k) == 1 && k[0] >= '1' && k[0] <= '9' {
			idx := int(k[0] - '1')
			if idx < len(story.AllEmotions) {
				r.picker = false
				return m, tea.Batch(m.advanceCmd(story.AllEmotions[idx]), tickCmd())
			}
		}
	}
	return m, nil
}

// selectionRing is the navigable order: prologue and days as listed, then
// the ending when one exists.
func selectionRing(st session.State) []story.Selection {
	ring := make([]story.Selection, 0, len(st.Chapters)+1)
	for _, ch := range st.Chapters {
		ring = append(ring, story.SelectDay(ch.Day))
	}
	if st.Ending != nil {
		ring = append(ring, story.EndingSelection())
	}
	return ring
}

func (m *model) selectStep(step int) {
	r := &m.reader
	ring := selectionRing(r.st)
	if len(ring) == 0 {
		return
	}
	cur := 0
	for i, s := range ring {
		if s == r.st.Selection {
			cur = i
			break
		}
	}
	cur += step
	if cur < 0 {
		cur = 0
	}
	if cur >= len(ring) {
		cur = len(ring) - 1
	}
	r.ctrl.Select(ring[cur])
	r.st = r.ctrl.State()
	r.scroll = 0
	m.refreshReaderBody()
}

// dismissFirstError clears the first visible banner, in display order.
func (m *model) dismissFirstError() {
	r := &m.reader
	for _, slot := range []session.Slot{session.SlotLoad, session.SlotAdvance, session.SlotEnding} {
		if _, ok := r.st.Errors[slot]; ok {
			r.ctrl.DismissError(slot)
			r.st = r.ctrl.State()
			return
		}
	}
}

// Commands -------------------------------------------------------------------
// Remote failures surface through the controller's reporter, so the command
// results carry no error of their own.

func (m model) reloadCmd() tea.Cmd {
	ctrl, ctx := m.reader.ctrl, m.ctx
	return func() tea.Msg {
		_ = ctrl.Load(ctx)
		return sessionUpdatedMsg{}
	}
}

func (m model) advanceCmd(emotion story.Emotion) tea.Cmd {
	ctrl, ctx, recap := m.reader.ctrl, m.ctx, m.reader.recap
	return func() tea.Msg {
		_ = ctrl.AdvanceDay(ctx, emotion, recap, nil)
		return sessionUpdatedMsg{}
	}
}

func (m model) generateEndingCmd() tea.Cmd {
	ctrl, ctx := m.reader.ctrl, m.ctx
	return func() tea.Msg {
		_ = ctrl.GenerateEnding(ctx)
		return sessionUpdatedMsg{}
	}
}

// Body cache -----------------------------------------------------------------

// refreshReaderBody re-renders the selected chapter or ending markdown when
// the selection or window width changed.
func (m *model) refreshReaderBody() {
	r := &m.reader
	if r.ctrl == nil {
		return
	}
	st := r.st
	var text, key string
	switch {
	case st.Selection.IsEnding() && st.Ending != nil:
		e := st.Ending
		text = endingMarkdown(*e)
		key = "ending"
	case st.Selection.IsChapter():
		if ch, ok := story.ChapterByDay(st.Chapters, st.Selection.Day); ok {
			text = chapterMarkdown(ch)
			key = fmt.Sprintf("day:%d:%s", ch.Day, ch.ID)
		}
	}
	key = fmt.Sprintf("%s:w%d", key, m.width)
	if key == r.renderedKey {
		return
	}
	if text == "" {
		r.rendered = ""
		r.renderedKey = key
		return
	}
	r.rendered = renderMarkdown(text, m.bodyWidth())
	r.renderedKey = key
	m.clampScroll()
}

func chapterMarkdown(ch story.Chapter) string {
	if ch.Title != "" {
		return "# " + ch.Title + "\n\n" + ch.Text
	}
	return ch.Text
}

func endingMarkdown(e story.Ending) string {
	title := e.Title
	if title == "" {
		title = "Ending"
	}
	return "# " + title + "\n\n" + e.Text
}

func (m model) sidebarWidth() int {
	if m.width > 0 && m.width < 90 {
		return 26
	}
	return 32
}

func (m model) bodyWidth() int {
	w := m.width
	if w <= 0 {
		w = 100
	}
	return w - m.sidebarWidth() - 4
}

func (m *model) clampScroll() {
	r := &m.reader
	lines := strings.Count(r.rendered, "\n") + 1
	avail := m.height - 6
	if avail < 5 {
		avail = 5
	}
	max := lines - avail
	if max < 0 {
		max = 0
	}
	if r.scroll > max {
		r.scroll = max
	}
	if r.scroll < 0 {
		r.scroll = 0
	}
	r.maxScroll = max
}

// Layout rendering -----------------------------------------------------------

func (m model) renderReader() string {
	st := m.reader.st
	p := m.theme

	if !st.HasSnapshot {
		if msg, ok := st.Errors[session.SlotLoad]; ok {
			box := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(p.Border).Padding(1, 2)
			return box.Render("Could not load story\n\n" +
				lipgloss.NewStyle().Foreground(p.AccentAlt).Render(msg) +
				"\n\n[r] retry  [b] back")
		}
		return "\n  " + lipgloss.NewStyle().Foreground(p.Muted).Render(session.ProgressMessage(session.OpLoading, st.Elapsed())+"…")
	}

	top := m.renderReaderTopBar()
	strip := m.renderChapterStrip()
	body := m.renderReaderBody()
	side := lipgloss.NewStyle().
		Width(m.sidebarWidth()).
		Border(lipgloss.NormalBorder()).
		BorderForeground(p.Border).
		Padding(0, 1).
		Render(m.renderSidebar())
	joined := lipgloss.JoinHorizontal(lipgloss.Top, body, side)
	bottom := m.renderReaderBottomBar()
	return lipgloss.JoinVertical(lipgloss.Left, top, strip, joined, bottom)
}

func (m model) renderReaderTopBar() string {
	st := m.reader.st
	p := m.theme
	s := st.Snapshot

	left := "FABLEDAY • " + s.Title
	if s.Genre != "" {
		left += " • " + s.Genre
	}
	right := fmt.Sprintf("day %d/%d", s.DayIndex, s.MaxDays)
	if s.Finished {
		right = "finished"
	}
	if st.Ending != nil {
		right += " • ended"
	}
	w := m.width
	if w <= 0 {
		w = 100
	}
	gap := w - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return lipgloss.NewStyle().Bold(true).Foreground(p.Accent).Render(left + strings.Repeat(" ", gap) + right)
}

func (m model) renderChapterStrip() string {
	st := m.reader.st
	p := m.theme
	ring := selectionRing(st)
	if len(ring) == 0 {
		return lipgloss.NewStyle().Foreground(p.Muted).Render("(no chapters yet)")
	}
	parts := make([]string, 0, len(ring))
	for _, sel := range ring {
		label := "Ending"
		tint := p.AccentAlt
		if sel.IsChapter() {
			if ch, ok := story.ChapterByDay(st.Chapters, sel.Day); ok {
				label = ch.Label()
				tint = emotionColor(ch.Emotion, p)
			}
		}
		style := lipgloss.NewStyle().Foreground(tint)
		if sel == st.Selection {
			style = style.Bold(true).Underline(true)
		}
		parts = append(parts, style.Render(label))
	}
	return strings.Join(parts, lipgloss.NewStyle().Foreground(p.Muted).Render(" · "))
}

func (m model) renderReaderBody() string {
	r := m.reader
	text := r.rendered
	if text == "" {
		text = lipgloss.NewStyle().Foreground(m.theme.Muted).Render("(nothing to show yet; press e to write the first day)")
	}
	lines := strings.Split(text, "\n")
	avail := m.height - 6
	if avail < 5 {
		avail = 5
	}
	start := r.scroll
	if start > len(lines) {
		start = len(lines)
	}
	if len(lines) > avail {
		end := start + avail
		if end > len(lines) {
			end = len(lines)
		}
		lines = lines[start:end]
	}
	return lipgloss.NewStyle().Width(m.bodyWidth()).Render(strings.Join(lines, "\n"))
}

// Sidebar --------------------------------------------------------------------

func (m model) renderSidebar() string {
	st := m.reader.st
	p := m.theme
	s := st.Snapshot
	var b strings.Builder

	b.WriteString("TRAJECTORY\n")
	b.WriteString(m.renderTrajectory())
	if len(s.Top2Endings) > 0 {
		parts := make([]string, 0, 2)
		for _, e := range s.Top2Endings {
			parts = append(parts, fmt.Sprintf("%s %+d", e.Type, e.Score))
		}
		b.WriteString(lipgloss.NewStyle().Foreground(p.Muted).Render("top: "+strings.Join(parts, " / ")) + "\n")
	}
	b.WriteString("\n")

	b.WriteString("THREADS\n")
	if len(s.OpenThreads) == 0 {
		b.WriteString(lipgloss.NewStyle().Foreground(p.Muted).Render("none open") + "\n")
	} else {
		for _, th := range s.OpenThreads {
			b.WriteString("• " + trim(th, m.sidebarWidth()-6) + "\n")
		}
	}
	b.WriteString("\n")

	if s.LastEmotion != "" {
		swatch := lipgloss.NewStyle().Foreground(emotionColor(s.LastEmotion, p)).Render("●")
		b.WriteString("LAST STANCE\n" + swatch + " " + string(s.LastEmotion) + "\n\n")
	}

	if st.Ending != nil {
		b.WriteString("ENDING\n")
		b.WriteString(lipgloss.NewStyle().Foreground(endingColor(st.Ending.Type, p)).Render(string(st.Ending.Type)) + "\n")
		b.WriteString(fmt.Sprintf("resolved %d / open %d\n", len(st.Ending.Resolved), len(st.Ending.Unresolved)))
	}
	return b.String()
}

func (m model) renderTrajectory() string {
	st := m.reader.st
	vec := st.Snapshot.EndingVector
	if len(vec) == 0 {
		return lipgloss.NewStyle().Foreground(m.theme.Muted).Render("no signal yet") + "\n"
	}
	dom, _ := vec.Dominant()
	maxAbs := 1
	for _, e := range vec {
		v := e.Score
		if v < 0 {
			v = -v
		}
		if v > maxAbs {
			maxAbs = v
		}
	}
	p := m.theme
	var b strings.Builder
	for _, e := range vec {
		marker := "  "
		if e.Type == dom.Type {
			marker = "▸ "
		}
		name := lipgloss.NewStyle().Foreground(endingColor(e.Type, p)).Render(fmt.Sprintf("%-9s", trim(string(e.Type), 9)))
		b.WriteString(fmt.Sprintf("%s%s %s %+d\n", marker, name, scoreBar(e.Score, maxAbs), e.Score))
	}
	return b.String()
}

// scoreBar renders a 10-cell meter. Negative scores show empty; magnitude
// is relative to the largest absolute score in the vector.
func scoreBar(v, maxAbs int) string {
	width := 10
	if maxAbs <= 0 || v <= 0 {
		return strings.Repeat("·", width)
	}
	fill := int((float64(v)/float64(maxAbs))*float64(width) + 0.5)
	if fill > width {
		fill = width
	}
	return strings.Repeat("█", fill) + strings.Repeat("·", width-fill)
}

// Bottom bar -----------------------------------------------------------------

func (m model) renderReaderBottomBar() string {
	r := m.reader
	st := r.st
	p := m.theme
	var b strings.Builder

	if r.picker {
		b.WriteString(m.renderEmotionPicker() + "\n")
	}

	if st.Busy() {
		line := fmt.Sprintf("%s… (%ds)", session.ProgressMessage(st.Op, st.Elapsed()), int(st.Elapsed().Seconds()))
		b.WriteString(lipgloss.NewStyle().Foreground(p.Warning).Render(line) + "\n")
	}
	for _, slot := range []session.Slot{session.SlotLoad, session.SlotAdvance, session.SlotEnding} {
		if msg, ok := st.Errors[slot]; ok {
			b.WriteString(lipgloss.NewStyle().Foreground(p.AccentAlt).Render(string(slot)+" failed: "+msg+"  [x] dismiss") + "\n")
		}
	}

	keys := "[h/l] chapters  [e] next day  [g] ending  [c] recap:" + onOff(r.recap) + "  [r] reload  [b] back  [?] help"
	b.WriteString(lipgloss.NewStyle().Foreground(p.Muted).Render(keys))
	return b.String()
}

func (m model) renderEmotionPicker() string {
	r := m.reader
	p := m.theme
	parts := make([]string, 0, len(story.AllEmotions))
	for i, e := range story.AllEmotions {
		style := lipgloss.NewStyle().Foreground(emotionColor(e, p))
		label := fmt.Sprintf("%d %s", i+1, e)
		if i == r.pickerIdx {
			style = style.Bold(true).Reverse(true)
		}
		parts = append(parts, style.Render(label))
	}
	prompt := lipgloss.NewStyle().Bold(true).Foreground(p.Text).Render("Face the day with: ")
	return prompt + strings.Join(parts, "  ") + lipgloss.NewStyle().Foreground(p.Muted).Render("   (enter commits, esc cancels)")
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
