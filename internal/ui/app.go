package ui

import (
	"context"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mjarlund/fableday-tui/internal/api"
	"github.com/mjarlund/fableday-tui/internal/session"
	"github.com/mjarlund/fableday-tui/internal/story"
	"github.com/mjarlund/fableday-tui/internal/util"
)

const (
	viewLanding  = "landing"
	viewReader   = "reader"
	viewNewStory = "new_story"
	viewHelp     = "help"
)

// Messages -------------------------------------------------------------------

type storiesLoadedMsg struct {
	stories []story.Summary
	err     error
}

type demosLoadedMsg struct {
	demos []story.Demo
	err   error
}

type storyCreatedMsg struct {
	id  string
	err error
}

type storyDeletedMsg struct {
	id  string
	err error
}

// sessionUpdatedMsg fires when a controller operation finished, success or
// failure; the model re-reads controller state either way.
type sessionUpdatedMsg struct{}

type progressTickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg { return progressTickMsg(t) })
}

// Root model -----------------------------------------------------------------

type model struct {
	ctx     context.Context
	client  *api.Client
	cfg     util.Config
	log     *slog.Logger
	version string

	view       string
	helpReturn string
	themeName  string
	theme      palette
	width      int
	height     int

	landing landingState
	form    formState
	reader  readerState
}

func initialModel(ctx context.Context, client *api.Client, cfg util.Config, log *slog.Logger, version, storyID string) model {
	m := model{
		ctx:       ctx,
		client:    client,
		cfg:       cfg,
		log:       log,
		version:   version,
		view:      viewLanding,
		themeName: cfg.Theme,
		theme:     paletteFor(cfg.Theme),
		landing:   newLandingState(),
	}
	if storyID != "" {
		ctrl := session.New(client, storyID, log)
		m.reader = readerState{ctrl: ctrl, recap: cfg.Recap}
		m.reader.st = ctrl.State()
		m.view = viewReader
	}
	return m
}

func (m model) Init() tea.Cmd {
	if m.view == viewReader {
		return tea.Batch(m.reloadCmd(), tickCmd())
	}
	return tea.Batch(m.loadStoriesCmd(), m.loadDemosCmd())
}

func (m model) View() string {
	switch m.view {
	case viewReader:
		return m.renderReader()
	case viewNewStory:
		return m.renderForm()
	case viewHelp:
		return m.renderHelp()
	default:
		return m.renderLanding()
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.refreshReaderBody()
		return m, nil

	case storiesLoadedMsg:
		// Both refresh legs share the load slot: a success clears it only
		// once the other leg is clean too, so one leg's failure survives
		// the other's success.
		m.landing.loadingStories = false
		m.landing.storiesErr = msg.err
		if msg.err != nil {
			m.landing.errs.Report(session.SlotLoad, msg.err)
			return m, nil
		}
		m.landing.stories = msg.stories
		m.landing.clampCursor()
		if m.landing.demosErr == nil {
			m.landing.errs.Report(session.SlotLoad, nil)
		}
		return m, nil

	case demosLoadedMsg:
		m.landing.loadingDemos = false
		m.landing.demosErr = msg.err
		if msg.err != nil {
			m.landing.errs.Report(session.SlotLoad, msg.err)
			return m, nil
		}
		m.landing.demos = msg.demos
		m.landing.clampCursor()
		if m.landing.storiesErr == nil {
			m.landing.errs.Report(session.SlotLoad, nil)
		}
		return m, nil

	case storyCreatedMsg:
		// A failure lands on whichever surface started the creation: the
		// form renders its own status line, the landing only its banners.
		fromLanding := m.landing.creating
		m.landing.creating = false
		m.form.busy = false
		if msg.err != nil {
			if fromLanding {
				m.landing.errs.Report(session.SlotCreate, msg.err)
			} else {
				m.form.status = msg.err.Error()
			}
			return m, nil
		}
		m.landing.errs.Report(session.SlotCreate, nil)
		return m.openStory(msg.id)

	case storyDeletedMsg:
		m.landing.deleteBusy = false
		if msg.err != nil {
			m.landing.errs.Report(session.SlotDelete, msg.err)
			return m, nil
		}
		m.landing.errs.Report(session.SlotDelete, nil)
		m.landing.loadingStories = true
		return m, m.loadStoriesCmd()

	case sessionUpdatedMsg:
		if m.reader.ctrl != nil {
			m.reader.st = m.reader.ctrl.State()
			m.reader.scroll = 0
			m.refreshReaderBody()
		}
		return m, nil

	case progressTickMsg:
		if m.reader.ctrl != nil {
			m.reader.st = m.reader.ctrl.State()
			if m.reader.st.Busy() {
				return m, tickCmd()
			}
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg.String())
	}
	return m, nil
}

func (m model) handleKey(k string) (tea.Model, tea.Cmd) {
	if k == "ctrl+c" {
		return m, tea.Quit
	}
	switch m.view {
	case viewNewStory:
		return m.handleFormKey(k)
	case viewReader:
		return m.handleReaderKey(k)
	case viewHelp:
		if k == "esc" || k == "q" || k == "?" {
			m.view = m.helpReturn
			if m.view == "" {
				m.view = viewLanding
			}
		}
		return m, nil
	default:
		return m.handleLandingKey(k)
	}
}

func (m *model) cycleTheme(step int) {
	m.themeName = nextThemeName(m.themeName, step)
	m.theme = paletteFor(m.themeName)
}

// openStory starts a fresh session for one story. Sessions live only as
// long as the reader view; leaving it drops the controller entirely.
func (m model) openStory(id string) (tea.Model, tea.Cmd) {
	ctrl := session.New(m.client, id, m.log)
	m.reader = readerState{ctrl: ctrl, recap: m.cfg.Recap}
	m.reader.st = ctrl.State()
	m.view = viewReader
	m.form = formState{}
	return m, tea.Batch(m.reloadCmd(), tickCmd())
}

func (m model) renderHelp() string {
	return "FABLEDAY " + m.version + "\n\n" +
		"A reading client for day-by-day generated fiction. Pick a story,\n" +
		"choose an emotional stance for each new day, and request the final\n" +
		"chapter once the story has run its course.\n\n" +
		"Landing:  Tab switch lists | Enter open | n new story | d delete | r refresh\n" +
		"Reader:   h/l select chapter | e advance day | g write ending | c recap on/off\n" +
		"          r reload | x dismiss error | PgUp/PgDn scroll | b back\n" +
		"Anywhere: [ ] theme | ? help | Ctrl+C quit\n\n" +
		"Esc returns from subviews."
}
