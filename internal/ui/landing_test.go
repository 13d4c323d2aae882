package ui

import (
	"errors"
	"strings"
	"testing"

	"github.com/mjarlund/fableday-tui/internal/session"
	"github.com/mjarlund/fableday-tui/internal/story"
)

func TestDemoCreateFailureLandsInBanner(t *testing.T) {
	m := model{view: viewLanding, landing: newLandingState()}
	m.landing.loadingDemos = false
	m.landing.tab = tabDemos
	m.landing.demos = []story.Demo{{ID: "d1", Title: "Demo", TotalDays: 5}}

	got, _ := m.handleLandingKey("enter")
	m = got.(model)
	if !m.landing.creating {
		t.Fatal("enter on a demo should start creation")
	}

	got, _ = m.Update(storyCreatedMsg{err: errors.New("model overloaded")})
	m = got.(model)
	if m.landing.creating {
		t.Fatal("creating flag should drop on failure")
	}
	if _, ok := m.landing.errs.Message(session.SlotCreate); !ok {
		t.Fatal("landing creation failure must occupy the create slot")
	}
	if m.form.status != "" {
		t.Fatalf("form status is not the landing surface, got %q", m.form.status)
	}
	if !strings.Contains(m.renderLanding(), "model overloaded") {
		t.Fatal("landing view should show the creation failure")
	}

	got, _ = m.handleLandingKey("x")
	m = got.(model)
	if _, ok := m.landing.errs.Message(session.SlotCreate); ok {
		t.Fatal("x should dismiss the create banner")
	}
}

func TestFormCreateFailureStaysInForm(t *testing.T) {
	m := model{view: viewNewStory, landing: newLandingState()}
	m.form = newFormState()
	m.form.busy = true

	got, _ := m.Update(storyCreatedMsg{err: errors.New("boom")})
	m = got.(model)
	if m.form.busy {
		t.Fatal("busy flag should drop on failure")
	}
	if m.form.status != "boom" {
		t.Fatalf("form status = %q, want boom", m.form.status)
	}
	if _, ok := m.landing.errs.Message(session.SlotCreate); ok {
		t.Fatal("form failures do not use the landing reporter")
	}
}

func TestLoadSlotClearsOnlyWhenBothLegsSucceed(t *testing.T) {
	m := model{view: viewLanding, landing: newLandingState()}

	got, _ := m.Update(demosLoadedMsg{err: errors.New("demos down")})
	m = got.(model)
	got, _ = m.Update(storiesLoadedMsg{stories: []story.Summary{{ID: "s1"}}})
	m = got.(model)
	if len(m.landing.stories) != 1 {
		t.Fatalf("stories should still apply, got %d", len(m.landing.stories))
	}
	if _, ok := m.landing.errs.Message(session.SlotLoad); !ok {
		t.Fatal("stories success must not clear the demos failure")
	}

	got, _ = m.Update(demosLoadedMsg{demos: []story.Demo{{ID: "d1"}}})
	m = got.(model)
	if msg, ok := m.landing.errs.Message(session.SlotLoad); ok {
		t.Fatalf("slot should clear once both legs succeed, got %q", msg)
	}
}
