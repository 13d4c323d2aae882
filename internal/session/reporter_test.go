package session

import (
	"errors"
	"testing"
)

func TestReporterSlotsAreIndependent(t *testing.T) {
	r := NewReporter()
	r.Report(SlotLoad, errors.New("load broke"))
	r.Report(SlotAdvance, errors.New("advance broke"))

	if msg, ok := r.Message(SlotLoad); !ok || msg != "load broke" {
		t.Fatalf("load slot wrong: %q %v", msg, ok)
	}
	r.Dismiss(SlotAdvance)
	if _, ok := r.Message(SlotAdvance); ok {
		t.Fatal("dismissed slot still occupied")
	}
	if _, ok := r.Message(SlotLoad); !ok {
		t.Fatal("dismiss must clear only its own slot")
	}
}

func TestReporterSuccessClearsOwnSlot(t *testing.T) {
	r := NewReporter()
	r.Report(SlotEnding, errors.New("boom"))
	r.Report(SlotDelete, errors.New("still here"))
	r.Report(SlotEnding, nil)

	if _, ok := r.Message(SlotEnding); ok {
		t.Fatal("success must clear the slot")
	}
	if _, ok := r.Message(SlotDelete); !ok {
		t.Fatal("unrelated slot cleared")
	}
}

func TestReporterAllReturnsCopy(t *testing.T) {
	r := NewReporter()
	r.Report(SlotLoad, errors.New("x"))
	all := r.All()
	all[SlotLoad] = "mutated"
	if msg, _ := r.Message(SlotLoad); msg != "x" {
		t.Fatalf("All must return a copy, reporter now holds %q", msg)
	}
}
