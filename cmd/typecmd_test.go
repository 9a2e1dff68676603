package cmd

import (
	"fmt"
	"testing"

	"github.com/ShreyashPatil123/Panther-update-sub001/internal/platform"
)

// keyRecorder captures key events in order. failAt fails the Nth event
// (1-based).
type keyRecorder struct {
	events []string
	failAt int
}

func (r *keyRecorder) KeyDown(vk platform.VK) error { return r.record("down", vk) }
func (r *keyRecorder) KeyUp(vk platform.VK) error   { return r.record("up", vk) }

func (r *keyRecorder) record(dir string, vk platform.VK) error {
	r.events = append(r.events, fmt.Sprintf("%s:0x%02X", dir, uint16(vk)))
	if r.failAt > 0 && len(r.events) == r.failAt {
		return fmt.Errorf("synthetic failure at event %d", len(r.events))
	}
	return nil
}

func TestTypeCommand_Flags(t *testing.T) {
	flags := typeCmd.Flags()

	tests := []struct {
		name     string
		flagType string
	}{
		{"text", "string"},
		{"chord", "string"},
		{"backend", "string"},
		{"delay", "int"},
		{"commit", "bool"},
		{"new-page", "bool"},
		{"page-url", "string"},
		{"pretty", "bool"},
	}

	for _, tt := range tests {
		f := flags.Lookup(tt.name)
		if f == nil {
			t.Errorf("expected flag %q not found", tt.name)
			continue
		}
		if f.Value.Type() != tt.flagType {
			t.Errorf("flag %q: expected type %q, got %q", tt.name, tt.flagType, f.Value.Type())
		}
	}
}

func TestPressKeystroke_PlainKey(t *testing.T) {
	rec := &keyRecorder{}
	ks, err := platform.ParseKey("a")
	if err != nil {
		t.Fatal(err)
	}

	if err := pressKeystroke(rec, ks, 0); err != nil {
		t.Fatal(err)
	}

	want := []string{
		fmt.Sprintf("down:0x%02X", uint16(ks.VK)),
		fmt.Sprintf("up:0x%02X", uint16(ks.VK)),
	}
	assertEvents(t, rec.events, want)
}

func TestPressKeystroke_ShiftWrapped(t *testing.T) {
	rec := &keyRecorder{}
	ks, err := platform.ParseKey("A")
	if err != nil {
		t.Fatal(err)
	}
	if !ks.Shift {
		t.Fatal("uppercase letter should need shift")
	}

	if err := pressKeystroke(rec, ks, 0); err != nil {
		t.Fatal(err)
	}

	want := []string{
		fmt.Sprintf("down:0x%02X", uint16(platform.VKShift)),
		fmt.Sprintf("down:0x%02X", uint16(ks.VK)),
		fmt.Sprintf("up:0x%02X", uint16(ks.VK)),
		fmt.Sprintf("up:0x%02X", uint16(platform.VKShift)),
	}
	assertEvents(t, rec.events, want)
}

func TestPressChord_ReleasesInReverse(t *testing.T) {
	rec := &keyRecorder{}
	keys, err := platform.ParseChord("ctrl+l")
	if err != nil {
		t.Fatal(err)
	}

	if err := pressChord(rec, keys, 0); err != nil {
		t.Fatal(err)
	}

	want := []string{
		fmt.Sprintf("down:0x%02X", uint16(keys[0].VK)),
		fmt.Sprintf("down:0x%02X", uint16(keys[1].VK)),
		fmt.Sprintf("up:0x%02X", uint16(keys[1].VK)),
		fmt.Sprintf("up:0x%02X", uint16(keys[0].VK)),
	}
	assertEvents(t, rec.events, want)
}

func TestPressChord_ReleasesHeldOnFailure(t *testing.T) {
	rec := &keyRecorder{failAt: 2} // second down fails
	keys, err := platform.ParseChord("ctrl+l")
	if err != nil {
		t.Fatal(err)
	}

	if err := pressChord(rec, keys, 0); err == nil {
		t.Fatal("expected error from failed key press")
	}

	// Ctrl went down before the failure, so it must come back up.
	last := rec.events[len(rec.events)-1]
	want := fmt.Sprintf("up:0x%02X", uint16(keys[0].VK))
	if last != want {
		t.Errorf("last event should release the held modifier: got %s, want %s", last, want)
	}
}

func TestTypeCommand_RequiresInput(t *testing.T) {
	if err := runType(typeCmd, nil); err == nil {
		t.Fatal("expected error when neither text nor chord is given")
	}
}

func assertEvents(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("event count: got %d (%v), want %d (%v)", len(got), got, len(want), want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event[%d]: got %s, want %s", i, got[i], want[i])
		}
	}
}
