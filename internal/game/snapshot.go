package game

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Snapshot serializes the stats, inventory, and journal into the opaque
// game-state blob sent to the narrator. The class label is localized at
// snapshot time; everything else passes through unchanged.
func (s *Session) Snapshot(loc Locale) string {
	stats := s.Stats
	stats.Class = Label(loc, stats.Class)
	blob, err := json.Marshal(struct {
		Stats     Stats          `json:"stats"`
		Inventory []Item         `json:"inventory"`
		Journal   []JournalEntry `json:"journal"`
	}{stats, s.Inventory, s.Journal})
	if err != nil {
		// Only unmarshalable types reach this; the session holds none.
		return "{}"
	}
	return string(blob)
}

// FullSnapshot is the plot-discussion variant: the regular snapshot plus
// the dialogue transcript.
func (s *Session) FullSnapshot(loc Locale) string {
	stats := s.Stats
	stats.Class = Label(loc, stats.Class)
	blob, err := json.Marshal(struct {
		Stats     Stats          `json:"stats"`
		Inventory []Item         `json:"inventory"`
		Journal   []JournalEntry `json:"journal"`
		Dialogue  []Message      `json:"dialogue"`
	}{stats, s.Inventory, s.Journal, s.Dialogue})
	if err != nil {
		return "{}"
	}
	return string(blob)
}

// TranscriptLog renders the transcript one "Speaker: text" line per
// message, the form the recap prompt expects.
func (s *Session) TranscriptLog() string {
	lines := make([]string, 0, len(s.Dialogue))
	for _, m := range s.Dialogue {
		lines = append(lines, fmt.Sprintf("%s: %s", m.Speaker, m.Text))
	}
	return strings.Join(lines, "\n")
}

// SnapshotDraft serializes a setup draft for the setup assistant.
func SnapshotDraft(d *SetupDraft) string {
	blob, err := json.Marshal(d)
	if err != nil {
		return "{}"
	}
	return string(blob)
}
