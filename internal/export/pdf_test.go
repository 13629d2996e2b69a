package export

import (
	"bytes"
	"testing"

	"github.com/tatianab/tabletop-dm/internal/game"
)

func TestTranscript(t *testing.T) {
	s := game.NewSession()
	s.Stats.Name = "Aethelred"
	s.Stats.Class = "Rogue"
	s.AddMessage(game.SpeakerDM, "You awaken in a dimly lit tavern.", nil)
	s.AddMessage(game.SpeakerPlayer, "Look around.", nil)

	data, err := Transcript(s, "You woke up and looked around.")
	if err != nil {
		t.Fatalf("Transcript: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("output is not a PDF, starts with %q", data[:min(8, len(data))])
	}
}

func TestTranscriptEmptySession(t *testing.T) {
	data, err := Transcript(game.NewSession(), "")
	if err != nil {
		t.Fatalf("Transcript: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("empty session should still render a PDF")
	}
}
