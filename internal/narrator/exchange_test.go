package narrator

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/tatianab/tabletop-dm/internal/game"
)

// fakeClient scripts collaborator behavior per variant. A nil hook
// returns the zero response.
type fakeClient struct {
	dialogueTurn func(DialogueTurnRequest) (DialogueTurnResponse, error)
	setup        func(SetupSuggestionRequest) (SetupSuggestionResponse, error)
	attribute    func(AttributeSuggestionRequest) (AttributeSuggestionResponse, error)
	itemUse      func(ItemUseSuggestionRequest) (ItemUseSuggestionResponse, error)
	recap        func(RecapRequest) (RecapResponse, error)
	plot         func(PlotDiscussionRequest) (PlotDiscussionResponse, error)
}

func (f *fakeClient) DialogueTurn(_ context.Context, req DialogueTurnRequest) (DialogueTurnResponse, error) {
	if f.dialogueTurn == nil {
		return DialogueTurnResponse{}, nil
	}
	return f.dialogueTurn(req)
}

func (f *fakeClient) SetupSuggestion(_ context.Context, req SetupSuggestionRequest) (SetupSuggestionResponse, error) {
	if f.setup == nil {
		return SetupSuggestionResponse{}, nil
	}
	return f.setup(req)
}

func (f *fakeClient) AttributeSuggestion(_ context.Context, req AttributeSuggestionRequest) (AttributeSuggestionResponse, error) {
	if f.attribute == nil {
		return AttributeSuggestionResponse{}, nil
	}
	return f.attribute(req)
}

func (f *fakeClient) ItemUseSuggestion(_ context.Context, req ItemUseSuggestionRequest) (ItemUseSuggestionResponse, error) {
	if f.itemUse == nil {
		return ItemUseSuggestionResponse{}, nil
	}
	return f.itemUse(req)
}

func (f *fakeClient) Recap(_ context.Context, req RecapRequest) (RecapResponse, error) {
	if f.recap == nil {
		return RecapResponse{}, nil
	}
	return f.recap(req)
}

func (f *fakeClient) PlotDiscussion(_ context.Context, req PlotDiscussionRequest) (PlotDiscussionResponse, error) {
	if f.plot == nil {
		return PlotDiscussionResponse{}, nil
	}
	return f.plot(req)
}

func newTestSession() *game.Session {
	s := game.NewSession()
	s.Stats.Name = "Aethelred"
	s.AddAttribute(game.Attribute{Name: "DEX", Value: 16})
	s.AddMessage(game.SpeakerDM, "You awaken in a tavern.", game.DefaultChoices(game.LocaleEN))
	return s
}

func TestSubmitAppendsPlayerAndDMMessages(t *testing.T) {
	s := newTestSession()
	client := &fakeClient{
		dialogueTurn: func(req DialogueTurnRequest) (DialogueTurnResponse, error) {
			if req.Intent != "Look around." {
				t.Errorf("intent = %q", req.Intent)
			}
			if !strings.Contains(req.Snapshot, "Aethelred") {
				t.Errorf("snapshot missing stats: %s", req.Snapshot)
			}
			if req.Language != "en" {
				t.Errorf("language = %q", req.Language)
			}
			return DialogueTurnResponse{Dialogue: "The barkeep nods.", Scenario: "The room falls quiet."}, nil
		},
	}
	e := NewExchange(s, client, Options{})

	if err := e.SubmitFreeText(context.Background(), "Look around."); err != nil {
		t.Fatalf("SubmitFreeText: %v", err)
	}

	if len(s.Dialogue) != 3 {
		t.Fatalf("transcript length = %d", len(s.Dialogue))
	}
	player, dm := s.Dialogue[1], s.Dialogue[2]
	if player.Speaker != game.SpeakerPlayer || player.Text != "Look around." {
		t.Errorf("player message = %+v", player)
	}
	if dm.Speaker != game.SpeakerDM || dm.Text != "The barkeep nods.\n\nThe room falls quiet." {
		t.Errorf("dm message = %+v", dm)
	}
	if e.Busy() {
		t.Error("busy flag not cleared after success")
	}
}

func TestSubmitCollaboratorFailure(t *testing.T) {
	s := newTestSession()
	client := &fakeClient{
		dialogueTurn: func(DialogueTurnRequest) (DialogueTurnResponse, error) {
			return DialogueTurnResponse{}, errors.New("boom")
		},
	}
	e := NewExchange(s, client, Options{})

	if err := e.SubmitFreeText(context.Background(), "Open the door."); err != nil {
		t.Fatalf("collaborator failures must not surface as errors, got %v", err)
	}

	// The player's message stays; exactly one DM message with the fixed
	// connection-error text follows it.
	if len(s.Dialogue) != 3 {
		t.Fatalf("transcript length = %d", len(s.Dialogue))
	}
	if s.Dialogue[1].Speaker != game.SpeakerPlayer || s.Dialogue[1].Text != "Open the door." {
		t.Errorf("player message lost: %+v", s.Dialogue[1])
	}
	if got, want := s.Dialogue[2].Text, game.Label(game.LocaleEN, "error.connection"); got != want {
		t.Errorf("error notice = %q, want %q", got, want)
	}
	if len(s.Dialogue[2].Choices) == 0 {
		t.Error("error notice should carry forward the last choices")
	}
	if e.Busy() {
		t.Error("busy flag not cleared after failure")
	}
}

func TestSubmitSingleFlight(t *testing.T) {
	s := newTestSession()
	release := make(chan struct{})
	started := make(chan struct{})
	client := &fakeClient{
		dialogueTurn: func(DialogueTurnRequest) (DialogueTurnResponse, error) {
			close(started)
			<-release
			return DialogueTurnResponse{Dialogue: "d", Scenario: "s"}, nil
		},
	}
	e := NewExchange(s, client, Options{})

	done := make(chan error, 1)
	go func() { done <- e.SubmitFreeText(context.Background(), "first") }()

	<-started
	if !e.Busy() {
		t.Error("exchange should report busy while a turn is in flight")
	}
	if err := e.SubmitFreeText(context.Background(), "second"); !errors.Is(err, ErrBusy) {
		t.Errorf("concurrent submit = %v, want ErrBusy", err)
	}

	close(release)
	if err := <-done; err != nil {
		t.Fatalf("first submit: %v", err)
	}
	if e.Busy() {
		t.Error("busy flag not cleared")
	}

	// The rejected submission left no trace on the transcript.
	for _, m := range s.Dialogue {
		if m.Text == "second" {
			t.Error("rejected submission leaked into the transcript")
		}
	}
}

func TestSubmitActionGatesOnReadiness(t *testing.T) {
	s := newTestSession()
	calls := 0
	client := &fakeClient{
		dialogueTurn: func(req DialogueTurnRequest) (DialogueTurnResponse, error) {
			calls++
			if req.Intent != "Attack with Right Hand goblin" {
				t.Errorf("intent = %q", req.Intent)
			}
			return DialogueTurnResponse{Dialogue: "d", Scenario: "s"}, nil
		},
	}
	e := NewExchange(s, client, Options{})

	c := &game.Composer{}
	c.SetAction(game.ActionByID("attack"))
	if err := e.SubmitAction(context.Background(), c); err != nil {
		t.Fatalf("incomplete submit should be a silent no-op, got %v", err)
	}
	if calls != 0 || len(s.Dialogue) != 1 {
		t.Fatal("incomplete action must not reach the collaborator")
	}

	c.SetBodyPart(&game.BodyPart{ID: "bp_right_hand", Name: "bodypart.right_hand"})
	c.SetTarget("goblin")
	if err := e.SubmitAction(context.Background(), c); err != nil {
		t.Fatalf("SubmitAction: %v", err)
	}
	if calls != 1 {
		t.Fatalf("collaborator called %d times", calls)
	}
	if c.Action != nil {
		t.Error("composer not reset after submission")
	}
}

func TestSetupAssistAppliesPatch(t *testing.T) {
	s := newTestSession()
	background := "Raised by wolves."
	client := &fakeClient{
		setup: func(req SetupSuggestionRequest) (SetupSuggestionResponse, error) {
			if !strings.Contains(req.Snapshot, "Aethelred") {
				t.Errorf("draft snapshot missing name: %s", req.Snapshot)
			}
			return SetupSuggestionResponse{
				Suggestion: "How about a wilder past?",
				Patch:      &game.SetupPatch{Background: &background},
			}, nil
		},
	}
	e := NewExchange(s, client, Options{})

	draft := &game.SetupDraft{Name: "Aethelred", Background: "Street orphan."}
	suggestion, err := e.SetupAssist(context.Background(), draft, "Give me a darker background")
	if err != nil {
		t.Fatalf("SetupAssist: %v", err)
	}
	if suggestion != "How about a wilder past?" {
		t.Errorf("suggestion = %q", suggestion)
	}
	if draft.Background != background {
		t.Errorf("patch not applied: %q", draft.Background)
	}
	if draft.Name != "Aethelred" {
		t.Errorf("unpatched field changed: %q", draft.Name)
	}
}

func TestSuggestAttributeDoesNotAutoApply(t *testing.T) {
	s := newTestSession()
	client := &fakeClient{
		attribute: func(req AttributeSuggestionRequest) (AttributeSuggestionResponse, error) {
			if len(req.Existing) != 1 || req.Existing[0] != "DEX" {
				t.Errorf("existing = %v", req.Existing)
			}
			return AttributeSuggestionResponse{Name: "Stealth", Reason: "You keep sneaking."}, nil
		},
	}
	e := NewExchange(s, client, Options{})

	resp, err := e.SuggestAttribute(context.Background())
	if err != nil {
		t.Fatalf("SuggestAttribute: %v", err)
	}
	if resp.Name != "Stealth" {
		t.Errorf("resp = %+v", resp)
	}
	if len(s.Stats.Attributes) != 1 {
		t.Error("suggestion must not auto-apply")
	}
}

func TestSuggestItemUse(t *testing.T) {
	s := newTestSession()
	s.AddItem(game.Item{Name: "Rope"})
	client := &fakeClient{
		itemUse: func(req ItemUseSuggestionRequest) (ItemUseSuggestionResponse, error) {
			if len(req.Items) != 1 || req.Items[0] != "Rope" {
				t.Errorf("items = %v", req.Items)
			}
			if !strings.Contains(req.Situation, "tavern") {
				t.Errorf("situation = %q", req.Situation)
			}
			return ItemUseSuggestionResponse{Suggestion: "Tie up the barkeep."}, nil
		},
	}
	e := NewExchange(s, client, Options{})

	got, err := e.SuggestItemUse(context.Background())
	if err != nil {
		t.Fatalf("SuggestItemUse: %v", err)
	}
	if got != "Tie up the barkeep." {
		t.Errorf("suggestion = %q", got)
	}
}

func TestRecapUsesTranscriptLog(t *testing.T) {
	s := newTestSession()
	client := &fakeClient{
		recap: func(req RecapRequest) (RecapResponse, error) {
			if !strings.HasPrefix(req.Log, "DM: You awaken in a tavern.") {
				t.Errorf("log = %q", req.Log)
			}
			return RecapResponse{Summary: "You woke up."}, nil
		},
	}
	e := NewExchange(s, client, Options{})

	got, err := e.Recap(context.Background())
	if err != nil {
		t.Fatalf("Recap: %v", err)
	}
	if got != "You woke up." {
		t.Errorf("summary = %q", got)
	}
}

func TestDiscussPlotStaysOffTranscript(t *testing.T) {
	s := newTestSession()
	client := &fakeClient{
		plot: func(req PlotDiscussionRequest) (PlotDiscussionResponse, error) {
			if !strings.Contains(req.Snapshot, "dialogue") {
				t.Errorf("plot snapshot should include the transcript: %s", req.Snapshot)
			}
			return PlotDiscussionResponse{Response: "Consider the cloaked figure."}, nil
		},
	}
	e := NewExchange(s, client, Options{})

	before := len(s.Dialogue)
	got, err := e.DiscussPlot(context.Background(), "Where should I go next?")
	if err != nil {
		t.Fatalf("DiscussPlot: %v", err)
	}
	if got != "Consider the cloaked figure." {
		t.Errorf("response = %q", got)
	}
	if len(s.Dialogue) != before {
		t.Error("plot discussion polluted the main transcript")
	}
	if len(s.Discussion) != 2 {
		t.Fatalf("discussion log length = %d", len(s.Discussion))
	}
	if s.Discussion[0].Speaker != game.SpeakerPlayer || s.Discussion[1].Speaker != game.SpeakerDM {
		t.Errorf("discussion speakers wrong: %+v", s.Discussion)
	}
}

func TestSystemPromptOverridePassesThrough(t *testing.T) {
	s := newTestSession()
	var seen string
	client := &fakeClient{
		dialogueTurn: func(req DialogueTurnRequest) (DialogueTurnResponse, error) {
			seen = req.SystemPrompt
			return DialogueTurnResponse{Dialogue: "d", Scenario: "s"}, nil
		},
	}
	e := NewExchange(s, client, Options{
		SystemPrompt: func() string { return "Always rhyme." },
	})

	if err := e.SubmitChoice(context.Background(), "Say nothing."); err != nil {
		t.Fatalf("SubmitChoice: %v", err)
	}
	if seen != "Always rhyme." {
		t.Errorf("system prompt = %q", seen)
	}
}

func TestTimeoutIsACollaboratorFailure(t *testing.T) {
	s := newTestSession()
	slow := &fakeClient{
		dialogueTurn: func(DialogueTurnRequest) (DialogueTurnResponse, error) {
			time.Sleep(50 * time.Millisecond)
			return DialogueTurnResponse{}, context.DeadlineExceeded
		},
	}
	e := NewExchange(s, slow, Options{Timeout: 10 * time.Millisecond})

	if err := e.SubmitFreeText(context.Background(), "wait"); err != nil {
		t.Fatalf("timeout must be absorbed, got %v", err)
	}
	last := s.Dialogue[len(s.Dialogue)-1]
	if last.Text != game.Label(game.LocaleEN, "error.connection") {
		t.Errorf("timeout should surface the connection notice, got %q", last.Text)
	}
}
