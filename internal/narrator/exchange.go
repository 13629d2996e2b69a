package narrator

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/tatianab/tabletop-dm/internal/game"
)

// ErrBusy is returned when a dialogue turn is submitted while another is
// still in flight. At most one outstanding turn is allowed per session.
var ErrBusy = errors.New("a narrative exchange is already in flight")

// DefaultTimeout bounds a single collaborator call. A call that exceeds
// it fails like any other collaborator error.
const DefaultTimeout = 60 * time.Second

// Exchange drives the narrative protocol for one session: it serializes
// state into requests, applies responses to the transcript, and enforces
// the single-flight rule for dialogue turns. Advisory variants (recap,
// suggestions) do not mutate the session and are not gated.
type Exchange struct {
	session *game.Session
	client  Client
	locale  game.Locale
	timeout time.Duration

	// systemPrompt supplies the debug override for each call; nil or an
	// empty result means the client's default instruction is used.
	systemPrompt func() string

	mu   sync.Mutex
	busy bool
}

// Options configures an Exchange. Zero values fall back to English and
// DefaultTimeout.
type Options struct {
	Locale       game.Locale
	Timeout      time.Duration
	SystemPrompt func() string
}

// NewExchange creates the exchange orchestrator for a session.
func NewExchange(session *game.Session, client Client, opts Options) *Exchange {
	if opts.Locale == "" {
		opts.Locale = game.LocaleEN
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	return &Exchange{
		session:      session,
		client:       client,
		locale:       opts.Locale,
		timeout:      opts.Timeout,
		systemPrompt: opts.SystemPrompt,
	}
}

// Busy reports whether a dialogue turn is outstanding. The UI disables
// submission while true.
func (e *Exchange) Busy() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.busy
}

func (e *Exchange) begin() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.busy {
		return false
	}
	e.busy = true
	return true
}

func (e *Exchange) end() {
	e.mu.Lock()
	e.busy = false
	e.mu.Unlock()
}

func (e *Exchange) override() string {
	if e.systemPrompt == nil {
		return ""
	}
	return e.systemPrompt()
}

// SubmitFreeText plays one dialogue turn from arbitrary player text: the
// text becomes a Player message, the collaborator answers, and its reply
// (or the fixed connection-error notice) becomes the next DM message.
// Returns ErrBusy when a turn is already outstanding; collaborator
// failures are absorbed into the transcript, never returned.
func (e *Exchange) SubmitFreeText(ctx context.Context, text string) error {
	return e.submit(ctx, text)
}

// SubmitChoice plays one dialogue turn from a typed choice.
func (e *Exchange) SubmitChoice(ctx context.Context, choice string) error {
	return e.submit(ctx, choice)
}

// SubmitAction submits the composed action when the composer is ready,
// then clears the composer back to idle. Submitting an incomplete
// composition is a silent no-op.
func (e *Exchange) SubmitAction(ctx context.Context, c *game.Composer) error {
	if !c.Ready() {
		return nil
	}
	text := c.ComposeText(e.locale)
	c.Reset()
	return e.submit(ctx, text)
}

func (e *Exchange) submit(ctx context.Context, intent string) error {
	if !e.begin() {
		return ErrBusy
	}
	defer e.end()

	// The player's message is committed before the call and survives any
	// failure of it.
	e.session.AddMessage(game.SpeakerPlayer, intent, nil)

	req := DialogueTurnRequest{
		Intent:       intent,
		Snapshot:     e.session.Snapshot(e.locale),
		Language:     string(e.locale),
		SystemPrompt: e.override(),
	}

	callCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	resp, err := e.client.DialogueTurn(callCtx, req)
	if err != nil {
		log.Printf("narrator: dialogue turn failed: %v", err)
		e.session.AddMessage(game.SpeakerDM, game.Label(e.locale, "error.connection"), e.lastChoices())
		return nil
	}

	e.session.AddMessage(game.SpeakerDM, resp.Dialogue+"\n\n"+resp.Scenario, game.DefaultChoices(e.locale))
	return nil
}

// lastChoices carries the previous DM message's choices forward on the
// error path so the player can still pick one and retry.
func (e *Exchange) lastChoices() []string {
	if m := e.session.LastDMMessage(); m != nil {
		return m.Choices
	}
	return nil
}

// SetupAssist sends the draft plus the player's request to the setup
// assistant, shallow-merges any returned field patch onto the draft, and
// returns the conversational suggestion.
func (e *Exchange) SetupAssist(ctx context.Context, draft *game.SetupDraft, request string) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	resp, err := e.client.SetupSuggestion(callCtx, SetupSuggestionRequest{
		Snapshot:     game.SnapshotDraft(draft),
		Request:      request,
		Language:     string(e.locale),
		SystemPrompt: e.override(),
	})
	if err != nil {
		return "", err
	}
	if !resp.Patch.IsZero() {
		draft.Apply(resp.Patch)
	}
	return resp.Suggestion, nil
}

// SuggestAttribute asks for one new attribute based on the transcript.
// Purely advisory: accepting the proposal is the caller's explicit
// AddAttribute.
func (e *Exchange) SuggestAttribute(ctx context.Context) (AttributeSuggestionResponse, error) {
	callCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	return e.client.AttributeSuggestion(callCtx, AttributeSuggestionRequest{
		History:      e.session.TranscriptLog(),
		Existing:     e.session.AttributeNames(),
		SystemPrompt: e.override(),
	})
}

// SuggestItemUse asks how the carried items could help with the most
// recent DM message. Purely advisory.
func (e *Exchange) SuggestItemUse(ctx context.Context) (string, error) {
	situation := ""
	if m := e.session.LastDMMessage(); m != nil {
		situation = m.Text
	}

	callCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	resp, err := e.client.ItemUseSuggestion(callCtx, ItemUseSuggestionRequest{
		Items:     e.session.ItemNames(),
		Situation: situation,
	})
	if err != nil {
		return "", err
	}
	return resp.Suggestion, nil
}

// Recap summarizes the whole transcript. Purely advisory.
func (e *Exchange) Recap(ctx context.Context) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	resp, err := e.client.Recap(callCtx, RecapRequest{
		Log:          e.session.TranscriptLog(),
		Language:     string(e.locale),
		SystemPrompt: e.override(),
	})
	if err != nil {
		return "", err
	}
	return resp.Summary, nil
}

// DiscussPlot holds an out-of-character exchange about the plot. Both
// sides are recorded on the session's discussion log, never the main
// transcript.
func (e *Exchange) DiscussPlot(ctx context.Context, query string) (string, error) {
	e.session.AddDiscussionMessage(game.SpeakerPlayer, query)

	callCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	resp, err := e.client.PlotDiscussion(callCtx, PlotDiscussionRequest{
		Query:        query,
		Snapshot:     e.session.FullSnapshot(e.locale),
		Language:     string(e.locale),
		SystemPrompt: e.override(),
	})
	if err != nil {
		return "", err
	}
	e.session.AddDiscussionMessage(game.SpeakerDM, resp.Response)
	return resp.Response, nil
}
