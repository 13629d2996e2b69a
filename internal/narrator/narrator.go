// Package narrator handles every exchange with the external
// text-generation collaborator that plays dungeon master: turning session
// state into requests, and merging structured responses back into the
// transcript. It is the single choke point for those calls.
package narrator

import (
	"context"

	"github.com/tatianab/tabletop-dm/internal/game"
)

// DialogueTurnRequest carries one player turn plus the state the DM needs
// to ground its reply.
type DialogueTurnRequest struct {
	Intent       string // choice text, free text, or composed action
	Snapshot     string // opaque serialized game state
	Language     string
	SystemPrompt string // optional override, empty means default
}

// DialogueTurnResponse is the DM's reply: in-character dialogue plus a
// scenario description.
type DialogueTurnResponse struct {
	Dialogue string `json:"dialogue"`
	Scenario string `json:"scenario"`
}

// SetupSuggestionRequest asks the setup assistant for help with the
// character/world draft.
type SetupSuggestionRequest struct {
	Snapshot     string // serialized setup draft
	Request      string
	Language     string
	SystemPrompt string
}

// SetupSuggestionResponse is a conversational suggestion plus an optional
// partial update to the draft fields.
type SetupSuggestionResponse struct {
	Suggestion string           `json:"suggestion"`
	Patch      *game.SetupPatch `json:"updated_fields,omitempty"`
}

// AttributeSuggestionRequest asks for one new attribute grounded in the
// recent dialogue. Existing names are a soft "avoid duplicates" hint for
// the collaborator, not enforced locally.
type AttributeSuggestionRequest struct {
	History      string
	Existing     []string
	SystemPrompt string
}

// AttributeSuggestionResponse proposes a single attribute. Applying it is
// a separate, explicit step.
type AttributeSuggestionResponse struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// ItemUseSuggestionRequest asks how carried items could help with the
// current situation.
type ItemUseSuggestionRequest struct {
	Items     []string
	Situation string
}

// ItemUseSuggestionResponse is purely advisory.
type ItemUseSuggestionResponse struct {
	Suggestion string `json:"suggested_use"`
}

// RecapRequest asks for a summary of the session log.
type RecapRequest struct {
	Log          string
	Language     string
	SystemPrompt string
}

// RecapResponse is purely advisory.
type RecapResponse struct {
	Summary string `json:"summary"`
}

// PlotDiscussionRequest is an out-of-character question to the DM.
type PlotDiscussionRequest struct {
	Query        string
	Snapshot     string
	Language     string
	SystemPrompt string
}

// PlotDiscussionResponse is the DM's collaborative answer, kept on the
// side discussion log rather than the main transcript.
type PlotDiscussionResponse struct {
	Response string `json:"dm_response"`
}

// Client is the contract with the narrative collaborator: one opaque
// asynchronous function per exchange variant. Implementations own prompt
// construction and transport; callers own state.
type Client interface {
	DialogueTurn(ctx context.Context, req DialogueTurnRequest) (DialogueTurnResponse, error)
	SetupSuggestion(ctx context.Context, req SetupSuggestionRequest) (SetupSuggestionResponse, error)
	AttributeSuggestion(ctx context.Context, req AttributeSuggestionRequest) (AttributeSuggestionResponse, error)
	ItemUseSuggestion(ctx context.Context, req ItemUseSuggestionRequest) (ItemUseSuggestionResponse, error)
	Recap(ctx context.Context, req RecapRequest) (RecapResponse, error)
	PlotDiscussion(ctx context.Context, req PlotDiscussionRequest) (PlotDiscussionResponse, error)
}
