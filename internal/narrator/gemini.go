package narrator

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"text/template"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

//go:embed prompts/dialogue_turn.txt
var dialogueTurnPrompt string

//go:embed prompts/setup_suggestion.txt
var setupSuggestionPrompt string

//go:embed prompts/attribute_suggestion.txt
var attributeSuggestionPrompt string

//go:embed prompts/item_use_suggestion.txt
var itemUseSuggestionPrompt string

//go:embed prompts/recap.txt
var recapPrompt string

//go:embed prompts/plot_discussion.txt
var plotDiscussionPrompt string

const defaultModel = "gemini-2.5-flash"

// Gemini is the Client implementation backed by Google's generative AI
// API. It renders a prompt template per variant and expects the model to
// answer with a single JSON object.
type Gemini struct {
	client    *genai.Client
	modelName string
}

// NewGemini creates a Gemini-backed narrator client.
func NewGemini(ctx context.Context, apiKey string) (*Gemini, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}
	return &Gemini{client: client, modelName: defaultModel}, nil
}

func (g *Gemini) Close() {
	g.client.Close()
}

// generate renders the template with data, sends it, and returns the raw
// text reply. systemPrompt, when non-empty, overrides the model's system
// instruction for this call only.
func (g *Gemini) generate(ctx context.Context, name, tmplText, systemPrompt string, data any) (string, error) {
	tmpl, err := template.New(name).Parse(tmplText)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	model := g.client.GenerativeModel(g.modelName)
	if systemPrompt != "" {
		model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(systemPrompt)}}
	}

	resp, err := model.GenerateContent(ctx, genai.Text(buf.String()))
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no content returned from Gemini")
	}
	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return "", fmt.Errorf("unexpected response type from Gemini")
	}
	return string(text), nil
}

// decodeJSON strips the markdown fencing the model sometimes wraps its
// output in, then unmarshals into out.
func decodeJSON(raw string, out any) error {
	clean := strings.TrimSpace(raw)
	clean = strings.TrimPrefix(clean, "```json")
	clean = strings.TrimPrefix(clean, "```")
	clean = strings.TrimSuffix(clean, "```")
	clean = strings.TrimSpace(clean)
	if err := json.Unmarshal([]byte(clean), out); err != nil {
		return fmt.Errorf("failed to parse JSON: %v\nOutput was: %s", err, clean)
	}
	return nil
}

func (g *Gemini) DialogueTurn(ctx context.Context, req DialogueTurnRequest) (DialogueTurnResponse, error) {
	var out DialogueTurnResponse
	raw, err := g.generate(ctx, "dialogue_turn", dialogueTurnPrompt, req.SystemPrompt, struct {
		Intent, Snapshot, Language string
	}{req.Intent, req.Snapshot, req.Language})
	if err != nil {
		return out, err
	}
	if err := decodeJSON(raw, &out); err != nil {
		return out, err
	}
	return out, nil
}

func (g *Gemini) SetupSuggestion(ctx context.Context, req SetupSuggestionRequest) (SetupSuggestionResponse, error) {
	var out SetupSuggestionResponse
	raw, err := g.generate(ctx, "setup_suggestion", setupSuggestionPrompt, req.SystemPrompt, struct {
		Snapshot, Request, Language string
	}{req.Snapshot, req.Request, req.Language})
	if err != nil {
		return out, err
	}
	if err := decodeJSON(raw, &out); err != nil {
		return out, err
	}
	return out, nil
}

func (g *Gemini) AttributeSuggestion(ctx context.Context, req AttributeSuggestionRequest) (AttributeSuggestionResponse, error) {
	var out AttributeSuggestionResponse
	raw, err := g.generate(ctx, "attribute_suggestion", attributeSuggestionPrompt, req.SystemPrompt, struct {
		History  string
		Existing string
	}{req.History, strings.Join(req.Existing, ", ")})
	if err != nil {
		return out, err
	}
	if err := decodeJSON(raw, &out); err != nil {
		return out, err
	}
	return out, nil
}

func (g *Gemini) ItemUseSuggestion(ctx context.Context, req ItemUseSuggestionRequest) (ItemUseSuggestionResponse, error) {
	var out ItemUseSuggestionResponse
	raw, err := g.generate(ctx, "item_use_suggestion", itemUseSuggestionPrompt, "", struct {
		Items     string
		Situation string
	}{strings.Join(req.Items, ", "), req.Situation})
	if err != nil {
		return out, err
	}
	if err := decodeJSON(raw, &out); err != nil {
		return out, err
	}
	return out, nil
}

func (g *Gemini) Recap(ctx context.Context, req RecapRequest) (RecapResponse, error) {
	var out RecapResponse
	raw, err := g.generate(ctx, "recap", recapPrompt, req.SystemPrompt, struct {
		Log, Language string
	}{req.Log, req.Language})
	if err != nil {
		return out, err
	}
	if err := decodeJSON(raw, &out); err != nil {
		return out, err
	}
	return out, nil
}

func (g *Gemini) PlotDiscussion(ctx context.Context, req PlotDiscussionRequest) (PlotDiscussionResponse, error) {
	var out PlotDiscussionResponse
	raw, err := g.generate(ctx, "plot_discussion", plotDiscussionPrompt, req.SystemPrompt, struct {
		Query, Snapshot, Language string
	}{req.Query, req.Snapshot, req.Language})
	if err != nil {
		return out, err
	}
	if err := decodeJSON(raw, &out); err != nil {
		return out, err
	}
	return out, nil
}
