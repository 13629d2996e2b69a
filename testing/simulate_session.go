// Self-play harness: a second LLM takes the player's seat and drives a
// full session against the DM, printing the transcript as it goes. Run it
// manually to eyeball prompt quality; it is not part of the test suite.
package main

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/joho/godotenv"
	"google.golang.org/api/option"

	"github.com/tatianab/tabletop-dm/internal/config"
	"github.com/tatianab/tabletop-dm/internal/game"
	"github.com/tatianab/tabletop-dm/internal/narrator"
)

const maxTurns = 10

func main() {
	ctx := context.Background()

	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	dm, err := narrator.NewGemini(ctx, cfg.GeminiAPIKey)
	if err != nil {
		log.Fatalf("Failed to create DM client: %v", err)
	}
	defer dm.Close()

	playerClient, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiAPIKey))
	if err != nil {
		log.Fatalf("Failed to create player client: %v", err)
	}
	defer playerClient.Close()
	playerModel := playerClient.GenerativeModel("gemini-2.5-flash")

	session := game.NewSession()
	exchange := narrator.NewExchange(session, dm, narrator.Options{Timeout: cfg.Timeout})

	// 1. Let the player LLM invent a character concept, then lean on the
	// setup assistant to flesh out the draft.
	fmt.Println("--- Step 1: Character concept from the player LLM ---")
	concept := ask(ctx, playerModel,
		"You are about to play a tabletop RPG. Invent a character concept in one sentence, e.g. 'a disgraced court bard hunting the thief who framed her'. Return ONLY the sentence.")
	fmt.Printf("Player concept: %s\n\n", concept)

	draft := &game.SetupDraft{Name: "Sim", Class: "Adventurer"}
	suggestion, err := exchange.SetupAssist(ctx, draft, concept)
	if err != nil {
		log.Fatalf("Setup assist failed: %v", err)
	}
	fmt.Printf("Setup assistant: %s\n", suggestion)
	if draft.OpeningScene == "" {
		draft.OpeningScene = "The session begins at a crossroads at dusk."
	}
	draft.Start(session, game.LocaleEN)
	if !session.Ready() {
		log.Fatalf("Session did not reach play after setup: %+v", draft)
	}
	fmt.Printf("\nOpening scene: %s\n\n", draft.OpeningScene)

	// 2. Play turns until the budget runs out.
	for turn := 1; turn <= maxTurns; turn++ {
		fmt.Printf("--- Turn %d ---\n", turn)

		action := playerTurn(ctx, playerModel, session)
		fmt.Printf("Player: %s\n", action)

		if err := exchange.SubmitFreeText(ctx, action); err != nil {
			fmt.Printf("Turn failed: %v\n", err)
			break
		}
		dmMsg := session.LastDMMessage()
		fmt.Printf("DM: %s\n", dmMsg.Text)
		for i, choice := range dmMsg.Choices {
			fmt.Printf("  %d. %s\n", i+1, choice)
		}
		fmt.Println()
	}

	// 3. Close with a recap.
	recap, err := exchange.Recap(ctx)
	if err != nil {
		log.Fatalf("Recap failed: %v", err)
	}
	fmt.Printf("--- Recap ---\n%s\n", recap)
}

func playerTurn(ctx context.Context, model *genai.GenerativeModel, session *game.Session) string {
	prompt := fmt.Sprintf(`You are playing a tabletop RPG. Your character sheet and the session so far:

Character: %s, a %s
Transcript:
%s

What do you do next? Stay in character and keep the story moving. Return ONLY the action text, no commentary.`,
		session.Stats.Name,
		session.Stats.Class,
		session.TranscriptLog(),
	)
	out := ask(ctx, model, prompt)
	if out == "" {
		return "look around"
	}
	return out
}

func ask(ctx context.Context, model *genai.GenerativeModel, prompt string) string {
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return ""
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return ""
	}
	return strings.TrimSpace(fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0]))
}
