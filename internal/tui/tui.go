// Package tui is the terminal front end: a setup view for drafting the
// character and world, and a play view over the dialogue transcript. All
// game mutations go through the game and narrator packages; the TUI only
// renders state and routes input.
package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tatianab/tabletop-dm/internal/export"
	"github.com/tatianab/tabletop-dm/internal/game"
	"github.com/tatianab/tabletop-dm/internal/narrator"
	"github.com/tatianab/tabletop-dm/internal/settings"
)

type view int

const (
	viewSetup view = iota
	viewPlay
)

var (
	playerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EEEEEE")).
			Background(lipgloss.Color("#5F5F87")).
			Bold(true).
			PaddingLeft(1)

	dmStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFFFFF"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Italic(true)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("#3C3C3C")).
			PaddingLeft(2).
			Foreground(lipgloss.Color("#AAAAAA"))

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA500")).
			Bold(true).
			Underline(true)

	noticeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#AAAA66")).
			Italic(true)
)

// Options wires the model to the rest of the application.
type Options struct {
	Session  *game.Session
	Exchange *narrator.Exchange
	Settings *settings.Store
	Locale   game.Locale
	SaveName string
	Debug    bool
	DataDir  string
}

type model struct {
	view     view
	session  *game.Session
	exchange *narrator.Exchange
	store    *settings.Store
	locale   game.Locale
	saveName string
	debug    bool
	dataDir  string

	draft    *game.SetupDraft
	setupLog []string

	composer game.Composer

	textInput textinput.Model
	viewport  viewport.Model
	spin      spinner.Model

	width, height int
	waiting       bool // setup/advisory call in flight; turns use exchange.Busy
	notice        string
}

func newModel(opts Options) model {
	ti := textinput.New()
	ti.Placeholder = "Describe your character, or /help"
	ti.Focus()
	ti.CharLimit = 280
	ti.Width = 60

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	start := viewSetup
	if opts.Session.Ready() {
		start = viewPlay
		ti.Placeholder = "What do you do?"
	}

	return model{
		view:     start,
		session:  opts.Session,
		exchange: opts.Exchange,
		store:    opts.Settings,
		locale:   opts.Locale,
		saveName: opts.SaveName,
		debug:    opts.Debug,
		dataDir:  opts.DataDir,
		draft: &game.SetupDraft{
			Name:  "Aethelred",
			Class: "Rogue",
		},
		textInput: ti,
		spin:      sp,
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spin.Tick)
}

type turnDoneMsg struct{}

type setupDoneMsg struct {
	suggestion string
	err        error
}

type adviceMsg struct {
	heading string
	text    string
	err     error
}

type exportDoneMsg struct {
	path string
	err  error
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			return m.handleEnter()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = int(float64(msg.Width) * 0.72)
		m.viewport.Height = msg.Height - 7
		if m.view == viewPlay {
			m.viewport.SetContent(m.renderTranscript())
		}

	case spinner.TickMsg:
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case turnDoneMsg:
		m.refreshTranscript()
		m.autosave()
		return m, nil

	case setupDoneMsg:
		m.waiting = false
		if msg.err != nil {
			m.setupLog = append(m.setupLog, "AI: Sorry, I couldn't process that. Please try again.")
		} else {
			m.setupLog = append(m.setupLog, "AI: "+msg.suggestion)
		}
		return m, nil

	case adviceMsg:
		m.waiting = false
		if msg.err != nil {
			m.notice = msg.heading + ": unavailable right now."
		} else {
			m.notice = msg.heading + ": " + msg.text
		}
		return m, nil

	case exportDoneMsg:
		m.waiting = false
		if msg.err != nil {
			m.notice = "Export failed: " + msg.err.Error()
		} else {
			m.notice = "Transcript exported to " + msg.path
		}
		return m, nil
	}

	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m model) handleEnter() (tea.Model, tea.Cmd) {
	input := strings.TrimSpace(m.textInput.Value())
	if input == "" {
		return m, nil
	}
	if m.waiting || m.exchange.Busy() {
		return m, nil // single-flight: drop input while a call is outstanding
	}
	m.textInput.Reset()
	m.notice = ""

	if m.view == viewSetup {
		return m.handleSetupInput(input)
	}
	return m.handlePlayInput(input)
}

func (m model) handleSetupInput(input string) (tea.Model, tea.Cmd) {
	cmdWord, rest := splitCommand(input)
	switch cmdWord {
	case "/name":
		m.draft.Name = rest
	case "/class":
		m.draft.Class = rest
	case "/description":
		m.draft.Description = rest
	case "/background":
		m.draft.Background = rest
	case "/setting":
		m.draft.Setting = rest
	case "/scene":
		m.draft.OpeningScene = rest
	case "/begin":
		if m.draft.OpeningScene == "" {
			m.draft.OpeningScene = defaultOpeningScene
		}
		m.draft.Start(m.session, m.locale)
		if m.session.Ready() {
			m.view = viewPlay
			m.textInput.Placeholder = "What do you do?"
			if m.viewport.Width == 0 {
				m.viewport = viewport.New(int(float64(m.width)*0.72), m.height-7)
			}
			m.refreshTranscript()
			m.autosave()
		} else {
			m.setupLog = append(m.setupLog, "AI: Give your character a name first (/name).")
		}
	case "/quit":
		return m, tea.Quit
	case "/help":
		m.setupLog = append(m.setupLog,
			"AI: Set fields with /name, /class, /description, /background, /setting, /scene. /begin starts the game. Anything else, I'll brainstorm with you.")
	default:
		m.setupLog = append(m.setupLog, "You: "+input)
		m.waiting = true
		return m, m.setupAssist(input)
	}
	return m, nil
}

func (m model) handlePlayInput(input string) (tea.Model, tea.Cmd) {
	// A bare number picks one of the last DM message's choices.
	if n, err := strconv.Atoi(input); err == nil {
		if dm := m.session.LastDMMessage(); dm != nil && n >= 1 && n <= len(dm.Choices) {
			return m, m.submit(func(ctx context.Context) error {
				return m.exchange.SubmitChoice(ctx, dm.Choices[n-1])
			})
		}
	}

	cmdWord, rest := splitCommand(input)
	switch cmdWord {
	case "/action":
		if a := game.ActionByID(rest); a != nil {
			m.composer.SetAction(a)
		} else {
			m.notice = "Unknown action: " + rest
		}
	case "/with":
		if bp := m.bodyPartByName(rest); bp != nil {
			m.composer.SetBodyPart(bp)
		} else {
			m.notice = "Unknown body part: " + rest
		}
	case "/target":
		m.composer.SetTarget(rest)
	case "/do":
		if !m.composer.Ready() {
			m.notice = "Pick an action" + composerHint(&m.composer)
			return m, nil
		}
		composed := m.composer
		m.composer.Reset()
		return m, m.submit(func(ctx context.Context) error {
			return m.exchange.SubmitAction(ctx, &composed)
		})
	case "/equip":
		m.equipByName(rest)
	case "/unequip":
		if item, ok := m.session.Unequip(rest); ok {
			m.notice = "Unequipped " + item.Name
		}
	case "/note":
		m.session.AddJournalEntry(rest)
		m.notice = "Journal entry added."
	case "/item":
		m.session.AddItem(game.Item{Name: rest})
		m.notice = "Added to inventory: " + rest
	case "/recap":
		m.waiting = true
		return m, m.advice("Recap", func(ctx context.Context) (string, error) {
			return m.exchange.Recap(ctx)
		})
	case "/suggest":
		m.waiting = true
		return m, m.advice("Attribute idea", func(ctx context.Context) (string, error) {
			resp, err := m.exchange.SuggestAttribute(ctx)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("%s (%s)", resp.Name, resp.Reason), nil
		})
	case "/use":
		m.waiting = true
		return m, m.advice("Item idea", func(ctx context.Context) (string, error) {
			return m.exchange.SuggestItemUse(ctx)
		})
	case "/plot":
		m.waiting = true
		return m, m.advice("DM (ooc)", func(ctx context.Context) (string, error) {
			return m.exchange.DiscussPlot(ctx, rest)
		})
	case "/export":
		m.waiting = true
		return m, m.export()
	case "/save":
		m.autosave()
		m.notice = "Session saved."
	case "/prompt":
		if !m.debug {
			m.notice = "Debug mode is off."
			return m, nil
		}
		if err := m.store.SetSystemPrompt(rest); err != nil {
			m.notice = "Could not save the prompt override."
		} else if rest == "" {
			m.notice = "Prompt override cleared."
		} else {
			m.notice = "Prompt override saved."
		}
	case "/quit":
		return m, tea.Quit
	case "/help":
		m.notice = "Type to act, a number to pick a choice, or /action /with /target /do, /equip /unequip, /item /note, /recap /suggest /use /plot, /export /save /quit."
	default:
		return m, m.submit(func(ctx context.Context) error {
			return m.exchange.SubmitFreeText(ctx, input)
		})
	}
	return m, nil
}

func (m model) submit(call func(context.Context) error) tea.Cmd {
	return func() tea.Msg {
		_ = call(context.Background()) // failures land on the transcript
		return turnDoneMsg{}
	}
}

func (m model) setupAssist(request string) tea.Cmd {
	draft := m.draft
	return func() tea.Msg {
		suggestion, err := m.exchange.SetupAssist(context.Background(), draft, request)
		return setupDoneMsg{suggestion: suggestion, err: err}
	}
}

func (m model) advice(heading string, call func(context.Context) (string, error)) tea.Cmd {
	return func() tea.Msg {
		text, err := call(context.Background())
		return adviceMsg{heading: heading, text: text, err: err}
	}
}

func (m model) export() tea.Cmd {
	session := m.session
	dir := m.dataDir
	return func() tea.Msg {
		data, err := export.Transcript(session, "")
		if err != nil {
			return exportDoneMsg{err: err}
		}
		path := filepath.Join(dir, "transcript.pdf")
		if err := os.WriteFile(path, data, 0644); err != nil {
			return exportDoneMsg{err: err}
		}
		return exportDoneMsg{path: path}
	}
}

func (m *model) refreshTranscript() {
	m.viewport.SetContent(m.renderTranscript())
	m.viewport.GotoBottom()
}

func (m *model) autosave() {
	if err := m.session.Save(m.saveName); err != nil {
		m.notice = "Autosave failed: " + err.Error()
	}
}

func (m *model) equipByName(name string) {
	var target *game.Item
	for i := range m.session.Inventory {
		it := &m.session.Inventory[i]
		if it.ID == name || strings.EqualFold(it.Name, name) {
			target = it
			break
		}
	}
	if target == nil {
		m.notice = "No such item: " + name
		return
	}
	if err := m.session.Equip(target.ID); err != nil {
		m.notice = "Cannot equip " + target.Name + ": " + err.Error()
		return
	}
	m.notice = "Equipped " + target.Name
}

func (m *model) bodyPartByName(name string) *game.BodyPart {
	for i := range m.session.Stats.BodyParts {
		bp := &m.session.Stats.BodyParts[i]
		if bp.ID == name || strings.EqualFold(game.Label(m.locale, bp.Name), name) {
			return bp
		}
	}
	return nil
}

const defaultOpeningScene = "You awaken in a dimly lit tavern, the smell of stale ale and sawdust filling your nostrils. Across the room, a cloaked figure seems to be watching you."

func splitCommand(input string) (string, string) {
	if !strings.HasPrefix(input, "/") {
		return "", input
	}
	parts := strings.SplitN(input, " ", 2)
	rest := ""
	if len(parts) > 1 {
		rest = strings.TrimSpace(parts[1])
	}
	return parts[0], rest
}

func composerHint(c *game.Composer) string {
	if c.Action == nil {
		return " with /action first."
	}
	var missing []string
	if c.Action.NeedsBodyPart && c.BodyPart == nil {
		missing = append(missing, "/with")
	}
	if c.Action.NeedsTarget && strings.TrimSpace(c.Target) == "" {
		missing = append(missing, "/target")
	}
	if len(missing) == 0 {
		return "."
	}
	return "; still missing " + strings.Join(missing, " and ") + "."
}

func (m model) View() string {
	switch m.view {
	case viewSetup:
		return "\n" + m.viewSetupScreen() + "\n"
	default:
		return "\n" + m.viewPlayScreen() + "\n"
	}
}

func (m model) viewSetupScreen() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Create Your Adventure") + "\n\n")
	b.WriteString(fmt.Sprintf("Name:        %s\n", m.draft.Name))
	b.WriteString(fmt.Sprintf("Class:       %s\n", m.draft.Class))
	b.WriteString(fmt.Sprintf("Description: %s\n", clip(m.draft.Description, 70)))
	b.WriteString(fmt.Sprintf("Background:  %s\n", clip(m.draft.Background, 70)))
	b.WriteString(fmt.Sprintf("Setting:     %s\n", clip(m.draft.Setting, 70)))
	b.WriteString(fmt.Sprintf("Scene:       %s\n\n", clip(m.draft.OpeningScene, 70)))

	tail := m.setupLog
	if len(tail) > 6 {
		tail = tail[len(tail)-6:]
	}
	for _, line := range tail {
		b.WriteString(dmStyle.Render(line) + "\n")
	}
	if m.waiting {
		b.WriteString(m.spin.View() + " The assistant is thinking...\n")
	}

	b.WriteString("\n" + m.textInput.View() + "\n")
	b.WriteString(helpStyle.Render("Set fields with /name etc., chat to brainstorm, /begin to start."))
	return b.String()
}

func (m model) viewPlayScreen() string {
	logView := m.viewport.View()
	panel := m.renderPanel()
	main := lipgloss.JoinHorizontal(lipgloss.Top, logView, panel)

	status := ""
	if m.exchange.Busy() || m.waiting {
		status = m.spin.View() + " The DM is thinking..."
	} else if text := m.composer.ComposeText(m.locale); text != "" {
		status = "Composing: " + text
	}
	if m.notice != "" {
		if status != "" {
			status += "  "
		}
		status += noticeStyle.Render(m.notice)
	}

	help := helpStyle.Render("Type to act, a number to pick a choice, /help for commands.")
	return lipgloss.JoinVertical(lipgloss.Left, main, status, m.textInput.View(), help)
}

func (m model) renderTranscript() string {
	width := m.viewport.Width
	if width <= 0 {
		width = 80
	}
	var b strings.Builder
	for _, msg := range m.session.Dialogue {
		if msg.Speaker == game.SpeakerPlayer {
			b.WriteString(playerStyle.Width(width).Render("> "+msg.Text) + "\n\n")
			continue
		}
		b.WriteString(dmStyle.Width(width).Render(msg.Text) + "\n")
		for i, choice := range msg.Choices {
			b.WriteString(helpStyle.Render(fmt.Sprintf("  %d. %s", i+1, choice)) + "\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m model) renderPanel() string {
	s := m.session.Stats

	var b strings.Builder
	b.WriteString(titleStyle.Render(s.Name) + "\n")
	b.WriteString(fmt.Sprintf("%s (Lvl %d)\n", game.Label(m.locale, s.Class), s.Level))
	b.WriteString(fmt.Sprintf("HP %d/%d  AC %d\n\n", s.HP.Current, s.HP.Max, s.AC))

	b.WriteString(titleStyle.Render("ATTRIBUTES") + "\n")
	for _, a := range s.Attributes {
		b.WriteString(fmt.Sprintf("%s: %d\n", a.Name, a.Value))
	}

	b.WriteString("\n" + titleStyle.Render("EQUIPMENT") + "\n")
	for _, bp := range s.BodyParts {
		if bp.Equipped != nil {
			b.WriteString(fmt.Sprintf("%s: %s\n", game.Label(m.locale, bp.Name), bp.Equipped.Name))
		}
	}

	b.WriteString("\n" + titleStyle.Render("INVENTORY") + "\n")
	if len(m.session.Inventory) == 0 {
		b.WriteString("(empty)\n")
	}
	for _, it := range m.session.Inventory {
		b.WriteString("- " + it.Name + "\n")
	}

	b.WriteString("\n" + titleStyle.Render("JOURNAL") + "\n")
	for _, e := range m.session.Journal {
		b.WriteString("- " + clip(e.Content, 28) + "\n")
	}

	panelWidth := int(float64(m.width) * 0.24)
	return panelStyle.Width(panelWidth).Height(m.viewport.Height).Render(b.String())
}

func clip(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

// Run starts the TUI and blocks until the player quits.
func Run(opts Options) error {
	p := tea.NewProgram(newModel(opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
