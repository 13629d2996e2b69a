package game

import "strings"

// Composer tracks the in-progress player action: a verb from the action
// catalog plus the body part and free-text target it may require. The
// selection is ephemeral; it lives only until submission or replacement.
type Composer struct {
	Action   *Action
	BodyPart *BodyPart
	Target   string
}

// SetAction replaces the selected action and always discards any body
// part and target chosen for the previous action, whether or not the new
// action requires them.
func (c *Composer) SetAction(a *Action) {
	c.Action = a
	c.BodyPart = nil
	c.Target = ""
}

// SetBodyPart records a body-part selection. No validation against the
// current action happens here; an unneeded body part is simply ignored
// at readiness and compose time.
func (c *Composer) SetBodyPart(bp *BodyPart) {
	c.BodyPart = bp
}

// SetTarget records the free-text target.
func (c *Composer) SetTarget(target string) {
	c.Target = target
}

// Ready reports whether every field the selected action requires is set.
func (c *Composer) Ready() bool {
	if c.Action == nil {
		return false
	}
	if c.Action.NeedsBodyPart && c.BodyPart == nil {
		return false
	}
	if c.Action.NeedsTarget && strings.TrimSpace(c.Target) == "" {
		return false
	}
	return true
}

// ComposeText builds the human-readable turn text from the selection:
// the action label, then "with <body part>" when the action uses one,
// then the target. The same string is shown for confirmation and sent
// verbatim to the narrator.
func (c *Composer) ComposeText(loc Locale) string {
	if c.Action == nil {
		return ""
	}
	parts := []string{Label(loc, c.Action.Name)}
	if c.Action.NeedsBodyPart && c.BodyPart != nil {
		parts = append(parts, Label(loc, "action.with"), Label(loc, c.BodyPart.Name))
	}
	if c.Action.NeedsTarget && c.Target != "" {
		parts = append(parts, c.Target)
	}
	return strings.Join(parts, " ")
}

// Reset clears the selection back to idle.
func (c *Composer) Reset() {
	c.Action = nil
	c.BodyPart = nil
	c.Target = ""
}
