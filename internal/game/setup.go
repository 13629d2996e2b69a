package game

// SetupDraft is the character-and-world worksheet filled in before play
// begins. The setup assistant can patch any subset of its fields.
type SetupDraft struct {
	Name         string `json:"name" yaml:"name"`
	Class        string `json:"class" yaml:"class"`
	Description  string `json:"description" yaml:"description"`
	Background   string `json:"background" yaml:"background"`
	Setting      string `json:"setting" yaml:"setting"`
	OpeningScene string `json:"opening_scene" yaml:"opening_scene"`

	Attributes []Attribute `json:"attributes" yaml:"attributes"`
}

// SetupPatch is a partial update to the draft returned by the setup
// assistant. Nil fields are left untouched; set fields overwrite.
type SetupPatch struct {
	Name         *string `json:"name,omitempty"`
	Class        *string `json:"class,omitempty"`
	Description  *string `json:"description,omitempty"`
	Background   *string `json:"background,omitempty"`
	Setting      *string `json:"setting,omitempty"`
	OpeningScene *string `json:"opening_scene,omitempty"`
}

// IsZero reports whether the patch carries no field updates.
func (p *SetupPatch) IsZero() bool {
	return p == nil || (p.Name == nil && p.Class == nil && p.Description == nil &&
		p.Background == nil && p.Setting == nil && p.OpeningScene == nil)
}

// Apply shallow-merges the patch onto the draft.
func (d *SetupDraft) Apply(p *SetupPatch) {
	if p == nil {
		return
	}
	if p.Name != nil {
		d.Name = *p.Name
	}
	if p.Class != nil {
		d.Class = *p.Class
	}
	if p.Description != nil {
		d.Description = *p.Description
	}
	if p.Background != nil {
		d.Background = *p.Background
	}
	if p.Setting != nil {
		d.Setting = *p.Setting
	}
	if p.OpeningScene != nil {
		d.OpeningScene = *p.OpeningScene
	}
}

// Start commits the draft onto the session: identity and attributes move
// into stats, and the opening scene becomes the first DM message when one
// was written. Leaving either empty keeps the session in setup.
func (d *SetupDraft) Start(s *Session, loc Locale) {
	s.Stats.Name = d.Name
	s.Stats.Class = d.Class
	attrs := d.Attributes
	if len(attrs) == 0 {
		attrs = DefaultAttributes()
	}
	s.Stats.Attributes = attrs
	if d.OpeningScene != "" {
		s.AddMessage(SpeakerDM, d.OpeningScene, DefaultChoices(loc))
	}
}
