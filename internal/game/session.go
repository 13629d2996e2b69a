package game

// Session aggregates all state for one play session. All mutation goes
// through its methods; nothing here is safe for concurrent use, matching
// the single event loop that drives it.
type Session struct {
	Stats      Stats          `yaml:"stats"`
	Inventory  []Item         `yaml:"inventory"`
	Journal    []JournalEntry `yaml:"journal"`
	Dialogue   []Message      `yaml:"dialogue"`
	Discussion []Message      `yaml:"discussion,omitempty"` // out-of-character plot chat, kept off the transcript

	ready bool
}

// NewSession creates a session with the fixed body-part slots and empty
// collections. Stats identity is filled in by setup.
func NewSession() *Session {
	return &Session{
		Stats: Stats{
			Level:     1,
			HP:        HP{Current: 10, Max: 10},
			AC:        10,
			BodyParts: DefaultBodyParts(),
		},
	}
}

// Ready reports whether the session has left setup and entered play. It
// latches: once the name, at least one attribute, and at least one
// dialogue message exist, it stays true even if those are later cleared.
func (s *Session) Ready() bool {
	if s.ready {
		return true
	}
	if s.Stats.Name != "" && len(s.Stats.Attributes) > 0 && len(s.Dialogue) > 0 {
		s.ready = true
	}
	return s.ready
}

// AddAttribute appends an attribute, assigning a fresh id when none is
// set, and returns the stored attribute's id.
func (s *Session) AddAttribute(a Attribute) string {
	if a.ID == "" {
		a.ID = NewID()
	}
	s.Stats.Attributes = append(s.Stats.Attributes, a)
	return a.ID
}

// UpdateAttribute replaces the attribute with the given id. Missing ids
// are a silent no-op.
func (s *Session) UpdateAttribute(id string, a Attribute) {
	for i := range s.Stats.Attributes {
		if s.Stats.Attributes[i].ID == id {
			a.ID = id
			s.Stats.Attributes[i] = a
			return
		}
	}
}

// DeleteAttribute removes the attribute with the given id. Missing ids
// are a silent no-op.
func (s *Session) DeleteAttribute(id string) {
	for i := range s.Stats.Attributes {
		if s.Stats.Attributes[i].ID == id {
			s.Stats.Attributes = append(s.Stats.Attributes[:i], s.Stats.Attributes[i+1:]...)
			return
		}
	}
}

// AttributeNames returns the names of all current attributes, used as a
// soft "avoid duplicates" hint for the narrator.
func (s *Session) AttributeNames() []string {
	names := make([]string, 0, len(s.Stats.Attributes))
	for _, a := range s.Stats.Attributes {
		names = append(names, a.Name)
	}
	return names
}

// AddItem adds an item to the free inventory, assigning a fresh id when
// none is set, and returns the stored item's id.
func (s *Session) AddItem(it Item) string {
	if it.ID == "" {
		it.ID = NewID()
	}
	s.Inventory = append(s.Inventory, it)
	return it.ID
}

// UpdateItem renames an item and retags where it can be equipped. The
// item may be in the free inventory or currently equipped; missing ids
// are a silent no-op.
func (s *Session) UpdateItem(id, name string, slot *BodyPartCategory) {
	for i := range s.Inventory {
		if s.Inventory[i].ID == id {
			s.Inventory[i].Name = name
			s.Inventory[i].Slot = slot
			return
		}
	}
	for i := range s.Stats.BodyParts {
		if eq := s.Stats.BodyParts[i].Equipped; eq != nil && eq.ID == id {
			eq.Name = name
			eq.Slot = slot
			return
		}
	}
}

// DeleteItem removes an item wherever it lives. An equipped item is
// unequipped first so it never lingers in a slot after deletion. Missing
// ids are a silent no-op.
func (s *Session) DeleteItem(id string) {
	for i := range s.Stats.BodyParts {
		if eq := s.Stats.BodyParts[i].Equipped; eq != nil && eq.ID == id {
			s.Unequip(id)
			break
		}
	}
	for i := range s.Inventory {
		if s.Inventory[i].ID == id {
			s.Inventory = append(s.Inventory[:i], s.Inventory[i+1:]...)
			return
		}
	}
}

// ItemNames returns the names of all carried items, for use suggestions.
func (s *Session) ItemNames() []string {
	names := make([]string, 0, len(s.Inventory))
	for _, it := range s.Inventory {
		names = append(names, it.Name)
	}
	return names
}

// AddJournalEntry appends a journal entry and returns its id.
func (s *Session) AddJournalEntry(content string) string {
	id := NewID()
	s.Journal = append(s.Journal, JournalEntry{ID: id, Content: content})
	return id
}

// UpdateJournalEntry rewrites an entry's content; missing ids are a
// silent no-op.
func (s *Session) UpdateJournalEntry(id, content string) {
	for i := range s.Journal {
		if s.Journal[i].ID == id {
			s.Journal[i].Content = content
			return
		}
	}
}

// DeleteJournalEntry removes an entry; missing ids are a silent no-op.
func (s *Session) DeleteJournalEntry(id string) {
	for i := range s.Journal {
		if s.Journal[i].ID == id {
			s.Journal = append(s.Journal[:i], s.Journal[i+1:]...)
			return
		}
	}
}

// AddMessage appends a message to the transcript with a fresh id and
// returns the id. Past entries are never touched.
func (s *Session) AddMessage(speaker Speaker, text string, choices []string) string {
	id := NewID()
	s.Dialogue = append(s.Dialogue, Message{ID: id, Speaker: speaker, Text: text, Choices: choices})
	return id
}

// UpdateMessage rewrites a transcript entry in place, used by the edit
// mode for transcript correction. Order and ids of other entries are
// unaffected; missing ids are a silent no-op.
func (s *Session) UpdateMessage(id, text string) {
	for i := range s.Dialogue {
		if s.Dialogue[i].ID == id {
			s.Dialogue[i].Text = text
			return
		}
	}
}

// DeleteMessage removes a transcript entry; missing ids are a silent
// no-op.
func (s *Session) DeleteMessage(id string) {
	for i := range s.Dialogue {
		if s.Dialogue[i].ID == id {
			s.Dialogue = append(s.Dialogue[:i], s.Dialogue[i+1:]...)
			return
		}
	}
}

// LastDMMessage returns the most recent DM message, or nil when the DM
// has not spoken yet.
func (s *Session) LastDMMessage() *Message {
	for i := len(s.Dialogue) - 1; i >= 0; i-- {
		if s.Dialogue[i].Speaker == SpeakerDM {
			return &s.Dialogue[i]
		}
	}
	return nil
}

// AddDiscussionMessage appends to the out-of-character plot discussion
// log, which is kept separate from the main transcript.
func (s *Session) AddDiscussionMessage(speaker Speaker, text string) string {
	id := NewID()
	s.Discussion = append(s.Discussion, Message{ID: id, Speaker: speaker, Text: text})
	return id
}
