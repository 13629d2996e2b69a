// Package game holds the session state for a tabletop-RPG companion:
// player stats, inventory, journal, dialogue transcript, the in-progress
// action selection, and the equipment slots items can be bound to.
package game

// Attribute is a single named player attribute (STR, Lockpicking, ...).
// Icon is a symbolic name carried as opaque data; the UI resolves it.
type Attribute struct {
	ID    string `yaml:"id" json:"id"`
	Name  string `yaml:"name" json:"name"`
	Value int    `yaml:"value" json:"value"`
	Icon  string `yaml:"icon" json:"icon"`
}

// BodyPartCategory says which kind of slot an item fits.
type BodyPartCategory string

const (
	CategoryHead      BodyPartCategory = "Head"
	CategoryTorso     BodyPartCategory = "Torso"
	CategoryOvertop   BodyPartCategory = "Overtop"
	CategoryLegs      BodyPartCategory = "Legs"
	CategoryUnderwear BodyPartCategory = "Underwear"
	CategoryFeet      BodyPartCategory = "Feet"
	CategoryHand      BodyPartCategory = "Hand"
)

// BodyPart is a fixed equipment slot on the character. Slots are created
// once at session start and never added or removed during play. A slot
// holds at most one item.
type BodyPart struct {
	ID       string           `yaml:"id" json:"id"`
	Name     string           `yaml:"name" json:"name"` // label key, e.g. "bodypart.left_hand"
	Icon     string           `yaml:"icon" json:"icon"`
	Category BodyPartCategory `yaml:"category" json:"category"`
	Equipped *Item            `yaml:"equipped,omitempty" json:"equipped,omitempty"`
}

// Item is an inventory item. Slot, when set, names the body-part category
// the item can be equipped to; nil means the item cannot be equipped.
// An item lives either in the free inventory or as some BodyPart's
// Equipped value, never both.
type Item struct {
	ID   string            `yaml:"id" json:"id"`
	Name string            `yaml:"name" json:"name"`
	Slot *BodyPartCategory `yaml:"slot,omitempty" json:"slot,omitempty"`
}

// JournalEntry is a free-text note kept by the player.
type JournalEntry struct {
	ID      string `yaml:"id" json:"id"`
	Content string `yaml:"content" json:"content"`
}

// Speaker identifies who produced a dialogue message.
type Speaker string

const (
	SpeakerDM     Speaker = "DM"
	SpeakerPlayer Speaker = "Player"
)

// Message is one entry in the session transcript. Choices, when present,
// are quick replies offered to the player after a DM message.
type Message struct {
	ID      string   `yaml:"id" json:"id"`
	Speaker Speaker  `yaml:"speaker" json:"speaker"`
	Text    string   `yaml:"text" json:"text"`
	Choices []string `yaml:"choices,omitempty" json:"choices,omitempty"`
}

// HP is the player's current and maximum hit points.
type HP struct {
	Current int `yaml:"current" json:"current"`
	Max     int `yaml:"max" json:"max"`
}

// Stats is the aggregate character sheet: identity, combat numbers,
// attributes, and the fixed body-part slots.
type Stats struct {
	Name       string      `yaml:"name" json:"name"`
	Class      string      `yaml:"class" json:"class"`
	Level      int         `yaml:"level" json:"level"`
	HP         HP          `yaml:"hp" json:"hp"`
	AC         int         `yaml:"ac" json:"ac"`
	Attributes []Attribute `yaml:"attributes" json:"attributes"`
	BodyParts  []BodyPart  `yaml:"body_parts" json:"body_parts"`
}

// Action is a catalog entry describing a verb the player can compose a
// turn from. The catalog is static; actions are never created at runtime.
type Action struct {
	ID            string
	Name          string // label key, e.g. "action.attack"
	Icon          string
	NeedsBodyPart bool
	NeedsTarget   bool
}
