package game

// Actions is the static catalog of composable verbs, in toolbar order.
var Actions = []Action{
	{ID: "use", Name: "action.use", Icon: "MousePointer", NeedsBodyPart: true, NeedsTarget: true},
	{ID: "take", Name: "action.take", Icon: "Grab", NeedsBodyPart: true, NeedsTarget: true},
	{ID: "look", Name: "action.look", Icon: "Eye", NeedsTarget: true},
	{ID: "go", Name: "action.go", Icon: "PersonStanding", NeedsTarget: true},
	{ID: "talk", Name: "action.talk", Icon: "MessageCircle", NeedsTarget: true},
	{ID: "attack", Name: "action.attack", Icon: "Swords", NeedsBodyPart: true, NeedsTarget: true},
}

// ActionByID looks up a catalog action. Returns nil when the id is unknown.
func ActionByID(id string) *Action {
	for i := range Actions {
		if Actions[i].ID == id {
			return &Actions[i]
		}
	}
	return nil
}

// DefaultBodyParts returns the fixed slot set for a new character, in
// declaration order. Equip searches slots in this order.
func DefaultBodyParts() []BodyPart {
	return []BodyPart{
		{ID: "bp_head", Name: "bodypart.head", Icon: "CircleUser", Category: CategoryHead},
		{ID: "bp_torso", Name: "bodypart.torso", Icon: "Heart", Category: CategoryTorso},
		{ID: "bp_overtop", Name: "bodypart.overtop", Icon: "Shirt", Category: CategoryOvertop},
		{ID: "bp_legs", Name: "bodypart.legs", Icon: "PersonStanding", Category: CategoryLegs},
		{ID: "bp_underwear", Name: "bodypart.underwear", Icon: "Circle", Category: CategoryUnderwear},
		{ID: "bp_left_foot", Name: "bodypart.left_foot", Icon: "Footprints", Category: CategoryFeet},
		{ID: "bp_right_foot", Name: "bodypart.right_foot", Icon: "Footprints", Category: CategoryFeet},
		{ID: "bp_left_hand", Name: "bodypart.left_hand", Icon: "Hand", Category: CategoryHand},
		{ID: "bp_right_hand", Name: "bodypart.right_hand", Icon: "Hand", Category: CategoryHand},
	}
}

// DefaultAttributes returns the classic six-attribute spread used when the
// player skips customizing attributes during setup.
func DefaultAttributes() []Attribute {
	return []Attribute{
		{ID: NewID(), Name: "STR", Value: 10, Icon: "Swords"},
		{ID: NewID(), Name: "DEX", Value: 16, Icon: "Dices"},
		{ID: NewID(), Name: "CON", Value: 12, Icon: "Heart"},
		{ID: NewID(), Name: "INT", Value: 13, Icon: "Brain"},
		{ID: NewID(), Name: "WIS", Value: 11, Icon: "BookOpen"},
		{ID: NewID(), Name: "CHA", Value: 14, Icon: "Smile"},
	}
}
