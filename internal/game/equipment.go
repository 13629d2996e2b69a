package game

import (
	"errors"
	"fmt"
)

// ErrNotEquippable is returned when an item declares no slot category.
var ErrNotEquippable = errors.New("item cannot be equipped")

// NoFreeSlotError is returned when every slot of the item's category is
// occupied.
type NoFreeSlotError struct {
	Category BodyPartCategory
}

func (e *NoFreeSlotError) Error() string {
	return fmt.Sprintf("no free %s slot", e.Category)
}

// Equip moves the item with the given id from the free inventory into the
// first empty body-part slot matching its category, in slot declaration
// order. On failure the item stays where it was. If the item is somehow
// already equipped in another slot it is silently unequipped first, so an
// item can never occupy two slots.
func (s *Session) Equip(itemID string) error {
	idx := -1
	for i := range s.Inventory {
		if s.Inventory[i].ID == itemID {
			idx = i
			break
		}
	}

	var item Item
	if idx >= 0 {
		item = s.Inventory[idx]
	} else {
		// Defensive: the item may already sit in a slot. Pull it out
		// silently and re-run placement.
		unequipped, ok := s.unequipSilent(itemID)
		if !ok {
			return nil // unknown id, silent no-op
		}
		item = unequipped
		idx = len(s.Inventory) - 1
	}

	if item.Slot == nil {
		return ErrNotEquippable
	}

	slot := s.freeSlot(*item.Slot)
	if slot == nil {
		return &NoFreeSlotError{Category: *item.Slot}
	}

	s.Inventory = append(s.Inventory[:idx], s.Inventory[idx+1:]...)
	held := item
	slot.Equipped = &held
	return nil
}

// Unequip clears the slot identified by a body-part id or by the id of
// the item equipped in it, returning the item to the free inventory with
// its id and slot tag intact. Returns the item and true on success; an
// empty or unknown slot is a no-op returning false.
func (s *Session) Unequip(id string) (Item, bool) {
	return s.unequipSilent(id)
}

// unequipSilent is the internal variant Equip uses for its defensive
// re-equip path; splitting it keeps user-facing notification decisions
// out of the core.
func (s *Session) unequipSilent(id string) (Item, bool) {
	for i := range s.Stats.BodyParts {
		bp := &s.Stats.BodyParts[i]
		if bp.Equipped == nil {
			continue
		}
		if bp.ID == id || bp.Equipped.ID == id {
			item := *bp.Equipped
			bp.Equipped = nil
			s.Inventory = append(s.Inventory, item)
			return item, true
		}
	}
	return Item{}, false
}

// freeSlot returns the first empty slot of the category, or nil.
func (s *Session) freeSlot(cat BodyPartCategory) *BodyPart {
	for i := range s.Stats.BodyParts {
		bp := &s.Stats.BodyParts[i]
		if bp.Category == cat && bp.Equipped == nil {
			return bp
		}
	}
	return nil
}
