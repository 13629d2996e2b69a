package game

import (
	"errors"
	"testing"
)

func catPtr(c BodyPartCategory) *BodyPartCategory { return &c }

// checkExclusive verifies every item id appears in exactly one place:
// the free inventory or a single body-part slot.
func checkExclusive(t *testing.T, s *Session) {
	t.Helper()
	seen := map[string]int{}
	for _, it := range s.Inventory {
		seen[it.ID]++
	}
	for _, bp := range s.Stats.BodyParts {
		if bp.Equipped != nil {
			seen[bp.Equipped.ID]++
		}
	}
	for id, n := range seen {
		if n != 1 {
			t.Fatalf("item %s appears %d times", id, n)
		}
	}
}

func TestEquipMovesItemIntoSlot(t *testing.T) {
	s := NewSession()
	s.AddItem(Item{ID: "i1", Name: "Iron Helmet", Slot: catPtr(CategoryHead)})

	if err := s.Equip("i1"); err != nil {
		t.Fatalf("Equip: %v", err)
	}

	for _, it := range s.Inventory {
		if it.ID == "i1" {
			t.Error("item still in inventory after equip")
		}
	}
	var head *BodyPart
	for i := range s.Stats.BodyParts {
		if s.Stats.BodyParts[i].ID == "bp_head" {
			head = &s.Stats.BodyParts[i]
		}
	}
	if head == nil || head.Equipped == nil || head.Equipped.ID != "i1" {
		t.Fatalf("head slot does not hold i1: %+v", head)
	}
	checkExclusive(t, s)
}

func TestEquipWithoutCategory(t *testing.T) {
	s := NewSession()
	s.AddItem(Item{ID: "i1", Name: "Mysterious Orb"})

	err := s.Equip("i1")
	if !errors.Is(err, ErrNotEquippable) {
		t.Fatalf("want ErrNotEquippable, got %v", err)
	}
	if len(s.Inventory) != 1 {
		t.Errorf("item should stay in inventory, have %d items", len(s.Inventory))
	}
}

func TestEquipNoFreeSlot(t *testing.T) {
	s := NewSession()
	// Single hand slot, already occupied by a third item.
	s.Stats.BodyParts = []BodyPart{
		{ID: "bp_hand", Name: "bodypart.right_hand", Category: CategoryHand},
	}
	s.AddItem(Item{ID: "i0", Name: "Torch", Slot: catPtr(CategoryHand)})
	s.AddItem(Item{ID: "i1", Name: "Sword", Slot: catPtr(CategoryHand)})
	s.AddItem(Item{ID: "i2", Name: "Shield", Slot: catPtr(CategoryHand)})

	if err := s.Equip("i0"); err != nil {
		t.Fatalf("first equip: %v", err)
	}
	if err := s.Equip("i1"); err == nil {
		t.Fatal("second equip should fail with no free slot")
	} else {
		var nfs *NoFreeSlotError
		if !errors.As(err, &nfs) || nfs.Category != CategoryHand {
			t.Fatalf("want NoFreeSlotError{Hand}, got %v", err)
		}
	}
	if len(s.Inventory) != 2 {
		t.Errorf("inventory should keep i1 and i2, have %d items", len(s.Inventory))
	}
	checkExclusive(t, s)
}

func TestEquipFillsSlotsInDeclarationOrder(t *testing.T) {
	s := NewSession()
	s.AddItem(Item{ID: "i1", Name: "Dagger", Slot: catPtr(CategoryHand)})
	s.AddItem(Item{ID: "i2", Name: "Lantern", Slot: catPtr(CategoryHand)})

	if err := s.Equip("i1"); err != nil {
		t.Fatalf("equip i1: %v", err)
	}
	if err := s.Equip("i2"); err != nil {
		t.Fatalf("equip i2: %v", err)
	}

	got := map[string]string{}
	for _, bp := range s.Stats.BodyParts {
		if bp.Equipped != nil {
			got[bp.ID] = bp.Equipped.ID
		}
	}
	if got["bp_left_hand"] != "i1" || got["bp_right_hand"] != "i2" {
		t.Fatalf("slots filled out of order: %v", got)
	}
}

func TestUnequipRoundTrip(t *testing.T) {
	s := NewSession()
	s.AddItem(Item{ID: "i1", Name: "Iron Helmet", Slot: catPtr(CategoryHead)})

	if err := s.Equip("i1"); err != nil {
		t.Fatalf("Equip: %v", err)
	}
	item, ok := s.Unequip("bp_head")
	if !ok {
		t.Fatal("Unequip reported no-op on occupied slot")
	}
	if item.ID != "i1" || item.Slot == nil || *item.Slot != CategoryHead {
		t.Fatalf("item identity not preserved: %+v", item)
	}
	if len(s.Inventory) != 1 || s.Inventory[0].ID != "i1" {
		t.Fatalf("item not back in inventory: %+v", s.Inventory)
	}
	checkExclusive(t, s)
}

func TestUnequipIdempotent(t *testing.T) {
	s := NewSession()
	s.AddItem(Item{ID: "i1", Name: "Boots", Slot: catPtr(CategoryFeet)})
	if err := s.Equip("i1"); err != nil {
		t.Fatalf("Equip: %v", err)
	}

	if _, ok := s.Unequip("i1"); !ok {
		t.Fatal("first unequip should succeed")
	}
	if _, ok := s.Unequip("i1"); ok {
		t.Fatal("second unequip should be a no-op")
	}
	if _, ok := s.Unequip("bp_left_foot"); ok {
		t.Fatal("unequip on empty slot should be a no-op")
	}
	checkExclusive(t, s)
}

func TestUnequipByItemID(t *testing.T) {
	s := NewSession()
	s.AddItem(Item{ID: "i1", Name: "Cloak", Slot: catPtr(CategoryOvertop)})
	if err := s.Equip("i1"); err != nil {
		t.Fatalf("Equip: %v", err)
	}
	if _, ok := s.Unequip("i1"); !ok {
		t.Fatal("unequip by item id failed")
	}
	checkExclusive(t, s)
}

func TestEquipAlreadyEquippedRelocates(t *testing.T) {
	s := NewSession()
	s.AddItem(Item{ID: "i1", Name: "Ring Mail", Slot: catPtr(CategoryTorso)})
	if err := s.Equip("i1"); err != nil {
		t.Fatalf("Equip: %v", err)
	}
	// Equipping an id that is already in a slot must not duplicate it.
	if err := s.Equip("i1"); err != nil {
		t.Fatalf("re-equip: %v", err)
	}
	checkExclusive(t, s)
}

func TestDeleteEquippedItemCascades(t *testing.T) {
	s := NewSession()
	s.AddItem(Item{ID: "i1", Name: "Iron Helmet", Slot: catPtr(CategoryHead)})
	if err := s.Equip("i1"); err != nil {
		t.Fatalf("Equip: %v", err)
	}

	s.DeleteItem("i1")

	if len(s.Inventory) != 0 {
		t.Errorf("inventory not empty after delete: %+v", s.Inventory)
	}
	for _, bp := range s.Stats.BodyParts {
		if bp.Equipped != nil {
			t.Errorf("slot %s still holds an item after delete", bp.ID)
		}
	}
}
