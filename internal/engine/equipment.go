package engine

import (
	"fmt"

	"github.com/soulforge/cultivation-api/internal/entities"
	"github.com/soulforge/cultivation-api/internal/errors"
)

// FindTargetSlot resolves the slot an item should occupy. Multi-instance
// types scan their slot group in stable order and take the first empty
// instance; only when every instance is occupied does the first slot come
// back, signaling a replace. Single-instance types always resolve to their
// fixed slot. Unequippable types return InvalidArgument.
func (e *Engine) FindTargetSlot(item *entities.Item, equipped map[entities.EquipSlot]string) (entities.EquipSlot, error) {
	group := entities.SlotGroup(item.Type)
	if len(group) == 0 {
		return "", errors.InvalidArgumentf("%s (%s) cannot be equipped", item.Name, item.Type)
	}
	if len(group) == 1 {
		return group[0], nil
	}
	for _, slot := range group {
		if _, occupied := equipped[slot]; !occupied {
			return slot, nil
		}
	}
	return group[0], nil
}

// EquipItem places an inventory item into an equipment slot. The allocator,
// not the caller, owns placement: requestedSlot is only validated against
// the item's slot group, and the actual target comes from FindTargetSlot.
// Exactly one of three cases applies: a move of an already-equipped item to
// another instance (net stat effect zero), a replace of the current
// occupant, or a fresh equip into an empty slot. Only fresh equips bump the
// equip counter.
func (e *Engine) EquipItem(ch *entities.Character, itemID string, requestedSlot entities.EquipSlot) (*entities.Character, []string, error) {
	item := ch.Item(itemID)
	if item == nil {
		return nil, nil, errors.NotFoundf("item %s is not in the inventory", itemID)
	}
	group := entities.SlotGroup(item.Type)
	if len(group) == 0 {
		return nil, nil, errors.InvalidArgumentf("%s (%s) cannot be equipped", item.Name, item.Type)
	}
	if requestedSlot != "" && !slotInGroup(requestedSlot, group) {
		return nil, nil, errors.InvalidArgumentf("slot %s does not accept %s items", requestedSlot, item.Type)
	}

	out := ch.Clone()
	item = out.Item(itemID)

	target, err := e.FindTargetSlot(item, out.Equipped)
	if err != nil {
		return nil, nil, err
	}

	currentSlot, alreadyEquipped := out.SlotOf(itemID)
	if alreadyEquipped && currentSlot == target {
		return out, []string{fmt.Sprintf("%s is already equipped in %s", item.Name, target)}, nil
	}

	if out.Equipped == nil {
		out.Equipped = make(map[entities.EquipSlot]string)
	}

	var events []string
	occupantID, occupied := out.Equipped[target]

	switch {
	case alreadyEquipped:
		// Move between instances of the same group. If every instance is
		// full the target may hold another item, which returns to the
		// unequipped pool first.
		if occupied && occupantID != itemID {
			occupant := out.Item(occupantID)
			events = append(events, fmt.Sprintf("Unequipped %s from %s", occupant.Name, target))
		}
		delete(out.Equipped, currentSlot)
		out.Equipped[target] = itemID
		events = append(events, fmt.Sprintf("Moved %s from %s to %s", item.Name, currentSlot, target))

	case occupied:
		occupant := out.Item(occupantID)
		if occupant == nil {
			return nil, nil, errors.Internalf("slot %s references item %s absent from inventory", target, occupantID)
		}
		out.Equipped[target] = itemID
		events = append(events,
			fmt.Sprintf("Replaced %s with %s in %s", occupant.Name, item.Name, target),
			contributionEvent(item))

	default:
		out.Equipped[target] = itemID
		out.EquipCount++
		events = append(events,
			fmt.Sprintf("Equipped %s in %s", item.Name, target),
			contributionEvent(item))
	}

	// A replace can lower aggregated max HP; never let HP dangle above it.
	e.clampHP(out, 1)

	return out, events, nil
}

// UnequipItem clears a slot. An empty slot is an informational no-op, not
// an error. Current HP is clamped to the new aggregated max but never below
// 1; unequipping is not a death mechanism.
func (e *Engine) UnequipItem(ch *entities.Character, slot entities.EquipSlot) (*entities.Character, []string, error) {
	out := ch.Clone()

	itemID, ok := out.Equipped[slot]
	if !ok {
		return out, []string{fmt.Sprintf("Nothing equipped in %s", slot)}, nil
	}

	item := out.Item(itemID)
	if item == nil {
		return nil, nil, errors.Internalf("slot %s references item %s absent from inventory", slot, itemID)
	}

	delete(out.Equipped, slot)
	e.clampHP(out, 1)

	return out, []string{fmt.Sprintf("Unequipped %s from %s", item.Name, slot)}, nil
}

func slotInGroup(slot entities.EquipSlot, group []entities.EquipSlot) bool {
	for _, s := range group {
		if s == slot {
			return true
		}
	}
	return false
}

func contributionEvent(item *entities.Item) string {
	c := item.Contribution()
	return fmt.Sprintf("%s grants +%d attack, +%d defense, +%d max HP, +%d spirit, +%d physique, +%d speed",
		item.Name, c.Attack, c.Defense, c.MaxHP, c.Spirit, c.Physique, c.Speed)
}
