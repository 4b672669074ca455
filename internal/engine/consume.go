package engine

import (
	"fmt"

	"github.com/soulforge/cultivation-api/internal/entities"
	"github.com/soulforge/cultivation-api/internal/errors"
)

// ConsumeItem spends quantity units of a consumable and applies its
// permanent effect per unit to the base stats. Exhausted stacks are pruned
// from the inventory.
func (e *Engine) ConsumeItem(ch *entities.Character, itemID string, quantity int) (*entities.Character, []string, error) {
	if quantity <= 0 {
		return nil, nil, errors.InvalidArgumentf("consume quantity must be positive: %d", quantity)
	}

	item := ch.Item(itemID)
	if item == nil {
		return nil, nil, errors.NotFoundf("item %s is not in the inventory", itemID)
	}
	if item.Type != entities.ItemTypeConsumable {
		return nil, nil, errors.InvalidArgumentf("%s (%s) cannot be consumed", item.Name, item.Type)
	}
	if item.Quantity < quantity {
		return nil, nil, errors.ResourceExhaustedf("only %d of %s remain, need %d", item.Quantity, item.Name, quantity)
	}

	out := ch.Clone()
	consumed := out.Item(itemID)

	gain := consumed.PermanentEffect.Scale(float64(quantity))
	oldMaxHP := out.MaxHP
	out.SetBaseStats(out.BaseStats().Add(gain))
	out.HP += out.MaxHP - oldMaxHP

	out.RemoveItemQuantity(itemID, quantity)
	e.clampHP(out, 1)

	events := []string{fmt.Sprintf("Consumed %d %s", quantity, item.Name)}
	if !gain.IsZero() {
		events = append(events, fmt.Sprintf("Permanent gains: %s", gain))
	}

	return out, events, nil
}

// GainExp grants cultivation experience. Experience accrues past MaxExp
// freely; the surplus carries across breakthroughs.
func (e *Engine) GainExp(ch *entities.Character, amount int) (*entities.Character, error) {
	if amount < 0 {
		return nil, errors.InvalidArgumentf("exp amount cannot be negative: %d", amount)
	}

	out := ch.Clone()
	if e.atTerminal(out) {
		// Nothing to accumulate toward at the peak.
		if out.Exp < out.MaxExp {
			out.Exp += amount
			if out.Exp > out.MaxExp {
				out.Exp = out.MaxExp
			}
		}
		return out, nil
	}

	out.Exp += amount
	return out, nil
}
