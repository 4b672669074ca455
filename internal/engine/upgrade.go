package engine

import (
	"fmt"

	"github.com/soulforge/cultivation-api/internal/entities"
	"github.com/soulforge/cultivation-api/internal/errors"
)

// UpgradeOutcome tags the result of an upgrade attempt.
type UpgradeOutcome string

// Upgrade outcomes
const (
	UpgradeOutcomeSuccess      UpgradeOutcome = "UPGRADE_SUCCESS"
	UpgradeOutcomeFailure      UpgradeOutcome = "UPGRADE_FAILURE"
	UpgradeOutcomeInsufficient UpgradeOutcome = "UPGRADE_INSUFFICIENT_RESOURCES"
)

// Upgrade chance shaping.
const (
	levelPenaltyPerLevel = 0.1
	rarityPenaltyFactor  = 0.15
	minUpgradeChance     = 0.1
)

// UpgradeItem attempts a probabilistic item upgrade. Preconditions are
// checked atomically: any shortfall of spirit stones, upgrade stones, or
// boosters returns UpgradeOutcomeInsufficient with no mutation at all.
// Once the preconditions hold, the resources are consumed whether the roll
// succeeds or fails; only the item mutation is conditional. On success the
// item's level rises by one and every populated effect field scales by
// 1+growthRate(rarity), re-floored. An equipped item's new contribution
// flows through the aggregate within the same transaction.
func (e *Engine) UpgradeItem(ch *entities.Character, itemID string, costStones, costMaterial, costBoosters int) (*entities.Character, UpgradeOutcome, []string, error) {
	if costStones < 0 || costMaterial < 0 || costBoosters < 0 {
		return nil, "", nil, errors.InvalidArgument("upgrade costs cannot be negative")
	}

	item := ch.Item(itemID)
	if item == nil {
		return nil, "", nil, errors.NotFoundf("item %s is not in the inventory", itemID)
	}
	if !item.Type.IsEquippable() {
		return nil, "", nil, errors.InvalidArgumentf("%s (%s) cannot be upgraded", item.Name, item.Type)
	}

	material := ch.ItemByCategory(entities.ItemCategoryUpgradeStone)
	booster := ch.ItemByCategory(entities.ItemCategoryUpgradeBooster)

	var missing []string
	if ch.SpiritStones < costStones {
		missing = append(missing, fmt.Sprintf("spirit stones (%d/%d)", ch.SpiritStones, costStones))
	}
	if costMaterial > 0 && (material == nil || material.Quantity < costMaterial) {
		have := 0
		if material != nil {
			have = material.Quantity
		}
		missing = append(missing, fmt.Sprintf("upgrade stones (%d/%d)", have, costMaterial))
	}
	if costBoosters > 0 && (booster == nil || booster.Quantity < costBoosters) {
		have := 0
		if booster != nil {
			have = booster.Quantity
		}
		missing = append(missing, fmt.Sprintf("boosters (%d/%d)", have, costBoosters))
	}
	if len(missing) > 0 {
		out := ch.Clone()
		events := []string{fmt.Sprintf("Cannot upgrade %s: missing %v", item.Name, missing)}
		return out, UpgradeOutcomeInsufficient, events, nil
	}

	out := ch.Clone()
	item = out.Item(itemID)

	out.SpiritStones -= costStones
	if costMaterial > 0 {
		out.RemoveItemQuantity(material.ID, costMaterial)
	}
	if costBoosters > 0 {
		out.RemoveItemQuantity(booster.ID, costBoosters)
	}

	chance := e.upgradeChance(item, costBoosters)
	ok, err := e.rollSuccess(chance)
	if err != nil {
		return nil, "", nil, errors.Wrap(err, "upgrade roll failed")
	}

	if !ok {
		return out, UpgradeOutcomeFailure, []string{
			fmt.Sprintf("The upgrade of %s failed; the materials were consumed", item.Name),
		}, nil
	}

	item.Level++
	growth := e.catalog.GrowthRate(item.Rarity)
	item.Effect = item.Effect.Scale(1 + growth)

	events := []string{
		fmt.Sprintf("%s was upgraded to level %d", item.Name, item.Level),
		contributionEvent(item),
	}

	if _, equipped := out.SlotOf(itemID); equipped {
		// The mutated contribution applies within this transaction.
		e.clampHP(out, 1)
		events = append(events, fmt.Sprintf("%s is equipped; its new power takes effect at once", item.Name))
	}

	return out, UpgradeOutcomeSuccess, events, nil
}

// upgradeChance computes the success probability:
// min(1, max(0.1, 1 - level*0.1 - (rarityMult-1)*0.15) + boosters*bonus).
func (e *Engine) upgradeChance(item *entities.Item, boosters int) float64 {
	chance := 1 - float64(item.Level)*levelPenaltyPerLevel - (e.catalog.RarityMultiplier(item.Rarity)-1)*rarityPenaltyFactor
	if chance < minUpgradeChance {
		chance = minUpgradeChance
	}
	chance += float64(boosters) * e.catalog.BoosterBonus()
	if chance > 1 {
		chance = 1
	}
	return chance
}

// SetNatal designates an item as the character's natal artifact. At most
// one item holds the designation: designating B while A is natal clears A
// atomically, and an equipped A drops from the 1.5x multiplier back to 1x
// through the aggregator in the same transaction. The designation consumes
// a one-time max-HP cost scaled by rarity, validated against max HP (not
// current HP) before anything mutates.
func (e *Engine) SetNatal(ch *entities.Character, itemID string) (*entities.Character, []string, error) {
	item := ch.Item(itemID)
	if item == nil {
		return nil, nil, errors.NotFoundf("item %s is not in the inventory", itemID)
	}
	if !item.Type.IsEquippable() {
		return nil, nil, errors.InvalidArgumentf("%s (%s) cannot be a natal artifact", item.Name, item.Type)
	}

	if item.IsNatal {
		out := ch.Clone()
		return out, []string{fmt.Sprintf("%s is already the natal artifact", item.Name)}, nil
	}

	cost := e.catalog.NatalCost(item.Rarity)
	if ch.MaxHP <= cost {
		return nil, nil, errors.ResourceExhaustedf(
			"binding %s demands %d max HP; only %d remains", item.Name, cost, ch.MaxHP)
	}

	out := ch.Clone()
	item = out.Item(itemID)

	var events []string
	if out.NatalItemID != "" {
		if prev := out.Item(out.NatalItemID); prev != nil {
			prev.IsNatal = false
			events = append(events, fmt.Sprintf("%s relinquished the natal bond", prev.Name))
		}
	}

	item.IsNatal = true
	out.NatalItemID = itemID
	out.MaxHP -= cost
	e.clampHP(out, 1)

	events = append(events,
		fmt.Sprintf("%s was bound as the natal artifact at a cost of %d max HP", item.Name, cost))

	return out, events, nil
}
