package engine

import (
	"github.com/soulforge/cultivation-api/internal/entities"
)

// AggregateStats computes the displayed stat totals for a character: base
// stats plus equipped item contributions (natal items at 1.5x), always-on
// technique bonuses, and completed title-set bonuses. It is pure and
// side-effect-free; equipment and technique bonuses exist only here, never
// on the persisted base fields.
func (e *Engine) AggregateStats(ch *entities.Character) entities.StatBlock {
	total := ch.BaseStats()

	for _, id := range ch.Equipped {
		item := ch.Item(id)
		if item == nil {
			// Broken slot reference; VerifyIntegrity reports it, the
			// aggregate stays a pure read.
			continue
		}
		total = total.Add(item.Contribution())
	}

	if ch.ActiveTechniqueID != "" {
		if bonus, alwaysOn := e.bonuses.TechniqueBonus(ch.ActiveTechniqueID); alwaysOn {
			total = total.Add(bonus)
		}
	}

	total = total.Add(e.bonuses.TitleSetBonus(ch.TitleIDs))

	return total
}

// EquipmentContribution sums the stat contributions of every currently
// equipped item. The equip/unequip paths keep this implicit total equal to
// what recomputing from each equipped item yields.
func (e *Engine) EquipmentContribution(ch *entities.Character) entities.StatBlock {
	var total entities.StatBlock
	for _, id := range ch.Equipped {
		if item := ch.Item(id); item != nil {
			total = total.Add(item.Contribution())
		}
	}
	return total
}
