// Package engine implements the cultivation progression and equipment
// economy core: the breakthrough state machine, the attribute allocation
// ledger, the equipment slot allocator with its stat aggregator, and the
// item upgrade/refinement resolver.
//
// Every mutating operation is a transaction: it clones the input character,
// mutates the clone, and returns it together with an ordered human-readable
// event log. The input snapshot is never touched, and an error return means
// no observable mutation occurred.
package engine

import (
	"github.com/soulforge/cultivation-api/internal/entities"
	"github.com/soulforge/cultivation-api/internal/errors"
	"github.com/soulforge/cultivation-api/internal/rules"
)

// Breakthrough success chances and failure penalties.
const (
	realmUpChance = 0.6
	levelUpChance = 0.9

	failureExpNumerator   = 7
	failureExpDenominator = 10
)

// Config holds the collaborators the engine consumes.
type Config struct {
	Realms  rules.RealmTable
	Catalog rules.ItemCatalog
	Bonuses rules.BonusProvider
	Roller  Roller
}

// Validate ensures all required collaborators are provided.
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Realms == nil {
		vb.RequiredField("Realms")
	}
	if c.Catalog == nil {
		vb.RequiredField("Catalog")
	}
	if c.Bonuses == nil {
		vb.RequiredField("Bonuses")
	}
	if c.Roller == nil {
		vb.RequiredField("Roller")
	}

	return vb.Build()
}

// Engine is a pure function of (character, command, catalogs). It holds no
// mutable state of its own.
type Engine struct {
	realms  rules.RealmTable
	catalog rules.ItemCatalog
	bonuses rules.BonusProvider
	roller  Roller
}

// New creates an engine from the given collaborators.
func New(cfg *Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &Engine{
		realms:  cfg.Realms,
		catalog: cfg.Catalog,
		bonuses: cfg.Bonuses,
		roller:  cfg.Roller,
	}, nil
}

// fixedBonus sums the bonus sources that are folded into the persisted base
// stats: talent and worn title. Equipment and technique bonuses are derived
// at aggregation time and must not appear here, or the subtraction-based
// allocation recovery would double count them.
func (e *Engine) fixedBonus(ch *entities.Character) entities.StatBlock {
	return e.bonuses.TalentBonus(ch.TalentID).Add(e.bonuses.TitleBonus(ch.CurrentTitleID))
}

// rollSuccess rolls a d100 against a [0,1] chance.
func (e *Engine) rollSuccess(chance float64) (bool, error) {
	if chance >= 1 {
		return true, nil
	}
	if chance <= 0 {
		return false, nil
	}
	roll, err := e.roller.Roll(1, 100)
	if err != nil {
		return false, err
	}
	return roll <= int(chance*100), nil
}

// clampHP bounds current HP by the aggregated max HP and the given floor.
func (e *Engine) clampHP(ch *entities.Character, floor int) {
	maxHP := e.AggregateStats(ch).MaxHP
	if ch.HP > maxHP {
		ch.HP = maxHP
	}
	if ch.HP < floor {
		ch.HP = floor
	}
}

// NewCharacter builds a fresh character at the first realm, level 1, with
// the talent's fixed bonus folded into the persisted base stats.
func (e *Engine) NewCharacter(id, playerID, name, talentID string) *entities.Character {
	first := e.realms.First()
	ch := &entities.Character{
		ID:          id,
		PlayerID:    playerID,
		Name:        name,
		TalentID:    talentID,
		Realm:       first,
		RealmLevel:  1,
		Lifespan:    100,
		MaxLifespan: 100,
		Equipped:    map[entities.EquipSlot]string{},
		Inventory:   map[string]*entities.Item{},
	}
	base := e.realms.Base(first, 1).Add(e.fixedBonus(ch))
	ch.SetBaseStats(base)
	ch.HP = ch.MaxHP
	ch.MaxExp = e.realms.MaxExp(first, 1)
	return ch
}

// VerifyIntegrity checks the invariants the engine relies on. A violation
// indicates a programmer error upstream, not a recoverable business
// condition, so every finding is reported as CodeInternal.
func (e *Engine) VerifyIntegrity(ch *entities.Character) error {
	if ch == nil {
		return errors.Internal("character is nil")
	}
	if ch.RealmLevel < 1 || ch.RealmLevel > entities.MaxRealmLevel {
		return errors.Internalf("realm level %d out of range", ch.RealmLevel)
	}
	if ch.AttributePoints < 0 {
		return errors.Internalf("negative attribute points: %d", ch.AttributePoints)
	}
	for slot, id := range ch.Equipped {
		item := ch.Item(id)
		if item == nil {
			return errors.Internalf("slot %s references item %s absent from inventory", slot, id)
		}
		if !item.Type.IsEquippable() {
			return errors.Internalf("slot %s holds unequippable item %s", slot, id)
		}
	}
	natalCount := 0
	for id, item := range ch.Inventory {
		if item.Quantity <= 0 {
			return errors.Internalf("item %s retained at quantity %d", id, item.Quantity)
		}
		if item.IsNatal {
			natalCount++
			if ch.NatalItemID != id {
				return errors.Internalf("item %s is natal but natal reference is %q", id, ch.NatalItemID)
			}
		}
	}
	if natalCount > 1 {
		return errors.Internalf("%d items carry the natal designation", natalCount)
	}
	if ch.NatalItemID != "" && ch.Item(ch.NatalItemID) == nil {
		return errors.Internalf("natal reference %s absent from inventory", ch.NatalItemID)
	}
	return nil
}
