// Package rules defines the collaborator interfaces the engine consumes:
// the realm table, the item catalog, and the title/technique bonus provider.
// Default in-memory implementations live alongside the interfaces so the
// engine can be wired without external content services.
package rules

//go:generate mockgen -destination=mock/mock_rules.go -package=rulesmock -source=rules.go

import (
	"github.com/soulforge/cultivation-api/internal/entities"
)

// RealmTable supplies the ordered realm progression data: per-realm/level
// base stats, experience requirements, lifespan gains, and attribute point
// caps.
type RealmTable interface {
	// Base returns the table base stats at the given realm and level.
	Base(realm entities.Realm, level int) entities.StatBlock

	// MaxExp returns the experience required to advance past the given
	// realm and level.
	MaxExp(realm entities.Realm, level int) int

	// LifespanGain returns the total lifespan granted by ascending into
	// the given realm.
	LifespanGain(realm entities.Realm) int

	// PointCap returns the maximum unspent attribute points a character
	// may hold at the given realm.
	PointCap(realm entities.Realm) int

	// Next returns the realm after the given one. ok is false at the
	// terminal realm.
	Next(realm entities.Realm) (next entities.Realm, ok bool)

	// Index returns the zero-based position of the realm in the ordered
	// sequence.
	Index(realm entities.Realm) int

	// First returns the starting realm.
	First() entities.Realm

	// Last returns the terminal realm.
	Last() entities.Realm
}

// ItemCatalog supplies rarity-derived constants for the upgrade and
// refinement resolvers.
type ItemCatalog interface {
	// RarityMultiplier returns the ordered quality multiplier (Common 1.0
	// ascending); the upgrade chance penalty scales with it.
	RarityMultiplier(r entities.Rarity) float64

	// GrowthRate returns the per-upgrade effect scaling rate for items of
	// the given rarity.
	GrowthRate(r entities.Rarity) float64

	// NatalCost returns the one-time max-HP cost of designating an item
	// of the given rarity as natal.
	NatalCost(r entities.Rarity) int

	// BoosterBonus returns the success-chance bonus contributed by each
	// booster consumed in an upgrade attempt.
	BoosterBonus() float64
}

// BonusProvider supplies talent, title, and technique stat bonuses.
// Talent and title bonuses are "fixed" sources folded into the persisted
// base stats by progression; technique and title-set bonuses are derived at
// aggregation time only.
type BonusProvider interface {
	// TalentBonus returns the fixed bonus for a talent, zero if unknown.
	TalentBonus(talentID string) entities.StatBlock

	// TitleBonus returns the fixed bonus for the worn title, zero if
	// unknown.
	TitleBonus(titleID string) entities.StatBlock

	// TechniqueBonus returns the display-time bonus for a technique and
	// whether the technique is the always-on kind. Passive-only techniques
	// contribute nothing to aggregated stats.
	TechniqueBonus(techniqueID string) (bonus entities.StatBlock, alwaysOn bool)

	// TitleSetBonus returns the sum of bonuses for every title set whose
	// members are all present in unlocked, regardless of which title is
	// currently worn.
	TitleSetBonus(unlocked []string) entities.StatBlock
}
