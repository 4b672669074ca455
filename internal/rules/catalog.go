package rules

import (
	"github.com/soulforge/cultivation-api/internal/entities"
)

// StaticItemCatalog is an in-memory ItemCatalog with stock rarity curves.
type StaticItemCatalog struct{}

// NewStaticItemCatalog returns the stock item catalog.
func NewStaticItemCatalog() *StaticItemCatalog {
	return &StaticItemCatalog{}
}

var _ ItemCatalog = (*StaticItemCatalog)(nil)

// RarityMultiplier returns the quality multiplier for a rarity tier.
func (c *StaticItemCatalog) RarityMultiplier(r entities.Rarity) float64 {
	switch r {
	case entities.RarityCommon:
		return 1.0
	case entities.RarityRare:
		return 1.5
	case entities.RarityLegendary:
		return 2.0
	case entities.RarityMythic:
		return 3.0
	default:
		return 1.0
	}
}

// GrowthRate returns the per-upgrade effect scaling rate. Rarer items grow
// faster per level.
func (c *StaticItemCatalog) GrowthRate(r entities.Rarity) float64 {
	switch r {
	case entities.RarityCommon:
		return 0.10
	case entities.RarityRare:
		return 0.15
	case entities.RarityLegendary:
		return 0.20
	case entities.RarityMythic:
		return 0.30
	default:
		return 0.10
	}
}

// NatalCost returns the one-time max-HP cost of natal designation.
func (c *StaticItemCatalog) NatalCost(r entities.Rarity) int {
	switch r {
	case entities.RarityCommon:
		return 50
	case entities.RarityRare:
		return 120
	case entities.RarityLegendary:
		return 300
	case entities.RarityMythic:
		return 800
	default:
		return 50
	}
}

// BoosterBonus returns the success-chance bonus per booster consumed.
func (c *StaticItemCatalog) BoosterBonus() float64 {
	return 0.05
}
