// Package character defines the interface for character operations
package character

//go:generate mockgen -destination=mock/mock_service.go -package=charactermock github.com/soulforge/cultivation-api/internal/services/character Service

import (
	"context"

	"github.com/soulforge/cultivation-api/internal/engine"
	"github.com/soulforge/cultivation-api/internal/entities"
)

// Service defines the interface for character operations
type Service interface {
	// Lifecycle
	CreateCharacter(ctx context.Context, input *CreateCharacterInput) (*CreateCharacterOutput, error)
	GetCharacter(ctx context.Context, input *GetCharacterInput) (*GetCharacterOutput, error)
	ListCharacters(ctx context.Context, input *ListCharactersInput) (*ListCharactersOutput, error)
	DeleteCharacter(ctx context.Context, input *DeleteCharacterInput) (*DeleteCharacterOutput, error)

	// Cultivation
	GainExp(ctx context.Context, input *GainExpInput) (*GainExpOutput, error)
	Breakthrough(ctx context.Context, input *BreakthroughInput) (*BreakthroughOutput, error)
	UseInheritance(ctx context.Context, input *UseInheritanceInput) (*UseInheritanceOutput, error)

	// Attribute allocation
	AllocateAttribute(ctx context.Context, input *AllocateAttributeInput) (*AllocateAttributeOutput, error)
	AllocateAllAttributes(ctx context.Context, input *AllocateAllAttributesInput) (*AllocateAllAttributesOutput, error)

	// Equipment
	EquipItem(ctx context.Context, input *EquipItemInput) (*EquipItemOutput, error)
	UnequipItem(ctx context.Context, input *UnequipItemInput) (*UnequipItemOutput, error)

	// Forge
	UpgradeItem(ctx context.Context, input *UpgradeItemInput) (*UpgradeItemOutput, error)
	SetNatal(ctx context.Context, input *SetNatalInput) (*SetNatalOutput, error)

	// Consumables
	ConsumeItem(ctx context.Context, input *ConsumeItemInput) (*ConsumeItemOutput, error)

	// Derived state
	GetStats(ctx context.Context, input *GetStatsInput) (*GetStatsOutput, error)
}

// Lifecycle types

// CreateCharacterInput defines the request for creating a character
type CreateCharacterInput struct {
	PlayerID string
	Name     string
	TalentID string // Optional
}

// CreateCharacterOutput defines the response for creating a character
type CreateCharacterOutput struct {
	Character *entities.Character
}

// GetCharacterInput defines the request for getting a character
type GetCharacterInput struct {
	CharacterID string
}

// GetCharacterOutput defines the response for getting a character
type GetCharacterOutput struct {
	Character *entities.Character
}

// ListCharactersInput defines the request for listing a player's characters
type ListCharactersInput struct {
	PlayerID string
}

// ListCharactersOutput defines the response for listing a player's characters
type ListCharactersOutput struct {
	Characters []*entities.Character
}

// DeleteCharacterInput defines the request for deleting a character
type DeleteCharacterInput struct {
	CharacterID string
}

// DeleteCharacterOutput defines the response for deleting a character
type DeleteCharacterOutput struct {
	Message string
}

// Cultivation types

// GainExpInput defines the request for granting cultivation experience
type GainExpInput struct {
	CharacterID string
	Amount      int
}

// GainExpOutput defines the response for granting cultivation experience
type GainExpOutput struct {
	Character *entities.Character
	// CanBreakthrough reports whether the exp gate is now satisfied
	CanBreakthrough bool
}

// BreakthroughInput defines the request for a breakthrough attempt
type BreakthroughInput struct {
	CharacterID string
	// SkipRollCheck bypasses the exp gate and the success roll
	SkipRollCheck bool
	// HPLossOnEntry is an optional toll applied after a successful transition
	HPLossOnEntry int
}

// BreakthroughOutput defines the response for a breakthrough attempt
type BreakthroughOutput struct {
	Character *entities.Character
	Events    []string
}

// UseInheritanceInput defines the request for a batched inheritance advance
type UseInheritanceInput struct {
	CharacterID string
	Levels      int
}

// UseInheritanceOutput defines the response for a batched inheritance advance
type UseInheritanceOutput struct {
	Character *entities.Character
	// RemainingLevels is the unconsumed portion when the batch hit the peak
	RemainingLevels int
	Events          []string
}

// Allocation types

// AllocateAttributeInput defines the request for spending one point on an attribute
type AllocateAttributeInput struct {
	CharacterID string
	Stat        entities.Stat
}

// AllocateAttributeOutput defines the response for spending one point on an attribute
type AllocateAttributeOutput struct {
	Character *entities.Character
	Events    []string
}

// AllocateAllAttributesInput defines the request for spending the whole free
// point balance on one attribute
type AllocateAllAttributesInput struct {
	CharacterID string
	Stat        entities.Stat
}

// AllocateAllAttributesOutput defines the response for spending the whole
// free point balance on one attribute
type AllocateAllAttributesOutput struct {
	Character *entities.Character
	Events    []string
}

// Equipment types

// EquipItemInput defines the request for equipping an inventory item
type EquipItemInput struct {
	CharacterID string
	ItemID      string
	// Slot is optional; when empty the first suitable slot is chosen
	Slot entities.EquipSlot
}

// EquipItemOutput defines the response for equipping an inventory item
type EquipItemOutput struct {
	Character *entities.Character
	Slot      entities.EquipSlot
	Events    []string
}

// UnequipItemInput defines the request for unequipping a slot
type UnequipItemInput struct {
	CharacterID string
	Slot        entities.EquipSlot
}

// UnequipItemOutput defines the response for unequipping a slot
type UnequipItemOutput struct {
	Character *entities.Character
	Events    []string
}

// Forge types

// UpgradeItemInput defines the request for a probabilistic item upgrade
type UpgradeItemInput struct {
	CharacterID  string
	ItemID       string
	CostStones   int
	CostMaterial int
	CostBoosters int
}

// UpgradeItemOutput defines the response for a probabilistic item upgrade
type UpgradeItemOutput struct {
	Character *entities.Character
	Outcome   engine.UpgradeOutcome
	Events    []string
}

// SetNatalInput defines the request for designating a natal artifact
type SetNatalInput struct {
	CharacterID string
	ItemID      string
}

// SetNatalOutput defines the response for designating a natal artifact
type SetNatalOutput struct {
	Character *entities.Character
	Events    []string
}

// Consumable types

// ConsumeItemInput defines the request for consuming an inventory item
type ConsumeItemInput struct {
	CharacterID string
	ItemID      string
	Quantity    int
}

// ConsumeItemOutput defines the response for consuming an inventory item
type ConsumeItemOutput struct {
	Character *entities.Character
	Events    []string
}

// Derived state types

// GetStatsInput defines the request for the aggregated stat view
type GetStatsInput struct {
	CharacterID string
}

// GetStatsOutput defines the response for the aggregated stat view
type GetStatsOutput struct {
	// Base is the persisted stat block, Total includes equipment,
	// always-on techniques, and title set bonuses
	Base  entities.StatBlock
	Total entities.StatBlock
	// EquipmentBonus is Total minus Base contributions from gear alone
	EquipmentBonus entities.StatBlock
}
