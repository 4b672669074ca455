// Package character implements the character orchestrator
package character

import (
	"context"
	"log/slog"

	"github.com/soulforge/cultivation-api/internal/engine"
	"github.com/soulforge/cultivation-api/internal/entities"
	"github.com/soulforge/cultivation-api/internal/errors"
	"github.com/soulforge/cultivation-api/internal/pkg/idgen"
	characterrepo "github.com/soulforge/cultivation-api/internal/repositories/character"
	"github.com/soulforge/cultivation-api/internal/services/character"
)

// Config holds the dependencies for the character orchestrator
type Config struct {
	CharacterRepo characterrepo.Repository
	Engine        *engine.Engine
	IDGenerator   idgen.Generator
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.CharacterRepo == nil {
		vb.RequiredField("CharacterRepo")
	}
	if c.Engine == nil {
		vb.RequiredField("Engine")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}

	return vb.Build()
}

// Orchestrator implements the character.Service interface. Mutating
// operations serialize per character through striped locks, so each
// read-transform-write cycle observes its own previous writes.
type Orchestrator struct {
	characterRepo characterrepo.Repository
	engine        *engine.Engine
	idgen         idgen.Generator
	locks         characterLocks
}

// New creates a new character orchestrator
func New(cfg *Config) (*Orchestrator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &Orchestrator{
		characterRepo: cfg.CharacterRepo,
		engine:        cfg.Engine,
		idgen:         cfg.IDGenerator,
	}, nil
}

// Ensure Orchestrator implements the Service interface
var _ character.Service = (*Orchestrator)(nil)

// Lifecycle methods

// CreateCharacter creates a new character at the starting realm
func (o *Orchestrator) CreateCharacter(ctx context.Context, input *character.CreateCharacterInput) (*character.CreateCharacterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("playerID", input.PlayerID, vb)
	errors.ValidateRequired("name", input.Name, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	ch := o.engine.NewCharacter(o.idgen.Generate(), input.PlayerID, input.Name, input.TalentID)

	createOut, err := o.characterRepo.Create(ctx, characterrepo.CreateInput{Character: ch})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create character")
	}

	slog.InfoContext(ctx, "character created",
		"character_id", ch.ID,
		"player_id", input.PlayerID,
		"name", input.Name)

	return &character.CreateCharacterOutput{Character: createOut.Character}, nil
}

// GetCharacter retrieves a character by ID
func (o *Orchestrator) GetCharacter(ctx context.Context, input *character.GetCharacterInput) (*character.GetCharacterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.CharacterID == "" {
		return nil, errors.InvalidArgument("character ID is required")
	}

	getOut, err := o.characterRepo.Get(ctx, characterrepo.GetInput{ID: input.CharacterID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get character").
			WithMeta("character_id", input.CharacterID)
	}

	return &character.GetCharacterOutput{Character: getOut.Character}, nil
}

// ListCharacters lists all characters belonging to a player
func (o *Orchestrator) ListCharacters(ctx context.Context, input *character.ListCharactersInput) (*character.ListCharactersOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.PlayerID == "" {
		return nil, errors.InvalidArgument("player ID is required")
	}

	listOut, err := o.characterRepo.ListByPlayerID(ctx, characterrepo.ListByPlayerIDInput{PlayerID: input.PlayerID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list characters")
	}

	return &character.ListCharactersOutput{Characters: listOut.Characters}, nil
}

// DeleteCharacter deletes a character by ID
func (o *Orchestrator) DeleteCharacter(ctx context.Context, input *character.DeleteCharacterInput) (*character.DeleteCharacterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.CharacterID == "" {
		return nil, errors.InvalidArgument("character ID is required")
	}

	unlock := o.locks.lock(input.CharacterID)
	defer unlock()

	if _, err := o.characterRepo.Delete(ctx, characterrepo.DeleteInput{ID: input.CharacterID}); err != nil {
		return nil, errors.Wrapf(err, "failed to delete character").
			WithMeta("character_id", input.CharacterID)
	}

	slog.InfoContext(ctx, "character deleted", "character_id", input.CharacterID)

	return &character.DeleteCharacterOutput{Message: "character deleted"}, nil
}

// Cultivation methods

// GainExp grants cultivation experience
func (o *Orchestrator) GainExp(ctx context.Context, input *character.GainExpInput) (*character.GainExpOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.CharacterID == "" {
		return nil, errors.InvalidArgument("character ID is required")
	}

	unlock := o.locks.lock(input.CharacterID)
	defer unlock()

	ch, err := o.load(ctx, input.CharacterID)
	if err != nil {
		return nil, err
	}

	out, err := o.engine.GainExp(ch, input.Amount)
	if err != nil {
		return nil, err
	}

	if err := o.store(ctx, out); err != nil {
		return nil, err
	}

	return &character.GainExpOutput{
		Character:       out,
		CanBreakthrough: out.Exp >= out.MaxExp,
	}, nil
}

// Breakthrough attempts to advance the character one level or realm
func (o *Orchestrator) Breakthrough(ctx context.Context, input *character.BreakthroughInput) (*character.BreakthroughOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.CharacterID == "" {
		return nil, errors.InvalidArgument("character ID is required")
	}

	unlock := o.locks.lock(input.CharacterID)
	defer unlock()

	ch, err := o.load(ctx, input.CharacterID)
	if err != nil {
		return nil, err
	}

	out, events, err := o.engine.Breakthrough(ch, input.SkipRollCheck, input.HPLossOnEntry)
	if err != nil {
		return nil, err
	}

	if err := o.store(ctx, out); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "breakthrough resolved",
		"character_id", out.ID,
		"realm", out.Realm.String(),
		"realm_level", out.RealmLevel)

	return &character.BreakthroughOutput{Character: out, Events: events}, nil
}

// UseInheritance advances the character up to the given number of levels in
// one atomic batch
func (o *Orchestrator) UseInheritance(ctx context.Context, input *character.UseInheritanceInput) (*character.UseInheritanceOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.CharacterID == "" {
		return nil, errors.InvalidArgument("character ID is required")
	}

	unlock := o.locks.lock(input.CharacterID)
	defer unlock()

	ch, err := o.load(ctx, input.CharacterID)
	if err != nil {
		return nil, err
	}

	out, remaining, events, err := o.engine.UseInheritance(ch, input.Levels)
	if err != nil {
		return nil, err
	}

	if err := o.store(ctx, out); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "inheritance consumed",
		"character_id", out.ID,
		"levels_requested", input.Levels,
		"levels_remaining", remaining,
		"realm", out.Realm.String(),
		"realm_level", out.RealmLevel)

	return &character.UseInheritanceOutput{
		Character:       out,
		RemainingLevels: remaining,
		Events:          events,
	}, nil
}

// Allocation methods

// AllocateAttribute spends one free attribute point on a stat
func (o *Orchestrator) AllocateAttribute(ctx context.Context, input *character.AllocateAttributeInput) (*character.AllocateAttributeOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.CharacterID == "" {
		return nil, errors.InvalidArgument("character ID is required")
	}

	unlock := o.locks.lock(input.CharacterID)
	defer unlock()

	ch, err := o.load(ctx, input.CharacterID)
	if err != nil {
		return nil, err
	}

	out, events, err := o.engine.AllocateAttribute(ch, input.Stat)
	if err != nil {
		return nil, err
	}

	if err := o.store(ctx, out); err != nil {
		return nil, err
	}

	return &character.AllocateAttributeOutput{Character: out, Events: events}, nil
}

// AllocateAllAttributes spends the whole free point balance on a stat
func (o *Orchestrator) AllocateAllAttributes(ctx context.Context, input *character.AllocateAllAttributesInput) (*character.AllocateAllAttributesOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.CharacterID == "" {
		return nil, errors.InvalidArgument("character ID is required")
	}

	unlock := o.locks.lock(input.CharacterID)
	defer unlock()

	ch, err := o.load(ctx, input.CharacterID)
	if err != nil {
		return nil, err
	}

	out, events, err := o.engine.AllocateAllAttributes(ch, input.Stat)
	if err != nil {
		return nil, err
	}

	if err := o.store(ctx, out); err != nil {
		return nil, err
	}

	return &character.AllocateAllAttributesOutput{Character: out, Events: events}, nil
}

// Equipment methods

// EquipItem places an inventory item into a suitable slot
func (o *Orchestrator) EquipItem(ctx context.Context, input *character.EquipItemInput) (*character.EquipItemOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("characterID", input.CharacterID, vb)
	errors.ValidateRequired("itemID", input.ItemID, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	unlock := o.locks.lock(input.CharacterID)
	defer unlock()

	ch, err := o.load(ctx, input.CharacterID)
	if err != nil {
		return nil, err
	}

	out, events, err := o.engine.EquipItem(ch, input.ItemID, input.Slot)
	if err != nil {
		return nil, err
	}

	if err := o.store(ctx, out); err != nil {
		return nil, err
	}

	slot, _ := out.SlotOf(input.ItemID)

	slog.InfoContext(ctx, "item equipped",
		"character_id", out.ID,
		"item_id", input.ItemID,
		"slot", string(slot))

	return &character.EquipItemOutput{Character: out, Slot: slot, Events: events}, nil
}

// UnequipItem clears an equipment slot back into the inventory
func (o *Orchestrator) UnequipItem(ctx context.Context, input *character.UnequipItemInput) (*character.UnequipItemOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("characterID", input.CharacterID, vb)
	errors.ValidateRequired("slot", string(input.Slot), vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	unlock := o.locks.lock(input.CharacterID)
	defer unlock()

	ch, err := o.load(ctx, input.CharacterID)
	if err != nil {
		return nil, err
	}

	out, events, err := o.engine.UnequipItem(ch, input.Slot)
	if err != nil {
		return nil, err
	}

	if err := o.store(ctx, out); err != nil {
		return nil, err
	}

	return &character.UnequipItemOutput{Character: out, Events: events}, nil
}

// Forge methods

// UpgradeItem attempts a probabilistic item upgrade
func (o *Orchestrator) UpgradeItem(ctx context.Context, input *character.UpgradeItemInput) (*character.UpgradeItemOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("characterID", input.CharacterID, vb)
	errors.ValidateRequired("itemID", input.ItemID, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	unlock := o.locks.lock(input.CharacterID)
	defer unlock()

	ch, err := o.load(ctx, input.CharacterID)
	if err != nil {
		return nil, err
	}

	out, outcome, events, err := o.engine.UpgradeItem(ch, input.ItemID,
		input.CostStones, input.CostMaterial, input.CostBoosters)
	if err != nil {
		return nil, err
	}

	// Insufficient resources mutate nothing, so skip the write.
	if outcome != engine.UpgradeOutcomeInsufficient {
		if err := o.store(ctx, out); err != nil {
			return nil, err
		}
	}

	slog.InfoContext(ctx, "upgrade resolved",
		"character_id", out.ID,
		"item_id", input.ItemID,
		"outcome", string(outcome))

	return &character.UpgradeItemOutput{Character: out, Outcome: outcome, Events: events}, nil
}

// SetNatal designates an item as the character's natal artifact
func (o *Orchestrator) SetNatal(ctx context.Context, input *character.SetNatalInput) (*character.SetNatalOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("characterID", input.CharacterID, vb)
	errors.ValidateRequired("itemID", input.ItemID, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	unlock := o.locks.lock(input.CharacterID)
	defer unlock()

	ch, err := o.load(ctx, input.CharacterID)
	if err != nil {
		return nil, err
	}

	out, events, err := o.engine.SetNatal(ch, input.ItemID)
	if err != nil {
		return nil, err
	}

	if err := o.store(ctx, out); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "natal artifact bound",
		"character_id", out.ID,
		"item_id", input.ItemID)

	return &character.SetNatalOutput{Character: out, Events: events}, nil
}

// Consumable methods

// ConsumeItem spends consumable items and applies their permanent effects
func (o *Orchestrator) ConsumeItem(ctx context.Context, input *character.ConsumeItemInput) (*character.ConsumeItemOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("characterID", input.CharacterID, vb)
	errors.ValidateRequired("itemID", input.ItemID, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	quantity := input.Quantity
	if quantity == 0 {
		quantity = 1
	}

	unlock := o.locks.lock(input.CharacterID)
	defer unlock()

	ch, err := o.load(ctx, input.CharacterID)
	if err != nil {
		return nil, err
	}

	out, events, err := o.engine.ConsumeItem(ch, input.ItemID, quantity)
	if err != nil {
		return nil, err
	}

	if err := o.store(ctx, out); err != nil {
		return nil, err
	}

	return &character.ConsumeItemOutput{Character: out, Events: events}, nil
}

// Derived state methods

// GetStats returns the persisted base stats alongside the aggregated view
func (o *Orchestrator) GetStats(ctx context.Context, input *character.GetStatsInput) (*character.GetStatsOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.CharacterID == "" {
		return nil, errors.InvalidArgument("character ID is required")
	}

	ch, err := o.load(ctx, input.CharacterID)
	if err != nil {
		return nil, err
	}

	return &character.GetStatsOutput{
		Base:           ch.BaseStats(),
		Total:          o.engine.AggregateStats(ch),
		EquipmentBonus: o.engine.EquipmentContribution(ch),
	}, nil
}

// load fetches the character aggregate for a read-transform-write cycle.
func (o *Orchestrator) load(ctx context.Context, characterID string) (*entities.Character, error) {
	getOut, err := o.characterRepo.Get(ctx, characterrepo.GetInput{ID: characterID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get character").
			WithMeta("character_id", characterID)
	}
	return getOut.Character, nil
}

// store persists the transformed aggregate.
func (o *Orchestrator) store(ctx context.Context, ch *entities.Character) error {
	if _, err := o.characterRepo.Update(ctx, characterrepo.UpdateInput{Character: ch}); err != nil {
		return errors.Wrapf(err, "failed to persist character").
			WithMeta("character_id", ch.ID)
	}
	return nil
}
