package engine_test

import (
	"github.com/soulforge/cultivation-api/internal/engine"
	"github.com/soulforge/cultivation-api/internal/entities"
	"github.com/soulforge/cultivation-api/internal/errors"
)

func (s *EngineTestSuite) TestUpgradeItem_Success() {
	ch := s.newCharacter(entities.RealmQiRefining, 1)
	ring := newRing("item-r1", 20)
	ch.Inventory[ring.ID] = ring
	ch.Inventory["item-upgrade-stone"] = newUpgradeStones(5)
	ch.SpiritStones = 100
	// Level 0 common: chance 1.0, short-circuits without a roll.

	out, outcome, events, err := s.engine.UpgradeItem(ch, ring.ID, 40, 2, 0)
	s.Require().NoError(err)
	s.Require().Equal(engine.UpgradeOutcomeSuccess, outcome)
	s.Assert().NotEmpty(events)

	upgraded := out.Item(ring.ID)
	s.Assert().Equal(1, upgraded.Level)
	s.Assert().Equal(22, upgraded.Effect.Attack, "common growth rate is 10%")
	s.Assert().Equal(60, out.SpiritStones)
	s.Assert().Equal(3, out.Item("item-upgrade-stone").Quantity)
}

func (s *EngineTestSuite) TestUpgradeItem_FailureConsumesResources() {
	ch := s.newCharacter(entities.RealmQiRefining, 1)
	ring := newRing("item-r1", 20)
	ring.Level = 3 // chance 0.7
	ch.Inventory[ring.ID] = ring
	ch.Inventory["item-upgrade-stone"] = newUpgradeStones(2)
	ch.SpiritStones = 50
	s.roller.EXPECT().Roll(1, 100).Return(71, nil)

	out, outcome, _, err := s.engine.UpgradeItem(ch, ring.ID, 50, 2, 0)
	s.Require().NoError(err)
	s.Require().Equal(engine.UpgradeOutcomeFailure, outcome)

	s.Assert().Equal(3, out.Item(ring.ID).Level, "a failed upgrade leaves the item as-is")
	s.Assert().Equal(20, out.Item(ring.ID).Effect.Attack)
	s.Assert().Equal(0, out.SpiritStones)
	s.Assert().Nil(out.Item("item-upgrade-stone"), "exhausted stacks are pruned")
}

func (s *EngineTestSuite) TestUpgradeItem_InsufficientIsAtomic() {
	ch := s.newCharacter(entities.RealmQiRefining, 1)
	ring := newRing("item-r1", 20)
	ch.Inventory[ring.ID] = ring
	ch.Inventory["item-upgrade-stone"] = newUpgradeStones(1)
	ch.SpiritStones = 100

	// Stones suffice, materials do not: nothing may be deducted.
	out, outcome, events, err := s.engine.UpgradeItem(ch, ring.ID, 40, 3, 0)
	s.Require().NoError(err)
	s.Require().Equal(engine.UpgradeOutcomeInsufficient, outcome)
	s.Assert().Contains(events[0], "upgrade stones")

	s.Assert().Equal(ch.SpiritStones, out.SpiritStones)
	s.Assert().Equal(1, out.Item("item-upgrade-stone").Quantity)
	s.Assert().Equal(0, out.Item(ring.ID).Level)
}

func (s *EngineTestSuite) TestUpgradeItem_BoostersRaiseChance() {
	ch := s.newCharacter(entities.RealmQiRefining, 1)
	ring := newRing("item-r1", 20)
	ring.Level = 3 // 0.7 base, +0.05 per booster
	ch.Inventory[ring.ID] = ring
	ch.Inventory["item-upgrade-stone"] = newUpgradeStones(2)
	ch.Inventory["item-fortune-talisman"] = newBoosters(2)
	ch.SpiritStones = 50

	// 80 fails at 0.7 but succeeds at 0.8.
	s.roller.EXPECT().Roll(1, 100).Return(80, nil)

	out, outcome, _, err := s.engine.UpgradeItem(ch, ring.ID, 50, 2, 2)
	s.Require().NoError(err)
	s.Assert().Equal(engine.UpgradeOutcomeSuccess, outcome)
	s.Assert().Nil(out.Item("item-fortune-talisman"), "boosters are consumed")
}

func (s *EngineTestSuite) TestUpgradeItem_ChanceFlooredForHighLevels() {
	ch := s.newCharacter(entities.RealmQiRefining, 1)
	ring := newRing("item-r1", 20)
	ring.Level = 15 // raw chance would be negative; floor holds at 0.1
	ch.Inventory[ring.ID] = ring
	s.roller.EXPECT().Roll(1, 100).Return(10, nil)

	_, outcome, _, err := s.engine.UpgradeItem(ch, ring.ID, 0, 0, 0)
	s.Require().NoError(err)
	s.Assert().Equal(engine.UpgradeOutcomeSuccess, outcome)
}

func (s *EngineTestSuite) TestUpgradeItem_EquippedItemFlowsThroughAggregate() {
	ch := s.newCharacter(entities.RealmQiRefining, 1)
	ring := newRing("item-r1", 100)
	ch.Inventory[ring.ID] = ring
	ch.Equipped[entities.EquipSlotRing1] = ring.ID

	out, outcome, _, err := s.engine.UpgradeItem(ch, ring.ID, 0, 0, 0)
	s.Require().NoError(err)
	s.Require().Equal(engine.UpgradeOutcomeSuccess, outcome)

	s.Assert().Equal(out.Attack+110, s.engine.AggregateStats(out).Attack)
}

func (s *EngineTestSuite) TestUpgradeItem_RejectsNonEquippable() {
	ch := s.newCharacter(entities.RealmQiRefining, 1)
	ch.Inventory["item-upgrade-stone"] = newUpgradeStones(5)

	_, _, _, err := s.engine.UpgradeItem(ch, "item-upgrade-stone", 0, 0, 0)
	s.Assert().True(errors.IsInvalidArgument(err))
}

func (s *EngineTestSuite) TestUpgradeItem_UnknownItem() {
	ch := s.newCharacter(entities.RealmQiRefining, 1)

	_, _, _, err := s.engine.UpgradeItem(ch, "item-ghost", 0, 0, 0)
	s.Assert().True(errors.IsNotFound(err))
}

func (s *EngineTestSuite) TestUpgradeItem_DoesNotMutateInput() {
	ch := s.newCharacter(entities.RealmQiRefining, 1)
	ring := newRing("item-r1", 20)
	ch.Inventory[ring.ID] = ring
	ch.SpiritStones = 100

	_, _, _, err := s.engine.UpgradeItem(ch, ring.ID, 40, 0, 0)
	s.Require().NoError(err)

	s.Assert().Equal(100, ch.SpiritStones)
	s.Assert().Equal(0, ch.Inventory[ring.ID].Level)
}

func (s *EngineTestSuite) TestSetNatal_BindsAndPaysMaxHP() {
	ch := s.newCharacter(entities.RealmQiRefining, 1)
	ring := newRing("item-r1", 20)
	ch.Inventory[ring.ID] = ring

	out, events, err := s.engine.SetNatal(ch, ring.ID)
	s.Require().NoError(err)
	s.Assert().NotEmpty(events)

	s.Assert().True(out.Item(ring.ID).IsNatal)
	s.Assert().Equal(ring.ID, out.NatalItemID)
	s.Assert().Equal(ch.MaxHP-50, out.MaxHP, "common natal cost is 50 max HP")
	s.Assert().LessOrEqual(out.HP, out.MaxHP)
}

func (s *EngineTestSuite) TestSetNatal_SwapClearsPrevious() {
	ch := s.newCharacter(entities.RealmQiRefining, 1)
	old := newRing("item-r1", 20)
	old.IsNatal = true
	ch.Inventory[old.ID] = old
	ch.NatalItemID = old.ID
	ch.Equipped[entities.EquipSlotRing1] = old.ID
	sword := newWeapon("item-w1", 40)
	ch.Inventory[sword.ID] = sword

	out, _, err := s.engine.SetNatal(ch, sword.ID)
	s.Require().NoError(err)

	s.Assert().False(out.Item(old.ID).IsNatal)
	s.Assert().True(out.Item(sword.ID).IsNatal)
	s.Assert().Equal(sword.ID, out.NatalItemID)

	// The equipped former natal drops from 1.5x to 1x in the same
	// transaction; the new natal is unequipped and contributes nothing.
	s.Assert().Equal(out.Attack+20, s.engine.AggregateStats(out).Attack)
}

func (s *EngineTestSuite) TestSetNatal_AlreadyNatalIsNoOp() {
	ch := s.newCharacter(entities.RealmQiRefining, 1)
	ring := newRing("item-r1", 20)
	ring.IsNatal = true
	ch.Inventory[ring.ID] = ring
	ch.NatalItemID = ring.ID

	out, events, err := s.engine.SetNatal(ch, ring.ID)
	s.Require().NoError(err)

	s.Assert().Equal(ch.MaxHP, out.MaxHP)
	s.Assert().Contains(events[0], "already")
}

func (s *EngineTestSuite) TestSetNatal_CostCheckedAgainstBaseMaxHP() {
	ch := s.newCharacter(entities.RealmQiRefining, 1)
	ch.MaxHP = 50
	ch.HP = 50
	ring := newRing("item-r1", 20)
	ch.Inventory[ring.ID] = ring

	_, _, err := s.engine.SetNatal(ch, ring.ID)
	s.Require().True(errors.IsResourceExhausted(err))

	s.Assert().Equal(50, ch.MaxHP, "a rejected binding mutates nothing")
	s.Assert().False(ch.Inventory[ring.ID].IsNatal)
}

func (s *EngineTestSuite) TestSetNatal_RejectsMaterials() {
	ch := s.newCharacter(entities.RealmQiRefining, 1)
	ch.Inventory["item-upgrade-stone"] = newUpgradeStones(1)

	_, _, err := s.engine.SetNatal(ch, "item-upgrade-stone")
	s.Assert().True(errors.IsInvalidArgument(err))
}
