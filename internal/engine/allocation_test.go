package engine_test

import (
	"github.com/soulforge/cultivation-api/internal/entities"
	"github.com/soulforge/cultivation-api/internal/errors"
)

func (s *EngineTestSuite) TestAllocateAttribute_AttackAtFirstRealm() {
	ch := s.newCharacter(entities.RealmQiRefining, 1)
	ch.AttributePoints = 3

	out, events, err := s.engine.AllocateAttribute(ch, entities.StatAttack)
	s.Require().NoError(err)
	s.Assert().NotEmpty(events)

	s.Assert().Equal(ch.Attack+5, out.Attack, "base gain 5 at multiplier 1")
	s.Assert().Equal(2, out.AttributePoints)
}

func (s *EngineTestSuite) TestAllocateAttribute_MultiplierScalesWithRealm() {
	// multiplier(realm) = 1 + 2*index; Foundation is index 1.
	ch := s.newCharacter(entities.RealmFoundation, 1)
	ch.AttributePoints = 1

	out, _, err := s.engine.AllocateAttribute(ch, entities.StatAttack)
	s.Require().NoError(err)
	s.Assert().Equal(ch.Attack+15, out.Attack)
}

func (s *EngineTestSuite) TestAllocateAttribute_PhysiqueGrantsSecondaryHP() {
	ch := s.newCharacter(entities.RealmQiRefining, 1)
	ch.AttributePoints = 1

	out, _, err := s.engine.AllocateAttribute(ch, entities.StatPhysique)
	s.Require().NoError(err)

	s.Assert().Equal(ch.Physique+3, out.Physique)
	s.Assert().Equal(ch.MaxHP+15, out.MaxHP, "a physique point also tempers HP")
	s.Assert().Equal(out.MaxHP, out.HP)
}

func (s *EngineTestSuite) TestAllocateAttribute_MaxHPHealsAndClampsToAggregatedMax() {
	ch := s.newCharacter(entities.RealmQiRefining, 1)
	ch.AttributePoints = 1
	pendant := &entities.Item{
		ID: "item-p1", Name: "Vital Pendant", Type: entities.ItemTypeAccessory,
		Quantity: 1, Effect: entities.StatBlock{MaxHP: 200},
	}
	ch.Inventory[pendant.ID] = pendant
	ch.Equipped[entities.EquipSlotAccessory1] = pendant.ID
	ch.HP = ch.MaxHP + 150 // wounded relative to the aggregated max

	out, _, err := s.engine.AllocateAttribute(ch, entities.StatMaxHP)
	s.Require().NoError(err)

	s.Assert().Equal(ch.MaxHP+20, out.MaxHP)
	// Clamp respects the equipment bonus, not the raw base max.
	s.Assert().Equal(ch.HP+20, out.HP)
	s.Assert().LessOrEqual(out.HP, out.MaxHP+200)
}

func (s *EngineTestSuite) TestAllocateAllAttributes_SingleTransaction() {
	ch := s.newCharacter(entities.RealmQiRefining, 1)
	ch.AttributePoints = 7

	out, events, err := s.engine.AllocateAllAttributes(ch, entities.StatAttack)
	s.Require().NoError(err)

	s.Assert().Equal(ch.Attack+35, out.Attack)
	s.Assert().Equal(0, out.AttributePoints)
	s.Assert().Len(events, 1, "one aggregate log line, not per-point deltas")
	s.Assert().Contains(events[0], "35")
}

func (s *EngineTestSuite) TestAllocateAttribute_NoPoints() {
	ch := s.newCharacter(entities.RealmQiRefining, 1)

	_, _, err := s.engine.AllocateAttribute(ch, entities.StatAttack)
	s.Assert().True(errors.IsResourceExhausted(err))
}

func (s *EngineTestSuite) TestAllocateAttribute_UnknownStat() {
	ch := s.newCharacter(entities.RealmQiRefining, 1)
	ch.AttributePoints = 1

	_, _, err := s.engine.AllocateAttribute(ch, entities.Stat("STAT_LUCK"))
	s.Assert().True(errors.IsInvalidArgument(err))
}

func (s *EngineTestSuite) TestAllocateAttribute_DoesNotMutateInput() {
	ch := s.newCharacter(entities.RealmQiRefining, 1)
	ch.AttributePoints = 2
	attackBefore := ch.Attack

	_, _, err := s.engine.AllocateAttribute(ch, entities.StatAttack)
	s.Require().NoError(err)
	s.Assert().Equal(attackBefore, ch.Attack)
	s.Assert().Equal(2, ch.AttributePoints)
}
