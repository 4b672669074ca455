package engine_test

import (
	"github.com/soulforge/cultivation-api/internal/entities"
	"github.com/soulforge/cultivation-api/internal/errors"
)

func newElixir(qty int) *entities.Item {
	return &entities.Item{
		ID:              "item-marrow-elixir",
		Name:            "Marrow Cleansing Elixir",
		Type:            entities.ItemTypeConsumable,
		Rarity:          entities.RarityCommon,
		Quantity:        qty,
		PermanentEffect: entities.StatBlock{Attack: 5, MaxHP: 10},
	}
}

func (s *EngineTestSuite) TestConsumeItem_AppliesPermanentEffectPerUnit() {
	ch := s.newCharacter(entities.RealmQiRefining, 1)
	ch.AddItem(newElixir(3))

	baseAttack := ch.Attack
	baseMaxHP := ch.MaxHP

	out, events, err := s.engine.ConsumeItem(ch, "item-marrow-elixir", 2)
	s.Require().NoError(err)

	s.Assert().Equal(baseAttack+10, out.Attack)
	s.Assert().Equal(baseMaxHP+20, out.MaxHP)
	s.Assert().Equal(out.MaxHP, out.HP, "a full-HP character stays full when max HP grows")
	s.Require().NotNil(out.Item("item-marrow-elixir"))
	s.Assert().Equal(1, out.Item("item-marrow-elixir").Quantity)
	s.Require().NotEmpty(events)
	s.Assert().Contains(events[0], "Consumed 2")
}

func (s *EngineTestSuite) TestConsumeItem_ExhaustedStackIsPruned() {
	ch := s.newCharacter(entities.RealmQiRefining, 1)
	ch.AddItem(newElixir(2))

	out, _, err := s.engine.ConsumeItem(ch, "item-marrow-elixir", 2)
	s.Require().NoError(err)
	s.Assert().Nil(out.Item("item-marrow-elixir"))
}

func (s *EngineTestSuite) TestConsumeItem_RejectsNonConsumable() {
	ch := s.newCharacter(entities.RealmQiRefining, 1)
	ch.AddItem(newRing("item-r1", 20))

	_, _, err := s.engine.ConsumeItem(ch, "item-r1", 1)
	s.Require().Error(err)
	s.Assert().True(errors.IsInvalidArgument(err))
}

func (s *EngineTestSuite) TestConsumeItem_InsufficientQuantity() {
	ch := s.newCharacter(entities.RealmQiRefining, 1)
	ch.AddItem(newElixir(1))

	_, _, err := s.engine.ConsumeItem(ch, "item-marrow-elixir", 3)
	s.Require().Error(err)
	s.Assert().True(errors.IsResourceExhausted(err))
	s.Assert().Equal(1, ch.Item("item-marrow-elixir").Quantity)
}

func (s *EngineTestSuite) TestConsumeItem_RejectsNonPositiveQuantity() {
	ch := s.newCharacter(entities.RealmQiRefining, 1)
	ch.AddItem(newElixir(1))

	_, _, err := s.engine.ConsumeItem(ch, "item-marrow-elixir", 0)
	s.Require().Error(err)
	s.Assert().True(errors.IsInvalidArgument(err))
}

func (s *EngineTestSuite) TestConsumeItem_DoesNotMutateInput() {
	ch := s.newCharacter(entities.RealmQiRefining, 1)
	ch.AddItem(newElixir(2))
	attack := ch.Attack

	_, _, err := s.engine.ConsumeItem(ch, "item-marrow-elixir", 1)
	s.Require().NoError(err)

	s.Assert().Equal(attack, ch.Attack)
	s.Assert().Equal(2, ch.Item("item-marrow-elixir").Quantity)
}

func (s *EngineTestSuite) TestGainExp_AccruesPastMaxExp() {
	ch := s.newCharacter(entities.RealmQiRefining, 1)
	ch.Exp = ch.MaxExp - 10

	out, err := s.engine.GainExp(ch, 50)
	s.Require().NoError(err)
	s.Assert().Equal(ch.MaxExp+40, out.Exp, "surplus accrues past the gate")
}

func (s *EngineTestSuite) TestGainExp_RejectsNegativeAmount() {
	ch := s.newCharacter(entities.RealmQiRefining, 1)

	_, err := s.engine.GainExp(ch, -5)
	s.Require().Error(err)
	s.Assert().True(errors.IsInvalidArgument(err))
}

func (s *EngineTestSuite) TestGainExp_ClampsAtTheTerminalRealm() {
	ch := s.newCharacter(entities.RealmDaoSeeking, 9)
	ch.Exp = ch.MaxExp - 10

	out, err := s.engine.GainExp(ch, 1000)
	s.Require().NoError(err)
	s.Assert().Equal(ch.MaxExp, out.Exp)
}
