package engine_test

import (
	"github.com/soulforge/cultivation-api/internal/entities"
	"github.com/soulforge/cultivation-api/internal/errors"
)

func (s *EngineTestSuite) TestBreakthrough_RealmUpRecoversAllocatedPoints() {
	// Qi Refining level 9: table attack 50, talent bonus 10, and 15 points
	// of allocated attack. Ascending to Foundation level 1 (table attack
	// 120) must carry exactly the 15 allocated points: 120 + 10 + 15.
	ch := s.newCharacter(entities.RealmQiRefining, 9)
	s.Require().Equal(60, ch.Attack, "fixture: 50 table + 10 talent")
	ch.Attack += 15 // three points spent at multiplier 1
	ch.Exp = ch.MaxExp

	out, events, err := s.engine.Breakthrough(ch, true, 0)
	s.Require().NoError(err)
	s.Assert().NotEmpty(events)

	s.Assert().Equal(entities.RealmFoundation, out.Realm)
	s.Assert().Equal(1, out.RealmLevel)
	s.Assert().Equal(145, out.Attack)
}

func (s *EngineTestSuite) TestBreakthrough_LevelUpPreservesAllocation() {
	ch := s.newCharacter(entities.RealmQiRefining, 3)
	ch.Attack += 25 // five points at multiplier 1
	ch.Exp = ch.MaxExp
	s.roller.EXPECT().Roll(1, 5).Return(3, nil)

	out, _, err := s.engine.Breakthrough(ch, true, 0)
	s.Require().NoError(err)

	s.Assert().Equal(entities.RealmQiRefining, out.Realm)
	s.Assert().Equal(4, out.RealmLevel)

	oldGain := ch.Attack - s.realms.Base(entities.RealmQiRefining, 3).Attack - 10
	newGain := out.Attack - s.realms.Base(entities.RealmQiRefining, 4).Attack - 10
	s.Assert().Equal(oldGain, newGain, "allocated gains survive the recompute exactly")
}

func (s *EngineTestSuite) TestBreakthrough_RollSuccess() {
	ch := s.newCharacter(entities.RealmQiRefining, 1)
	ch.Exp = ch.MaxExp
	s.roller.EXPECT().Roll(1, 100).Return(90, nil) // level-up chance is 0.9
	s.roller.EXPECT().Roll(1, 5).Return(2, nil)

	out, _, err := s.engine.Breakthrough(ch, false, 0)
	s.Require().NoError(err)
	s.Assert().Equal(2, out.RealmLevel)
}

func (s *EngineTestSuite) TestBreakthrough_FailurePenalty() {
	ch := s.newCharacter(entities.RealmQiRefining, 1)
	ch.Exp = ch.MaxExp
	s.roller.EXPECT().Roll(1, 100).Return(91, nil)

	out, events, err := s.engine.Breakthrough(ch, false, 0)
	s.Require().NoError(err)

	s.Assert().Equal(1, out.RealmLevel, "a failed breakthrough does not advance")
	s.Assert().Equal(ch.Exp*7/10, out.Exp)
	s.Assert().Equal(ch.HP/2, out.HP)
	s.Assert().Contains(events[0], "failed")
}

func (s *EngineTestSuite) TestBreakthrough_ExpGate() {
	ch := s.newCharacter(entities.RealmQiRefining, 1)
	ch.Exp = ch.MaxExp - 1

	_, _, err := s.engine.Breakthrough(ch, false, 0)
	s.Assert().True(errors.IsFailedPrecondition(err))
}

func (s *EngineTestSuite) TestBreakthrough_ExpCarryOver() {
	ch := s.newCharacter(entities.RealmQiRefining, 1)
	ch.Exp = ch.MaxExp + 40
	s.roller.EXPECT().Roll(1, 5).Return(1, nil)

	out, _, err := s.engine.Breakthrough(ch, true, 0)
	s.Require().NoError(err)

	s.Assert().Equal(40, out.Exp, "excess experience carries into the new level")
	s.Assert().Equal(s.realms.MaxExp(entities.RealmQiRefining, 2), out.MaxExp)
}

func (s *EngineTestSuite) TestBreakthrough_PointGrantClampedToCap() {
	ch := s.newCharacter(entities.RealmQiRefining, 1)
	ch.Exp = ch.MaxExp
	ch.AttributePoints = s.realms.PointCap(entities.RealmQiRefining)
	s.roller.EXPECT().Roll(1, 5).Return(1, nil)

	out, _, err := s.engine.Breakthrough(ch, true, 0)
	s.Require().NoError(err)
	s.Assert().Equal(s.realms.PointCap(entities.RealmQiRefining), out.AttributePoints,
		"grants past the cap truncate instead of rejecting")
}

func (s *EngineTestSuite) TestBreakthrough_LifespanGrowsMonotonically() {
	ch := s.newCharacter(entities.RealmQiRefining, 9)
	ch.Exp = ch.MaxExp

	out, _, err := s.engine.Breakthrough(ch, true, 0)
	s.Require().NoError(err)

	// Realm-up grants the full table gain plus a 10% bonus.
	gain := s.realms.LifespanGain(entities.RealmFoundation)
	s.Assert().Equal(ch.MaxLifespan+gain+gain/10, out.MaxLifespan)
	s.Assert().Greater(out.Lifespan, ch.Lifespan)
}

func (s *EngineTestSuite) TestBreakthrough_HPLossAgainstAggregatedMax() {
	ch := s.newCharacter(entities.RealmQiRefining, 9)
	ch.Exp = ch.MaxExp

	out, _, err := s.engine.Breakthrough(ch, true, 350)
	s.Require().NoError(err)
	s.Assert().Equal(out.MaxHP-350, out.HP)
}

func (s *EngineTestSuite) TestBreakthrough_HPLossFloorsAtZero() {
	ch := s.newCharacter(entities.RealmQiRefining, 1)
	ch.Exp = ch.MaxExp
	s.roller.EXPECT().Roll(1, 5).Return(1, nil)

	out, _, err := s.engine.Breakthrough(ch, true, 1<<30)
	s.Require().NoError(err)
	s.Assert().Equal(0, out.HP)
}

func (s *EngineTestSuite) TestBreakthrough_TerminalIsIdempotent() {
	ch := s.newCharacter(entities.RealmDaoSeeking, 9)
	ch.Exp = ch.MaxExp + 500

	for i := 0; i < 3; i++ {
		out, events, err := s.engine.Breakthrough(ch, true, 0)
		s.Require().NoError(err)

		s.Assert().Equal(entities.RealmDaoSeeking, out.Realm)
		s.Assert().Equal(9, out.RealmLevel)
		s.Assert().Equal(out.MaxExp, out.Exp, "exp clamps to max at the peak")
		s.Assert().Contains(events[0], "peak")
		ch = out
	}
}

func (s *EngineTestSuite) TestUseInheritance_BatchAdvance() {
	// Qi Refining 8 + 4 levels: 9, then Foundation 1, 2, 3.
	ch := s.newCharacter(entities.RealmQiRefining, 8)
	ch.Attack += 15
	s.roller.EXPECT().Roll(1, 5).Return(2, nil).Times(3)

	out, remaining, events, err := s.engine.UseInheritance(ch, 4)
	s.Require().NoError(err)
	s.Assert().NotEmpty(events)

	s.Assert().Equal(0, remaining)
	s.Assert().Equal(entities.RealmFoundation, out.Realm)
	s.Assert().Equal(3, out.RealmLevel)

	// Decomposition computed once across the batch endpoints.
	expected := s.realms.Base(entities.RealmFoundation, 3).Attack + 10 + 15
	s.Assert().Equal(expected, out.Attack)
}

func (s *EngineTestSuite) TestUseInheritance_StopsAtTerminal() {
	ch := s.newCharacter(entities.RealmDaoSeeking, 8)
	s.roller.EXPECT().Roll(1, 5).Return(2, nil)

	out, remaining, _, err := s.engine.UseInheritance(ch, 5)
	s.Require().NoError(err)

	s.Assert().Equal(4, remaining, "unconsumed levels are returned")
	s.Assert().Equal(entities.RealmDaoSeeking, out.Realm)
	s.Assert().Equal(9, out.RealmLevel)
}

func (s *EngineTestSuite) TestUseInheritance_AtTerminalConsumesNothing() {
	ch := s.newCharacter(entities.RealmDaoSeeking, 9)

	out, remaining, events, err := s.engine.UseInheritance(ch, 3)
	s.Require().NoError(err)

	s.Assert().Equal(3, remaining)
	s.Assert().Equal(9, out.RealmLevel)
	s.Assert().Contains(events[0], "peak")
}

func (s *EngineTestSuite) TestUseInheritance_RejectsNonPositiveLevels() {
	ch := s.newCharacter(entities.RealmQiRefining, 1)

	_, _, _, err := s.engine.UseInheritance(ch, 0)
	s.Assert().True(errors.IsInvalidArgument(err))
}
