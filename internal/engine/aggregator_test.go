package engine_test

import (
	"github.com/soulforge/cultivation-api/internal/entities"
)

func (s *EngineTestSuite) TestAggregateStats_BaseOnly() {
	ch := s.newCharacter(entities.RealmQiRefining, 1)

	total := s.engine.AggregateStats(ch)

	s.Assert().Equal(ch.BaseStats(), total)
}

func (s *EngineTestSuite) TestAggregateStats_SumsEquippedContributions() {
	ch := s.newCharacter(entities.RealmQiRefining, 1)
	r1 := newRing("item-r1", 20)
	r2 := newRing("item-r2", 7)
	ch.Inventory[r1.ID] = r1
	ch.Inventory[r2.ID] = r2
	ch.Equipped[entities.EquipSlotRing1] = r1.ID
	ch.Equipped[entities.EquipSlotRing2] = r2.ID

	total := s.engine.AggregateStats(ch)

	s.Assert().Equal(ch.Attack+27, total.Attack)
}

func (s *EngineTestSuite) TestAggregateStats_NatalMultiplier() {
	ch := s.newCharacter(entities.RealmQiRefining, 1)
	ring := newRing("item-r1", 20)
	ring.IsNatal = true
	ch.Inventory[ring.ID] = ring
	ch.NatalItemID = ring.ID
	ch.Equipped[entities.EquipSlotRing1] = ring.ID

	total := s.engine.AggregateStats(ch)

	s.Assert().Equal(ch.Attack+30, total.Attack, "natal items contribute at 1.5x")
}

func (s *EngineTestSuite) TestAggregateStats_AlwaysOnTechnique() {
	ch := s.newCharacter(entities.RealmQiRefining, 1)
	ch.ActiveTechniqueID = testTechniqueID

	total := s.engine.AggregateStats(ch)

	s.Assert().Equal(ch.Spirit+30, total.Spirit)
}

func (s *EngineTestSuite) TestAggregateStats_PassiveTechniqueExcluded() {
	ch := s.newCharacter(entities.RealmQiRefining, 1)
	ch.ActiveTechniqueID = testPassiveTechID

	total := s.engine.AggregateStats(ch)

	s.Assert().Equal(ch.Attack, total.Attack)
}

func (s *EngineTestSuite) TestAggregateStats_TitleSetRequiresAllTitles() {
	ch := s.newCharacter(entities.RealmQiRefining, 1)
	ch.TitleIDs = []string{testTitleInner}

	s.Assert().Equal(ch.Defense, s.engine.AggregateStats(ch).Defense)

	// The set bonus applies once every member is unlocked, regardless of
	// which title is worn.
	ch.TitleIDs = []string{testTitleInner, testTitleCore}
	s.Assert().Equal(ch.Defense+25, s.engine.AggregateStats(ch).Defense)
}

func (s *EngineTestSuite) TestAggregateStats_Idempotent() {
	ch := s.newCharacter(entities.RealmQiRefining, 1)
	ring := newRing("item-r1", 20)
	ch.Inventory[ring.ID] = ring
	ch.Equipped[entities.EquipSlotRing1] = ring.ID

	first := s.engine.AggregateStats(ch)
	second := s.engine.AggregateStats(ch)

	s.Assert().Equal(first, second)
	s.Assert().Equal(1, ring.Quantity, "aggregation must not mutate the snapshot")
}
