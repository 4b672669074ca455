package rules

import (
	"github.com/soulforge/cultivation-api/internal/entities"
)

// realmSpec holds one realm's row in the static table. Base stats grow
// linearly within a realm: level L has base + growth*(L-1).
type realmSpec struct {
	realm        entities.Realm
	base         entities.StatBlock
	growth       entities.StatBlock
	expBase      int
	lifespanGain int
	pointCap     int
}

// defaultRealms is the stock progression table. Values are tuned so each
// realm-up is a large step relative to in-realm level growth.
var defaultRealms = []realmSpec{
	{
		realm:        entities.RealmQiRefining,
		base:         entities.StatBlock{Attack: 10, Defense: 8, MaxHP: 100, Spirit: 10, Physique: 10, Speed: 10},
		growth:       entities.StatBlock{Attack: 5, Defense: 4, MaxHP: 50, Spirit: 5, Physique: 5, Speed: 3},
		expBase:      100,
		lifespanGain: 120,
		pointCap:     27,
	},
	{
		realm:        entities.RealmFoundation,
		base:         entities.StatBlock{Attack: 120, Defense: 90, MaxHP: 1200, Spirit: 110, Physique: 100, Speed: 80},
		growth:       entities.StatBlock{Attack: 30, Defense: 22, MaxHP: 300, Spirit: 28, Physique: 25, Speed: 15},
		expBase:      1000,
		lifespanGain: 200,
		pointCap:     45,
	},
	{
		realm:        entities.RealmGoldenCore,
		base:         entities.StatBlock{Attack: 700, Defense: 520, MaxHP: 7000, Spirit: 640, Physique: 580, Speed: 400},
		growth:       entities.StatBlock{Attack: 150, Defense: 110, MaxHP: 1500, Spirit: 140, Physique: 120, Speed: 70},
		expBase:      8000,
		lifespanGain: 500,
		pointCap:     72,
	},
	{
		realm:        entities.RealmNascentSoul,
		base:         entities.StatBlock{Attack: 3800, Defense: 2800, MaxHP: 38000, Spirit: 3500, Physique: 3100, Speed: 2000},
		growth:       entities.StatBlock{Attack: 800, Defense: 600, MaxHP: 8000, Spirit: 750, Physique: 650, Speed: 350},
		expBase:      50000,
		lifespanGain: 1200,
		pointCap:     108,
	},
	{
		realm:        entities.RealmSpiritSevering,
		base:         entities.StatBlock{Attack: 20000, Defense: 15000, MaxHP: 200000, Spirit: 18500, Physique: 16500, Speed: 10000},
		growth:       entities.StatBlock{Attack: 4200, Defense: 3100, MaxHP: 42000, Spirit: 3900, Physique: 3400, Speed: 1800},
		expBase:      300000,
		lifespanGain: 3000,
		pointCap:     153,
	},
	{
		realm:        entities.RealmDaoSeeking,
		base:         entities.StatBlock{Attack: 105000, Defense: 78000, MaxHP: 1050000, Spirit: 97000, Physique: 86000, Speed: 50000},
		growth:       entities.StatBlock{Attack: 22000, Defense: 16000, MaxHP: 220000, Spirit: 20000, Physique: 18000, Speed: 9000},
		expBase:      2000000,
		lifespanGain: 8000,
		pointCap:     207,
	},
}

// StaticRealmTable is an in-memory RealmTable backed by an ordered spec
// slice.
type StaticRealmTable struct {
	specs []realmSpec
	index map[entities.Realm]int
}

// NewStaticRealmTable returns the stock realm table.
func NewStaticRealmTable() *StaticRealmTable {
	return newStaticRealmTable(defaultRealms)
}

func newStaticRealmTable(specs []realmSpec) *StaticRealmTable {
	idx := make(map[entities.Realm]int, len(specs))
	for i, s := range specs {
		idx[s.realm] = i
	}
	return &StaticRealmTable{specs: specs, index: idx}
}

var _ RealmTable = (*StaticRealmTable)(nil)

func (t *StaticRealmTable) spec(realm entities.Realm) realmSpec {
	i, ok := t.index[realm]
	if !ok {
		return t.specs[0]
	}
	return t.specs[i]
}

// Base returns the table base stats at the given realm and level.
func (t *StaticRealmTable) Base(realm entities.Realm, level int) entities.StatBlock {
	s := t.spec(realm)
	if level < 1 {
		level = 1
	}
	if level > entities.MaxRealmLevel {
		level = entities.MaxRealmLevel
	}
	return s.base.Add(s.growth.Scale(float64(level - 1)))
}

// MaxExp returns the experience required to advance past the given realm
// and level.
func (t *StaticRealmTable) MaxExp(realm entities.Realm, level int) int {
	if level < 1 {
		level = 1
	}
	return t.spec(realm).expBase * level
}

// LifespanGain returns the total lifespan granted by ascending into the
// realm.
func (t *StaticRealmTable) LifespanGain(realm entities.Realm) int {
	return t.spec(realm).lifespanGain
}

// PointCap returns the maximum unspent attribute points at the realm.
func (t *StaticRealmTable) PointCap(realm entities.Realm) int {
	return t.spec(realm).pointCap
}

// Next returns the realm after the given one; ok is false at the terminal
// realm.
func (t *StaticRealmTable) Next(realm entities.Realm) (entities.Realm, bool) {
	i, ok := t.index[realm]
	if !ok || i+1 >= len(t.specs) {
		return realm, false
	}
	return t.specs[i+1].realm, true
}

// Index returns the zero-based position of the realm in the sequence.
func (t *StaticRealmTable) Index(realm entities.Realm) int {
	return t.index[realm]
}

// First returns the starting realm.
func (t *StaticRealmTable) First() entities.Realm {
	return t.specs[0].realm
}

// Last returns the terminal realm.
func (t *StaticRealmTable) Last() entities.Realm {
	return t.specs[len(t.specs)-1].realm
}
