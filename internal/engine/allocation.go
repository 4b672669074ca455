package engine

import (
	"fmt"

	"github.com/soulforge/cultivation-api/internal/entities"
	"github.com/soulforge/cultivation-api/internal/errors"
)

// Per-point base gains before the realm multiplier is applied.
var baseGains = map[entities.Stat]int{
	entities.StatAttack:   5,
	entities.StatDefense:  5,
	entities.StatMaxHP:    20,
	entities.StatSpirit:   5,
	entities.StatPhysique: 3,
	entities.StatSpeed:    3,
}

// A physique point also grants a larger secondary HP gain.
const physiqueHPGain = 15

// realmMultiplier scales single-point gains linearly with realm depth.
func (e *Engine) realmMultiplier(realm entities.Realm) int {
	return 1 + 2*e.realms.Index(realm)
}

// pointGain returns the primary stat gain and any secondary max-HP gain for
// spending one point on the given stat at the given realm.
func (e *Engine) pointGain(stat entities.Stat, realm entities.Realm) (primary, secondaryHP int, err error) {
	base, ok := baseGains[stat]
	if !ok {
		return 0, 0, errors.InvalidArgumentf("unknown stat %s", stat)
	}
	m := e.realmMultiplier(realm)
	primary = base * m
	if stat == entities.StatPhysique {
		secondaryHP = physiqueHPGain * m
	}
	return primary, secondaryHP, nil
}

// AllocateAttribute spends one free attribute point on the given stat.
func (e *Engine) AllocateAttribute(ch *entities.Character, stat entities.Stat) (*entities.Character, []string, error) {
	return e.allocate(ch, stat, 1)
}

// AllocateAllAttributes spends the entire free point balance on the given
// stat in one transaction, logging the aggregate delta.
func (e *Engine) AllocateAllAttributes(ch *entities.Character, stat entities.Stat) (*entities.Character, []string, error) {
	return e.allocate(ch, stat, ch.AttributePoints)
}

func (e *Engine) allocate(ch *entities.Character, stat entities.Stat, points int) (*entities.Character, []string, error) {
	if ch.AttributePoints <= 0 {
		return nil, nil, errors.ResourceExhausted("no attribute points available")
	}
	if points <= 0 || points > ch.AttributePoints {
		return nil, nil, errors.InvalidArgumentf("cannot spend %d of %d attribute points", points, ch.AttributePoints)
	}

	primary, secondaryHP, err := e.pointGain(stat, ch.Realm)
	if err != nil {
		return nil, nil, err
	}

	out := ch.Clone()
	out.AttributePoints -= points

	primaryTotal := primary * points
	hpTotal := secondaryHP * points

	stats := out.BaseStats()
	stats.Set(stat, stats.Get(stat)+primaryTotal)
	stats.MaxHP += hpTotal
	out.SetBaseStats(stats)

	// HP-affecting allocations heal by the gained amount, then clamp
	// against the aggregated max so equipment and technique bonuses are
	// respected.
	if stat == entities.StatMaxHP {
		out.HP += primaryTotal
	}
	out.HP += hpTotal
	e.clampHP(out, 1)

	events := []string{fmt.Sprintf("Spent %d point(s): +%d %s", points, primaryTotal, statName(stat))}
	if hpTotal > 0 {
		events = append(events, fmt.Sprintf("Tempered body: +%d max HP", hpTotal))
	}

	return out, events, nil
}

func statName(stat entities.Stat) string {
	switch stat {
	case entities.StatAttack:
		return "attack"
	case entities.StatDefense:
		return "defense"
	case entities.StatMaxHP:
		return "max HP"
	case entities.StatSpirit:
		return "spirit"
	case entities.StatPhysique:
		return "physique"
	case entities.StatSpeed:
		return "speed"
	default:
		return string(stat)
	}
}
