package engine

import (
	"fmt"

	"github.com/soulforge/cultivation-api/internal/entities"
	"github.com/soulforge/cultivation-api/internal/errors"
)

// Breakthrough advances the character one step: a level-up below level 9,
// a realm-up at level 9. At the terminal realm and level the call is an
// informational no-op that clamps exp. skipRollCheck bypasses both the
// experience gate and the success roll, for callers that already resolved
// the risk externally (tribulation events). hpLossOnEntry is applied
// against the aggregated max HP after the transition, floored at 0.
//
// Base stats are recomputed from the realm table while the player's
// allocated gains are recovered by subtraction: allocated = current - old
// table base - fixed talent/title bonus, per stat. No separate spent-points
// ledger exists, so bonus sources may change between transitions without
// corrupting the decomposition.
func (e *Engine) Breakthrough(ch *entities.Character, skipRollCheck bool, hpLossOnEntry int) (*entities.Character, []string, error) {
	if hpLossOnEntry < 0 {
		return nil, nil, errors.InvalidArgumentf("hp loss cannot be negative: %d", hpLossOnEntry)
	}

	out := ch.Clone()

	if e.atTerminal(out) {
		if out.Exp > out.MaxExp {
			out.Exp = out.MaxExp
		}
		return out, []string{terminalNotice(out)}, nil
	}

	if !skipRollCheck && out.Exp < out.MaxExp {
		return nil, nil, errors.FailedPreconditionf("need %d exp to attempt a breakthrough, have %d", out.MaxExp, out.Exp)
	}

	realmUp := out.RealmLevel >= entities.MaxRealmLevel

	if !skipRollCheck {
		chance := levelUpChance
		if realmUp {
			chance = realmUpChance
		}
		ok, err := e.rollSuccess(chance)
		if err != nil {
			return nil, nil, errors.Wrap(err, "breakthrough roll failed")
		}
		if !ok {
			out.Exp = out.Exp * failureExpNumerator / failureExpDenominator
			out.HP = out.HP / 2
			if out.HP < 1 {
				out.HP = 1
			}
			return out, []string{
				"The breakthrough failed; qi deviation wracks the body",
				fmt.Sprintf("Exp reduced to %d, HP reduced to %d", out.Exp, out.HP),
			}, nil
		}
	}

	oldRealm, oldLevel := out.Realm, out.RealmLevel
	newRealm, newLevel := oldRealm, oldLevel+1
	if realmUp {
		next, ok := e.realms.Next(oldRealm)
		if !ok {
			return nil, nil, errors.Internalf("realm %s has no successor below terminal", oldRealm)
		}
		newRealm, newLevel = next, 1
	}

	events, err := e.applyAdvance(out, oldRealm, oldLevel, newRealm, newLevel, realmUp)
	if err != nil {
		return nil, nil, err
	}

	// Entry toll is paid against the real aggregated max, not the base.
	e.clampHP(out, 0)
	if hpLossOnEntry > 0 {
		out.HP -= hpLossOnEntry
		if out.HP < 0 {
			out.HP = 0
		}
		events = append(events, fmt.Sprintf("The breakthrough exacted a toll of %d HP", hpLossOnEntry))
	}

	return out, events, nil
}

// UseInheritance advances the character up to levels steps in one atomic
// batch. The base/fixed/allocated decomposition is computed once against
// the pre-batch and post-batch endpoints, not per intermediate step. The
// batch stops early at the terminal realm; the second return value is the
// unconsumed level count.
func (e *Engine) UseInheritance(ch *entities.Character, levels int) (*entities.Character, int, []string, error) {
	if levels <= 0 {
		return nil, 0, nil, errors.InvalidArgumentf("inheritance level count must be positive: %d", levels)
	}

	out := ch.Clone()

	if e.atTerminal(out) {
		if out.Exp > out.MaxExp {
			out.Exp = out.MaxExp
		}
		return out, levels, []string{terminalNotice(out)}, nil
	}

	startRealm, startLevel := out.Realm, out.RealmLevel
	curRealm, curLevel := startRealm, startLevel
	consumed := 0
	pointGrant := 0
	lifespanGrant := 0

	for consumed < levels {
		if curRealm == e.realms.Last() && curLevel >= entities.MaxRealmLevel {
			break
		}
		if curLevel >= entities.MaxRealmLevel {
			next, ok := e.realms.Next(curRealm)
			if !ok {
				break
			}
			curRealm, curLevel = next, 1
			pointGrant += e.realmUpPointGrant(curRealm)
			gain := e.realms.LifespanGain(curRealm)
			lifespanGrant += gain + gain/10
		} else {
			curLevel++
			pointGrant += e.levelUpPointGrant(curRealm)
			gain, err := e.levelUpLifespanGain(curRealm)
			if err != nil {
				return nil, 0, nil, err
			}
			lifespanGrant += gain
		}
		consumed++
	}

	fixed := e.fixedBonus(out)
	oldBase := e.realms.Base(startRealm, startLevel)
	newBase := e.realms.Base(curRealm, curLevel)
	allocated := recoverAllocated(out.BaseStats(), oldBase, fixed)

	oldMaxHP := out.MaxHP
	out.Realm, out.RealmLevel = curRealm, curLevel
	out.SetBaseStats(newBase.Add(fixed).Add(allocated))
	out.HP += out.MaxHP - oldMaxHP

	pointCap := e.realms.PointCap(curRealm)
	out.AttributePoints += pointGrant
	if out.AttributePoints > pointCap {
		out.AttributePoints = pointCap
	}

	out.MaxLifespan += lifespanGrant
	out.Lifespan += lifespanGrant

	out.MaxExp = e.realms.MaxExp(curRealm, curLevel)
	if out.Exp > out.MaxExp {
		out.Exp = out.MaxExp
	}
	e.clampHP(out, 1)

	events := []string{fmt.Sprintf("Inheritance surged through %d level(s): now %s level %d", consumed, curRealm, curLevel)}
	if pointGrant > 0 {
		events = append(events, fmt.Sprintf("Gained %d attribute point(s)", pointGrant))
	}
	remaining := levels - consumed
	if remaining > 0 {
		events = append(events, fmt.Sprintf("The inheritance ebbed at the peak; %d level(s) unconsumed", remaining))
	}

	return out, remaining, events, nil
}

// applyAdvance performs the shared single-step transition bookkeeping:
// stat recomputation, attribute point grant, lifespan growth, and exp
// carry-over.
func (e *Engine) applyAdvance(out *entities.Character, oldRealm entities.Realm, oldLevel int, newRealm entities.Realm, newLevel int, realmUp bool) ([]string, error) {
	fixed := e.fixedBonus(out)
	oldBase := e.realms.Base(oldRealm, oldLevel)
	newBase := e.realms.Base(newRealm, newLevel)
	allocated := recoverAllocated(out.BaseStats(), oldBase, fixed)

	oldMaxHP := out.MaxHP
	out.Realm, out.RealmLevel = newRealm, newLevel
	out.SetBaseStats(newBase.Add(fixed).Add(allocated))
	out.HP += out.MaxHP - oldMaxHP

	pointCap := e.realms.PointCap(newRealm)
	grant := e.levelUpPointGrant(newRealm)
	if realmUp {
		grant = e.realmUpPointGrant(newRealm)
	}
	out.AttributePoints += grant
	if out.AttributePoints > pointCap {
		out.AttributePoints = pointCap
	}

	var lifespanGain int
	if realmUp {
		gain := e.realms.LifespanGain(newRealm)
		lifespanGain = gain + gain/10
	} else {
		gain, err := e.levelUpLifespanGain(newRealm)
		if err != nil {
			return nil, err
		}
		lifespanGain = gain
	}
	out.MaxLifespan += lifespanGain
	out.Lifespan += lifespanGain

	out.Exp -= out.MaxExp
	if out.Exp < 0 {
		out.Exp = 0
	}
	out.MaxExp = e.realms.MaxExp(newRealm, newLevel)

	var events []string
	if realmUp {
		events = append(events, fmt.Sprintf("Ascended to %s level 1", newRealm))
	} else {
		events = append(events, fmt.Sprintf("Advanced to %s level %d", newRealm, newLevel))
	}
	if grant > 0 {
		events = append(events, fmt.Sprintf("Gained %d attribute point(s)", grant))
	}
	events = append(events, fmt.Sprintf("Lifespan extended by %d years", lifespanGain))

	return events, nil
}

// recoverAllocated derives the player's accumulated allocation gains by
// subtraction, per stat, floored at zero.
func recoverAllocated(current, tableBase, fixed entities.StatBlock) entities.StatBlock {
	diff := current.Sub(tableBase).Sub(fixed)
	var allocated entities.StatBlock
	for _, stat := range entities.AllStats {
		if v := diff.Get(stat); v > 0 {
			allocated.Set(stat, v)
		}
	}
	return allocated
}

func (e *Engine) levelUpPointGrant(realm entities.Realm) int {
	grant := e.realms.PointCap(realm) / 9
	if grant < 1 {
		grant = 1
	}
	return grant
}

func (e *Engine) realmUpPointGrant(realm entities.Realm) int {
	grant := e.realms.PointCap(realm) / 3
	if grant < 1 {
		grant = 1
	}
	return grant
}

// levelUpLifespanGain grants a ninth of the step toward the next realm's
// lifespan plus a small random bonus.
func (e *Engine) levelUpLifespanGain(realm entities.Realm) (int, error) {
	delta := e.realms.LifespanGain(realm)
	if next, ok := e.realms.Next(realm); ok {
		delta = e.realms.LifespanGain(next)
	}
	bonus, err := e.roller.Roll(1, 5)
	if err != nil {
		return 0, errors.Wrap(err, "lifespan roll failed")
	}
	return delta/9 + bonus, nil
}

func (e *Engine) atTerminal(ch *entities.Character) bool {
	return ch.Realm == e.realms.Last() && ch.RealmLevel >= entities.MaxRealmLevel
}

func terminalNotice(ch *entities.Character) string {
	return fmt.Sprintf("%s level %d is the peak of cultivation; no realm lies beyond", ch.Realm, ch.RealmLevel)
}
