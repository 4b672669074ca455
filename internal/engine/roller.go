package engine

//go:generate mockgen -destination=mock/mock_roller.go -package=enginemock github.com/soulforge/cultivation-api/internal/engine Roller

import (
	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/soulforge/cultivation-api/internal/errors"
)

// Roller supplies the randomness behind breakthrough and upgrade rolls.
// Tests substitute a mock to pin outcomes.
type Roller interface {
	// Roll rolls count dice of the given size and returns the total.
	Roll(count, size int) (int, error)
}

// DiceRoller implements Roller on top of rpg-toolkit dice.
type DiceRoller struct{}

// NewDiceRoller returns the production roller.
func NewDiceRoller() *DiceRoller {
	return &DiceRoller{}
}

// Roll rolls count dice of the given size and returns the total.
func (r *DiceRoller) Roll(count, size int) (int, error) {
	roll, err := dice.NewRoll(count, size)
	if err != nil {
		return 0, errors.Wrapf(err, "failed to roll %dd%d", count, size)
	}
	return roll.GetValue(), nil
}
