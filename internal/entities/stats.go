package entities

import "fmt"

// Stat identifies one of the six allocatable base stats.
type Stat string

// Allocatable stats
const (
	StatAttack   Stat = "STAT_ATTACK"
	StatDefense  Stat = "STAT_DEFENSE"
	StatMaxHP    Stat = "STAT_MAX_HP"
	StatSpirit   Stat = "STAT_SPIRIT"
	StatPhysique Stat = "STAT_PHYSIQUE"
	StatSpeed    Stat = "STAT_SPEED"
)

// AllStats lists every allocatable stat in display order.
var AllStats = []Stat{StatAttack, StatDefense, StatMaxHP, StatSpirit, StatPhysique, StatSpeed}

// StatBlock is a fixed-shape stat bundle. Every field defaults to zero, so
// "no bonus" and "zero bonus" are the same representable state.
type StatBlock struct {
	Attack   int `json:"attack,omitempty"`
	Defense  int `json:"defense,omitempty"`
	MaxHP    int `json:"max_hp,omitempty"`
	Spirit   int `json:"spirit,omitempty"`
	Physique int `json:"physique,omitempty"`
	Speed    int `json:"speed,omitempty"`
}

// Add returns the field-wise sum of two stat blocks.
func (s StatBlock) Add(o StatBlock) StatBlock {
	return StatBlock{
		Attack:   s.Attack + o.Attack,
		Defense:  s.Defense + o.Defense,
		MaxHP:    s.MaxHP + o.MaxHP,
		Spirit:   s.Spirit + o.Spirit,
		Physique: s.Physique + o.Physique,
		Speed:    s.Speed + o.Speed,
	}
}

// Sub returns the field-wise difference of two stat blocks.
func (s StatBlock) Sub(o StatBlock) StatBlock {
	return StatBlock{
		Attack:   s.Attack - o.Attack,
		Defense:  s.Defense - o.Defense,
		MaxHP:    s.MaxHP - o.MaxHP,
		Spirit:   s.Spirit - o.Spirit,
		Physique: s.Physique - o.Physique,
		Speed:    s.Speed - o.Speed,
	}
}

// Scale multiplies every populated field by factor, flooring each result.
func (s StatBlock) Scale(factor float64) StatBlock {
	scale := func(v int) int {
		if v == 0 {
			return 0
		}
		return int(float64(v) * factor)
	}
	return StatBlock{
		Attack:   scale(s.Attack),
		Defense:  scale(s.Defense),
		MaxHP:    scale(s.MaxHP),
		Spirit:   scale(s.Spirit),
		Physique: scale(s.Physique),
		Speed:    scale(s.Speed),
	}
}

// IsZero reports whether every field is zero.
func (s StatBlock) IsZero() bool {
	return s == StatBlock{}
}

// String renders the populated fields as "+N name" pairs.
func (s StatBlock) String() string {
	names := map[Stat]string{
		StatAttack:   "attack",
		StatDefense:  "defense",
		StatMaxHP:    "max HP",
		StatSpirit:   "spirit",
		StatPhysique: "physique",
		StatSpeed:    "speed",
	}
	out := ""
	for _, stat := range AllStats {
		v := s.Get(stat)
		if v == 0 {
			continue
		}
		if out != "" {
			out += ", "
		}
		out += fmt.Sprintf("%+d %s", v, names[stat])
	}
	if out == "" {
		return "no change"
	}
	return out
}

// Get returns the value for the named stat.
func (s StatBlock) Get(stat Stat) int {
	switch stat {
	case StatAttack:
		return s.Attack
	case StatDefense:
		return s.Defense
	case StatMaxHP:
		return s.MaxHP
	case StatSpirit:
		return s.Spirit
	case StatPhysique:
		return s.Physique
	case StatSpeed:
		return s.Speed
	default:
		return 0
	}
}

// Set assigns the value for the named stat.
func (s *StatBlock) Set(stat Stat, v int) {
	switch stat {
	case StatAttack:
		s.Attack = v
	case StatDefense:
		s.Defense = v
	case StatMaxHP:
		s.MaxHP = v
	case StatSpirit:
		s.Spirit = v
	case StatPhysique:
		s.Physique = v
	case StatSpeed:
		s.Speed = v
	}
}
