package rules

import (
	"github.com/soulforge/cultivation-api/internal/entities"
)

// Technique is one cultivation technique definition.
type Technique struct {
	ID       string
	Name     string
	Bonus    entities.StatBlock
	AlwaysOn bool
}

// TitleSet groups titles that grant an extra bonus once all are unlocked.
type TitleSet struct {
	ID       string
	TitleIDs []string
	Bonus    entities.StatBlock
}

// StaticBonusProvider is an in-memory BonusProvider backed by lookup maps.
type StaticBonusProvider struct {
	talents    map[string]entities.StatBlock
	titles     map[string]entities.StatBlock
	techniques map[string]Technique
	sets       []TitleSet
}

// StaticBonusConfig seeds a StaticBonusProvider.
type StaticBonusConfig struct {
	Talents    map[string]entities.StatBlock
	Titles     map[string]entities.StatBlock
	Techniques []Technique
	TitleSets  []TitleSet
}

// NewStaticBonusProvider builds a provider from the given config. Nil maps
// are treated as empty.
func NewStaticBonusProvider(cfg *StaticBonusConfig) *StaticBonusProvider {
	p := &StaticBonusProvider{
		talents:    map[string]entities.StatBlock{},
		titles:     map[string]entities.StatBlock{},
		techniques: map[string]Technique{},
	}
	if cfg == nil {
		return p
	}
	for id, b := range cfg.Talents {
		p.talents[id] = b
	}
	for id, b := range cfg.Titles {
		p.titles[id] = b
	}
	for _, t := range cfg.Techniques {
		p.techniques[t.ID] = t
	}
	p.sets = append(p.sets, cfg.TitleSets...)
	return p
}

var _ BonusProvider = (*StaticBonusProvider)(nil)

// TalentBonus returns the fixed bonus for a talent, zero if unknown.
func (p *StaticBonusProvider) TalentBonus(talentID string) entities.StatBlock {
	return p.talents[talentID]
}

// TitleBonus returns the fixed bonus for the worn title, zero if unknown.
func (p *StaticBonusProvider) TitleBonus(titleID string) entities.StatBlock {
	return p.titles[titleID]
}

// TechniqueBonus returns the display-time bonus for a technique and whether
// it is always-on.
func (p *StaticBonusProvider) TechniqueBonus(techniqueID string) (entities.StatBlock, bool) {
	t, ok := p.techniques[techniqueID]
	if !ok {
		return entities.StatBlock{}, false
	}
	return t.Bonus, t.AlwaysOn
}

// TitleSetBonus sums the bonuses of every set whose titles are all present
// in unlocked.
func (p *StaticBonusProvider) TitleSetBonus(unlocked []string) entities.StatBlock {
	have := make(map[string]bool, len(unlocked))
	for _, id := range unlocked {
		have[id] = true
	}
	var total entities.StatBlock
	for _, set := range p.sets {
		complete := len(set.TitleIDs) > 0
		for _, id := range set.TitleIDs {
			if !have[id] {
				complete = false
				break
			}
		}
		if complete {
			total = total.Add(set.Bonus)
		}
	}
	return total
}
