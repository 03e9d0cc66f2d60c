package biome

import (
	"fmt"

	"go.uber.org/multierr"
)

// Mode selects how a Rule compares a noise sample.
type Mode string

const (
	// ModeWeight matches when the normalized sample, as a percentage, is below Weight.
	ModeWeight Mode = "weight"
	// ModeAbove matches when the sample is at or above Level.
	ModeAbove Mode = "above"
	// ModeBelow matches when the sample is at or below Level.
	ModeBelow Mode = "below"
)

// Rule assigns Biome to cells whose noise sample satisfies the rule.
//
// A rule without RemoveFrom only claims cells that are still Baseline, so among
// those rules the first match in declaration order wins. A rule with RemoveFrom
// only replaces cells currently labeled with that biome.
type Rule struct {
	Biome      Biome   `yaml:"biome"`
	Mode       Mode    `yaml:"mode,omitempty"`
	Weight     float64 `yaml:"weight,omitempty"`
	Level      float64 `yaml:"level,omitempty"`
	RemoveFrom *Biome  `yaml:"remove_from,omitempty"`
	Offset     float64 `yaml:"offset,omitempty"` // sample coordinate offset, decorrelates rules
}

// mode returns the effective mode; an empty mode means ModeWeight.
func (r Rule) mode() Mode {
	if r.Mode == "" {
		return ModeWeight
	}
	return r.Mode
}

// Source returns the biome a cell must carry for the rule to apply.
func (r Rule) Source() Biome {
	if r.RemoveFrom != nil {
		return *r.RemoveFrom
	}
	return Baseline
}

// Matches reports whether sample (in [0, amplitude)) satisfies the rule.
func (r Rule) Matches(sample, amplitude float64) bool {
	switch r.mode() {
	case ModeAbove:
		return sample >= r.Level
	case ModeBelow:
		return sample <= r.Level
	default:
		if amplitude <= 0 {
			return false
		}
		return sample/amplitude*100 < r.Weight
	}
}

// From returns a pointer to b, for building rules with RemoveFrom.
func From(b Biome) *Biome {
	return &b
}

// ValidateRules checks rules for unknown biomes and modes and for replacement
// rules whose source biome no earlier rule produces.
func ValidateRules(rules []Rule) error {
	var err error
	produced := map[Biome]bool{Baseline: true}

	for i, r := range rules {
		if !r.Biome.Valid() {
			err = multierr.Append(err, fmt.Errorf("rule %d: invalid biome %d", i, r.Biome))
			continue
		}
		if r.Biome == Baseline {
			err = multierr.Append(err, fmt.Errorf("rule %d: cannot assign baseline biome %s", i, r.Biome))
		}
		switch r.mode() {
		case ModeWeight:
			if r.Weight < 0 || r.Weight > 100 {
				err = multierr.Append(err, fmt.Errorf("rule %d: weight %v outside [0,100]", i, r.Weight))
			}
		case ModeAbove, ModeBelow:
		default:
			err = multierr.Append(err, fmt.Errorf("rule %d: unknown mode %q", i, r.Mode))
		}
		if r.RemoveFrom != nil {
			src := *r.RemoveFrom
			switch {
			case !src.Valid():
				err = multierr.Append(err, fmt.Errorf("rule %d: invalid remove_from biome %d", i, src))
			case src == r.Biome:
				err = multierr.Append(err, fmt.Errorf("rule %d: remove_from equals target biome %s", i, src))
			case !produced[src]:
				err = multierr.Append(err, fmt.Errorf("rule %d: remove_from %s is not produced by an earlier rule", i, src))
			}
		}
		produced[r.Biome] = true
	}
	return err
}

// smoothingOrder returns the non-baseline biomes the rules produce, latest first
// appearance first, together with the biome each one reverts to when smoothed away.
func smoothingOrder(rules []Rule) ([]Biome, map[Biome]Biome) {
	var order []Biome
	fallback := make(map[Biome]Biome)
	for _, r := range rules {
		if _, seen := fallback[r.Biome]; seen || r.Biome == Baseline {
			continue
		}
		fallback[r.Biome] = r.Source()
		order = append(order, r.Biome)
	}
	for i, j := 0, len(order)-1; i < j; i, j = i+1, j-1 {
		order[i], order[j] = order[j], order[i]
	}
	return order, fallback
}
