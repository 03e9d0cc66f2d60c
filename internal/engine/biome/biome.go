// Package biome classifies terrain grid cells into biomes and smooths the result.
package biome

import (
	"fmt"
	"strings"
)

// Biome labels a grid cell. The numeric value doubles as the submesh slot.
type Biome uint8

const (
	Plains Biome = iota
	Mud
	Mountain
	Snow

	numBiomes
)

// Baseline is the biome every cell starts with and reverts to.
const Baseline = Plains

// Count is the number of biomes, and therefore the terrain submesh count.
const Count = int(numBiomes)

var names = [numBiomes]string{
	Plains:   "plains",
	Mud:      "mud",
	Mountain: "mountain",
	Snow:     "snow",
}

// aliases maps alternative names used by older configs.
var aliases = map[string]Biome{
	"grass": Plains,
	"river": Mud,
	"stone": Mountain,
}

// All returns every biome in submesh order.
func All() []Biome {
	all := make([]Biome, 0, Count)
	for b := Biome(0); b < numBiomes; b++ {
		all = append(all, b)
	}
	return all
}

// Valid reports whether b is a known biome.
func (b Biome) Valid() bool {
	return b < numBiomes
}

func (b Biome) String() string {
	if !b.Valid() {
		return fmt.Sprintf("biome(%d)", uint8(b))
	}
	return names[b]
}

// Parse returns the biome with the given name (case-insensitive).
func Parse(name string) (Biome, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for i, n := range names {
		if n == key {
			return Biome(i), nil
		}
	}
	if b, ok := aliases[key]; ok {
		return b, nil
	}
	return 0, fmt.Errorf("unknown biome %q", name)
}

// MarshalText implements encoding.TextMarshaler.
func (b Biome) MarshalText() ([]byte, error) {
	if !b.Valid() {
		return nil, fmt.Errorf("invalid biome %d", uint8(b))
	}
	return []byte(names[b]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *Biome) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}
