package biome

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-terrain/internal/engine/noise"
)

// ErrNotInitialized is returned when Classify or Smooth run before Initialize.
var ErrNotInitialized = errors.New("biome: classifier not initialized")

// Follower provides the world position the grid is centered on.
type Follower interface {
	Position() mgl32.Vec3
}

// Config holds classification and smoothing settings.
type Config struct {
	Rules             []Rule
	RequiredNeighbors float64
}

// Classifier owns the biome grid for one terrain footprint.
type Classifier struct {
	field  noise.Field
	cfg    Config
	order  []Biome
	revert map[Biome]Biome
	log    *zap.Logger

	follower Follower
	grid     *Grid
	originX  float64
	originZ  float64
}

// NewClassifier creates a classifier sampling field with the given rules.
func NewClassifier(field noise.Field, cfg Config, log *zap.Logger) (*Classifier, error) {
	if err := ValidateRules(cfg.Rules); err != nil {
		return nil, fmt.Errorf("biome rules: %w", err)
	}
	if log == nil {
		log = zap.NewNop()
	}
	order, revert := smoothingOrder(cfg.Rules)
	return &Classifier{
		field:  field,
		cfg:    cfg,
		order:  order,
		revert: revert,
		log:    log,
	}, nil
}

// Initialize allocates a fresh (size+1)² grid with every cell Baseline and
// records the follower that positions the footprint.
func (c *Classifier) Initialize(size int, follower Follower) error {
	if size <= 0 {
		return fmt.Errorf("biome: terrain size must be positive, got %d", size)
	}
	if follower == nil {
		return errors.New("biome: nil follower")
	}
	c.grid = NewGrid(size)
	c.follower = follower
	pos := follower.Position()
	c.originX = math.Floor(float64(pos.X()))
	c.originZ = math.Floor(float64(pos.Z()))
	return nil
}

// Grid returns the current label grid.
func (c *Classifier) Grid() *Grid { return c.grid }

// WorldXZ returns the world sampling coordinate of cell (x, z).
func (c *Classifier) WorldXZ(x, z int) (float64, float64) {
	return c.originX + float64(x), c.originZ + float64(z)
}

// Classify labels every cell from the rule list.
func (c *Classifier) Classify() error {
	if c.grid == nil {
		return ErrNotInitialized
	}
	size := c.grid.Size()
	for x := 0; x <= size; x++ {
		for z := 0; z <= size; z++ {
			c.grid.Set(x, z, c.classifyCell(x, z))
		}
	}
	c.log.Debug("biomes classified", countFields(c.grid)...)
	return nil
}

func (c *Classifier) classifyCell(x, z int) Biome {
	wx, wz := c.WorldXZ(x, z)
	label := Baseline
	for _, r := range c.cfg.Rules {
		if label != r.Source() {
			continue
		}
		sample := c.field.Sample(wx+r.Offset, wz+r.Offset)
		if r.Matches(sample, c.field.Amplitude) {
			label = r.Biome
		}
	}
	return label
}

// Smooth removes isolated biome cells. Each produced biome is processed once,
// refinements before the biomes they refine; within a biome, passes repeat
// until stable, each reading a snapshot of the grid taken before the pass.
// A cell with fewer than RequiredNeighbors same-biome neighbors reverts to the
// biome its first rule replaced (Baseline for plain rules).
func (c *Classifier) Smooth() error {
	if c.grid == nil {
		return ErrNotInitialized
	}
	total := 0
	for _, b := range c.order {
		for {
			changed := c.smoothPass(b, c.revert[b])
			total += changed
			if changed == 0 {
				break
			}
		}
	}
	c.log.Debug("biomes smoothed", append(countFields(c.grid), zap.Int("reverted", total))...)
	return nil
}

func (c *Classifier) smoothPass(b, fallback Biome) int {
	snapshot := c.grid.Clone()
	size := snapshot.Size()
	changed := 0
	for x := 0; x <= size; x++ {
		for z := 0; z <= size; z++ {
			if snapshot.At(x, z) != b {
				continue
			}
			if float64(snapshot.NeighborCount(x, z, b)) < c.cfg.RequiredNeighbors {
				c.grid.Set(x, z, fallback)
				changed++
			}
		}
	}
	return changed
}

// BiomeAt returns the label of (x, z).
func (c *Classifier) BiomeAt(x, z int) Biome {
	return c.grid.At(x, z)
}

// NeighborCount returns how many neighbors of (x, z) share its biome.
func (c *Classifier) NeighborCount(x, z int) int {
	return c.grid.NeighborCount(x, z, c.grid.At(x, z))
}

func countFields(g *Grid) []zap.Field {
	counts := g.Counts()
	fields := make([]zap.Field, 0, Count)
	for b, n := range counts {
		fields = append(fields, zap.Int(Biome(b).String(), n))
	}
	return fields
}
