package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/midgard-terrain/internal/config"
	"github.com/Faultbox/midgard-terrain/internal/engine/biome"
	"github.com/Faultbox/midgard-terrain/internal/engine/debug"
	"github.com/Faultbox/midgard-terrain/internal/engine/terrain"
	"github.com/Faultbox/midgard-terrain/internal/game/world"
	"github.com/Faultbox/midgard-terrain/internal/logger"
)

func cmdGenerate(cfg *config.Config, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	x := fs.Float64("x", 0, "Follower X position")
	z := fs.Float64("z", 0, "Follower Z position")
	objPath := fs.String("obj", "", "Write the mesh as Wavefront OBJ")
	biomesPath := fs.String("biomes", "", "Write the biome map (.png or .bmp)")
	heightsPath := fs.String("heights", "", "Write the height map (.png or .bmp)")
	scale := fs.Int("scale", 8, "Pixels per cell in the biome map")
	if err := fs.Parse(args); err != nil {
		return err
	}

	surface := &world.MemorySurface{}
	sink := &world.MemoryWater{}
	follower := &world.StaticFollower{Pos: mgl32.Vec3{float32(*x), 0, float32(*z)}}

	ctrl, err := world.New(cfg, follower, surface, sink, logger.Named("world"))
	if err != nil {
		return err
	}
	if err := ctrl.Start(); err != nil {
		return err
	}

	printStats(out, surface.Mesh, sink)

	if *objPath != "" {
		if err := writeOBJ(*objPath, surface.Mesh); err != nil {
			return err
		}
		fmt.Fprintf(out, "Wrote %s\n", *objPath)
	}
	if *biomesPath != "" {
		if err := debug.Save(*biomesPath, debug.BiomeMap(ctrl.Biomes(), terrain.DefaultPalette(), *scale)); err != nil {
			return err
		}
		fmt.Fprintf(out, "Wrote %s\n", *biomesPath)
	}
	if *heightsPath != "" {
		if err := debug.Save(*heightsPath, debug.HeightMap(surface.Mesh)); err != nil {
			return err
		}
		fmt.Fprintf(out, "Wrote %s\n", *heightsPath)
	}
	return nil
}

func printStats(out io.Writer, mesh *terrain.Mesh, sink *world.MemoryWater) {
	fmt.Fprintf(out, "Size:      %d\n", mesh.Size)
	fmt.Fprintf(out, "Vertices:  %d\n", len(mesh.Positions))
	fmt.Fprintf(out, "Indices:   %d\n", mesh.IndexCount())
	fmt.Fprintf(out, "Bounds:    %v .. %v\n", mesh.Bounds.Min, mesh.Bounds.Max)
	fmt.Fprintln(out, "Submeshes:")
	for _, s := range mesh.Submeshes {
		fmt.Fprintf(out, "  %-10s %d triangles\n", s.Biome, len(s.Indices)/3)
	}
	fmt.Fprintf(out, "Water:     at %v scale %v\n", sink.Placement.Position, sink.Placement.Scale)
}

func writeOBJ(path string, mesh *terrain.Mesh) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := mesh.WriteOBJ(f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}

func cmdWalk(cfg *config.Config, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("walk", flag.ContinueOnError)
	steps := fs.Int("steps", 100, "Number of ticks")
	dt := fs.Float64("dt", 0.5, "Seconds per tick")
	speed := fs.Float64("speed", float64(cfg.Viewer.WalkSpeed), "Follower speed in units per second")
	heading := fs.Float64("heading", float64(cfg.Viewer.WalkHeading), "Heading in degrees clockwise from +Z")
	if err := fs.Parse(args); err != nil {
		return err
	}

	walker := world.NewWalker(mgl32.Vec3{}, float32(*heading), float32(*speed))
	surface := &world.MemorySurface{}

	ctrl, err := world.New(cfg, walker, surface, &world.MemoryWater{}, logger.Named("world"))
	if err != nil {
		return err
	}
	if err := ctrl.Start(); err != nil {
		return err
	}

	var totals [biome.Count]int
	addCounts(&totals, ctrl.Biomes())

	for i := 1; i <= *steps; i++ {
		walker.Update(float32(*dt))
		rebuilt, err := ctrl.Tick()
		if err != nil {
			return fmt.Errorf("tick %d: %w", i, err)
		}
		if rebuilt {
			c := ctrl.Center()
			fmt.Fprintf(out, "tick %4d: rebuilt at (%.2f, %.2f)\n", i, c.X(), c.Z())
			addCounts(&totals, ctrl.Biomes())
		}
	}

	fmt.Fprintf(out, "Regenerations: %d over %d ticks\n", ctrl.Regenerations(), *steps)
	fmt.Fprintln(out, "Cells labeled across builds:")
	for b, n := range totals {
		fmt.Fprintf(out, "  %-10s %d\n", biome.Biome(b), n)
	}
	return nil
}

func addCounts(totals *[biome.Count]int, g *biome.Grid) {
	for b, n := range g.Counts() {
		totals[b] += n
	}
}

func cmdConfig(cfg *config.Config, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	path := fs.String("o", "", "Output file (default: user config directory)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *path == "" {
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Fprintf(out, "Wrote %s\n", config.ConfigDir())
		return nil
	}
	if err := cfg.SaveTo(*path); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	fmt.Fprintf(out, "Wrote %s\n", *path)
	return nil
}
