// terraingen is a headless CLI for generating and inspecting procedural terrain.
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-terrain/internal/config"
	"github.com/Faultbox/midgard-terrain/internal/logger"
)

func main() {
	// Shared config flags come before the command
	config.ParseFlags()

	if flag.NArg() < 1 {
		printUsage()
		os.Exit(1)
	}

	command := flag.Arg(0)
	args := flag.Args()[1:]

	if command == "help" || command == "-h" || command == "--help" {
		printUsage()
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	switch command {
	case "generate", "gen":
		err = cmdGenerate(cfg, args, os.Stdout)
	case "walk":
		err = cmdWalk(cfg, args, os.Stdout)
	case "config":
		err = cmdConfig(cfg, args, os.Stdout)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		logger.Fatal(command+" failed", zap.Error(err))
	}
}

func printUsage() {
	fmt.Println(`terraingen - procedural biome terrain generator

Usage:
  terraingen [config flags] <command> [options]

Commands:
  generate [-x X -z Z] [-obj file] [-biomes file] [-heights file]
                                     Build one terrain and print statistics
  walk [-steps N] [-dt S] [-speed U] [-heading DEG]
                                     Walk a follower and count rebuilds
  config [-o file]                   Write the effective config as YAML

Config flags:
  -config FILE  -size N  -seed N  -noise perlin|simplex
  -frequency F  -amplitude A  -debug

Examples:
  terraingen -seed 42 generate -obj terrain.obj -biomes biomes.bmp
  terraingen -size 64 walk -steps 200
  terraingen config -o terrain.yaml`)
}
