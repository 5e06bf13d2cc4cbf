// Command check-content loads the configured rule tables, reports what was
// found, and exits non-zero if any table fails validation.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/pathfinder/internal/config"
	"github.com/cory-johannsen/pathfinder/internal/engine"
	"github.com/cory-johannsen/pathfinder/internal/game/dice"
	"github.com/cory-johannsen/pathfinder/internal/observability"
)

func main() {
	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	flag.Parse()

	start := time.Now()
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	e, err := engine.New(cfg, dice.NewCryptoSource(), logger)
	if err != nil {
		logger.Error("content check failed", zap.Error(err))
		os.Exit(1)
	}

	for _, ct := range e.Classes.Types() {
		def, _ := e.Classes.Class(ct)
		pts, err := def.SkillPoints(1)
		if err != nil {
			logger.Error("class formula failed", zap.String("class", string(ct)), zap.Error(err))
			os.Exit(1)
		}
		fmt.Printf("class  %-10s d%-2d skill points/level %d\n", ct, def.HitDie, pts)
	}
	for _, id := range e.Races.IDs() {
		fmt.Printf("race   %s\n", id)
	}
	for _, w := range e.Weapons.All() {
		fmt.Printf("weapon %-14s %-6s %s\n", w.Name, w.DamageDice, w.DamageType)
	}
	for _, id := range e.Conditions.IDs() {
		fmt.Printf("effect %s\n", id)
	}
	fmt.Printf("content ok in %s\n", time.Since(start).Round(time.Millisecond))
}
