// Netherhall is a deterministic engine for haunted-house text adventures.
// Usage: netherhall [--version] [--plain] [--script <file>] [--trace] [world_directory]
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/tmorvan/netherhall/cli"
	"github.com/tmorvan/netherhall/engine"
	"github.com/tmorvan/netherhall/internal/config"
	"github.com/tmorvan/netherhall/internal/logger"
	"github.com/tmorvan/netherhall/internal/session"
	"github.com/tmorvan/netherhall/loader"
	"github.com/tmorvan/netherhall/tui"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	plain := false
	trace := false
	var worldDir string
	var scriptFile string

	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--version":
			fmt.Printf("netherhall %s (commit %s, built %s)\n", version, commit, date)
			return
		case "--plain":
			plain = true
		case "--trace":
			trace = true
		case "--script":
			if i+1 >= len(args) {
				fmt.Fprintf(os.Stderr, "--script requires a file path\n")
				os.Exit(1)
			}
			i++
			scriptFile = args[i]
		default:
			if worldDir == "" {
				worldDir = args[i]
			}
		}
	}

	cfg := config.Load()
	if worldDir == "" {
		worldDir = cfg.WorldDir
	}

	log, closeLog := logger.Setup(cfg)
	defer closeLog()

	// Load and compile the Lua world content.
	world, err := loader.Load(worldDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading world: %v\n", err)
		os.Exit(1)
	}
	log.Info("world loaded", "title", world.Info.Title, "rooms", len(world.Rooms), "objects", len(world.Objects))

	eng := engine.New(world)

	// Saves go to Redis when configured, files otherwise.
	var store session.Store
	if cfg.RedisAddr != "" {
		rs := session.NewRedisStore(cfg.RedisAddr, cfg.SessionTTL, log)
		if err := rs.Ping(context.Background()); err != nil {
			fmt.Fprintf(os.Stderr, "Error reaching redis at %s: %v\n", cfg.RedisAddr, err)
			os.Exit(1)
		}
		store = rs
	} else {
		store = session.NewFileStore(cfg.SaveDir)
	}
	defer store.Close()

	// Script mode: open file, force plain, echo commands.
	if scriptFile != "" {
		f, err := os.Open(scriptFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening script: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		c := cli.New(eng, store, log)
		c.In = f
		c.EchoInput = true
		c.Trace = trace
		c.Run()
		return
	}

	// Use the plain CLI if --plain or stdout is not a terminal.
	if plain || !isTerminal() {
		c := cli.New(eng, store, log)
		c.Trace = trace
		c.Run()
		return
	}

	if err := tui.Run(eng, store); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// isTerminal returns true if stdout is a terminal (not piped/redirected).
func isTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
