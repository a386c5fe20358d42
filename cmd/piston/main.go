//////////////////////////////////////////////////////
// main.go
// entry point: parses CLI flags with kong, optionally layers a piston.toml
// config file over the defaults, sets up logging, and runs the UCI loop
// on stdin/stdout
// zurichess sources: interface.go Run
//////////////////////////////////////////////////////

package main

import (
	"context"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/alecthomas/kong"
	"github.com/seekerror/logw"

	"github.com/Forsinge/Piston/engine"
	"github.com/Forsinge/Piston/uci"
)

// cli mirrors the kong convention the example pack uses for process
// flags: one struct, one field per flag, defaults expressed as struct
// tags.
var cli struct {
	Hash     int    `help:"Transposition table size, in entries." default:"2097152"`
	Config   string `help:"Path to an optional piston.toml config file." default:"piston.toml"`
	LogLevel string `help:"Log level name, reported in the startup log line; debug also enables invariant assertions. Log output is not filtered by it." default:"info"`
	MoveTime int    `help:"Default per-move search budget, in milliseconds." default:"4000"`
}

// fileConfig mirrors the subset of cli that piston.toml may override.
type fileConfig struct {
	Hash     int    `toml:"hash"`
	LogLevel string `toml:"log_level"`
	MoveTime int    `toml:"move_time_ms"`
}

func main() {
	kong.Parse(&cli,
		kong.Name("piston"),
		kong.Description("A UCI chess engine."),
	)

	loadConfigFile(cli.Config)

	ctx := context.Background()
	logw.Infof(ctx, "starting piston (hash=%d entries, log-level=%s, movetime=%dms)", cli.Hash, cli.LogLevel, cli.MoveTime)

	engine.DebugAsserts = cli.LogLevel == "debug"

	state := engine.NewSearchState(cli.Hash)
	loop := uci.NewLoop(state, os.Stdout)
	loop.DefaultMoveTime = time.Duration(cli.MoveTime) * time.Millisecond
	loop.Run(ctx, os.Stdin)
}

// loadConfigFile layers piston.toml over the flag/default values if the
// file exists; a missing file is not an error, since running with
// built-in defaults when there's nothing to load is the expected case.
func loadConfigFile(path string) {
	var fc fileConfig
	if _, err := toml.DecodeFile(path, &fc); err != nil {
		if os.IsNotExist(err) {
			return
		}
		logw.Warnf(context.Background(), "piston: ignoring malformed config %s: %v", path, err)
		return
	}
	if fc.Hash > 0 {
		cli.Hash = fc.Hash
	}
	if fc.LogLevel != "" {
		cli.LogLevel = fc.LogLevel
	}
	if fc.MoveTime > 0 {
		cli.MoveTime = fc.MoveTime
	}
}
