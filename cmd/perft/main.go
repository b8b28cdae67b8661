package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/rs/zerolog"

	"github.com/ChizhovVadim/CounterCore/pkg/common"
)

type Config struct {
	Fen     string
	Depth   int
	EpdPath string
	Threads int
	Divide  bool
	Verify  bool
}

func main() {
	var logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		With().Timestamp().Logger()

	var config Config
	flag.StringVar(&config.Fen, "fen", common.InitialPositionFen, "position to count")
	flag.IntVar(&config.Depth, "depth", 5, "perft depth, limits suite depths when -epd is set")
	flag.StringVar(&config.EpdPath, "epd", "", "perft suite file")
	flag.IntVar(&config.Threads, "threads", runtime.NumCPU(), "number of suite workers")
	flag.BoolVar(&config.Divide, "divide", false, "print node counts per root move")
	flag.BoolVar(&config.Verify, "verify", false, "cross-check legal moves with dragontoothmg at every node")
	flag.Parse()

	logger.Info().Interface("config", config).Msg("perft started")

	var app = &perftApp{config: config, log: logger}
	if err := app.Run(context.Background()); err != nil {
		logger.Error().Err(err).Msg("perft failed")
		os.Exit(1)
	}
}
