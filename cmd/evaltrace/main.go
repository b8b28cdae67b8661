package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/ChizhovVadim/CounterCore/pkg/common"
	"github.com/ChizhovVadim/CounterCore/pkg/eval"
	"github.com/ChizhovVadim/CounterCore/pkg/nnue"
)

type Config struct {
	BigPath   string
	SmallPath string
	Fen       string
	Random    bool
	Seed      int64
}

func main() {
	var logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		With().Timestamp().Logger()

	var config Config
	flag.StringVar(&config.BigPath, "big", "./big.nn", "big network file")
	flag.StringVar(&config.SmallPath, "small", "./small.nn", "small network file")
	flag.StringVar(&config.Fen, "fen", common.InitialPositionFen, "position to evaluate")
	flag.BoolVar(&config.Random, "random", false, "use random networks instead of files")
	flag.Int64Var(&config.Seed, "seed", 1, "seed of random networks")
	flag.Parse()

	if err := run(config, logger); err != nil {
		logger.Error().Err(err).Msg("evaltrace failed")
		os.Exit(1)
	}
}

func run(config Config, logger zerolog.Logger) error {
	var p, err = common.NewPositionFromFEN(config.Fen)
	if err != nil {
		return err
	}
	networks, err := loadNetworks(config)
	if err != nil {
		return err
	}
	logger.Info().
		Str("big", networks.Big.(*nnue.Network).Name).
		Str("small", networks.Small.(*nnue.Network).Name).
		Str("fen", p.String()).
		Msg("networks loaded")

	fmt.Println(eval.Trace(&p, networks))
	return nil
}

func loadNetworks(config Config) (*nnue.Networks, error) {
	if config.Random {
		return &nnue.Networks{
			Big:   nnue.NewNetwork("random-big", nnue.Big, nnue.NewRandomWeights(256, config.Seed)),
			Small: nnue.NewNetwork("random-small", nnue.Small, nnue.NewRandomWeights(64, config.Seed+1)),
		}, nil
	}
	big, err := nnue.LoadFileWeights(config.BigPath)
	if err != nil {
		return nil, err
	}
	small, err := nnue.LoadFileWeights(config.SmallPath)
	if err != nil {
		return nil, err
	}
	return &nnue.Networks{
		Big:   nnue.NewNetwork(config.BigPath, nnue.Big, big),
		Small: nnue.NewNetwork(config.SmallPath, nnue.Small, small),
	}, nil
}
