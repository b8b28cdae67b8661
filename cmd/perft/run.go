package main

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/ChizhovVadim/CounterCore/internal/epd"
	"github.com/ChizhovVadim/CounterCore/pkg/common"
)

type perftApp struct {
	config Config
	log    zerolog.Logger
}

type suiteTask struct {
	index int
	item  epd.PerftItem
}

type suiteResult struct {
	index   int
	fen     string
	depth   int
	want    int
	got     int
	elapsed time.Duration
}

func (app *perftApp) Run(ctx context.Context) error {
	if app.config.EpdPath != "" {
		return app.runSuite(ctx)
	}
	return app.runSingle()
}

func (app *perftApp) runSingle() error {
	var p, err = common.NewPositionFromFEN(app.config.Fen)
	if err != nil {
		return err
	}
	var depth = app.config.Depth

	if app.config.Verify {
		if err := verifyTree(&p, depth); err != nil {
			if !errors.Is(err, errChess960) {
				return err
			}
			app.log.Warn().Err(err).Msg("verification skipped")
		} else {
			app.log.Info().Int("depth", depth).Msg("move generation verified")
		}
	}

	var start = time.Now()
	var nodes = 0
	if app.config.Divide {
		for _, entry := range common.PerftDivide(&p, depth) {
			app.log.Info().
				Str("move", entry.Move.Uci(p.Chess960)).
				Int("nodes", entry.Nodes).
				Msg("divide")
			nodes += entry.Nodes
		}
	} else {
		nodes = common.Perft(&p, depth)
	}
	var elapsed = time.Since(start)

	app.log.Info().
		Str("fen", p.String()).
		Int("depth", depth).
		Int("nodes", nodes).
		Dur("elapsed", elapsed).
		Float64("mnps", float64(nodes)/elapsed.Seconds()/1e6).
		Msg("perft finished")
	return nil
}

func (app *perftApp) runSuite(ctx context.Context) error {
	var items, err = epd.LoadFile(app.config.EpdPath)
	if err != nil {
		return err
	}
	app.log.Info().
		Str("path", app.config.EpdPath).
		Int("positions", len(items)).
		Int("threads", app.config.Threads).
		Msg("suite loaded")

	g, ctx := errgroup.WithContext(ctx)

	var tasks = make(chan suiteTask)
	var results = make(chan suiteResult)

	g.Go(func() error {
		defer close(tasks)
		for i := range items {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case tasks <- suiteTask{index: i, item: items[i]}:
			}
		}
		return nil
	})

	var wg = &sync.WaitGroup{}

	for i := 0; i < app.config.Threads; i++ {
		wg.Add(1)
		g.Go(func() error {
			defer wg.Done()
			return app.runTasks(ctx, tasks, results)
		})
	}

	g.Go(func() error {
		wg.Wait()
		close(results)
		return nil
	})

	var failed, checked int
	g.Go(func() error {
		for res := range results {
			checked++
			var event = app.log.Info()
			if res.got != res.want {
				failed++
				event = app.log.Error()
			}
			event.
				Int("index", res.index).
				Str("fen", res.fen).
				Int("depth", res.depth).
				Int("nodes", res.got).
				Int("expected", res.want).
				Dur("elapsed", res.elapsed).
				Msg("suite entry")
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	app.log.Info().Int("checked", checked).Int("failed", failed).Msg("suite finished")
	if failed != 0 {
		return fmt.Errorf("perft suite: %v of %v checks failed", failed, checked)
	}
	return nil
}

func (app *perftApp) runTasks(
	ctx context.Context,
	tasks <-chan suiteTask,
	results chan<- suiteResult,
) error {
	for task := range tasks {
		var p = task.item.Position
		for _, d := range task.item.Depths {
			if d.Depth > app.config.Depth {
				continue
			}
			if app.config.Verify {
				if err := verifyTree(&p, d.Depth); err != nil {
					if !errors.Is(err, errChess960) {
						return fmt.Errorf("suite entry %v: %w", task.index, err)
					}
					app.log.Warn().Int("index", task.index).Err(err).Msg("verification skipped")
				}
			}
			var start = time.Now()
			var res = suiteResult{
				index: task.index,
				fen:   p.String(),
				depth: d.Depth,
				want:  d.Nodes,
				got:   common.Perft(&p, d.Depth),
			}
			res.elapsed = time.Since(start)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case results <- res:
			}
		}
	}
	return nil
}
