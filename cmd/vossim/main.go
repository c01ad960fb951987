// Package main runs batches of self-play raids and records the
// outcomes.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/stayfuntaxcol/vossenjacht-sub000/internal/config"
	"github.com/stayfuntaxcol/vossenjacht-sub000/internal/sim"
	"github.com/stayfuntaxcol/vossenjacht-sub000/internal/store"
)

func main() {
	// A missing .env is fine; the environment still applies.
	_ = godotenv.Load()

	log := logrus.New()

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("load config")
	}
	configureLogger(log, cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, log, cfg); err != nil {
		log.WithError(err).Fatal("vossim failed")
	}
}

func configureLogger(log *logrus.Logger, cfg config.Config) {
	if cfg.LogJSON {
		log.SetFormatter(&logrus.JSONFormatter{})
	}
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.WithField("level", cfg.LogLevel).Warn("unknown log level, using info")
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
}

func run(ctx context.Context, log *logrus.Logger, cfg config.Config) error {
	db, err := store.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	runner := sim.New(log)
	runner.Bot().Tuning.NeverPass = cfg.NeverPass

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	log.WithFields(logrus.Fields{
		"raids": cfg.Raids,
		"foxes": cfg.Foxes,
		"seed":  seed,
	}).Info("starting batch")

	outcomes, err := runner.RunMany(ctx, cfg.Raids, seed, cfg.Foxes)
	if err != nil {
		return err
	}

	for _, out := range outcomes {
		rec := store.RaidRecord{
			ID:        out.ID.String(),
			Seed:      out.Seed,
			Foxes:     out.Foxes,
			Rounds:    out.Rounds,
			CreatedAt: time.Now().UTC(),
		}
		seats := make([]store.SeatResult, 0, len(out.Seats))
		for _, seat := range out.Seats {
			seats = append(seats, store.SeatResult{
				RaidID:     rec.ID,
				AgentID:    int(seat.AgentID),
				Den:        seat.Den.String(),
				Escaped:    seat.Escaped,
				Caught:     seat.Caught,
				Loot:       seat.Loot,
				BurrowUsed: seat.BurrowUsed,
			})
		}
		if err := db.SaveRaid(ctx, rec, seats); err != nil {
			return err
		}
	}

	rate, err := db.EscapeRate(ctx)
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"raids":       len(outcomes),
		"escape_rate": rate,
	}).Info("batch complete")
	return nil
}
