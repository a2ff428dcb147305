// Package cmd implements the CLI application to plan the aurora trip.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"net/http"

	"github.com/etnz/aurora"
	"github.com/etnz/aurora/agent"
	"github.com/etnz/aurora/config"
	"github.com/etnz/aurora/date"
	"github.com/google/subcommands"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configPath = flag.String("config", config.DefaultPath(), "Path to the YAML configuration file")

// Verbose prints debug logs on stderr.
var Verbose = flag.Bool("v", false, "Print debug logs on stderr")

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&dayCmd{}, "itinerary")
	c.Register(&datesCmd{}, "itinerary")
	c.Register(&addCmd{}, "itinerary")
	c.Register(&editCmd{}, "itinerary")
	c.Register(&rmCmd{}, "itinerary")
	c.Register(&mvCmd{}, "itinerary")
	c.Register(&shiftCmd{}, "itinerary")
	c.Register(&mapCmd{}, "itinerary")
	c.Register(&exportCmd{}, "itinerary")
	c.Register(&resetCmd{}, "itinerary")

	c.Register(&expensesCmd{}, "expenses")
	c.Register(&spendCmd{}, "expenses")
	c.Register(&spendEditCmd{}, "expenses")
	c.Register(&spendRmCmd{}, "expenses")
	c.Register(&convertCmd{}, "expenses")

	c.Register(&bookingCmd{}, "bookings")

	c.Register(&todoCmd{}, "checklist")
	c.Register(&todoAddCmd{}, "checklist")
	c.Register(&todoToggleCmd{}, "checklist")
	c.Register(&todoRmCmd{}, "checklist")

	c.Register(&askCmd{}, "assistant")
	c.Register(&forecastCmd{}, "assistant")

	c.Register(&backupCmd{}, "data")
	c.Register(&restoreCmd{}, "data")

	c.Register(&topicCmd{}, "")
}

// app holds what a command needs, it lives for a single command.
type app struct {
	cfg     *config.Config
	log     *zap.Logger
	storage aurora.Storage
	session *aurora.Session
}

// openApp loads the configuration and opens the saved session.
func openApp() (*app, error) {
	cfg, err := config.Load(*configPath)
	if err != nil {
		return nil, err
	}
	log, err := newLogger(*Verbose)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	log.Debug("configuration loaded", zap.String("path", *configPath), zap.String("data_dir", cfg.DataDir))
	storage := aurora.NewDirStorage(cfg.DataDir)
	return &app{
		cfg:     cfg,
		log:     log,
		storage: storage,
		session: aurora.OpenSession(storage, log),
	}, nil
}

// newLogger returns a console logger on stderr, at warn level unless verbose.
func newLogger(verbose bool) (*zap.Logger, error) {
	logConfig := zap.NewProductionConfig()
	logConfig.Encoding = "console"
	logConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logConfig.DisableStacktrace = true
	logConfig.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if verbose {
		logConfig.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return logConfig.Build()
}

func (a *app) close() { _ = a.log.Sync() }

// selectDate selects the date typed in a -d flag, empty keeps the first trip date.
func (a *app) selectDate(s string) (date.Date, error) {
	if s == "" {
		return a.session.Selected(), nil
	}
	d, err := date.Parse(s)
	if err != nil {
		return date.Date{}, err
	}
	if err := a.session.Select(d); err != nil {
		return date.Date{}, err
	}
	return d, nil
}

// assistant returns the AI assistant. Without an API key it never goes online.
func (a *app) assistant(ctx context.Context) *agent.Assistant {
	key := a.cfg.Key()
	if key == "" {
		a.log.Debug("no API key, the assistant is offline")
		return agent.NewAssistant(nil, a.log)
	}
	client := http.DefaultClient
	cache, err := agent.OpenCache(a.cfg.CacheRoot(), a.cfg.CacheVersion, nil, a.log)
	if err != nil {
		a.log.Warn("offline cache disabled", zap.Error(err))
	} else {
		client = cache.Client()
	}
	var model agent.Model
	gemini, err := agent.NewGemini(ctx, key, a.cfg.Model, client)
	if err != nil {
		a.log.Warn("cannot create the Gemini client", zap.Error(err))
	} else {
		model = gemini
	}
	return agent.NewAssistant(model, a.log)
}

// failure prints err and returns the failure status.
func failure(err error) subcommands.ExitStatus {
	fmt.Fprintln(stderr, err)
	return subcommands.ExitFailure
}
