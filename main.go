package main

/**
 * main.go - entry point
 */

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vtsd/vtsd/api"
	"github.com/vtsd/vtsd/cmd"
	"github.com/vtsd/vtsd/config"
	"github.com/vtsd/vtsd/info"
	"github.com/vtsd/vtsd/logging"
	"github.com/vtsd/vtsd/manager"
	"github.com/vtsd/vtsd/metrics"
)

/**
 * Version should be set while build
 * using ldflags (see Makefile)
 */
var version string
var revision string
var branch string

/**
 * Initialize package
 */
func init() {
	if version != "" {
		info.Version = version
	}
	info.Revision = revision
	info.Branch = branch
	info.StartTime = time.Now()
}

/**
 * Entry point
 */
func main() {

	log.Printf("vtsd v%s", info.Version)

	cmd.Execute(func(cfg *config.Config) {

		if err := logging.ConfigureRotation(cfg.Logging.Output, cfg.Logging.Level, logging.Rotation{
			MaxSize:    cfg.Logging.MaxSize,
			MaxBackups: cfg.Logging.MaxBackups,
			MaxAge:     cfg.Logging.MaxAge,
		}); err != nil {
			log.Fatal(err)
		}

		// Begin work
		manager.Initialize(*cfg)

		api.Start(cfg.Api, manager.Store(), manager.Collector())
		metrics.Start(cfg.Metrics, manager.Store())

		// block until signal
		signals := make(chan os.Signal, 1)
		signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
		s := <-signals

		logging.For("main").Info("Got ", s, ", shutting down")
	})
}
