package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/giongto35/glbootstrap/pkg/app"
	"github.com/giongto35/glbootstrap/pkg/config"
	"github.com/giongto35/glbootstrap/pkg/logger"
	"github.com/giongto35/glbootstrap/pkg/monitoring"
	"github.com/giongto35/glbootstrap/pkg/service"
	"github.com/giongto35/glbootstrap/pkg/thread"
	flag "github.com/spf13/pflag"
)

var Version = "?"

func newLogger(conf config.Config) *logger.Logger {
	if conf.Log.Console {
		return logger.NewConsole(conf.Debug, conf.Log.Tag, conf.Log.NoColor)
	}
	return logger.New(conf.Debug)
}

func run() error {
	conf, err := config.NewConfig(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return err
	}

	log := newLogger(conf)
	log.Info().Msgf("version: %v", Version)
	log.Debug().Msgf("config: %+v", conf)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	services := service.Group{}
	if conf.Monitoring.IsEnabled() {
		services.Add(monitoring.New(conf.Monitoring, log))
	}
	if err = services.Start(); err != nil {
		log.Error().Err(err).Msg("Services")
	}
	shutdown := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := services.Shutdown(ctx); err != nil {
			log.Error().Err(err).Msg("Services shutdown")
		}
	}

	// SDL and OpenGL live on the main thread
	err = thread.CallErr(func() error {
		a, err := app.New(conf, log)
		if err != nil {
			return err
		}
		defer a.Close()
		return a.Run(ctx)
	})
	shutdown()
	if err != nil {
		// window, context and shader failures are fatal
		log.Fatal().Err(err).Msg("Failed")
	}
	return nil
}

func main() {
	var err error
	thread.Wrap(func() { err = run() })
	if err != nil {
		os.Exit(1)
	}
}
