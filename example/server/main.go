// Command server serves a seeded message history over the message API, for
// use with the http source of the list front ends.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"git.sr.ht/~gioverse/scroll/config"
	"git.sr.ht/~gioverse/scroll/server"
	"git.sr.ht/~gioverse/scroll/store"
)

func main() {
	configPath := flag.String("config", "scroll.toml", "path to the configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	closer, err := config.InitLogging(cfg.Log)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer closer.Close()

	if err := run(cfg); err != nil {
		log.Error().Err(err).Msg("server stopped")
		closer.Close()
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := store.Open(cfg.Server.Database)
	if err != nil {
		return err
	}
	defer st.Close()
	if err := st.Seed(ctx, cfg.Server.Seed); err != nil {
		return err
	}
	n, err := st.Count(ctx)
	if err != nil {
		return err
	}
	log.Info().Int("messages", n).Str("database", cfg.Server.Database).Msg("history ready")
	return server.New(st, log.Logger).Run(ctx, cfg.Server.Addr)
}
