// Command terminal displays an infinite, swipe-to-dismiss list of messages in
// the terminal. Logs go to a file, since the screen belongs to the list.
package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"git.sr.ht/~gioverse/scroll/config"
	"git.sr.ht/~gioverse/scroll/list"
	"git.sr.ht/~gioverse/scroll/source"
)

func main() {
	configPath := flag.String("config", "scroll.toml", "path to the configuration file")
	logPath := flag.String("log", "scroll-terminal.log", "log file, unless configured")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if cfg.Log.File == "" {
		cfg.Log.File = *logPath
	}
	closer, err := config.InitLogging(cfg.Log)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer closer.Close()

	var src list.PageSource
	switch cfg.Source.Kind {
	case config.SourceHTTP:
		client := source.NewClient(cfg.Source.Endpoint, cfg.Source.Timeout,
			source.NewLimiter(cfg.Source.RateLimit, cfg.Source.RateBurst))
		client.Logger = &log.Logger
		src = client
	default:
		src = &source.Generator{Latency: cfg.Source.Latency}
	}

	m := newModel(terminalOptions(cfg.List.Options()), src, log.Logger)
	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	m.send = program.Send
	if _, err := program.Run(); err != nil {
		log.Error().Err(err).Msg("terminal list")
		closer.Close()
		os.Exit(1)
	}
}

// terminalOptions scales the pixel based settings down to lines.
func terminalOptions(opts list.Config) list.Config {
	opts.Gutter = 1
	opts.DistanceFromBottom /= 20
	if opts.DistanceFromBottom < 10 {
		opts.DistanceFromBottom = 10
	}
	return opts
}
