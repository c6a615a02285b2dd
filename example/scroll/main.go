// Command scroll displays an infinite, swipe-to-dismiss list of messages in a
// Gio window.
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"net/http"
	"os"

	"gioui.org/app"
	"gioui.org/font/gofont"
	"gioui.org/io/system"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/widget/material"
	"github.com/rs/zerolog/log"

	_ "image/jpeg"
	_ "image/png"

	"git.sr.ht/~gioverse/scroll/async"
	"git.sr.ht/~gioverse/scroll/config"
	"git.sr.ht/~gioverse/scroll/debug"
	"git.sr.ht/~gioverse/scroll/list"
	"git.sr.ht/~gioverse/scroll/profile"
	"git.sr.ht/~gioverse/scroll/source"
	chatwidget "git.sr.ht/~gioverse/scroll/widget"
	chatmaterial "git.sr.ht/~gioverse/scroll/widget/material"
)

var (
	// configPath locates the TOML configuration.
	configPath string
	// profileOpt specifies what to profile.
	profileOpt string
	// debugLayout traces the slots of the window.
	debugLayout bool
)

func init() {
	flag.StringVar(&configPath, "config", "scroll.toml", "path to the configuration file")
	flag.StringVar(&profileOpt, "profile", "none", profile.Usage())
	flag.BoolVar(&debugLayout, "debug", false, "outline the slots of the window")
	flag.Parse()
}

func main() {
	cfg, err := config.Load(configPath)
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
	opt, err := profile.Parse(profileOpt)
	if err != nil {
		log.Fatal().Err(err).Msg("parsing flags")
	}
	ui := NewUI(cfg)
	go func() {
		w := app.NewWindow(
			app.Title("Scroll"),
		)
		if err := ui.Run(w, opt); err != nil {
			log.Error().Err(err).Msg("window closed")
			os.Exit(1)
		}
		os.Exit(0)
	}()
	app.Main()
}

type (
	C = layout.Context
	D = layout.Dimensions
)

// UI holds state for, and lays out, the UI.
type UI struct {
	cfg      *config.Config
	th       *material.Theme
	ctx      context.Context
	http     *http.Client
	source   list.PageSource
	loader   async.Loader
	surface  chatmaterial.Surface
	scroller chatwidget.Scroller
	ctrl     *list.ScrollController
}

// NewUI constructs the UI over the configured source.
func NewUI(cfg *config.Config) *UI {
	ui := &UI{
		cfg:  cfg,
		th:   material.NewTheme(gofont.Collection()),
		ctx:  context.Background(),
		http: &http.Client{Timeout: cfg.Source.Timeout},
		loader: async.Loader{
			MaxLoaded: 64,
			Logger:    &log.Logger,
		},
	}
	switch cfg.Source.Kind {
	case config.SourceHTTP:
		client := source.NewClient(cfg.Source.Endpoint, cfg.Source.Timeout,
			source.NewLimiter(cfg.Source.RateLimit, cfg.Source.RateBurst))
		client.Logger = &log.Logger
		ui.source = client
	default:
		ui.source = &source.Generator{Latency: cfg.Source.Latency}
	}
	ui.surface = chatmaterial.Surface{
		Theme:  ui.th,
		Avatar: ui.avatar,
	}
	return ui
}

// Run handles window events and renders the application.
func (ui *UI) Run(w *app.Window, opt profile.Opt) error {
	profiler := opt.NewProfiler(log.Logger)
	profiler.Start()
	defer profiler.Stop()
	ui.ctrl = list.NewScrollController(ui.cfg.List.Options(), list.Hooks{
		Surface:     &ui.surface,
		Source:      ui.source,
		Invalidator: w.Invalidate,
		Logger:      &log.Logger,
	})
	var ops op.Ops
	for {
		select {
		case <-ui.loader.Updated():
			w.Invalidate()
		case e := <-w.Events():
			switch e := e.(type) {
			case system.DestroyEvent:
				return e.Err
			case system.FrameEvent:
				gtx := layout.NewContext(&ops, e)
				profiler.Record(gtx)
				ui.Layout(gtx)
				e.Frame(&ops)
			}
		}
	}
}

// Layout the UI. The loader wraps each frame to detect avatars that are no
// longer displayed.
func (ui *UI) Layout(gtx C) D {
	return ui.loader.Frame(gtx, func(gtx C) D {
		ui.surface.Update(gtx)
		ui.ctrl.Start(ui.ctx, gtx.Constraints.Max.Y)
		ui.scroller.Update(ui.ctx, gtx, ui.ctrl)
		dims := chatmaterial.List(ui.th, &ui.surface, ui.ctrl, &ui.scroller).Layout(gtx)
		if debugLayout {
			debug.Window(gtx, ui.th, ui.ctrl.Window(), ui.ctrl.Placeholders(), ui.scroller.ScrollTop)
		}
		return dims
	})
}

// avatar polls the loader for the avatar of the card's author.
func (ui *UI) avatar(card *chatwidget.Card) image.Image {
	path := card.Item.Author.PhotoURL
	if path == "" || ui.cfg.Source.ImageBase == "" {
		return nil
	}
	url := ui.cfg.Source.ImageBase + path
	r := ui.loader.Schedule(url, func(ctx context.Context) (interface{}, error) {
		return fetchImage(ctx, ui.http, url)
	})
	if r.State != async.Loaded {
		return nil
	}
	img, _ := r.Value.(image.Image)
	return img
}

// fetchImage downloads and decodes the image at url.
func fetchImage(ctx context.Context, client *http.Client, url string) (image.Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("GET: %w", err)
	}
	r, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET: %w", err)
	}
	defer r.Body.Close()
	if r.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET: %s", r.Status)
	}
	img, _, err := image.Decode(r.Body)
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}
	return img, nil
}
