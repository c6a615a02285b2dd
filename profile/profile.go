// Package profile unifies the profiling api between Gio profiler and pkg/profile.
package profile

import (
	"fmt"
	"strings"

	"gioui.org/layout"
	"gioui.org/x/profiling"
	"github.com/pkg/profile"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Profiler unifies the profiling api between Gio profiler and pkg/profile.
type Profiler struct {
	Type     Opt
	Starter  func(p *profile.Profile)
	Stopper  func()
	Recorder func(gtx layout.Context)
}

// Start profiling.
func (pfn *Profiler) Start() {
	switch {
	case pfn.Type == Gio:
		pfn.Starter(nil)
	case pfn.Starter != nil:
		pfn.Stopper = profile.Start(pfn.Starter, profile.Quiet).Stop
		log.Info().Str("profile", string(pfn.Type)).Msg("profiling started")
	}
}

// Stop profiling.
func (pfn *Profiler) Stop() {
	if pfn.Stopper != nil {
		pfn.Stopper()
	}
}

// Record GUI stats per frame.
func (pfn Profiler) Record(gtx layout.Context) {
	if pfn.Recorder != nil {
		pfn.Recorder(gtx)
	}
}

// Opt specifies the various profiling options.
type Opt string

const (
	None      Opt = "none"
	CPU       Opt = "cpu"
	Memory    Opt = "mem"
	Block     Opt = "block"
	Goroutine Opt = "goroutine"
	Mutex     Opt = "mutex"
	Trace     Opt = "trace"
	Gio       Opt = "gio"
)

// Opts lists every supported option.
var Opts = []Opt{None, CPU, Memory, Block, Goroutine, Mutex, Trace, Gio}

// Usage describes the options for a command line flag.
func Usage() string {
	names := make([]string, len(Opts))
	for i, o := range Opts {
		names[i] = string(o)
	}
	return fmt.Sprintf("create the provided kind of profile. Use one of [%s]", strings.Join(names, ", "))
}

// Parse validates a profiling option. The empty string means None.
func Parse(s string) (Opt, error) {
	if s == "" {
		return None, nil
	}
	for _, o := range Opts {
		if string(o) == strings.ToLower(s) {
			return o, nil
		}
	}
	return None, fmt.Errorf("unknown profile %q", s)
}

// NewProfiler creates a profiler based on the selected option. Problems with
// the Gio recorder are reported to logger.
func (p Opt) NewProfiler(logger zerolog.Logger) Profiler {
	switch p {
	case "", None:
		return Profiler{Type: p}
	case CPU:
		return Profiler{Type: p, Starter: profile.CPUProfile}
	case Memory:
		return Profiler{Type: p, Starter: profile.MemProfile}
	case Block:
		return Profiler{Type: p, Starter: profile.BlockProfile}
	case Goroutine:
		return Profiler{Type: p, Starter: profile.GoroutineProfile}
	case Mutex:
		return Profiler{Type: p, Starter: profile.MutexProfile}
	case Trace:
		return Profiler{Type: p, Starter: profile.TraceProfile}
	case Gio:
		var recorder *profiling.CSVTimingRecorder
		return Profiler{
			Type: p,
			Starter: func(*profile.Profile) {
				var err error
				recorder, err = profiling.NewRecorder(nil)
				if err != nil {
					logger.Error().Err(err).Msg("starting profiler")
				}
			},
			Stopper: func() {
				if recorder == nil {
					return
				}
				if err := recorder.Stop(); err != nil {
					logger.Error().Err(err).Msg("stopping profiler")
				}
			},
			Recorder: func(gtx layout.Context) {
				if recorder == nil {
					return
				}
				recorder.Profile(gtx)
			},
		}
	}
	return Profiler{}
}
