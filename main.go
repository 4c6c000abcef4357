package main

import (
	"fmt"
	"os"

	"github.com/atomicstack/overlaykit/internal/app"
	"github.com/atomicstack/overlaykit/internal/config"
	"github.com/atomicstack/overlaykit/internal/logging"
	"github.com/atomicstack/overlaykit/internal/logging/events"
	"golang.org/x/term"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg := config.MustLoad()
	logging.Configure(cfg.Logging.FilePath)
	logging.SetTraceEnabled(cfg.Logging.Trace)
	events.App.Start(startupTracePayload(cfg))

	if err := app.Run(cfg.App); err != nil {
		logging.Error(err)
		events.App.Stop(err.Error())
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	events.App.Stop("exit")
	return 0
}

// startupTracePayload records how the gallery was launched.
func startupTracePayload(cfg config.Config) map[string]interface{} {
	flags := make(map[string]interface{}, len(cfg.Flags)+2)
	for k, v := range cfg.Flags {
		flags[k] = v
	}
	flags["trace"] = cfg.Logging.Trace
	flags["logFile"] = cfg.Logging.FilePath

	payload := map[string]interface{}{
		"argv":   cfg.Args,
		"flags":  flags,
		"config": cfg,
		"tty":    collectTTYDetails(),
	}
	if exe, err := os.Executable(); err == nil {
		payload["executable"] = exe
	}
	if cwd, err := os.Getwd(); err == nil {
		payload["cwd"] = cwd
	}
	return payload
}

type ttyDetails struct {
	Detected *ttySize   `json:"detected,omitempty"`
	Probes   []ttyProbe `json:"probes"`
}

type ttySize struct {
	Source string `json:"source"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type ttyProbe struct {
	Name       string `json:"name"`
	IsTerminal bool   `json:"is_terminal"`
	Width      int    `json:"width,omitempty"`
	Height     int    `json:"height,omitempty"`
	Error      string `json:"error,omitempty"`
}

var ttyFiles = []struct {
	name string
	file *os.File
}{
	{"stdin", os.Stdin},
	{"stdout", os.Stdout},
	{"stderr", os.Stderr},
}

// collectTTYDetails reports which standard descriptors are terminals. The
// first one with a readable size is the screen the overlays are laid out on.
func collectTTYDetails() ttyDetails {
	var out ttyDetails
	for _, f := range ttyFiles {
		probe := ttyProbe{Name: f.name}
		fd := int(f.file.Fd())
		probe.IsTerminal = term.IsTerminal(fd)
		if probe.IsTerminal {
			w, h, err := term.GetSize(fd)
			switch {
			case err != nil:
				probe.Error = err.Error()
			case out.Detected == nil:
				out.Detected = &ttySize{Source: f.name, Width: w, Height: h}
				fallthrough
			default:
				probe.Width, probe.Height = w, h
			}
		}
		out.Probes = append(out.Probes, probe)
	}
	return out
}
