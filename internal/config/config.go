package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/atomicstack/overlaykit/internal/app"
	"github.com/spf13/pflag"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	Flags   map[string]string
	Args    []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envWidth          = "OVERLAYKIT_WIDTH"
	envHeight         = "OVERLAYKIT_HEIGHT"
	envShowFooter     = "OVERLAYKIT_FOOTER"
	envTrace          = "OVERLAYKIT_TRACE"
	envLogFile        = "OVERLAYKIT_LOG_FILE"
	envBlurDelay      = "OVERLAYKIT_BLUR_DELAY"
	envMenuFile       = "OVERLAYKIT_MENU_FILE"
	envRootDir        = "OVERLAYKIT_ROOT_DIR"
	envShowFiles      = "OVERLAYKIT_SHOW_FILES"
	envOverwriteQuery = "OVERLAYKIT_OVERWRITE_QUERY"
	envNoMouse        = "OVERLAYKIT_NO_MOUSE"
	envWatchInterval  = "OVERLAYKIT_WATCH_INTERVAL"

	defaultBlurDelay     = 100 * time.Millisecond
	defaultWatchInterval = 2 * time.Second
)

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	fs := pflag.NewFlagSet("overlaykit", pflag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	width := fs.Int("width", envOrInt(env, envWidth, 0), "desired viewport width in cells (0 uses terminal width)")
	height := fs.Int("height", envOrInt(env, envHeight, 0), "desired viewport height in rows (0 uses terminal height)")
	footer := fs.Bool("footer", envOrBool(env, envShowFooter, false), "enable footer hint row")
	trace := fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file")
	blurDelay := fs.Duration("blur-delay", envOrDuration(env, envBlurDelay, defaultBlurDelay), "delay before an unfocused combobox closes (must be positive)")
	menuFile := fs.String("menu-file", envOrDefault(env, envMenuFile, ""), "JSONC file describing the filter menu")
	rootDir := fs.String("root-dir", envOrDefault(env, envRootDir, "."), "initial directory of the file browser")
	showFiles := fs.Bool("show-files", envOrBool(env, envShowFiles, false), "list files as well as directories in the browser")
	overwrite := fs.Bool("overwrite-query", envOrBool(env, envOverwriteQuery, false), "menu redirects replace the whole query")
	noMouse := fs.Bool("no-mouse", envOrBool(env, envNoMouse, false), "disable mouse reporting")
	watch := fs.Duration("watch-interval", envOrDuration(env, envWatchInterval, defaultWatchInterval), "how often the browsed directory is re-read (0 disables)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg := Config{
		App: app.Config{
			Width:          *width,
			Height:         *height,
			ShowFooter:     *footer,
			BlurDelay:      *blurDelay,
			MenuFile:       *menuFile,
			RootDir:        *rootDir,
			ShowFiles:      *showFiles,
			OverwriteQuery: *overwrite,
			NoMouse:        *noMouse,
			WatchInterval:  *watch,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Flags: map[string]string{
			"width":          strconv.Itoa(*width),
			"height":         strconv.Itoa(*height),
			"footer":         strconv.FormatBool(*footer),
			"trace":          strconv.FormatBool(*trace),
			"logFile":        *logFile,
			"blurDelay":      blurDelay.String(),
			"menuFile":       *menuFile,
			"rootDir":        *rootDir,
			"showFiles":      strconv.FormatBool(*showFiles),
			"overwriteQuery": strconv.FormatBool(*overwrite),
			"noMouse":        strconv.FormatBool(*noMouse),
			"watchInterval":  watch.String(),
		},
		Args: append([]string(nil), args...),
	}

	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		key, value, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		values[key] = value
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrDuration(env map[string]string, key string, fallback time.Duration) time.Duration {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate rejects values the program cannot run with.
func Validate(cfg Config) error {
	if cfg.App.Width < 0 {
		return fmt.Errorf("width must be >= 0 (got %d)", cfg.App.Width)
	}
	if cfg.App.Height < 0 {
		return fmt.Errorf("height must be >= 0 (got %d)", cfg.App.Height)
	}
	if cfg.App.BlurDelay <= 0 {
		return fmt.Errorf("blur-delay must be > 0 (got %s)", cfg.App.BlurDelay)
	}
	if cfg.App.WatchInterval < 0 {
		return fmt.Errorf("watch-interval must be >= 0 (got %s)", cfg.App.WatchInterval)
	}
	if strings.TrimSpace(cfg.App.RootDir) == "" {
		return fmt.Errorf("root-dir must not be empty")
	}
	return nil
}
