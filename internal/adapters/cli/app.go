package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/devbush/photoccrop/internal/adapters/codec"
	"github.com/devbush/photoccrop/internal/adapters/mask"
	"github.com/devbush/photoccrop/internal/application"
	"github.com/devbush/photoccrop/internal/config"
)

// App holds all application dependencies
type App struct {
	Config *config.Config
	Log    *logrus.Logger
	Masks  *mask.Cached

	CropSvc *application.CropService
}

// AppOptions carries the global flags that influence wiring
type AppOptions struct {
	ConfigPath string // empty means config.ConfigPath()
	EnvFile    string // empty means ".env"
	Verbose    bool
	Quiet      bool
	LogOutput  io.Writer // nil means stderr
}

// NewApp creates and wires up all dependencies
func NewApp(opts AppOptions) (*App, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logOut := opts.LogOutput
	if logOut == nil {
		logOut = os.Stderr
	}
	logger, err := NewLogger(cfg.Log.Level, opts.Verbose, opts.Quiet, logOut)
	if err != nil {
		return nil, err
	}

	// Create adapters
	imageCodec, err := codec.New(cfg.Defaults.Filter)
	if err != nil {
		return nil, err
	}
	masks, err := mask.NewCached(mask.NewGenerator(), cfg.Mask.CacheSize)
	if err != nil {
		return nil, err
	}

	// Create services
	cropSvc := application.NewCropService(afero.NewOsFs(), imageCodec, masks, application.CropOptions{
		Workers: cfg.Defaults.Workers,
		Logger:  logger,
	})

	return &App{
		Config:  cfg,
		Log:     logger,
		Masks:   masks,
		CropSvc: cropSvc,
	}, nil
}

// loadConfig reads the config file and applies .env and environment overrides
func loadConfig(opts AppOptions) (*config.Config, error) {
	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	if err := config.LoadEnvFile(envFile); err != nil {
		return nil, err
	}

	path := opts.ConfigPath
	if path == "" {
		path = config.ConfigPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	return cfg, nil
}

// NewLogger builds the diagnostic logger. --verbose forces debug and
// --quiet limits output to errors.
func NewLogger(level string, verbose, quiet bool, out io.Writer) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	switch {
	case verbose:
		lvl = logrus.DebugLevel
	case quiet:
		lvl = logrus.ErrorLevel
	}

	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetLevel(lvl)
	logger.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: !verbose,
		DisableColors:    !isTerminal(out),
	})
	return logger, nil
}

// isTerminal reports whether w is an interactive terminal
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

var globalApp *App

// GetApp returns the global app instance, creating it if needed
func GetApp() (*App, error) {
	if globalApp == nil {
		app, err := NewApp(AppOptions{
			ConfigPath: configFlag,
			Verbose:    verboseFlag,
			Quiet:      quietFlag,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize: %w", err)
		}
		globalApp = app
	}
	return globalApp, nil
}

// resolveSize picks the diameter from a flag, falling back to the config
func resolveSize(flag int, cfg *config.Config) int {
	if flag != 0 {
		return flag
	}
	return cfg.Defaults.Size
}
