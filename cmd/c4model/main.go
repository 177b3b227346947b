package main

import (
	"fmt"
	"os"
	"strings"

	"c4model/internal/config"
	"c4model/internal/repository/sqlite"
	"c4model/internal/service"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// app holds the state shared by every command
type app struct {
	configPath string
	dbPath     string
	logLevel   string

	cfg  *config.Config
	log  *zap.Logger
	repo *sqlite.Repository
	svc  *service.WorkspaceService
}

func main() {
	a := &app{}
	if err := newRootCmd(a).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "c4model",
		Short: "c4model - architecture models as code",
		Long: `c4model - architecture models as code, following the C4 notation.

Definitions are YAML files declaring people, software systems and containers.
A container declared once can be referenced by instance ("web-app:1") to
depict several deployed copies that share one definition.

Examples:
  c4model validate architecture.yaml     # Check a definition file
  c4model import architecture.yaml       # Store a workspace
  c4model instance banking web-app blue  # Intern a named instance
  c4model show banking --format yaml     # Print a stored snapshot`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.close()
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default: search "+config.EnvConfigPath+" and standard locations)")
	root.PersistentFlags().StringVar(&a.dbPath, "db", "", "SQLite database path (overrides config)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error (overrides config)")

	root.AddCommand(
		newValidateCmd(a),
		newImportCmd(a),
		newListCmd(a),
		newShowCmd(a),
		newInstanceCmd(a),
		newDeleteCmd(a),
		newWatchCmd(a),
		newConfigCmd(a),
	)
	return root
}

// setup loads config and builds the logger. The database is opened lazily
// by commands that need it.
func (a *app) setup() error {
	var (
		cfg *config.Config
		err error
	)
	if a.configPath != "" {
		cfg, _, err = config.LoadFromPath(a.configPath)
	} else {
		cfg, a.configPath, err = config.Load()
	}
	if err != nil {
		return err
	}

	if a.dbPath != "" {
		cfg.Database.Path = a.dbPath
	}
	if a.logLevel != "" {
		cfg.Logging.Level = a.logLevel
	}
	a.cfg = cfg

	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	a.log = log
	return nil
}

// service opens the repository on first use
func (a *app) service() (*service.WorkspaceService, error) {
	if a.svc != nil {
		return a.svc, nil
	}

	repo, err := sqlite.New(a.cfg.Database.Path)
	if err != nil {
		return nil, errors.Wrapf(err, "open database %s", a.cfg.Database.Path)
	}
	a.log.Debug("database opened", zap.String("path", a.cfg.Database.Path))

	a.repo = repo
	a.svc = service.NewWorkspaceService(repo, service.NewEventBus(), a.log.Sugar())
	return a.svc, nil
}

func (a *app) close() {
	if a.repo != nil {
		a.repo.Close()
	}
	if a.log != nil {
		_ = a.log.Sync()
	}
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	level, err := cfg.LogLevel()
	if err != nil {
		return nil, err
	}

	var zc zap.Config
	if cfg.Logging.Development {
		zc = zap.NewDevelopmentConfig()
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		zc = zap.NewProductionConfig()
		zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.OutputPaths = []string{"stderr"}

	log, err := zc.Build()
	if err != nil {
		return nil, errors.Wrap(err, "build logger")
	}
	return log, nil
}

// splitInstanceKey splits "alias:name" at the last separator
func splitInstanceKey(key string) (alias, name string, ok bool) {
	idx := strings.LastIndex(key, ":")
	if idx <= 0 || idx == len(key)-1 {
		return "", "", false
	}
	return key[:idx], key[idx+1:], true
}
