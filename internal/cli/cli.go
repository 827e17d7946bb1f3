// Package cli implements the antivirus command-line interface.
package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/AdrienWohrer/Anti-Virus-game-solver/pkg/buildinfo"
	"github.com/AdrienWohrer/Anti-Virus-game-solver/pkg/cache"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "antivirus"

	// defaultSolveTimeout is the default timeout for the backtracking search (seconds).
	defaultSolveTimeout = 60
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// Cache backend names accepted by the --cache flag.
const (
	cacheBackendFile  = "file"
	cacheBackendRedis = "redis"
	cacheBackendOff   = "off"
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "antivirus",
		Short:        "Antivirus solves tile-covering puzzles",
		Long:         `Antivirus is a CLI tool for solving, generating, and rendering tile-covering puzzles, where a set of colored tiles must exactly cover a board while respecting virus markers.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.solveCommand())
	root.AddCommand(c.generateCommand())
	root.AddCommand(c.classesCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Cache Factory
// =============================================================================

// newCache builds the cache backend selected by the --cache flag.
func newCache(cmd *cobra.Command, backend, redisAddr string) (cache.Cache, error) {
	switch backend {
	case cacheBackendOff:
		return cache.NewNullCache(), nil
	case cacheBackendRedis:
		return cache.NewRedisCache(cmd.Context(), redisAddr)
	case cacheBackendFile:
		dir, err := cacheDir()
		if err != nil {
			printWarning("Cache disabled: %v", err)
			return cache.NewNullCache(), nil
		}
		return cache.NewFileCache(dir)
	default:
		return nil, fmt.Errorf("unknown cache backend: %s (must be 'file', 'redis', or 'off')", backend)
	}
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/antivirus/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
