package main

import (
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"cafecrawler/pkg/config"
	"cafecrawler/pkg/logger"
	"cafecrawler/pkg/ui"
)

var (
	// Version information
	version   = "1.0.0"
	gitCommit = "unknown"
	buildDate = "unknown"

	// Global flags
	configFile string
	logLevel   string
	quiet      bool
	verbose    bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "cafecrawler",
	Short: "Archive a Naver Cafe author's posts as Markdown",
	Long: `Cafe Crawler collects the recent posts of one author in a Naver Cafe
community and writes them as Markdown files with an index.

Features:
  - Login cookies stored in the system keychain or an encrypted file
  - Recency window and page limit per run
  - Comment threads included with each post
  - Polite pacing with per-request rate limiting and retries
  - Resume checkpoints when the listing becomes unavailable mid-run
  - Live terminal monitor and desktop notifications`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, gitCommit, buildDate),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if quiet {
			ui.Output = io.Discard
		}
		if cmd.Name() != "version" && cmd.Name() != "help" && !useTUI {
			ui.PrintLogo()
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Red(err.Error()))
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file (default is "+config.DefaultPath()+")")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress all output except errors")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "show log lines instead of the progress bar")

	rootCmd.SetVersionTemplate(`Cafe Crawler {{.Version}}
Go Version: ` + runtime.Version() + `
OS/Arch: ` + runtime.GOOS + `/` + runtime.GOARCH + `
`)

	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// loadConfig loads the configuration with the global flags applied on top
func loadConfig(flags map[string]interface{}) (*config.Config, error) {
	if flags == nil {
		flags = make(map[string]interface{})
	}
	if logLevel != "" {
		flags["log-level"] = logLevel
	}
	return config.Load(configFile, flags)
}

// newLogger builds the run logger. The console only gets log lines in
// verbose mode; the progress display owns it otherwise.
func newLogger(cfg *config.Config, journal *logger.Journal, console bool, opts ...logger.Option) (logger.Logger, error) {
	var out io.Writer = io.Discard
	if console {
		out = os.Stderr
	}
	opts = append([]logger.Option{logger.WithJournal(journal), logger.WithWriter(out)}, opts...)
	return logger.New(&cfg.Logging, opts...)
}
