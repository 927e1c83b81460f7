package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"cafecrawler/pkg/auth"
	"cafecrawler/pkg/cafe"
	"cafecrawler/pkg/checkpoint"
	"cafecrawler/pkg/config"
	"cafecrawler/pkg/crawler"
	"cafecrawler/pkg/export"
	"cafecrawler/pkg/logger"
	"cafecrawler/pkg/models"
	"cafecrawler/pkg/ratelimit"
	"cafecrawler/pkg/retry"
	"cafecrawler/pkg/ui"
	"cafecrawler/pkg/ui/tui"
)

var (
	// Crawl command flags
	clubID       string
	authorID     string
	nickname     string
	maxPages     int
	periodDays   int
	withComments bool
	outputDir    string
	accountName  string
	pageDelay    time.Duration
	resumeRun    bool
	forceRestart bool
	useTUI       bool
	exportLogs   string
	notify       bool
)

var errRunFailed = errors.New("crawl failed, see the log for details")

// crawlCmd represents the crawl command
var crawlCmd = &cobra.Command{
	Use:   "crawl",
	Short: "Archive an author's recent posts",
	Long: `Collect the posts one author wrote in a community within the recency
window and export them as Markdown.

Login cookies come from the account stored with 'cafecrawler auth login',
or from the CAFECRAWLER_NID_AUT and CAFECRAWLER_NID_SES environment variables.

When a listing page cannot be fetched the posts collected so far are still
exported and a checkpoint is saved. Rerun with --resume to continue from the
failed page, or --force-restart to start over.`,
	Example: `  # Archive the last year of an author's posts
  cafecrawler crawl --club 10050146 --author writer01

  # Only the last 30 days, first 3 listing pages, no comments
  cafecrawler crawl --club 10050146 --author writer01 --days 30 --pages 3 --comments=false

  # Show the live monitor and keep a JSON copy of the log
  cafecrawler crawl --club 10050146 --author writer01 --tui --export-logs run.json

  # Continue a truncated run
  cafecrawler crawl --club 10050146 --author writer01 --resume`,
	Args: cobra.NoArgs,
	RunE: runCrawl,
}

func init() {
	rootCmd.AddCommand(crawlCmd)

	crawlCmd.Flags().StringVar(&clubID, "club", "", "community (club) id")
	crawlCmd.Flags().StringVar(&authorID, "author", "", "author (member) id")
	crawlCmd.Flags().StringVar(&nickname, "nickname", "", "author name used in the exported index")
	crawlCmd.Flags().IntVar(&maxPages, "pages", 10, "maximum number of listing pages to scan")
	crawlCmd.Flags().IntVar(&periodDays, "days", 365, "only include posts from the last N days")
	crawlCmd.Flags().BoolVar(&withComments, "comments", true, "include comment threads")
	crawlCmd.Flags().StringVarP(&outputDir, "output", "o", "", "output directory (default: naver_cafe_articles)")
	crawlCmd.Flags().StringVarP(&accountName, "account", "a", "", "use specific stored account")
	crawlCmd.Flags().DurationVar(&pageDelay, "delay", crawler.DefaultPageDelay, "pause between listing pages")
	crawlCmd.Flags().BoolVar(&resumeRun, "resume", false, "resume from last checkpoint")
	crawlCmd.Flags().BoolVar(&forceRestart, "force-restart", false, "force restart, ignoring existing checkpoint")
	crawlCmd.Flags().BoolVar(&useTUI, "tui", false, "use interactive terminal UI with real-time progress")
	crawlCmd.Flags().StringVar(&exportLogs, "export-logs", "", "write the run log as JSON to this file")
	crawlCmd.Flags().BoolVar(&notify, "notify", false, "send a desktop notification when the run ends")

	crawlCmd.MarkFlagsMutuallyExclusive("resume", "force-restart")
}

// changedFlags collects the crawl flags the user set explicitly
func changedFlags(cmd *cobra.Command) map[string]interface{} {
	flags := make(map[string]interface{})
	set := func(name string, value interface{}) {
		if cmd.Flags().Changed(name) {
			flags[name] = value
		}
	}

	set("club", clubID)
	set("author", authorID)
	set("nickname", nickname)
	set("pages", maxPages)
	set("days", periodDays)
	set("comments", withComments)
	set("output", outputDir)
	set("account", accountName)
	set("delay", pageDelay)
	set("export-logs", exportLogs)
	set("notify", notify)
	return flags
}

func runCrawl(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(changedFlags(cmd))
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	runCfg := cfg.RunConfig()
	if err := runCfg.Validate(); err != nil {
		return fmt.Errorf("invalid crawl target: %w\nSet --club and --author, or cafe.club_id and cafe.author_id in the config file", err)
	}

	var (
		monitor *tui.TUI
		hooks   []logger.Option
	)
	if useTUI {
		monitor = tui.NewTUI(runCfg.DisplayName(), runCfg.PageLimit)
		hooks = append(hooks, logger.WithHook(monitorHook{monitor: monitor}))
	}

	journal := logger.NewJournal()
	log, err := newLogger(cfg, journal, verbose && !useTUI, hooks...)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	log = log.WithFields(map[string]interface{}{
		"community": runCfg.Community,
		"author":    runCfg.Author,
	})

	manager, err := auth.NewManager()
	if err != nil {
		return fmt.Errorf("failed to initialize credential manager: %w", err)
	}
	account, err := manager.Resolve(cfg.Cafe.Account)
	if err != nil {
		ui.PrintError("No login cookies found")
		fmt.Fprintln(ui.Output, "\nTo store them securely, run:")
		fmt.Fprintln(ui.Output, "  cafecrawler auth login")
		fmt.Fprintf(ui.Output, "\nOr set %s and %s in the environment.\n", auth.EnvNIDAut, auth.EnvNIDSes)
		return err
	}
	log.WithField("account", account.Name).Info("Using stored login cookies")

	store, err := checkpoint.NewManager(runCfg.Community, runCfg.Author, log)
	if err != nil {
		return fmt.Errorf("failed to initialize checkpoints: %w", err)
	}
	if err := prepareCheckpoint(store, resumeRun, forceRestart); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		ok    bool
		stats models.RunStats
	)
	if monitor != nil {
		ok, stats, err = crawlWithMonitor(ctx, monitor, cfg, account, log, journal, store)
		if err != nil {
			return err
		}
	} else {
		ui.PrintInfo("Community", runCfg.Community)
		ui.PrintInfo("Author", runCfg.DisplayName())
		ui.PrintInfo("Account", account.Name)

		var observer crawler.Observer
		if !quiet {
			observer = ui.NewProgressDisplay(ui.Output, runCfg.DisplayName(), runCfg.PageLimit, verbose)
		}
		coordinator := newCoordinator(cfg, account, log, journal, observer, store, resumeRun)
		ok = coordinator.Run(ctx, runCfg)
		stats = coordinator.Stats()
	}

	if !quiet {
		ui.RenderSummary(ui.Output, stats, runCfg.OutputDir, ok)
	}
	if cfg.Logging.ExportFile != "" {
		ui.PrintInfo("Log exported", cfg.Logging.ExportFile)
	}
	ui.NewNotifier(cfg.Notifications).RunFinished(runCfg.DisplayName(), stats, ok)

	if !ok {
		return errRunFailed
	}
	return nil
}

// prepareCheckpoint refuses to silently overwrite a checkpoint left by a
// truncated run
func prepareCheckpoint(store *checkpoint.Manager, resume, restart bool) error {
	if restart {
		return store.Delete()
	}
	if resume || !store.Exists() {
		return nil
	}

	info, err := store.GetCheckpointInfo()
	if err != nil {
		return fmt.Errorf("unreadable checkpoint at %s: %w\nUse --force-restart to discard it", store.Path(), err)
	}
	if info == nil {
		return nil
	}

	ui.PrintWarning("A previous run of this author was interrupted")
	ui.PrintInfo("Next page", fmt.Sprint(info["next_page"]))
	ui.PrintInfo("Posts collected", fmt.Sprint(info["posts"]))
	if age, ok := info["age"].(time.Duration); ok {
		ui.PrintInfo("Saved", age.Round(time.Minute).String()+" ago")
	}
	return errors.New("checkpoint exists, rerun with --resume to continue or --force-restart to start over")
}

// newCoordinator wires the crawl components for one run
func newCoordinator(cfg *config.Config, account *auth.Account, log logger.Logger, journal *logger.Journal,
	observer crawler.Observer, store crawler.CheckpointStore, resume bool) *crawler.Coordinator {
	sessionCfg := cafe.SessionConfig{
		UserAgent: cfg.Cafe.UserAgent,
		Timeout:   cfg.Crawl.RequestTimeout,
		Limiter:   ratelimit.PerMinute(cfg.RateLimit.RequestsPerMinute),
		Retry:     retryConfig(cfg.Retry, log),
	}
	authenticator := auth.NewAuthenticator(account, cfg.Cafe.BaseURL, cfg.Cafe.LoginCheckURL,
		cfg.Crawl.LoginTimeout, sessionCfg, log)

	extractor := cafe.NewExtractor()
	endpoints := cafe.NewEndpoints(cfg.Cafe.BaseURL)

	paginator := crawler.NewPaginator(extractor, endpoints, nil, log,
		crawler.WithPageDelay(cfg.Crawl.PageDelay),
		crawler.WithObserver(observer),
	)

	opts := []crawler.CoordinatorOption{crawler.WithStageObserver(observer)}
	if store != nil {
		opts = append(opts, crawler.WithCheckpoints(store, resume))
	}
	if cfg.Logging.ExportFile != "" {
		opts = append(opts, crawler.WithLogExport(journal, cfg.Logging.ExportFile))
	}

	return crawler.NewCoordinator(sessionAuthenticator(authenticator), paginator, export.NewMarkdownExporter(log), log, opts...)
}

// sessionAuthenticator adapts the cookie authenticator to the crawler's
// Session interface without leaking a typed nil on failure
func sessionAuthenticator(a *auth.Authenticator) crawler.Authenticator {
	return crawler.AuthenticatorFunc(func(ctx context.Context) (crawler.Session, error) {
		session, err := a.Authenticate(ctx)
		if err != nil {
			return nil, err
		}
		return session, nil
	})
}

func retryConfig(cfg config.RetryConfig, log logger.Logger) *retry.Config {
	return &retry.Config{
		MaxAttempts: cfg.MaxAttempts,
		Backoff: &retry.ExponentialBackoff{
			BaseDelay:    cfg.InitialBackoff,
			MaxDelay:     cfg.MaxBackoff,
			Multiplier:   cfg.Multiplier,
			JitterFactor: 0.1,
		},
		RetryIf: retry.DefaultRetryIf,
		Logger:  log,
	}
}

// crawlWithMonitor runs the crawl behind the full-screen monitor. The
// monitor stays up after the run until the user quits it.
func crawlWithMonitor(ctx context.Context, monitor *tui.TUI, cfg *config.Config, account *auth.Account,
	log logger.Logger, journal *logger.Journal, store crawler.CheckpointStore) (bool, models.RunStats, error) {
	runCfg := cfg.RunConfig()
	coordinator := newCoordinator(cfg, account, log, journal, monitor, store, resumeRun)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	type outcome struct {
		ok    bool
		stats models.RunStats
	}
	runDone := make(chan outcome, 1)
	go func() {
		ok := coordinator.Run(ctx, runCfg)
		runDone <- outcome{ok: ok, stats: coordinator.Stats()}
	}()

	if err := monitor.Start(); err != nil {
		cancel()
		<-runDone
		return false, models.RunStats{}, fmt.Errorf("terminal UI failed: %w", err)
	}

	// quitting the monitor early stops the crawl; what was collected is exported
	cancel()
	res := <-runDone
	return res.ok, res.stats, nil
}

// monitorHook mirrors log lines of info level and above into the live monitor
type monitorHook struct {
	monitor *tui.TUI
}

func (h monitorHook) Run(_ *zerolog.Event, level zerolog.Level, message string) {
	if level < zerolog.InfoLevel || level == zerolog.NoLevel {
		return
	}
	h.monitor.Log(strings.ToUpper(level.String()), message)
}
