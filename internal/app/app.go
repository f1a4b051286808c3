// Package app wires configuration into adapters and workflows.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/lib/pq"

	"github.com/ceddto100/SEO-LEAD/internal/config"
	"github.com/ceddto100/SEO-LEAD/internal/infrastructure/analytics"
	"github.com/ceddto100/SEO-LEAD/internal/infrastructure/dataforseo"
	"github.com/ceddto100/SEO-LEAD/internal/infrastructure/images"
	"github.com/ceddto100/SEO-LEAD/internal/infrastructure/indexing"
	"github.com/ceddto100/SEO-LEAD/internal/infrastructure/mock"
	"github.com/ceddto100/SEO-LEAD/internal/infrastructure/notify"
	"github.com/ceddto100/SEO-LEAD/internal/infrastructure/openai"
	"github.com/ceddto100/SEO-LEAD/internal/infrastructure/sheets"
	"github.com/ceddto100/SEO-LEAD/internal/infrastructure/storage"
	"github.com/ceddto100/SEO-LEAD/internal/infrastructure/wordpress"
	"github.com/ceddto100/SEO-LEAD/internal/logging"
	"github.com/ceddto100/SEO-LEAD/internal/metrics"
	"github.com/ceddto100/SEO-LEAD/internal/ports"
	"github.com/ceddto100/SEO-LEAD/internal/workflow"
)

// Options override config-derived inputs from the CLI.
type Options struct {
	Niche string
	Seeds []string
	Limit int
	Mode  string
	Now   func() time.Time
}

// Application owns the workflow registry and shared adapters.
type Application struct {
	cfg      config.Config
	logger   *slog.Logger
	registry *workflow.Registry
	repo     ports.RunRepository
	usage    *openai.UsageTracker
}

// New builds a runnable application. Dry-run selects the deterministic mock
// adapters; the flag is fixed here and never flipped afterwards.
func New(cfg config.Config, baseLogger *slog.Logger, opts Options) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level, cfg.Logging.Format)
	}

	usage := openai.NewUsageTracker(baseLogger.With("component", "usage"))

	adapters, repo, err := buildAdapters(cfg, baseLogger, usage)
	if err != nil {
		return nil, err
	}

	app := &Application{
		cfg:      cfg,
		logger:   baseLogger,
		registry: workflow.NewRegistry(),
		repo:     repo,
		usage:    usage,
	}
	app.registerWorkflows(adapters, opts)
	return app, nil
}

// adapterSet groups every driven adapter behind its port.
type adapterSet struct {
	provider        ports.KeywordProvider
	clusterer       ports.KeywordClusterer
	analyst         ports.CompetitorAnalyst
	planner         ports.ContentPlanner
	outliner        ports.OutlineGenerator
	writer          ports.ArticleWriter
	auditor         ports.SEOAuditor
	meta            ports.MetaGenerator
	scorer          ports.LeadScorer
	social          ports.SocialGenerator
	emails          ports.EmailWriter
	perf            ports.PerformanceAnalyst
	prompter        ports.ImagePrompter
	sheetStore      ports.SheetStore
	publisher       ports.Publisher
	indexer         ports.Indexer
	imageGen        ports.ImageGenerator
	notifier        ports.Notifier
	analyticsSource ports.AnalyticsProvider
}

func buildAdapters(cfg config.Config, logger *slog.Logger, usage *openai.UsageTracker) (adapterSet, ports.RunRepository, error) {
	if cfg.DryRun {
		assistant := mock.Assistant{}
		return adapterSet{
			provider:        mock.KeywordProvider{},
			clusterer:       assistant,
			analyst:         assistant,
			planner:         assistant,
			outliner:        assistant,
			writer:          assistant,
			auditor:         assistant,
			meta:            assistant,
			scorer:          assistant,
			social:          assistant,
			emails:          assistant,
			perf:            assistant,
			prompter:        assistant,
			sheetStore:      mock.NewSheetStore(),
			publisher:       mock.NewPublisher(cfg.Site.URL),
			indexer:         mock.Indexer{},
			imageGen:        mock.ImageGenerator{},
			notifier:        mock.Notifier{Logger: logger.With("component", "notify")},
			analyticsSource: mock.AnalyticsProvider{},
		}, mock.NewRunRepository(), nil
	}

	chat := openai.NewClient(cfg.OpenAI, usage, logger.With("component", "openai"))
	assistant := openai.NewAssistant(chat, logger.With("component", "assistant"))

	var db *sql.DB
	if cfg.Database.DSN != "" {
		var err error
		db, err = sql.Open("postgres", cfg.Database.DSN)
		if err != nil {
			return adapterSet{}, nil, fmt.Errorf("open database: %w", err)
		}
	}

	return adapterSet{
		provider:        dataforseo.NewClient(cfg.DataForSEO, logger.With("component", "dataforseo")),
		clusterer:       assistant,
		analyst:         assistant,
		planner:         assistant,
		outliner:        assistant,
		writer:          assistant,
		auditor:         assistant,
		meta:            assistant,
		scorer:          assistant,
		social:          assistant,
		emails:          assistant,
		perf:            assistant,
		prompter:        assistant,
		sheetStore:      sheets.NewClient(cfg.Sheets, logger.With("component", "sheets")),
		publisher:       wordpress.NewPublisher(cfg.WordPress, logger.With("component", "wordpress")),
		indexer:         indexing.NewClient(cfg.Indexing, logger.With("component", "indexing")),
		imageGen:        images.NewClient(cfg.Images, logger.With("component", "images")),
		notifier:        notify.New(cfg.Notifications, logger.With("component", "notify")),
		analyticsSource: analytics.NewClient(cfg.Analytics, logger.With("component", "analytics")),
	}, storage.NewPostgresRepository(db), nil
}

func (a *Application) registerWorkflows(adapters adapterSet, opts Options) {
	niche := opts.Niche
	if niche == "" {
		niche = a.cfg.Site.Niche
	}

	a.registry.Register(workflow.NewKeywordResearch(workflow.KeywordResearchDeps{
		Provider:  adapters.provider,
		Clusterer: adapters.clusterer,
		Analyst:   adapters.analyst,
		Sheets:    adapters.sheetStore,
		Notifier:  adapters.notifier,
		Logger:    a.logger.With("workflow", "wf01"),
		Niche:     niche,
		Seeds:     opts.Seeds,
		MinVolume: a.cfg.Pipeline.MinKeywordVolume,
		TopN:      a.cfg.Pipeline.TopKeywordsToQueue,
		Now:       opts.Now,
	}))
	a.registry.Register(workflow.NewContentStrategy(workflow.ContentStrategyDeps{
		Planner:  adapters.planner,
		Outliner: adapters.outliner,
		Sheets:   adapters.sheetStore,
		Notifier: adapters.notifier,
		Logger:   a.logger.With("workflow", "wf02"),
		Niche:    niche,
		Now:      opts.Now,
	}))
	a.registry.Register(workflow.NewBlogWriting(workflow.BlogWritingDeps{
		Writer:   adapters.writer,
		Auditor:  adapters.auditor,
		Meta:     adapters.meta,
		Sheets:   adapters.sheetStore,
		Repo:     a.repo,
		Notifier: adapters.notifier,
		Logger:   a.logger.With("workflow", "wf03"),
		Limit:    opts.Limit,
		Now:      opts.Now,
	}))
	a.registry.Register(workflow.NewFeaturedImages(workflow.FeaturedImagesDeps{
		Prompter:  adapters.prompter,
		Generator: adapters.imageGen,
		Sheets:    adapters.sheetStore,
		Logger:    a.logger.With("workflow", "wf04"),
		ImageSize: a.cfg.Images.Size,
		Now:       opts.Now,
	}))
	a.registry.Register(workflow.NewPublishing(workflow.PublishingDeps{
		Publisher: adapters.publisher,
		Indexer:   adapters.indexer,
		Sheets:    adapters.sheetStore,
		Notifier:  adapters.notifier,
		Logger:    a.logger.With("workflow", "wf05"),
		Now:       opts.Now,
	}))
	a.registry.Register(workflow.NewSocial(workflow.SocialDeps{
		Generator: adapters.social,
		Sheets:    adapters.sheetStore,
		Logger:    a.logger.With("workflow", "wf06"),
		Now:       opts.Now,
	}))
	a.registry.Register(workflow.NewLeadCapture(workflow.LeadCaptureDeps{
		Scorer:   adapters.scorer,
		Sheets:   adapters.sheetStore,
		Notifier: adapters.notifier,
		Logger:   a.logger.With("workflow", "wf07"),
		Now:      opts.Now,
	}))
	a.registry.Register(workflow.NewFollowUp(workflow.FollowUpDeps{
		Emails: adapters.emails,
		Sheets: adapters.sheetStore,
		Logger: a.logger.With("workflow", "wf08"),
		Now:    opts.Now,
	}))
	a.registry.Register(workflow.NewEmailSequences(workflow.EmailSequencesDeps{
		Emails: adapters.emails,
		Sheets: adapters.sheetStore,
		Logger: a.logger.With("workflow", "wf09"),
		Now:    opts.Now,
	}))
	a.registry.Register(workflow.NewAnalytics(workflow.AnalyticsDeps{
		Provider: adapters.analyticsSource,
		Analyst:  adapters.perf,
		Sheets:   adapters.sheetStore,
		Notifier: adapters.notifier,
		Logger:   a.logger.With("workflow", "wf10"),
		Mode:     opts.Mode,
		Now:      opts.Now,
	}))
	a.registry.Register(workflow.NewFeedback(workflow.FeedbackDeps{
		Analyst: adapters.perf,
		Sheets:  adapters.sheetStore,
		Logger:  a.logger.With("workflow", "wf11"),
		Now:     opts.Now,
	}))
}

// WorkflowIDs lists the registered workflow ids.
func (a *Application) WorkflowIDs() []string {
	return a.registry.IDs()
}

// DryRun reports whether mock adapters are wired.
func (a *Application) DryRun() bool {
	return a.cfg.DryRun
}

// RunWorkflow resolves and executes one workflow, recording metrics, run
// history and session usage.
func (a *Application) RunWorkflow(ctx context.Context, id string) (workflow.Summary, error) {
	w, err := a.registry.Resolve(id)
	if err != nil {
		return nil, err
	}

	a.logger.Info("workflow starting", "workflow", id, "name", w.Name(), "dry_run", a.cfg.DryRun)
	start := time.Now()

	summary, err := w.Run(ctx)

	duration := time.Since(start)
	status := "ok"
	if err != nil {
		status = "error"
	}
	if metrics.WorkflowRuns != nil {
		metrics.WorkflowRuns.WithLabelValues(id, status).Inc()
		metrics.WorkflowDuration.WithLabelValues(id).Observe(duration.Seconds())
	}

	if err != nil {
		a.logger.Error("workflow failed", "workflow", id, "duration", duration, "error", err)
		return nil, fmt.Errorf("run %s: %w", id, err)
	}

	if a.repo != nil {
		if saveErr := a.repo.SaveRun(ctx, id, summary); saveErr != nil {
			a.logger.Warn("run history not saved", "workflow", id, "error", saveErr)
		}
	}

	stats := a.usage.Stats()
	a.logger.Info("workflow completed",
		"workflow", id,
		"duration", duration,
		"session_tokens", stats.TotalTokens,
		"session_cost_usd", stats.EstimatedCostUSD,
	)
	return summary, nil
}
