package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"

	"go-linkedin-copilot/internal/approval"
	"go-linkedin-copilot/internal/browser"
	"go-linkedin-copilot/internal/config"
	"go-linkedin-copilot/internal/copilot"
	"go-linkedin-copilot/internal/ledger"
	"go-linkedin-copilot/internal/logger"
	"go-linkedin-copilot/internal/messaging"
	"go-linkedin-copilot/internal/rank"
	"go-linkedin-copilot/internal/ratelimit"
	"go-linkedin-copilot/internal/reporter"
	"go-linkedin-copilot/internal/resume"
	"go-linkedin-copilot/internal/scraper/linkedin"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to configuration file")
	mode := flag.String("mode", "both", "operation mode: recruiters|jobs|both")
	flag.Parse()

	if *mode != "recruiters" && *mode != "jobs" && *mode != "both" {
		log.Fatalf("invalid mode %q: want recruiters, jobs or both", *mode)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}

	zl, err := logger.New(cfg.LogLevel, cfg.LogDir)
	if err != nil {
		log.Fatalf("❌ Failed to init logger: %v", err)
	}
	defer zl.Sync()

	//SIGINT/SIGTERM cancel the whole run, including any rate-limit wait
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, zl, *mode); err != nil && !errors.Is(err, context.Canceled) {
		zl.Fatal("copilot run failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, zl *zap.Logger, mode string) error {
	zl.Info("🚀 Starting LinkedIn Copilot", zap.String("mode", mode))

	store, err := openLedger(ctx, cfg, zl)
	if err != nil {
		return err
	}
	defer store.Close()

	limiter := ratelimit.New(cfg.Safety.MaxActionsPerDay, cfg.Safety.MinDelay(), cfg.Safety.MaxDelay())
	rep := reporter.New(store, limiter, cfg.LogDir, zl)

	//the daily summary goes out even when the run aborts midway
	defer func() {
		pubCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		report, err := rep.Publish(pubCtx, time.Now())
		if err != nil {
			zl.Warn("failed to publish daily summary", zap.Error(err))
			return
		}
		if cfg.TelegramToken != "" {
			tg, err := reporter.NewTelegramReporter(cfg.TelegramToken, cfg.TelegramChatID)
			if err == nil {
				if err := tg.SendReport(report); err != nil {
					zl.Warn("failed to send daily summary to telegram", zap.Error(err))
				}
			}
		}
	}()

	approver := buildApprover(cfg, zl)
	pilot := copilot.New(store, limiter, approver, zl)

	//browser session: one page drives the whole run
	manager, err := browser.NewManager(cfg.Headless)
	if err != nil {
		return err
	}
	defer manager.Close()

	cookies, err := browser.LoadCookies(filepath.Join(cfg.CookiesPath, "cookies-linkedin.json"))
	if err != nil {
		zl.Warn("could not load linkedin cookies, continuing without", zap.Error(err))
	} else {
		zl.Info("🍪 loaded linkedin cookies", zap.Int("count", len(cookies)))
	}

	browserCtx, err := manager.NewContext(cookies)
	if err != nil {
		return err
	}
	page, err := browserCtx.NewPage()
	if err != nil {
		return fmt.Errorf("failed to create page: %w", err)
	}

	if !browser.IsLoggedIn(page) {
		zl.Info("session cookies expired or absent, logging in")
		if err := browser.Login(page, cfg.LinkedInEmail, cfg.LinkedInPassword); err != nil {
			return fmt.Errorf("login failed: %w", err)
		}
	}
	zl.Info("✅ logged in to LinkedIn")

	res := resume.FromProfile(cfg.Profile)
	source := linkedin.NewSource(cfg, zl)

	if mode == "recruiters" || mode == "both" {
		if err := runRecruiters(ctx, cfg, zl, pilot, source, page, res); err != nil {
			return err
		}
	}
	if mode == "jobs" || mode == "both" {
		if err := runJobs(ctx, cfg, zl, pilot, source, page, res); err != nil {
			return err
		}
	}

	zl.Info("🏁 run finished")
	return nil
}

func openLedger(ctx context.Context, cfg *config.Config, zl *zap.Logger) (ledger.Store, error) {
	if cfg.DatabaseURL != "" {
		zl.Info("using postgres ledger")
		return ledger.NewPostgresStore(ctx, cfg.DatabaseURL)
	}
	zl.Info("using file ledger", zap.String("dir", cfg.StatePath))
	return ledger.NewFileStore(cfg.StatePath)
}

func buildApprover(cfg *config.Config, zl *zap.Logger) approval.Approver {
	if !cfg.Safety.HumanApprovalRequired {
		zl.Warn("human approval disabled, actions submit without confirmation")
		return approval.Auto{}
	}
	var a approval.Approver
	if cfg.TelegramToken != "" && cfg.TelegramChatID != 0 {
		tg, err := approval.NewTelegram(cfg.TelegramToken, cfg.TelegramChatID)
		if err != nil {
			zl.Warn("telegram approver unavailable, falling back to stdin", zap.Error(err))
		} else {
			a = tg
		}
	}
	if a == nil {
		a = approval.NewStdin(os.Stdin, os.Stdout)
	}
	return approval.WithTimeout(a, cfg.Safety.ApprovalTimeout())
}

func runRecruiters(ctx context.Context, cfg *config.Config, zl *zap.Logger, pilot *copilot.Copilot,
	source *linkedin.Source, page playwright.Page, res resume.Data) error {

	recruiters, err := source.SearchRecruiters(ctx, page)
	if err != nil {
		return fmt.Errorf("recruiter discovery failed: %w", err)
	}

	ranked := rank.RankRecruiters(recruiters, res)
	fresh, err := pilot.FilterNewRecruiters(ctx, ranked)
	if err != nil {
		return err
	}
	if len(fresh) > cfg.Search.MaxRecruiters {
		fresh = fresh[:cfg.Search.MaxRecruiters]
	}
	zl.Info("🎯 new recruiters to contact", zap.Int("count", len(fresh)))

	gen := messaging.NewGenerator(res)
	for _, r := range fresh {
		message := gen.Draft(r, nil)
		if err := gen.Validate(message); err != nil {
			zl.Warn("dropping invalid draft", zap.String("recruiter", r.Name), zap.Error(err))
			continue
		}
		fmt.Printf("\n--- Drafted Message for %s (%s) ---\n%s\n--- End Message ---\n\n", r.Name, r.Company, message)

		err := pilot.SendRecruiterMessage(ctx, r, func(ctx context.Context) error {
			return source.SendMessage(ctx, page, r.URL, message)
		})
		switch {
		case err == nil:
		case copilot.IsSkip(err):
			zl.Info("⏭️ skipped", zap.String("recruiter", r.Name), zap.String("reason", err.Error()))
			if errors.Is(err, copilot.ErrRateLimited) {
				return nil //done for today
			}
		case errors.Is(err, context.Canceled):
			return err
		default:
			zl.Error("message failed", zap.String("recruiter", r.Name), zap.Error(err))
		}
	}
	return nil
}

func runJobs(ctx context.Context, cfg *config.Config, zl *zap.Logger, pilot *copilot.Copilot,
	source *linkedin.Source, page playwright.Page, res resume.Data) error {

	jobs, err := source.SearchJobs(ctx, page)
	if err != nil {
		return fmt.Errorf("job discovery failed: %w", err)
	}

	fresh, err := pilot.FilterNewJobs(ctx, jobs)
	if err != nil {
		return err
	}
	zl.Info("🎯 new jobs to evaluate", zap.Int("count", len(fresh)))

	for _, j := range fresh {
		details, err := source.JobDetails(ctx, page, j.URL)
		if err != nil {
			zl.Warn("could not load job details", zap.String("url", j.URL), zap.Error(err))
			continue
		}
		if details.Title == "" {
			details.Title = j.Title
		}
		if details.Company == "" {
			details.Company = j.Company
		}

		apply, score := rank.ShouldApply(details.Description, res, cfg.Search.MinMatchScore)
		details.MatchScore = score
		zl.Info("job evaluated",
			zap.String("title", details.Title),
			zap.String("company", details.Company),
			zap.Float64("match_score", score),
			zap.Bool("should_apply", apply))
		if !apply {
			continue
		}
		if !details.EasyApply {
			zl.Info("⏭️ skipping, external application", zap.String("url", details.URL))
			continue
		}

		err = pilot.ApplyToJob(ctx, details, func(ctx context.Context) error {
			return source.Apply(ctx, page, details.URL)
		})
		switch {
		case err == nil:
		case copilot.IsSkip(err):
			zl.Info("⏭️ skipped", zap.String("job", details.Title), zap.String("reason", err.Error()))
			if errors.Is(err, copilot.ErrRateLimited) {
				return nil
			}
		case errors.Is(err, context.Canceled):
			return err
		default:
			zl.Error("application failed", zap.String("job", details.Title), zap.Error(err))
		}
	}
	return nil
}
