package main

// Must be first import - fixes Warp terminal delay before lipgloss loads
import _ "github.com/wahlandcase/attuned.standup/internal/termfix"

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/wahlandcase/attuned.standup/internal/app"
	"github.com/wahlandcase/attuned.standup/internal/config"
	"github.com/wahlandcase/attuned.standup/internal/editor"
	"github.com/wahlandcase/attuned.standup/internal/git"
	"github.com/wahlandcase/attuned.standup/internal/github"
	"github.com/wahlandcase/attuned.standup/internal/llm"
	"github.com/wahlandcase/attuned.standup/internal/models"
	"github.com/wahlandcase/attuned.standup/internal/slack"
	"github.com/wahlandcase/attuned.standup/internal/transcript"
	"github.com/wahlandcase/attuned.standup/internal/ui"
	"github.com/wahlandcase/attuned.standup/internal/update"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

// version is overridden at build time via -ldflags
var version = "dev"

var (
	repoFlag     string
	projectFlag  string
	webhookFlag  string
	dryRun       bool
	logLevelFlag string
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "attsup",
		Short:   "Create GitHub issues from a stand-up meeting transcript",
		Long:    "attsup turns a spoken or piped-in stand-up transcript into meeting minutes and tracked GitHub issues, optionally announced to Slack.",
		Version: version,
		RunE:    run,
	}

	rootCmd.Flags().StringVar(&repoFlag, "repo", "", "GitHub repository (owner/repo); detected from the origin remote when omitted")
	rootCmd.Flags().StringVar(&projectFlag, "project", "", "Project to add every created issue to")
	rootCmd.Flags().StringVar(&webhookFlag, "slack-webhook", "", "Slack Incoming Webhook URL for posting the minutes and issue list")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Simulate operations without making changes")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "info", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(updateCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	setupLogging()

	if !ui.SupportsColor() {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	// Best effort: AWS credentials and webhook URLs often live in .env
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if p, pathErr := config.Path(); pathErr == nil {
		log.Debug("config loaded", "path", p)
	}

	repo := repoFlag
	if repo == "" {
		repo, err = git.OriginRepo(".")
		if err != nil {
			return fmt.Errorf("no --repo given and origin remote not usable: %w", err)
		}
		log.Debug("detected repository from origin remote", "repo", repo)
	}

	if !dryRun {
		if err := github.CheckAuth(); err != nil {
			return err
		}
	}

	fmt.Println(ui.RenderBanner(dryRun))
	fmt.Println(ui.DimStyle.Render("repository: " + repo))
	fmt.Println()

	text, err := acquireTranscript(ctx, cfg)
	if err != nil {
		return err
	}
	if text == "" {
		return fmt.Errorf("transcript is empty")
	}

	llmClient, err := llm.NewClient(&cfg.LLM)
	if err != nil {
		return fmt.Errorf("failed to create llm client: %w", err)
	}

	log.Info("generating meeting minutes")
	summary, err := llmClient.SummarizeMeeting(ctx, text)
	if err != nil {
		log.Warn("minutes generation failed, falling back to raw transcript", "error", err)
		summary = llm.FallbackSummary(text)
	}

	fmt.Println(ui.Section("📝 議事録"))
	fmt.Println(summary)
	fmt.Println()

	log.Info("extracting tasks")
	tasks, err := llmClient.ExtractTasks(ctx, text)
	if err != nil {
		log.Warn("task extraction failed", "error", err)
		tasks = nil
	}

	webhook := webhookFlag
	if webhook == "" {
		webhook = cfg.Slack.WebhookURL
	}

	if len(tasks) == 0 {
		log.Info("no tasks extracted")
		notify(ctx, webhook, summary, nil)
		checkForUpdate(cfg)
		return nil
	}

	issues := make([]models.Issue, 0, len(tasks))
	for _, task := range tasks {
		issues = append(issues, task.ToIssue())
	}

	log.Info("opening editor", "issues", len(issues))
	edited, err := editor.Edit(issues, cfg.Editor.Command)
	if err != nil {
		return err
	}
	if len(edited) == 0 {
		log.Info("all issues removed during editing")
		notify(ctx, webhook, summary, nil)
		checkForUpdate(cfg)
		return nil
	}

	created := createIssues(repo, edited)

	fmt.Println(ui.Section(fmt.Sprintf("✅ 作成されたIssue (%d件)", len(created))))
	for i, issue := range created {
		fmt.Printf("  %d. %s\n", i+1, issue.URL)
	}
	fmt.Println()

	notify(ctx, webhook, summary, created)
	checkForUpdate(cfg)
	return nil
}

// acquireTranscript reads piped stdin, or runs a live recording session
// with the streaming transcriber behind a small TUI.
func acquireTranscript(ctx context.Context, cfg *config.Config) (string, error) {
	if transcript.IsPiped() {
		log.Debug("reading transcript from stdin")
		return transcript.ReadAll(os.Stdin)
	}

	session, err := transcript.NewStreamSession(ctx, &cfg.Transcribe)
	if err != nil {
		return "", fmt.Errorf("failed to start transcription session: %w", err)
	}

	p := tea.NewProgram(app.NewRecordModel(session))
	if _, err := p.Run(); err != nil {
		session.Stop()
		return "", fmt.Errorf("recording screen failed: %w", err)
	}

	text, err := session.Wait()
	if err != nil {
		return "", fmt.Errorf("transcription failed: %w", err)
	}
	return text, nil
}

// createIssues creates each issue through the gh CLI. A failing issue
// is logged and skipped; the remaining ones are still created.
func createIssues(repo string, issues []models.Issue) []models.CreatedIssue {
	var created []models.CreatedIssue
	for _, issue := range issues {
		if dryRun {
			log.Info("dry run: would create issue",
				"title", issue.Title,
				"assignees", issue.Assignees,
				"labels", issue.Labels,
			)
			continue
		}

		result, err := github.CreateIssue(repo, issue, projectFlag)
		if err != nil {
			log.Error("failed to create issue", "title", issue.Title, "error", err)
			continue
		}
		log.Info("issue created",
			"url", result.URL,
			"assignees", issue.Assignees,
			"labels", issue.Labels,
		)
		created = append(created, *result)
	}
	return created
}

// notify posts to Slack when a webhook is configured. Posting failures
// never fail the run; the issues already exist at this point.
func notify(ctx context.Context, webhook, summary string, created []models.CreatedIssue) {
	if webhook == "" {
		return
	}
	if dryRun {
		log.Info("dry run: would post summary to Slack", "issues", len(created))
		return
	}
	log.Info("posting to Slack")
	if err := slack.NewNotifier(webhook).PostSummary(ctx, summary, created); err != nil {
		log.Error("slack post failed", "error", err)
	}
}

// checkForUpdate runs the opportunistic daily release check.
func checkForUpdate(cfg *config.Config) {
	if !cfg.ShouldCheckForUpdate() {
		return
	}
	cfg.RecordUpdateCheck()
	if err := cfg.Save(); err != nil {
		log.Debug("failed to persist update check time", "error", err)
	}

	release, err := update.CheckForUpdate(version, cfg.Update.Repo)
	if err != nil || release == nil {
		return
	}
	if release.Version() == update.NormalizeVersion(cfg.Update.SkippedVersion) {
		return
	}
	fmt.Println(ui.WarnStyle.Render(
		fmt.Sprintf("新しいバージョン %s があります。`attsup update` で更新できます。", release.Version()),
	))
}

func updateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "update",
		Short: "Update attsup to the latest release",
		RunE: func(cmd *cobra.Command, args []string) error {
			setupLogging()

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			release, err := update.CheckForUpdate(version, cfg.Update.Repo)
			if err != nil {
				return err
			}
			if release == nil {
				fmt.Println("attsup is up to date")
				return nil
			}

			log.Info("downloading update", "version", release.Version())
			if err := release.Install(cfg.Update.Repo); err != nil {
				return err
			}
			fmt.Println(ui.SuccessStyle.Render("updated to " + release.Version()))
			return nil
		},
	}
}

func setupLogging() {
	log.SetReportTimestamp(false)
	if level, err := log.ParseLevel(logLevelFlag); err == nil {
		log.SetLevel(level)
	}
}
