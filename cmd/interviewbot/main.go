package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pavelanni/interviewbot/internal/bank"
	"github.com/pavelanni/interviewbot/internal/console"
	appI18n "github.com/pavelanni/interviewbot/internal/i18n"
	"github.com/pavelanni/interviewbot/internal/interview"
	"github.com/pavelanni/interviewbot/internal/model"
	"github.com/pavelanni/interviewbot/internal/report"
	"github.com/pavelanni/interviewbot/internal/scorer"
	"github.com/pavelanni/interviewbot/internal/session"
	"github.com/pavelanni/interviewbot/internal/store"
)

//go:generate templ generate -path ../../internal/report

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "interviewbot",
		Short: "Practice interview with keyword-based feedback",
	}

	run := runCmd()
	root.AddCommand(run, importCmd(), questionsCmd())

	// Make "run" the default when no subcommand is given.
	root.RunE = run.RunE

	// Register run flags on root so bare `interviewbot --shuffle` still works.
	root.Flags().AddFlagSet(run.Flags())

	return root
}

func runCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Start an interactive interview in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runInterview,
	}
	f := cmd.Flags()
	f.StringSliceP("questions", "q", nil, "Question files, JSON or YAML (repeatable; default: built-in bank)")
	f.String("db", "", "SQLite question library to draw from when no files are given")
	f.StringSliceP("per-section", "s", nil, "Section quota as Section=N (repeatable; N=0 takes the whole section)")
	f.Bool("shuffle", false, "Randomize question order within each section")
	f.Uint64("seed", 0, "Random seed for --shuffle (0 = random)")
	f.StringP("grading", "g", string(scorer.PresetStandard), "Grading preset (strict, standard, lenient)")
	f.Float64("threshold-good", -1, "Custom match ratio for Good (overrides --grading when set with --threshold-excellent)")
	f.Float64("threshold-excellent", -1, "Custom match ratio for Excellent")
	f.StringP("lang", "l", "en", "UI language (en, ru)")
	f.Bool("no-color", false, "Disable colored output")
	f.String("report-format", string(report.FormatText), "Report file format (text, json, html)")
	f.StringP("report-out", "o", "", "Write the final report to this file (- for stdout)")
	f.String("log-level", "info", "Log level (debug, info, warn, error)")
	f.String("log-format", "text", "Log format (text, json)")
	return cmd
}

func setupLogging(cmd *cobra.Command) {
	v := viperForCmd(cmd)

	var logLevel slog.Level
	switch strings.ToLower(v.GetString("log-level")) {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}
	handlerOpts := &slog.HandlerOptions{Level: logLevel}
	var logHandler slog.Handler
	switch strings.ToLower(v.GetString("log-format")) {
	case "json":
		logHandler = slog.NewJSONHandler(os.Stderr, handlerOpts)
	default:
		logHandler = slog.NewTextHandler(os.Stderr, handlerOpts)
	}
	slog.SetDefault(slog.New(logHandler))
}

// viperForCmd binds a command's flags and environment to a fresh viper instance.
func viperForCmd(cmd *cobra.Command) *viper.Viper {
	v := viper.New()
	_ = v.BindPFlags(cmd.Flags())

	v.SetEnvPrefix("INTERVIEWBOT")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetConfigName("interviewbot")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/interviewbot")
	v.AddConfigPath("/etc/interviewbot")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			slog.Warn("error reading config file", "error", err)
		}
	} else {
		slog.Debug("loaded config file", "path", v.ConfigFileUsed())
	}

	return v
}

func runInterview(cmd *cobra.Command, _ []string) error {
	setupLogging(cmd)
	v := viperForCmd(cmd)
	ctx := cmd.Context()

	cfg := model.InterviewConfig{
		Quota:   v.GetStringSlice("per-section"),
		Shuffle: v.GetBool("shuffle"),
		Seed:    v.GetUint64("seed"),
		Grading: strings.ToLower(strings.TrimSpace(v.GetString("grading"))),
		Lang:    v.GetString("lang"),
		NoColor: v.GetBool("no-color") || os.Getenv("NO_COLOR") != "",
		Format:  v.GetString("report-format"),
		Output:  v.GetString("report-out"),
	}

	// Fail fast on bad flags before the interview starts.
	format, err := report.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}
	quota, err := bank.ParseQuota(cfg.Quota)
	if err != nil {
		return fmt.Errorf("parse --per-section: %w", err)
	}
	sc, err := newScorer(cfg.Grading, v.GetFloat64("threshold-good"), v.GetFloat64("threshold-excellent"))
	if err != nil {
		return err
	}

	if err := appI18n.Init(cfg.Lang); err != nil {
		return fmt.Errorf("init i18n: %w", err)
	}
	ctx = appI18n.WithLang(ctx, cfg.Lang)

	all, err := loadBank(ctx, v.GetStringSlice("questions"), v.GetString("db"))
	if err != nil {
		return fmt.Errorf("load questions: %w", err)
	}

	var rng *rand.Rand
	if cfg.Shuffle {
		seed := cfg.Seed
		if seed == 0 {
			seed = rand.Uint64()
		}
		slog.Debug("shuffling questions", "seed", seed)
		rng = rand.New(rand.NewPCG(seed, seed))
	}
	questions, err := bank.Select(all, quota, rng)
	if err != nil {
		return fmt.Errorf("select questions: %w", err)
	}

	nav, err := session.New(questions, sc)
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}

	out := cmd.OutOrStdout()
	con := console.New(cmd.InOrStdin(), out, cfg.NoColor)
	if err := con.Welcome(ctx, nav.Len()); err != nil {
		return err
	}

	th := sc.Thresholds()
	slog.Debug("interview config",
		"questions", nav.Len(),
		"grading", sc.Preset(),
		"good", th.Good,
		"excellent", th.Excellent,
		"lang", cfg.Lang,
		"shuffle", cfg.Shuffle,
		"report_format", format,
	)

	rep, err := interview.Run(ctx, nav, con)
	if errors.Is(err, context.Canceled) {
		slog.Info("interview interrupted", "session", nav.ID())
		fmt.Fprintln(out, "\n"+appI18n.T(ctx, "Goodbye"))
		return nil
	}
	if err != nil {
		return err
	}
	if rep == nil {
		fmt.Fprintln(out, appI18n.T(ctx, "Goodbye"))
		return nil
	}
	return writeReport(ctx, out, *rep, format, cfg.Output)
}

// newScorer builds a scorer from a preset name, or from custom thresholds
// when both are non-negative. An unknown preset falls back to standard.
func newScorer(preset string, good, excellent float64) (*scorer.Scorer, error) {
	if good >= 0 && excellent >= 0 {
		sc, err := scorer.NewWithThresholds(scorer.Thresholds{Good: good, Excellent: excellent})
		if err != nil {
			return nil, fmt.Errorf("custom thresholds: %w", err)
		}
		return sc, nil
	}
	if !scorer.IsValidPreset(preset) {
		slog.Warn("invalid grading preset, using standard", "grading", preset)
		preset = string(scorer.PresetStandard)
	}
	return scorer.New(scorer.Preset(preset))
}

// loadBank returns questions from files if any are given, then from the
// SQLite library if it has questions, then the built-in bank.
func loadBank(ctx context.Context, paths []string, dbPath string) ([]model.Question, error) {
	if len(paths) > 0 {
		return bank.LoadFiles(ctx, paths)
	}
	if dbPath != "" {
		db, err := store.New(dbPath)
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}
		defer db.Close()
		qs, err := db.ListQuestions()
		if err != nil {
			return nil, fmt.Errorf("list questions: %w", err)
		}
		if len(qs) > 0 {
			slog.Debug("using question library", "db", dbPath, "count", len(qs))
			return qs, nil
		}
		slog.Warn("question library is empty, using built-in questions", "db", dbPath)
	}
	return bank.Default()
}

// writeReport writes the report to outPath, or to stdout when outPath is "-".
func writeReport(ctx context.Context, stdout io.Writer, rep model.Report, format report.Format, outPath string) error {
	if outPath == "" {
		return nil
	}
	w := stdout
	if outPath != "-" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("create report file: %w", err)
		}
		defer f.Close()
		w = f
	}
	if err := report.Write(ctx, w, format, rep); err != nil {
		return err
	}
	if outPath != "-" {
		slog.Info("report written", "path", outPath, "format", format)
	}
	return nil
}
