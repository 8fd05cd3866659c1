package main

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/pavelanni/interviewbot/internal/bank"
	"github.com/pavelanni/interviewbot/internal/model"
	"github.com/pavelanni/interviewbot/internal/store"
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import FILE...",
		Short: "Import question files into the SQLite question library",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runImport,
	}
	f := cmd.Flags()
	f.String("db", "interviewbot.db", "SQLite database path")
	f.String("log-level", "info", "Log level (debug, info, warn, error)")
	f.String("log-format", "text", "Log format (text, json)")
	return cmd
}

func questionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "questions",
		Short: "List sections and question counts",
		Args:  cobra.NoArgs,
		RunE:  runQuestions,
	}
	f := cmd.Flags()
	f.StringSliceP("questions", "q", nil, "Question files, JSON or YAML (repeatable; default: built-in bank)")
	f.String("db", "", "SQLite question library")
	f.BoolP("verbose", "v", false, "Print every question")
	f.String("log-level", "info", "Log level (debug, info, warn, error)")
	f.String("log-format", "text", "Log format (text, json)")
	return cmd
}

func runImport(cmd *cobra.Command, args []string) error {
	setupLogging(cmd)
	v := viperForCmd(cmd)

	db, err := store.New(v.GetString("db"))
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	n, err := importFiles(db, args)
	if err != nil {
		return err
	}
	total, err := db.QuestionCount()
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "imported %d questions, library has %d\n", n, total)
	return nil
}

// importFiles loads question files into the library and returns the number
// of questions added. Files imported before are skipped: unchanged ones
// silently, changed ones with a warning. Questions already in the library
// are skipped too.
func importFiles(db *store.Store, paths []string) (int, error) {
	added := 0
	for _, path := range paths {
		imports, data, err := bank.ReadFile(path)
		if err != nil {
			return added, err
		}

		hash := sha256sum(data)
		storedHash, err := db.GetImportedFileHash(path)
		if err != nil {
			return added, fmt.Errorf("check import status for %s: %w", path, err)
		}
		if storedHash == hash {
			slog.Info("questions file unchanged, skipping", "path", path)
			continue
		}
		if storedHash != "" {
			slog.Warn("questions file changed since last import, skipping to keep question IDs stable",
				"path", path)
			continue
		}

		questions, err := bank.FromImports(imports)
		if err != nil {
			return added, fmt.Errorf("validate %s: %w", path, err)
		}
		n, err := db.ImportQuestions(path, hash, questions)
		if err != nil {
			return added, fmt.Errorf("import %s: %w", path, err)
		}
		added += n
	}
	return added, nil
}

func sha256sum(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}

func runQuestions(cmd *cobra.Command, _ []string) error {
	setupLogging(cmd)
	v := viperForCmd(cmd)
	out := cmd.OutOrStdout()
	verbose := v.GetBool("verbose")

	paths := v.GetStringSlice("questions")
	if dbPath := v.GetString("db"); dbPath != "" && len(paths) == 0 {
		db, err := store.New(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer db.Close()
		return printLibrary(out, db, verbose)
	}

	questions, err := loadBank(cmd.Context(), paths, "")
	if err != nil {
		return fmt.Errorf("load questions: %w", err)
	}
	return printQuestions(out, questions, verbose)
}

func printQuestions(w io.Writer, questions []model.Question, verbose bool) error {
	for _, s := range bank.Sections(questions) {
		var inSection []model.Question
		for _, q := range questions {
			if q.Section == s {
				inSection = append(inSection, q)
			}
		}
		if err := printSection(w, s, inSection, verbose); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "total: %d\n", len(questions))
	return err
}

// printLibrary lists the sections stored in the SQLite library.
func printLibrary(w io.Writer, db *store.Store, verbose bool) error {
	sections, err := db.ListSections()
	if err != nil {
		return fmt.Errorf("list sections: %w", err)
	}
	for _, s := range sections {
		questions, err := db.ListQuestionsBySection(s)
		if err != nil {
			return fmt.Errorf("list section %s: %w", s, err)
		}
		if err := printSection(w, s, questions, verbose); err != nil {
			return err
		}
	}
	total, err := db.QuestionCount()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "total: %d\n", total)
	return err
}

func printSection(w io.Writer, section string, questions []model.Question, verbose bool) error {
	if _, err := fmt.Fprintf(w, "%s: %d\n", section, len(questions)); err != nil {
		return err
	}
	if !verbose {
		return nil
	}
	for _, q := range questions {
		if _, err := fmt.Fprintf(w, "  [%s] %s (%d keywords)\n", q.ID, q.Text, len(q.Keywords)); err != nil {
			return err
		}
	}
	return nil
}
