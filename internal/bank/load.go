package bank

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/pavelanni/interviewbot/internal/model"
)

// Parse decodes a question file. The format is chosen by the file extension:
// .yaml and .yml are YAML, anything else is JSON.
func Parse(name string, data []byte) ([]model.QuestionImport, error) {
	var imports []model.QuestionImport
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &imports); err != nil {
			return nil, fmt.Errorf("parse YAML %s: %w", name, err)
		}
	default:
		if err := json.Unmarshal(data, &imports); err != nil {
			return nil, fmt.Errorf("parse JSON %s: %w", name, err)
		}
	}
	return imports, nil
}

// ReadFile reads and parses one question file. The raw bytes are returned
// too so callers can fingerprint the file.
func ReadFile(path string) ([]model.QuestionImport, []byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", path, err)
	}
	imports, err := Parse(path, data)
	if err != nil {
		return nil, nil, err
	}
	return imports, data, nil
}

// LoadFiles reads question files in parallel and returns their questions
// concatenated in path order.
func LoadFiles(ctx context.Context, paths []string) ([]model.Question, error) {
	if len(paths) == 0 {
		return nil, ErrNoQuestions
	}

	parsed := make([][]model.QuestionImport, len(paths))
	g, gCtx := errgroup.WithContext(ctx)
	for i, path := range paths {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			imports, _, err := ReadFile(path)
			if err != nil {
				return err
			}
			parsed[i] = imports
			slog.Debug("parsed question file", "path", path, "count", len(imports))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []model.QuestionImport
	for _, imports := range parsed {
		all = append(all, imports...)
	}
	return FromImports(all)
}
