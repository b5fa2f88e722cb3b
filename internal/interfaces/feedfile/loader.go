// Package feedfile reads provider feed batches from disk. A feed file is a
// single JSON document holding every record kind one sync run ingests for
// one source.
package feedfile

import (
	"context"
	"fmt"
	"os"

	"github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"github.com/courtdata/courtsync/internal/provider"
	"github.com/courtdata/courtsync/internal/usecase"
)

type document struct {
	Source    string                       `json:"source" validate:"required"`
	Seasons   []provider.Record            `json:"seasons"`
	Teams     []provider.Record            `json:"teams"`
	Rosters   map[string][]provider.Record `json:"rosters"`
	Games     []provider.Record            `json:"games"`
	BoxScores map[string][]provider.Record `json:"box_scores"`
	Events    map[string][]provider.Record `json:"events"`
}

type Loader struct {
	validator *validator.Validate
}

func NewLoader() *Loader {
	return &Loader{validator: validator.New()}
}

// Load decodes and validates one feed file, returning the source name and
// the feed ready for ingestion.
func (l *Loader) Load(ctx context.Context, path string) (string, usecase.Feed, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", usecase.Feed{}, fmt.Errorf("read feed file: %w", err)
	}

	var doc document
	if err := sonic.Unmarshal(raw, &doc); err != nil {
		return "", usecase.Feed{}, fmt.Errorf("decode feed file %s: %w", path, err)
	}

	if err := l.validator.StructCtx(ctx, doc); err != nil {
		return "", usecase.Feed{}, fmt.Errorf("%w: feed file %s: %v", usecase.ErrInvalidInput, path, err)
	}

	return doc.Source, usecase.Feed{
		Seasons:   doc.Seasons,
		Teams:     doc.Teams,
		Rosters:   doc.Rosters,
		Games:     doc.Games,
		BoxScores: doc.BoxScores,
		Events:    doc.Events,
	}, nil
}
