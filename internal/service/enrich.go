package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"smoothies/internal/model"
)

type ItemKind string

const (
	ItemRendered ItemKind = "rendered"
	ItemWarning  ItemKind = "warning"
	ItemError    ItemKind = "error"
)

type ItemResult struct {
	Fruit     string   `json:"fruit"`
	SearchKey string   `json:"search_key,omitempty"`
	Kind      ItemKind `json:"kind"`
	Message   string   `json:"message,omitempty"`
	View      *View    `json:"view,omitempty"`
	Err       error    `json:"-"`
}

type Enricher struct {
	fetcher NutritionFetcher
	logger  *zap.Logger
}

func NewEnricher(fetcher NutritionFetcher, logger *zap.Logger) *Enricher {
	return &Enricher{fetcher: fetcher, logger: logger}
}

// Enrich looks up every selected fruit in order, one request at a time.
// A failing item yields a warning or error result and the remaining items
// are still processed.
func (e *Enricher) Enrich(ctx context.Context, catalog *model.Catalog, sel model.Selection) []ItemResult {
	results := make([]ItemResult, 0, sel.Len())
	for _, fruit := range sel.Names() {
		results = append(results, e.enrichOne(ctx, catalog, fruit))
	}
	return results
}

func (e *Enricher) enrichOne(ctx context.Context, catalog *model.Catalog, fruit string) ItemResult {
	searchKey, ok := catalog.Lookup(fruit)
	if !ok {
		err := &FruitError{Fruit: fruit, Err: ErrLookupKeyMissing}
		e.logger.Debug("fruit has no search key", zap.String("fruit", fruit))
		return ItemResult{
			Fruit:   fruit,
			Kind:    ItemWarning,
			Message: fmt.Sprintf("No search key found for %s.", fruit),
			Err:     err,
		}
	}

	data, err := e.fetcher.Get(ctx, searchKey)
	if err != nil {
		e.logger.Debug("nutrition lookup failed",
			zap.String("fruit", fruit),
			zap.String("search_on", searchKey),
			zap.Error(err))
		return ItemResult{
			Fruit:     fruit,
			SearchKey: searchKey,
			Kind:      ItemError,
			Message:   lookupMessage(fruit, err),
			Err:       &FruitError{Fruit: fruit, Err: err},
		}
	}

	view := BuildView(data)
	return ItemResult{
		Fruit:     fruit,
		SearchKey: searchKey,
		Kind:      ItemRendered,
		View:      &view,
	}
}

func lookupMessage(fruit string, err error) string {
	switch {
	case errors.Is(err, ErrLookupParse):
		return fmt.Sprintf("Nutrition data for %s could not be read: %v", fruit, err)
	default:
		return fmt.Sprintf("Failed to fetch nutrition for %s: %v", fruit, err)
	}
}
