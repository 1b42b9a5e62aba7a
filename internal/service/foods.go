package service

import (
	"context"
	"errors"
	"strings"

	"github.com/and161185/nutrilog/internal/errs"
	"github.com/and161185/nutrilog/internal/model"
	"github.com/and161185/nutrilog/internal/repository"
	"github.com/gofrs/uuid/v5"
)

// FoodProvider looks products up in an external food database. Implementations
// absorb every upstream failure: not found / empty results, never an error.
type FoodProvider interface {
	LookupByBarcode(ctx context.Context, code string) (*model.Food, bool)
	Search(ctx context.Context, query string, limit int) []model.Food
}

// FoodService resolves barcodes and text queries across the upstream database and the caller's custom foods.
type FoodService interface {
	// Barcode returns the upstream product, else the caller's custom food with that barcode.
	Barcode(ctx context.Context, userID uuid.UUID, code string) (model.FoodMatch, error)
	// Search returns the caller's matching custom foods followed by upstream matches.
	Search(ctx context.Context, userID uuid.UUID, query string, limit int) ([]model.FoodMatch, error)
}

type FoodServiceImpl struct {
	upstream FoodProvider
	custom   repository.CustomFoodRepository
}

// NewFoodService constructs FoodService.
func NewFoodService(upstream FoodProvider, custom repository.CustomFoodRepository) *FoodServiceImpl {
	return &FoodServiceImpl{upstream: upstream, custom: custom}
}

// DefaultSearchLimit applies when a search does not specify a limit.
const DefaultSearchLimit = 20

// Barcode validates the code and tries upstream first, then custom foods.
func (s *FoodServiceImpl) Barcode(ctx context.Context, userID uuid.UUID, code string) (model.FoodMatch, error) {
	if !ValidBarcode(code) {
		return model.FoodMatch{}, errs.Validation("Invalid barcode format.")
	}
	if f, ok := s.upstream.LookupByBarcode(ctx, code); ok {
		return model.FoodMatch{Source: model.SourceOpenFoodFacts, Food: *f}, nil
	}
	cf, err := s.custom.FindByBarcode(ctx, userID, code)
	if err != nil {
		return model.FoodMatch{}, err
	}
	return model.FoodMatch{Source: model.SourceCustomFood, Food: cf.Food()}, nil
}

// Search validates the query and merges custom and upstream results up to limit.
func (s *FoodServiceImpl) Search(ctx context.Context, userID uuid.UUID, query string, limit int) ([]model.FoodMatch, error) {
	query = strings.TrimSpace(query)
	if limit == 0 {
		limit = DefaultSearchLimit
	}
	var c checker
	c.text(query, 2, 100, "q")
	c.check(limit >= 1 && limit <= 50, "limit must be between 1 and 50.")
	if err := c.err(); err != nil {
		return nil, err
	}

	out := []model.FoodMatch{}
	custom, err := s.custom.Search(ctx, userID, query, limit)
	if err != nil && !errors.Is(err, errs.ErrNotFound) {
		return nil, err
	}
	for _, cf := range custom {
		out = append(out, model.FoodMatch{Source: model.SourceCustomFood, Food: cf.Food()})
	}
	if len(out) >= limit {
		return out[:limit], nil
	}
	for _, f := range s.upstream.Search(ctx, query, limit-len(out)) {
		out = append(out, model.FoodMatch{Source: model.SourceOpenFoodFacts, Food: f})
	}
	return out, nil
}
