package restaurants

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"eats-backend/internal/models"
	"eats-backend/internal/storage"
)

var lower = cases.Lower(language.Und)

// CategorySlug normalises a category name and derives its slug:
// " Korean BBQ " becomes ("korean bbq", "korean-bbq").
func CategorySlug(name string) (normalized, slug string) {
	normalized = lower.String(strings.TrimSpace(name))
	return normalized, strings.ReplaceAll(normalized, " ", "-")
}

// getOrCreateCategory returns the category matching name, creating it when
// no category has the same slug.
func getOrCreateCategory(ctx context.Context, repo storage.CategoryRepository, name string) (*models.Category, error) {
	normalized, slug := CategorySlug(name)

	c, err := repo.FindBySlug(ctx, slug)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("find category %q: %w", slug, err)
	}

	c = &models.Category{Name: normalized, Slug: slug}
	if err := repo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("create category %q: %w", slug, err)
	}
	return c, nil
}
