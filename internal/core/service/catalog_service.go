package service

import (
	"strings"

	"github.com/moodify-shop/moodify/internal/core/domain"
)

// CatalogService serves the curated, hard-coded product and exercise sets.
// Records are copied out so callers can never mutate the catalog.
type CatalogService struct {
	products  []domain.Product
	exercises []domain.Exercise
}

func NewCatalogService() *CatalogService {
	return &CatalogService{products: catalogProducts, exercises: catalogExercises}
}

func (c *CatalogService) Moods() []domain.Mood { return domain.Moods() }

func (c *CatalogService) Products() []domain.Product {
	return append([]domain.Product(nil), c.products...)
}

// ByMood returns the products curated for a mood slug, empty for moods that
// carry exercises instead.
func (c *CatalogService) ByMood(slug string) []domain.Product {
	slug = strings.ToLower(strings.TrimSpace(slug))
	out := make([]domain.Product, 0, len(c.products))
	for _, p := range c.products {
		if p.Mood == slug {
			out = append(out, p)
		}
	}
	return out
}

func (c *CatalogService) ByID(id string) (domain.Product, bool) {
	norm := domain.NormalizeID(id)
	for _, p := range c.products {
		if p.ID == norm {
			return p, true
		}
	}
	return domain.Product{}, false
}

// ExercisesByMood returns the guided activities for a mood slug.
func (c *CatalogService) ExercisesByMood(slug string) []domain.Exercise {
	slug = strings.ToLower(strings.TrimSpace(slug))
	out := make([]domain.Exercise, 0, len(c.exercises))
	for _, e := range c.exercises {
		if e.Mood == slug {
			out = append(out, e)
		}
	}
	return out
}
