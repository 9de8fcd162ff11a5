package api

import (
	"context"
	"fmt"

	"github.com/bekzodm/sayohat/internal/cache"
	"github.com/bekzodm/sayohat/internal/model"
	"github.com/bekzodm/sayohat/internal/transport"
)

// CategoryPayload is the wire shape of category create/update bodies.
type CategoryPayload struct {
	Name        string `json:"name,omitempty"`
	CategoryURL string `json:"categoryUrl,omitempty"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
}

// CategoriesService is CRUD over /api/categories.
type CategoriesService struct {
	t    *transport.Client
	mut  *cache.Mutator
	list *cache.Query[[]model.Category]
}

func newCategoriesService(t *transport.Client, store *cache.Store, mut *cache.Mutator) *CategoriesService {
	s := &CategoriesService{t: t, mut: mut}
	s.list = cache.NewQuery(store, cache.ListKey(ResourceCategories), s.fetchList)
	return s
}

// List returns all categories.
func (s *CategoriesService) List(ctx context.Context) ([]model.Category, error) {
	return s.list.Get(ctx)
}

// ListQuery exposes the coordinator for subscriptions.
func (s *CategoriesService) ListQuery() *cache.Query[[]model.Category] { return s.list }

// GetByURL resolves a category by its slug, bypassing the cache — the
// public site uses slugs and this lookup is rare in the dashboard.
func (s *CategoriesService) GetByURL(ctx context.Context, categoryURL string) (model.Category, error) {
	resp, err := s.t.Get("/api/categories/url/" + categoryURL).Send(ctx)
	if err != nil {
		return model.Category{}, err
	}
	var c model.Category
	if err := resp.JSON(&c); err != nil {
		return model.Category{}, err
	}
	return c, nil
}

func affectedCategoryKeys(id int) []cache.Key {
	keys := []cache.Key{cache.ListKey(ResourceCategories)}
	if id != 0 {
		keys = append(keys, cache.DetailKey(ResourceCategories, fmt.Sprint(id)))
	}
	return keys
}

// Create adds a category.
func (s *CategoriesService) Create(ctx context.Context, p CategoryPayload) error {
	return s.mut.Run(ctx, cache.Mutation{
		Name:        "categories.create",
		Invalidates: affectedCategoryKeys(0),
		Do: func(ctx context.Context) error {
			_, err := s.t.Post("/api/categories").Body(p).Send(ctx)
			return err
		},
	})
}

// Update patches a category.
func (s *CategoriesService) Update(ctx context.Context, id int, p CategoryPayload) error {
	return s.mut.Run(ctx, cache.Mutation{
		Name:        "categories.update",
		Invalidates: affectedCategoryKeys(id),
		Do: func(ctx context.Context) error {
			_, err := s.t.Patch(fmt.Sprintf("/api/categories/%d", id)).Body(p).Send(ctx)
			return err
		},
	})
}

// Delete removes a category.
func (s *CategoriesService) Delete(ctx context.Context, id int) error {
	return s.mut.Run(ctx, cache.Mutation{
		Name:        "categories.delete",
		Invalidates: affectedCategoryKeys(id),
		Do: func(ctx context.Context) error {
			_, err := s.t.Delete(fmt.Sprintf("/api/categories/%d", id)).Send(ctx)
			return err
		},
	})
}

func (s *CategoriesService) fetchList(ctx context.Context) ([]model.Category, error) {
	resp, err := s.t.Get("/api/categories").Send(ctx)
	if err != nil {
		return nil, err
	}
	var categories []model.Category
	if err := resp.JSON(&categories); err != nil {
		return nil, err
	}
	return categories, nil
}
