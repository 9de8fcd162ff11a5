package api

import (
	"context"
	"fmt"

	"github.com/bekzodm/sayohat/internal/cache"
	"github.com/bekzodm/sayohat/internal/model"
	"github.com/bekzodm/sayohat/internal/transport"
)

// DifficultyPayload is the wire shape of difficulty create/update bodies.
type DifficultyPayload struct {
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
}

// DifficultiesService is CRUD over /api/difficulties.
type DifficultiesService struct {
	t    *transport.Client
	mut  *cache.Mutator
	list *cache.Query[[]model.Difficulty]
}

func newDifficultiesService(t *transport.Client, store *cache.Store, mut *cache.Mutator) *DifficultiesService {
	s := &DifficultiesService{t: t, mut: mut}
	s.list = cache.NewQuery(store, cache.ListKey(ResourceDifficulties), s.fetchList)
	return s
}

// List returns all difficulty levels.
func (s *DifficultiesService) List(ctx context.Context) ([]model.Difficulty, error) {
	return s.list.Get(ctx)
}

// ListQuery exposes the coordinator for subscriptions.
func (s *DifficultiesService) ListQuery() *cache.Query[[]model.Difficulty] { return s.list }

func affectedDifficultyKeys(id int) []cache.Key {
	keys := []cache.Key{cache.ListKey(ResourceDifficulties)}
	if id != 0 {
		keys = append(keys, cache.DetailKey(ResourceDifficulties, fmt.Sprint(id)))
	}
	return keys
}

// Create adds a difficulty level.
func (s *DifficultiesService) Create(ctx context.Context, p DifficultyPayload) error {
	return s.mut.Run(ctx, cache.Mutation{
		Name:        "difficulties.create",
		Invalidates: affectedDifficultyKeys(0),
		Do: func(ctx context.Context) error {
			_, err := s.t.Post("/api/difficulties").Body(p).Send(ctx)
			return err
		},
	})
}

// Update patches a difficulty level.
func (s *DifficultiesService) Update(ctx context.Context, id int, p DifficultyPayload) error {
	return s.mut.Run(ctx, cache.Mutation{
		Name:        "difficulties.update",
		Invalidates: affectedDifficultyKeys(id),
		Do: func(ctx context.Context) error {
			_, err := s.t.Patch(fmt.Sprintf("/api/difficulties/%d", id)).Body(p).Send(ctx)
			return err
		},
	})
}

// Delete removes a difficulty level.
func (s *DifficultiesService) Delete(ctx context.Context, id int) error {
	return s.mut.Run(ctx, cache.Mutation{
		Name:        "difficulties.delete",
		Invalidates: affectedDifficultyKeys(id),
		Do: func(ctx context.Context) error {
			_, err := s.t.Delete(fmt.Sprintf("/api/difficulties/%d", id)).Send(ctx)
			return err
		},
	})
}

func (s *DifficultiesService) fetchList(ctx context.Context) ([]model.Difficulty, error) {
	resp, err := s.t.Get("/api/difficulties").Send(ctx)
	if err != nil {
		return nil, err
	}
	var difficulties []model.Difficulty
	if err := resp.JSON(&difficulties); err != nil {
		return nil, err
	}
	return difficulties, nil
}
