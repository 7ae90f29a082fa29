// Package repository holds the post collection and the contact log. Neither
// keeps state between calls: every operation reloads the collection from its
// store, so edits made to the files by another process are picked up.
package repository

import (
	"context"
	"sync"

	apperr "quoteboard/internal/errors"
	"quoteboard/internal/ids"
	"quoteboard/internal/logging"
	"quoteboard/internal/models"
	"quoteboard/internal/validation"
)

// Collection is whole-collection storage for one record type.
type Collection[T any] interface {
	Load() ([]T, error)
	Save(items []T) error
}

// SeedPosts returns the posts a fresh board starts with, each with a new id.
func SeedPosts(gen ids.Generator) []models.Post {
	return []models.Post{
		{
			ID:       gen.New(),
			Username: "Sahib",
			Shayri:   "Life may knock you down, but every fall is a setup for a stronger comeback. Keep rising!",
		},
		{
			ID:       gen.New(),
			Username: "Sumit Rajput",
			Shayri:   "You were not born to give up. Even the darkest night ends with sunrise.",
		},
		{
			ID:       gen.New(),
			Username: "Adit",
			Shayri:   "Success is built one step at a time. Don't stop just because it's hard — that's when it matters most.",
		},
		{
			ID:       gen.New(),
			Username: "Ansh",
			Shayri:   "Your journey is yours alone. Don't let others dim the fire you're meant to ignite.",
		},
	}
}

// Posts is the post repository. The mutex serializes reload-mutate-save
// sequences inside this process only.
type Posts struct {
	mu    sync.Mutex
	store Collection[models.Post]
	ids   ids.Generator
	log   logging.Logger
}

func NewPosts(store Collection[models.Post], gen ids.Generator, log logging.Logger) *Posts {
	if gen == nil {
		gen = ids.Default
	}
	if log == nil {
		log = logging.Nop()
	}
	return &Posts{store: store, ids: gen, log: log.WithComponent("posts")}
}

// Init writes the seed collection when the posts file does not exist yet, so
// the seed ids stay stable across requests. Stores that cannot report
// existence are left alone.
func (r *Posts) Init(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.store.(interface{ Exists() bool })
	if !ok || s.Exists() {
		return nil
	}
	posts, err := r.store.Load()
	if err != nil {
		return err
	}
	if err := r.store.Save(posts); err != nil {
		return err
	}
	r.log.Info(ctx, "seeded posts", "count", len(posts))
	return nil
}

// List returns every post in insertion order.
func (r *Posts) List(ctx context.Context) ([]models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.store.Load()
}

// Get returns the post with the given id.
func (r *Posts) Get(ctx context.Context, id string) (models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	posts, err := r.store.Load()
	if err != nil {
		return models.Post{}, err
	}
	if i := indexOf(posts, id); i >= 0 {
		return posts[i], nil
	}
	return models.Post{}, apperr.NotFound("posts.get", id)
}

// Create validates the input and appends a new post.
func (r *Posts) Create(ctx context.Context, username, shayri string) (models.Post, error) {
	res := validation.ValidatePost(username, shayri)
	if !res.Valid {
		return models.Post{}, apperr.Validation("posts.create", res.Errors)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	posts, err := r.store.Load()
	if err != nil {
		return models.Post{}, err
	}
	post := models.Post{
		ID:       r.ids.New(),
		Username: res.Data.Username,
		Shayri:   res.Data.Shayri,
	}
	posts = append(posts, post)
	if err := r.store.Save(posts); err != nil {
		return models.Post{}, err
	}

	r.log.Info(ctx, "post created", "id", post.ID)
	return post, nil
}

// UpdateShayri replaces the body of an existing post. When the new body is
// rejected the current record is returned alongside the validation error so
// the edit form can be shown again.
func (r *Posts) UpdateShayri(ctx context.Context, id, shayri string) (models.Post, error) {
	res := validation.ValidatePostEdit(shayri)

	r.mu.Lock()
	defer r.mu.Unlock()

	posts, err := r.store.Load()
	if err != nil {
		return models.Post{}, err
	}
	i := indexOf(posts, id)
	if i < 0 {
		return models.Post{}, apperr.NotFound("posts.update", id)
	}
	if !res.Valid {
		return posts[i], apperr.Validation("posts.update", res.Errors)
	}

	posts[i].Shayri = res.Data
	if err := r.store.Save(posts); err != nil {
		return models.Post{}, err
	}

	r.log.Info(ctx, "post updated", "id", id)
	return posts[i], nil
}

// Delete removes the post with the given id.
func (r *Posts) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	posts, err := r.store.Load()
	if err != nil {
		return err
	}
	kept := make([]models.Post, 0, len(posts))
	for _, p := range posts {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	if len(kept) == len(posts) {
		return apperr.NotFound("posts.delete", id)
	}
	if err := r.store.Save(kept); err != nil {
		return err
	}

	r.log.Info(ctx, "post deleted", "id", id)
	return nil
}

func indexOf(posts []models.Post, id string) int {
	for i, p := range posts {
		if p.ID == id {
			return i
		}
	}
	return -1
}
