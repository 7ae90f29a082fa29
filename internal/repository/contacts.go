package repository

import (
	"context"
	"sync"
	"time"

	apperr "quoteboard/internal/errors"
	"quoteboard/internal/ids"
	"quoteboard/internal/logging"
	"quoteboard/internal/models"
	"quoteboard/internal/validation"
)

// Contacts is the append-only log of contact form submissions.
type Contacts struct {
	mu    sync.Mutex
	store Collection[models.Contact]
	ids   ids.Generator
	now   func() time.Time
	log   logging.Logger
}

func NewContacts(store Collection[models.Contact], gen ids.Generator, now func() time.Time, log logging.Logger) *Contacts {
	if gen == nil {
		gen = ids.Default
	}
	if now == nil {
		now = time.Now
	}
	if log == nil {
		log = logging.Nop()
	}
	return &Contacts{store: store, ids: gen, now: now, log: log.WithComponent("contacts")}
}

// Submit validates a submission and appends it to the log.
func (r *Contacts) Submit(ctx context.Context, name, email, message string) (models.Contact, error) {
	res := validation.ValidateContact(name, email, message)
	if !res.Valid {
		return models.Contact{}, apperr.Validation("contacts.submit", res.Errors)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	contacts, err := r.store.Load()
	if err != nil {
		return models.Contact{}, err
	}
	c := models.Contact{
		Name:      res.Data.Name,
		Email:     res.Data.Email,
		Message:   res.Data.Message,
		ID:        r.ids.New(),
		Timestamp: r.now().UTC().Truncate(time.Millisecond),
	}
	if err := r.store.Save(append(contacts, c)); err != nil {
		return models.Contact{}, err
	}

	r.log.Info(ctx, "contact received", "id", c.ID)
	return c, nil
}

// List returns every submission in arrival order.
func (r *Contacts) List(ctx context.Context) ([]models.Contact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.store.Load()
}
