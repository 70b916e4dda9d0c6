// Package audit keeps an append-only trail of workflow actions. Events are
// written through the post-commit effect runner, so a lost audit row never
// blocks the action it describes.
package audit

import (
	"context"
	"time"

	"github.com/datainventdev-eng/hr-management/internal/domain/actor"
	"github.com/datainventdev-eng/hr-management/internal/domain/apperr"
	"github.com/datainventdev-eng/hr-management/internal/platform/ids"
)

type Service struct {
	store StoreAPI
	ids   ids.Generator
	now   func() time.Time
}

func NewService(store StoreAPI, gen ids.Generator) *Service {
	return &Service{store: store, ids: gen, now: time.Now}
}

// WithClock overrides the service clock; tests only.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Record satisfies the workflows' audit sink.
func (s *Service) Record(ctx context.Context, actorID, action, entity, entityID string, metadata map[string]any) error {
	return s.store.Create(ctx, Event{
		ID:         s.ids.New(),
		ActorID:    actorID,
		Action:     action,
		EntityType: entity,
		EntityID:   entityID,
		Metadata:   metadata,
		CreatedAt:  s.now().UTC(),
	})
}

// List is hr_admin only.
func (s *Service) List(ctx context.Context, who actor.Actor, filter Filter, limit, offset int) ([]Event, error) {
	if !who.IsHRAdmin() {
		return nil, apperr.Forbidden("hr_admin role required")
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.store.List(ctx, filter, limit, offset)
}
