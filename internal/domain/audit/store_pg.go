package audit

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/datainventdev-eng/hr-management/internal/platform/querier"
)

type PGStore struct {
	DB querier.Querier
}

func NewPGStore(db querier.Querier) *PGStore {
	return &PGStore{DB: db}
}

func (s *PGStore) Create(ctx context.Context, event Event) error {
	var metadata []byte
	if event.Metadata != nil {
		payload, err := json.Marshal(event.Metadata)
		if err != nil {
			return err
		}
		metadata = payload
	}
	_, err := s.DB.Exec(ctx, `
    INSERT INTO audit_events (id, actor_id, action, entity_type, entity_id, metadata, created_at)
    VALUES ($1, $2, $3, $4, $5, $6, $7)
  `, event.ID, event.ActorID, event.Action, event.EntityType, event.EntityID, metadata, event.CreatedAt)
	return err
}

func (s *PGStore) List(ctx context.Context, filter Filter, limit, offset int) ([]Event, error) {
	query := `
    SELECT id, actor_id, action, entity_type, entity_id, metadata, created_at
    FROM audit_events
    WHERE 1=1`
	var args []any
	if filter.Action != "" {
		args = append(args, filter.Action)
		query += fmt.Sprintf(" AND action = $%d", len(args))
	}
	if filter.EntityType != "" {
		args = append(args, filter.EntityType)
		query += fmt.Sprintf(" AND entity_type = $%d", len(args))
	}
	if filter.ActorID != "" {
		args = append(args, filter.ActorID)
		query += fmt.Sprintf(" AND actor_id = $%d", len(args))
	}
	args = append(args, limit, offset)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var (
			event    Event
			metadata []byte
		)
		if err := rows.Scan(&event.ID, &event.ActorID, &event.Action, &event.EntityType, &event.EntityID, &metadata, &event.CreatedAt); err != nil {
			return nil, err
		}
		if len(metadata) > 0 {
			if err := json.Unmarshal(metadata, &event.Metadata); err != nil {
				return nil, err
			}
		}
		events = append(events, event)
	}
	return events, rows.Err()
}
