package notifications

import (
	"context"
	"log/slog"
	"time"

	"github.com/datainventdev-eng/hr-management/internal/domain/actor"
	"github.com/datainventdev-eng/hr-management/internal/domain/apperr"
	"github.com/datainventdev-eng/hr-management/internal/platform/ids"
)

type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// EmailLookup resolves a user id to an email address. An empty address means
// the user cannot be mailed.
type EmailLookup interface {
	EmailFor(ctx context.Context, userID string) (string, error)
}

// Service persists in-app notifications and optionally mirrors them to
// email. It satisfies the workflows' notification sink.
type Service struct {
	store  StoreAPI
	ids    ids.Generator
	now    func() time.Time
	mailer Mailer
	emails EmailLookup
}

func NewService(store StoreAPI, gen ids.Generator) *Service {
	return &Service{store: store, ids: gen, now: time.Now}
}

// WithClock overrides the service clock; tests only.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// WithMailer enables the email mirror. Both the mailer and the lookup must
// be set for mail to go out.
func (s *Service) WithMailer(mailer Mailer, emails EmailLookup) *Service {
	s.mailer = mailer
	s.emails = emails
	return s
}

// Notify stores the notification and, when mail is configured, sends a copy.
// Mail failures are logged, never returned: the in-app record is the source
// of truth.
func (s *Service) Notify(ctx context.Context, userID, ntype, title, message string) error {
	n := Notification{
		ID:        s.ids.New(),
		UserID:    userID,
		Type:      ntype,
		Title:     title,
		Message:   message,
		CreatedAt: s.now().UTC(),
	}
	if err := s.store.Create(ctx, n); err != nil {
		return err
	}

	if s.mailer == nil || s.emails == nil {
		return nil
	}
	email, err := s.emails.EmailFor(ctx, userID)
	if err != nil {
		slog.Warn("notification email lookup failed", "userId", userID, "err", err)
		return nil
	}
	if email == "" {
		return nil
	}
	if err := s.mailer.Send(ctx, email, title, message); err != nil {
		slog.Warn("notification email send failed", "userId", userID, "err", err)
	}
	return nil
}

// List returns the caller's own notifications, newest first.
func (s *Service) List(ctx context.Context, who actor.Actor, limit, offset int) ([]Notification, error) {
	if who.SubjectID == "" {
		return nil, apperr.Forbidden("authenticated subject required")
	}
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.store.List(ctx, who.SubjectID, limit, offset)
}

func (s *Service) CountUnread(ctx context.Context, who actor.Actor) (int, error) {
	if who.SubjectID == "" {
		return 0, apperr.Forbidden("authenticated subject required")
	}
	return s.store.CountUnread(ctx, who.SubjectID)
}

// MarkRead only touches the caller's own rows; a foreign or unknown id is
// NotFound either way.
func (s *Service) MarkRead(ctx context.Context, who actor.Actor, notificationID string) error {
	if who.SubjectID == "" {
		return apperr.Forbidden("authenticated subject required")
	}
	ok, err := s.store.MarkRead(ctx, who.SubjectID, notificationID)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.NotFound("notification not found")
	}
	return nil
}
