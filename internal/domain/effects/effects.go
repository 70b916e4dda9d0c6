// Package effects models the post-commit side effects (notifications and
// audit records) a workflow emits. Services return the effect list alongside
// their result; the caller runs it only after the primary mutation has
// committed. Sink failures are logged and never surfaced, so a failed
// notification cannot roll back or mask a committed state change.
package effects

import (
	"context"
	"log/slog"
)

const (
	NotificationLeave     = "leave"
	NotificationTimesheet = "timesheet"
	NotificationPayroll   = "payroll"
	NotificationSystem    = "system"
)

type NotificationSink interface {
	Notify(ctx context.Context, userID, ntype, title, message string) error
}

type AuditSink interface {
	Record(ctx context.Context, actorID, action, entity, entityID string, metadata map[string]any) error
}

type Notification struct {
	UserID  string
	Type    string
	Title   string
	Message string
}

type Audit struct {
	ActorID  string
	Action   string
	Entity   string
	EntityID string
	Metadata map[string]any
}

// Effect is either a notification or an audit record, never both.
type Effect struct {
	Notification *Notification
	Audit        *Audit
}

func Notify(userID, ntype, title, message string) Effect {
	return Effect{Notification: &Notification{UserID: userID, Type: ntype, Title: title, Message: message}}
}

func Record(actorID, action, entity, entityID string, metadata map[string]any) Effect {
	return Effect{Audit: &Audit{ActorID: actorID, Action: action, Entity: entity, EntityID: entityID, Metadata: metadata}}
}

type Runner struct {
	Notifications NotificationSink
	Audits        AuditSink
}

func NewRunner(notifications NotificationSink, audits AuditSink) *Runner {
	return &Runner{Notifications: notifications, Audits: audits}
}

// Run dispatches every effect, continuing past failures.
func (r *Runner) Run(ctx context.Context, fx []Effect) {
	if r == nil {
		return
	}
	for _, effect := range fx {
		switch {
		case effect.Notification != nil:
			if r.Notifications == nil {
				continue
			}
			n := effect.Notification
			if err := r.Notifications.Notify(ctx, n.UserID, n.Type, n.Title, n.Message); err != nil {
				slog.Warn("notification emit failed", "userId", n.UserID, "type", n.Type, "err", err)
			}
		case effect.Audit != nil:
			if r.Audits == nil {
				continue
			}
			a := effect.Audit
			if err := r.Audits.Record(ctx, a.ActorID, a.Action, a.Entity, a.EntityID, a.Metadata); err != nil {
				slog.Warn("audit emit failed", "action", a.Action, "entityId", a.EntityID, "err", err)
			}
		}
	}
}
