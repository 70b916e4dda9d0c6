package effects

import (
	"context"
	"errors"
	"testing"
)

type recordingSink struct {
	notifies []Notification
	audits   []Audit
	fail     bool
}

func (s *recordingSink) Notify(_ context.Context, userID, ntype, title, message string) error {
	if s.fail {
		return errors.New("sink down")
	}
	s.notifies = append(s.notifies, Notification{UserID: userID, Type: ntype, Title: title, Message: message})
	return nil
}

func (s *recordingSink) Record(_ context.Context, actorID, action, entity, entityID string, metadata map[string]any) error {
	if s.fail {
		return errors.New("sink down")
	}
	s.audits = append(s.audits, Audit{ActorID: actorID, Action: action, Entity: entity, EntityID: entityID, Metadata: metadata})
	return nil
}

func TestRunnerDispatches(t *testing.T) {
	sink := &recordingSink{}
	runner := NewRunner(sink, sink)

	runner.Run(context.Background(), []Effect{
		Notify("m1", NotificationLeave, "Leave request", "pending approval"),
		Record("e1", "leave.request.submitted", "leave_request", "r1", map[string]any{"days": 3.0}),
	})

	if len(sink.notifies) != 1 || sink.notifies[0].UserID != "m1" {
		t.Fatalf("unexpected notifications: %+v", sink.notifies)
	}
	if len(sink.audits) != 1 || sink.audits[0].Action != "leave.request.submitted" {
		t.Fatalf("unexpected audits: %+v", sink.audits)
	}
}

func TestRunnerSwallowsSinkFailures(t *testing.T) {
	runner := NewRunner(&recordingSink{fail: true}, &recordingSink{fail: true})
	// Must not panic or propagate.
	runner.Run(context.Background(), []Effect{
		Notify("e1", NotificationPayroll, "Payslip", "available"),
		Record("hr1", "payroll.finalized", "payroll_entry", "e1:2026-02", nil),
	})
}

func TestRunnerNilSinks(t *testing.T) {
	var runner *Runner
	runner.Run(context.Background(), []Effect{Notify("e1", NotificationSystem, "t", "m")})

	NewRunner(nil, nil).Run(context.Background(), []Effect{
		Notify("e1", NotificationSystem, "t", "m"),
		Record("a", "b", "c", "d", nil),
	})
}
