package notifications_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datainventdev-eng/hr-management/internal/domain/actor"
	"github.com/datainventdev-eng/hr-management/internal/domain/apperr"
	"github.com/datainventdev-eng/hr-management/internal/domain/notifications"
	"github.com/datainventdev-eng/hr-management/internal/platform/ids"
)

type recordingMailer struct {
	sent []string
	err  error
}

func (m *recordingMailer) Send(_ context.Context, to, _, _ string) error {
	m.sent = append(m.sent, to)
	return m.err
}

type staticEmails map[string]string

func (e staticEmails) EmailFor(_ context.Context, userID string) (string, error) {
	return e[userID], nil
}

func newService() (*notifications.Service, *notifications.MemoryStore) {
	store := notifications.NewMemoryStore()
	clock := func() time.Time { return time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC) }
	return notifications.NewService(store, ids.NewSequence("nt")).WithClock(clock), store
}

func TestNotifyPersistsAndLists(t *testing.T) {
	service, _ := newService()
	ctx := context.Background()

	require.NoError(t, service.Notify(ctx, "e1", "leave", "Leave approved", "Your request was approved"))
	require.NoError(t, service.Notify(ctx, "e2", "payroll", "Payslip available", "March payslip"))

	mine, err := service.List(ctx, actor.Employee("e1"), 0, 0)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "Leave approved", mine[0].Title)
	assert.False(t, mine[0].Read)
}

func TestMarkReadOwnRowsOnly(t *testing.T) {
	service, _ := newService()
	ctx := context.Background()

	require.NoError(t, service.Notify(ctx, "e1", "leave", "Leave approved", "ok"))
	mine, err := service.List(ctx, actor.Employee("e1"), 0, 0)
	require.NoError(t, err)
	require.Len(t, mine, 1)

	err = service.MarkRead(ctx, actor.Employee("e2"), mine[0].ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	require.NoError(t, service.MarkRead(ctx, actor.Employee("e1"), mine[0].ID))
	unread, err := service.CountUnread(ctx, actor.Employee("e1"))
	require.NoError(t, err)
	assert.Equal(t, 0, unread)
}

func TestNotifyMailFailureIsSwallowed(t *testing.T) {
	service, store := newService()
	mailer := &recordingMailer{err: errors.New("smtp down")}
	service.WithMailer(mailer, staticEmails{"e1": "e1@example.com"})

	require.NoError(t, service.Notify(context.Background(), "e1", "leave", "Leave approved", "ok"))
	assert.Equal(t, []string{"e1@example.com"}, mailer.sent)

	count, err := store.CountUnread(context.Background(), "e1")
	require.NoError(t, err)
	assert.Equal(t, 1, count, "in-app record persists despite mail failure")
}

func TestNotifySkipsMailWithoutAddress(t *testing.T) {
	service, _ := newService()
	mailer := &recordingMailer{}
	service.WithMailer(mailer, staticEmails{})

	require.NoError(t, service.Notify(context.Background(), "e1", "leave", "Leave approved", "ok"))
	assert.Empty(t, mailer.sent)
}
