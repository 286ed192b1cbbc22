package notification

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leasegate/pkg/domain"
	dErrors "leasegate/pkg/domain-errors"
)

func newTestService() (*Service, *InMemoryStore) {
	store := NewInMemoryStore()
	return NewService(store, slog.New(slog.NewTextHandler(io.Discard, nil))), store
}

func seedNotification(t *testing.T, store *InMemoryStore, userID domain.UserID, typ Type) *Notification {
	t.Helper()
	n, err := New(userID, typ, "Lease signed", "Someone signed.", "/leases/x/signing", nil, time.Now())
	require.NoError(t, err)
	require.NoError(t, store.Create(context.Background(), n))
	return n
}

func TestListScopedToCaller(t *testing.T) {
	svc, store := newTestService()
	me := domain.NewUserID()
	other := domain.NewUserID()
	seedNotification(t, store, me, TypeLeaseSigned)
	seedNotification(t, store, other, TypeLeaseSigned)

	out, err := svc.List(context.Background(), domain.Caller{UserID: me, Role: domain.RoleTenant}, false)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, me, out[0].UserID)
}

func TestMarkReadAndUnreadFilter(t *testing.T) {
	svc, store := newTestService()
	me := domain.NewUserID()
	caller := domain.Caller{UserID: me, Role: domain.RoleTenant}
	a := seedNotification(t, store, me, TypeLeaseSigned)
	seedNotification(t, store, me, TypeSigningReminder)

	count, err := svc.UnreadCount(context.Background(), caller)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	require.NoError(t, svc.MarkRead(context.Background(), caller, a.ID))

	unread, err := svc.List(context.Background(), caller, true)
	require.NoError(t, err)
	require.Len(t, unread, 1)
	assert.Equal(t, TypeSigningReminder, unread[0].Type)

	count, err = svc.UnreadCount(context.Background(), caller)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestMarkReadEnforcesOwnership(t *testing.T) {
	svc, store := newTestService()
	owner := domain.NewUserID()
	n := seedNotification(t, store, owner, TypeLeaseSigned)

	err := svc.MarkRead(context.Background(), domain.Caller{UserID: domain.NewUserID(), Role: domain.RoleTenant}, n.ID)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound), "foreign notifications look like they do not exist")

	// The owner can still mark it.
	require.NoError(t, svc.MarkRead(context.Background(), domain.Caller{UserID: owner, Role: domain.RoleTenant}, n.ID))
}

func TestNewValidatesInvariants(t *testing.T) {
	_, err := New(domain.UserID{}, TypeLeaseSigned, "title", "", "", nil, time.Now())
	assert.Error(t, err, "recipient required")

	_, err = New(domain.NewUserID(), Type("bogus"), "title", "", "", nil, time.Now())
	assert.Error(t, err)

	_, err = New(domain.NewUserID(), TypeLeaseSigned, "", "", "", nil, time.Now())
	assert.Error(t, err)
}
