package notifications

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	created   []Notification
	emails    map[string]string
	emailErr  error
	createErr error
}

func (f *fakeStore) CreateNotification(_ context.Context, userID, ntype, title, body string) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, Notification{UserID: userID, Type: ntype, Title: title, Body: body})
	return nil
}

func (f *fakeStore) ListNotifications(_ context.Context, userID string, _, _ int) ([]Notification, error) {
	var out []Notification
	for _, item := range f.created {
		if item.UserID == userID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (f *fakeStore) CountUnread(_ context.Context, userID string) (int, error) {
	count := 0
	for _, item := range f.created {
		if item.UserID == userID && item.ReadAt == nil {
			count++
		}
	}
	return count, nil
}

func (f *fakeStore) MarkRead(_ context.Context, userID, _ string) error { return nil }

func (f *fakeStore) UserEmail(_ context.Context, userID string) (string, error) {
	if f.emailErr != nil {
		return "", f.emailErr
	}
	return f.emails[userID], nil
}

func (f *fakeStore) DeleteReadBefore(_ context.Context, _ time.Time) (int64, error) { return 0, nil }

type fakeMailer struct {
	sent []string
	err  error
}

func (f *fakeMailer) Send(_ context.Context, _, to, _, _ string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, to)
	return nil
}

func TestCreateStoresAndEmails(t *testing.T) {
	store := &fakeStore{emails: map[string]string{"u1": "u1@example.com"}}
	mailer := &fakeMailer{}
	svc := New(store, mailer, true, "desk@example.com")

	err := svc.Create(context.Background(), "u1", TypeTaskAssigned, "Task assigned", "details")
	require.NoError(t, err)
	require.Len(t, store.created, 1)
	assert.Equal(t, TypeTaskAssigned, store.created[0].Type)
	assert.Equal(t, []string{"u1@example.com"}, mailer.sent)
}

func TestCreateEmailFailureIsNotFatal(t *testing.T) {
	store := &fakeStore{emails: map[string]string{"u1": "u1@example.com"}}
	mailer := &fakeMailer{err: errors.New("smtp down")}
	svc := New(store, mailer, true, "desk@example.com")

	err := svc.Create(context.Background(), "u1", TypeReportReady, "Report ready", "")
	assert.NoError(t, err, "email delivery is best-effort")
	assert.Len(t, store.created, 1)
}

func TestCreateSkipsEmailWhenDisabled(t *testing.T) {
	store := &fakeStore{emails: map[string]string{"u1": "u1@example.com"}}
	mailer := &fakeMailer{}
	svc := New(store, mailer, false, "desk@example.com")

	require.NoError(t, svc.Create(context.Background(), "u1", TypeTaskCompleted, "Done", ""))
	assert.Empty(t, mailer.sent)
}

func TestCreatePropagatesStoreError(t *testing.T) {
	store := &fakeStore{createErr: errors.New("insert failed")}
	svc := New(store, nil, false, "")

	err := svc.Create(context.Background(), "u1", TypeTaskAssigned, "x", "")
	assert.Error(t, err)
}
