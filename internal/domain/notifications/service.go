package notifications

import (
	"context"
	"log/slog"
)

const (
	TypeTaskAssigned  = "task_assigned"
	TypeTaskCompleted = "task_completed"
	TypeReportReady   = "report_ready"
)

type Mailer interface {
	Send(ctx context.Context, from, to, subject, body string) error
}

type Service struct {
	store     StoreAPI
	Mailer    Mailer
	EmailFrom string
	EmailOn   bool
}

func New(store StoreAPI, mailer Mailer, emailOn bool, emailFrom string) *Service {
	return &Service{store: store, Mailer: mailer, EmailOn: emailOn, EmailFrom: emailFrom}
}

// Create writes the in-app notification; email delivery is best-effort and
// never fails the caller.
func (s *Service) Create(ctx context.Context, userID, ntype, title, body string) error {
	if err := s.store.CreateNotification(ctx, userID, ntype, title, body); err != nil {
		return err
	}

	if s.Mailer == nil || !s.EmailOn {
		return nil
	}

	email, err := s.store.UserEmail(ctx, userID)
	if err != nil {
		slog.Warn("notification email lookup failed", "err", err)
		return nil
	}
	if email == "" {
		return nil
	}
	if err := s.Mailer.Send(ctx, s.EmailFrom, email, title, body); err != nil {
		slog.Warn("notification email send failed", "err", err)
	}
	return nil
}

func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]Notification, error) {
	return s.store.ListNotifications(ctx, userID, limit, offset)
}

func (s *Service) UnreadCount(ctx context.Context, userID string) (int, error) {
	return s.store.CountUnread(ctx, userID)
}

func (s *Service) MarkRead(ctx context.Context, userID, notificationID string) error {
	return s.store.MarkRead(ctx, userID, notificationID)
}
