package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/foliohq/folio/internal/adapter/otel"
	"github.com/foliohq/folio/internal/domain/message"
	"github.com/foliohq/folio/internal/port/broadcast"
	"github.com/foliohq/folio/internal/port/cache"
	"github.com/foliohq/folio/internal/port/database"
	"github.com/foliohq/folio/internal/port/notifier"
	"github.com/foliohq/folio/internal/resilience"
)

// EventMessageReceived is broadcast to connected admin clients when a new
// contact-form message arrives.
const EventMessageReceived = "message.received"

// MessageService handles contact-form submissions and the admin inbox.
type MessageService struct {
	store    database.Store
	loader   *cache.Loader
	hub      broadcast.Broadcaster
	notifier notifier.Notifier
	breaker  *resilience.Breaker
	logger   *slog.Logger
	metrics  *otel.Metrics
}

// NewMessageService creates a new MessageService. hub and notify may be nil;
// the corresponding side effects are skipped.
func NewMessageService(store database.Store, loader *cache.Loader, hub broadcast.Broadcaster, notify notifier.Notifier, breaker *resilience.Breaker, logger *slog.Logger) *MessageService {
	return &MessageService{
		store:    store,
		loader:   loader,
		hub:      hub,
		notifier: notify,
		breaker:  breaker,
		logger:   logger,
	}
}

// WithMetrics attaches metric instruments. Optional; without it Submit
// records nothing.
func (s *MessageService) WithMetrics(m *otel.Metrics) *MessageService {
	s.metrics = m
	return s
}

// Submit validates and stores a contact-form message, then notifies the site
// owner. The store write is the source of truth; notification failures are
// logged, never surfaced to the visitor.
func (s *MessageService) Submit(ctx context.Context, req *message.SubmitRequest) (*message.Message, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	m, err := s.store.CreateMessage(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("store message: %w", err)
	}

	_ = s.loader.Invalidate(ctx, "messages")

	if s.metrics != nil {
		s.metrics.MessagesReceived.Add(ctx, 1)
	}

	if s.hub != nil {
		s.hub.BroadcastEvent(ctx, EventMessageReceived, m)
	}

	if s.notifier != nil {
		go s.notify(m)
	}

	return m, nil
}

// notify sends the owner notification through the circuit breaker. Runs on
// its own goroutine with a fresh context so a slow SMTP server never holds
// the HTTP response.
func (s *MessageService) notify(m *message.Message) {
	n := notifier.Notification{
		Title:   fmt.Sprintf("New message from %s", m.Name),
		Message: fmt.Sprintf("From: %s <%s>\nSubject: %s\n\n%s", m.Name, m.Email, m.Subject, m.Body),
		Source:  EventMessageReceived,
	}

	err := s.breaker.Execute(func() error {
		return s.notifier.Send(context.Background(), n)
	})
	if err != nil {
		s.logger.Warn("contact notification failed",
			"notifier", s.notifier.Name(),
			"message_id", m.ID,
			"error", err)
	}
}

// List returns the admin inbox, cached briefly under messages:all.
func (s *MessageService) List(ctx context.Context) ([]message.Message, error) {
	return cache.Lookup(ctx, s.loader, cache.MessagesAll, func(ctx context.Context) ([]message.Message, error) {
		return s.store.ListMessages(ctx)
	})
}

// Get returns one message by ID.
func (s *MessageService) Get(ctx context.Context, id string) (*message.Message, error) {
	return s.store.GetMessage(ctx, id)
}

// MarkRead flags a message as read or unread.
func (s *MessageService) MarkRead(ctx context.Context, id string, read bool) error {
	if err := s.store.MarkMessageRead(ctx, id, read); err != nil {
		return err
	}
	_ = s.loader.Invalidate(ctx, "messages")
	return nil
}

// Delete removes a message from the inbox.
func (s *MessageService) Delete(ctx context.Context, id string) error {
	if err := s.store.DeleteMessage(ctx, id); err != nil {
		return err
	}
	_ = s.loader.Invalidate(ctx, "messages")
	return nil
}
