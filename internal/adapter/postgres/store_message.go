package postgres

import (
	"context"
	"fmt"

	"github.com/foliohq/folio/internal/domain/message"
)

const messageColumns = `id, name, email, subject, body, read, created_at`

func (s *Store) ListMessages(ctx context.Context) ([]message.Message, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+messageColumns+` FROM contact_messages ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	var msgs []message.Message
	for rows.Next() {
		var m message.Message
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Subject, &m.Body, &m.Read, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}

func (s *Store) GetMessage(ctx context.Context, id string) (*message.Message, error) {
	var m message.Message
	err := s.pool.QueryRow(ctx,
		`SELECT `+messageColumns+` FROM contact_messages WHERE id = $1`, id,
	).Scan(&m.ID, &m.Name, &m.Email, &m.Subject, &m.Body, &m.Read, &m.CreatedAt)
	if err != nil {
		return nil, notFoundWrap(err, "get message %s", id)
	}
	return &m, nil
}

func (s *Store) CreateMessage(ctx context.Context, req *message.SubmitRequest) (*message.Message, error) {
	var m message.Message
	err := s.pool.QueryRow(ctx,
		`INSERT INTO contact_messages (name, email, subject, body)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+messageColumns,
		req.Name, req.Email, req.Subject, req.Body,
	).Scan(&m.ID, &m.Name, &m.Email, &m.Subject, &m.Body, &m.Read, &m.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create message from %q: %w", req.Email, err)
	}
	return &m, nil
}

func (s *Store) MarkMessageRead(ctx context.Context, id string, read bool) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE contact_messages SET read = $2 WHERE id = $1`, id, read)
	return execExpectOne(tag, err, "mark message %s read=%t", id, read)
}

func (s *Store) DeleteMessage(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM contact_messages WHERE id = $1`, id)
	return execExpectOne(tag, err, "delete message %s", id)
}
