package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/aria-creative/vitrine/internal/model"
)

// CreateMessage persists a new contact message at status NOUVEAU. The ID,
// Status, CreatedAt, and UpdatedAt fields on msg are populated.
func (s *Store) CreateMessage(ctx context.Context, msg *model.ContactMessage) error {
	now := time.Now().UTC()
	msg.ID = uuid.NewString()
	msg.Status = model.StatusNouveau
	msg.CreatedAt = now
	msg.UpdatedAt = now

	const q = `INSERT INTO messages
		(id, name, email, company, subject, message, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := s.db.ExecContext(ctx, s.rebind(q),
		msg.ID, msg.Name, msg.Email, msg.Company, msg.Subject, msg.Message,
		msg.Status, msg.CreatedAt, msg.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert message: %w", err)
	}
	return nil
}

// GetMessage returns a single message by id, or ErrNotFound.
func (s *Store) GetMessage(ctx context.Context, id string) (*model.ContactMessage, error) {
	var msg model.ContactMessage
	err := s.db.GetContext(ctx, &msg, s.rebind("SELECT * FROM messages WHERE id = ?"), id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get message: %w", err)
	}
	return &msg, nil
}

// ListMessages returns a newest-first page of messages, optionally filtered
// by status. page is 1-based; limit is the page size.
func (s *Store) ListMessages(ctx context.Context, status model.MessageStatus, page, limit int) ([]model.ContactMessage, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	offset := (page - 1) * limit

	var (
		total    int64
		messages []model.ContactMessage
	)

	if status != "" {
		err := s.db.GetContext(ctx, &total,
			s.rebind("SELECT COUNT(*) FROM messages WHERE status = ?"), status)
		if err != nil {
			return nil, 0, fmt.Errorf("count messages: %w", err)
		}
		err = s.db.SelectContext(ctx, &messages,
			s.rebind("SELECT * FROM messages WHERE status = ? ORDER BY created_at DESC LIMIT ? OFFSET ?"),
			status, limit, offset)
		if err != nil {
			return nil, 0, fmt.Errorf("list messages: %w", err)
		}
	} else {
		err := s.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM messages")
		if err != nil {
			return nil, 0, fmt.Errorf("count messages: %w", err)
		}
		err = s.db.SelectContext(ctx, &messages,
			s.rebind("SELECT * FROM messages ORDER BY created_at DESC LIMIT ? OFFSET ?"),
			limit, offset)
		if err != nil {
			return nil, 0, fmt.Errorf("list messages: %w", err)
		}
	}

	if messages == nil {
		messages = []model.ContactMessage{}
	}
	return messages, total, nil
}

// SetMessageStatus changes the triage status of a message and bumps its
// updated_at. The caller validates the status value; unknown ids return
// ErrNotFound.
func (s *Store) SetMessageStatus(ctx context.Context, id string, status model.MessageStatus) (*model.ContactMessage, error) {
	res, err := s.db.ExecContext(ctx,
		s.rebind("UPDATE messages SET status = ?, updated_at = ? WHERE id = ?"),
		status, time.Now().UTC(), id)
	if err != nil {
		return nil, fmt.Errorf("update message status: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, ErrNotFound
	}
	return s.GetMessage(ctx, id)
}

// DeleteMessage removes a message permanently. Deleting an unknown id
// returns ErrNotFound.
func (s *Store) DeleteMessage(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, s.rebind("DELETE FROM messages WHERE id = ?"), id)
	if err != nil {
		return fmt.Errorf("delete message: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// MessageStats returns the total message count and a per-status breakdown.
// Every enumerated status appears in the map, zero included.
func (s *Store) MessageStats(ctx context.Context) (*model.MessageStats, error) {
	stats := &model.MessageStats{ByStatus: make(map[model.MessageStatus]int64, len(model.MessageStatuses))}
	for _, st := range model.MessageStatuses {
		stats.ByStatus[st] = 0
	}

	rows, err := s.db.QueryxContext(ctx, "SELECT status, COUNT(*) FROM messages GROUP BY status")
	if err != nil {
		return nil, fmt.Errorf("message stats: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			status model.MessageStatus
			count  int64
		)
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("scan message stats: %w", err)
		}
		stats.ByStatus[status] = count
		stats.Total += count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("message stats: %w", err)
	}
	return stats, nil
}
