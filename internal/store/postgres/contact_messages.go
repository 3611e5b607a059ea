package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/horndawg/launchpad/internal/models"
)

type ContactMessageStore struct {
	db *sql.DB
}

func NewContactMessageStore(db *sql.DB) *ContactMessageStore {
	return &ContactMessageStore{db: db}
}

func (s *ContactMessageStore) CreateContactMessage(ctx context.Context, params models.ContactMessageCreateParams) (*models.ContactMessage, error) {
	msg := &models.ContactMessage{
		PublicID: uuid.New(),
		Name:     params.Name,
		Email:    params.Email,
		Subject:  params.Subject,
		Message:  params.Message,
	}

	err := s.db.QueryRowContext(ctx,
		`INSERT INTO contact_messages (public_id, name, email, subject, message)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		msg.PublicID, msg.Name, msg.Email, msg.Subject, msg.Message,
	).Scan(&msg.ID, &msg.CreatedAt)
	if err != nil {
		return nil, err
	}

	return msg, nil
}

func (s *ContactMessageStore) ListContactMessages(ctx context.Context, limit, offset int) ([]models.ContactMessage, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, public_id, name, email, subject, message, created_at
		 FROM contact_messages
		 ORDER BY created_at DESC, id DESC
		 LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := make([]models.ContactMessage, 0, limit)
	for rows.Next() {
		var m models.ContactMessage
		if err := rows.Scan(&m.ID, &m.PublicID, &m.Name, &m.Email, &m.Subject, &m.Message, &m.CreatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

func (s *ContactMessageStore) CountContactMessages(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM contact_messages`).Scan(&count)
	return count, err
}
