package allowedemail

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ustudiopd/EventLive-sub001/internal/tenancy/models"
	id "github.com/ustudiopd/EventLive-sub001/pkg/domain"
	"github.com/ustudiopd/EventLive-sub001/pkg/platform/sentinel"
)

const uniqueViolation = "23505"

// PostgresStore persists webinar allow-list entries. The composite primary
// key (webinar_id, email) enforces per-webinar uniqueness.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Add(ctx context.Context, e *models.AllowedEmail) error {
	const query = `
		INSERT INTO webinar_allowed_emails (webinar_id, email, created_at)
		VALUES ($1, $2, $3)
	`
	_, err := s.db.ExecContext(ctx, query, uuid.UUID(e.WebinarID), e.Email, e.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return sentinel.ErrAlreadyUsed
		}
		return fmt.Errorf("add allowed email: %w", err)
	}
	return nil
}

func (s *PostgresStore) Remove(ctx context.Context, webinarID id.WebinarID, email string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM webinar_allowed_emails WHERE webinar_id = $1 AND email = $2`,
		uuid.UUID(webinarID), email)
	if err != nil {
		return fmt.Errorf("remove allowed email: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("remove allowed email: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) List(ctx context.Context, webinarID id.WebinarID) ([]models.AllowedEmail, error) {
	const query = `
		SELECT webinar_id, email, created_at
		FROM webinar_allowed_emails WHERE webinar_id = $1 ORDER BY created_at ASC
	`
	rows, err := s.db.QueryContext(ctx, query, uuid.UUID(webinarID))
	if err != nil {
		return nil, fmt.Errorf("list allowed emails: %w", err)
	}
	defer rows.Close()

	var out []models.AllowedEmail
	for rows.Next() {
		var (
			e   models.AllowedEmail
			wid uuid.UUID
		)
		if err := rows.Scan(&wid, &e.Email, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan allowed email: %w", err)
		}
		e.WebinarID = id.WebinarID(wid)
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *PostgresStore) Contains(ctx context.Context, webinarID id.WebinarID, email string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM webinar_allowed_emails WHERE webinar_id = $1 AND email = $2)`,
		uuid.UUID(webinarID), email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check allowed email: %w", err)
	}
	return exists, nil
}
