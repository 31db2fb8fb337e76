package webinar

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

// PostgresStore persists webinars in PostgreSQL. The partial unique index on
// (client_id, slug) backs slug uniqueness.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, w *models.Webinar) error {
	const query = `
		INSERT INTO webinars (id, client_id, title, slug, passcode_hash, created_at, updated_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), $6, $7)
	`
	_, err := s.db.ExecContext(ctx, query,
		uuid.UUID(w.ID), uuid.UUID(w.ClientID), w.Title, w.Slug, w.PasscodeHash,
		w.CreatedAt, w.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return sentinel.ErrAlreadyUsed
		}
		return fmt.Errorf("create webinar: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, webinarID id.WebinarID) (*models.Webinar, error) {
	const query = `
		SELECT id, client_id, title, COALESCE(slug, ''), COALESCE(passcode_hash, ''), created_at, updated_at
		FROM webinars WHERE id = $1
	`
	return scanWebinar(s.db.QueryRowContext(ctx, query, uuid.UUID(webinarID)))
}

func (s *PostgresStore) FindBySlug(ctx context.Context, clientID id.ClientID, slug string) (*models.Webinar, error) {
	const query = `
		SELECT id, client_id, title, COALESCE(slug, ''), COALESCE(passcode_hash, ''), created_at, updated_at
		FROM webinars WHERE client_id = $1 AND slug = $2
	`
	return scanWebinar(s.db.QueryRowContext(ctx, query, uuid.UUID(clientID), slug))
}

func scanWebinar(row *sql.Row) (*models.Webinar, error) {
	var (
		w         models.Webinar
		webinarID uuid.UUID
		clientID  uuid.UUID
	)
	err := row.Scan(&webinarID, &clientID, &w.Title, &w.Slug, &w.PasscodeHash, &w.CreatedAt, &w.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan webinar: %w", err)
	}
	w.ID = id.WebinarID(webinarID)
	w.ClientID = id.ClientID(clientID)
	return &w, nil
}
