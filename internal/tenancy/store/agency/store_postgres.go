package agency

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/ustudiopd/EventLive-sub001/internal/tenancy/models"
	id "github.com/ustudiopd/EventLive-sub001/pkg/domain"
	"github.com/ustudiopd/EventLive-sub001/pkg/platform/sentinel"
)

// PostgresStore persists agencies in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, a *models.Agency) error {
	const query = `
		INSERT INTO agencies (id, name, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	if _, err := s.db.ExecContext(ctx, query,
		uuid.UUID(a.ID), a.Name, string(a.Status), a.CreatedAt, a.UpdatedAt); err != nil {
		return fmt.Errorf("create agency: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, agencyID id.AgencyID) (*models.Agency, error) {
	const query = `
		SELECT id, name, status, created_at, updated_at
		FROM agencies WHERE id = $1
	`
	row := s.db.QueryRowContext(ctx, query, uuid.UUID(agencyID))

	var (
		a   models.Agency
		aid uuid.UUID
	)
	err := row.Scan(&aid, &a.Name, &a.Status, &a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan agency: %w", err)
	}
	a.ID = id.AgencyID(aid)
	return &a, nil
}

func (s *PostgresStore) List(ctx context.Context) ([]models.Agency, error) {
	const query = `
		SELECT id, name, status, created_at, updated_at
		FROM agencies ORDER BY created_at ASC
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list agencies: %w", err)
	}
	defer rows.Close()

	var out []models.Agency
	for rows.Next() {
		var (
			a   models.Agency
			aid uuid.UUID
		)
		if err := rows.Scan(&aid, &a.Name, &a.Status, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan agency: %w", err)
		}
		a.ID = id.AgencyID(aid)
		out = append(out, a)
	}
	return out, rows.Err()
}
