package client

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/ustudiopd/EventLive-sub001/internal/tenancy/models"
	id "github.com/ustudiopd/EventLive-sub001/pkg/domain"
	"github.com/ustudiopd/EventLive-sub001/pkg/platform/sentinel"
)

// PostgresStore persists clients in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, c *models.Client) error {
	var brandConfig any
	if c.BrandConfig != nil {
		data, err := json.Marshal(c.BrandConfig)
		if err != nil {
			return fmt.Errorf("marshal brand config: %w", err)
		}
		brandConfig = data
	}

	const query = `
		INSERT INTO clients (id, agency_id, name, logo_url, brand_config, created_at, updated_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7)
	`
	if _, err := s.db.ExecContext(ctx, query,
		uuid.UUID(c.ID), uuid.UUID(c.AgencyID), c.Name, c.LogoURL, brandConfig,
		c.CreatedAt, c.UpdatedAt); err != nil {
		return fmt.Errorf("create client: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, clientID id.ClientID) (*models.Client, error) {
	const query = `
		SELECT id, agency_id, name, COALESCE(logo_url, ''), brand_config, created_at, updated_at
		FROM clients WHERE id = $1
	`
	return scanClient(s.db.QueryRowContext(ctx, query, uuid.UUID(clientID)))
}

func (s *PostgresStore) ListByAgency(ctx context.Context, agencyID id.AgencyID) ([]models.Client, error) {
	const query = `
		SELECT id, agency_id, name, COALESCE(logo_url, ''), brand_config, created_at, updated_at
		FROM clients WHERE agency_id = $1 ORDER BY created_at ASC
	`
	rows, err := s.db.QueryContext(ctx, query, uuid.UUID(agencyID))
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()

	var out []models.Client
	for rows.Next() {
		c, err := scanClientRow(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

func scanClient(row *sql.Row) (*models.Client, error) {
	c, err := scanClientRow(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	return c, err
}

func scanClientRow(scan func(dest ...any) error) (*models.Client, error) {
	var (
		c           models.Client
		clientID    uuid.UUID
		agencyID    uuid.UUID
		brandConfig []byte
	)
	err := scan(&clientID, &agencyID, &c.Name, &c.LogoURL, &brandConfig, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan client: %w", err)
	}
	c.ID = id.ClientID(clientID)
	c.AgencyID = id.AgencyID(agencyID)
	if len(brandConfig) > 0 {
		if err := json.Unmarshal(brandConfig, &c.BrandConfig); err != nil {
			return nil, fmt.Errorf("unmarshal brand config: %w", err)
		}
	}
	return &c, nil
}
