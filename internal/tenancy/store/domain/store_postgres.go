package domain

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

// PostgresStore persists agency domains. The unique index on
// agency_domains.domain is the authoritative uniqueness check; the
// application pre-check only provides a friendlier fast path.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// CreateIfAvailable inserts the domain, mapping the unique-constraint
// violation to sentinel.ErrAlreadyUsed so racing creators observe the same
// outcome as the pre-check.
func (s *PostgresStore) CreateIfAvailable(ctx context.Context, d *models.Domain) error {
	const query = `
		INSERT INTO agency_domains (id, agency_id, domain, verified, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := s.db.ExecContext(ctx, query,
		uuid.UUID(d.ID), uuid.UUID(d.AgencyID), d.Domain, d.Verified, d.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return sentinel.ErrAlreadyUsed
		}
		return fmt.Errorf("create domain: %w", err)
	}
	return nil
}

// Exists reports whether the normalized domain value is registered by any
// agency.
func (s *PostgresStore) Exists(ctx context.Context, normalized string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM agency_domains WHERE domain = $1)`,
		normalized).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check domain exists: %w", err)
	}
	return exists, nil
}

// DeleteOwned removes the domain only when it belongs to the given agency.
// A cross-tenant delete matches zero rows and reports sentinel.ErrNotFound,
// indistinguishable from a missing domain.
func (s *PostgresStore) DeleteOwned(ctx context.Context, agencyID id.AgencyID, domainID id.DomainID) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM agency_domains WHERE id = $1 AND agency_id = $2`,
		uuid.UUID(domainID), uuid.UUID(agencyID))
	if err != nil {
		return fmt.Errorf("delete domain: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete domain: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

// ListByAgency returns the agency's domains ordered by creation time.
func (s *PostgresStore) ListByAgency(ctx context.Context, agencyID id.AgencyID) ([]models.Domain, error) {
	const query = `
		SELECT id, agency_id, domain, verified, created_at
		FROM agency_domains WHERE agency_id = $1 ORDER BY created_at ASC
	`
	rows, err := s.db.QueryContext(ctx, query, uuid.UUID(agencyID))
	if err != nil {
		return nil, fmt.Errorf("list domains: %w", err)
	}
	defer rows.Close()

	var out []models.Domain
	for rows.Next() {
		var (
			d        models.Domain
			domainID uuid.UUID
			aid      uuid.UUID
		)
		if err := rows.Scan(&domainID, &aid, &d.Domain, &d.Verified, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan domain: %w", err)
		}
		d.ID = id.DomainID(domainID)
		d.AgencyID = id.AgencyID(aid)
		out = append(out, d)
	}
	return out, rows.Err()
}
