package agency

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/ustudiopd/EventLive-sub001/internal/authz/membership"
	"github.com/ustudiopd/EventLive-sub001/internal/authz/roles"
	id "github.com/ustudiopd/EventLive-sub001/pkg/domain"
	"github.com/ustudiopd/EventLive-sub001/pkg/platform/sentinel"
)

// PostgresStore reads agency memberships from PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) FindRole(ctx context.Context, agencyID id.AgencyID, userID id.UserID) (roles.Role, error) {
	const query = `
		SELECT role FROM agency_memberships
		WHERE agency_id = $1 AND user_id = $2
	`
	var role string
	err := s.db.QueryRowContext(ctx, query, uuid.UUID(agencyID), uuid.UUID(userID)).Scan(&role)
	if errors.Is(err, sql.ErrNoRows) {
		return "", sentinel.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("find agency role: %w", err)
	}
	return roles.Role(role), nil
}

func (s *PostgresStore) ListByUser(ctx context.Context, userID id.UserID) ([]membership.AgencyMembership, error) {
	const query = `
		SELECT agency_id, user_id, role, created_at
		FROM agency_memberships
		WHERE user_id = $1
		ORDER BY created_at ASC
	`
	rows, err := s.db.QueryContext(ctx, query, uuid.UUID(userID))
	if err != nil {
		return nil, fmt.Errorf("list agency memberships: %w", err)
	}
	defer rows.Close()

	var out []membership.AgencyMembership
	for rows.Next() {
		var (
			m                  membership.AgencyMembership
			agencyUUID, userUUID uuid.UUID
			role               string
		)
		if err := rows.Scan(&agencyUUID, &userUUID, &role, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan agency membership: %w", err)
		}
		m.AgencyID = id.AgencyID(agencyUUID)
		m.UserID = id.UserID(userUUID)
		m.Role = roles.Role(role)
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate agency memberships: %w", err)
	}
	return out, nil
}

// Put inserts a membership row. Used by seeding and integration tests; the
// invitation flow owns production writes.
func (s *PostgresStore) Put(ctx context.Context, m membership.AgencyMembership) error {
	const query = `
		INSERT INTO agency_memberships (agency_id, user_id, role, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (agency_id, user_id) DO UPDATE SET role = EXCLUDED.role
	`
	_, err := s.db.ExecContext(ctx, query,
		uuid.UUID(m.AgencyID), uuid.UUID(m.UserID), string(m.Role), m.CreatedAt)
	if err != nil {
		return fmt.Errorf("put agency membership: %w", err)
	}
	return nil
}
