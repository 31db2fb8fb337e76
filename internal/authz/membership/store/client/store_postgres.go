package client

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

// PostgresStore reads client memberships from PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) FindRole(ctx context.Context, clientID id.ClientID, userID id.UserID) (roles.Role, error) {
	const query = `
		SELECT role FROM client_memberships
		WHERE client_id = $1 AND user_id = $2
	`
	var role string
	err := s.db.QueryRowContext(ctx, query, uuid.UUID(clientID), uuid.UUID(userID)).Scan(&role)
	if errors.Is(err, sql.ErrNoRows) {
		return "", sentinel.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("find client role: %w", err)
	}
	return roles.Role(role), nil
}

func (s *PostgresStore) ListByUser(ctx context.Context, userID id.UserID) ([]membership.ClientMembership, error) {
	const query = `
		SELECT client_id, user_id, role, created_at
		FROM client_memberships
		WHERE user_id = $1
		ORDER BY created_at ASC
	`
	rows, err := s.db.QueryContext(ctx, query, uuid.UUID(userID))
	if err != nil {
		return nil, fmt.Errorf("list client memberships: %w", err)
	}
	defer rows.Close()

	var out []membership.ClientMembership
	for rows.Next() {
		var (
			m                    membership.ClientMembership
			clientUUID, userUUID uuid.UUID
			role                 string
		)
		if err := rows.Scan(&clientUUID, &userUUID, &role, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan client membership: %w", err)
		}
		m.ClientID = id.ClientID(clientUUID)
		m.UserID = id.UserID(userUUID)
		m.Role = roles.Role(role)
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate client memberships: %w", err)
	}
	return out, nil
}

// Put inserts a membership row. Used by seeding and integration tests; the
// invitation flow owns production writes.
func (s *PostgresStore) Put(ctx context.Context, m membership.ClientMembership) error {
	const query = `
		INSERT INTO client_memberships (client_id, user_id, role, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (client_id, user_id) DO UPDATE SET role = EXCLUDED.role
	`
	_, err := s.db.ExecContext(ctx, query,
		uuid.UUID(m.ClientID), uuid.UUID(m.UserID), string(m.Role), m.CreatedAt)
	if err != nil {
		return fmt.Errorf("put client membership: %w", err)
	}
	return nil
}
