package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/ustudiopd/EventLive-sub001/internal/audit"
	id "github.com/ustudiopd/EventLive-sub001/pkg/domain"
)

// PostgresStore persists the audit trail. Only INSERT and SELECT are issued
// against audit_log; the table has no update path.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Append(ctx context.Context, entry audit.Entry) error {
	payload, err := json.Marshal(entry.Payload)
	if err != nil {
		return fmt.Errorf("marshal audit payload: %w", err)
	}

	var agencyID, clientID any
	if entry.AgencyID != nil {
		agencyID = uuid.UUID(*entry.AgencyID)
	}
	if entry.ClientID != nil {
		clientID = uuid.UUID(*entry.ClientID)
	}

	const query = `
		INSERT INTO audit_log (id, actor_user_id, agency_id, client_id, action, payload, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	if _, err := s.db.ExecContext(ctx, query,
		entry.ID, uuid.UUID(entry.ActorUserID), agencyID, clientID,
		string(entry.Action), payload, entry.CreatedAt); err != nil {
		return fmt.Errorf("append audit entry: %w", err)
	}
	return nil
}

// ListByActor returns the actor's entries ordered oldest first.
func (s *PostgresStore) ListByActor(ctx context.Context, actorID id.UserID) ([]audit.Entry, error) {
	const query = `
		SELECT id, actor_user_id, agency_id, client_id, action, payload, created_at
		FROM audit_log
		WHERE actor_user_id = $1
		ORDER BY created_at ASC
	`
	rows, err := s.db.QueryContext(ctx, query, uuid.UUID(actorID))
	if err != nil {
		return nil, fmt.Errorf("list audit entries: %w", err)
	}
	defer rows.Close()

	var out []audit.Entry
	for rows.Next() {
		var (
			e        audit.Entry
			actor    uuid.UUID
			agencyID uuid.NullUUID
			clientID uuid.NullUUID
			payload  []byte
		)
		if err := rows.Scan(&e.ID, &actor, &agencyID, &clientID, &e.Action, &payload, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		e.ActorUserID = id.UserID(actor)
		if agencyID.Valid {
			v := id.AgencyID(agencyID.UUID)
			e.AgencyID = &v
		}
		if clientID.Valid {
			v := id.ClientID(clientID.UUID)
			e.ClientID = &v
		}
		if err := json.Unmarshal(payload, &e.Payload); err != nil {
			return nil, fmt.Errorf("unmarshal audit payload: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
