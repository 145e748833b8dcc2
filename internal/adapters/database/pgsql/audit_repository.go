package pgsql

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hoteldesk/folio-backend/internal/core/domain"
	portsrepo "github.com/hoteldesk/folio-backend/internal/core/ports/repositories"
)

type PgxAuditRepository struct {
	pool *pgxpool.Pool
}

// NewPgxAuditRepository creates a read-only repository over the audit log. The
// log is populated by database triggers, never by application code.
func NewPgxAuditRepository(pool *pgxpool.Pool) portsrepo.AuditReader {
	return &PgxAuditRepository{pool: pool}
}

// ListAuditEntries retrieves matching entries, newest first. The actor name and
// email are joined in from users so the view layer needs no second lookup.
func (r *PgxAuditRepository) ListAuditEntries(ctx context.Context, filter portsrepo.AuditFilter) ([]domain.AuditLogEntry, error) {
	query := `
		SELECT a.entry_id, a.entity_type, a.entity_id, a.action, a.actor_id,
		       COALESCE(u.name, ''), COALESCE(u.email, ''),
		       a.old_values, a.new_values, a.description, a.occurred_at
		FROM audit_log a
		LEFT JOIN users u ON a.actor_id = u.user_id
		WHERE 1=1
	`
	args := []interface{}{}

	if filter.FolioID != nil {
		// Entries for the folio itself plus entries for its transactions.
		args = append(args, *filter.FolioID)
		n := strconv.Itoa(len(args))
		query += ` AND (a.entity_id = $` + n + ` OR a.entity_id IN (SELECT transaction_id FROM transactions WHERE folio_id = $` + n + `))`
	}
	if filter.EntityType != nil && *filter.EntityType != "" {
		args = append(args, *filter.EntityType)
		query += ` AND a.entity_type = $` + strconv.Itoa(len(args))
	}
	if filter.EntityID != nil && *filter.EntityID != "" {
		args = append(args, *filter.EntityID)
		query += ` AND a.entity_id = $` + strconv.Itoa(len(args))
	}
	if filter.Action != nil && *filter.Action != "" {
		args = append(args, *filter.Action)
		query += ` AND a.action = $` + strconv.Itoa(len(args))
	}
	if filter.ActorID != nil && *filter.ActorID != "" {
		args = append(args, *filter.ActorID)
		query += ` AND a.actor_id = $` + strconv.Itoa(len(args))
	}
	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		query += ` AND a.occurred_at::date >= $` + strconv.Itoa(len(args)) + `::date`
	}
	if filter.EndDate != nil {
		args = append(args, *filter.EndDate)
		query += ` AND a.occurred_at::date <= $` + strconv.Itoa(len(args)) + `::date`
	}

	query += ` ORDER BY a.occurred_at DESC;`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit log: %w", err)
	}
	defer rows.Close()

	entries := []domain.AuditLogEntry{}
	for rows.Next() {
		var e domain.AuditLogEntry
		if err := rows.Scan(
			&e.EntryID,
			&e.EntityType,
			&e.EntityID,
			&e.Action,
			&e.ActorID,
			&e.ActorName,
			&e.ActorEmail,
			&e.OldValues,
			&e.NewValues,
			&e.Description,
			&e.Timestamp,
		); err != nil {
			return nil, fmt.Errorf("failed to scan audit row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating audit rows: %w", err)
	}
	return entries, nil
}
