package invitation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	"github.com/m04kA/SMC-CourtBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-CourtBooking/pkg/psqlbuilder"
)

const (
	tableName       = "invitation_code_events"
	uniqueViolation = "23505"
)

var columns = []string{
	"id",
	"venue_id",
	"venue_name",
	"code",
	"issued_by",
	"action",
	"previous_admin_id",
	"new_admin_id",
	"expires_at",
	"detail",
	"created_at",
}

// Repository журнал событий кодов приглашения (только добавление)
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория журнала
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Append добавляет событие в журнал; записи никогда не изменяются и не удаляются
func (r *Repository) Append(ctx context.Context, event *domain.InvitationEvent) (*domain.InvitationEvent, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableName).
		Columns(
			"venue_id",
			"venue_name",
			"code",
			"issued_by",
			"action",
			"previous_admin_id",
			"new_admin_id",
			"expires_at",
			"detail",
		).
		Values(
			event.VenueID,
			event.VenueName,
			event.Code,
			event.IssuedBy,
			event.Action,
			event.PreviousAdminID,
			event.NewAdminID,
			event.ExpiresAt,
			event.Detail,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Append - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&event.ID, &event.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateCode, event.Code)
		}
		return nil, fmt.Errorf("%w: Append - execute insert: %v", ErrExecQuery, err)
	}

	return event, nil
}

// ListByCode получает историю кода в хронологическом порядке
func (r *Repository) ListByCode(ctx context.Context, code string) ([]*domain.InvitationEvent, error) {
	return r.list(ctx, "ListByCode", squirrel.Eq{"code": code})
}

// ListByVenue получает историю всех кодов площадки в хронологическом порядке
func (r *Repository) ListByVenue(ctx context.Context, venueID int64) ([]*domain.InvitationEvent, error) {
	return r.list(ctx, "ListByVenue", squirrel.Eq{"venue_id": venueID})
}

func (r *Repository) list(ctx context.Context, op string, where squirrel.Eq) ([]*domain.InvitationEvent, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(tableName).
		Where(where).
		OrderBy("created_at ASC", "id ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	events := make([]*domain.InvitationEvent, 0)
	for rows.Next() {
		var e domain.InvitationEvent
		var previousAdmin, newAdmin sql.NullInt64
		var expiresAt sql.NullTime
		var detail sql.NullString

		if err := rows.Scan(
			&e.ID,
			&e.VenueID,
			&e.VenueName,
			&e.Code,
			&e.IssuedBy,
			&e.Action,
			&previousAdmin,
			&newAdmin,
			&expiresAt,
			&detail,
			&e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: %s - scan event: %v", ErrScanRow, op, err)
		}

		if previousAdmin.Valid {
			e.PreviousAdminID = &previousAdmin.Int64
		}
		if newAdmin.Valid {
			e.NewAdminID = &newAdmin.Int64
		}
		if expiresAt.Valid {
			e.ExpiresAt = &expiresAt.Time
		}
		if detail.Valid {
			e.Detail = &detail.String
		}

		events = append(events, &e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	return events, nil
}
