package subscription

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	"github.com/m04kA/SMC-CourtBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-CourtBooking/pkg/psqlbuilder"
)

const tableName = "subscriptions"

var columns = []string{
	"id",
	"admin_id",
	"plan_id",
	"status",
	"started_at",
	"expires_at",
	"auto_renew",
	"cancel_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий подписок администраторов
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория подписок
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую подписку
func (r *Repository) Create(ctx context.Context, sub *domain.Subscription) (*domain.Subscription, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableName).
		Columns("admin_id", "plan_id", "status", "started_at", "expires_at", "auto_renew").
		Values(sub.AdminID, sub.PlanID, sub.Status, sub.StartedAt, sub.ExpiresAt, sub.AutoRenew).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&sub.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	sub.CreatedAt = createdAt.Time
	sub.UpdatedAt = updatedAt.Time

	return sub, nil
}

// GetCurrentByAdmin получает текущую (последнюю созданную) подписку администратора
func (r *Repository) GetCurrentByAdmin(ctx context.Context, adminID int64) (*domain.Subscription, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"admin_id": adminID}).
		OrderBy("created_at DESC", "id DESC").
		Limit(1)

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetCurrentByAdmin - build select query: %v", ErrBuildQuery, err)
	}

	var sub domain.Subscription
	var cancelReason sql.NullString
	var cancelledAt, createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&sub.ID,
		&sub.AdminID,
		&sub.PlanID,
		&sub.Status,
		&sub.StartedAt,
		&sub.ExpiresAt,
		&sub.AutoRenew,
		&cancelReason,
		&cancelledAt,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrSubscriptionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetCurrentByAdmin - scan subscription: %v", ErrScanRow, err)
	}

	if cancelReason.Valid {
		sub.CancelReason = &cancelReason.String
	}
	if cancelledAt.Valid {
		sub.CancelledAt = &cancelledAt.Time
	}
	sub.CreatedAt = createdAt.Time
	sub.UpdatedAt = updatedAt.Time

	return &sub, nil
}

// Update сохраняет изменяемые поля подписки
func (r *Repository) Update(ctx context.Context, sub *domain.Subscription) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	now := time.Now()
	query, args, err := psqlbuilder.Update(tableName).
		Set("plan_id", sub.PlanID).
		Set("status", sub.Status).
		Set("started_at", sub.StartedAt).
		Set("expires_at", sub.ExpiresAt).
		Set("auto_renew", sub.AutoRenew).
		Set("cancel_reason", sub.CancelReason).
		Set("cancelled_at", sub.CancelledAt).
		Set("updated_at", now).
		Where(squirrel.Eq{"id": sub.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSubscriptionNotFound
	}

	sub.UpdatedAt = now
	return nil
}
