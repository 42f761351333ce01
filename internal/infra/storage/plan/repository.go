package plan

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	"github.com/m04kA/SMC-CourtBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-CourtBooking/pkg/psqlbuilder"
)

// Repository репозиторий тарифных планов (справочник, только чтение)
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория тарифов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает тариф по идентификатору
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Plan, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "price", "commission_rate", "features").
		From("plans").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var plan domain.Plan
	var features pq.StringArray

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&plan.ID,
		&plan.Name,
		&plan.Price,
		&plan.CommissionRate,
		&features,
	)

	if err == sql.ErrNoRows {
		return nil, ErrPlanNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan plan: %v", ErrScanRow, err)
	}

	plan.Features = []string(features)
	return &plan, nil
}

// List получает все тарифы по возрастанию цены
func (r *Repository) List(ctx context.Context) ([]*domain.Plan, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "price", "commission_rate", "features").
		From("plans").
		OrderBy("price ASC", "id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	plans := make([]*domain.Plan, 0)
	for rows.Next() {
		var plan domain.Plan
		var features pq.StringArray
		if err := rows.Scan(&plan.ID, &plan.Name, &plan.Price, &plan.CommissionRate, &features); err != nil {
			return nil, fmt.Errorf("%w: List - scan plan: %v", ErrScanRow, err)
		}
		plan.Features = []string(features)
		plans = append(plans, &plan)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return plans, nil
}
