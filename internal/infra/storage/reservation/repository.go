package reservation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	"github.com/m04kA/SMC-CourtBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-CourtBooking/pkg/psqlbuilder"
)

const (
	tableName = "reservations"

	// uniqueViolation код ошибки PostgreSQL для нарушения уникального индекса
	uniqueViolation = "23505"
)

var columns = []string{
	"id",
	"venue_id",
	"venue_name",
	"customer_id",
	"customer_name",
	"customer_phone",
	"reservation_date",
	"start_time",
	"end_time",
	"price",
	"payment_method",
	"payment_proof_ref",
	"kind",
	"status",
	"version",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями площадок
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую запись (бронирование или ручную блокировку слота)
// Уникальный индекс по (venue_id, reservation_date, start_time) среди неотменённых записей
// превращается в ErrSlotTaken
func (r *Repository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableName).
		Columns(
			"venue_id",
			"venue_name",
			"customer_id",
			"customer_name",
			"customer_phone",
			"reservation_date",
			"start_time",
			"end_time",
			"price",
			"payment_method",
			"payment_proof_ref",
			"kind",
			"status",
		).
		Values(
			res.VenueID,
			res.VenueName,
			res.CustomerID,
			res.CustomerName,
			res.CustomerPhone,
			res.Date,
			res.StartTime,
			res.EndTime,
			res.Price,
			res.PaymentMethod,
			res.PaymentProofRef,
			res.Kind,
			res.Status,
		).
		Suffix("RETURNING id, version, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&res.ID,
		&res.Version,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: venue=%d date=%s time=%s", ErrSlotTaken, res.VenueID, res.Date, res.StartTime)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	return res, nil
}

// GetByID получает запись по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	res, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %v", ErrScanRow, err)
	}

	return res, nil
}

// List получает записи площадки с фильтрацией по равенству полей
// Сортировка: сначала созданные последними
// Внутри транзакции строки блокируются (FOR UPDATE)
func (r *Repository) List(ctx context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"venue_id": filter.VenueID})

	if filter.Date != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"reservation_date": *filter.Date})
	}

	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			statuses[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": statuses})
	}

	if filter.StartTime != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"start_time": filter.StartTime.String()})
	}

	if filter.Kind != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"kind": string(*filter.Kind)})
	}

	selectBuilder = selectBuilder.OrderBy("created_at DESC", "id DESC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	reservations := make([]*domain.Reservation, 0)
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan reservation: %v", ErrScanRow, err)
		}
		reservations = append(reservations, res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return reservations, nil
}

// UpdateStatus меняет статус с проверкой версии (compare-and-swap)
// Если запись изменили после чтения, возвращает ErrVersionConflict и ничего не пишет
func (r *Repository) UpdateStatus(ctx context.Context, id, expectedVersion int64, status domain.ReservationStatus) (*domain.Reservation, error) {
	return r.casUpdate(ctx, "UpdateStatus", id, expectedVersion, map[string]interface{}{
		"status": status,
	}, nil)
}

// ConfirmPayment записывает подтверждение оплаты и переводит pending -> confirmed одной записью
func (r *Repository) ConfirmPayment(ctx context.Context, id, expectedVersion int64, method, proofRef string) (*domain.Reservation, error) {
	return r.casUpdate(ctx, "ConfirmPayment", id, expectedVersion, map[string]interface{}{
		"status":            domain.StatusConfirmed,
		"payment_method":    method,
		"payment_proof_ref": proofRef,
	}, squirrel.Eq{"status": string(domain.StatusPending)})
}

func (r *Repository) casUpdate(
	ctx context.Context,
	op string,
	id, expectedVersion int64,
	set map[string]interface{},
	extra squirrel.Sqlizer,
) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update(tableName).
		SetMap(set).
		Set("version", squirrel.Expr("version + 1")).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": id, "version": expectedVersion})

	if extra != nil {
		updateBuilder = updateBuilder.Where(extra)
	}

	query, args, err := updateBuilder.
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: %s - build update query: %v", ErrBuildQuery, op, err)
	}

	res, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s - id=%d version=%d", ErrVersionConflict, op, id, expectedVersion)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	return res, nil
}

// DeleteBlock удаляет ручную блокировку слота
// Клиентские бронирования физически не удаляются никогда
func (r *Repository) DeleteBlock(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(tableName).
		Where(squirrel.Eq{"id": id, "kind": string(domain.KindBlock)}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteBlock - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteBlock - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteBlock - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrReservationNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReservation(row rowScanner) (*domain.Reservation, error) {
	var res domain.Reservation
	var date time.Time
	var createdAt, updatedAt sql.NullTime
	var customerPhone, paymentMethod, paymentProofRef sql.NullString

	err := row.Scan(
		&res.ID,
		&res.VenueID,
		&res.VenueName,
		&res.CustomerID,
		&res.CustomerName,
		&customerPhone,
		&date,
		&res.StartTime,
		&res.EndTime,
		&res.Price,
		&paymentMethod,
		&paymentProofRef,
		&res.Kind,
		&res.Status,
		&res.Version,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	res.Date = date.Format(domain.DateFormat)
	res.CustomerPhone = nullString(customerPhone)
	res.PaymentMethod = nullString(paymentMethod)
	res.PaymentProofRef = nullString(paymentProofRef)
	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	return &res, nil
}

func nullString(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
