package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-SlotReservationService/internal/domain"
	"github.com/m04kA/SMC-SlotReservationService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SlotReservationService/pkg/psqlbuilder"
)

// pgUniqueViolation SQLSTATE нарушения уникального индекса
const pgUniqueViolation = "23505"

var bookingColumns = []string{
	"id",
	"hold_id",
	"resource_id",
	"cart_id",
	"line_item_id",
	"order_id",
	"slot_start",
	"slot_end",
	"status",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает бронирование.
// Если в контексте передана активная транзакция, использует её.
// На одно удержание допускается одно бронирование (уникальный hold_id).
func (r *Repository) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(bookingColumns...).
		Values(
			b.ID,
			b.HoldID,
			b.ResourceID,
			b.CartID,
			b.LineItemID,
			b.OrderID,
			b.SlotStart,
			b.SlotEnd,
			b.Status,
			b.CreatedAt,
			b.UpdatedAt,
		).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation {
			return nil, fmt.Errorf("%w: hold_id=%s", ErrBookingExists, b.HoldID)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return b, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	b, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %w", ErrScanRow, err)
	}

	return b, nil
}

// GetInRange возвращает подтвержденные бронирования ресурса, пересекающие [start, end)
func (r *Repository) GetInRange(ctx context.Context, resourceID string, start, end time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"resource_id": resourceID}).
		Where(squirrel.Eq{"status": domain.BookingStatusConfirmed}).
		Where(squirrel.Lt{"slot_start": end}).
		Where(squirrel.Gt{"slot_end": start}).
		OrderBy("slot_start ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetInRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetInRange - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetInRange - scan booking: %w", ErrScanRow, err)
		}
		bookings = append(bookings, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetInRange - rows iteration: %w", ErrExecQuery, err)
	}

	return bookings, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var b domain.Booking
	var orderID sql.NullString
	var status string

	err := row.Scan(
		&b.ID,
		&b.HoldID,
		&b.ResourceID,
		&b.CartID,
		&b.LineItemID,
		&orderID,
		&b.SlotStart,
		&b.SlotEnd,
		&status,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if orderID.Valid {
		b.OrderID = &orderID.String
	}
	b.Status = domain.BookingStatus(status)
	b.SlotStart = b.SlotStart.UTC()
	b.SlotEnd = b.SlotEnd.UTC()

	return &b, nil
}
