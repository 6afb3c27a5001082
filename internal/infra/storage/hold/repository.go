package hold

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

// lineItemActiveIndex частичный индекс: одно активное удержание на позицию корзины
const lineItemActiveIndex = "holds_line_item_active_uidx"

var holdColumns = []string{
	"id",
	"resource_id",
	"cart_id",
	"line_item_id",
	"slot_start",
	"slot_end",
	"status",
	"expires_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий удержаний слотов (PostgreSQL)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория удержаний
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// LockResource берет advisory-lock ресурса до конца текущей транзакции.
// Сериализует все проверки пересечений по одному ресурсу.
func (r *Repository) LockResource(ctx context.Context, resourceID string) error {
	if !dbmetrics.IsInTransaction(ctx) {
		return fmt.Errorf("%w: LockResource - called outside of transaction", ErrTransaction)
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)
	if _, err := executor.ExecContext(ctx, "SELECT pg_advisory_xact_lock(hashtext($1))", resourceID); err != nil {
		return fmt.Errorf("%w: LockResource - resource=%s: %w", ErrExecQuery, resourceID, err)
	}

	return nil
}

// Create сохраняет новое удержание
func (r *Repository) Create(ctx context.Context, h *domain.Hold) (*domain.Hold, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("holds").
		Columns(
			"id",
			"resource_id",
			"cart_id",
			"line_item_id",
			"slot_start",
			"slot_end",
			"status",
			"expires_at",
			"created_at",
			"updated_at",
		).
		Values(
			h.ID,
			h.ResourceID,
			h.CartID,
			h.LineItemID,
			h.SlotStart,
			h.SlotEnd,
			h.Status,
			h.ExpiresAt,
			h.CreatedAt,
			h.UpdatedAt,
		).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation && pqErr.Constraint == lineItemActiveIndex {
			return nil, fmt.Errorf("%w: line_item_id=%s", ErrHoldExists, h.LineItemID)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return h, nil
}

// GetByID получает удержание по ID.
// Внутри транзакции строка блокируется (FOR UPDATE).
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Hold, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(holdColumns...).
		From("holds").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	h, err := scanHold(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrHoldNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan hold: %w", ErrScanRow, err)
	}

	return h, nil
}

// GetActiveInRange возвращает удержания ресурса, активные на момент now и пересекающие [start, end)
func (r *Repository) GetActiveInRange(ctx context.Context, resourceID string, start, end, now time.Time) ([]*domain.Hold, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(holdColumns...).
		From("holds").
		Where(squirrel.Eq{"resource_id": resourceID}).
		Where(squirrel.Eq{"status": domain.HoldStatusActive}).
		Where(squirrel.Gt{"expires_at": now}).
		Where(squirrel.Lt{"slot_start": end}).
		Where(squirrel.Gt{"slot_end": start}).
		OrderBy("slot_start ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveInRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveInRange - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	holds := make([]*domain.Hold, 0)
	for rows.Next() {
		h, err := scanHold(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetActiveInRange - scan hold: %w", ErrScanRow, err)
		}
		holds = append(holds, h)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetActiveInRange - rows iteration: %w", ErrExecQuery, err)
	}

	return holds, nil
}

// Release закрывает активные удержания, подходящие под фильтр.
// Уже истекшие по времени получают статус expired, остальные released.
// Возвращает количество закрытых удержаний; 0 не является ошибкой.
func (r *Repository) Release(ctx context.Context, filter domain.HoldReleaseFilter, now time.Time) (int, error) {
	if filter.HoldID == "" && filter.LineItemID == "" {
		return 0, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	where := squirrel.And{squirrel.Eq{"status": domain.HoldStatusActive}}
	if filter.HoldID != "" {
		where = append(where, squirrel.Eq{"id": filter.HoldID})
	}
	if filter.LineItemID != "" {
		where = append(where, squirrel.Eq{"line_item_id": filter.LineItemID})
	}
	if filter.CartID != "" {
		where = append(where, squirrel.Eq{"cart_id": filter.CartID})
	}

	query, args, err := psqlbuilder.Update("holds").
		Set("status", squirrel.Expr(
			"CASE WHEN expires_at <= ? THEN ? ELSE ? END",
			now, domain.HoldStatusExpired, domain.HoldStatusReleased,
		)).
		Set("updated_at", now).
		Where(where).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: Release - build update query: %v", ErrBuildQuery, err)
	}

	res, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: Release - execute update: %w", ErrExecQuery, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: Release - rows affected: %w", ErrExecQuery, err)
	}

	return int(affected), nil
}

// MarkPromoted переводит активное удержание в promoted
func (r *Repository) MarkPromoted(ctx context.Context, id string, now time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("holds").
		Set("status", domain.HoldStatusPromoted).
		Set("updated_at", now).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": domain.HoldStatusActive}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkPromoted - build update query: %v", ErrBuildQuery, err)
	}

	res, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: MarkPromoted - execute update: %w", ErrExecQuery, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: MarkPromoted - rows affected: %w", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrHoldNotActive
	}

	return nil
}

// ExpireStale переводит в expired до limit просроченных активных удержаний.
// Строки, заблокированные другими транзакциями, пропускаются (SKIP LOCKED).
func (r *Repository) ExpireStale(ctx context.Context, now time.Time, limit int) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	subQuery, subArgs, err := psqlbuilder.Select("id").
		From("holds").
		Where(squirrel.Eq{"status": domain.HoldStatusActive}).
		Where(squirrel.LtOrEq{"expires_at": now}).
		OrderBy("expires_at ASC").
		Limit(uint64(limit)).
		Suffix("FOR UPDATE SKIP LOCKED").
		PlaceholderFormat(squirrel.Question).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: ExpireStale - build select query: %v", ErrBuildQuery, err)
	}

	query, args, err := psqlbuilder.Update("holds").
		Set("status", domain.HoldStatusExpired).
		Set("updated_at", now).
		Where(squirrel.Expr("id IN ("+subQuery+")", subArgs...)).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: ExpireStale - build update query: %v", ErrBuildQuery, err)
	}

	res, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: ExpireStale - execute update: %w", ErrExecQuery, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: ExpireStale - rows affected: %w", ErrExecQuery, err)
	}

	return int(affected), nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanHold(row rowScanner) (*domain.Hold, error) {
	var h domain.Hold
	var status string

	err := row.Scan(
		&h.ID,
		&h.ResourceID,
		&h.CartID,
		&h.LineItemID,
		&h.SlotStart,
		&h.SlotEnd,
		&status,
		&h.ExpiresAt,
		&h.CreatedAt,
		&h.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	h.Status = domain.HoldStatus(status)
	h.SlotStart = h.SlotStart.UTC()
	h.SlotEnd = h.SlotEnd.UTC()
	h.ExpiresAt = h.ExpiresAt.UTC()

	return &h, nil
}
