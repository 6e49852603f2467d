package exception

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/clinicore/CBS-BookingService/internal/domain"
	"github.com/clinicore/CBS-BookingService/pkg/dbmetrics"
	"github.com/clinicore/CBS-BookingService/pkg/psqlbuilder"
	"github.com/clinicore/CBS-BookingService/pkg/types"
)

var exceptionColumns = []string{
	"id",
	"clinic_id",
	"specialization_id",
	"exception_date",
	"start_time",
	"end_time",
	"kind",
	"reason",
	"active",
	"created_at",
}

// Repository репозиторий исключений расписания (блокировок времени)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория исключений
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое исключение расписания
func (r *Repository) Create(ctx context.Context, exc *domain.ScheduleException) (*domain.ScheduleException, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("schedule_exceptions").
		Columns(
			"clinic_id",
			"specialization_id",
			"exception_date",
			"start_time",
			"end_time",
			"kind",
			"reason",
			"active",
		).
		Values(
			exc.ClinicID,
			exc.SpecializationID,
			exc.Date,
			exc.StartTime,
			exc.EndTime,
			exc.Kind,
			exc.Reason,
			exc.Active,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&exc.ID, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	exc.CreatedAt = createdAt.Time

	return exc, nil
}

// GetByID получает исключение по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.ScheduleException, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(exceptionColumns...).
		From("schedule_exceptions").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	exc, err := scanException(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrExceptionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan exception: %v", ErrScanRow, err)
	}

	return exc, nil
}

// GetActiveByDate получает активные исключения пары клиника+специализация на дату
func (r *Repository) GetActiveByDate(ctx context.Context, clinicID, specializationID int64, date time.Time) ([]*domain.ScheduleException, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(exceptionColumns...).
		From("schedule_exceptions").
		Where(squirrel.Eq{
			"clinic_id":         clinicID,
			"specialization_id": specializationID,
			"exception_date":    date,
			"active":            true,
		}).
		OrderBy("start_time ASC NULLS FIRST").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	exceptions := make([]*domain.ScheduleException, 0)
	for rows.Next() {
		exc, err := scanException(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetActiveByDate - scan row: %v", ErrScanRow, err)
		}
		exceptions = append(exceptions, exc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetActiveByDate - rows error: %v", ErrScanRow, err)
	}

	return exceptions, nil
}

// Deactivate помечает исключение неактивным
func (r *Repository) Deactivate(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("schedule_exceptions").
		Set("active", false).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Deactivate - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Deactivate - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Deactivate - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrExceptionNotFound
	}

	return nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanException(row rowScanner) (*domain.ScheduleException, error) {
	var exc domain.ScheduleException
	var startTime, endTime sql.NullString
	var createdAt sql.NullTime

	err := row.Scan(
		&exc.ID,
		&exc.ClinicID,
		&exc.SpecializationID,
		&exc.Date,
		&startTime,
		&endTime,
		&exc.Kind,
		&exc.Reason,
		&exc.Active,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	if startTime.Valid {
		var ts types.TimeString
		if err := ts.Scan(startTime.String); err != nil {
			return nil, err
		}
		exc.StartTime = &ts
	}
	if endTime.Valid {
		var ts types.TimeString
		if err := ts.Scan(endTime.String); err != nil {
			return nil, err
		}
		exc.EndTime = &ts
	}

	exc.CreatedAt = createdAt.Time

	return &exc, nil
}
