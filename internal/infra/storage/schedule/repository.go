package schedule

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/clinicore/CBS-BookingService/internal/domain"
	"github.com/clinicore/CBS-BookingService/pkg/dbmetrics"
	"github.com/clinicore/CBS-BookingService/pkg/psqlbuilder"
	"github.com/clinicore/CBS-BookingService/pkg/types"
)

var configColumns = []string{
	"id",
	"clinic_id",
	"specialization_id",
	"weekdays",
	"start_time",
	"end_time",
	"slot_duration_minutes",
	"lunch_start",
	"lunch_end",
	"valid_from",
	"valid_until",
	"active",
	"created_at",
	"updated_at",
}

// Repository репозиторий конфигураций расписания
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория конфигураций
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую конфигурацию расписания
func (r *Repository) Create(ctx context.Context, config *domain.ScheduleConfig) (*domain.ScheduleConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("schedule_configs").
		Columns(
			"clinic_id",
			"specialization_id",
			"weekdays",
			"start_time",
			"end_time",
			"slot_duration_minutes",
			"lunch_start",
			"lunch_end",
			"valid_from",
			"valid_until",
			"active",
		).
		Values(
			config.ClinicID,
			config.SpecializationID,
			pq.Array(config.Weekdays),
			config.StartTime,
			config.EndTime,
			config.SlotDurationMinutes,
			config.LunchStart,
			config.LunchEnd,
			config.ValidFrom,
			config.ValidUntil,
			config.Active,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&config.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	config.CreatedAt = createdAt.Time
	config.UpdatedAt = updatedAt.Time

	return config, nil
}

// GetByID получает конфигурацию по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.ScheduleConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(configColumns...).
		From("schedule_configs").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	config, err := scanConfig(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan config: %v", ErrScanRow, err)
	}

	return config, nil
}

// GetActiveForDate получает действующую конфигурацию для пары клиника+специализация на дату
// Учитывает окно валидности (valid_from/valid_until). При пересечении окон
// побеждает конфигурация с самой поздней valid_from. Проверка дня недели
// остается на вызывающей стороне: отсутствие конфигурации и несовпадение
// дня недели - разные случаи с разным поведением.
func (r *Repository) GetActiveForDate(ctx context.Context, clinicID, specializationID int64, date time.Time) (*domain.ScheduleConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(configColumns...).
		From("schedule_configs").
		Where(squirrel.Eq{
			"clinic_id":         clinicID,
			"specialization_id": specializationID,
			"active":            true,
		}).
		Where(squirrel.Or{
			squirrel.Eq{"valid_from": nil},
			squirrel.LtOrEq{"valid_from": date},
		}).
		Where(squirrel.Or{
			squirrel.Eq{"valid_until": nil},
			squirrel.GtOrEq{"valid_until": date},
		}).
		OrderBy("valid_from DESC NULLS LAST").
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveForDate - build select query: %v", ErrBuildQuery, err)
	}

	config, err := scanConfig(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveForDate - scan config: %v", ErrScanRow, err)
	}

	return config, nil
}

// GetCurrentActive получает текущую действующую конфигурацию пары (без привязки к дате)
// Используется при замещении конфигурации новой версией
func (r *Repository) GetCurrentActive(ctx context.Context, clinicID, specializationID int64) (*domain.ScheduleConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(configColumns...).
		From("schedule_configs").
		Where(squirrel.Eq{
			"clinic_id":         clinicID,
			"specialization_id": specializationID,
			"active":            true,
		}).
		Where(squirrel.Eq{"valid_until": nil}).
		OrderBy("valid_from DESC NULLS LAST").
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetCurrentActive - build select query: %v", ErrBuildQuery, err)
	}

	config, err := scanConfig(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetCurrentActive - scan config: %v", ErrScanRow, err)
	}

	return config, nil
}

// ListByClinicAndSpecialization получает все конфигурации пары, включая неактивные
func (r *Repository) ListByClinicAndSpecialization(ctx context.Context, clinicID, specializationID int64) ([]*domain.ScheduleConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(configColumns...).
		From("schedule_configs").
		Where(squirrel.Eq{
			"clinic_id":         clinicID,
			"specialization_id": specializationID,
		}).
		OrderBy("valid_from DESC NULLS LAST, id DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByClinicAndSpecialization - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByClinicAndSpecialization - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	configs := make([]*domain.ScheduleConfig, 0)
	for rows.Next() {
		config, err := scanConfig(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByClinicAndSpecialization - scan row: %v", ErrScanRow, err)
		}
		configs = append(configs, config)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByClinicAndSpecialization - rows error: %v", ErrScanRow, err)
	}

	return configs, nil
}

// BoundValidity ограничивает окно валидности конфигурации датой until
// Конфигурация остается активной для исторических запросов внутри окна
func (r *Repository) BoundValidity(ctx context.Context, id int64, until time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("schedule_configs").
		Set("valid_until", until).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: BoundValidity - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: BoundValidity - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: BoundValidity - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrConfigNotFound
	}

	return nil
}

// Deactivate помечает конфигурацию неактивной
func (r *Repository) Deactivate(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("schedule_configs").
		Set("active", false).
		Set("updated_at", squirrel.Expr("NOW()")).
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
		return ErrConfigNotFound
	}

	return nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanConfig(row rowScanner) (*domain.ScheduleConfig, error) {
	var config domain.ScheduleConfig
	var weekdays pq.Int64Array
	var lunchStart, lunchEnd sql.NullString
	var validFrom, validUntil sql.NullTime
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&config.ID,
		&config.ClinicID,
		&config.SpecializationID,
		&weekdays,
		&config.StartTime,
		&config.EndTime,
		&config.SlotDurationMinutes,
		&lunchStart,
		&lunchEnd,
		&validFrom,
		&validUntil,
		&config.Active,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	config.Weekdays = make([]int, len(weekdays))
	for i, d := range weekdays {
		config.Weekdays[i] = int(d)
	}

	if lunchStart.Valid && lunchEnd.Valid {
		start, err := scanTime(lunchStart.String)
		if err != nil {
			return nil, err
		}
		end, err := scanTime(lunchEnd.String)
		if err != nil {
			return nil, err
		}
		config.LunchStart = &start
		config.LunchEnd = &end
	}

	if validFrom.Valid {
		config.ValidFrom = &validFrom.Time
	}
	if validUntil.Valid {
		config.ValidUntil = &validUntil.Time
	}

	config.CreatedAt = createdAt.Time
	config.UpdatedAt = updatedAt.Time

	return &config, nil
}

func scanTime(raw string) (types.TimeString, error) {
	var ts types.TimeString
	if err := ts.Scan(raw); err != nil {
		return "", err
	}
	return ts, nil
}
