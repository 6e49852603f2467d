package legacyslot

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/clinicore/CBS-BookingService/internal/domain"
	"github.com/clinicore/CBS-BookingService/pkg/dbmetrics"
	"github.com/clinicore/CBS-BookingService/pkg/psqlbuilder"
)

// Repository репозиторий материализованных слотов старой модели
// Таблица пополняется только миграционными скриптами, сервис из нее читает
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория legacy слотов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByDate получает слоты пары клиника+специализация на дату
func (r *Repository) GetByDate(ctx context.Context, clinicID, specializationID int64, date time.Time) ([]*domain.LegacySlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"clinic_id",
		"specialization_id",
		"slot_date",
		"start_time",
		"end_time",
		"created_at",
	).
		From("legacy_slots").
		Where(squirrel.Eq{
			"clinic_id":         clinicID,
			"specialization_id": specializationID,
			"slot_date":         date,
		}).
		OrderBy("start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	slots := make([]*domain.LegacySlot, 0)
	for rows.Next() {
		var slot domain.LegacySlot
		err := rows.Scan(
			&slot.ID,
			&slot.ClinicID,
			&slot.SpecializationID,
			&slot.SlotDate,
			&slot.StartTime,
			&slot.EndTime,
			&slot.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByDate - scan row: %v", ErrScanRow, err)
		}
		slots = append(slots, &slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByDate - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}
