package area

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/condohub/reservation-service/internal/domain"
	"github.com/condohub/reservation-service/pkg/dbmetrics"
	"github.com/condohub/reservation-service/pkg/psqlbuilder"
)

const areaColumns = "id, condo_id, name, open_time, close_time, requires_approval, max_duration_hours, created_at, updated_at"

// Repository repositório de áreas comuns
type Repository struct {
	db DBExecutor
}

// NewRepository cria o repositório de áreas
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create insere uma nova área e devolve o registro completo
func (r *Repository) Create(ctx context.Context, area *domain.Area) (*domain.Area, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("areas").
		Columns(
			"condo_id",
			"name",
			"open_time",
			"close_time",
			"requires_approval",
			"max_duration_hours",
		).
		Values(
			area.CondoID,
			area.Name,
			area.OpenTime,
			area.CloseTime,
			area.RequiresApproval,
			area.MaxDurationHours,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&area.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	area.CreatedAt = createdAt.Time
	area.UpdatedAt = updatedAt.Time

	return area, nil
}

// GetByID busca uma área pelo ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Area, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"condo_id",
		"name",
		"open_time",
		"close_time",
		"requires_approval",
		"max_duration_hours",
		"created_at",
		"updated_at",
	).
		From("areas").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var area domain.Area
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&area.ID,
		&area.CondoID,
		&area.Name,
		&area.OpenTime,
		&area.CloseTime,
		&area.RequiresApproval,
		&area.MaxDurationHours,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrAreaNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan area: %v", ErrScanRow, err)
	}

	area.CreatedAt = createdAt.Time
	area.UpdatedAt = updatedAt.Time

	return &area, nil
}

// ListByCondo lista as áreas de um condomínio ordenadas por nome
func (r *Repository) ListByCondo(ctx context.Context, condoID int64) ([]*domain.Area, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"condo_id",
		"name",
		"open_time",
		"close_time",
		"requires_approval",
		"max_duration_hours",
		"created_at",
		"updated_at",
	).
		From("areas").
		Where(squirrel.Eq{"condo_id": condoID}).
		OrderBy("name ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByCondo - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByCondo - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	areas := make([]*domain.Area, 0)
	for rows.Next() {
		var area domain.Area
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&area.ID,
			&area.CondoID,
			&area.Name,
			&area.OpenTime,
			&area.CloseTime,
			&area.RequiresApproval,
			&area.MaxDurationHours,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByCondo - scan area: %v", ErrScanRow, err)
		}

		area.CreatedAt = createdAt.Time
		area.UpdatedAt = updatedAt.Time
		areas = append(areas, &area)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByCondo - rows error: %v", ErrScanRow, err)
	}

	return areas, nil
}

// Update aplica uma atualização parcial e devolve o registro atualizado
func (r *Repository) Update(ctx context.Context, id int64, upd domain.AreaUpdate) (*domain.Area, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("areas").
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	if upd.Name != nil {
		updateBuilder = updateBuilder.Set("name", *upd.Name)
	}
	if upd.OpenTime != nil {
		updateBuilder = updateBuilder.Set("open_time", *upd.OpenTime)
	}
	if upd.CloseTime != nil {
		updateBuilder = updateBuilder.Set("close_time", *upd.CloseTime)
	}
	if upd.RequiresApproval != nil {
		updateBuilder = updateBuilder.Set("requires_approval", *upd.RequiresApproval)
	}
	if upd.MaxDurationHours != nil {
		updateBuilder = updateBuilder.Set("max_duration_hours", *upd.MaxDurationHours)
	}

	query, args, err := updateBuilder.
		Suffix("RETURNING " + areaColumns).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	var area domain.Area
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&area.ID,
		&area.CondoID,
		&area.Name,
		&area.OpenTime,
		&area.CloseTime,
		&area.RequiresApproval,
		&area.MaxDurationHours,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrAreaNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - scan area: %v", ErrScanRow, err)
	}

	area.CreatedAt = createdAt.Time
	area.UpdatedAt = updatedAt.Time

	return &area, nil
}

// Delete remove a área; as reservas caem junto via ON DELETE CASCADE
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("areas").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrAreaNotFound
	}

	return nil
}
