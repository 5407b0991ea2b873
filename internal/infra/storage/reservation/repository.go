package reservation

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/condohub/reservation-service/internal/domain"
	"github.com/condohub/reservation-service/pkg/dbmetrics"
	"github.com/condohub/reservation-service/pkg/psqlbuilder"
)

var reservationColumns = []string{
	"id",
	"condo_id",
	"area_id",
	"area_name",
	"reservation_date",
	"start_time",
	"end_time",
	"requester_id",
	"requester_name",
	"apartment_label",
	"status",
	"viewed_by_manager",
	"viewed_by_requester",
	"rejection_reason",
	"rejected_at",
	"created_at",
	"updated_at",
}

// Repository repositório de reservas
type Repository struct {
	db DBExecutor
}

// NewRepository cria o repositório de reservas
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create insere uma nova reserva.
// Se o contexto carrega uma transação ativa, usa ela — é o caminho do
// fluxo de criação, onde a leitura de disponibilidade e o insert
// precisam ser atômicos.
func (r *Repository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("reservations").
		Columns(
			"condo_id",
			"area_id",
			"area_name",
			"reservation_date",
			"start_time",
			"end_time",
			"requester_id",
			"requester_name",
			"apartment_label",
			"status",
			"viewed_by_manager",
			"viewed_by_requester",
		).
		Values(
			res.CondoID,
			res.AreaID,
			res.AreaName,
			res.ReservationDate,
			res.StartTime,
			res.EndTime,
			res.RequesterID,
			res.RequesterName,
			res.ApartmentLabel,
			res.Status,
			res.ViewedByManager,
			res.ViewedByRequester,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&res.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	return res, nil
}

// GetByID busca uma reserva pelo ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	res, err := r.scanReservation(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %v", ErrScanRow, err)
	}

	return res, nil
}

// GetByFilter busca reservas do condomínio com filtros opcionais.
//
// Dentro de uma transação e com filtro de data única + área, adiciona
// FOR UPDATE — é a leitura de disponibilidade do fluxo de criação, que
// precisa travar as linhas contra corridas.
func (r *Repository) GetByFilter(ctx context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"condo_id": filter.CondoID})

	if filter.AreaID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"area_id": *filter.AreaID})
	}
	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"reservation_date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"reservation_date": *filter.EndDate})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeHistory {
		// Sem status explícito e sem histórico: só o que ainda segura horário
		holdStatusStrings := make([]string, len(domain.HoldStatuses))
		for i, s := range domain.HoldStatuses {
			holdStatusStrings[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": holdStatusStrings})
	}

	singleDate := filter.StartDate != nil && filter.EndDate != nil && filter.StartDate.Equal(*filter.EndDate)

	if singleDate {
		selectBuilder = selectBuilder.OrderBy("start_time ASC")
	} else {
		selectBuilder = selectBuilder.OrderBy("reservation_date DESC, start_time DESC")
	}

	if dbmetrics.IsInTransaction(ctx) && singleDate && filter.AreaID != nil {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanReservations(rows)
}

// GetByRequester lista as reservas de um morador, mais recentes primeiro
func (r *Repository) GetByRequester(ctx context.Context, condoID, requesterID int64) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"condo_id": condoID, "requester_id": requesterID}).
		OrderBy("reservation_date DESC, start_time DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByRequester - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByRequester - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanReservations(rows)
}

// SetDecision grava a decisão do síndico sobre a reserva.
// Zera viewed_by_requester para a decisão reaparecer no feed do morador.
// O filtro por from fecha a janela entre a leitura no serviço e o
// update: decisão concorrente deixa a linha fora do status esperado e
// o update não encosta nela.
func (r *Repository) SetDecision(ctx context.Context, id int64, status domain.ReservationStatus, reason *string, rejectedAt *time.Time, from ...domain.ReservationStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("reservations").
		Set("status", status).
		Set("viewed_by_requester", false).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	if len(from) > 0 {
		updateBuilder = updateBuilder.Where(squirrel.Eq{"status": from})
	}

	if reason != nil {
		updateBuilder = updateBuilder.Set("rejection_reason", *reason)
	}
	if rejectedAt != nil {
		updateBuilder = updateBuilder.Set("rejected_at", *rejectedAt)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: SetDecision - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetDecision - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetDecision - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		if len(from) > 0 {
			return ErrStaleStatus
		}
		return ErrReservationNotFound
	}

	return nil
}

// MarkSeenByManager marca reservas do condomínio como vistas pelo síndico.
// Idempotente: ids já vistos ou inexistentes são ignorados.
func (r *Repository) MarkSeenByManager(ctx context.Context, condoID int64, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("viewed_by_manager", true).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"condo_id": condoID, "id": ids}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkSeenByManager - build update query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: MarkSeenByManager - execute update: %v", ErrExecQuery, err)
	}

	return nil
}

// MarkSeenByRequester marca reservas como vistas pelo morador.
// O filtro por requester_id garante que ninguém marca reserva alheia.
func (r *Repository) MarkSeenByRequester(ctx context.Context, condoID, requesterID int64, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("viewed_by_requester", true).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{
			"condo_id":     condoID,
			"requester_id": requesterID,
			"id":           ids,
		}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkSeenByRequester - build update query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: MarkSeenByRequester - execute update: %v", ErrExecQuery, err)
	}

	return nil
}

// Delete remove fisicamente a reserva (cancelamento pelo próprio morador)
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("reservations").
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
		return ErrReservationNotFound
	}

	return nil
}

// CountByArea conta as reservas de uma área.
// Usado para informar quantas reservas a exclusão da área vai levar junto.
func (r *Repository) CountByArea(ctx context.Context, areaID int64) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("reservations").
		Where(squirrel.Eq{"area_id": areaID}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountByArea - build select query: %v", ErrBuildQuery, err)
	}

	var count int64
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountByArea - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// DatesTouchedByArea lista as datas distintas com reserva na área.
// Usado para invalidar o cache de grade antes de excluir a área.
func (r *Repository) DatesTouchedByArea(ctx context.Context, areaID int64) ([]time.Time, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("DISTINCT reservation_date").
		From("reservations").
		Where(squirrel.Eq{"area_id": areaID}).
		OrderBy("reservation_date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: DatesTouchedByArea - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: DatesTouchedByArea - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	dates := make([]time.Time, 0)
	for rows.Next() {
		var date time.Time
		if err := rows.Scan(&date); err != nil {
			return nil, fmt.Errorf("%w: DatesTouchedByArea - scan date: %v", ErrScanRow, err)
		}
		dates = append(dates, date)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: DatesTouchedByArea - rows error: %v", ErrScanRow, err)
	}

	return dates, nil
}

// GetManagerFeed busca as reservas que alimentam o feed do síndico:
// pendentes ou ainda não vistas por ele
func (r *Repository) GetManagerFeed(ctx context.Context, condoID int64) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"condo_id": condoID}).
		Where(squirrel.Or{
			squirrel.Eq{"status": domain.StatusPending},
			squirrel.Eq{"viewed_by_manager": false},
		}).
		OrderBy("created_at DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetManagerFeed - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetManagerFeed - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanReservations(rows)
}

// GetRequesterFeed busca as decisões ainda não vistas pelo morador.
// Pendentes ficam de fora: não há decisão para mostrar.
func (r *Repository) GetRequesterFeed(ctx context.Context, condoID, requesterID int64) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{
			"condo_id":            condoID,
			"requester_id":        requesterID,
			"viewed_by_requester": false,
		}).
		Where(squirrel.NotEq{"status": domain.StatusPending}).
		OrderBy("updated_at DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetRequesterFeed - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetRequesterFeed - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanReservations(rows)
}

// GetPendingOlderThan busca pendências criadas antes do corte.
// Alimenta o resumo diário enviado por email ao síndico.
func (r *Repository) GetPendingOlderThan(ctx context.Context, cutoff time.Time) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"status": domain.StatusPending}).
		Where(squirrel.Lt{"created_at": cutoff}).
		OrderBy("condo_id ASC, created_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetPendingOlderThan - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetPendingOlderThan - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanReservations(rows)
}

// scanReservation lê uma linha única
func (r *Repository) scanReservation(row *sql.Row) (*domain.Reservation, error) {
	var res domain.Reservation
	var createdAt, updatedAt sql.NullTime
	var rejectedAt sql.NullTime

	err := row.Scan(
		&res.ID,
		&res.CondoID,
		&res.AreaID,
		&res.AreaName,
		&res.ReservationDate,
		&res.StartTime,
		&res.EndTime,
		&res.RequesterID,
		&res.RequesterName,
		&res.ApartmentLabel,
		&res.Status,
		&res.ViewedByManager,
		&res.ViewedByRequester,
		&res.RejectionReason,
		&rejectedAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if rejectedAt.Valid {
		res.RejectedAt = &rejectedAt.Time
	}
	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	return &res, nil
}

// scanReservations lê o resultado de um QueryContext em um slice
func (r *Repository) scanReservations(rows *sql.Rows) ([]*domain.Reservation, error) {
	reservations := make([]*domain.Reservation, 0)

	for rows.Next() {
		var res domain.Reservation
		var createdAt, updatedAt sql.NullTime
		var rejectedAt sql.NullTime

		err := rows.Scan(
			&res.ID,
			&res.CondoID,
			&res.AreaID,
			&res.AreaName,
			&res.ReservationDate,
			&res.StartTime,
			&res.EndTime,
			&res.RequesterID,
			&res.RequesterName,
			&res.ApartmentLabel,
			&res.Status,
			&res.ViewedByManager,
			&res.ViewedByRequester,
			&res.RejectionReason,
			&rejectedAt,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanReservations - scan reservation: %v", ErrScanRow, err)
		}

		if rejectedAt.Valid {
			res.RejectedAt = &rejectedAt.Time
		}
		res.CreatedAt = createdAt.Time
		res.UpdatedAt = updatedAt.Time

		reservations = append(reservations, &res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanReservations - rows error: %v", ErrScanRow, err)
	}

	return reservations, nil
}
