package reservation

import "errors"

var (
	// ErrReservationNotFound retornado quando a reserva não existe
	ErrReservationNotFound = errors.New("reservation.repository: reservation not found")

	// ErrStaleStatus retornado quando a reserva saiu do status esperado
	// entre a leitura e a gravação da decisão
	ErrStaleStatus = errors.New("reservation.repository: reservation no longer in expected status")

	// ErrBuildQuery retornado quando a montagem do SQL falha
	ErrBuildQuery = errors.New("reservation.repository: failed to build query")

	// ErrExecQuery retornado quando a execução do SQL falha
	ErrExecQuery = errors.New("reservation.repository: failed to execute query")

	// ErrScanRow retornado quando o scan do resultado falha
	ErrScanRow = errors.New("reservation.repository: failed to scan row")
)
