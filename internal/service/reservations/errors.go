package reservations

import "errors"

var (
	// ErrReservationNotFound retornado quando a reserva não existe
	ErrReservationNotFound = errors.New("reservation not found")

	// ErrAccessDenied retornado quando o ator não tem direito à operação
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidTransition retornado quando a mudança de status pedida
	// não é permitida a partir do status atual
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrBlankReason retornado quando a rejeição vem sem motivo
	ErrBlankReason = errors.New("rejection reason is required")

	// ErrInvalidInput retornado quando os dados de entrada são inválidos
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal retornado em erros internos do serviço
	ErrInternal = errors.New("service: internal error")
)
