package notifications

import "errors"

var (
	// ErrAccessDenied retornado quando o ator não tem direito ao feed
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput retornado quando os dados de entrada são inválidos
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal retornado em erros internos do serviço
	ErrInternal = errors.New("service: internal error")
)
