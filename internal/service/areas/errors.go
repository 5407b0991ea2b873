package areas

import "errors"

var (
	// ErrAreaNotFound retornado quando a área não existe
	ErrAreaNotFound = errors.New("area not found")

	// ErrAccessDenied retornado quando o ator não é síndico
	ErrAccessDenied = errors.New("access denied")

	// ErrConfirmationRequired retornado quando a exclusão vem sem o
	// confirm=true — excluir área derruba as reservas em cascata
	ErrConfirmationRequired = errors.New("deletion requires confirmation")

	// ErrInvalidInput retornado quando os dados de entrada são inválidos
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal retornado em erros internos do serviço
	ErrInternal = errors.New("service: internal error")
)
