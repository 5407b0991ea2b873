package get_slots

import "errors"

var (
	// ErrAreaNotFound retornado quando a área não existe
	ErrAreaNotFound = errors.New("get_slots: area not found")

	// ErrInvalidInput retornado quando os dados de entrada são inválidos
	ErrInvalidInput = errors.New("get_slots: invalid input data")

	// ErrInternal retornado em erros internos do usecase
	ErrInternal = errors.New("get_slots: internal error")
)
