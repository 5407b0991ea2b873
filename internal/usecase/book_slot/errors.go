package book_slot

import "errors"

var (
	// ErrAreaNotFound retornado quando a área não existe
	ErrAreaNotFound = errors.New("book_slot: area not found")

	// ErrResidentNotFound retornado quando o solicitante não existe no cadastro
	ErrResidentNotFound = errors.New("book_slot: requester not found")

	// ErrInvalidDate retornado quando a data da reserva já passou
	ErrInvalidDate = errors.New("book_slot: invalid reservation date")

	// ErrDurationTooLong retornado quando a duração excede o máximo da área
	ErrDurationTooLong = errors.New("book_slot: duration exceeds area maximum")

	// ErrOutsideOpeningHours retornado quando a janela sai do expediente da área
	ErrOutsideOpeningHours = errors.New("book_slot: window outside opening hours")

	// ErrSlotInPast retornado quando o horário de início já passou hoje
	ErrSlotInPast = errors.New("book_slot: slot is in the past")

	// ErrSlotTaken retornado quando alguma hora da janela já está ocupada
	// (inclusive quando a disputa só aparece no commit da transação)
	ErrSlotTaken = errors.New("book_slot: slot is taken")

	// ErrInvalidInput retornado quando os dados de entrada são inválidos
	ErrInvalidInput = errors.New("book_slot: invalid input data")

	// ErrInternal retornado em erros internos do usecase
	ErrInternal = errors.New("book_slot: internal error")
)
