package directory

import "errors"

var (
	// ErrResidentNotFound retornado quando o morador não existe no cadastro
	ErrResidentNotFound = errors.New("directory client: resident not found")

	// ErrInternal retornado em erros internos do cliente
	ErrInternal = errors.New("directory client: internal error")

	// ErrInvalidResponse retornado quando a resposta do serviço é inválida
	ErrInvalidResponse = errors.New("directory client: invalid response")

	// ErrServiceDegraded retornado quando o serviço de cadastro está fora.
	// Quem chama decide se o fluxo sobrevive sem os dados do morador.
	ErrServiceDegraded = errors.New("directory unavailable: graceful degradation applied")
)
