package area

import "errors"

var (
	// ErrAreaNotFound retornado quando a área não existe
	ErrAreaNotFound = errors.New("area.repository: area not found")

	// ErrBuildQuery retornado quando a montagem do SQL falha
	ErrBuildQuery = errors.New("area.repository: failed to build query")

	// ErrExecQuery retornado quando a execução do SQL falha
	ErrExecQuery = errors.New("area.repository: failed to execute query")

	// ErrScanRow retornado quando o scan do resultado falha
	ErrScanRow = errors.New("area.repository: failed to scan row")
)
