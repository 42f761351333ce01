package invitation

import "errors"

var (
	// ErrDuplicateCode возвращается при повторном создании уже существующего кода
	ErrDuplicateCode = errors.New("invitation.repository: code already exists")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("invitation.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("invitation.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("invitation.repository: failed to scan row")
)
