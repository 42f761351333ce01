package invitations

import (
	"fmt"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("invitations: invalid input data: %w", domain.ErrMalformedInput)

	// ErrCodeNotFound возвращается, если кода нет в журнале
	ErrCodeNotFound = fmt.Errorf("invitations: code not found: %w", domain.ErrNotFound)

	// ErrCodeAlreadyUsed возвращается, если код уже использован или площадка передана
	ErrCodeAlreadyUsed = fmt.Errorf("invitations: code already used: %w", domain.ErrAlreadyUsed)

	// ErrCodeExpired возвращается для истекшего кода
	ErrCodeExpired = fmt.Errorf("invitations: code expired: %w", domain.ErrExpired)

	// ErrHolderNotFound возвращается, если у площадки нет администратора для передачи
	ErrHolderNotFound = fmt.Errorf("invitations: venue has no administrator: %w", domain.ErrNotFound)

	// ErrSameAdmin возвращается при передаче площадки её текущему администратору
	ErrSameAdmin = fmt.Errorf("invitations: venue already belongs to this administrator: %w", domain.ErrInvalidTransition)

	// ErrVenueHeld возвращается при активации кода площадки, у которой уже есть другой администратор
	// Смена администратора выполняется только через Transfer
	ErrVenueHeld = fmt.Errorf("invitations: venue is held by another administrator: %w", domain.ErrInvalidTransition)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = fmt.Errorf("invitations: %w", domain.ErrStorageFailure)
)
