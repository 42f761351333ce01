package notifier

import "errors"

var (
	// ErrInvalidConfig возвращается при некорректной конфигурации отправителя
	ErrInvalidConfig = errors.New("notifier: invalid configuration")

	// ErrSend возвращается, если уведомление не удалось отправить
	ErrSend = errors.New("notifier: failed to send notification")
)
