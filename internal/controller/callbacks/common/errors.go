package common

import (
	"errors"

	"github.com/quickserve/quickserve_bot/internal/api"
	"github.com/quickserve/quickserve_bot/internal/service"
)

// Общие ошибки для обработчиков
var (
	ErrNoMessage       = errors.New("no message in callback")
	ErrInvalidFormat   = errors.New("invalid callback format")
	ErrListingNotFound = errors.New("listing not found")
	ErrBookingNotFound = errors.New("booking not found")
)

// ErrorMessage возвращает пользовательское сообщение для ошибки.
// Ошибки бэкенда с текстом показываются как есть: клиент не решает
// за сервер, какие переходы допустимы.
func ErrorMessage(err error) string {
	switch {
	case errors.Is(err, api.ErrUnauthorized):
		return "❌ Сессия истекла. Войдите через /login"
	case errors.Is(err, api.ErrForbidden):
		return "❌ Недостаточно прав для этого действия"
	case errors.Is(err, service.ErrLocationRequired):
		return "📍 Сначала укажите свою локацию через /location"
	case errors.Is(err, ErrNoMessage):
		return "❌ Ошибка обработки сообщения"
	case errors.Is(err, ErrInvalidFormat):
		return "❌ Неверный формат данных"
	case errors.Is(err, ErrListingNotFound):
		return "❌ Объявление не найдено"
	case errors.Is(err, ErrBookingNotFound):
		return "❌ Бронирование не найдено"
	default:
		if msg := api.ServerMessage(err); msg != "" {
			return "❌ " + msg
		}
		return "❌ Произошла ошибка"
	}
}
