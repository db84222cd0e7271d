package formatting

import "github.com/quickserve/quickserve_bot/internal/model"

// BookingStatusDisplay представляет отображение статуса бронирования
type BookingStatusDisplay struct {
	Emoji string
	Text  string
}

// GetBookingStatusDisplay возвращает emoji и текст для статуса бронирования
func GetBookingStatusDisplay(status model.BookingStatus) BookingStatusDisplay {
	displays := map[model.BookingStatus]BookingStatusDisplay{
		model.BookingStatusPending:   {"⏳", "Ожидает подтверждения"},
		model.BookingStatusConfirmed: {"✅", "Подтверждено"},
		model.BookingStatusCompleted: {"✔️", "Завершено"},
		model.BookingStatusCancelled: {"❌", "Отменено"},
		model.BookingStatusRejected:  {"🚫", "Отклонено"},
	}

	if display, ok := displays[status]; ok {
		return display
	}

	return BookingStatusDisplay{"❓", "Неизвестно"}
}

// ApprovalDisplay представляет отображение статуса модерации объявления
type ApprovalDisplay struct {
	Emoji string
	Text  string
}

// GetApprovalDisplay возвращает emoji и текст для статуса модерации
func GetApprovalDisplay(state model.ApprovalState) ApprovalDisplay {
	displays := map[model.ApprovalState]ApprovalDisplay{
		model.ApprovalPending:  {"⏳", "На модерации"},
		model.ApprovalApproved: {"✅", "Одобрено"},
		model.ApprovalRejected: {"🚫", "Отклонено"},
	}

	if display, ok := displays[state]; ok {
		return display
	}

	return ApprovalDisplay{"❓", "Неизвестно"}
}
