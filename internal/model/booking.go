package model

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "PENDING"   // Создано клиентом, ждёт решения провайдера
	BookingStatusConfirmed BookingStatus = "CONFIRMED" // Подтверждено провайдером
	BookingStatusCompleted BookingStatus = "COMPLETED" // Завершено
	BookingStatusCancelled BookingStatus = "CANCELLED" // Отменено клиентом или провайдером
	BookingStatusRejected  BookingStatus = "REJECTED"  // Отклонено на стороне бэкенда
)

// BookingAction действие над бронированием
type BookingAction string

const (
	ActionConfirm  BookingAction = "confirm"
	ActionComplete BookingAction = "complete"
	ActionCancel   BookingAction = "cancel"
)

// providerTransitions какие действия провайдер может выполнить из каждого
// статуса. Терминальные статусы в таблице отсутствуют.
var providerTransitions = map[BookingStatus][]BookingAction{
	BookingStatusPending:   {ActionConfirm, ActionCancel},
	BookingStatusConfirmed: {ActionComplete, ActionCancel},
}

// customerTransitions клиент может только отменить PENDING
var customerTransitions = map[BookingStatus][]BookingAction{
	BookingStatusPending: {ActionCancel},
}

// Terminal проверяет что из статуса нет переходов
func (s BookingStatus) Terminal() bool {
	return s == BookingStatusCompleted || s == BookingStatusCancelled || s == BookingStatusRejected
}

// Active бронирование ещё в работе (вкладка Active на dashboard)
func (s BookingStatus) Active() bool {
	return s == BookingStatusPending || s == BookingStatusConfirmed
}

// AllowedActions возвращает действия, доступные роли из текущего статуса.
// Клиент дополнительно проверяется бэкендом: отмена не-PENDING вернёт ошибку.
func (s BookingStatus) AllowedActions(role Role) []BookingAction {
	switch role {
	case RoleProvider:
		return providerTransitions[s]
	case RoleCustomer:
		return customerTransitions[s]
	default:
		return nil
	}
}

// Allows проверяет что действие разрешено роли из текущего статуса
func (s BookingStatus) Allows(role Role, action BookingAction) bool {
	for _, a := range s.AllowedActions(role) {
		if a == action {
			return true
		}
	}
	return false
}

// ResultStatus статус после успешного действия. Используется для
// оптимистичного обновления локального списка без перезапроса.
func (a BookingAction) ResultStatus() BookingStatus {
	switch a {
	case ActionConfirm:
		return BookingStatusConfirmed
	case ActionComplete:
		return BookingStatusCompleted
	default:
		return BookingStatusCancelled
	}
}

// Booking бронирование как его отдаёт бэкенд. Клиентский и провайдерский
// списки используют один shape, незаполненные поля опускаются.
type Booking struct {
	BookingID         int64         `json:"bookingId"`
	CustomerID        int64         `json:"customerId,omitempty"`
	ProviderID        int64         `json:"providerId,omitempty"`
	ListingID         int64         `json:"listingId,omitempty"`
	ServiceName       string        `json:"serviceName,omitempty"`
	ProviderName      string        `json:"providerName,omitempty"`
	CustomerName      string        `json:"customerName,omitempty"`
	CustomerAddress   string        `json:"customerAddress,omitempty"`
	CustomerLatitude  float64       `json:"customerLatitude,omitempty"`
	CustomerLongitude float64       `json:"customerLongitude,omitempty"`
	BookingDate       string        `json:"bookingDate"` // "2006-01-02", наивная дата
	TimeSlot          string        `json:"timeSlot"`
	Price             float64       `json:"price"`
	Status            BookingStatus `json:"status"`
}

// CreateBookingRequest payload создания бронирования
type CreateBookingRequest struct {
	ProviderID  int64  `json:"providerId"`
	ListingID   int64  `json:"listingId"`
	BookingDate string `json:"bookingDate"`
	TimeSlot    string `json:"timeSlot"`
}
