package state

// UserState представляет текущее состояние пользователя в диалоге
type UserState string

const (
	StateNone UserState = "" // Нет активного состояния

	// Состояния для входа
	StateLoginEmail    UserState = "login_email"
	StateLoginPassword UserState = "login_password"

	// Состояния для регистрации
	StateSignupName     UserState = "signup_name"
	StateSignupEmail    UserState = "signup_email"
	StateSignupPassword UserState = "signup_password"

	// Состояния для бронирования (клиент)
	StateBookingDate UserState = "booking_date"

	// Состояния для отзыва
	StateReviewComment UserState = "review_comment"

	// Состояния для создания объявления (провайдер)
	StateListingTitle       UserState = "listing_title"
	StateListingDescription UserState = "listing_description"
	StateListingPrice       UserState = "listing_price"
	StateListingPhoto       UserState = "listing_photo"

	// Состояния для редактирования объявления
	StateEditListingTitle       UserState = "edit_listing_title"
	StateEditListingDescription UserState = "edit_listing_description"
	StateEditListingPrice       UserState = "edit_listing_price"

	// Состояния для локации клиента
	StateLocationPoint   UserState = "location_point"
	StateLocationAddress UserState = "location_address"

	// Состояния для админа
	StateCategoryName        UserState = "category_name"
	StateCategoryDescription UserState = "category_description"
	StateRejectReason        UserState = "reject_reason"
)

// UserData хранит временные данные пользователя во время диалога
type UserData struct {
	State UserState
	Data  map[string]interface{} // Временные данные для текущего диалога
}
