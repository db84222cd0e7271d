package customer

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/quickserve/quickserve_bot/internal/controller/callbacks/callbacktypes"
	"github.com/quickserve/quickserve_bot/internal/controller/callbacks/common"
	"github.com/quickserve/quickserve_bot/internal/controller/callbacks/common/formatting"
	"github.com/quickserve/quickserve_bot/internal/controller/callbacks/common/keyboard"
	"github.com/quickserve/quickserve_bot/internal/model"
	"github.com/quickserve/quickserve_bot/internal/service"
	"go.uber.org/zap"
)

// HandleBookSlot выбор времени: показывает экран подтверждения
func HandleBookSlot(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	session, ok := common.RequireSession(ctx, b, callback, h)
	if !ok {
		return
	}

	slotIndex, err := common.ParseIDFromCallback(callback.Data)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrInvalidFormat))
		return
	}

	chatID := common.ChatIDFromCallback(callback)

	data := h.StateManager.GetAllData(chatID)
	slots, slotsOK := data["booking_slots"].([]string)
	date, dateOK := data["booking_date"].(string)
	listingID, listingOK := data["booking_listing_id"].(int64)
	if !slotsOK || !dateOK || !listingOK || int(slotIndex) >= len(slots) {
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Выбор устарел. Начните бронирование заново")
		return
	}
	slot := slots[slotIndex]

	listing, found := h.Search.ListingFromResults(session.UserID, listingID)
	if !found {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrListingNotFound))
		return
	}

	h.StateManager.SetData(chatID, "booking_slot", slot)

	common.AnswerCallback(ctx, b, callback.ID, "")

	kb := keyboard.NewBuilder().
		Row(
			keyboard.Button("✅ Подтвердить", "book_confirm"),
			keyboard.Button("🚫 Отмена", "book_abort"),
		)

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text: fmt.Sprintf(
			"📋 Проверьте бронирование:\n\n🛠 %s\n📅 %s\n🕐 %s\n💵 %s",
			listing.Title, date, slot, formatting.FormatPrice(listing.Price)),
		ReplyMarkup: kb.Build(),
	})
}

// HandleBookConfirm создаёт бронирование
func HandleBookConfirm(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	session, ok := common.RequireSession(ctx, b, callback, h)
	if !ok {
		return
	}

	chatID := common.ChatIDFromCallback(callback)

	data := h.StateManager.GetAllData(chatID)
	date, dateOK := data["booking_date"].(string)
	slot, slotOK := data["booking_slot"].(string)
	listingID, listingOK := data["booking_listing_id"].(int64)
	if !dateOK || !slotOK || !listingOK {
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Выбор устарел. Начните бронирование заново")
		return
	}

	listing, found := h.Search.ListingFromResults(session.UserID, listingID)
	if !found {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrListingNotFound))
		return
	}

	booking, err := h.Bookings.CreateBooking(ctx, session, listing, date, slot)
	if err != nil {
		h.Logger.Error("Failed to create booking",
			zap.Int64("listing_id", listingID),
			zap.Error(err))
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	h.StateManager.ClearState(chatID)

	common.AnswerCallback(ctx, b, callback.ID, "✅ Забронировано")

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text: fmt.Sprintf(
			"🎉 Бронирование #%d создано!\n\n"+
				"Оно ожидает подтверждения провайдера. Следите за статусом в /mybookings",
			booking.BookingID),
	})
}

// HandleBookAbort отменяет черновик бронирования
func HandleBookAbort(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	chatID := common.ChatIDFromCallback(callback)
	h.StateManager.ClearState(chatID)

	common.AnswerCallback(ctx, b, callback.ID, "")

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   "🚫 Бронирование отменено. Ничего не создано",
	})
}

// HandleBookingsTab переключение вкладок Active/History
func HandleBookingsTab(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	session, ok := common.RequireSession(ctx, b, callback, h)
	if !ok {
		return
	}

	parts, err := common.ParseParts(callback.Data, 1)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrInvalidFormat))
		return
	}
	history := parts[0] == "history"

	common.AnswerCallback(ctx, b, callback.ID, "")
	renderBookingsTab(ctx, b, common.ChatIDFromCallback(callback), h, session.UserID, history)
}

// renderBookingsTab рисует вкладку из локального кэша, без перезапроса
func renderBookingsTab(ctx context.Context, b *bot.Bot, chatID int64, h *callbacktypes.Handler, userID int64, history bool) {
	active, past := service.SplitBookings(h.Bookings.CustomerBookings(userID))

	bookings := active
	title := "📅 Активные бронирования"
	if history {
		bookings = past
		title = "📜 История бронирований"
	}

	if len(bookings) == 0 {
		title += "\n\nПока пусто"
	}

	kb := keyboard.NewBuilder()
	for _, booking := range bookings {
		kb.Row(keyboard.Button(
			formatting.FormatBookingLine(booking, false),
			fmt.Sprintf("view_booking:%d", booking.BookingID),
		))
	}

	if history {
		kb.Row(keyboard.Button("⬅️ Активные", "bookings_tab:active"))
	} else {
		kb.Row(keyboard.Button("📜 История", "bookings_tab:history"))
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        title,
		ReplyMarkup: kb.Build(),
	})
}

// HandleViewBooking карточка бронирования клиента
func HandleViewBooking(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	session, ok := common.RequireSession(ctx, b, callback, h)
	if !ok {
		return
	}

	bookingID, err := common.ParseIDFromCallback(callback.Data)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrInvalidFormat))
		return
	}

	booking, found := findCustomerBooking(h, session.UserID, bookingID)
	if !found {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrBookingNotFound))
		return
	}

	common.AnswerCallback(ctx, b, callback.ID, "")

	kb := keyboard.NewBuilder()
	// Кнопку отмены прячем по таблице переходов (только PENDING);
	// сам переход всё равно валидирует бэкенд
	if booking.Status.Allows(model.RoleCustomer, model.ActionCancel) {
		kb.Row(keyboard.Button("🚫 Отменить", fmt.Sprintf("cancel_booking:%d", booking.BookingID)))
	}
	if booking.Status == model.BookingStatusCompleted {
		if _, reviewed := h.Reviews.ReviewFor(session.UserID, booking.BookingID); !reviewed {
			kb.Row(keyboard.Button("⭐️ Оставить отзыв", fmt.Sprintf("review_start:%d", booking.BookingID)))
		}
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      common.ChatIDFromCallback(callback),
		Text:        formatting.FormatBookingDetails(booking, false),
		ReplyMarkup: kb.Build(),
	})
}

// HandleCancelBooking показывает подтверждение отмены
func HandleCancelBooking(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	bookingID, err := common.ParseIDFromCallback(callback.Data)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrInvalidFormat))
		return
	}

	common.AnswerCallback(ctx, b, callback.ID, "")

	kb := keyboard.NewBuilder().
		Row(
			keyboard.Button("✅ Да, отменить", fmt.Sprintf("confirm_cancel:%d", bookingID)),
			keyboard.Button("⬅️ Нет", "noop"),
		)

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      common.ChatIDFromCallback(callback),
		Text:        fmt.Sprintf("❓ Точно отменить бронирование #%d?", bookingID),
		ReplyMarkup: kb.Build(),
	})
}

// HandleConfirmCancel отменяет бронирование. Допустимость отмены решает
// бэкенд, ошибка показывается пользователю как есть.
func HandleConfirmCancel(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	session, ok := common.RequireSession(ctx, b, callback, h)
	if !ok {
		return
	}

	bookingID, err := common.ParseIDFromCallback(callback.Data)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrInvalidFormat))
		return
	}

	if err := h.Bookings.CustomerCancel(ctx, session, bookingID); err != nil {
		h.Logger.Warn("Customer cancel rejected",
			zap.Int64("booking_id", bookingID),
			zap.Error(err))
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	common.AnswerCallback(ctx, b, callback.ID, "✅ Отменено")

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: common.ChatIDFromCallback(callback),
		Text:   fmt.Sprintf("🚫 Бронирование #%d отменено", bookingID),
	})
}

func findCustomerBooking(h *callbacktypes.Handler, userID, bookingID int64) (model.Booking, bool) {
	for _, booking := range h.Bookings.CustomerBookings(userID) {
		if booking.BookingID == bookingID {
			return booking, true
		}
	}
	return model.Booking{}, false
}
