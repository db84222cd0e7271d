package provider

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
	"go.uber.org/zap"
)

// HandleViewOrder карточка заказа с доступными действиями
func HandleViewOrder(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	session, ok := common.RequireSession(ctx, b, callback, h)
	if !ok {
		return
	}

	bookingID, err := common.ParseIDFromCallback(callback.Data)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrInvalidFormat))
		return
	}

	booking, found := findProviderBooking(h, session.UserID, bookingID)
	if !found {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrBookingNotFound))
		return
	}

	common.AnswerCallback(ctx, b, callback.ID, "")

	kb := keyboard.NewBuilder()
	for _, action := range booking.Status.AllowedActions(model.RoleProvider) {
		switch action {
		case model.ActionConfirm:
			kb.Row(keyboard.Button("✅ Подтвердить", fmt.Sprintf("order_confirm:%d", bookingID)))
		case model.ActionComplete:
			kb.Row(keyboard.Button("✔️ Завершить", fmt.Sprintf("order_complete:%d", bookingID)))
		case model.ActionCancel:
			kb.Row(keyboard.Button("🚫 Отменить", fmt.Sprintf("order_cancel:%d", bookingID)))
		}
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      common.ChatIDFromCallback(callback),
		Text:        formatting.FormatBookingDetails(booking, true),
		ReplyMarkup: kb.Build(),
	})
}

// HandleOrderConfirm подтверждает заказ (PENDING -> CONFIRMED)
func HandleOrderConfirm(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	runOrderAction(ctx, b, callback, h, model.ActionConfirm, "✅ Заказ #%d подтверждён")
}

// HandleOrderComplete завершает заказ (CONFIRMED -> COMPLETED)
func HandleOrderComplete(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	runOrderAction(ctx, b, callback, h, model.ActionComplete, "✔️ Заказ #%d завершён. Клиент сможет оставить отзыв")
}

// HandleOrderCancel отмена необратима, сначала спрашиваем
func HandleOrderCancel(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	bookingID, err := common.ParseIDFromCallback(callback.Data)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrInvalidFormat))
		return
	}

	common.AnswerCallback(ctx, b, callback.ID, "")

	kb := keyboard.NewBuilder().
		Row(
			keyboard.Button("✅ Да, отменить", fmt.Sprintf("order_cancel_yes:%d", bookingID)),
			keyboard.Button("⬅️ Нет", "noop"),
		)

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      common.ChatIDFromCallback(callback),
		Text:        fmt.Sprintf("❓ Точно отменить заказ #%d? Действие необратимо", bookingID),
		ReplyMarkup: kb.Build(),
	})
}

// HandleOrderCancelYes отменяет заказ после подтверждения
func HandleOrderCancelYes(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	runOrderAction(ctx, b, callback, h, model.ActionCancel, "🚫 Заказ #%d отменён")
}

// runOrderAction общий путь действий провайдера: один вызов бэкенда и
// оптимистичное обновление локального статуса
func runOrderAction(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler, action model.BookingAction, successFormat string) {
	session, ok := common.RequireSession(ctx, b, callback, h)
	if !ok {
		return
	}

	bookingID, err := common.ParseIDFromCallback(callback.Data)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrInvalidFormat))
		return
	}

	if err := h.Bookings.ProviderAction(ctx, session, bookingID, action); err != nil {
		h.Logger.Warn("Provider action rejected",
			zap.Int64("booking_id", bookingID),
			zap.String("action", string(action)),
			zap.Error(err))
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	common.AnswerCallback(ctx, b, callback.ID, "")

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: common.ChatIDFromCallback(callback),
		Text:   fmt.Sprintf(successFormat, bookingID),
	})
}

func findProviderBooking(h *callbacktypes.Handler, userID, bookingID int64) (model.Booking, bool) {
	for _, booking := range h.Bookings.ProviderBookings(userID) {
		if booking.BookingID == bookingID {
			return booking, true
		}
	}
	return model.Booking{}, false
}
