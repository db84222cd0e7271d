package customer

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/quickserve/quickserve_bot/internal/controller/callbacks/callbacktypes"
	"github.com/quickserve/quickserve_bot/internal/controller/callbacks/common"
	"go.uber.org/zap"
)

// HandleOpenNotification клик по уведомлению: пометить прочитанным и,
// для уведомлений о завершённой услуге, открыть вкладку истории
func HandleOpenNotification(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	session, ok := common.RequireSession(ctx, b, callback, h)
	if !ok {
		return
	}

	notificationID, err := common.ParseIDFromCallback(callback.Data)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrInvalidFormat))
		return
	}

	gotoHistory, err := h.Notifications.Open(ctx, session, notificationID)
	if err != nil {
		h.Logger.Warn("Failed to open notification",
			zap.Int64("notification_id", notificationID),
			zap.Error(err))
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	common.AnswerCallback(ctx, b, callback.ID, "✅ Прочитано")

	if gotoHistory && session.IsCustomer() {
		chatID := common.ChatIDFromCallback(callback)
		// Список мог устареть, перечитываем перед вкладкой истории
		if _, err := h.Bookings.RefreshCustomerBookings(ctx, session); err != nil {
			h.Logger.Warn("Failed to refresh bookings for history tab", zap.Error(err))
		}
		renderBookingsTab(ctx, b, chatID, h, session.UserID, true)
	}
}
