package customer

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/quickserve/quickserve_bot/internal/controller/callbacks/callbacktypes"
	"github.com/quickserve/quickserve_bot/internal/controller/callbacks/common"
	"github.com/quickserve/quickserve_bot/internal/controller/callbacks/common/keyboard"
	"github.com/quickserve/quickserve_bot/internal/controller/state"
)

// HandleReviewStart показывает выбор оценки 1-5
func HandleReviewStart(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	if _, ok := common.RequireSession(ctx, b, callback, h); !ok {
		return
	}

	bookingID, err := common.ParseIDFromCallback(callback.Data)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrInvalidFormat))
		return
	}

	common.AnswerCallback(ctx, b, callback.ID, "")

	row := make([]models.InlineKeyboardButton, 0, 5)
	for rating := 1; rating <= 5; rating++ {
		row = append(row, keyboard.Button(
			strings.Repeat("⭐️", rating),
			fmt.Sprintf("review_rate:%d:%d", bookingID, rating),
		))
	}

	kb := keyboard.NewBuilder().Row(row...)

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      common.ChatIDFromCallback(callback),
		Text:        "⭐️ Оцените услугу:",
		ReplyMarkup: kb.Build(),
	})
}

// HandleReviewRate фиксирует оценку и спрашивает комментарий
func HandleReviewRate(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	if _, ok := common.RequireSession(ctx, b, callback, h); !ok {
		return
	}

	parts, err := common.ParseParts(callback.Data, 2)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrInvalidFormat))
		return
	}

	var bookingID int64
	var rating int
	if _, err := fmt.Sscanf(parts[0]+" "+parts[1], "%d %d", &bookingID, &rating); err != nil || rating < 1 || rating > 5 {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrInvalidFormat))
		return
	}

	chatID := common.ChatIDFromCallback(callback)

	h.StateManager.SetState(chatID, callbacktypes.UserState(state.StateReviewComment))
	h.StateManager.SetData(chatID, "review_booking_id", bookingID)
	h.StateManager.SetData(chatID, "review_rating", rating)

	common.AnswerCallback(ctx, b, callback.ID, "")

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text: fmt.Sprintf("Оценка: %d/5\n\nНапишите комментарий или «-» чтобы отправить без него:",
			rating),
	})
}
