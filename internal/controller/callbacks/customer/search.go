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
	"github.com/quickserve/quickserve_bot/internal/controller/state"
	"go.uber.org/zap"
)

// HandleSearchCategory ищет услуги выбранной категории рядом с клиентом
func HandleSearchCategory(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	session, ok := common.RequireSession(ctx, b, callback, h)
	if !ok {
		return
	}

	categoryID, err := common.ParseIDFromCallback(callback.Data)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrInvalidFormat))
		return
	}

	chatID := common.ChatIDFromCallback(callback)

	listings, err := h.Search.Search(ctx, session, categoryID)
	if err != nil {
		h.Logger.Error("Search failed", zap.Int64("category_id", categoryID), zap.Error(err))
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	common.AnswerCallback(ctx, b, callback.ID, "")

	if len(listings) == 0 {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "😔 В этой категории рядом с вами пока ничего нет",
		})
		return
	}

	// Бэкенд уже отранжировал выдачу по дистанции
	kb := keyboard.NewBuilder()
	for _, listing := range listings {
		label := fmt.Sprintf("%s • %s", listing.Title, formatting.FormatPrice(listing.Price))
		kb.Row(keyboard.Button(label, fmt.Sprintf("view_result:%d", listing.ID)))
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        fmt.Sprintf("🔍 Найдено услуг: %d", len(listings)),
		ReplyMarkup: kb.Build(),
	})
}

// HandleViewResult показывает карточку объявления из выдачи
func HandleViewResult(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	session, ok := common.RequireSession(ctx, b, callback, h)
	if !ok {
		return
	}

	listingID, err := common.ParseIDFromCallback(callback.Data)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrInvalidFormat))
		return
	}

	listing, found := h.Search.ListingFromResults(session.UserID, listingID)
	if !found {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrListingNotFound))
		return
	}

	common.AnswerCallback(ctx, b, callback.ID, "")

	kb := keyboard.NewBuilder().
		Row(keyboard.Button("📅 Забронировать", fmt.Sprintf("book_start:%d", listing.ID)))

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      common.ChatIDFromCallback(callback),
		Text:        formatting.FormatListingCard(*listing),
		ReplyMarkup: kb.Build(),
	})
}

// HandleBookStart начинает бронирование: спрашивает дату
func HandleBookStart(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	session, ok := common.RequireSession(ctx, b, callback, h)
	if !ok {
		return
	}

	listingID, err := common.ParseIDFromCallback(callback.Data)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrInvalidFormat))
		return
	}

	if _, found := h.Search.ListingFromResults(session.UserID, listingID); !found {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrListingNotFound))
		return
	}

	chatID := common.ChatIDFromCallback(callback)

	h.StateManager.SetState(chatID, callbacktypes.UserState(state.StateBookingDate))
	h.StateManager.SetData(chatID, "booking_listing_id", listingID)

	common.AnswerCallback(ctx, b, callback.ID, "")

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   "📅 Введите дату в формате ГГГГ-ММ-ДД, например 2026-09-01:\n\nДля отмены используйте /cancel",
	})
}
