package admin

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

// HandlePending показывает очередь объявлений на модерацию
func HandlePending(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	session, ok := common.RequireSession(ctx, b, callback, h)
	if !ok {
		return
	}

	listings, err := h.Admin.PendingListings(ctx, session)
	if err != nil {
		h.Logger.Error("Failed to load pending listings", zap.Error(err))
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	common.AnswerCallback(ctx, b, callback.ID, "")

	chatID := common.ChatIDFromCallback(callback)

	if len(listings) == 0 {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "✨ Очередь модерации пуста",
		})
		return
	}

	kb := keyboard.NewBuilder()
	for _, listing := range listings {
		label := fmt.Sprintf("%s • %s", listing.Title, formatting.FormatPrice(listing.Price))
		kb.Row(keyboard.Button(label, fmt.Sprintf("mod_listing:%d", listing.ID)))
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        fmt.Sprintf("⏳ На модерации: %d", len(listings)),
		ReplyMarkup: kb.Build(),
	})
}

// HandleModListing карточка объявления из очереди с кнопками решения
func HandleModListing(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	session, ok := common.RequireSession(ctx, b, callback, h)
	if !ok {
		return
	}

	listingID, err := common.ParseIDFromCallback(callback.Data)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrInvalidFormat))
		return
	}

	listing, found := h.Admin.PendingByID(session.UserID, listingID)
	if !found {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrListingNotFound))
		return
	}

	common.AnswerCallback(ctx, b, callback.ID, "")

	kb := keyboard.NewBuilder().
		Row(
			keyboard.Button("✅ Одобрить", fmt.Sprintf("approve_listing:%d", listingID)),
			keyboard.Button("🚫 Отклонить", fmt.Sprintf("reject_listing:%d", listingID)),
		)

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      common.ChatIDFromCallback(callback),
		Text:        formatting.FormatListingCard(*listing),
		ReplyMarkup: kb.Build(),
	})
}

// HandleApproveListing одобряет объявление
func HandleApproveListing(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	session, ok := common.RequireSession(ctx, b, callback, h)
	if !ok {
		return
	}

	listingID, err := common.ParseIDFromCallback(callback.Data)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrInvalidFormat))
		return
	}

	if err := h.Admin.Moderate(ctx, session, listingID, true, ""); err != nil {
		h.Logger.Error("Failed to approve listing", zap.Int64("listing_id", listingID), zap.Error(err))
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	common.AnswerCallback(ctx, b, callback.ID, "✅ Одобрено")

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: common.ChatIDFromCallback(callback),
		Text:   "✅ Объявление одобрено и появится в поиске",
	})
}

// HandleRejectListing спрашивает причину отклонения текстом
func HandleRejectListing(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	if _, ok := common.RequireSession(ctx, b, callback, h); !ok {
		return
	}

	listingID, err := common.ParseIDFromCallback(callback.Data)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrInvalidFormat))
		return
	}

	chatID := common.ChatIDFromCallback(callback)

	h.StateManager.SetState(chatID, callbacktypes.UserState(state.StateRejectReason))
	h.StateManager.SetData(chatID, "reject_listing_id", listingID)

	common.AnswerCallback(ctx, b, callback.ID, "")

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   "✍️ Введите причину отклонения (её увидит провайдер):\n\nДля отмены используйте /cancel",
	})
}
