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
	"github.com/quickserve/quickserve_bot/internal/controller/state"
	"go.uber.org/zap"
)

// HandleNewListingCategory категория выбрана, начинаем диалог создания
func HandleNewListingCategory(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	if _, ok := common.RequireSession(ctx, b, callback, h); !ok {
		return
	}

	categoryID, err := common.ParseIDFromCallback(callback.Data)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrInvalidFormat))
		return
	}

	chatID := common.ChatIDFromCallback(callback)

	h.StateManager.SetState(chatID, callbacktypes.UserState(state.StateListingTitle))
	h.StateManager.SetData(chatID, "listing_category_id", categoryID)

	common.AnswerCallback(ctx, b, callback.ID, "")

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   "Шаг 1 из 4: Как назвать услугу?\n\nДля отмены используйте /cancel",
	})
}

// HandleViewListing карточка объявления провайдера с меню управления
func HandleViewListing(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	session, ok := common.RequireSession(ctx, b, callback, h)
	if !ok {
		return
	}

	listingID, err := common.ParseIDFromCallback(callback.Data)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrInvalidFormat))
		return
	}

	listing, found := h.Listings.ByID(session.UserID, listingID)
	if !found {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrListingNotFound))
		return
	}

	common.AnswerCallback(ctx, b, callback.ID, "")

	display := formatting.GetApprovalDisplay(listing.ApprovalState)
	text := fmt.Sprintf("%s\n\n%s Модерация: %s",
		formatting.FormatListingCard(*listing), display.Emoji, display.Text)

	toggleLabel := "⏸ Выключить"
	if listing.Disabled {
		toggleLabel = "▶️ Включить"
		text += "\n⏸ Объявление выключено и не показывается в поиске"
	}

	kb := keyboard.NewBuilder().
		Row(
			keyboard.Button("✏️ Название", fmt.Sprintf("edit_listing_title:%d", listingID)),
			keyboard.Button("✏️ Описание", fmt.Sprintf("edit_listing_desc:%d", listingID)),
		).
		Row(
			keyboard.Button("✏️ Цена", fmt.Sprintf("edit_listing_price:%d", listingID)),
			keyboard.Button(toggleLabel, fmt.Sprintf("toggle_listing:%d", listingID)),
		).
		Row(keyboard.Button("🗑 Удалить", fmt.Sprintf("delete_listing:%d", listingID)))

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      common.ChatIDFromCallback(callback),
		Text:        text,
		ReplyMarkup: kb.Build(),
	})
}

// HandleEditListingField начинает диалог правки одного поля
func HandleEditListingField(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler, field state.UserState, prompt string) {
	if _, ok := common.RequireSession(ctx, b, callback, h); !ok {
		return
	}

	listingID, err := common.ParseIDFromCallback(callback.Data)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrInvalidFormat))
		return
	}

	chatID := common.ChatIDFromCallback(callback)

	h.StateManager.SetState(chatID, callbacktypes.UserState(field))
	h.StateManager.SetData(chatID, "listing_id", listingID)

	common.AnswerCallback(ctx, b, callback.ID, "")

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   prompt + "\n\nДля отмены используйте /cancel",
	})
}

// HandleToggleListing включает или выключает объявление
func HandleToggleListing(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	session, ok := common.RequireSession(ctx, b, callback, h)
	if !ok {
		return
	}

	listingID, err := common.ParseIDFromCallback(callback.Data)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrInvalidFormat))
		return
	}

	if err := h.Listings.ToggleDisabled(ctx, session, listingID); err != nil {
		h.Logger.Error("Failed to toggle listing", zap.Int64("listing_id", listingID), zap.Error(err))
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	common.AnswerCallback(ctx, b, callback.ID, "✅ Готово")

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: common.ChatIDFromCallback(callback),
		Text:   "✅ Статус объявления изменён. Посмотреть: /mylistings",
	})
}

// HandleDeleteListing удаление необратимо, сначала спрашиваем
func HandleDeleteListing(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	bookingID, err := common.ParseIDFromCallback(callback.Data)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrInvalidFormat))
		return
	}

	common.AnswerCallback(ctx, b, callback.ID, "")

	kb := keyboard.NewBuilder().
		Row(
			keyboard.Button("✅ Да, удалить", fmt.Sprintf("confirm_delete_listing:%d", bookingID)),
			keyboard.Button("⬅️ Нет", "noop"),
		)

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      common.ChatIDFromCallback(callback),
		Text:        "❓ Точно удалить объявление? Действие необратимо",
		ReplyMarkup: kb.Build(),
	})
}

// HandleConfirmDeleteListing удаляет объявление
func HandleConfirmDeleteListing(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	session, ok := common.RequireSession(ctx, b, callback, h)
	if !ok {
		return
	}

	listingID, err := common.ParseIDFromCallback(callback.Data)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrInvalidFormat))
		return
	}

	if err := h.Listings.Delete(ctx, session, listingID); err != nil {
		h.Logger.Error("Failed to delete listing", zap.Int64("listing_id", listingID), zap.Error(err))
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	common.AnswerCallback(ctx, b, callback.ID, "🗑 Удалено")

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: common.ChatIDFromCallback(callback),
		Text:   "🗑 Объявление удалено",
	})
}
