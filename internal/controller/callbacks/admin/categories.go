package admin

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/quickserve/quickserve_bot/internal/controller/callbacks/callbacktypes"
	"github.com/quickserve/quickserve_bot/internal/controller/callbacks/common"
	"github.com/quickserve/quickserve_bot/internal/controller/callbacks/common/keyboard"
	"github.com/quickserve/quickserve_bot/internal/controller/state"
	"go.uber.org/zap"
)

// HandleCategories список категорий с управлением
func HandleCategories(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	session, ok := common.RequireSession(ctx, b, callback, h)
	if !ok {
		return
	}

	categories, err := h.Search.Categories(ctx, session)
	if err != nil {
		h.Logger.Error("Failed to load categories", zap.Error(err))
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	common.AnswerCallback(ctx, b, callback.ID, "")

	kb := keyboard.NewBuilder()
	for _, category := range categories {
		kb.Row(keyboard.Button("🗑 "+category.Name, fmt.Sprintf("del_category:%d", category.ID)))
	}
	kb.Row(keyboard.Button("➕ Новая категория", "add_category"))

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      common.ChatIDFromCallback(callback),
		Text:        fmt.Sprintf("📂 Категории (%d):\n\nНажмите на категорию чтобы удалить её", len(categories)),
		ReplyMarkup: kb.Build(),
	})
}

// HandleAddCategory начинает диалог создания категории
func HandleAddCategory(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	if _, ok := common.RequireSession(ctx, b, callback, h); !ok {
		return
	}

	chatID := common.ChatIDFromCallback(callback)
	h.StateManager.SetState(chatID, callbacktypes.UserState(state.StateCategoryName))

	common.AnswerCallback(ctx, b, callback.ID, "")

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   "➕ Введите название новой категории:\n\nДля отмены используйте /cancel",
	})
}

// HandleDeleteCategory удаляет категорию
func HandleDeleteCategory(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	session, ok := common.RequireSession(ctx, b, callback, h)
	if !ok {
		return
	}

	categoryID, err := common.ParseIDFromCallback(callback.Data)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrInvalidFormat))
		return
	}

	if err := h.Admin.DeleteCategory(ctx, session, categoryID); err != nil {
		h.Logger.Error("Failed to delete category", zap.Int64("category_id", categoryID), zap.Error(err))
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	common.AnswerCallback(ctx, b, callback.ID, "🗑 Удалено")

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: common.ChatIDFromCallback(callback),
		Text:   "🗑 Категория удалена",
	})
}
