package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/quickserve/quickserve_bot/internal/controller/callbacks/common"
	"github.com/quickserve/quickserve_bot/internal/controller/state"
	"go.uber.org/zap"
)

// ===== Категории =====

func (h *Handlers) handleCategoryNameStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID := update.Message.Chat.ID
	name := strings.TrimSpace(update.Message.Text)

	if len(name) < 2 {
		h.sendError(ctx, b, chatID, "❌ Название слишком короткое. Попробуйте ещё раз:")
		return
	}

	h.stateManager.SetData(chatID, "category_name", name)
	h.stateManager.SetState(chatID, state.StateCategoryDescription)

	h.sendMessage(ctx, b, chatID, "Введите описание категории (или «-» чтобы оставить пустым):")
}

func (h *Handlers) handleCategoryDescriptionStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	session, ok := h.requireSession(ctx, b, update)
	if !ok {
		return
	}

	chatID := update.Message.Chat.ID
	description := strings.TrimSpace(update.Message.Text)
	if description == "-" {
		description = ""
	}

	nameValue, ok := h.stateManager.GetData(chatID, "category_name")
	if !ok {
		h.stateManager.ClearState(chatID)
		h.sendError(ctx, b, chatID, "❌ Диалог сбился. Начните заново через /admin")
		return
	}
	name := nameValue.(string)

	if err := h.admin.CreateCategory(ctx, session, name, description); err != nil {
		h.logger.Error("Failed to create category", zap.String("name", name), zap.Error(err))
		h.sendError(ctx, b, chatID, common.ErrorMessage(err))
		return
	}

	h.stateManager.ClearState(chatID)
	h.sendMessage(ctx, b, chatID, fmt.Sprintf("✅ Категория «%s» создана", name))
}

// ===== Модерация: причина отклонения =====

func (h *Handlers) handleRejectReasonStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	session, ok := h.requireSession(ctx, b, update)
	if !ok {
		return
	}

	chatID := update.Message.Chat.ID
	reason := strings.TrimSpace(update.Message.Text)
	if reason == "" {
		h.sendError(ctx, b, chatID, "❌ Причина не может быть пустой. Попробуйте ещё раз:")
		return
	}

	listingIDValue, ok := h.stateManager.GetData(chatID, "reject_listing_id")
	if !ok {
		h.stateManager.ClearState(chatID)
		h.sendError(ctx, b, chatID, "❌ Диалог сбился. Откройте очередь модерации заново")
		return
	}
	listingID := listingIDValue.(int64)

	if err := h.admin.Moderate(ctx, session, listingID, false, reason); err != nil {
		h.logger.Error("Failed to reject listing", zap.Int64("listing_id", listingID), zap.Error(err))
		h.sendError(ctx, b, chatID, common.ErrorMessage(err))
		return
	}

	h.stateManager.ClearState(chatID)
	h.sendMessage(ctx, b, chatID, "🚫 Объявление отклонено, провайдер получит уведомление с причиной")
}
