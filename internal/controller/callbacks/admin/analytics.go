package admin

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/quickserve/quickserve_bot/internal/controller/callbacks/callbacktypes"
	"github.com/quickserve/quickserve_bot/internal/controller/callbacks/common"
	"github.com/quickserve/quickserve_bot/internal/controller/callbacks/common/formatting"
	"go.uber.org/zap"
)

// HandleApproved показывает одобренные объявления
func HandleApproved(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	session, ok := common.RequireSession(ctx, b, callback, h)
	if !ok {
		return
	}

	listings, err := h.Admin.ApprovedListings(ctx, session)
	if err != nil {
		h.Logger.Error("Failed to load approved listings", zap.Error(err))
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	common.AnswerCallback(ctx, b, callback.ID, "")

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("✅ Одобренных объявлений: %d\n", len(listings)))
	for _, listing := range listings {
		sb.WriteString(fmt.Sprintf("\n• %s — %s", listing.Title, formatting.FormatPrice(listing.Price)))
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: common.ChatIDFromCallback(callback),
		Text:   sb.String(),
	})
}

// HandleUsers показывает список пользователей
func HandleUsers(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	session, ok := common.RequireSession(ctx, b, callback, h)
	if !ok {
		return
	}

	users, err := h.Admin.Users(ctx, session)
	if err != nil {
		h.Logger.Error("Failed to load users", zap.Error(err))
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	common.AnswerCallback(ctx, b, callback.ID, "")

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("👥 Пользователей: %d\n", len(users)))
	for _, user := range users {
		sb.WriteString(fmt.Sprintf("\n• #%d %s (%s) — %s", user.ID, user.Name, user.Email, user.Role))
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: common.ChatIDFromCallback(callback),
		Text:   sb.String(),
	})
}

// HandleAnalytics топ категорий и услуг по числу бронирований
func HandleAnalytics(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	session, ok := common.RequireSession(ctx, b, callback, h)
	if !ok {
		return
	}

	topCategories, err := h.Admin.TopCategories(ctx, session)
	if err != nil {
		h.Logger.Error("Failed to load top categories", zap.Error(err))
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	topServices, err := h.Admin.TopServices(ctx, session)
	if err != nil {
		h.Logger.Error("Failed to load top services", zap.Error(err))
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	common.AnswerCallback(ctx, b, callback.ID, "")

	var sb strings.Builder
	sb.WriteString("📊 Аналитика\n\nТоп категорий по бронированиям:")
	for i, stat := range topCategories {
		sb.WriteString(fmt.Sprintf("\n%d. %s — %d", i+1, stat.Name, stat.Count))
	}
	sb.WriteString("\n\nТоп услуг по бронированиям:")
	for i, stat := range topServices {
		sb.WriteString(fmt.Sprintf("\n%d. %s — %d", i+1, stat.Name, stat.Count))
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: common.ChatIDFromCallback(callback),
		Text:   sb.String(),
	})
}
