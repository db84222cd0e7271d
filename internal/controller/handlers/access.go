package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/quickserve/quickserve_bot/internal/model"
	"go.uber.org/zap"
)

// requireSession достаёт активную сессию или просит войти
func (h *Handlers) requireSession(ctx context.Context, b *bot.Bot, update *models.Update) (*model.Session, bool) {
	chatID := chatIDFromUpdate(update)

	session, err := h.sessions.Get(ctx, chatID)
	if err != nil {
		h.logger.Error("Failed to restore session", zap.Int64("chat_id", chatID), zap.Error(err))
		h.sendError(ctx, b, chatID, "❌ Не удалось проверить сессию. Попробуйте ещё раз")
		return nil, false
	}
	if session == nil {
		h.sendMessage(ctx, b, chatID, "🔐 Вы не вошли в аккаунт.\n\nИспользуйте /login для входа или /signup для регистрации")
		return nil, false
	}
	return session, true
}

// requireRole достаёт сессию и проверяет роль
func (h *Handlers) requireRole(ctx context.Context, b *bot.Bot, update *models.Update, role model.Role) (*model.Session, bool) {
	session, ok := h.requireSession(ctx, b, update)
	if !ok {
		return nil, false
	}

	if session.Role != role {
		chatID := chatIDFromUpdate(update)
		switch role {
		case model.RoleProvider:
			h.sendMessage(ctx, b, chatID, "❌ Эта команда доступна только провайдерам услуг")
		case model.RoleAdmin:
			h.sendMessage(ctx, b, chatID, "❌ Эта команда доступна только администраторам")
		default:
			h.sendMessage(ctx, b, chatID, "❌ Эта команда доступна только клиентам")
		}
		return nil, false
	}
	return session, true
}
