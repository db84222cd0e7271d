package handlers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/quickserve/quickserve_bot/internal/controller/callbacks/common"
	"github.com/quickserve/quickserve_bot/internal/controller/callbacks/common/keyboard"
	"github.com/quickserve/quickserve_bot/internal/controller/state"
	"go.uber.org/zap"
)

// handleBookingDateStep обрабатывает ввод даты бронирования.
// Дата наивная локальная: "2026-01-05" значит 5 января там, где
// находится пользователь, без конверсий таймзон.
func (h *Handlers) handleBookingDateStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	session, ok := h.requireSession(ctx, b, update)
	if !ok {
		return
	}

	chatID := update.Message.Chat.ID
	date := strings.TrimSpace(update.Message.Text)

	parsed, err := time.ParseInLocation("2006-01-02", date, time.Local)
	if err != nil {
		h.sendError(ctx, b, chatID, "❌ Нужна дата в формате ГГГГ-ММ-ДД, например 2026-01-05.\n\nПопробуйте ещё раз:")
		return
	}

	if beforeToday(parsed, time.Now()) {
		h.sendError(ctx, b, chatID, "❌ Дата уже прошла. Введите сегодняшнюю или будущую дату:")
		return
	}

	listingIDValue, ok := h.stateManager.GetData(chatID, "booking_listing_id")
	if !ok {
		h.stateManager.ClearState(chatID)
		h.sendError(ctx, b, chatID, "❌ Диалог сбился. Начните заново: /search")
		return
	}
	listingID := listingIDValue.(int64)

	listing, found := h.search.ListingFromResults(session.UserID, listingID)
	if !found {
		h.stateManager.ClearState(chatID)
		h.sendError(ctx, b, chatID, "❌ Объявление не найдено в последней выдаче. Повторите /search")
		return
	}

	slots, err := h.bookings.SlotsForDate(ctx, session, listing.ProviderID, date)
	if err != nil {
		h.logger.Error("Failed to load slots",
			zap.Int64("provider_id", listing.ProviderID),
			zap.String("date", date),
			zap.Error(err))
		h.sendError(ctx, b, chatID, common.ErrorMessage(err))
		return
	}

	if len(slots) == 0 {
		h.sendMessage(ctx, b, chatID, "😔 На эту дату у провайдера нет свободных слотов.\n\nВведите другую дату:")
		return
	}

	// Текстовый шаг закончен, но данные ещё нужны callback'у выбора слота
	h.stateManager.SetState(chatID, state.StateNone)
	h.stateManager.SetData(chatID, "booking_listing_id", listingID)
	h.stateManager.SetData(chatID, "booking_date", date)
	h.stateManager.SetData(chatID, "booking_slots", slots)

	kb := keyboard.NewBuilder()
	for i, slot := range slots {
		kb.Row(keyboard.Button("🕐 "+slot, fmt.Sprintf("book_slot:%d", i)))
	}

	h.sendKeyboard(ctx, b, chatID, fmt.Sprintf("📅 %s\n\nВыберите время:", date), kb.Build())
}

// beforeToday сравнивает календарные даты, а не моменты времени:
// полночь берётся в зоне now, не по UTC
func beforeToday(day, now time.Time) bool {
	y, m, d := now.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	return day.Before(midnight)
}

// handleReviewCommentStep обрабатывает текст отзыва. "-" отправляет отзыв
// без комментария.
func (h *Handlers) handleReviewCommentStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	session, ok := h.requireSession(ctx, b, update)
	if !ok {
		return
	}

	chatID := update.Message.Chat.ID
	comment := strings.TrimSpace(update.Message.Text)
	if comment == "-" {
		comment = ""
	}

	data := h.stateManager.GetAllData(chatID)
	bookingID, bookingOK := data["review_booking_id"].(int64)
	rating, ratingOK := data["review_rating"].(int)
	if !bookingOK || !ratingOK {
		h.stateManager.ClearState(chatID)
		h.sendError(ctx, b, chatID, "❌ Диалог сбился. Откройте бронирование и начните отзыв заново")
		return
	}

	if err := h.reviews.Submit(ctx, session, bookingID, rating, comment); err != nil {
		h.logger.Error("Failed to submit review",
			zap.Int64("booking_id", bookingID),
			zap.Error(err))
		h.sendError(ctx, b, chatID, common.ErrorMessage(err))
		return
	}

	h.stateManager.ClearState(chatID)
	h.sendMessage(ctx, b, chatID, fmt.Sprintf("⭐️ Спасибо за отзыв! Оценка: %d/5", rating))
}
