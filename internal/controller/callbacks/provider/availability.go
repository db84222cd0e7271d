package provider

import (
	"context"
	"fmt"
	"strconv"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/quickserve/quickserve_bot/internal/controller/callbacks/callbacktypes"
	"github.com/quickserve/quickserve_bot/internal/controller/callbacks/common"
	"github.com/quickserve/quickserve_bot/internal/controller/callbacks/common/keyboard"
	"github.com/quickserve/quickserve_bot/internal/model"
	"go.uber.org/zap"
)

// HandleSlotsDay загружает слоты дня недели и показывает меню переключателей
func HandleSlotsDay(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	session, ok := common.RequireSession(ctx, b, callback, h)
	if !ok {
		return
	}

	parts, err := common.ParseParts(callback.Data, 1)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrInvalidFormat))
		return
	}
	day := model.Weekday(parts[0])

	slots, err := h.Availability.LoadWeekday(ctx, session, day)
	if err != nil {
		h.Logger.Error("Failed to load availability",
			zap.String("day", string(day)),
			zap.Error(err))
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	common.AnswerCallback(ctx, b, callback.ID, "")

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      common.ChatIDFromCallback(callback),
		Text:        fmt.Sprintf("🗓 %s\n\nВключите нужные слоты и нажмите «Сохранить»:", day),
		ReplyMarkup: slotsKeyboard(day, slots),
	})
}

// HandleSlotToggle переключает слот в черновике и перерисовывает меню.
// До «Сохранить» на бэкенд ничего не уходит.
func HandleSlotToggle(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	session, ok := common.RequireSession(ctx, b, callback, h)
	if !ok {
		return
	}

	parts, err := common.ParseParts(callback.Data, 2)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrInvalidFormat))
		return
	}
	day := model.Weekday(parts[0])

	slotIndex, err := strconv.Atoi(parts[1])
	if err != nil || slotIndex < 0 || slotIndex >= len(model.CandidateSlots) {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrInvalidFormat))
		return
	}
	slot := model.CandidateSlots[slotIndex]

	slots, err := h.Availability.Toggle(session.UserID, day, slot)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	common.AnswerCallback(ctx, b, callback.ID, "")

	msg := common.GetMessageFromCallback(callback)
	if msg == nil {
		return
	}

	b.EditMessageReplyMarkup(ctx, &bot.EditMessageReplyMarkupParams{
		ChatID:      msg.Chat.ID,
		MessageID:   msg.ID,
		ReplyMarkup: slotsKeyboard(day, slots),
	})
}

// HandleSlotsSave сохраняет день целиком: набор затирает предыдущий
func HandleSlotsSave(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	session, ok := common.RequireSession(ctx, b, callback, h)
	if !ok {
		return
	}

	parts, err := common.ParseParts(callback.Data, 1)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrInvalidFormat))
		return
	}
	day := model.Weekday(parts[0])

	if err := h.Availability.Save(ctx, session, day); err != nil {
		h.Logger.Error("Failed to save availability",
			zap.String("day", string(day)),
			zap.Error(err))
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	common.AnswerCallback(ctx, b, callback.ID, "✅ Сохранено")

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: common.ChatIDFromCallback(callback),
		Text:   fmt.Sprintf("✅ Слоты на %s сохранены. Они повторяются каждую неделю", day),
	})
}

// slotsKeyboard меню слотов: ✅ включён, ⬜️ выключен
func slotsKeyboard(day model.Weekday, enabled []string) *models.InlineKeyboardMarkup {
	kb := keyboard.NewBuilder()
	for i, slot := range model.CandidateSlots {
		mark := "⬜️"
		if model.ContainsSlot(enabled, slot) {
			mark = "✅"
		}
		kb.Row(keyboard.Button(
			fmt.Sprintf("%s %s", mark, slot),
			fmt.Sprintf("slot_toggle:%s:%d", day, i),
		))
	}
	kb.Row(keyboard.Button("💾 Сохранить", fmt.Sprintf("slots_save:%s", day)))
	return kb.Build()
}
