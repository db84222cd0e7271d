package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/quickserve/quickserve_bot/internal/api"
	"github.com/quickserve/quickserve_bot/internal/controller/callbacks/common"
	"github.com/quickserve/quickserve_bot/internal/controller/state"
	"go.uber.org/zap"
)

const (
	ListingTitleMinLength       = 3
	ListingTitleMaxLength       = 100
	ListingDescriptionMaxLength = 500
)

// ===== Создание объявления =====

func (h *Handlers) handleListingTitleStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID := update.Message.Chat.ID
	title := strings.TrimSpace(update.Message.Text)

	if len(title) < ListingTitleMinLength {
		h.sendError(ctx, b, chatID,
			fmt.Sprintf("❌ Название слишком короткое. Минимум %d символа.\n\nПопробуйте ещё раз:", ListingTitleMinLength))
		return
	}
	if len(title) > ListingTitleMaxLength {
		h.sendError(ctx, b, chatID,
			fmt.Sprintf("❌ Название слишком длинное. Максимум %d символов.\n\nПопробуйте ещё раз:", ListingTitleMaxLength))
		return
	}

	h.stateManager.SetData(chatID, "title", title)
	h.stateManager.SetState(chatID, state.StateListingDescription)

	h.sendMessage(ctx, b, chatID, fmt.Sprintf(
		"✅ Название: %s\n\nШаг 2 из 4: Опишите услугу:", title))
}

func (h *Handlers) handleListingDescriptionStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID := update.Message.Chat.ID
	description := strings.TrimSpace(update.Message.Text)

	if len(description) > ListingDescriptionMaxLength {
		h.sendError(ctx, b, chatID,
			fmt.Sprintf("❌ Описание слишком длинное. Максимум %d символов.\n\nПопробуйте ещё раз:", ListingDescriptionMaxLength))
		return
	}

	h.stateManager.SetData(chatID, "description", description)
	h.stateManager.SetState(chatID, state.StateListingPrice)

	h.sendMessage(ctx, b, chatID, "Шаг 3 из 4: Укажите цену в долларах, например 49.99:")
}

func (h *Handlers) handleListingPriceStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID := update.Message.Chat.ID

	price, err := parsePrice(update.Message.Text)
	if err != nil {
		h.sendError(ctx, b, chatID, "❌ Не удалось разобрать цену. Введите число, например 49.99:")
		return
	}

	h.stateManager.SetData(chatID, "price", price)
	h.stateManager.SetState(chatID, state.StateListingPhoto)

	h.sendMessage(ctx, b, chatID,
		"Шаг 4 из 4: Отправьте фото услуги или «-» чтобы пропустить:")
}

func (h *Handlers) handleListingPhotoStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	session, ok := h.requireSession(ctx, b, update)
	if !ok {
		return
	}

	chatID := update.Message.Chat.ID

	data := h.stateManager.GetAllData(chatID)
	categoryID, categoryOK := data["listing_category_id"].(int64)
	title, titleOK := data["title"].(string)
	description, _ := data["description"].(string)
	price, priceOK := data["price"].(float64)
	if !categoryOK || !titleOK || !priceOK {
		h.stateManager.ClearState(chatID)
		h.sendError(ctx, b, chatID, "❌ Диалог сбился. Начните заново: /newlisting")
		return
	}

	upload := api.ListingUpload{
		CategoryID:  categoryID,
		Title:       title,
		Description: description,
		Price:       price,
	}

	// Фото опционально
	if len(update.Message.Photo) > 0 {
		photo := update.Message.Photo[len(update.Message.Photo)-1]

		file, err := b.GetFile(ctx, &bot.GetFileParams{FileID: photo.FileID})
		if err != nil {
			h.logger.Error("Failed to get photo file", zap.Error(err))
			h.sendError(ctx, b, chatID, "❌ Не удалось получить фото. Отправьте ещё раз или «-»:")
			return
		}

		resp, err := http.Get(b.FileDownloadLink(file))
		if err != nil {
			h.logger.Error("Failed to download photo", zap.Error(err))
			h.sendError(ctx, b, chatID, "❌ Не удалось скачать фото. Отправьте ещё раз или «-»:")
			return
		}
		defer resp.Body.Close()

		upload.ImageName = "photo.jpg"
		upload.Image = resp.Body
	} else if strings.TrimSpace(update.Message.Text) != "-" {
		h.sendError(ctx, b, chatID, "❌ Отправьте фото или «-» чтобы пропустить:")
		return
	}

	listing, err := h.listings.Create(ctx, session, upload)
	if err != nil {
		h.logger.Error("Failed to create listing", zap.Error(err))
		h.sendError(ctx, b, chatID, common.ErrorMessage(err))
		return
	}

	h.stateManager.ClearState(chatID)
	h.sendMessage(ctx, b, chatID, fmt.Sprintf(
		"🎉 Объявление «%s» создано и отправлено на модерацию.\n\n"+
			"После одобрения администратором оно появится в поиске", listing.Title))
}

// ===== Редактирование объявления =====

// handleEditListingStep один шаг редактирования: меняется ровно одно поле,
// остальные берутся из загруженного объявления.
func (h *Handlers) handleEditListingStep(ctx context.Context, b *bot.Bot, update *models.Update, userState state.UserState) {
	session, ok := h.requireSession(ctx, b, update)
	if !ok {
		return
	}

	chatID := update.Message.Chat.ID
	input := strings.TrimSpace(update.Message.Text)

	listingIDValue, ok := h.stateManager.GetData(chatID, "listing_id")
	if !ok {
		h.stateManager.ClearState(chatID)
		h.sendError(ctx, b, chatID, "❌ Диалог сбился. Откройте объявление заново: /mylistings")
		return
	}
	listingID := listingIDValue.(int64)

	listing, found := h.listings.ByID(session.UserID, listingID)
	if !found {
		h.stateManager.ClearState(chatID)
		h.sendError(ctx, b, chatID, "❌ Объявление не найдено. Обновите список: /mylistings")
		return
	}

	updateReq := api.ListingUpdate{
		Title:       listing.Title,
		Description: listing.Description,
		Price:       listing.Price,
		Disabled:    listing.Disabled,
	}

	switch userState {
	case state.StateEditListingTitle:
		if len(input) < ListingTitleMinLength {
			h.sendError(ctx, b, chatID, "❌ Название слишком короткое. Попробуйте ещё раз:")
			return
		}
		updateReq.Title = input
	case state.StateEditListingDescription:
		updateReq.Description = input
	case state.StateEditListingPrice:
		price, err := parsePrice(input)
		if err != nil {
			h.sendError(ctx, b, chatID, "❌ Не удалось разобрать цену. Введите число:")
			return
		}
		updateReq.Price = price
	}

	if err := h.listings.Update(ctx, session, listingID, updateReq); err != nil {
		h.logger.Error("Failed to update listing", zap.Int64("listing_id", listingID), zap.Error(err))
		h.sendError(ctx, b, chatID, common.ErrorMessage(err))
		return
	}

	h.stateManager.ClearState(chatID)
	h.sendMessage(ctx, b, chatID, "✅ Объявление обновлено")
}

func parsePrice(text string) (float64, error) {
	text = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(text), "$"))
	text = strings.ReplaceAll(text, ",", ".")

	price, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, err
	}
	if price <= 0 {
		return 0, fmt.Errorf("price must be positive")
	}
	return price, nil
}
