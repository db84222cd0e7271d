package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/quickserve/quickserve_bot/internal/api"
	"github.com/quickserve/quickserve_bot/internal/controller/callbacks/common"
	"github.com/quickserve/quickserve_bot/internal/controller/callbacks/common/keyboard"
	"github.com/quickserve/quickserve_bot/internal/controller/state"
	"github.com/quickserve/quickserve_bot/internal/model"
	"github.com/quickserve/quickserve_bot/internal/service"
	"go.uber.org/zap"
)

// HandleTextMessage диспетчер диалогов: разбирает сообщение по текущему
// состоянию пользователя. Сообщения без активного состояния игнорируются.
func (h *Handlers) HandleTextMessage(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	chatID := update.Message.Chat.ID
	userState := h.stateManager.GetState(chatID)
	if userState == state.StateNone {
		return
	}

	// Команды обрабатываются своими хэндлерами
	if strings.HasPrefix(update.Message.Text, "/") {
		return
	}

	switch userState {
	case state.StateLoginEmail:
		h.handleLoginEmailStep(ctx, b, update)
	case state.StateLoginPassword:
		h.handleLoginPasswordStep(ctx, b, update)
	case state.StateSignupName:
		h.handleSignupNameStep(ctx, b, update)
	case state.StateSignupEmail:
		h.handleSignupEmailStep(ctx, b, update)
	case state.StateSignupPassword:
		h.handleSignupPasswordStep(ctx, b, update)
	case state.StateBookingDate:
		h.handleBookingDateStep(ctx, b, update)
	case state.StateReviewComment:
		h.handleReviewCommentStep(ctx, b, update)
	case state.StateListingTitle:
		h.handleListingTitleStep(ctx, b, update)
	case state.StateListingDescription:
		h.handleListingDescriptionStep(ctx, b, update)
	case state.StateListingPrice:
		h.handleListingPriceStep(ctx, b, update)
	case state.StateListingPhoto:
		h.handleListingPhotoStep(ctx, b, update)
	case state.StateEditListingTitle, state.StateEditListingDescription, state.StateEditListingPrice:
		h.handleEditListingStep(ctx, b, update, userState)
	case state.StateLocationPoint:
		h.handleLocationPointStep(ctx, b, update)
	case state.StateLocationAddress:
		h.handleLocationAddressStep(ctx, b, update)
	case state.StateCategoryName:
		h.handleCategoryNameStep(ctx, b, update)
	case state.StateCategoryDescription:
		h.handleCategoryDescriptionStep(ctx, b, update)
	case state.StateRejectReason:
		h.handleRejectReasonStep(ctx, b, update)
	default:
		h.logger.Warn("Unknown dialog state",
			zap.Int64("chat_id", chatID),
			zap.String("state", string(userState)))
		h.stateManager.ClearState(chatID)
	}
}

// ===== Вход =====

func (h *Handlers) handleLoginEmailStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID := update.Message.Chat.ID
	email := strings.TrimSpace(update.Message.Text)

	if !strings.Contains(email, "@") {
		h.sendError(ctx, b, chatID, "❌ Это не похоже на email. Попробуйте ещё раз:")
		return
	}

	h.stateManager.SetData(chatID, "email", email)
	h.stateManager.SetState(chatID, state.StateLoginPassword)

	h.sendMessage(ctx, b, chatID, "Введите пароль:")
}

func (h *Handlers) handleLoginPasswordStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID := update.Message.Chat.ID
	password := update.Message.Text

	emailValue, ok := h.stateManager.GetData(chatID, "email")
	if !ok {
		h.stateManager.ClearState(chatID)
		h.sendError(ctx, b, chatID, "❌ Диалог сбился. Начните заново: /login")
		return
	}
	email := emailValue.(string)

	// Сообщение с паролем лучше сразу убрать из чата
	b.DeleteMessage(ctx, &bot.DeleteMessageParams{
		ChatID:    chatID,
		MessageID: update.Message.ID,
	})

	token, err := h.client.Login(ctx, email, password)
	if err != nil {
		h.logger.Warn("Login failed", zap.String("email", email), zap.Error(err))
		h.stateManager.SetState(chatID, state.StateLoginEmail)
		h.sendError(ctx, b, chatID, common.ErrorMessage(err)+"\n\nВведите email ещё раз:")
		return
	}

	displayName := strings.TrimSpace(update.Message.From.FirstName + " " + update.Message.From.LastName)
	session, err := h.sessions.Login(ctx, chatID, token, displayName)
	if err != nil {
		h.logger.Error("Failed to persist session", zap.Int64("chat_id", chatID), zap.Error(err))
		h.stateManager.ClearState(chatID)
		h.sendError(ctx, b, chatID, "❌ Не удалось сохранить сессию. Попробуйте /login ещё раз")
		return
	}

	h.stateManager.ClearState(chatID)

	h.logger.Info("User logged in",
		zap.Int64("chat_id", chatID),
		zap.Int64("user_id", session.UserID),
		zap.String("role", string(session.Role)))

	h.sendMessage(ctx, b, chatID, fmt.Sprintf(
		"✅ Вы вошли как %s (%s)\n\nИспользуйте /help чтобы посмотреть команды",
		session.DisplayName, roleTitle(session.Role)))
}

// ===== Регистрация =====

func (h *Handlers) handleSignupNameStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID := update.Message.Chat.ID
	name := strings.TrimSpace(update.Message.Text)

	if len(name) < 2 {
		h.sendError(ctx, b, chatID, "❌ Имя слишком короткое. Попробуйте ещё раз:")
		return
	}

	h.stateManager.SetData(chatID, "name", name)
	h.stateManager.SetState(chatID, state.StateSignupEmail)

	h.sendMessage(ctx, b, chatID, fmt.Sprintf("✅ Имя: %s\n\nШаг 2 из 4: Введите email:", name))
}

func (h *Handlers) handleSignupEmailStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID := update.Message.Chat.ID
	email := strings.TrimSpace(update.Message.Text)

	if !strings.Contains(email, "@") {
		h.sendError(ctx, b, chatID, "❌ Это не похоже на email. Попробуйте ещё раз:")
		return
	}

	h.stateManager.SetData(chatID, "email", email)
	h.stateManager.SetState(chatID, state.StateSignupPassword)

	h.sendMessage(ctx, b, chatID, "Шаг 3 из 4: Придумайте пароль (минимум 6 символов):")
}

func (h *Handlers) handleSignupPasswordStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID := update.Message.Chat.ID
	password := update.Message.Text

	if len(password) < 6 {
		h.sendError(ctx, b, chatID, "❌ Пароль слишком короткий. Минимум 6 символов:")
		return
	}

	b.DeleteMessage(ctx, &bot.DeleteMessageParams{
		ChatID:    chatID,
		MessageID: update.Message.ID,
	})

	h.stateManager.SetData(chatID, "password", password)
	// Роль выбирается кнопками, состояние остаётся до выбора
	h.stateManager.SetState(chatID, state.StateSignupPassword)

	kb := keyboard.NewBuilder().
		Row(
			keyboard.Button("🧑 Я клиент", "signup_role:CUSTOMER"),
			keyboard.Button("🛠 Я провайдер", "signup_role:SERVICE_PROVIDER"),
		)

	h.sendKeyboard(ctx, b, chatID, "Шаг 4 из 4: Выберите роль:", kb.Build())
}

// HandleSignupRole завершает регистрацию после выбора роли кнопкой
func (h *Handlers) HandleSignupRole(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, roleValue string) {
	chatID := callback.From.ID
	if msg := callback.Message.Message; msg != nil {
		chatID = msg.Chat.ID
	}

	data := h.stateManager.GetAllData(chatID)
	name, nameOK := data["name"].(string)
	email, emailOK := data["email"].(string)
	password, passwordOK := data["password"].(string)
	if !nameOK || !emailOK || !passwordOK {
		h.stateManager.ClearState(chatID)
		h.sendError(ctx, b, chatID, "❌ Диалог сбился. Начните заново: /signup")
		return
	}

	role := model.ParseRole(roleValue)

	token, err := h.client.Signup(ctx, api.SignupRequest{
		Name:     name,
		Email:    email,
		Password: password,
		Role:     role,
	})
	if err != nil {
		h.logger.Warn("Signup failed", zap.String("email", email), zap.Error(err))
		h.sendError(ctx, b, chatID, common.ErrorMessage(err)+"\n\nПопробуйте /signup ещё раз")
		h.stateManager.ClearState(chatID)
		return
	}

	session, err := h.sessions.Login(ctx, chatID, token, name)
	if err != nil {
		h.logger.Error("Failed to persist session after signup", zap.Error(err))
		h.stateManager.ClearState(chatID)
		h.sendError(ctx, b, chatID, "❌ Аккаунт создан, но войти не удалось. Используйте /login")
		return
	}

	h.stateManager.ClearState(chatID)

	h.logger.Info("User signed up",
		zap.Int64("user_id", session.UserID),
		zap.String("role", string(session.Role)))

	text := fmt.Sprintf("🎉 Аккаунт создан! Вы вошли как %s (%s)", name, roleTitle(session.Role))
	if session.IsCustomer() {
		text += "\n\n📍 Укажите локацию через /location и ищите услуги через /search"
	} else {
		text += "\n\n➕ Создайте первое объявление через /newlisting"
	}
	h.sendMessage(ctx, b, chatID, text)
}

// ===== Локация =====

func (h *Handlers) handleLocationPointStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID := update.Message.Chat.ID

	if update.Message.Location == nil {
		h.sendError(ctx, b, chatID, "📍 Нужна именно локация: скрепка → Location.\n\nДля отмены /cancel")
		return
	}

	h.stateManager.SetData(chatID, "latitude", update.Message.Location.Latitude)
	h.stateManager.SetData(chatID, "longitude", update.Message.Location.Longitude)
	h.stateManager.SetState(chatID, state.StateLocationAddress)

	h.sendMessage(ctx, b, chatID, "✅ Координаты получены.\n\nТеперь введите адрес текстом (улица, дом, город):")
}

func (h *Handlers) handleLocationAddressStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	session, ok := h.requireSession(ctx, b, update)
	if !ok {
		return
	}

	chatID := update.Message.Chat.ID
	address := strings.TrimSpace(update.Message.Text)
	if address == "" {
		h.sendError(ctx, b, chatID, "❌ Адрес не может быть пустым. Попробуйте ещё раз:")
		return
	}

	data := h.stateManager.GetAllData(chatID)
	lat, latOK := data["latitude"].(float64)
	lng, lngOK := data["longitude"].(float64)
	if !latOK || !lngOK {
		h.stateManager.ClearState(chatID)
		h.sendError(ctx, b, chatID, "❌ Диалог сбился. Начните заново: /location")
		return
	}

	loc := service.Location{Latitude: lat, Longitude: lng, Address: address}
	if err := h.search.SetLocation(ctx, session, loc); err != nil {
		h.logger.Error("Failed to set location", zap.Error(err))
		h.sendError(ctx, b, chatID, common.ErrorMessage(err))
		return
	}

	h.stateManager.ClearState(chatID)
	h.sendMessage(ctx, b, chatID, "📍 Локация сохранена! Теперь можно искать услуги: /search")
}

func roleTitle(role model.Role) string {
	switch role {
	case model.RoleProvider:
		return "провайдер"
	case model.RoleAdmin:
		return "администратор"
	default:
		return "клиент"
	}
}
