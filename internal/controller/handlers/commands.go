package handlers

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/quickserve/quickserve_bot/internal/controller/callbacks/common"
	"github.com/quickserve/quickserve_bot/internal/controller/callbacks/common/formatting"
	"github.com/quickserve/quickserve_bot/internal/controller/callbacks/common/keyboard"
	"github.com/quickserve/quickserve_bot/internal/controller/state"
	"github.com/quickserve/quickserve_bot/internal/model"
	"github.com/quickserve/quickserve_bot/internal/service"
	"go.uber.org/zap"
)

// HandleStart обрабатывает команду /start
func (h *Handlers) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID := update.Message.Chat.ID

	session, err := h.sessions.Get(ctx, chatID)
	if err != nil {
		h.logger.Error("Failed to restore session on start", zap.Int64("chat_id", chatID), zap.Error(err))
	}

	if session != nil {
		h.sendMessage(ctx, b, chatID, fmt.Sprintf(
			"👋 С возвращением, %s!\n\nИспользуйте /help чтобы посмотреть доступные команды",
			session.DisplayName))
		return
	}

	h.sendMessage(ctx, b, chatID,
		"👋 Добро пожаловать в QuickServe!\n\n"+
			"Здесь можно найти услуги рядом с вами и забронировать удобное время, "+
			"а провайдеры управляют своими объявлениями и заказами.\n\n"+
			"🔐 /login — войти в аккаунт\n"+
			"📝 /signup — зарегистрироваться\n"+
			"❓ /help — справка по командам")
}

// HandleHelp обрабатывает команду /help
func (h *Handlers) HandleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID := update.Message.Chat.ID

	text := "❓ Доступные команды:\n\n" +
		"🔐 /login — войти\n" +
		"📝 /signup — зарегистрироваться\n" +
		"🚪 /logout — выйти\n\n" +
		"Для клиентов:\n" +
		"🔍 /search — найти услуги рядом\n" +
		"📍 /location — указать свою локацию\n" +
		"📅 /mybookings — мои бронирования\n\n" +
		"Для провайдеров:\n" +
		"📦 /orders — заказы клиентов\n" +
		"🗓 /myslots — рабочие слоты по дням недели\n" +
		"🛠 /mylistings — мои объявления\n" +
		"➕ /newlisting — создать объявление\n\n" +
		"🔔 /notifications — уведомления\n" +
		"🚫 /cancel — прервать текущий диалог"

	session, _ := h.sessions.Get(ctx, chatID)
	if session != nil && session.IsAdmin() {
		text += "\n\nДля администраторов:\n⚙️ /admin — панель администратора"
	}

	h.sendMessage(ctx, b, chatID, text)
}

// HandleCancel прерывает текущий диалог
func (h *Handlers) HandleCancel(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID := update.Message.Chat.ID
	h.stateManager.ClearState(chatID)
	h.sendMessage(ctx, b, chatID, "🚫 Действие отменено")
}

// HandleLogin начинает диалог входа
func (h *Handlers) HandleLogin(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID := update.Message.Chat.ID

	if session, _ := h.sessions.Get(ctx, chatID); session != nil {
		h.sendMessage(ctx, b, chatID, fmt.Sprintf(
			"Вы уже вошли как %s. Сначала выполните /logout", session.DisplayName))
		return
	}

	h.stateManager.SetState(chatID, state.StateLoginEmail)
	h.sendMessage(ctx, b, chatID, "🔐 Вход\n\nВведите ваш email:\n\nДля отмены используйте /cancel")
}

// HandleSignup начинает диалог регистрации
func (h *Handlers) HandleSignup(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID := update.Message.Chat.ID

	if session, _ := h.sessions.Get(ctx, chatID); session != nil {
		h.sendMessage(ctx, b, chatID, "Вы уже вошли в аккаунт. Сначала выполните /logout")
		return
	}

	h.stateManager.SetState(chatID, state.StateSignupName)
	h.sendMessage(ctx, b, chatID,
		"📝 Регистрация\n\nШаг 1 из 4: Как вас зовут?\n\nДля отмены используйте /cancel")
}

// HandleLogout выходит из аккаунта и сбрасывает локальные кэши
func (h *Handlers) HandleLogout(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID := update.Message.Chat.ID

	session, _ := h.sessions.Get(ctx, chatID)
	if session == nil {
		h.sendMessage(ctx, b, chatID, "Вы и так не вошли в аккаунт")
		return
	}

	if err := h.sessions.Logout(ctx, chatID); err != nil {
		h.logger.Error("Logout failed", zap.Int64("chat_id", chatID), zap.Error(err))
		h.sendError(ctx, b, chatID, "❌ Не удалось выйти. Попробуйте ещё раз")
		return
	}

	h.bookings.Forget(session.UserID)
	h.search.Forget(session.UserID)
	h.reviews.Forget(session.UserID)
	h.notifications.Forget(session.UserID)
	h.listings.Forget(session.UserID)
	h.availability.Forget(session.UserID)
	h.stateManager.ClearState(chatID)

	h.sendMessage(ctx, b, chatID, "🚪 Вы вышли из аккаунта. До встречи!")
}

// HandleLocation просит клиента поделиться локацией
func (h *Handlers) HandleLocation(ctx context.Context, b *bot.Bot, update *models.Update) {
	_, ok := h.requireRole(ctx, b, update, model.RoleCustomer)
	if !ok {
		return
	}

	chatID := update.Message.Chat.ID
	h.stateManager.SetState(chatID, state.StateLocationPoint)
	h.sendMessage(ctx, b, chatID,
		"📍 Отправьте свою локацию через вложение (скрепка → Location).\n\n"+
			"По ней будут ранжироваться результаты поиска.\n\nДля отмены используйте /cancel")
}

// HandleSearch показывает категории для поиска услуг
func (h *Handlers) HandleSearch(ctx context.Context, b *bot.Bot, update *models.Update) {
	session, ok := h.requireRole(ctx, b, update, model.RoleCustomer)
	if !ok {
		return
	}

	chatID := update.Message.Chat.ID

	// Без локации поиск не начинаем: ни одного запроса к бэкенду
	if _, hasLocation := h.search.Location(session.UserID); !hasLocation {
		h.sendMessage(ctx, b, chatID, "📍 Сначала укажите свою локацию через /location")
		return
	}

	categories, err := h.search.Categories(ctx, session)
	if err != nil {
		h.logger.Error("Failed to load categories", zap.Error(err))
		h.sendError(ctx, b, chatID, common.ErrorMessage(err))
		return
	}

	if len(categories) == 0 {
		h.sendMessage(ctx, b, chatID, "Пока нет ни одной категории услуг")
		return
	}

	kb := keyboard.NewBuilder()
	for _, category := range categories {
		kb.Row(keyboard.Button(category.Name, fmt.Sprintf("search_cat:%d", category.ID)))
	}

	h.sendKeyboard(ctx, b, chatID, "🔍 Выберите категорию услуг:", kb.Build())
}

// HandleMyBookings показывает бронирования клиента (вкладки Active/History)
func (h *Handlers) HandleMyBookings(ctx context.Context, b *bot.Bot, update *models.Update) {
	session, ok := h.requireRole(ctx, b, update, model.RoleCustomer)
	if !ok {
		return
	}

	chatID := chatIDFromUpdate(update)

	bookings, err := h.bookings.RefreshCustomerBookings(ctx, session)
	if err != nil {
		h.logger.Error("Failed to load customer bookings", zap.Error(err))
		h.sendError(ctx, b, chatID, common.ErrorMessage(err))
		return
	}

	// После загрузки списка проверяем завершённые услуги без отзыва
	if prompt := h.reviews.SyncCompleted(ctx, session, bookings); prompt != nil {
		h.sendReviewPrompt(ctx, b, chatID, prompt)
	}

	active, _ := service.SplitBookings(bookings)
	h.renderBookingsTab(ctx, b, chatID, active, false)
}

// sendReviewPrompt авто-подсказка "оцените услугу" (не чаще раза за сессию)
func (h *Handlers) sendReviewPrompt(ctx context.Context, b *bot.Bot, chatID int64, booking *model.Booking) {
	kb := keyboard.NewBuilder().
		Row(
			keyboard.Button("⭐️ Оценить", fmt.Sprintf("review_start:%d", booking.BookingID)),
			keyboard.Button("Позже", "noop"),
		)

	h.sendKeyboard(ctx, b, chatID, fmt.Sprintf(
		"✔️ Услуга «%s» завершена!\n\nПоделитесь впечатлением — оставьте отзыв", booking.ServiceName),
		kb.Build())
}

// renderBookingsTab отображает вкладку бронирований клиента
func (h *Handlers) renderBookingsTab(ctx context.Context, b *bot.Bot, chatID int64, bookings []model.Booking, history bool) {
	title := "📅 Активные бронирования"
	if history {
		title = "📜 История бронирований"
	}

	if len(bookings) == 0 {
		title += "\n\nПока пусто"
	}

	kb := keyboard.NewBuilder()
	for _, booking := range bookings {
		kb.Row(keyboard.Button(
			formatting.FormatBookingLine(booking, false),
			fmt.Sprintf("view_booking:%d", booking.BookingID),
		))
	}

	if history {
		kb.Row(keyboard.Button("⬅️ Активные", "bookings_tab:active"))
	} else {
		kb.Row(keyboard.Button("📜 История", "bookings_tab:history"))
	}

	h.sendKeyboard(ctx, b, chatID, title, kb.Build())
}

// HandleOrders показывает заказы провайдера
func (h *Handlers) HandleOrders(ctx context.Context, b *bot.Bot, update *models.Update) {
	session, ok := h.requireRole(ctx, b, update, model.RoleProvider)
	if !ok {
		return
	}

	chatID := chatIDFromUpdate(update)

	bookings, err := h.bookings.RefreshProviderBookings(ctx, session)
	if err != nil {
		h.logger.Error("Failed to load provider bookings", zap.Error(err))
		h.sendError(ctx, b, chatID, common.ErrorMessage(err))
		return
	}

	if len(bookings) == 0 {
		h.sendMessage(ctx, b, chatID, "📦 Заказов пока нет")
		return
	}

	kb := keyboard.NewBuilder()
	for _, booking := range bookings {
		kb.Row(keyboard.Button(
			formatting.FormatBookingLine(booking, true),
			fmt.Sprintf("view_order:%d", booking.BookingID),
		))
	}

	h.sendKeyboard(ctx, b, chatID, "📦 Заказы клиентов:", kb.Build())
}

// HandleMySlots показывает меню дней недели для настройки слотов
func (h *Handlers) HandleMySlots(ctx context.Context, b *bot.Bot, update *models.Update) {
	_, ok := h.requireRole(ctx, b, update, model.RoleProvider)
	if !ok {
		return
	}

	chatID := chatIDFromUpdate(update)

	kb := keyboard.NewBuilder()
	for _, day := range model.AllWeekdays() {
		kb.Row(keyboard.Button(string(day), fmt.Sprintf("slots_day:%s", day)))
	}

	h.sendKeyboard(ctx, b, chatID,
		"🗓 Рабочие слоты повторяются еженедельно.\n\nВыберите день недели:", kb.Build())
}

// HandleMyListings показывает объявления провайдера
func (h *Handlers) HandleMyListings(ctx context.Context, b *bot.Bot, update *models.Update) {
	session, ok := h.requireRole(ctx, b, update, model.RoleProvider)
	if !ok {
		return
	}

	chatID := chatIDFromUpdate(update)

	listings, err := h.listings.Refresh(ctx, session)
	if err != nil {
		h.logger.Error("Failed to load listings", zap.Error(err))
		h.sendError(ctx, b, chatID, common.ErrorMessage(err))
		return
	}

	if len(listings) == 0 {
		h.sendMessage(ctx, b, chatID, "🛠 У вас пока нет объявлений.\n\nСоздайте первое через /newlisting")
		return
	}

	kb := keyboard.NewBuilder()
	for _, listing := range listings {
		display := formatting.GetApprovalDisplay(listing.ApprovalState)
		label := fmt.Sprintf("%s %s • %s", display.Emoji, listing.Title, formatting.FormatPrice(listing.Price))
		if listing.Disabled {
			label += " (выкл)"
		}
		kb.Row(keyboard.Button(label, fmt.Sprintf("view_listing:%d", listing.ID)))
	}

	h.sendKeyboard(ctx, b, chatID, "🛠 Ваши объявления:", kb.Build())
}

// HandleNewListing начинает диалог создания объявления
func (h *Handlers) HandleNewListing(ctx context.Context, b *bot.Bot, update *models.Update) {
	session, ok := h.requireRole(ctx, b, update, model.RoleProvider)
	if !ok {
		return
	}

	chatID := update.Message.Chat.ID

	categories, err := h.search.Categories(ctx, session)
	if err != nil {
		h.logger.Error("Failed to load categories", zap.Error(err))
		h.sendError(ctx, b, chatID, common.ErrorMessage(err))
		return
	}

	if len(categories) == 0 {
		h.sendMessage(ctx, b, chatID, "Пока нет ни одной категории услуг, объявление создать нельзя")
		return
	}

	kb := keyboard.NewBuilder()
	for _, category := range categories {
		kb.Row(keyboard.Button(category.Name, fmt.Sprintf("new_listing_cat:%d", category.ID)))
	}

	h.sendKeyboard(ctx, b, chatID, "➕ Новое объявление\n\nВыберите категорию:", kb.Build())
}

// HandleNotifications показывает ленту уведомлений
func (h *Handlers) HandleNotifications(ctx context.Context, b *bot.Bot, update *models.Update) {
	session, ok := h.requireSession(ctx, b, update)
	if !ok {
		return
	}

	chatID := chatIDFromUpdate(update)

	notifications, unread := h.notifications.Feed(session.UserID)
	if len(notifications) == 0 {
		h.sendMessage(ctx, b, chatID, "🔔 Уведомлений пока нет")
		return
	}

	kb := keyboard.NewBuilder()
	for _, n := range notifications {
		label := n.Message
		if !n.IsRead {
			label = "🔵 " + label
		}
		kb.Row(keyboard.Button(label, fmt.Sprintf("open_notification:%d", n.ID)))
	}

	h.sendKeyboard(ctx, b, chatID,
		fmt.Sprintf("🔔 Уведомления (непрочитанных: %d):", unread), kb.Build())
}

// HandleAdmin показывает панель администратора
func (h *Handlers) HandleAdmin(ctx context.Context, b *bot.Bot, update *models.Update) {
	_, ok := h.requireRole(ctx, b, update, model.RoleAdmin)
	if !ok {
		return
	}

	chatID := chatIDFromUpdate(update)

	kb := keyboard.NewBuilder().
		Row(keyboard.Button("⏳ Объявления на модерации", "admin_pending")).
		Row(keyboard.Button("✅ Одобренные объявления", "admin_approved")).
		Row(keyboard.Button("📂 Категории", "admin_categories")).
		Row(keyboard.Button("👥 Пользователи", "admin_users")).
		Row(keyboard.Button("📊 Аналитика", "admin_analytics"))

	h.sendKeyboard(ctx, b, chatID, "⚙️ Панель администратора", kb.Build())
}
