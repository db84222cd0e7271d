package callbacks

import (
	"context"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/quickserve/quickserve_bot/internal/controller/callbacks/admin"
	"github.com/quickserve/quickserve_bot/internal/controller/callbacks/callbacktypes"
	"github.com/quickserve/quickserve_bot/internal/controller/callbacks/common"
	"github.com/quickserve/quickserve_bot/internal/controller/callbacks/customer"
	"github.com/quickserve/quickserve_bot/internal/controller/callbacks/provider"
	"github.com/quickserve/quickserve_bot/internal/controller/state"
	"go.uber.org/zap"
)

// ========================
// Callback Data Patterns
// ========================

// Auth
const (
	SignupRole = "signup_role:" // signup_role:CUSTOMER
)

// Customer: поиск и бронирование
const (
	SearchCategory = "search_cat:"  // search_cat:3
	ViewResult     = "view_result:" // view_result:12
	BookStart      = "book_start:"  // book_start:12
	BookSlot       = "book_slot:"   // book_slot:2 (индекс слота)
	BookConfirm    = "book_confirm"
	BookAbort      = "book_abort"

	BookingsTab   = "bookings_tab:"   // bookings_tab:active|history
	ViewBooking   = "view_booking:"   // view_booking:45
	CancelBooking = "cancel_booking:" // cancel_booking:45
	ConfirmCancel = "confirm_cancel:" // confirm_cancel:45

	ReviewStart = "review_start:" // review_start:45
	ReviewRate  = "review_rate:"  // review_rate:45:5

	OpenNotification = "open_notification:" // open_notification:7
)

// Provider: слоты, заказы, объявления
const (
	SlotsDay   = "slots_day:"   // slots_day:MONDAY
	SlotToggle = "slot_toggle:" // slot_toggle:MONDAY:2
	SlotsSave  = "slots_save:"  // slots_save:MONDAY

	ViewOrder      = "view_order:"       // view_order:45
	OrderConfirm   = "order_confirm:"    // order_confirm:45
	OrderComplete  = "order_complete:"   // order_complete:45
	OrderCancel    = "order_cancel:"     // order_cancel:45
	OrderCancelYes = "order_cancel_yes:" // order_cancel_yes:45

	NewListingCategory   = "new_listing_cat:"        // new_listing_cat:3
	ViewListing          = "view_listing:"           // view_listing:12
	EditListingTitle     = "edit_listing_title:"     // edit_listing_title:12
	EditListingDesc      = "edit_listing_desc:"      // edit_listing_desc:12
	EditListingPrice     = "edit_listing_price:"     // edit_listing_price:12
	ToggleListing        = "toggle_listing:"         // toggle_listing:12
	DeleteListing        = "delete_listing:"         // delete_listing:12
	ConfirmDeleteListing = "confirm_delete_listing:" // confirm_delete_listing:12
)

// Admin
const (
	AdminPending    = "admin_pending"
	AdminApproved   = "admin_approved"
	AdminCategories = "admin_categories"
	AdminUsers      = "admin_users"
	AdminAnalytics  = "admin_analytics"

	ModListing     = "mod_listing:"     // mod_listing:12
	ApproveListing = "approve_listing:" // approve_listing:12
	RejectListing  = "reject_listing:"  // reject_listing:12

	AddCategory    = "add_category"
	DeleteCategory = "del_category:" // del_category:3
)

// ========================
// Main Callback Router
// ========================

// Route распределяет callback query по соответствующим обработчикам
func Route(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	data := callback.Data

	h.Logger.Debug("Routing callback",
		zap.String("data", data),
		zap.Int64("user_id", callback.From.ID))

	switch {
	// ===== Common =====
	case data == "noop":
		// No operation - просто подтверждаем callback
		common.AnswerCallback(ctx, b, callback.ID, "")

	// ===== Auth =====
	case strings.HasPrefix(data, SignupRole):
		if h.HandleSignupRole != nil {
			h.HandleSignupRole(ctx, b, callback, strings.TrimPrefix(data, SignupRole))
		}

	// ===== Customer: Search & Booking =====
	case strings.HasPrefix(data, SearchCategory):
		customer.HandleSearchCategory(ctx, b, callback, h)
	case strings.HasPrefix(data, ViewResult):
		customer.HandleViewResult(ctx, b, callback, h)
	case strings.HasPrefix(data, BookStart):
		customer.HandleBookStart(ctx, b, callback, h)
	case strings.HasPrefix(data, BookSlot):
		customer.HandleBookSlot(ctx, b, callback, h)
	case data == BookConfirm:
		customer.HandleBookConfirm(ctx, b, callback, h)
	case data == BookAbort:
		customer.HandleBookAbort(ctx, b, callback, h)

	// ===== Customer: Bookings Dashboard =====
	case strings.HasPrefix(data, BookingsTab):
		customer.HandleBookingsTab(ctx, b, callback, h)
	case strings.HasPrefix(data, ViewBooking):
		customer.HandleViewBooking(ctx, b, callback, h)
	case strings.HasPrefix(data, CancelBooking):
		customer.HandleCancelBooking(ctx, b, callback, h)
	case strings.HasPrefix(data, ConfirmCancel):
		customer.HandleConfirmCancel(ctx, b, callback, h)

	// ===== Customer: Reviews & Notifications =====
	case strings.HasPrefix(data, ReviewStart):
		customer.HandleReviewStart(ctx, b, callback, h)
	case strings.HasPrefix(data, ReviewRate):
		customer.HandleReviewRate(ctx, b, callback, h)
	case strings.HasPrefix(data, OpenNotification):
		customer.HandleOpenNotification(ctx, b, callback, h)

	// ===== Provider: Availability =====
	case strings.HasPrefix(data, SlotsDay):
		provider.HandleSlotsDay(ctx, b, callback, h)
	case strings.HasPrefix(data, SlotToggle):
		provider.HandleSlotToggle(ctx, b, callback, h)
	case strings.HasPrefix(data, SlotsSave):
		provider.HandleSlotsSave(ctx, b, callback, h)

	// ===== Provider: Orders =====
	case strings.HasPrefix(data, ViewOrder):
		provider.HandleViewOrder(ctx, b, callback, h)
	case strings.HasPrefix(data, OrderConfirm):
		provider.HandleOrderConfirm(ctx, b, callback, h)
	case strings.HasPrefix(data, OrderComplete):
		provider.HandleOrderComplete(ctx, b, callback, h)
	case strings.HasPrefix(data, OrderCancelYes):
		provider.HandleOrderCancelYes(ctx, b, callback, h)
	case strings.HasPrefix(data, OrderCancel):
		provider.HandleOrderCancel(ctx, b, callback, h)

	// ===== Provider: Listings =====
	case strings.HasPrefix(data, NewListingCategory):
		provider.HandleNewListingCategory(ctx, b, callback, h)
	case strings.HasPrefix(data, ViewListing):
		provider.HandleViewListing(ctx, b, callback, h)
	case strings.HasPrefix(data, EditListingTitle):
		provider.HandleEditListingField(ctx, b, callback, h,
			state.StateEditListingTitle, "✏️ Введите новое название:")
	case strings.HasPrefix(data, EditListingDesc):
		provider.HandleEditListingField(ctx, b, callback, h,
			state.StateEditListingDescription, "✏️ Введите новое описание:")
	case strings.HasPrefix(data, EditListingPrice):
		provider.HandleEditListingField(ctx, b, callback, h,
			state.StateEditListingPrice, "✏️ Введите новую цену:")
	case strings.HasPrefix(data, ToggleListing):
		provider.HandleToggleListing(ctx, b, callback, h)
	case strings.HasPrefix(data, ConfirmDeleteListing):
		provider.HandleConfirmDeleteListing(ctx, b, callback, h)
	case strings.HasPrefix(data, DeleteListing):
		provider.HandleDeleteListing(ctx, b, callback, h)

	// ===== Admin =====
	case data == AdminPending:
		admin.HandlePending(ctx, b, callback, h)
	case data == AdminApproved:
		admin.HandleApproved(ctx, b, callback, h)
	case data == AdminCategories:
		admin.HandleCategories(ctx, b, callback, h)
	case data == AdminUsers:
		admin.HandleUsers(ctx, b, callback, h)
	case data == AdminAnalytics:
		admin.HandleAnalytics(ctx, b, callback, h)
	case strings.HasPrefix(data, ModListing):
		admin.HandleModListing(ctx, b, callback, h)
	case strings.HasPrefix(data, ApproveListing):
		admin.HandleApproveListing(ctx, b, callback, h)
	case strings.HasPrefix(data, RejectListing):
		admin.HandleRejectListing(ctx, b, callback, h)
	case data == AddCategory:
		admin.HandleAddCategory(ctx, b, callback, h)
	case strings.HasPrefix(data, DeleteCategory):
		admin.HandleDeleteCategory(ctx, b, callback, h)

	// ===== Unknown Callback =====
	default:
		h.Logger.Warn("Unknown callback",
			zap.String("data", data),
			zap.Int64("user_id", callback.From.ID))
		common.AnswerCallback(ctx, b, callback.ID, "❌ Неизвестная команда")
	}
}
