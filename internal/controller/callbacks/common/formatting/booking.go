package formatting

import (
	"fmt"

	"github.com/quickserve/quickserve_bot/internal/model"
)

// FormatBookingLine одна строка списка бронирований
func FormatBookingLine(booking model.Booking, forProvider bool) string {
	display := GetBookingStatusDisplay(booking.Status)

	counterparty := booking.ProviderName
	if forProvider {
		counterparty = booking.CustomerName
	}

	return fmt.Sprintf("%s #%d %s • %s %s • %s",
		display.Emoji,
		booking.BookingID,
		booking.ServiceName,
		booking.BookingDate,
		booking.TimeSlot,
		counterparty,
	)
}

// FormatBookingDetails карточка бронирования
func FormatBookingDetails(booking model.Booking, forProvider bool) string {
	display := GetBookingStatusDisplay(booking.Status)

	text := fmt.Sprintf(
		"%s Бронирование #%d\n\n"+
			"🛠 Услуга: %s\n"+
			"📅 Дата: %s\n"+
			"🕐 Время: %s\n"+
			"💵 Цена: %s\n"+
			"📊 Статус: %s",
		display.Emoji,
		booking.BookingID,
		booking.ServiceName,
		booking.BookingDate,
		booking.TimeSlot,
		FormatPrice(booking.Price),
		display.Text,
	)

	if forProvider {
		text += fmt.Sprintf("\n👤 Клиент: %s", booking.CustomerName)
		if booking.CustomerAddress != "" {
			text += fmt.Sprintf("\n📍 Адрес: %s", booking.CustomerAddress)
		}
	} else if booking.ProviderName != "" {
		text += fmt.Sprintf("\n👤 Провайдер: %s", booking.ProviderName)
	}

	return text
}

// FormatListingCard карточка объявления в выдаче поиска
func FormatListingCard(listing model.Listing) string {
	text := fmt.Sprintf("🛠 %s\n💵 %s", listing.Title, FormatPrice(listing.Price))
	if listing.Description != "" {
		text += "\n\n" + listing.Description
	}
	return text
}
