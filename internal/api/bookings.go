package api

import (
	"context"
	"fmt"

	"github.com/quickserve/quickserve_bot/internal/model"
)

// CreateBooking создаёт бронирование в статусе PENDING
func (c *Client) CreateBooking(ctx context.Context, customerID int64, req model.CreateBookingRequest) (*model.Booking, error) {
	var booking model.Booking
	path := fmt.Sprintf("/customer/bookings/%d", customerID)
	if err := c.post(ctx, path, nil, req, &booking); err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}
	return &booking, nil
}

// CustomerBookings список бронирований клиента
func (c *Client) CustomerBookings(ctx context.Context, customerID int64) ([]model.Booking, error) {
	var bookings []model.Booking
	path := fmt.Sprintf("/customer/bookings/%d", customerID)
	if err := c.get(ctx, path, nil, &bookings); err != nil {
		return nil, fmt.Errorf("get customer bookings: %w", err)
	}
	return bookings, nil
}

// ProviderBookings список бронирований провайдера
func (c *Client) ProviderBookings(ctx context.Context, providerID int64) ([]model.Booking, error) {
	var bookings []model.Booking
	path := fmt.Sprintf("/provider/bookings/%d", providerID)
	if err := c.get(ctx, path, nil, &bookings); err != nil {
		return nil, fmt.Errorf("get provider bookings: %w", err)
	}
	return bookings, nil
}

// ProviderBookingAction выполняет действие провайдера над бронированием:
// confirm, complete или cancel
func (c *Client) ProviderBookingAction(ctx context.Context, bookingID int64, action model.BookingAction) error {
	path := fmt.Sprintf("/provider/bookings/%d/%s", bookingID, action)
	if err := c.post(ctx, path, nil, nil, nil); err != nil {
		return fmt.Errorf("provider booking %s: %w", action, err)
	}
	return nil
}

// CustomerCancelBooking отменяет бронирование клиентом. Бэкенд отклонит
// отмену не-PENDING бронирования, клиент это заранее не валидирует.
func (c *Client) CustomerCancelBooking(ctx context.Context, bookingID int64) error {
	path := fmt.Sprintf("/customer/bookings/%d/cancel", bookingID)
	if err := c.post(ctx, path, nil, nil, nil); err != nil {
		return fmt.Errorf("customer cancel booking: %w", err)
	}
	return nil
}
