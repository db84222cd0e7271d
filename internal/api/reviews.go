package api

import (
	"context"
	"fmt"

	"github.com/quickserve/quickserve_bot/internal/model"
)

// SubmitReview отправляет отзыв о завершённом бронировании
func (c *Client) SubmitReview(ctx context.Context, req model.CreateReviewRequest) error {
	if err := req.Validate(); err != nil {
		return fmt.Errorf("submit review: %w", err)
	}
	if err := c.post(ctx, "/customer/reviews", nil, req, nil); err != nil {
		return fmt.Errorf("submit review: %w", err)
	}
	return nil
}

// ReviewsByBooking отзывы по бронированию. Обычно список пуст или
// содержит один элемент.
func (c *Client) ReviewsByBooking(ctx context.Context, bookingID int64) ([]model.Review, error) {
	var reviews []model.Review
	path := fmt.Sprintf("/customer/reviews/%d", bookingID)
	if err := c.get(ctx, path, nil, &reviews); err != nil {
		return nil, fmt.Errorf("get reviews by booking: %w", err)
	}
	return reviews, nil
}
