package model

import "fmt"

// Review отзыв клиента о завершённом бронировании. Создаётся один раз,
// не редактируется и не удаляется.
type Review struct {
	ID           int64     `json:"id"`
	BookingID    int64     `json:"bookingId"`
	Rating       int       `json:"rating"` // 1-5
	Comment      string    `json:"comment"`
	CustomerName string    `json:"customerName,omitempty"`
	ServiceName  string    `json:"serviceName,omitempty"`
	BookingDate  string    `json:"bookingDate,omitempty"`
	CreatedAt    Timestamp `json:"createdAt,omitempty"`
}

// CreateReviewRequest payload создания отзыва
type CreateReviewRequest struct {
	BookingID int64  `json:"bookingId"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
}

// Validate рейтинг обязателен, комментарий нет
func (r *CreateReviewRequest) Validate() error {
	if r.Rating < 1 || r.Rating > 5 {
		return fmt.Errorf("rating must be between 1 and 5, got %d", r.Rating)
	}
	return nil
}
