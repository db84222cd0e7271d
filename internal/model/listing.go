package model

import "encoding/json"

type ApprovalState string

const (
	ApprovalPending  ApprovalState = "PENDING"
	ApprovalApproved ApprovalState = "APPROVED"
	ApprovalRejected ApprovalState = "REJECTED"
)

// Listing объявление провайдера
type Listing struct {
	ID            int64         `json:"id"`
	ProviderID    int64         `json:"providerId"`
	CategoryID    int64         `json:"categoryId"`
	Title         string        `json:"title"`
	Description   string        `json:"description"`
	Price         float64       `json:"price"`
	ImageURL      string        `json:"imageUrl"`
	Disabled      bool          `json:"disabled"`
	ApprovalState ApprovalState `json:"approvalState"`
}

// listingAliases все варианты имён полей, которые встречаются в ответах
// разных версий бэкенда. Поиск отдаёт providerId, старый dashboard —
// provider_id/shopId/userId, listing_id вместо id.
type listingAliases struct {
	ID            int64         `json:"id"`
	ListingID     int64         `json:"listing_id"`
	ProviderID    int64         `json:"providerId"`
	ProviderIDAlt int64         `json:"provider_id"`
	ShopID        int64         `json:"shopId"`
	UserID        int64         `json:"userId"`
	CategoryID    int64         `json:"categoryId"`
	Title         string        `json:"title"`
	Description   string        `json:"description"`
	Price         float64       `json:"price"`
	ImageURL      string        `json:"imageUrl"`
	Images        string        `json:"images"`
	Disabled      bool          `json:"disabled"`
	ApprovalState ApprovalState `json:"approvalState"`
}

func (l *Listing) UnmarshalJSON(data []byte) error {
	var raw listingAliases
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	l.ID = firstNonZero(raw.ID, raw.ListingID)
	l.ProviderID = firstNonZero(raw.ProviderID, raw.ProviderIDAlt, raw.ShopID, raw.UserID)
	l.CategoryID = raw.CategoryID
	l.Title = raw.Title
	l.Description = raw.Description
	l.Price = raw.Price
	l.Disabled = raw.Disabled
	l.ApprovalState = raw.ApprovalState

	l.ImageURL = raw.ImageURL
	if l.ImageURL == "" {
		l.ImageURL = raw.Images
	}

	return nil
}

func firstNonZero(values ...int64) int64 {
	for _, v := range values {
		if v != 0 {
			return v
		}
	}
	return 0
}
