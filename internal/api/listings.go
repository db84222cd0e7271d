package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"

	"github.com/quickserve/quickserve_bot/internal/model"
)

// ListingUpload данные нового объявления. Фото опционально;
// при его наличии запрос уходит как multipart, а не JSON.
type ListingUpload struct {
	CategoryID  int64
	Title       string
	Description string
	Price       float64
	ImageName   string
	Image       io.Reader
}

// CreateListing создаёт объявление провайдера
func (c *Client) CreateListing(ctx context.Context, providerID int64, upload ListingUpload) (*model.Listing, error) {
	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)

	fields := map[string]string{
		"categoryId":  strconv.FormatInt(upload.CategoryID, 10),
		"title":       upload.Title,
		"description": upload.Description,
		"price":       strconv.FormatFloat(upload.Price, 'f', 2, 64),
	}
	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return nil, fmt.Errorf("create listing: write field %s: %w", name, err)
		}
	}

	if upload.Image != nil {
		part, err := writer.CreateFormFile("image", upload.ImageName)
		if err != nil {
			return nil, fmt.Errorf("create listing: create image part: %w", err)
		}
		if _, err := io.Copy(part, upload.Image); err != nil {
			return nil, fmt.Errorf("create listing: copy image: %w", err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("create listing: close multipart: %w", err)
	}

	var listing model.Listing
	path := fmt.Sprintf("/provider/%d/listings", providerID)
	if err := c.do(ctx, http.MethodPost, path, nil, buf, writer.FormDataContentType(), &listing); err != nil {
		return nil, fmt.Errorf("create listing: %w", err)
	}
	return &listing, nil
}

// ProviderListings объявления провайдера
func (c *Client) ProviderListings(ctx context.Context, providerID int64) ([]model.Listing, error) {
	var listings []model.Listing
	path := fmt.Sprintf("/provider/%d/listings", providerID)
	if err := c.get(ctx, path, nil, &listings); err != nil {
		return nil, fmt.Errorf("get provider listings: %w", err)
	}
	return listings, nil
}

// Listing одно объявление по id. Маршрут исторический: listingId стоит
// в сегменте провайдера.
func (c *Client) Listing(ctx context.Context, listingID int64) (*model.Listing, error) {
	var listing model.Listing
	path := fmt.Sprintf("/provider/%d/listing", listingID)
	if err := c.get(ctx, path, nil, &listing); err != nil {
		return nil, fmt.Errorf("get listing: %w", err)
	}
	return &listing, nil
}

// ListingUpdate изменяемые поля объявления
type ListingUpdate struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Disabled    bool    `json:"disabled"`
}

// UpdateListing обновляет объявление
func (c *Client) UpdateListing(ctx context.Context, listingID int64, update ListingUpdate) error {
	path := fmt.Sprintf("/provider/listings/%d", listingID)
	if err := c.put(ctx, path, update, nil); err != nil {
		return fmt.Errorf("update listing: %w", err)
	}
	return nil
}

// DeleteListing удаляет объявление
func (c *Client) DeleteListing(ctx context.Context, listingID int64) error {
	path := fmt.Sprintf("/provider/listings/%d", listingID)
	if err := c.delete(ctx, path); err != nil {
		return fmt.Errorf("delete listing: %w", err)
	}
	return nil
}

// SearchListings поиск ближайших одобренных объявлений по категории.
// Ранжирование по геодистанции считает бэкенд.
func (c *Client) SearchListings(ctx context.Context, lat, lng float64, categoryID int64) ([]model.Listing, error) {
	query := url.Values{}
	query.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	query.Set("lng", strconv.FormatFloat(lng, 'f', -1, 64))
	query.Set("categoryId", strconv.FormatInt(categoryID, 10))

	var listings []model.Listing
	if err := c.get(ctx, "/customer/search", query, &listings); err != nil {
		return nil, fmt.Errorf("search listings: %w", err)
	}
	return listings, nil
}
