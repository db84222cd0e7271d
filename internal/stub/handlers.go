package stub

import (
	"fmt"
	"net/http"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/quickserve/quickserve_bot/internal/model"
)

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": fmt.Sprintf("invalid %s", name)})
		return 0, false
	}
	return id, true
}

// ===== Аутентификация =====

type signupPayload struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required"`
}

func (s *Server) handleSignup(c *gin.Context) {
	var payload signupPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "name, email, password and role are required"})
		return
	}

	role := model.ParseRole(payload.Role)
	if payload.Role == string(model.RoleAdmin) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "admin accounts cannot be self-registered"})
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	if s.store.userByEmail(payload.Email) != nil {
		c.JSON(http.StatusConflict, gin.H{"message": "email already registered"})
		return
	}

	id := s.store.id()
	u := &user{
		ID:       id,
		Name:     payload.Name,
		Email:    payload.Email,
		Password: payload.Password,
		Role:     role,
	}
	s.store.users[id] = u

	token, err := s.issueToken(u)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to issue token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

type loginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(c *gin.Context) {
	var payload loginPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "email and password are required"})
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	u := s.store.userByEmail(payload.Email)
	if u == nil || u.Password != payload.Password {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid email or password"})
		return
	}

	token, err := s.issueToken(u)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to issue token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

// ===== Категории =====

func (s *Server) handleCategories(c *gin.Context) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	categories := make([]model.Category, 0, len(s.store.categories))
	for _, category := range s.store.categories {
		categories = append(categories, *category)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].ID < categories[j].ID })

	c.JSON(http.StatusOK, categories)
}

// ===== Объявления провайдера =====

func (s *Server) handleCreateListing(c *gin.Context) {
	providerID, ok := pathID(c, "providerId")
	if !ok {
		return
	}

	categoryID, err := strconv.ParseInt(c.PostForm("categoryId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid categoryId"})
		return
	}
	price, err := strconv.ParseFloat(c.PostForm("price"), 64)
	if err != nil || price <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid price"})
		return
	}
	title := strings.TrimSpace(c.PostForm("title"))
	if title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "title is required"})
		return
	}

	// Файл не сохраняем, стабу достаточно имени
	imageURL := ""
	if file, err := c.FormFile("image"); err == nil {
		imageURL = "/uploads/" + filepath.Base(file.Filename)
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	if _, exists := s.store.categories[categoryID]; !exists {
		c.JSON(http.StatusBadRequest, gin.H{"message": "category not found"})
		return
	}

	id := s.store.id()
	listing := &model.Listing{
		ID:            id,
		ProviderID:    providerID,
		CategoryID:    categoryID,
		Title:         title,
		Description:   c.PostForm("description"),
		Price:         price,
		ImageURL:      imageURL,
		ApprovalState: model.ApprovalPending,
	}
	s.store.listings[id] = listing

	c.JSON(http.StatusOK, listing)
}

func (s *Server) handleProviderListings(c *gin.Context) {
	providerID, ok := pathID(c, "providerId")
	if !ok {
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	listings := make([]model.Listing, 0)
	for _, listing := range s.store.listings {
		if listing.ProviderID == providerID {
			listings = append(listings, *listing)
		}
	}
	sort.Slice(listings, func(i, j int) bool { return listings[i].ID < listings[j].ID })

	c.JSON(http.StatusOK, listings)
}

func (s *Server) handleGetListing(c *gin.Context) {
	listingID, ok := pathID(c, "providerId")
	if !ok {
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	listing, exists := s.store.listings[listingID]
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"message": "listing not found"})
		return
	}
	c.JSON(http.StatusOK, listing)
}

type listingUpdatePayload struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Disabled    bool    `json:"disabled"`
}

func (s *Server) handleUpdateListing(c *gin.Context) {
	listingID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var payload listingUpdatePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid listing payload"})
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	listing, exists := s.store.listings[listingID]
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"message": "listing not found"})
		return
	}
	if listing.ProviderID != currentUserID(c) {
		c.JSON(http.StatusForbidden, gin.H{"message": "not your listing"})
		return
	}

	listing.Title = payload.Title
	listing.Description = payload.Description
	listing.Price = payload.Price
	listing.Disabled = payload.Disabled

	c.JSON(http.StatusOK, listing)
}

func (s *Server) handleDeleteListing(c *gin.Context) {
	listingID, ok := pathID(c, "id")
	if !ok {
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	listing, exists := s.store.listings[listingID]
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"message": "listing not found"})
		return
	}
	if listing.ProviderID != currentUserID(c) {
		c.JSON(http.StatusForbidden, gin.H{"message": "not your listing"})
		return
	}

	delete(s.store.listings, listingID)
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

// ===== Доступность =====

func (s *Server) handleProviderAvailability(c *gin.Context) {
	providerID, ok := pathID(c, "id")
	if !ok {
		return
	}
	day := model.Weekday(c.Query("day"))

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	slots := s.store.availability[providerID][day]
	if slots == nil {
		slots = []string{}
	}

	// Провайдерский вид отдаёт объект с timeSlots, клиентский — голый
	// массив. Клиент бота нормализует оба варианта.
	c.JSON(http.StatusOK, gin.H{"day": day, "timeSlots": slots})
}

func (s *Server) handleCustomerAvailability(c *gin.Context) {
	providerID, ok := pathID(c, "id")
	if !ok {
		return
	}
	day := model.Weekday(c.Query("day"))

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	slots := s.store.availability[providerID][day]
	if slots == nil {
		slots = []string{}
	}
	c.JSON(http.StatusOK, slots)
}

func (s *Server) handleSaveAvailability(c *gin.Context) {
	providerID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var schedule model.DaySchedule
	if err := c.ShouldBindJSON(&schedule); err != nil || schedule.Day == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid schedule payload"})
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	if s.store.availability[providerID] == nil {
		s.store.availability[providerID] = make(map[model.Weekday][]string)
	}
	// Полная перезапись дня, merge не делаем
	s.store.availability[providerID][schedule.Day] = schedule.TimeSlots

	c.JSON(http.StatusOK, gin.H{"message": "saved"})
}

// ===== Поиск =====

func (s *Server) handleSearch(c *gin.Context) {
	lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
	lng, lngErr := strconv.ParseFloat(c.Query("lng"), 64)
	categoryID, catErr := strconv.ParseInt(c.Query("categoryId"), 10, 64)
	if latErr != nil || lngErr != nil || catErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "lat, lng and categoryId are required"})
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	results := make([]model.Listing, 0)
	for _, listing := range s.store.listings {
		if listing.CategoryID != categoryID || listing.Disabled {
			continue
		}
		if listing.ApprovalState != model.ApprovalApproved {
			continue
		}
		results = append(results, *listing)
	}

	// Ближайшие первыми; для ранжирования хватает квадрата расстояния
	distance := func(l model.Listing) float64 {
		provider := s.store.users[l.ProviderID]
		if provider == nil {
			return 0
		}
		dLat := provider.Lat - lat
		dLng := provider.Lng - lng
		return dLat*dLat + dLng*dLng
	}
	sort.Slice(results, func(i, j int) bool { return distance(results[i]) < distance(results[j]) })

	c.JSON(http.StatusOK, results)
}

// ===== Бронирования =====

func (s *Server) handleCreateBooking(c *gin.Context) {
	customerID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req model.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid booking payload"})
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	listing, exists := s.store.listings[req.ListingID]
	if !exists || listing.ApprovalState != model.ApprovalApproved || listing.Disabled {
		c.JSON(http.StatusBadRequest, gin.H{"message": "listing is not available for booking"})
		return
	}

	id := s.store.id()
	b := &booking{
		ID:         id,
		CustomerID: customerID,
		ProviderID: listing.ProviderID,
		ListingID:  listing.ID,
		Date:       req.BookingDate,
		TimeSlot:   req.TimeSlot,
		Status:     model.BookingStatusPending,
	}
	s.store.bookings[id] = b

	s.store.notify(listing.ProviderID, fmt.Sprintf(
		"New booking #%d for %s on %s at %s", id, listing.Title, req.BookingDate, req.TimeSlot))

	c.JSON(http.StatusOK, s.bookingView(b))
}

func (s *Server) handleCustomerBookings(c *gin.Context) {
	customerID, ok := pathID(c, "id")
	if !ok {
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	bookings := make([]model.Booking, 0)
	for _, b := range s.store.bookings {
		if b.CustomerID == customerID {
			bookings = append(bookings, s.bookingView(b))
		}
	}
	sort.Slice(bookings, func(i, j int) bool { return bookings[i].BookingID < bookings[j].BookingID })

	c.JSON(http.StatusOK, bookings)
}

func (s *Server) handleProviderBookings(c *gin.Context) {
	providerID, ok := pathID(c, "id")
	if !ok {
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	bookings := make([]model.Booking, 0)
	for _, b := range s.store.bookings {
		if b.ProviderID == providerID {
			bookings = append(bookings, s.bookingView(b))
		}
	}
	sort.Slice(bookings, func(i, j int) bool { return bookings[i].BookingID < bookings[j].BookingID })

	c.JSON(http.StatusOK, bookings)
}

func (s *Server) handleProviderBookingAction(c *gin.Context) {
	bookingID, ok := pathID(c, "id")
	if !ok {
		return
	}

	action := model.BookingAction(c.Param("action"))
	switch action {
	case model.ActionConfirm, model.ActionComplete, model.ActionCancel:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"message": "unknown action"})
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	b, exists := s.store.bookings[bookingID]
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"message": "booking not found"})
		return
	}
	if b.ProviderID != currentUserID(c) {
		c.JSON(http.StatusForbidden, gin.H{"message": "not your booking"})
		return
	}
	if !b.Status.Allows(model.RoleProvider, action) {
		c.JSON(http.StatusBadRequest, gin.H{"message": fmt.Sprintf(
			"cannot %s booking in status %s", action, b.Status)})
		return
	}

	b.Status = action.ResultStatus()

	serviceName := ""
	if listing := s.store.listings[b.ListingID]; listing != nil {
		serviceName = listing.Title
	}
	switch b.Status {
	case model.BookingStatusConfirmed:
		s.store.notify(b.CustomerID, fmt.Sprintf("Your booking #%d (%s) was confirmed", b.ID, serviceName))
	case model.BookingStatusCompleted:
		// Клиент по слову COMPLETED понимает, что пора предлагать отзыв
		s.store.notify(b.CustomerID, fmt.Sprintf("Your booking #%d (%s) is COMPLETED", b.ID, serviceName))
	default:
		s.store.notify(b.CustomerID, fmt.Sprintf("Your booking #%d (%s) was cancelled by the provider", b.ID, serviceName))
	}

	c.JSON(http.StatusOK, s.bookingView(b))
}

func (s *Server) handleCustomerCancel(c *gin.Context) {
	bookingID, ok := pathID(c, "id")
	if !ok {
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	b, exists := s.store.bookings[bookingID]
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"message": "booking not found"})
		return
	}
	if b.CustomerID != currentUserID(c) {
		c.JSON(http.StatusForbidden, gin.H{"message": "not your booking"})
		return
	}
	if b.Status != model.BookingStatusPending {
		c.JSON(http.StatusBadRequest, gin.H{"message": "only pending bookings can be cancelled"})
		return
	}

	b.Status = model.BookingStatusCancelled
	s.store.notify(b.ProviderID, fmt.Sprintf("Booking #%d was cancelled by the customer", b.ID))

	c.JSON(http.StatusOK, s.bookingView(b))
}

// bookingView собирает бронирование с присоединёнными именами.
// Вызывается под mu.
func (s *Server) bookingView(b *booking) model.Booking {
	view := model.Booking{
		BookingID:   b.ID,
		CustomerID:  b.CustomerID,
		ProviderID:  b.ProviderID,
		ListingID:   b.ListingID,
		BookingDate: b.Date,
		TimeSlot:    b.TimeSlot,
		Status:      b.Status,
	}

	if listing := s.store.listings[b.ListingID]; listing != nil {
		view.ServiceName = listing.Title
		view.Price = listing.Price
	}
	if provider := s.store.users[b.ProviderID]; provider != nil {
		view.ProviderName = provider.Name
	}
	if customer := s.store.users[b.CustomerID]; customer != nil {
		view.CustomerName = customer.Name
		view.CustomerAddress = customer.Address
		view.CustomerLatitude = customer.Lat
		view.CustomerLongitude = customer.Lng
	}
	return view
}

// ===== Отзывы =====

func (s *Server) handleCreateReview(c *gin.Context) {
	var req model.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid review payload"})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	b, exists := s.store.bookings[req.BookingID]
	if !exists || b.CustomerID != currentUserID(c) {
		c.JSON(http.StatusNotFound, gin.H{"message": "booking not found"})
		return
	}
	if b.Status != model.BookingStatusCompleted {
		c.JSON(http.StatusBadRequest, gin.H{"message": "only completed bookings can be reviewed"})
		return
	}
	for _, existing := range s.store.reviews {
		if existing.BookingID == req.BookingID {
			c.JSON(http.StatusConflict, gin.H{"message": "booking already reviewed"})
			return
		}
	}

	id := s.store.id()
	s.store.reviews[id] = &review{
		ID:        id,
		BookingID: req.BookingID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}

	s.store.notify(b.ProviderID, fmt.Sprintf("New %d-star review for booking #%d", req.Rating, b.ID))

	c.JSON(http.StatusOK, gin.H{"message": "review created"})
}

func (s *Server) handleReviewsByBooking(c *gin.Context) {
	bookingID, ok := pathID(c, "id")
	if !ok {
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	reviews := make([]model.Review, 0)
	for _, r := range s.store.reviews {
		if r.BookingID != bookingID {
			continue
		}
		view := model.Review{
			ID:        r.ID,
			BookingID: r.BookingID,
			Rating:    r.Rating,
			Comment:   r.Comment,
		}
		if b := s.store.bookings[r.BookingID]; b != nil {
			view.BookingDate = b.Date
			if customer := s.store.users[b.CustomerID]; customer != nil {
				view.CustomerName = customer.Name
			}
			if listing := s.store.listings[b.ListingID]; listing != nil {
				view.ServiceName = listing.Title
			}
		}
		reviews = append(reviews, view)
	}

	c.JSON(http.StatusOK, reviews)
}

// ===== Уведомления =====

func (s *Server) handleNotifications(c *gin.Context) {
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	notifications := make([]model.Notification, 0)
	for _, n := range s.store.notifications {
		if n.UserID == userID {
			notifications = append(notifications, model.Notification{
				ID:        n.ID,
				Message:   n.Message,
				IsRead:    n.IsRead,
				CreatedAt: model.Timestamp(n.CreatedAt),
			})
		}
	}
	sort.Slice(notifications, func(i, j int) bool { return notifications[i].ID < notifications[j].ID })

	c.JSON(http.StatusOK, notifications)
}

func (s *Server) handleMarkNotificationRead(c *gin.Context) {
	notificationID, ok := pathID(c, "id")
	if !ok {
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	n, exists := s.store.notifications[notificationID]
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"message": "notification not found"})
		return
	}
	n.IsRead = true

	c.JSON(http.StatusOK, gin.H{"message": "marked as read"})
}

// ===== Профиль =====

type profilePayload struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

func (s *Server) handleUpdateProfile(c *gin.Context) {
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var payload profilePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid profile payload"})
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	u, exists := s.store.users[userID]
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"message": "user not found"})
		return
	}
	if payload.Name != "" {
		u.Name = payload.Name
	}
	if payload.Address != "" {
		u.Address = payload.Address
	}

	c.JSON(http.StatusOK, gin.H{"message": "profile updated"})
}

type locationPayload struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   string  `json:"address"`
}

func (s *Server) handleUpdateLocation(c *gin.Context) {
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var payload locationPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid location payload"})
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	u, exists := s.store.users[userID]
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"message": "user not found"})
		return
	}
	u.Lat = payload.Latitude
	u.Lng = payload.Longitude
	u.Address = payload.Address

	c.JSON(http.StatusOK, gin.H{"message": "location updated"})
}

// ===== Админка =====

func (s *Server) listingsByState(state model.ApprovalState) []model.Listing {
	listings := make([]model.Listing, 0)
	for _, listing := range s.store.listings {
		if listing.ApprovalState == state {
			listings = append(listings, *listing)
		}
	}
	sort.Slice(listings, func(i, j int) bool { return listings[i].ID < listings[j].ID })
	return listings
}

func (s *Server) handlePendingListings(c *gin.Context) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	c.JSON(http.StatusOK, s.listingsByState(model.ApprovalPending))
}

func (s *Server) handleApprovedListings(c *gin.Context) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	c.JSON(http.StatusOK, s.listingsByState(model.ApprovalApproved))
}

func (s *Server) handleModerateListing(c *gin.Context) {
	listingID, ok := pathID(c, "id")
	if !ok {
		return
	}

	action := c.Param("action")
	if action != "approve" && action != "reject" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "unknown action"})
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	listing, exists := s.store.listings[listingID]
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"message": "listing not found"})
		return
	}

	if action == "approve" {
		listing.ApprovalState = model.ApprovalApproved
		s.store.notify(listing.ProviderID, fmt.Sprintf("Your listing %q was approved", listing.Title))
	} else {
		listing.ApprovalState = model.ApprovalRejected
		reason := c.Query("reason")
		if reason == "" {
			reason = "no reason given"
		}
		s.store.notify(listing.ProviderID, fmt.Sprintf("Your listing %q was rejected: %s", listing.Title, reason))
	}

	c.JSON(http.StatusOK, listing)
}

func (s *Server) handleCreateCategory(c *gin.Context) {
	var category model.Category
	if err := c.ShouldBindJSON(&category); err != nil || strings.TrimSpace(category.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "category name is required"})
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	category.ID = s.store.id()
	s.store.categories[category.ID] = &category

	c.JSON(http.StatusOK, category)
}

func (s *Server) handleDeleteCategory(c *gin.Context) {
	categoryID, ok := pathID(c, "id")
	if !ok {
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	if _, exists := s.store.categories[categoryID]; !exists {
		c.JSON(http.StatusNotFound, gin.H{"message": "category not found"})
		return
	}
	delete(s.store.categories, categoryID)

	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

func (s *Server) handleUsers(c *gin.Context) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	users := make([]model.User, 0, len(s.store.users))
	for _, u := range s.store.users {
		users = append(users, model.User{
			ID:    u.ID,
			Name:  u.Name,
			Email: u.Email,
			Role:  u.Role,
		})
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })

	c.JSON(http.StatusOK, users)
}

// topStats считает бронирования, сгруппированные по имени из nameOf.
// Вызывается под mu.
func (s *Server) topStats(nameOf func(*model.Listing) string) []gin.H {
	counts := make(map[string]int64)
	for _, b := range s.store.bookings {
		listing := s.store.listings[b.ListingID]
		if listing == nil {
			continue
		}
		counts[nameOf(listing)]++
	}

	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if counts[names[i]] != counts[names[j]] {
			return counts[names[i]] > counts[names[j]]
		}
		return names[i] < names[j]
	})

	stats := make([]gin.H, 0, len(names))
	for _, name := range names {
		stats = append(stats, gin.H{"name": name, "count": counts[name]})
	}
	return stats
}

func (s *Server) handleTopCategories(c *gin.Context) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	stats := s.topStats(func(l *model.Listing) string {
		if category := s.store.categories[l.CategoryID]; category != nil {
			return category.Name
		}
		return "unknown"
	})
	c.JSON(http.StatusOK, stats)
}

func (s *Server) handleTopServices(c *gin.Context) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	stats := s.topStats(func(l *model.Listing) string { return l.Title })
	c.JSON(http.StatusOK, stats)
}
