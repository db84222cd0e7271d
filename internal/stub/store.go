package stub

import (
	"sync"
	"time"

	"github.com/quickserve/quickserve_bot/internal/model"
)

// user учётная запись в памяти
type user struct {
	ID       int64
	Name     string
	Email    string
	Password string
	Role     model.Role
	Lat      float64
	Lng      float64
	Address  string
}

// booking бронирование в памяти
type booking struct {
	ID         int64
	CustomerID int64
	ProviderID int64
	ListingID  int64
	Date       string
	TimeSlot   string
	Status     model.BookingStatus
}

// review отзыв в памяти
type review struct {
	ID        int64
	BookingID int64
	Rating    int
	Comment   string
}

// notification уведомление в памяти
type notification struct {
	ID        int64
	UserID    int64
	Message   string
	IsRead    bool
	CreatedAt time.Time
}

// memStore состояние стаба целиком в памяти, под одним мьютексом.
// Это dev-фикстура, не продакшен хранилище.
type memStore struct {
	mu sync.Mutex

	nextID        int64
	users         map[int64]*user
	categories    map[int64]*model.Category
	listings      map[int64]*model.Listing
	availability  map[int64]map[model.Weekday][]string // providerID -> day -> слоты
	bookings      map[int64]*booking
	reviews       map[int64]*review
	notifications map[int64]*notification
}

func newMemStore() *memStore {
	return &memStore{
		users:         make(map[int64]*user),
		categories:    make(map[int64]*model.Category),
		listings:      make(map[int64]*model.Listing),
		availability:  make(map[int64]map[model.Weekday][]string),
		bookings:      make(map[int64]*booking),
		reviews:       make(map[int64]*review),
		notifications: make(map[int64]*notification),
	}
}

// id выдаёт следующий идентификатор. Вызывается под mu.
func (s *memStore) id() int64 {
	s.nextID++
	return s.nextID
}

// userByEmail ищет пользователя по email. Вызывается под mu.
func (s *memStore) userByEmail(email string) *user {
	for _, u := range s.users {
		if u.Email == email {
			return u
		}
	}
	return nil
}

// notify создаёт уведомление пользователю. Вызывается под mu.
func (s *memStore) notify(userID int64, message string) {
	id := s.id()
	s.notifications[id] = &notification{
		ID:        id,
		UserID:    userID,
		Message:   message,
		CreatedAt: time.Now(),
	}
}
