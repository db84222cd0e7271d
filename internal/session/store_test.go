package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/quickserve/quickserve_bot/internal/model"
	"go.uber.org/zap"
)

// memStorage хранилище сессий в памяти для тестов
type memStorage struct {
	mu       sync.Mutex
	sessions map[int64]*model.Session
}

func newMemStorage() *memStorage {
	return &memStorage{sessions: make(map[int64]*model.Session)}
}

func (m *memStorage) Save(_ context.Context, session *model.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[session.ChatID] = session
	return nil
}

func (m *memStorage) Get(_ context.Context, chatID int64) (*model.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sessions[chatID], nil
}

func (m *memStorage) Delete(_ context.Context, chatID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, chatID)
	return nil
}

func makeToken(t *testing.T, userID int64, role string, expiresAt time.Time) string {
	t.Helper()
	claims := jwt.MapClaims{
		"userId": userID,
		"role":   role,
		"exp":    expiresAt.Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatal(err)
	}
	return token
}

func TestLoginDecodesClaims(t *testing.T) {
	store := NewStore(newMemStorage(), zap.NewNop())
	token := makeToken(t, 42, "SERVICE_PROVIDER", time.Now().Add(time.Hour))

	session, err := store.Login(context.Background(), 100, token, "Ivan Petrov")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	if session.UserID != 42 {
		t.Errorf("UserID = %d, want 42", session.UserID)
	}
	if session.Role != model.RoleProvider {
		t.Errorf("Role = %s, want %s", session.Role, model.RoleProvider)
	}
	if session.ChatID != 100 {
		t.Errorf("ChatID = %d, want 100", session.ChatID)
	}
	if session.DisplayName != "Ivan Petrov" {
		t.Errorf("DisplayName = %q", session.DisplayName)
	}
}

func TestLoginRejectsMalformedToken(t *testing.T) {
	store := NewStore(newMemStorage(), zap.NewNop())

	if _, err := store.Login(context.Background(), 100, "not-a-jwt", "X"); err == nil {
		t.Error("expected error on malformed token")
	}
}

func TestLoginRejectsTokenWithoutExp(t *testing.T) {
	store := NewStore(newMemStorage(), zap.NewNop())

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId": int64(1),
		"role":   "CUSTOMER",
	}).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := store.Login(context.Background(), 100, token, "X"); err == nil {
		t.Error("expected error on token without exp claim")
	}
}

func TestRestoreDropsExpiredToken(t *testing.T) {
	storage := newMemStorage()
	store := NewStore(storage, zap.NewNop())

	expired := makeToken(t, 42, "CUSTOMER", time.Now().Add(-time.Hour))
	storage.Save(context.Background(), &model.Session{ChatID: 100, Token: expired})

	// Истёкший токен не ошибка: чат просто разлогинен
	session, err := store.Restore(context.Background(), 100)
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if session != nil {
		t.Error("expected nil session for expired token")
	}

	if stored, _ := storage.Get(context.Background(), 100); stored != nil {
		t.Error("stale session must be deleted from storage")
	}
}

func TestRestoreDropsMalformedToken(t *testing.T) {
	storage := newMemStorage()
	store := NewStore(storage, zap.NewNop())

	storage.Save(context.Background(), &model.Session{ChatID: 100, Token: "garbage"})

	session, err := store.Restore(context.Background(), 100)
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if session != nil {
		t.Error("expected nil session for malformed token")
	}
}

func TestRestoreUnknownChat(t *testing.T) {
	store := NewStore(newMemStorage(), zap.NewNop())

	session, err := store.Restore(context.Background(), 999)
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if session != nil {
		t.Error("expected nil session for unknown chat")
	}
}

func TestGetRestoresFromStorage(t *testing.T) {
	storage := newMemStorage()
	store := NewStore(storage, zap.NewNop())

	token := makeToken(t, 7, "CUSTOMER", time.Now().Add(time.Hour))
	storage.Save(context.Background(), &model.Session{ChatID: 200, Token: token, DisplayName: "Anna"})

	session, err := store.Get(context.Background(), 200)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if session == nil || session.UserID != 7 {
		t.Fatalf("session = %+v, want UserID 7", session)
	}

	chats := store.ActiveChats()
	if len(chats) != 1 || chats[0] != 200 {
		t.Errorf("ActiveChats = %v, want [200]", chats)
	}
}

func TestLogoutClearsEverything(t *testing.T) {
	storage := newMemStorage()
	store := NewStore(storage, zap.NewNop())

	token := makeToken(t, 7, "CUSTOMER", time.Now().Add(time.Hour))
	if _, err := store.Login(context.Background(), 300, token, "X"); err != nil {
		t.Fatal(err)
	}

	if err := store.Logout(context.Background(), 300); err != nil {
		t.Fatalf("Logout: %v", err)
	}

	if len(store.ActiveChats()) != 0 {
		t.Error("chat must leave the active set after logout")
	}
	if session, _ := store.Get(context.Background(), 300); session != nil {
		t.Error("Get after logout must return nil")
	}
}

func TestGetDropsSessionExpiredInMemory(t *testing.T) {
	storage := newMemStorage()
	store := NewStore(storage, zap.NewNop())

	token := makeToken(t, 7, "CUSTOMER", time.Now().Add(50*time.Millisecond))
	if _, err := store.Login(context.Background(), 400, token, "X"); err != nil {
		t.Fatal(err)
	}

	time.Sleep(100 * time.Millisecond)

	session, err := store.Get(context.Background(), 400)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if session != nil {
		t.Error("expired in-memory session must be dropped")
	}
}
