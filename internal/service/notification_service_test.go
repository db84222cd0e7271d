package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/quickserve/quickserve_bot/internal/api"
	"github.com/quickserve/quickserve_bot/internal/model"
	"go.uber.org/zap"
)

// notificationServer стаб ленты с подменяемым ответом
type notificationServer struct {
	body   atomic.Value // string
	status atomic.Int32
}

func newNotificationServer() (*notificationServer, *httptest.Server) {
	ns := &notificationServer{}
	ns.body.Store(`[]`)
	ns.status.Store(http.StatusOK)

	mux := http.NewServeMux()
	mux.HandleFunc("/user/notifications/20", func(w http.ResponseWriter, r *http.Request) {
		status := int(ns.status.Load())
		w.WriteHeader(status)
		if status == http.StatusOK {
			w.Write([]byte(ns.body.Load().(string)))
		}
	})
	mux.HandleFunc("/user/notifications/read/", func(w http.ResponseWriter, r *http.Request) {})

	return ns, httptest.NewServer(mux)
}

func TestRefreshReplacesFeed(t *testing.T) {
	ns, server := newNotificationServer()
	defer server.Close()

	svc := NewNotificationService(api.NewClient(server.URL, zap.NewNop()), zap.NewNop())
	session := testSession(20, model.RoleCustomer)

	ns.body.Store(`[
		{"id":1,"message":"old","isRead":true,"createdAt":"2025-01-10T09:00:00"},
		{"id":2,"message":"new","isRead":false,"createdAt":"2025-01-11T09:00:00"}
	]`)
	if err := svc.Refresh(context.Background(), session); err != nil {
		t.Fatal(err)
	}

	feed, unread := svc.Feed(20)
	if len(feed) != 2 {
		t.Fatalf("feed size = %d, want 2", len(feed))
	}
	if feed[0].ID != 2 {
		t.Errorf("newest must come first, got id %d", feed[0].ID)
	}
	if unread != 1 {
		t.Errorf("unread = %d, want 1", unread)
	}

	// Следующий тик заменяет список целиком
	ns.body.Store(`[{"id":3,"message":"third","isRead":false,"createdAt":"2025-01-12T09:00:00"}]`)
	if err := svc.Refresh(context.Background(), session); err != nil {
		t.Fatal(err)
	}

	feed, unread = svc.Feed(20)
	if len(feed) != 1 || feed[0].ID != 3 {
		t.Errorf("feed after replace = %v", feed)
	}
	if unread != 1 {
		t.Errorf("unread after replace = %d, want 1", unread)
	}
}

func TestRefreshEmptyKeepsState(t *testing.T) {
	ns, server := newNotificationServer()
	defer server.Close()

	svc := NewNotificationService(api.NewClient(server.URL, zap.NewNop()), zap.NewNop())
	session := testSession(20, model.RoleCustomer)

	ns.body.Store(`[{"id":1,"message":"hello","isRead":false,"createdAt":"2025-01-10T09:00:00"}]`)
	if err := svc.Refresh(context.Background(), session); err != nil {
		t.Fatal(err)
	}

	// Пустой ответ не затирает ленту
	ns.body.Store(`[]`)
	if err := svc.Refresh(context.Background(), session); err != nil {
		t.Fatal(err)
	}

	feed, unread := svc.Feed(20)
	if len(feed) != 1 || unread != 1 {
		t.Errorf("feed = %v, unread = %d; empty tick must not wipe state", feed, unread)
	}
}

func TestRefreshErrorKeepsState(t *testing.T) {
	ns, server := newNotificationServer()
	defer server.Close()

	svc := NewNotificationService(api.NewClient(server.URL, zap.NewNop()), zap.NewNop())
	session := testSession(20, model.RoleCustomer)

	ns.body.Store(`[{"id":1,"message":"hello","isRead":false,"createdAt":"2025-01-10T09:00:00"}]`)
	if err := svc.Refresh(context.Background(), session); err != nil {
		t.Fatal(err)
	}

	ns.status.Store(http.StatusInternalServerError)
	if err := svc.Refresh(context.Background(), session); err == nil {
		t.Fatal("expected error from failing backend")
	}

	feed, unread := svc.Feed(20)
	if len(feed) != 1 || unread != 1 {
		t.Errorf("failed tick must leave state intact, feed = %v", feed)
	}
}

func TestMarkReadRecountsUnread(t *testing.T) {
	ns, server := newNotificationServer()
	defer server.Close()

	svc := NewNotificationService(api.NewClient(server.URL, zap.NewNop()), zap.NewNop())
	session := testSession(20, model.RoleCustomer)

	ns.body.Store(`[
		{"id":1,"message":"a","isRead":false,"createdAt":"2025-01-10T09:00:00"},
		{"id":2,"message":"b","isRead":false,"createdAt":"2025-01-11T09:00:00"}
	]`)
	if err := svc.Refresh(context.Background(), session); err != nil {
		t.Fatal(err)
	}

	if err := svc.MarkRead(context.Background(), session, 1); err != nil {
		t.Fatal(err)
	}

	feed, unread := svc.Feed(20)
	if unread != 1 {
		t.Errorf("unread after MarkRead = %d, want 1", unread)
	}
	for _, n := range feed {
		if n.ID == 1 && !n.IsRead {
			t.Error("notification 1 must be flipped to read locally")
		}
	}
}

func TestOpenRoutesToHistory(t *testing.T) {
	ns, server := newNotificationServer()
	defer server.Close()

	svc := NewNotificationService(api.NewClient(server.URL, zap.NewNop()), zap.NewNop())
	session := testSession(20, model.RoleCustomer)

	ns.body.Store(`[
		{"id":1,"message":"Your booking #5 (Cleaning) is COMPLETED","isRead":false,"createdAt":"2025-01-10T09:00:00"},
		{"id":2,"message":"Your booking #6 was confirmed","isRead":false,"createdAt":"2025-01-11T09:00:00"}
	]`)
	if err := svc.Refresh(context.Background(), session); err != nil {
		t.Fatal(err)
	}

	gotoHistory, err := svc.Open(context.Background(), session, 1)
	if err != nil {
		t.Fatal(err)
	}
	if !gotoHistory {
		t.Error("completed notice must route to history tab")
	}

	gotoHistory, err = svc.Open(context.Background(), session, 2)
	if err != nil {
		t.Fatal(err)
	}
	if gotoHistory {
		t.Error("confirmation notice must not route to history tab")
	}
}

func TestNotificationForget(t *testing.T) {
	ns, server := newNotificationServer()
	defer server.Close()

	svc := NewNotificationService(api.NewClient(server.URL, zap.NewNop()), zap.NewNop())
	session := testSession(20, model.RoleCustomer)

	ns.body.Store(`[{"id":1,"message":"a","isRead":false,"createdAt":"2025-01-10T09:00:00"}]`)
	if err := svc.Refresh(context.Background(), session); err != nil {
		t.Fatal(err)
	}

	svc.Forget(20)
	feed, unread := svc.Feed(20)
	if feed != nil || unread != 0 {
		t.Errorf("feed after Forget = %v, unread = %d", feed, unread)
	}
}
