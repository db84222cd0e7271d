package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
)

func TestClientSendsAuthHeaders(t *testing.T) {
	var gotAuth, gotRequestID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, zap.NewNop())
	ctx := WithToken(context.Background(), "test-token")

	if _, err := client.Categories(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotAuth != "Bearer test-token" {
		t.Errorf("Authorization = %q, want bearer token", gotAuth)
	}
	if gotRequestID == "" {
		t.Error("X-Request-ID header is missing")
	}
}

func TestClientWithoutTokenOmitsAuth(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, zap.NewNop())
	if _, err := client.Categories(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "" {
		t.Errorf("Authorization = %q, want empty", gotAuth)
	}
}

func TestClientAuthErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   error
	}{
		{"401 maps to ErrUnauthorized", http.StatusUnauthorized, ErrUnauthorized},
		{"403 maps to ErrForbidden", http.StatusForbidden, ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer server.Close()

			client := NewClient(server.URL, zap.NewNop())
			_, err := client.Categories(context.Background())
			if !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestClientDecodesErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"message field", `{"message":"listing is not available for booking"}`, "listing is not available for booking"},
		{"error field fallback", `{"error":"something broke"}`, "something broke"},
		{"no body", ``, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := NewClient(server.URL, zap.NewNop())
			_, err := client.Categories(context.Background())
			if err == nil {
				t.Fatal("expected an error")
			}

			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("error %v is not an APIError", err)
			}
			if apiErr.StatusCode != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", apiErr.StatusCode)
			}
			if got := ServerMessage(err); got != tt.want {
				t.Errorf("ServerMessage = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestServerMessageOnForeignError(t *testing.T) {
	if got := ServerMessage(errors.New("plain error")); got != "" {
		t.Errorf("ServerMessage on non-API error = %q, want empty", got)
	}
}

func TestClientToleratesEmptySuccessBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(server.URL, zap.NewNop())
	// Action-эндпоинты отвечают 2xx без тела
	if err := client.MarkNotificationRead(context.Background(), 1); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
