package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

// stubAPI 按服务端信封应答的假后端
func stubAPI(t *testing.T, routes map[string]http.HandlerFunc) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	for pattern, h := range routes {
		mux.HandleFunc(pattern, h)
	}
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestAuthStoreLoginSuccess(t *testing.T) {
	srv := stubAPI(t, map[string]http.HandlerFunc{
		"POST /auth/login": func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{
				"success": true,
				"data": map[string]any{
					"token": "tok-123",
					"user":  map[string]string{"id": "u1", "email": "paul@arrakis.io", "name": "Paul", "role": "reader"},
				},
			})
		},
	})

	api := New(srv.URL)
	store := NewAuthStore(api)
	if err := store.Login(context.Background(), "paul@arrakis.io", "m3lange!"); err != nil {
		t.Fatalf("Login() error: %v", err)
	}
	if store.Loading {
		t.Error("Loading still true after success")
	}
	if store.Err != "" {
		t.Errorf("Err = %q, want empty", store.Err)
	}
	if store.User == nil || store.User.ID != "u1" {
		t.Errorf("User = %+v", store.User)
	}
	if api.Token() != "tok-123" {
		t.Errorf("token = %q, want tok-123", api.Token())
	}
}

func TestAuthStoreLoginServerErrorText(t *testing.T) {
	srv := stubAPI(t, map[string]http.HandlerFunc{
		"POST /auth/login": func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusUnauthorized, map[string]any{
				"success": false, "error": "Invalid credentials",
			})
		},
	})

	store := NewAuthStore(New(srv.URL))
	err := store.Login(context.Background(), "paul@arrakis.io", "bad")
	if err == nil {
		t.Fatal("Login() succeeded, want error")
	}
	if store.Err != "Invalid credentials" {
		t.Errorf("Err = %q, want server text", store.Err)
	}
	if store.Loading {
		t.Error("Loading still true after failure")
	}
}

func TestAuthStoreFallbackMessage(t *testing.T) {
	srv := stubAPI(t, map[string]http.HandlerFunc{
		"POST /auth/register": func(w http.ResponseWriter, r *http.Request) {
			// 无 error 字段的失败应答 → 使用兜底文案
			writeJSON(w, http.StatusInternalServerError, map[string]any{"success": false})
		},
	})

	store := NewAuthStore(New(srv.URL))
	if err := store.Register(context.Background(), "Paul", "p@a.io", "pw"); err == nil {
		t.Fatal("Register() succeeded, want error")
	}
	if store.Err != "Registration failed" {
		t.Errorf("Err = %q, want fallback", store.Err)
	}
}

func TestAuthStoreLogoutDiscardsToken(t *testing.T) {
	srv := stubAPI(t, map[string]http.HandlerFunc{
		"GET /auth/logout": func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": map[string]any{}})
		},
	})

	api := New(srv.URL)
	api.SetToken("tok-123")
	store := NewAuthStore(api)
	store.Logout(context.Background())
	if api.Token() != "" {
		t.Errorf("token = %q, want discarded", api.Token())
	}
	if store.User != nil {
		t.Errorf("User = %+v, want nil", store.User)
	}
}

func TestClientSendsBearerToken(t *testing.T) {
	var gotAuth string
	srv := stubAPI(t, map[string]http.HandlerFunc{
		"GET /auth/me": func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			writeJSON(w, http.StatusOK, map[string]any{
				"success": true,
				"data":    map[string]string{"id": "u1", "email": "p@a.io", "name": "Paul", "role": "reader"},
			})
		},
	})

	api := New(srv.URL)
	api.SetToken("tok-123")
	if _, err := api.Me(context.Background()); err != nil {
		t.Fatalf("Me() error: %v", err)
	}
	if gotAuth != "Bearer tok-123" {
		t.Errorf("Authorization = %q", gotAuth)
	}
}

func TestBookStoreFetchAddDelete(t *testing.T) {
	srv := stubAPI(t, map[string]http.HandlerFunc{
		"GET /books": func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{
				"success": true, "count": 1,
				"data": []map[string]any{{"id": "b1", "title": "Dune", "author": "Frank Herbert", "genre": "Science Fiction", "isbn": "9780441013593"}},
			})
		},
		"POST /books": func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusCreated, map[string]any{
				"success": true,
				"data":    map[string]any{"id": "b2", "title": "The Hobbit", "author": "J.R.R. Tolkien", "genre": "Fantasy", "isbn": "9780547928227"},
			})
		},
		"DELETE /books/b1": func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": map[string]any{}})
		},
	})

	store := NewBookStore(New(srv.URL))
	ctx := context.Background()

	if err := store.Fetch(ctx, ListOptions{}); err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}
	if len(store.Books) != 1 || store.Books[0].ID != "b1" {
		t.Fatalf("Books = %+v", store.Books)
	}

	if _, err := store.Add(ctx, BookInput{Title: "The Hobbit"}); err != nil {
		t.Fatalf("Add() error: %v", err)
	}
	if len(store.Books) != 2 || store.Books[1].ID != "b2" {
		t.Errorf("Books after add = %+v", store.Books)
	}

	if err := store.Delete(ctx, "b1"); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if len(store.Books) != 1 || store.Books[0].ID != "b2" {
		t.Errorf("Books after delete = %+v", store.Books)
	}
}

func TestBookStoreValidationMessagesFlattened(t *testing.T) {
	srv := stubAPI(t, map[string]http.HandlerFunc{
		"POST /books": func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusBadRequest, map[string]any{
				"success": false,
				"error":   []string{"Title is required", "ISBN is required"},
			})
		},
	})

	store := NewBookStore(New(srv.URL))
	_, err := store.Add(context.Background(), BookInput{})
	if err == nil {
		t.Fatal("Add() succeeded, want error")
	}
	if store.Err != "Title is required; ISBN is required" {
		t.Errorf("Err = %q", store.Err)
	}
	var ae *APIError
	if !errors.As(err, &ae) || ae.Status != http.StatusBadRequest {
		t.Errorf("err = %v, want APIError 400", err)
	}
}
