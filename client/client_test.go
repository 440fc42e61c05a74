package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/a-h/jsonapi"
	"github.com/google/go-cmp/cmp"
	"github.com/iambharathh/chatbot/models"
)

func TestChatPost(t *testing.T) {
	var received models.ChatPostRequest
	mux := http.NewServeMux()
	mux.HandleFunc("POST /chat", func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		switch received.UserMessage {
		case "":
			w.WriteHeader(http.StatusBadRequest)
			io.WriteString(w, `{"detail":"user_message is required"}`)
		case "crash":
			w.WriteHeader(http.StatusInternalServerError)
			io.WriteString(w, `Internal Server Error`)
		default:
			io.WriteString(w, `{"response":"Hello there"}`)
		}
	})
	s := httptest.NewServer(mux)
	defer s.Close()

	c := New(s.URL + "/")

	t.Run("replies are returned", func(t *testing.T) {
		resp, err := c.ChatPost(context.Background(), models.ChatPostRequest{UserMessage: "Hi"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if received.UserMessage != "Hi" {
			t.Errorf("expected the server to receive %q, got %q", "Hi", received.UserMessage)
		}
		if diff := cmp.Diff(models.ChatPostResponse{Response: "Hello there"}, resp); diff != "" {
			t.Error(diff)
		}
	})
	t.Run("error details are returned", func(t *testing.T) {
		_, err := c.ChatPost(context.Background(), models.ChatPostRequest{})
		var ce Error
		if !errors.As(err, &ce) {
			t.Fatalf("expected client.Error, got %T: %v", err, err)
		}
		if diff := cmp.Diff(Error{StatusCode: http.StatusBadRequest, Detail: "user_message is required"}, ce); diff != "" {
			t.Error(diff)
		}
	})
	t.Run("responses without a detail are invalid status errors", func(t *testing.T) {
		_, err := c.ChatPost(context.Background(), models.ChatPostRequest{UserMessage: "crash"})
		var ise jsonapi.InvalidStatusError
		if !errors.As(err, &ise) {
			t.Fatalf("expected jsonapi.InvalidStatusError, got %T: %v", err, err)
		}
		if ise.Status != http.StatusInternalServerError {
			t.Errorf("expected status 500, got %d", ise.Status)
		}
	})
}

func TestTestGet(t *testing.T) {
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/test" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		io.WriteString(w, `{"status":"error","message":"API working, but cannot connect to Ollama","detail":"connection refused"}`)
	}))
	defer s.Close()

	resp, err := New(s.URL).TestGet(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := models.TestGetResponse{
		Status:  models.TestStatusError,
		Message: "API working, but cannot connect to Ollama",
		Detail:  "connection refused",
	}
	if diff := cmp.Diff(expected, resp); diff != "" {
		t.Error(diff)
	}
}

func TestErrors(t *testing.T) {
	t.Run("transport errors are not wrapped twice", func(t *testing.T) {
		s := httptest.NewServer(http.NotFoundHandler())
		url := s.URL
		s.Close()

		_, err := New(url).ChatPost(context.Background(), models.ChatPostRequest{UserMessage: "Hi"})
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if n := strings.Count(err.Error(), "failed to perform HTTP request"); n != 1 {
			t.Errorf("expected the request failure to be reported once, got %d: %v", n, err)
		}
	})
	t.Run("test errors with a detail are returned", func(t *testing.T) {
		s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			io.WriteString(w, `{"detail":"boom"}`)
		}))
		defer s.Close()

		_, err := New(s.URL).TestGet(context.Background())
		if diff := cmp.Diff(error(Error{StatusCode: http.StatusInternalServerError, Detail: "boom"}), err); diff != "" {
			t.Error(diff)
		}
	})
	t.Run("a missing test endpoint is an invalid status error", func(t *testing.T) {
		s := httptest.NewServer(http.NotFoundHandler())
		defer s.Close()

		_, err := New(s.URL).TestGet(context.Background())
		var ise jsonapi.InvalidStatusError
		if !errors.As(err, &ise) {
			t.Fatalf("expected jsonapi.InvalidStatusError, got %T: %v", err, err)
		}
		if ise.Status != http.StatusNotFound {
			t.Errorf("expected status 404, got %d", ise.Status)
		}
	})
}
