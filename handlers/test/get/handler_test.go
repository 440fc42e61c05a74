package get

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/iambharathh/chatbot/models"
	"github.com/iambharathh/chatbot/ollama"
	"github.com/iambharathh/chatbot/relay"
)

func ptr[T any](v T) *T {
	return &v
}

func TestHandler(t *testing.T) {
	tests := []struct {
		name           string
		status         int
		body           string
		delay          time.Duration
		unreachable    bool
		expected       models.TestGetResponse
		expectedDetail string
	}{
		{
			name:   "a reachable backend reports success",
			status: http.StatusOK,
			body:   `{"response":"<think>\nThe user greets me.\n</think>\n\nHello! How can I help?"}`,
			expected: models.TestGetResponse{
				Status:       models.TestStatusSuccess,
				Message:      SuccessMessage,
				TestResponse: ptr("The user greets me. Hello! How can I help?"),
			},
		},
		{
			name:   "an empty reply is still a success",
			status: http.StatusOK,
			body:   `{}`,
			expected: models.TestGetResponse{
				Status:       models.TestStatusSuccess,
				Message:      SuccessMessage,
				TestResponse: ptr(""),
			},
		},
		{
			name:        "an unreachable backend reports an error",
			unreachable: true,
			expected: models.TestGetResponse{
				Status:  models.TestStatusError,
				Message: ErrorMessage,
			},
		},
		{
			name:   "a backend error status reports an error",
			status: http.StatusInternalServerError,
			body:   `{"error":"out of memory"}`,
			expected: models.TestGetResponse{
				Status:  models.TestStatusError,
				Message: ErrorMessage,
			},
		},
		{
			name:   "an invalid backend response reports an error",
			status: http.StatusOK,
			body:   `not json`,
			expected: models.TestGetResponse{
				Status:  models.TestStatusError,
				Message: ErrorMessage,
			},
			expectedDetail: "failed to decode response",
		},
		{
			name:   "a slow backend reports an error",
			status: http.StatusOK,
			body:   `{"response":"too late"}`,
			delay:  time.Second,
			expected: models.TestGetResponse{
				Status:  models.TestStatusError,
				Message: ErrorMessage,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				select {
				case <-time.After(tt.delay):
				case <-r.Context().Done():
					return
				}
				w.WriteHeader(tt.status)
				io.WriteString(w, tt.body)
			}))
			defer s.Close()
			if tt.unreachable {
				s.Close()
			}

			log := slog.New(slog.NewJSONHandler(io.Discard, nil))
			llm, err := ollama.New(ollama.WithServerURL(s.URL))
			if err != nil {
				t.Fatalf("failed to create LLM: %v", err)
			}
			h := New(log, relay.New(log, llm, time.Minute, 50*time.Millisecond))

			w := httptest.NewRecorder()
			h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

			if w.Code != http.StatusOK {
				t.Errorf("expected status 200, got %d", w.Code)
			}
			var actual models.TestGetResponse
			if err := json.NewDecoder(w.Body).Decode(&actual); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if tt.expected.Status == models.TestStatusError {
				if actual.Detail == "" {
					t.Error("expected an error detail")
				}
				if !strings.Contains(actual.Detail, tt.expectedDetail) {
					t.Errorf("expected detail to contain %q, got %q", tt.expectedDetail, actual.Detail)
				}
				actual.Detail = ""
			}
			if diff := cmp.Diff(tt.expected, actual); diff != "" {
				t.Error(diff)
			}
		})
	}
}
