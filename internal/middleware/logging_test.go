package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
)

// captureLogs routes the default logger into a buffer for the test.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func TestLogger(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		handler    http.HandlerFunc
		wantStatus int
	}{
		{
			name:   "explicit status",
			method: http.MethodPost,
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:   "implicit 200 on write",
			method: http.MethodGet,
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"data":{}}`))
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "no write at all",
			method:     http.MethodGet,
			handler:    func(w http.ResponseWriter, r *http.Request) {},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := captureLogs(t)

			req := httptest.NewRequest(tt.method, "/graphql", nil)
			rr := httptest.NewRecorder()
			RequestID(Logger(tt.handler)).ServeHTTP(rr, req)

			if rr.Code != tt.wantStatus {
				t.Errorf("status: got %d, want %d", rr.Code, tt.wantStatus)
			}

			var entry struct {
				Msg       string `json:"msg"`
				Method    string `json:"method"`
				Path      string `json:"path"`
				Status    int    `json:"status"`
				RequestID string `json:"request_id"`
			}
			if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
				t.Fatalf("decode log entry %q: %v", buf.String(), err)
			}
			if entry.Msg != "http request" || entry.Method != tt.method || entry.Path != "/graphql" {
				t.Errorf("unexpected log entry: %+v", entry)
			}
			if entry.Status != tt.wantStatus {
				t.Errorf("logged status: got %d, want %d", entry.Status, tt.wantStatus)
			}
			if entry.RequestID == "" || entry.RequestID != rr.Header().Get(RequestIDHeader) {
				t.Errorf("logged request id %q, response header %q", entry.RequestID, rr.Header().Get(RequestIDHeader))
			}
		})
	}
}

func TestResponseWriterKeepsFirstStatus(t *testing.T) {
	rw := &responseWriter{ResponseWriter: httptest.NewRecorder(), statusCode: http.StatusOK}

	rw.WriteHeader(http.StatusMethodNotAllowed)
	rw.WriteHeader(http.StatusInternalServerError)
	rw.Write([]byte("ignored status"))

	if rw.statusCode != http.StatusMethodNotAllowed {
		t.Errorf("statusCode: got %d, want 405", rw.statusCode)
	}
	if !rw.written {
		t.Error("written should be true after WriteHeader")
	}
}
