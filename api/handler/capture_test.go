package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/use-agent/pagegrab/api/handler"
	"github.com/use-agent/pagegrab/cache"
	"github.com/use-agent/pagegrab/models"
)

// capturerStub implements handler.Capturer with a canned response.
type capturerStub struct {
	calls int
	info  *models.PageInfo
	err   error
}

func (s *capturerStub) Do(ctx context.Context, req *models.CaptureRequest) (*models.PageInfo, error) {
	s.calls++
	return s.info, s.err
}

func newTestRouter(cp handler.Capturer, cc *cache.Cache) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/capture", handler.Capture(cp, cc))
	return r
}

func postCapture(t *testing.T, r *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/capture", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) *models.ErrorDetail {
	t.Helper()
	var resp models.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding error response: %v", err)
	}
	if resp.Error == nil {
		t.Fatalf("expected an error detail, body: %s", w.Body.String())
	}
	return resp.Error
}

func TestCaptureMissingURL(t *testing.T) {
	r := newTestRouter(&capturerStub{}, nil)

	w := postCapture(t, r, `{"engine":"chromium"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if detail := decodeError(t, w); detail.Code != models.ErrCodeInvalidInput {
		t.Errorf("code = %s, want %s", detail.Code, models.ErrCodeInvalidInput)
	}
}

func TestCaptureConflictingModes(t *testing.T) {
	stub := &capturerStub{}
	r := newTestRouter(stub, nil)

	w := postCapture(t, r, `{
		"url": "http://example.com",
		"items": {"enabled": true, "item_selector": ".a"},
		"body": {"enabled": true}
	}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if detail := decodeError(t, w); detail.Code != models.ErrCodeInvalidInput {
		t.Errorf("code = %s, want %s", detail.Code, models.ErrCodeInvalidInput)
	}
	if stub.calls != 0 {
		t.Error("invalid requests must not reach the capturer")
	}
}

func TestCaptureSuccess(t *testing.T) {
	desc := "a page"
	stub := &capturerStub{
		info: &models.PageInfo{
			Meta: models.Meta{models.MetaDescription: &desc},
		},
	}
	r := newTestRouter(stub, nil)

	w := postCapture(t, r, `{"url": "http://example.com"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body: %s", w.Code, w.Body.String())
	}

	var info models.PageInfo
	if err := json.Unmarshal(w.Body.Bytes(), &info); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if got := info.Meta[models.MetaDescription]; got == nil || *got != desc {
		t.Errorf("meta description = %v, want %q", got, desc)
	}
	if stub.calls != 1 {
		t.Errorf("capturer calls = %d, want 1", stub.calls)
	}
}

func TestCaptureErrorStatusMapping(t *testing.T) {
	tests := []struct {
		code       string
		wantStatus int
	}{
		{models.ErrCodeUnsupportedEngine, http.StatusBadRequest},
		{models.ErrCodeNavigation, http.StatusBadGateway},
		{models.ErrCodeTimeout, http.StatusGatewayTimeout},
		{models.ErrCodeBrowserCrash, http.StatusInternalServerError},
		{models.ErrCodeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			stub := &capturerStub{
				err: models.NewCaptureError(tt.code, "boom", nil),
			}
			r := newTestRouter(stub, nil)

			w := postCapture(t, r, `{"url": "http://example.com"}`)
			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if detail := decodeError(t, w); detail.Code != tt.code {
				t.Errorf("code = %s, want %s", detail.Code, tt.code)
			}
		})
	}
}

func TestCaptureCacheHitSkipsCapturer(t *testing.T) {
	stub := &capturerStub{info: &models.PageInfo{Meta: models.Meta{}}}
	r := newTestRouter(stub, cache.New(10))

	body := `{"url": "http://example.com", "max_age": 60000}`

	if w := postCapture(t, r, body); w.Code != http.StatusOK {
		t.Fatalf("first request: status = %d, want 200", w.Code)
	}
	if w := postCapture(t, r, body); w.Code != http.StatusOK {
		t.Fatalf("second request: status = %d, want 200", w.Code)
	}

	if stub.calls != 1 {
		t.Errorf("capturer calls = %d, want 1 (second request served from cache)", stub.calls)
	}
}

func TestCaptureWithoutMaxAgeNeverCaches(t *testing.T) {
	stub := &capturerStub{info: &models.PageInfo{Meta: models.Meta{}}}
	r := newTestRouter(stub, cache.New(10))

	body := `{"url": "http://example.com"}`
	postCapture(t, r, body)
	postCapture(t, r, body)

	if stub.calls != 2 {
		t.Errorf("capturer calls = %d, want 2 (no max_age, no caching)", stub.calls)
	}
}
