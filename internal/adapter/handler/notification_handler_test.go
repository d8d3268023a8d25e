package handler_test

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/srgjo27/park_booking/internal/adapter/handler"
	"github.com/srgjo27/park_booking/internal/core/domain"
	"github.com/srgjo27/park_booking/internal/core/ports/mocks"
	"github.com/srgjo27/park_booking/internal/core/services"
	"github.com/srgjo27/park_booking/internal/core/validation"
)

const validNotification = `{"fullName":"Jane Doe","email":"jane@x.co","phone":"0123456789","tourPackage":"Game Drive","numGuests":3,"startDate":"2025-01-10","endDate":"2025-01-12","pricePerPerson":150}`

func newNotifyRouter(t *testing.T) (*gin.Engine, *mocks.Mailer) {
	mailer := mocks.NewMailer(t)
	svc := services.NewNotificationService(mailer, validation.New(), services.NotificationConfig{
		OperatorEmail: "bookings@park.example",
		OperatorPhone: "+256 785393756",
		ParkName:      "Murchison Falls National Park",
	}, zap.NewNop())
	return handler.NewNotifyRouter(handler.NewNotificationHandler(svc), false, zap.NewNop()), mailer
}

func postNotification(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestNotify_Success(t *testing.T) {
	r, mailer := newNotifyRouter(t)

	mailer.On("Send", mock.Anything, mock.MatchedBy(func(e domain.Email) bool { return e.To == "bookings@park.example" })).Return("admin-1", nil)
	mailer.On("Send", mock.Anything, mock.MatchedBy(func(e domain.Email) bool { return e.To == "jane@x.co" })).Return("customer-1", nil)

	for _, path := range []string{"/", "/send-booking-emails"} {
		rec := postNotification(r, path, validNotification)

		require.Equal(t, http.StatusOK, rec.Code, path)
		resp := decode(t, rec)
		assert.Equal(t, true, resp["success"])
		assert.Equal(t, "admin-1", resp["adminEmail"].(map[string]any)["id"])
		assert.Equal(t, "customer-1", resp["customerEmail"].(map[string]any)["id"])
	}
}

func TestNotify_MissingPrice(t *testing.T) {
	r, mailer := newNotifyRouter(t)

	body := `{"fullName":"Jane Doe","email":"jane@x.co","phone":"0123456789","tourPackage":"Game Drive","numGuests":2,"startDate":"2025-01-10","endDate":"2025-01-12"}`
	rec := postNotification(r, "/", body)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decode(t, rec)
	assert.Equal(t, false, resp["success"])
	assert.Contains(t, resp["error"], "Price per person is required")
	mailer.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestNotify_InvalidJSON(t *testing.T) {
	r, mailer := newNotifyRouter(t)

	rec := postNotification(r, "/", `{"fullName":`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	mailer.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestNotify_SendFailure(t *testing.T) {
	r, mailer := newNotifyRouter(t)

	mailer.On("Send", mock.Anything, mock.MatchedBy(func(e domain.Email) bool { return e.To == "bookings@park.example" })).Return("admin-1", nil)
	mailer.On("Send", mock.Anything, mock.MatchedBy(func(e domain.Email) bool { return e.To == "jane@x.co" })).Return("", errors.New("mailbox unavailable"))

	rec := postNotification(r, "/", validNotification)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	resp := decode(t, rec)
	assert.Equal(t, false, resp["success"])
	assert.Equal(t, "sent", resp["adminEmail"].(map[string]any)["status"])
	assert.Equal(t, "failed", resp["customerEmail"].(map[string]any)["status"])
}

func TestNotify_Preflight(t *testing.T) {
	r, _ := newNotifyRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "https://park.example")
	req.Header.Set("Access-Control-Request-Method", "POST")
	req.Header.Set("Access-Control-Request-Headers", "content-type")
	rec := httptest.NewRecorder()

	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestNotify_OptionsWithoutOrigin(t *testing.T) {
	r, _ := newNotifyRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/send-booking-emails", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "x-client-info")
}
