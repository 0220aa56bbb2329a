package serverutils

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ai-assistant-client/internal/pkg/apperror"
	"ai-assistant-client/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func call(t *testing.T, app *fiber.App, req *http.Request) (int, string) {
	t.Helper()
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestErrorHandlerMapsErrorTypes(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{"application", &apperror.ApplicationError{Status: 404, Message: "Note not found"}, 404, `{"detail":"Note not found"}`},
		{"validation", apperror.NewValidationError(apperror.FieldError{Field: "title", Rule: "required"}), 422, `{"detail":"validation failed: title failed on 'required'"}`},
		{"fiber", fiber.NewError(fiber.StatusBadRequest, "invalid request body"), 400, `{"detail":"invalid request body"}`},
		{"other", errors.New("boom"), 500, `{"detail":"boom"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New(fiber.Config{ErrorHandler: NewErrorHandler(logger.NewNopLogger())})
			app.Get("/", func(*fiber.Ctx) error { return tt.err })

			status, body := call(t, app, httptest.NewRequest(http.MethodGet, "/", nil))
			assert.Equal(t, tt.wantStatus, status)
			assert.JSONEq(t, tt.wantBody, body)
		})
	}
}

func TestJwtMiddleware(t *testing.T) {
	app := fiber.New()
	app.Use(NewJwtMiddleware("s3cret"))
	app.Get("/", func(ctx *fiber.Ctx) error { return ctx.SendString(ctx.Locals("subject").(string)) })

	good, err := IssueToken("s3cret", "ana", time.Minute)
	require.NoError(t, err)
	expired, err := IssueToken("s3cret", "ana", -time.Minute)
	require.NoError(t, err)
	foreign, err := IssueToken("other", "ana", time.Minute)
	require.NoError(t, err)
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sub": "ana"}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{"valid", "Bearer " + good, 200, "ana"},
		{"missing", "", 401, `{"detail":"Missing token"}`},
		{"wrong scheme", "Basic abc", 401, `{"detail":"Missing token"}`},
		{"expired", "Bearer " + expired, 401, `{"detail":"Invalid token"}`},
		{"wrong secret", "Bearer " + foreign, 401, `{"detail":"Invalid token"}`},
		{"alg none", "Bearer " + unsigned, 401, `{"detail":"Invalid token"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			status, body := call(t, app, req)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantBody, body)
		})
	}
}

func TestValidateRequestLowercasesFields(t *testing.T) {
	type form struct {
		Title    string `validate:"required"`
		Priority string `validate:"omitempty,oneof=low medium high"`
	}

	err := ValidateRequest(form{Priority: "urgent"})

	var ve *apperror.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.True(t, ve.HasField("title"))
	assert.True(t, ve.HasField("priority"))
	assert.NoError(t, ValidateRequest(form{Title: "x"}))
}
