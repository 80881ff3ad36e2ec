package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pizzeria/internal/pkg/authn"
	"pizzeria/internal/pkg/errs"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"required value", errs.NewValueIsRequiredError("phone"), http.StatusBadRequest},
		{"invalid value", errs.NewValueIsInvalidError("status"), http.StatusBadRequest},
		{"out of range", errs.NewValueIsOutOfRangeError("rating", 7, 1, 5), http.StatusBadRequest},
		{"unauthorized", errs.NewUnauthorizedError("view order"), http.StatusForbidden},
		{"not found", errs.NewObjectNotFoundError("order", "x"), http.StatusNotFound},
		{"invalid transition", errs.NewInvalidTransitionError("pending", "delivered"), http.StatusConflict},
		{"conflict", errs.NewConflictError("review already exists"), http.StatusConflict},
		{"payment mismatch", errs.NewPaymentMismatchError("38.00", "40.00"), http.StatusConflict},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.want, statusFor(test.err))
		})
	}
}

func TestRespondError_MasksInternalErrors(t *testing.T) {
	e := echo.New()
	recorder := httptest.NewRecorder()
	ctx := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), recorder)

	err := respondError(ctx, errors.New("pq: connection refused"))

	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.JSONEq(t, `{"code":500,"message":"internal error"}`, recorder.Body.String())
}

func TestRespondError_KeepsDomainMessages(t *testing.T) {
	e := echo.New()
	recorder := httptest.NewRecorder()
	ctx := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), recorder)

	err := respondError(ctx, errs.NewUnauthorizedError("cancel order"))

	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "cancel order")
}

func TestAuthMiddleware(t *testing.T) {
	const secret = "test-secret"

	signedToken := func(t *testing.T, subject string) string {
		t.Helper()
		claims := authn.Claims{
			Role: "customer",
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   subject,
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
		require.NoError(t, err)
		return token
	}

	newEcho := func() *echo.Echo {
		e := echo.New()
		e.GET("/protected", func(ctx echo.Context) error {
			identity, ok := identityFrom(ctx)
			if !ok {
				return ctx.NoContent(http.StatusInternalServerError)
			}
			return ctx.String(http.StatusOK, identity.UserID.String())
		}, AuthMiddleware(secret))
		return e
	}

	t.Run("valid bearer token reaches the handler", func(t *testing.T) {
		subject := "0b8e9e7a-3f6e-4a1d-9d2b-7c5f1e8a4b3c"
		request := httptest.NewRequest(http.MethodGet, "/protected", nil)
		request.Header.Set("Authorization", "Bearer "+signedToken(t, subject))
		recorder := httptest.NewRecorder()

		newEcho().ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, subject, recorder.Body.String())
	})

	t.Run("missing token is rejected", func(t *testing.T) {
		request := httptest.NewRequest(http.MethodGet, "/protected", nil)
		recorder := httptest.NewRecorder()

		newEcho().ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "missing token")
	})

	t.Run("token signed with a different secret is rejected", func(t *testing.T) {
		claims := jwt.RegisteredClaims{
			Subject:   "0b8e9e7a-3f6e-4a1d-9d2b-7c5f1e8a4b3c",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		}
		forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("other-secret"))
		require.NoError(t, err)

		request := httptest.NewRequest(http.MethodGet, "/protected", nil)
		request.Header.Set("Authorization", "Bearer "+forged)
		recorder := httptest.NewRecorder()

		newEcho().ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "invalid token")
	})
}
