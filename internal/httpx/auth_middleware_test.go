package httpx

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fragranceapi/internal/platform/crypto"

	"github.com/stretchr/testify/assert"
)

type fakeSessionChecker struct {
	live bool
	err  error

	checkedID string
}

func (f *fakeSessionChecker) IsLive(_ context.Context, tokenID string) (bool, error) {
	f.checkedID = tokenID
	return f.live, f.err
}

func TestAuthMiddleware(t *testing.T) {
	const secret = "test-secret"

	issue := func(t *testing.T) (token, jti string) {
		t.Helper()
		token, jti, err := crypto.GenerateToken(secret, "admin@fragrance.local", time.Hour)
		assert.NoError(t, err)
		return token, jti
	}

	serve := func(checker SessionChecker, authorization string) (*httptest.ResponseRecorder, *http.Request) {
		var inner *http.Request
		handler := AuthMiddleware(secret, checker)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			inner = r
			w.WriteHeader(http.StatusOK)
		}))

		r := httptest.NewRequest(http.MethodGet, "/admin/perfumes", nil)
		if authorization != "" {
			r.Header.Set("Authorization", authorization)
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, r)
		return rec, inner
	}

	t.Run("live session", func(t *testing.T) {
		token, jti := issue(t)
		checker := &fakeSessionChecker{live: true}

		rec, inner := serve(checker, "Bearer "+token)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, jti, checker.checkedID)
		assert.Equal(t, "admin@fragrance.local", EmailFrom(inner))
		assert.Equal(t, jti, TokenIDFrom(inner))
	})

	t.Run("missing header", func(t *testing.T) {
		rec, _ := serve(&fakeSessionChecker{live: true}, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		rec, _ := serve(&fakeSessionChecker{live: true}, "Bearer not.a.token")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("wrong signing key", func(t *testing.T) {
		token, _, err := crypto.GenerateToken("another-secret", "admin@fragrance.local", time.Hour)
		assert.NoError(t, err)

		rec, _ := serve(&fakeSessionChecker{live: true}, "Bearer "+token)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("terminated session", func(t *testing.T) {
		token, _ := issue(t)

		rec, _ := serve(&fakeSessionChecker{live: false}, "Bearer "+token)
		assert.Equal(t, http.StatusUnauthorized, rec.Code,
			"a valid JWT without a live session row must be rejected")
	})

	t.Run("session store failure", func(t *testing.T) {
		token, _ := issue(t)

		rec, _ := serve(&fakeSessionChecker{err: errors.New("store down")}, "Bearer "+token)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "fail closed")
	})
}
