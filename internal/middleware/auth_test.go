package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func protectedEcho(t *testing.T) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		au, ok := GetAuthUser(r.Context())
		require.True(t, ok)
		w.Write([]byte(au.ID))
	})
}

func TestWithAuth(t *testing.T) {
	handler := WithAuth(testSecret)(protectedEcho(t))

	t.Run("valid token passes identity through", func(t *testing.T) {
		token, err := SignToken(testSecret, "u1", "a@b.example", "Organizer", true)
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "u1", rec.Body.String())
	})

	t.Run("missing header is rejected", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("token signed with another secret is rejected", func(t *testing.T) {
		token, err := SignToken("other-secret", "u1", "a@b.example", "User", false)
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRequireOrganizer(t *testing.T) {
	handler := WithAuth(testSecret)(RequireOrganizer(protectedEcho(t)))

	request := func(role string, isOrganizer bool) *httptest.ResponseRecorder {
		token, err := SignToken(testSecret, "u1", "a@b.example", role, isOrganizer)
		require.NoError(t, err)
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusOK, request("Organizer", true).Code)
	// Organizer role without admin approval is still locked out.
	assert.Equal(t, http.StatusForbidden, request("Organizer", false).Code)
	assert.Equal(t, http.StatusForbidden, request("User", false).Code)
}

func TestRequireAdmin(t *testing.T) {
	handler := WithAuth(testSecret)(RequireAdmin(protectedEcho(t)))

	token, err := SignToken(testSecret, "u1", "a@b.example", "Admin", false)
	require.NoError(t, err)
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	token, err = SignToken(testSecret, "u2", "b@b.example", "User", false)
	require.NoError(t, err)
	req = httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
