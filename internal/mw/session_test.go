package mw

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"smoothies/internal/service"
)

const testSecret = "test-secret"

func sessionEcho(t *testing.T, store *service.SessionStore) http.Handler {
	t.Helper()
	return SessionMiddleware(store, testSecret, zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, ok := SessionFrom(r.Context())
		require.True(t, ok)
		w.Write([]byte(sess.ID))
	}))
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == SessionCookieName {
			return c
		}
	}
	t.Fatalf("no %s cookie set", SessionCookieName)
	return nil
}

func TestSessionMiddlewareIssuesAndReusesSession(t *testing.T) {
	store := service.NewSessionStore(time.Hour)
	h := sessionEcho(t, store)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	firstID := rec.Body.String()
	cookie := sessionCookie(t, rec)
	assert.True(t, cookie.HttpOnly)
	assert.NotEmpty(t, firstID)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, firstID, rec.Body.String())
	assert.Equal(t, 1, store.Len())
}

func TestSessionMiddlewareRejectsForeignToken(t *testing.T) {
	store := service.NewSessionStore(time.Hour)
	victim := store.Acquire()

	forged, err := signSessionToken(victim.ID, "other-secret", time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: forged})
	rec := httptest.NewRecorder()
	sessionEcho(t, store).ServeHTTP(rec, req)

	assert.NotEqual(t, victim.ID, rec.Body.String())
	assert.Equal(t, 2, store.Len())
}

func TestSessionMiddlewareReplacesReleasedSession(t *testing.T) {
	store := service.NewSessionStore(time.Hour)
	old := store.Acquire()
	token, err := signSessionToken(old.ID, testSecret, time.Hour)
	require.NoError(t, err)
	store.Release(old.ID)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
	rec := httptest.NewRecorder()
	sessionEcho(t, store).ServeHTTP(rec, req)

	assert.NotEqual(t, old.ID, rec.Body.String())
}

func TestParseSessionToken(t *testing.T) {
	token, err := signSessionToken("abc", testSecret, time.Hour)
	require.NoError(t, err)

	sid, err := parseSessionToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "abc", sid)

	expired, err := signSessionToken("abc", testSecret, -time.Minute)
	require.NoError(t, err)
	_, err = parseSessionToken(expired, testSecret)
	assert.Error(t, err)

	_, err = parseSessionToken("not-a-token", testSecret)
	assert.Error(t, err)
}
