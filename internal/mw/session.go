package mw

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"smoothies/internal/service"
)

type contextKey string

const (
	SessionCtxKey     contextKey = "session"
	SessionCookieName            = "smoothie_session"
)

// SessionMiddleware attaches a *service.Session to the request context. The
// session id travels in a signed cookie; a missing, tampered or expired
// cookie, or one naming a released session, gets a new session.
func SessionMiddleware(store *service.SessionStore, secret string, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var sess *service.Session

			if cookie, err := r.Cookie(SessionCookieName); err == nil {
				if id, err := parseSessionToken(cookie.Value, secret); err == nil {
					sess, _ = store.Get(id)
				} else {
					logger.Debug("rejected session cookie", zap.Error(err))
				}
			}

			if sess == nil {
				sess = store.Acquire()
			}

			// refresh the cookie so its expiry follows the idle timer
			token, err := signSessionToken(sess.ID, secret, store.TTL())
			if err != nil {
				logger.Error("session token signing failed", zap.Error(err))
				http.Error(w, "internal error", http.StatusInternalServerError)
				return
			}
			http.SetCookie(w, &http.Cookie{
				Name:     SessionCookieName,
				Value:    token,
				Path:     "/",
				MaxAge:   int(store.TTL().Seconds()),
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
				Secure:   r.TLS != nil,
			})

			ctx := context.WithValue(r.Context(), SessionCtxKey, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func SessionFrom(ctx context.Context) (*service.Session, bool) {
	sess, ok := ctx.Value(SessionCtxKey).(*service.Session)
	return sess, ok
}

func signSessionToken(sessionID, secret string, ttl time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sid": sessionID,
		"exp": jwt.NewNumericDate(time.Now().Add(ttl)),
	})
	return token.SignedString([]byte(secret))
}

func parseSessionToken(tokenString, secret string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return "", errors.New("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid claims")
	}

	sid, ok := claims["sid"].(string)
	if !ok || sid == "" {
		return "", errors.New("sid not found in token")
	}
	return sid, nil
}
