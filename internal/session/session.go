// Package session builds the gin session store holding flashes and the
// display theme. Nothing about tasks is ever kept in a session.
package session

import (
	"crypto/sha256"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/hkdf"

	"github.com/yukikurage/task-web/internal/config"
)

const (
	maxAge  = 86400 * 7 // 7 days
	keySize = 32
)

// DeriveKeys expands secret into an authentication key and an encryption
// key (AES-256) with HKDF-SHA256.
func DeriveKeys(secret string) (authKey, encKey []byte, err error) {
	kdf := hkdf.New(sha256.New, []byte(secret), nil, []byte("task-web session"))
	authKey = make([]byte, keySize)
	encKey = make([]byte, keySize)
	if _, err := io.ReadFull(kdf, authKey); err != nil {
		return nil, nil, fmt.Errorf("failed to derive session auth key: %w", err)
	}
	if _, err := io.ReadFull(kdf, encKey); err != nil {
		return nil, nil, fmt.Errorf("failed to derive session encryption key: %w", err)
	}
	return authKey, encKey, nil
}

// NewStore creates the store selected by cfg.Session.Store: signed and
// encrypted cookies, or redis.
func NewStore(cfg *config.Config) (sessions.Store, error) {
	authKey, encKey, err := DeriveKeys(cfg.Session.Secret)
	if err != nil {
		return nil, err
	}

	var store sessions.Store
	switch cfg.Session.Store {
	case config.SessionStoreRedis:
		store, err = redis.NewStore(
			cfg.Redis.PoolSize,
			"tcp",
			cfg.RedisAddr(),
			cfg.Redis.Password,
			authKey,
			encKey,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create redis session store: %w", err)
		}
	default:
		store = cookie.NewStore(authKey, encKey)
	}

	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})
	return store, nil
}

// Middleware returns the gin sessions middleware for store.
func Middleware(cfg *config.Config, store sessions.Store) gin.HandlerFunc {
	return sessions.Sessions(cfg.Session.Name, store)
}
