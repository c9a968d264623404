package middleware

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	sessionstore "feedback-service/internal/adapter/session"
	"feedback-service/internal/domain/session"
	"feedback-service/pkg/logger"
)

const (
	identityContextKey  = "session_identity"
	sessionIDContextKey = "session_id"
)

// Session resolves the session cookie to an identity and stores it on the gin
// context. Requests without a valid session proceed as anonymous.
func Session(store sessionstore.Store, cookieName string, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := session.Anonymous()

		if id, err := c.Cookie(cookieName); err == nil && id != "" {
			resolved, err := store.Identity(c.Request.Context(), id)
			if err != nil {
				logger.WithContext(c.Request.Context(), log).Warn("session lookup failed, continuing anonymous", zap.Error(err))
			} else {
				identity = resolved
			}
			if identity.IsAuthenticated() {
				c.Set(sessionIDContextKey, id)
				c.Request = c.Request.WithContext(logger.WithUsername(c.Request.Context(), identity.Username()))
			}
		}

		c.Set(identityContextKey, identity)
		c.Next()
	}
}

// IdentityFrom returns the identity set by Session, or anonymous when absent.
func IdentityFrom(c *gin.Context) session.Identity {
	v, ok := c.Get(identityContextKey)
	if !ok {
		return session.Anonymous()
	}
	identity, ok := v.(session.Identity)
	if !ok {
		return session.Anonymous()
	}
	return identity
}

// SessionIDFrom returns the id of the authenticated session, or "".
func SessionIDFrom(c *gin.Context) string {
	return c.GetString(sessionIDContextKey)
}
