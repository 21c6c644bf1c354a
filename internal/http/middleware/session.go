package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hoponhub/internal/session"
)

const sessionKey = "session"

// Session loads the visitor's session and re-issues its cookie. A missing or
// tampered cookie starts a fresh session.
func Session(m *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, fresh := m.Load(c.Request)
		if fresh {
			cookie, err := m.Cookie(sess)
			if err != nil {
				_ = c.Error(err)
				c.AbortWithStatus(http.StatusInternalServerError)
				return
			}
			http.SetCookie(c.Writer, cookie)
		}
		c.Set(sessionKey, sess)
		c.Next()
	}
}

// GetSession returns the session stored by Session, or nil.
func GetSession(c *gin.Context) *session.Session {
	if v, ok := c.Get(sessionKey); ok {
		if s, ok := v.(*session.Session); ok {
			return s
		}
	}
	return nil
}
