package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	"tps-admin/pkg/config"
)

const localSessionID = "session_id"

// NewSessionStore keeps the browser session id in a cookie. Session data
// itself stays on the server.
func NewSessionStore(cfg *config.SessionConfig) *session.Store {
	return session.New(session.Config{
		Expiration:     cfg.TTL,
		KeyLookup:      "cookie:" + cfg.CookieName,
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
	})
}

// SessionMiddleware resolves the caller's session and refreshes its cookie.
func SessionMiddleware(store *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := store.Get(c)
		if err != nil {
			return err
		}

		// the session must be read before Save, which releases it
		id := sess.ID()
		if sess.Fresh() {
			sess.Set("started", true)
		}
		if err := sess.Save(); err != nil {
			return err
		}

		c.Locals(localSessionID, id)
		return c.Next()
	}
}

// SessionID is the id SessionMiddleware resolved.
func SessionID(c *fiber.Ctx) string {
	id, _ := c.Locals(localSessionID).(string)
	return id
}
