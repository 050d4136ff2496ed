package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

// Flash kinds, in the order they render.
var flashKinds = []string{"error", "info", "success"}

type FlashMessage struct {
	Kind    string
	Message string
}

var store *session.Store

// InitSession sets up the cookie-backed session store that carries flash
// messages between a redirect and the next render.
func InitSession() {
	store = session.New(session.Config{
		KeyLookup:      "cookie:fitsquad_session",
		Expiration:     24 * time.Hour,
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
	})
}

// Flash queues one message of the given kind for the next rendered page.
func Flash(c *fiber.Ctx, kind, message string) {
	if store == nil {
		return
	}
	sess, err := store.Get(c)
	if err != nil {
		return
	}
	sess.Set("flash_"+kind, message)
	sess.Save()
}

// TakeFlashes drains queued messages. Each message renders exactly once.
func TakeFlashes(c *fiber.Ctx) []FlashMessage {
	if store == nil {
		return nil
	}
	sess, err := store.Get(c)
	if err != nil {
		return nil
	}

	var flashes []FlashMessage
	for _, kind := range flashKinds {
		key := "flash_" + kind
		if msg, ok := sess.Get(key).(string); ok && msg != "" {
			flashes = append(flashes, FlashMessage{Kind: kind, Message: msg})
			sess.Delete(key)
		}
	}
	if len(flashes) > 0 {
		sess.Save()
	}
	return flashes
}
