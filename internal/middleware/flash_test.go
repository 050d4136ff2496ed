package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flashTestApp() *fiber.App {
	InitSession()

	app := fiber.New()
	app.Get("/set", func(c *fiber.Ctx) error {
		Flash(c, "error", "something broke")
		Flash(c, "success", "but this worked")
		return c.SendString("ok")
	})
	app.Get("/read", func(c *fiber.Ctx) error {
		flashes := TakeFlashes(c)
		out := ""
		for _, f := range flashes {
			out += f.Kind + ":" + f.Message + ";"
		}
		return c.SendString(out)
	})
	return app
}

func sessionCookie(t *testing.T, resp *http.Response) *http.Cookie {
	t.Helper()
	for _, c := range resp.Cookies() {
		if c.Name == "fitsquad_session" {
			return c
		}
	}
	t.Fatal("expected a session cookie")
	return nil
}

func TestFlashDrainsOnce(t *testing.T) {
	app := flashTestApp()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/set", nil))
	require.NoError(t, err)
	cookie := sessionCookie(t, resp)

	read := httptest.NewRequest(http.MethodGet, "/read", nil)
	read.AddCookie(cookie)
	resp, err = app.Test(read)
	require.NoError(t, err)

	body := make([]byte, 256)
	n, _ := resp.Body.Read(body)
	assert.Equal(t, "error:something broke;success:but this worked;", string(body[:n]))

	// Second read comes back empty
	read = httptest.NewRequest(http.MethodGet, "/read", nil)
	read.AddCookie(cookie)
	resp, err = app.Test(read)
	require.NoError(t, err)
	n, _ = resp.Body.Read(body)
	assert.Zero(t, n)
}

func TestFlashWithoutSessionIsEmpty(t *testing.T) {
	app := flashTestApp()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/read", nil))
	require.NoError(t, err)

	body := make([]byte, 16)
	n, _ := resp.Body.Read(body)
	assert.Zero(t, n)
}
