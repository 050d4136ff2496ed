package views

import (
	"embed"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"github.com/gofiber/template/html/v2"
)

//go:embed templates/*.html
var files embed.FS

// Engine parses the embedded page templates. Pages render inside
// layout.html via {{embed}}.
func Engine() *html.Engine {
	sub, err := fs.Sub(files, "templates")
	if err != nil {
		panic("views: " + err.Error())
	}

	engine := html.NewFileSystem(http.FS(sub), ".html")

	engine.AddFunc("formatDate", func(t time.Time) string {
		return t.Format("Jan 2, 2006")
	})
	engine.AddFunc("dateValue", func(t time.Time) string {
		return t.Format("2006-01-02")
	})
	engine.AddFunc("plural", func(n int, singular, plural string) string {
		if n == 1 {
			return fmt.Sprintf("%d %s", n, singular)
		}
		return fmt.Sprintf("%d %s", n, plural)
	})
	engine.AddFunc("deref", func(p *int) int {
		if p == nil {
			return 0
		}
		return *p
	})

	return engine
}
