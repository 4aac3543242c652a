package server

import (
	"bytes"
	"embed"
	"html/template"

	"warbler/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// render executes the named page template with common view data attached.
func (s *Server) render(c *fiber.Ctx, name string, data fiber.Map) error {
	return s.renderStatus(c, fiber.StatusOK, name, data)
}

func (s *Server) renderStatus(c *fiber.Ctx, status int, name string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	data["CurrentUser"] = s.currentUser(c)
	data["Flashes"] = s.popFlashes(c)

	var buf bytes.Buffer
	if err := pages.ExecuteTemplate(&buf, name, data); err != nil {
		middleware.Logger.ErrorContext(c.UserContext(), "template render failed",
			"template", name, "error", err)
		return c.Status(fiber.StatusInternalServerError).SendString("Internal server error")
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Status(status).Send(buf.Bytes())
}

// notFound renders the 404 page.
func (s *Server) notFound(c *fiber.Ctx) error {
	return s.renderStatus(c, fiber.StatusNotFound, "not_found.html", nil)
}
