package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/samirrijal/railfare/api"
)

const (
	docsPath    = "/docs"
	openAPIPath = "/docs/openapi.yaml"
	swaggerDist = "https://cdn.jsdelivr.net/npm/swagger-ui-dist@5"
)

// docsPage opens the quote operation with "Try it out" enabled so a fare can
// be priced straight from the browser.
var docsPage = fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <title>Railfare API | Swagger UI</title>
  <link rel="stylesheet" href="%[1]s/swagger-ui.css">
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="%[1]s/swagger-ui-bundle.js"></script>
  <script>
    SwaggerUIBundle({
      url: '%[2]s',
      dom_id: '#swagger-ui',
      deepLinking: true,
      tryItOutEnabled: true,
      defaultModelsExpandDepth: 0,
      docExpansion: 'list',
      presets: [SwaggerUIBundle.presets.apis],
    });
  </script>
</body>
</html>`, swaggerDist, openAPIPath)

// SetupDocs serves Swagger UI and the embedded OpenAPI document.
func SetupDocs(app *fiber.App) {
	app.Get(docsPath, func(c *fiber.Ctx) error {
		c.Type("html", "utf-8")
		return c.SendString(docsPage)
	})
	app.Get(openAPIPath, func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderContentType, "application/yaml")
		return c.Send(api.OpenAPI)
	})
}
