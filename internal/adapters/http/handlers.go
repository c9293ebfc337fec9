package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/samirrijal/railfare/internal/core/domain"
	"github.com/samirrijal/railfare/internal/core/usecases"
)

// StationsResponse lists stations and the priced routes between them.
type StationsResponse struct {
	Stations []domain.Station   `json:"stations"`
	Routes   []domain.RouteInfo `json:"routes"`
}

// ListStationsHandler returns the station catalogue.
func ListStationsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set("Cache-Control", "public, max-age=3600")
		return c.JSON(StationsResponse{
			Stations: deps.Fares.Stations(),
			Routes:   deps.Fares.Routes(),
		})
	}
}

// QuoteFareHandler prices a journey described by query parameters.
// Example: /v1/fares/quote?from=tokyo&to=himeji&train=nozomi&seat=reserved&trip=round-trip&date=2024-12-28&adults=40&children=20
func QuoteFareHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		from, to := c.Query("from"), c.Query("to")
		if from == "" || to == "" {
			return errBadRequest(c, "from and to are required")
		}
		date := c.Query("date")
		if date == "" {
			return errBadRequest(c, "date is required (YYYY-MM-DD)")
		}

		in := usecases.QuoteInput{
			From:     from,
			To:       to,
			Train:    c.Query("train"),
			Seat:     c.Query("seat"),
			Trip:     c.Query("trip"),
			Date:     date,
			Adults:   c.QueryInt("adults", 1),
			Children: c.QueryInt("children", 0),
		}
		return quote(c, deps, in)
	}
}

// QuoteFareBodyHandler prices a journey described by a JSON body.
func QuoteFareBodyHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in usecases.QuoteInput
		if err := c.BodyParser(&in); err != nil {
			return errBadRequest(c, "invalid request body")
		}
		if in.From == "" || in.To == "" {
			return errBadRequest(c, "from and to are required")
		}
		if in.Date == "" {
			return errBadRequest(c, "date is required (YYYY-MM-DD)")
		}
		return quote(c, deps, in)
	}
}

func quote(c *fiber.Ctx, deps *Dependencies, in usecases.QuoteInput) error {
	req, err := in.Request()
	if err != nil {
		return errBadRequest(c, err.Error())
	}

	q, err := deps.Fares.Quote(c.UserContext(), req)
	if err != nil {
		return errFromQuote(c, err)
	}

	c.Set("Cache-Control", "private, max-age=60")
	return c.JSON(q)
}
