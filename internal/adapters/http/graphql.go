package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"

	"github.com/samirrijal/railfare/internal/core/domain"
	"github.com/samirrijal/railfare/internal/core/usecases"
)

func farePairObject(p domain.FarePair) map[string]interface{} {
	return map[string]interface{}{
		"train":   int(p.Train.Value),
		"express": int(p.Express.Value),
	}
}

func quoteObject(q *domain.FareQuote) map[string]interface{} {
	b := q.Breakdown
	return map[string]interface{}{
		"from":        q.Section.Departure.String(),
		"to":          q.Section.Arrival.String(),
		"train":       q.Train.String(),
		"seat":        q.SeatType.String(),
		"trip":        q.ReserveType.String(),
		"date":        q.Date.String(),
		"season":      q.Season.String(),
		"adults":      q.Passengers.Adult,
		"children":    q.Passengers.Child,
		"distance_km": q.DistanceKm,
		"total":       int(q.Total),
		"discounts":   b.Discounts,
		"adult_fare":  farePairObject(b.DiscountedAdultFare),
		"child_fare":  farePairObject(b.DiscountedChildFare),
		"billable":    b.BillableAdults,
		"free_adults": b.FreeAdults,
		"multiplier":  b.Multiplier,
		"quoted_at":   q.QuotedAt.Format(time.RFC3339),
	}
}

// buildSchema creates the GraphQL schema wired to our services.
func buildSchema(deps *Dependencies) (graphql.Schema, error) {
	farePairType := graphql.NewObject(graphql.ObjectConfig{
		Name: "FarePair",
		Fields: graphql.Fields{
			"train":   &graphql.Field{Type: graphql.Int},
			"express": &graphql.Field{Type: graphql.Int},
		},
	})

	quoteType := graphql.NewObject(graphql.ObjectConfig{
		Name: "FareQuote",
		Fields: graphql.Fields{
			"from":        &graphql.Field{Type: graphql.String},
			"to":          &graphql.Field{Type: graphql.String},
			"train":       &graphql.Field{Type: graphql.String},
			"seat":        &graphql.Field{Type: graphql.String},
			"trip":        &graphql.Field{Type: graphql.String},
			"date":        &graphql.Field{Type: graphql.String},
			"season":      &graphql.Field{Type: graphql.String},
			"adults":      &graphql.Field{Type: graphql.Int},
			"children":    &graphql.Field{Type: graphql.Int},
			"distance_km": &graphql.Field{Type: graphql.Float},
			"total":       &graphql.Field{Type: graphql.Int},
			"discounts":   &graphql.Field{Type: graphql.NewList(graphql.String)},
			"adult_fare":  &graphql.Field{Type: farePairType, Description: "Per adult, one way, after discounts"},
			"child_fare":  &graphql.Field{Type: farePairType, Description: "Per child, one way, after discounts"},
			"billable":    &graphql.Field{Type: graphql.Int},
			"free_adults": &graphql.Field{Type: graphql.Int},
			"multiplier":  &graphql.Field{Type: graphql.Int},
			"quoted_at":   &graphql.Field{Type: graphql.String},
		},
	})

	routeType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Route",
		Fields: graphql.Fields{
			"from":        &graphql.Field{Type: graphql.String},
			"to":          &graphql.Field{Type: graphql.String},
			"distance_km": &graphql.Field{Type: graphql.Float},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"stations": &graphql.Field{
				Type:        graphql.NewList(graphql.String),
				Description: "List all stations in line order",
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					var out []string
					for _, s := range deps.Fares.Stations() {
						out = append(out, s.String())
					}
					return out, nil
				},
			},
			"routes": &graphql.Field{
				Type:        graphql.NewList(routeType),
				Description: "List priced routes with their operating distance",
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					var out []map[string]interface{}
					for _, r := range deps.Fares.Routes() {
						out = append(out, map[string]interface{}{
							"from":        r.From.String(),
							"to":          r.To.String(),
							"distance_km": r.DistanceKm,
						})
					}
					return out, nil
				},
			},
			"fareQuote": &graphql.Field{
				Type:        quoteType,
				Description: "Price a journey",
				Args: graphql.FieldConfigArgument{
					"from":     &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"to":       &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"date":     &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"train":    &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: "hikari"},
					"seat":     &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: "reserved"},
					"trip":     &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: "one-way"},
					"adults":   &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 1},
					"children": &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 0},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					in := usecases.QuoteInput{
						From:     p.Args["from"].(string),
						To:       p.Args["to"].(string),
						Date:     p.Args["date"].(string),
						Train:    p.Args["train"].(string),
						Seat:     p.Args["seat"].(string),
						Trip:     p.Args["trip"].(string),
						Adults:   p.Args["adults"].(int),
						Children: p.Args["children"].(int),
					}
					req, err := in.Request()
					if err != nil {
						return nil, err
					}
					q, err := deps.Fares.Quote(p.Context, req)
					if err != nil {
						return nil, err
					}
					return quoteObject(q), nil
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query: queryType,
	})
}

// GraphQLHandler serves the GraphQL endpoint.
func GraphQLHandler(deps *Dependencies) fiber.Handler {
	schema, err := buildSchema(deps)
	if err != nil {
		// This would be a programming error in the schema definition
		panic("graphql schema build: " + err.Error())
	}

	type gqlRequest struct {
		Query         string                 `json:"query"`
		OperationName string                 `json:"operationName"`
		Variables     map[string]interface{} `json:"variables"`
	}

	return func(c *fiber.Ctx) error {
		var req gqlRequest
		if err := c.BodyParser(&req); err != nil {
			return errBadRequest(c, "invalid request body")
		}

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  req.Query,
			VariableValues: req.Variables,
			OperationName:  req.OperationName,
			Context:        c.UserContext(),
		})

		return c.JSON(result)
	}
}
