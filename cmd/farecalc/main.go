// Command farecalc prints the fare for a journey, or tails quote events with -watch.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	natsadapter "github.com/samirrijal/railfare/internal/adapters/nats"
	"github.com/samirrijal/railfare/internal/core/domain"
	"github.com/samirrijal/railfare/internal/core/usecases"
	"github.com/samirrijal/railfare/internal/pkg/logging"
)

type options struct {
	input   usecases.QuoteInput
	verbose bool
	watch   string
	lang    string
}

func parseFlags(args []string) (options, error) {
	var o options
	fs := flag.NewFlagSet("farecalc", flag.ContinueOnError)
	fs.StringVar(&o.input.From, "from", "tokyo", "departure station (tokyo, shin-osaka, himeji)")
	fs.StringVar(&o.input.To, "to", "himeji", "arrival station")
	fs.StringVar(&o.input.Train, "train", "nozomi", "train (hikari, nozomi)")
	fs.StringVar(&o.input.Seat, "seat", "reserved", "seat type (reserved, unreserved)")
	fs.StringVar(&o.input.Trip, "trip", "round-trip", "one-way or round-trip")
	fs.StringVar(&o.input.Date, "date", "2024-12-28", "departure date, YYYY-MM-DD")
	fs.IntVar(&o.input.Adults, "adults", 40, "number of adults")
	fs.IntVar(&o.input.Children, "children", 20, "number of children")
	fs.BoolVar(&o.verbose, "v", false, "print the fare breakdown")
	fs.StringVar(&o.watch, "watch", "", "NATS URL; print published quotes instead of computing one")
	fs.StringVar(&o.lang, "lang", "en", "language tag used for number formatting")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	return o, nil
}

func main() {
	logging.Setup(os.Getenv("LOG_LEVEL"), "text")

	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		os.Exit(2)
	}

	tag, err := language.Parse(opts.lang)
	if err != nil {
		log.Fatalf("lang: %v", err)
	}
	p := message.NewPrinter(tag)

	if opts.watch != "" {
		if err := watch(opts.watch, p); err != nil {
			log.Fatalf("watch: %v", err)
		}
		return
	}

	req, err := opts.input.Request()
	if err != nil {
		log.Fatalf("invalid input: %v", err)
	}

	svc := usecases.NewFareService(nil, nil, 0)
	q, err := svc.Quote(context.Background(), req)
	if err != nil {
		log.Fatalf("quote: %v", err)
	}

	if opts.verbose {
		printBreakdown(os.Stdout, p, q)
	}
	fmt.Printf("Total fare: %s yen\n", formatYen(p, q.Total))
}

func formatYen(p *message.Printer, m domain.Money) string {
	return p.Sprintf("%d", int64(m))
}

func printBreakdown(w io.Writer, p *message.Printer, q *domain.FareQuote) {
	b := q.Breakdown
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	discounts := "none"
	if len(b.Discounts) > 0 {
		discounts = strings.Join(b.Discounts, ", ")
	}

	fmt.Fprintf(tw, "Route\t%s -> %s (%.0f km)\n", q.Section.Departure, q.Section.Arrival, q.DistanceKm)
	fmt.Fprintf(tw, "Service\t%s, %s, %s\n", q.Train, q.SeatType, q.ReserveType)
	fmt.Fprintf(tw, "Date\t%s (%s)\n", q.Date, q.Season)
	fmt.Fprintf(tw, "Discounts\t%s\n", discounts)
	fmt.Fprintf(tw, "Adult fare\t%s + %s\t-> %s + %s\n",
		formatYen(p, b.AdultFare.Train.Value), formatYen(p, b.AdultFare.Express.Value),
		formatYen(p, b.DiscountedAdultFare.Train.Value), formatYen(p, b.DiscountedAdultFare.Express.Value))
	fmt.Fprintf(tw, "Child fare\t%s + %s\t-> %s + %s\n",
		formatYen(p, b.ChildFare.Train.Value), formatYen(p, b.ChildFare.Express.Value),
		formatYen(p, b.DiscountedChildFare.Train.Value), formatYen(p, b.DiscountedChildFare.Express.Value))
	fmt.Fprintf(tw, "Adults\t%d billable, %d free\t%s\n", b.BillableAdults, b.FreeAdults, formatYen(p, b.AdultsTotal.Sum()))
	fmt.Fprintf(tw, "Children\t%d\t%s\n", b.Children, formatYen(p, b.ChildrenTotal.Sum()))
	fmt.Fprintf(tw, "Legs\tx%d\n", b.Multiplier)
}

func watch(url string, p *message.Printer) error {
	sub, err := natsadapter.NewSubscriber(url)
	if err != nil {
		return err
	}
	defer sub.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = sub.SubscribeFareQuoted(ctx, func(ctx context.Context, q *domain.FareQuote) error {
		fmt.Printf("%s  %s -> %s  %d+%d  %s yen\n",
			q.QuotedAt.Format("15:04:05"), q.Section.Departure, q.Section.Arrival,
			q.Passengers.Adult, q.Passengers.Child, formatYen(p, q.Total))
		return nil
	})
	if err != nil {
		return err
	}

	slog.Info("watching fare quotes", "url", url, "stream", natsadapter.StreamName)
	<-ctx.Done()
	return nil
}
