package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"quote-intake-service/internal/config"
	"quote-intake-service/internal/domain"
	"quote-intake-service/internal/intake"
	"quote-intake-service/internal/platform/obs"
	"time"

	"github.com/rs/zerolog/log"
)

// quote submits one service request against a running server, going through
// the same contact, location and submit steps as the website form.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	obs.InitLogger(cfg.LogLevel, false)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	business := domain.Position{Lat: cfg.BusinessLat, Lon: cfg.BusinessLon}
	if err := run(ctx, os.Args[1:], os.Stdout, business); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type options struct {
	apiURL   string
	contact  intake.ContactInfo
	address  string
	lat, lon float64
	pinned   bool
	debounce time.Duration
	timeout  time.Duration
	verbose  bool
}

func parseFlags(args []string, out io.Writer) (*options, error) {
	var o options
	fs := flag.NewFlagSet("quote", flag.ContinueOnError)
	fs.SetOutput(out)

	fs.StringVar(&o.apiURL, "api", "http://localhost:8080", "Base URL of the quote server")
	fs.StringVar(&o.contact.Name, "name", "", "Customer name (required)")
	fs.StringVar(&o.contact.Email, "email", "", "Customer email (required)")
	fs.StringVar(&o.contact.Phone, "phone", "", "Customer phone")
	fs.StringVar(&o.contact.ShopName, "shop", "", "Shop name")
	fs.StringVar(&o.contact.MachineType, "machine", "", "Machine type")
	fs.StringVar(&o.contact.IssueDescription, "issue", "", "Issue description (required)")
	fs.StringVar(&o.contact.PreferredDate, "date", "", "Preferred date, YYYY-MM-DD")
	fs.StringVar(&o.address, "address", "", "Shop address to geocode")
	fs.Float64Var(&o.lat, "lat", 0, "Shop latitude; with -lon drops a pin instead of geocoding")
	fs.Float64Var(&o.lon, "lon", 0, "Shop longitude")
	fs.DurationVar(&o.debounce, "debounce", intake.DefaultDebounce, "Quiet period before an address is geocoded")
	fs.DurationVar(&o.timeout, "timeout", intake.DefaultLookupTimeout, "Per-lookup timeout")
	fs.BoolVar(&o.verbose, "v", false, "Print every state change")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	var latSet, lonSet bool
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "lat":
			latSet = true
		case "lon":
			lonSet = true
		}
	})
	if latSet != lonSet {
		return nil, errors.New("-lat and -lon must be given together")
	}
	o.pinned = latSet
	if o.address == "" && !o.pinned {
		return nil, errors.New("either -address or -lat/-lon is required")
	}
	return &o, nil
}

func run(ctx context.Context, args []string, out io.Writer, business domain.Position) error {
	o, err := parseFlags(args, out)
	if err != nil {
		return err
	}

	client := &http.Client{Timeout: 30 * time.Second}
	gw, err := intake.NewHTTPGateway(o.apiURL, client)
	if err != nil {
		return err
	}
	sub, err := intake.NewHTTPSubmitter(o.apiURL, client)
	if err != nil {
		return err
	}

	opts := intake.Options{
		Business:        business,
		InitialPosition: &business,
		Debounce:        o.debounce,
		LookupTimeout:   o.timeout,
	}
	if o.verbose {
		opts.OnChange = func(s intake.Snapshot) { printProgress(out, s) }
	}

	wf := intake.NewWorkflow(gw, sub, opts)
	defer wf.Close()

	wf.SetContact(o.contact)
	if err := wf.Next(); err != nil {
		return fmt.Errorf("contact details: %w", err)
	}

	if o.address != "" {
		wf.EditAddress(o.address)
		wf.Wait()
	}
	if o.pinned {
		if err := wf.DropPin(domain.Position{Lat: o.lat, Lon: o.lon}); err != nil {
			return fmt.Errorf("pin: %w", err)
		}
		wf.Wait()
	}

	snap := wf.Snapshot()
	if !o.pinned && snap.Position != nil && *snap.Position == business {
		fmt.Fprintf(out, "Warning: %q could not be located; pricing from the business location.\n", o.address)
	}

	conf, err := wf.Submit(ctx)
	if err != nil {
		return err
	}

	snap = wf.Snapshot()
	fmt.Fprintf(out, "Quote #%d submitted for %s\n", conf.QuoteID, snap.Address)
	dist := 0.0
	if snap.DistanceKm != nil {
		dist = *snap.DistanceKm
	}
	if conf.TravelDistance != nil {
		dist = *conf.TravelDistance
	}
	fmt.Fprintf(out, "Travel distance: %.1f km\n", dist)
	fmt.Fprintf(out, "Estimated cost: $%.2f\n", conf.EstimatedCost)
	return nil
}

func printProgress(out io.Writer, s intake.Snapshot) {
	pos := "-"
	if s.Position != nil {
		pos = s.Position.String()
	}
	fmt.Fprintf(out, "[%s] address=%q position=%s cost=%.2f geocoding=%t fetching_address=%t\n",
		s.Stage, s.Address, pos, s.EstimatedCost, s.Geocoding, s.FetchingAddress)
}
