package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gahana/internal/domain/entity"
	"gahana/internal/domain/service"
	"gahana/internal/geo"
	"gahana/internal/infra/geolocation"
	"gahana/internal/session"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type command struct {
	flags *flag.FlagSet
	run   func(ctx context.Context, a *app, out io.Writer) error
}

func (c *command) parse(args []string) error {
	return c.flags.Parse(args)
}

func commands() map[string]*command {
	return map[string]*command{
		"signin":   signInCommand(),
		"signup":   signUpCommand(),
		"signout":  signOutCommand(),
		"guest":    guestCommand(),
		"whoami":   whoAmICommand(),
		"access":   accessCommand(),
		"nearby":   nearbyCommand(),
		"products": productsCommand(),
		"prices":   pricesCommand(),
	}
}

func signInCommand() *command {
	fs := flag.NewFlagSet("signin", flag.ContinueOnError)
	email := fs.String("email", "", "Account email")
	password := fs.String("password", "", "Account password")

	return &command{flags: fs, run: func(ctx context.Context, a *app, out io.Writer) error {
		if *email == "" || *password == "" {
			return errors.New("-email and -password are required")
		}
		if err := a.resolver.SignIn(ctx, *email, *password); err != nil {
			return err
		}
		a.awaitRole(ctx)

		return writeState(out, a.resolver.State())
	}}
}

func signUpCommand() *command {
	fs := flag.NewFlagSet("signup", flag.ContinueOnError)
	email := fs.String("email", "", "Account email")
	password := fs.String("password", "", "Account password")
	role := fs.String("role", string(entity.RoleCustomer), "customer, store_owner or admin")
	first := fs.String("first", "", "First name")
	last := fs.String("last", "", "Last name")
	phone := fs.String("phone", "", "Phone number")

	return &command{flags: fs, run: func(ctx context.Context, a *app, out io.Writer) error {
		if *email == "" || *password == "" {
			return errors.New("-email and -password are required")
		}
		r := entity.Role(*role)
		if !r.IsValid() {
			return errors.Errorf("unknown role %q", *role)
		}

		err := a.resolver.SignUp(ctx, *email, *password, r, entity.AccountMetadata{
			FirstName: *first,
			LastName:  *last,
			Phone:     *phone,
		})
		if err != nil {
			return err
		}
		a.awaitRole(ctx)

		return writeState(out, a.resolver.State())
	}}
}

func signOutCommand() *command {
	fs := flag.NewFlagSet("signout", flag.ContinueOnError)

	return &command{flags: fs, run: func(ctx context.Context, a *app, out io.Writer) error {
		if err := a.resolver.SignOut(ctx); err != nil {
			return err
		}
		_, err := fmt.Fprintln(out, "signed out")

		return err
	}}
}

func guestCommand() *command {
	fs := flag.NewFlagSet("guest", flag.ContinueOnError)

	return &command{flags: fs, run: func(ctx context.Context, a *app, out io.Writer) error {
		if _, err := a.resolver.ContinueAsGuest(ctx); err != nil {
			return err
		}

		return writeState(out, a.resolver.State())
	}}
}

func whoAmICommand() *command {
	fs := flag.NewFlagSet("whoami", flag.ContinueOnError)

	return &command{flags: fs, run: func(ctx context.Context, a *app, out io.Writer) error {
		a.awaitRole(ctx)

		return writeState(out, a.resolver.State())
	}}
}

func accessCommand() *command {
	fs := flag.NewFlagSet("access", flag.ContinueOnError)
	path := fs.String("path", "/", "Route path")
	role := fs.String("role", "", "Role the route requires, empty for none")
	allowGuest := fs.Bool("guest", false, "Route is open to guests")

	return &command{flags: fs, run: func(ctx context.Context, a *app, out io.Writer) error {
		required := entity.Role(*role)
		if required != "" && !required.IsValid() {
			return errors.Errorf("unknown role %q", *role)
		}
		a.awaitRole(ctx)

		route := session.Route{Path: *path, RequiredRole: required, AllowGuest: *allowGuest}

		return writeDecision(out, route, session.Decide(route, a.resolver.State()))
	}}
}

func nearbyCommand() *command {
	fs := flag.NewFlagSet("nearby", flag.ContinueOnError)
	radius := fs.Float64("radius", 0, "Search radius in km (default from config)")
	refresh := fs.Bool("refresh", false, "Ask for a live location instead of the saved one")
	at := fs.String("at", "", "Use this position instead, as lat,lng")
	limit := fs.Int("limit", 0, "Fetch at most this many stores")

	return &command{flags: fs, run: func(ctx context.Context, a *app, out io.Writer) error {
		source, err := a.locationSource(*at, *refresh)
		if err != nil {
			return err
		}

		stores, err := a.client.ListStores(ctx, *limit)
		if err != nil {
			return err
		}

		radiusKm := geo.ClampRadius(*radius, a.cfg.Proximity.DefaultRadiusKm, a.cfg.Proximity.MaxRadiusKm)
		result := geo.Nearby(ctx, a.logger, source, stores, (*entity.Store).GeoLocation, radiusKm)

		return writeNearby(out, result)
	}}
}

func productsCommand() *command {
	fs := flag.NewFlagSet("products", flag.ContinueOnError)
	id := fs.String("id", "", "Show a single product")
	store := fs.String("store", "", "Only products of this store ID")
	category := fs.String("category", "", "Only this category")
	search := fs.String("q", "", "Match name or description")
	purity := fs.String("purity", "", "Comma separated purities, e.g. 24K,22K")
	limit := fs.Int("limit", 0, "Fetch at most this many products")

	return &command{flags: fs, run: func(ctx context.Context, a *app, out io.Writer) error {
		if *id != "" {
			productID, err := uuid.Parse(*id)
			if err != nil {
				return errors.Wrap(err, "invalid -id")
			}
			product, err := a.client.GetProduct(ctx, productID)
			if err != nil {
				return err
			}

			return writeProduct(out, product)
		}

		filter, err := productFilter(*store, *category, *search, *purity, *limit)
		if err != nil {
			return err
		}
		products, err := a.client.ListProducts(ctx, filter)
		if err != nil {
			return err
		}

		return writeProducts(out, products)
	}}
}

func productFilter(store, category, search, purity string, limit int) (entity.ProductFilter, error) {
	filter := entity.ProductFilter{Category: category, Search: search, Limit: limit}
	if store != "" {
		storeID, err := uuid.Parse(store)
		if err != nil {
			return filter, errors.Wrap(err, "invalid -store")
		}
		filter.StoreID = storeID
	}
	for _, p := range strings.Split(purity, ",") {
		if p = strings.TrimSpace(p); p != "" {
			filter.Purities = append(filter.Purities, p)
		}
	}

	return filter, nil
}

func pricesCommand() *command {
	fs := flag.NewFlagSet("prices", flag.ContinueOnError)

	return &command{flags: fs, run: func(ctx context.Context, a *app, out io.Writer) error {
		prices, err := a.client.ListPrices(ctx)
		if err != nil {
			return err
		}

		return writePrices(out, prices)
	}}
}

// locationSource picks where nearby gets its reference point. An explicit
// position wins; otherwise the saved location is used unless a live one is
// requested or nothing is saved yet.
func (a *app) locationSource(at string, refresh bool) (service.LocationSource, error) {
	if at != "" {
		point, err := parseLatLng(at)
		if err != nil {
			return nil, err
		}

		return geolocation.Fixed(point), nil
	}
	if refresh {
		return a.locator, nil
	}

	return savedFirst{saved: a.saved, fallback: a.locator}, nil
}

// savedFirst answers from the saved location and asks fallback only when nothing is saved.
type savedFirst struct {
	saved    service.LocationSource
	fallback service.LocationSource
}

func (s savedFirst) CurrentPosition(ctx context.Context) (entity.GeoPoint, error) {
	if point, err := s.saved.CurrentPosition(ctx); err == nil {
		return point, nil
	}

	return s.fallback.CurrentPosition(ctx)
}

func parseLatLng(s string) (entity.GeoPoint, error) {
	latStr, lngStr, ok := strings.Cut(s, ",")
	if !ok {
		return entity.GeoPoint{}, errors.Errorf("position %q must be lat,lng", s)
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
	if err != nil {
		return entity.GeoPoint{}, errors.Wrapf(err, "invalid latitude %q", latStr)
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(lngStr), 64)
	if err != nil {
		return entity.GeoPoint{}, errors.Wrapf(err, "invalid longitude %q", lngStr)
	}

	point := entity.GeoPoint{Lat: lat, Lng: lng}
	if !point.IsValid() {
		return entity.GeoPoint{}, errors.Errorf("position %q is out of range", s)
	}

	return point, nil
}
