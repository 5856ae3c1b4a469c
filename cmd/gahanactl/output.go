package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"gahana/internal/domain/entity"
	"gahana/internal/geo"
	"gahana/internal/session"
)

func writeState(out io.Writer, state session.State) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "identity:\t%s\n", state.Kind)
	switch state.Kind {
	case entity.IdentityGuest:
		fmt.Fprintf(tw, "guest id:\t%s\n", state.GuestID)
	case entity.IdentityAuthenticated:
		fmt.Fprintf(tw, "user id:\t%s\n", state.UserID)
		fmt.Fprintf(tw, "email:\t%s\n", state.Email)
		if p := state.Profile; p != nil && (p.FirstName != "" || p.LastName != "") {
			fmt.Fprintf(tw, "name:\t%s %s\n", p.FirstName, p.LastName)
		}
	}

	role := state.EffectiveRole().String()
	if role == "" {
		role = "(unknown)"
	}
	fmt.Fprintf(tw, "role:\t%s\n", role)
	fmt.Fprintf(tw, "home:\t%s\n", session.HomeFor(state.EffectiveRole()))

	return tw.Flush()
}

func writeDecision(out io.Writer, route session.Route, d session.Decision) error {
	switch d.Outcome {
	case session.Redirect:
		_, err := fmt.Fprintf(out, "%s: redirect to %s\n", route.Path, d.RedirectTo)

		return err
	default:
		_, err := fmt.Fprintf(out, "%s: %s\n", route.Path, d.Outcome)

		return err
	}
}

func writeNearby(out io.Writer, result geo.NearbyResult[*entity.Store]) error {
	if result.Filtered {
		fmt.Fprintf(out, "Stores within %.0f km of %.4f,%.4f\n", result.RadiusKm, result.Origin.Lat, result.Origin.Lng)
	} else {
		fmt.Fprintln(out, "Location unavailable, showing all stores")
	}
	if len(result.Items) == 0 {
		_, err := fmt.Fprintln(out, "No stores found")

		return err
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tDISTANCE\tADDRESS")
	for _, r := range result.Items {
		distance := "-"
		if r.HasDistance() {
			distance = fmt.Sprintf("%.1f km", r.DistanceKm)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", r.Item.Name, distance, r.Item.Address)
	}

	return tw.Flush()
}

func writePrices(out io.Writer, prices []*entity.MetalPrice) error {
	if len(prices) == 0 {
		_, err := fmt.Fprintln(out, "No prices published yet")

		return err
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "METAL\tPURITY\tRS/GRAM\tUPDATED\t")
	for _, p := range prices {
		fmt.Fprintf(tw, "%s\t%s\t%.2f\t%s\t\n", p.MetalType, p.Purity, p.PricePerGram, p.UpdatedAt.Format("2006-01-02 15:04"))
	}

	return tw.Flush()
}

func writeProducts(out io.Writer, products []*entity.Product) error {
	if len(products) == 0 {
		_, err := fmt.Fprintln(out, "No products found")

		return err
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tMETAL\tPURITY\tPRICE\tID")
	for _, p := range products {
		name := p.Name
		if !p.Available {
			name += " (sold out)"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\tRs %.2f\t%s\n", name, p.MetalType, p.Purity, p.Price, p.ID)
	}

	return tw.Flush()
}

func writeProduct(out io.Writer, p *entity.Product) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "name:\t%s\n", p.Name)
	if p.Description != "" {
		fmt.Fprintf(tw, "description:\t%s\n", p.Description)
	}
	if p.Category != "" {
		fmt.Fprintf(tw, "category:\t%s\n", p.Category)
	}
	fmt.Fprintf(tw, "metal:\t%s %s\n", p.MetalType, p.Purity)
	if p.WeightGrams > 0 {
		fmt.Fprintf(tw, "weight:\t%.3f g\n", p.WeightGrams)
	}
	fmt.Fprintf(tw, "price:\tRs %.2f\n", p.Price)
	fmt.Fprintf(tw, "available:\t%t\n", p.Available)
	fmt.Fprintf(tw, "store:\t%s\n", p.StoreID)

	return tw.Flush()
}
