package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"golang.org/x/sync/errgroup"

	"eventx/api"
	"eventx/nav"
)

func (a *app) nav(ctx context.Context) error {
	a.restoreSession(ctx)

	snap := a.store.Snapshot()
	links := nav.Menu(a.table, snap.Principal)

	who := "guest"
	if snap.Principal.Present() {
		who = string(snap.Principal.Role)
	}
	fmt.Printf("Menu for %s:\n", who)
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for _, link := range links {
		fmt.Fprintf(w, "  %s\t%s\n", link.Label, link.Target)
	}
	return w.Flush()
}

func (a *app) open(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: eventx open <path>")
	}
	path := args[0]

	a.restoreSession(ctx)

	decision := a.gate.Authorize(path)
	if decision.Allowed {
		fmt.Printf("%s: allowed\n", path)
		return nil
	}
	fmt.Printf("%s: redirect to %s\n", path, decision.Redirect)
	return nil
}

func (a *app) browse(ctx context.Context) error {
	a.restoreSession(ctx)

	var (
		events     []api.Event
		categories []api.Category
		venues     []api.Venue
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		events, err = a.client.Events(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		categories, err = a.client.Categories(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		venues, err = a.client.Venues(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "EVENT\tDATE\tVENUE\tPRICE\tSEATS LEFT\n")
	for _, e := range events {
		venue := ""
		if e.Venue != nil {
			venue = e.Venue.Name
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2f\t%d\n", e.Title, e.Date, venue, e.TicketPrice, e.AvailableSeats)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\n%d events, %d categories, %d venues\n", len(events), len(categories), len(venues))
	return nil
}

func (a *app) orders(ctx context.Context) error {
	a.restoreSession(ctx)

	if !a.store.Snapshot().Principal.Present() {
		return fmt.Errorf("not signed in; run 'eventx login'")
	}

	orders, err := a.client.UserOrders(ctx)
	if err != nil {
		return err
	}
	if len(orders) == 0 {
		fmt.Println("No orders yet.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "ORDER\tEVENT\tSEATS\tTOTAL\tSTATUS\n")
	for _, o := range orders {
		event := ""
		if o.Event != nil {
			event = o.Event.Title
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%.2f\t%s\n", o.ID, event, len(o.Seats), o.TotalAmount, o.Status)
	}
	return w.Flush()
}
