// Command eventx is a terminal front end for the EventX ticketing
// marketplace. It drives the same client core a graphical shell would: the
// session store, the route gate, and the navigation derivation, all backed
// by the remote EventX API.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
	"github.com/spf13/pflag"

	"eventx/api"
	"eventx/routes"
	"eventx/session"
)

const defaultAPIURL = "http://localhost:4000"

func main() {
	var (
		apiURL     = pflag.String("api-url", "", "backend base URL (default $EVENTX_API_URL, then "+defaultAPIURL+")")
		routesPath = pflag.String("routes", "", "YAML route table overriding the built-in one")
		verbose    = pflag.BoolP("verbose", "v", false, "log backend requests")
	)
	pflag.Usage = usage
	pflag.Parse()

	args := pflag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}

	a, err := newApp(*apiURL, *routesPath, *verbose)
	fatal(err)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "login":
		err = a.login(ctx, rest)
	case "logout":
		err = a.logout(ctx)
	case "whoami":
		err = a.whoami(ctx)
	case "nav":
		err = a.nav(ctx)
	case "open":
		err = a.open(ctx, rest)
	case "browse":
		err = a.browse(ctx)
	case "orders":
		err = a.orders(ctx)
	case "help", "-h", "--help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "eventx: unknown command %q\n\n", cmd)
		usage()
		os.Exit(2)
	}
	fatal(err)
}

func usage() {
	fmt.Fprint(os.Stderr, `Usage: eventx [flags] <command>

Commands:
  login    Sign in and cache the session token
  logout   End the session and drop the cached token
  whoami   Show the current identity and role
  nav      Show the navigation menu for the current role
  open     Show the gate's decision for a path: eventx open /admin/users
  browse   List events, categories and venues
  orders   List your orders

Flags:
`)
	pflag.PrintDefaults()
}

func fatal(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "eventx: %v\n", err)
	os.Exit(1)
}

// app wires the client core together the way the browser shell did: one
// backend client, one session store, one gate over one route table.
type app struct {
	log    logr.Logger
	client *api.Client
	store  *session.Store
	table  *routes.Table
	gate   *routes.Gate
	cache  session.TokenCache
}

func newApp(apiURL, routesPath string, verbose bool) (*app, error) {
	base := strings.TrimSpace(apiURL)
	if base == "" {
		base = strings.TrimSpace(os.Getenv("EVENTX_API_URL"))
	}
	if base == "" {
		base = defaultAPIURL
	}

	logger := logr.Discard()
	if verbose {
		std := log.New(os.Stderr, "", log.Ltime)
		logger = funcr.New(func(prefix, args string) {
			std.Println(prefix, args)
		}, funcr.Options{})
	}

	a := &app{log: logger}

	client, err := api.NewClient(api.Config{
		BaseURL: base,
		Logger:  logger,
		// Any 401/403 from any call drops the principal. Navigation stays
		// the gate's job, so this cannot loop through the login page.
		OnUnauthorized: func() {
			if a.store != nil {
				a.store.ForceLogout()
			}
		},
	})
	if err != nil {
		return nil, err
	}
	a.client = client
	a.store = session.NewStore(api.NewSessionGateway(client), logger)

	a.table = routes.DefaultTable()
	if routesPath != "" {
		t, err := routes.LoadFile(routesPath)
		if err != nil {
			return nil, err
		}
		a.table = t
	}
	a.gate = routes.NewGate(a.table, a.store)

	cachePath, err := session.DefaultTokenCachePath()
	if err != nil {
		return nil, err
	}
	a.cache = session.TokenCache{Path: cachePath}

	return a, nil
}

// restoreSession seeds the store from the cached token, then confirms with
// the backend. An unreachable backend leaves the session logged out; the
// caller decides whether that is worth mentioning.
func (a *app) restoreSession(ctx context.Context) {
	if token, err := a.cache.Load(); err == nil {
		claims, err := session.ParseToken(token)
		if err == nil && !claims.Expired(time.Now()) {
			a.client.SetToken(token)
			a.store.Seed(claims.Principal())
		}
	}
	if err := a.store.Initialize(ctx); err != nil {
		a.log.Error(err, "session initialization failed")
	}
}
