package routes

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"eventx/session"
)

func TestDefaultTable(t *testing.T) {
	table := DefaultTable()

	admin := session.Principal{ID: "u", Role: session.RoleAdmin}
	organizer := session.Principal{ID: "u", Role: session.RoleOrganizer}
	user := session.Principal{ID: "u", Role: session.RoleUser}
	absent := session.Principal{}

	cases := []struct {
		path      string
		principal session.Principal
		want      Decision
	}{
		{"/admin/users", absent, Decision{Redirect: LoginPath}},
		{"/admin/users", organizer, Decision{Redirect: HomePath}},
		{"/admin/users", admin, Decision{Allowed: true}},
		{"/organizer/venues", organizer, Decision{Allowed: true}},
		{"/organizer", user, Decision{Redirect: HomePath}},
		{"/my-orders", user, Decision{Allowed: true}},
		{"/my-orders", absent, Decision{Redirect: LoginPath}},
		{"/events", absent, Decision{Allowed: true}},
		{"/login", absent, Decision{Allowed: true}},
		{"/seat-selection", absent, Decision{Allowed: true}},
	}
	for _, tc := range cases {
		if got := table.Authorize(tc.path, tc.principal); got != tc.want {
			t.Fatalf("authorize(%q, %s): got %+v want %+v", tc.path, tc.principal.Role, got, tc.want)
		}
	}
}

// Every link a menu shows must be a path the gate allows for every role that
// sees it. The table is the single source of truth for both, so drift between
// menu and gate is a table bug this test pins down.
func TestDefaultTable_MenuNeverOutrunsGate(t *testing.T) {
	table := DefaultTable()

	for _, e := range table.Entries() {
		if e.NavLabel == "" {
			continue
		}
		if !e.Protected() {
			if d := table.Authorize(e.Path, session.Principal{}); !d.Allowed {
				t.Fatalf("public menu entry %s is not publicly reachable: %+v", e.Path, d)
			}
			continue
		}
		for _, role := range e.Roles {
			p := session.Principal{ID: "u", Role: role}
			if d := table.Authorize(e.Path, p); !d.Allowed {
				t.Fatalf("menu entry %s is shown to %s but gated away: %+v", e.Path, role, d)
			}
		}
	}
}

func TestLoad(t *testing.T) {
	const doc = `
routes:
  - path: /
    nav: Home
  - path: /staff
    roles: [admin]
    nav: Staff
    workspace: admin
`
	table, err := Load(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	admin := session.Principal{ID: "u", Role: session.RoleAdmin}
	if d := table.Authorize("/staff/tools", admin); !d.Allowed {
		t.Fatalf("expected admin allowed on /staff/tools, got %+v", d)
	}
	if d := table.Authorize("/staff", session.Principal{}); d.Redirect != LoginPath {
		t.Fatalf("expected login redirect, got %+v", d)
	}
}

func TestLoad_Rejects(t *testing.T) {
	cases := []struct {
		name string
		doc  string
	}{
		{"empty document", `routes: []`},
		{"unknown field", "routes:\n  - path: /x\n    role: [admin]\n"},
		{"invalid entry", "routes:\n  - path: /x\n"},
		{"not yaml", `{{`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Load(strings.NewReader(tc.doc)); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "routes.yaml")
	doc := "routes:\n  - path: /vip\n    roles: [user]\n"
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatalf("write table: %v", err)
	}

	table, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load file: %v", err)
	}
	if d := table.Authorize("/vip", session.Principal{ID: "u", Role: session.RoleUser}); !d.Allowed {
		t.Fatalf("expected user allowed on /vip, got %+v", d)
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
