// Package routes holds the single declarative table that decides both which
// roles may open which paths and which navigation entries each role sees.
// Keeping one table for both consumers is deliberate: the original client
// maintained independent role lists in its guards and its menus, and the two
// drifted. Here the menu can only offer what the gate would allow.
package routes

import (
	"fmt"
	"strings"

	"eventx/session"
)

// Workspace groups navigation entries by the audience they belong to. A
// signed-in user sees the public workspace plus their own; organizers and
// admins see only their workspace, which replaces the public menu outright.
type Workspace string

const (
	WorkspacePublic    Workspace = "public"
	WorkspaceUser      Workspace = "user"
	WorkspaceOrganizer Workspace = "organizer"
	WorkspaceAdmin     Workspace = "admin"
)

// Entry is one row of the route table.
//
// An entry with roles is an authorization rule: its path prefix is reachable
// only by those roles. An entry without roles is public and exists for its
// navigation metadata. NavLabel marks an entry as a menu item for its
// workspace; entries without a label gate silently.
type Entry struct {
	Path      string         `yaml:"path"`
	Roles     []session.Role `yaml:"roles,omitempty"`
	NavLabel  string         `yaml:"nav,omitempty"`
	Workspace Workspace      `yaml:"workspace,omitempty"`
}

// Protected reports whether the entry constrains access at all.
func (e Entry) Protected() bool { return len(e.Roles) > 0 }

func (e Entry) allows(role session.Role) bool {
	for _, r := range e.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// matches reports whether path falls under the entry's prefix, on path
// segment boundaries: "/admin" covers "/admin" and "/admin/users" but not
// "/administrator".
func (e Entry) matches(path string) bool {
	if e.Path == "/" {
		return true
	}
	return path == e.Path || strings.HasPrefix(path, e.Path+"/")
}

// Decision is the gate's answer for one (path, principal) pair.
type Decision struct {
	Allowed  bool
	Redirect string
}

// Redirect targets. An unauthenticated visitor is sent to login; a signed-in
// visitor with the wrong role is sent home, since re-authenticating would not
// change the answer.
const (
	LoginPath = "/login"
	HomePath  = "/"
)

func allow() Decision { return Decision{Allowed: true} }

func redirectTo(target string) Decision { return Decision{Redirect: target} }

// Table is an immutable, validated route table.
type Table struct {
	entries []Entry
}

// NewTable validates the entries and builds a table. Validation is strict so
// a malformed table fails at startup rather than admitting anyone at request
// time: paths must be rooted, roles must be known, every entry must either
// gate or label, a labelled protected entry must belong to a workspace whose
// role it actually admits, and a public entry may not claim a workspace that
// implies protection.
func NewTable(entries []Entry) (*Table, error) {
	for i, e := range entries {
		if e.Path == "" || !strings.HasPrefix(e.Path, "/") {
			return nil, fmt.Errorf("routes: entry %d: path %q must start with /", i, e.Path)
		}
		if !e.Protected() && e.NavLabel == "" {
			return nil, fmt.Errorf("routes: entry %d (%s): no roles and no nav label", i, e.Path)
		}
		for _, r := range e.Roles {
			if _, ok := session.ParseRole(string(r)); !ok {
				return nil, fmt.Errorf("routes: entry %d (%s): unknown role %q", i, e.Path, r)
			}
		}
		ws := e.Workspace
		if ws == "" {
			ws = WorkspacePublic
		}
		switch ws {
		case WorkspacePublic:
			if e.NavLabel != "" && e.Protected() {
				return nil, fmt.Errorf("routes: entry %d (%s): protected entry cannot sit in the public menu", i, e.Path)
			}
		case WorkspaceUser, WorkspaceOrganizer, WorkspaceAdmin:
			if !e.Protected() {
				return nil, fmt.Errorf("routes: entry %d (%s): workspace %s requires roles", i, e.Path, ws)
			}
			if e.NavLabel != "" && !e.allows(workspaceRole(ws)) {
				return nil, fmt.Errorf("routes: entry %d (%s): menu shows it to %s but roles deny it", i, e.Path, ws)
			}
		default:
			return nil, fmt.Errorf("routes: entry %d (%s): unknown workspace %q", i, e.Path, ws)
		}
	}

	out := make([]Entry, len(entries))
	copy(out, entries)
	return &Table{entries: out}, nil
}

// MustTable is NewTable for tables defined in code, where a validation error
// is a programming mistake.
func MustTable(entries []Entry) *Table {
	t, err := NewTable(entries)
	if err != nil {
		panic(err)
	}
	return t
}

// Entries returns a copy of the table rows, in declaration order.
func (t *Table) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Authorize decides whether the principal may open path. It is a pure
// function of its inputs: the deepest matching entry wins, an unmatched path
// is public, an absent principal is redirected to login, and a present
// principal whose role the entry does not admit is redirected home. A role
// outside the known set never passes a protected entry.
func (t *Table) Authorize(path string, p session.Principal) Decision {
	match := t.deepest(path)
	if match == nil || !match.Protected() {
		return allow()
	}
	if !p.Present() {
		return redirectTo(LoginPath)
	}
	if match.allows(p.Role) {
		return allow()
	}
	return redirectTo(HomePath)
}

func (t *Table) deepest(path string) *Entry {
	var best *Entry
	for i := range t.entries {
		e := &t.entries[i]
		if !e.matches(path) {
			continue
		}
		if best == nil || len(e.Path) > len(best.Path) {
			best = e
		}
	}
	return best
}

func workspaceRole(ws Workspace) session.Role {
	switch ws {
	case WorkspaceUser:
		return session.RoleUser
	case WorkspaceOrganizer:
		return session.RoleOrganizer
	case WorkspaceAdmin:
		return session.RoleAdmin
	default:
		return session.RoleGuest
	}
}
