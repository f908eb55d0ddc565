// Package nav derives the navigation menu for the current principal. It owns
// no role knowledge of its own: every link comes from the route table's nav
// metadata, so the menu can never offer a path the gate would refuse.
package nav

import (
	"eventx/routes"
	"eventx/session"
)

// Link is one menu entry.
type Link struct {
	Target string
	Label  string
}

// Menu returns the ordered links the principal should see. It is a pure,
// total function: absent principals, guests, and unrecognized roles all fall
// back to the public menu; users see the public menu plus their own entries;
// organizers and admins see only their workspace, which replaces the public
// menu outright.
func Menu(table *routes.Table, p session.Principal) []Link {
	role := session.RoleGuest
	if p.Present() {
		role = p.Role
	}

	switch role {
	case session.RoleAdmin:
		return workspaceLinks(table, routes.WorkspaceAdmin)
	case session.RoleOrganizer:
		return workspaceLinks(table, routes.WorkspaceOrganizer)
	case session.RoleUser:
		return append(workspaceLinks(table, routes.WorkspacePublic),
			workspaceLinks(table, routes.WorkspaceUser)...)
	default:
		return workspaceLinks(table, routes.WorkspacePublic)
	}
}

func workspaceLinks(table *routes.Table, ws routes.Workspace) []Link {
	var out []Link
	for _, e := range table.Entries() {
		entryWS := e.Workspace
		if entryWS == "" {
			entryWS = routes.WorkspacePublic
		}
		if e.NavLabel == "" || entryWS != ws {
			continue
		}
		out = append(out, Link{Target: e.Path, Label: e.NavLabel})
	}
	return out
}
