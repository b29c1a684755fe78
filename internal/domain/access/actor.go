package access

import (
	"context"

	"github.com/assistitk12/assistitk12/internal/domain/ticket"
	"github.com/assistitk12/assistitk12/internal/shared/constants"
	"github.com/assistitk12/assistitk12/internal/shared/errors"
)

// Actor is the authenticated user of a request with its resolved
// capabilities.
type Actor struct {
	UserID       uint
	RoleID       uint
	SiteID       uint
	Capabilities CapabilitySet
}

// Resolver loads the capability set granted to a role.
type Resolver interface {
	Capabilities(ctx context.Context, roleID uint) (CapabilitySet, error)
	// RolesWith returns the ids of roles granted c.
	RolesWith(ctx context.Context, c Capability) ([]uint, error)
}

func (a Actor) Can(c Capability) bool {
	return a.Capabilities.Has(c)
}

// Require returns a ForbiddenError unless the actor holds c.
func (a Actor) Require(c Capability) error {
	if !a.Can(c) {
		return errors.NewForbiddenError(constants.ErrMsgForbidden)
	}
	return nil
}

// CanViewTicket reports whether the actor may see t.
func (a Actor) CanViewTicket(t *ticket.Ticket) bool {
	switch {
	case a.Can(ViewAllSites):
		return true
	case a.Can(ViewSiteTickets) && t.SiteID() == a.SiteID:
		return true
	default:
		return t.IsCreator(a.UserID) || t.IsAssignee(a.UserID)
	}
}

// CanActOnTicket reports whether the actor may modify t.
func (a Actor) CanActOnTicket(t *ticket.Ticket) bool {
	if t.IsCreator(a.UserID) || t.IsAssignee(a.UserID) {
		return true
	}
	return a.Can(ActOnTickets) && a.CanViewTicket(t)
}

// CanDeleteAttachment reports whether the actor may remove att from t.
func (a Actor) CanDeleteAttachment(t *ticket.Ticket, att *ticket.Attachment) bool {
	if att.UploaderID() == a.UserID {
		return true
	}
	return a.CanActOnTicket(t)
}

// Scope is the visibility restriction applied to ticket queries.
type Scope struct {
	SiteID    *uint
	CreatorID *uint
}

// TicketScope narrows a requested site filter to what the actor may see.
// Actors without site-wide visibility only see their own tickets on their
// own site.
func (a Actor) TicketScope(requestedSite *uint) Scope {
	switch {
	case a.Can(ViewAllSites):
		return Scope{SiteID: requestedSite}
	case a.Can(ViewSiteTickets):
		site := a.SiteID
		return Scope{SiteID: &site}
	default:
		site, user := a.SiteID, a.UserID
		return Scope{SiteID: &site, CreatorID: &user}
	}
}

type actorKey struct{}

func WithActor(ctx context.Context, a Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, a)
}

func ActorFromContext(ctx context.Context) (Actor, bool) {
	a, ok := ctx.Value(actorKey{}).(Actor)
	return a, ok
}
