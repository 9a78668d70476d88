package domain

// Actor is the authenticated identity a request runs as. Authentication
// itself happens upstream; the engine only consumes the result.
type Actor struct {
	UserID   string
	Operator bool
}

type edge struct {
	from ReservationStatus
	to   ReservationStatus
}

// legalEdges is the single decision point for status transitions.
// The value tells whether the owner of the reservation may take the edge
// without operator rights; operators may take every listed edge.
var legalEdges = map[edge]struct{ ownerAllowed bool }{
	{ReservationStatusPending, ReservationStatusConfirmed}:   {ownerAllowed: false},
	{ReservationStatusPending, ReservationStatusCancelled}:   {ownerAllowed: true},
	{ReservationStatusPending, ReservationStatusCompleted}:   {ownerAllowed: false},
	{ReservationStatusConfirmed, ReservationStatusCancelled}: {ownerAllowed: true},
	{ReservationStatusConfirmed, ReservationStatusCompleted}: {ownerAllowed: false},
}

// AuthorizeTransition checks both the legality of the edge from → to and
// the actor's right to take it for a reservation owned by ownerID.
// A request for an edge outside the table fails with ErrInvalidTransition
// even when to equals from; terminal states reject everything.
func AuthorizeTransition(actor Actor, ownerID string, from, to ReservationStatus) error {
	rule, ok := legalEdges[edge{from, to}]
	if !ok {
		return ErrInvalidTransition
	}
	if actor.Operator {
		return nil
	}
	if !rule.ownerAllowed || actor.UserID != ownerID {
		return ErrForbidden
	}
	return nil
}
