package booking

import "context"

// TripConditions are the caller-supplied parameters of one booking run.
type TripConditions struct {
	StartStation string
	DestStation  string
	Date         string
	TimeSlot     string
	StartHour    int
	EndHour      int
	Tickets      map[Category]int
	IDs          map[Category]string // comma-separated per category
	Requirement  TrainRequirement
}

// Count returns the passenger count for a category, zero when unset.
func (t TripConditions) Count(c Category) int { return t.Tickets[c] }

// TotalTickets returns the passenger count across all categories.
func (t TripConditions) TotalTickets() int {
	n := 0
	for _, c := range Categories {
		n += t.Tickets[c]
	}
	return n
}

// UserIdentity identifies the person placing the booking.
type UserIdentity struct {
	PersonalID string
	Phone      string
	Email      string
}

// PageOptions is the decoded snapshot of server-offered defaults on the
// first booking page. Valid only for the response it was decoded from.
type PageOptions struct {
	SeatPrefer string
	TripType   string
	SearchBy   string
	CaptchaURL string
}

// Train is one candidate from the decoded train list. Discount carries the
// page's free-text discount label, empty when the train has none. FormValue
// is the opaque radio token submitted to select the train.
type Train struct {
	ID        string
	Depart    string
	Arrive    string
	Duration  string
	Discount  string
	FormValue string
}

// EarlyBird reports whether the train's discount label carries the
// early-bird marker. The label is authoritative for identity-verification
// requirements once the train is selected.
func (t Train) EarlyBird() bool { return containsMarker(t.Discount) }

// Ticket is the decoded receipt of a completed booking.
type Ticket struct {
	ID              string
	PaymentDeadline string
	Price           string
	TicketNumInfo   string
	Date            string
	StartStation    string
	DestStation     string
	DepartTime      string
	ArrivalTime     string
	TrainID         string
}

// EventKind classifies a stage event.
type EventKind int

const (
	EventInfo EventKind = iota
	EventWarning
	EventError
)

func (k EventKind) String() string {
	switch k {
	case EventWarning:
		return "warning"
	case EventError:
		return "error"
	}
	return "info"
}

// Event is a structured stage result left to the caller to present.
type Event struct {
	Kind    EventKind
	Message string
}

// PageDecoder converts raw booking-site HTML into typed views, one method
// per page type. Implementations report PageStructureError when an expected
// element is absent.
type PageDecoder interface {
	Options(html []byte) (PageOptions, error)
	Trains(html []byte) ([]Train, error)
	MemberValue(html []byte) (string, error)
	Ticket(html []byte) (Ticket, error)
	FeedbackErrors(html []byte) []string
}

// Client performs the pipeline's network calls and owns session continuity.
type Client interface {
	BookingPage(ctx context.Context) ([]byte, error)
	Image(ctx context.Context, url string) ([]byte, error)
	Submit(ctx context.Context, form Form, fields map[string]string) ([]byte, error)
}

// Solver turns a captcha image into its code.
type Solver interface {
	Solve(img []byte) (string, error)
}
