package booking

import (
	"context"
	"fmt"
)

// Stage is the orchestrator's position in the pipeline. Failed is
// absorbing; a run never recovers mid-pipeline.
type Stage int

const (
	StageInit Stage = iota
	StageTrainSelect
	StageTicketConfirm
	StageDone
	StageFailed
)

func (s Stage) String() string {
	switch s {
	case StageInit:
		return "init"
	case StageTrainSelect:
		return "train-select"
	case StageTicketConfirm:
		return "ticket-confirm"
	case StageDone:
		return "done"
	case StageFailed:
		return "failed"
	}
	return "unknown"
}

// Flow runs one booking attempt: three sequential form submissions, each
// stage decoding the previous response before building the next. It holds
// no state beyond the artifacts the stages hand to each other, so retrying
// means running a fresh Flow with a fresh transport session.
type Flow struct {
	client  Client
	decoder PageDecoder
	solver  Solver
	cond    TripConditions
	user    UserIdentity

	stage  Stage
	events []Event
}

// NewFlow wires a booking attempt from its collaborators.
func NewFlow(client Client, decoder PageDecoder, solver Solver, cond TripConditions, user UserIdentity) *Flow {
	return &Flow{
		client:  client,
		decoder: decoder,
		solver:  solver,
		cond:    cond,
		user:    user,
		stage:   StageInit,
	}
}

// Stage returns the flow's current (or terminal) stage.
func (f *Flow) Stage() Stage { return f.stage }

// Events returns the structured stage results collected so far.
// Presentation is the caller's concern.
func (f *Flow) Events() []Event { return f.events }

func (f *Flow) fail(kind EventKind, err error) error {
	f.stage = StageFailed
	f.events = append(f.events, Event{Kind: kind, Message: err.Error()})
	return err
}

// checkResponse decodes server-reported validation errors from a
// submission response. All messages from one response surface together.
func (f *Flow) checkResponse(stage Stage, html []byte) error {
	msgs := f.decoder.FeedbackErrors(html)
	if len(msgs) == 0 {
		return nil
	}
	err := &ServerValidationError{Stage: stage, Messages: msgs}
	f.stage = StageFailed
	for _, m := range msgs {
		f.events = append(f.events, Event{Kind: EventError, Message: m})
	}
	return err
}

// Run executes the attempt and returns the decoded receipt on success.
// Every stage blocks on its HTTP call; cancellation takes effect between
// calls via ctx.
func (f *Flow) Run(ctx context.Context) (Ticket, error) {
	trainHTML, err := f.runInit(ctx)
	if err != nil {
		return Ticket{}, err
	}

	f.stage = StageTrainSelect
	ticketHTML, train, err := f.runTrainSelect(ctx, trainHTML)
	if err != nil {
		return Ticket{}, err
	}

	f.stage = StageTicketConfirm
	receiptHTML, err := f.runTicketConfirm(ctx, ticketHTML, train)
	if err != nil {
		return Ticket{}, err
	}

	ticket, err := f.decoder.Ticket(receiptHTML)
	if err != nil {
		return Ticket{}, f.fail(EventError, err)
	}
	f.stage = StageDone
	f.events = append(f.events, Event{
		Kind:    EventInfo,
		Message: fmt.Sprintf("booked train %s on %s, code %s", ticket.TrainID, ticket.Date, ticket.ID),
	})
	return ticket, nil
}

// runInit fetches the booking page, solves the captcha, and submits the
// trip-conditions form. Returns the train-list page.
func (f *Flow) runInit(ctx context.Context) ([]byte, error) {
	page, err := f.client.BookingPage(ctx)
	if err != nil {
		return nil, f.fail(EventError, fmt.Errorf("booking page: %w", err))
	}
	opts, err := f.decoder.Options(page)
	if err != nil {
		return nil, f.fail(EventError, err)
	}
	img, err := f.client.Image(ctx, opts.CaptchaURL)
	if err != nil {
		return nil, f.fail(EventError, fmt.Errorf("captcha image: %w", err))
	}
	code, err := f.solver.Solve(img)
	if err != nil {
		return nil, f.fail(EventError, fmt.Errorf("captcha: %w", err))
	}
	fields, warnings, err := BuildBookingModel(f.cond, opts, code)
	f.events = append(f.events, warnings...)
	if err != nil {
		return nil, f.fail(EventError, err)
	}
	resp, err := f.client.Submit(ctx, BookingForm, fields)
	if err != nil {
		return nil, f.fail(EventError, fmt.Errorf("submit %s: %w", BookingForm, err))
	}
	if err := f.checkResponse(StageInit, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// runTrainSelect decodes the train list, selects by policy, and submits
// the selection. Returns the ticket page and the chosen train, whose
// discount label drives identity requirements downstream.
func (f *Flow) runTrainSelect(ctx context.Context, html []byte) ([]byte, Train, error) {
	trains, err := f.decoder.Trains(html)
	if err != nil {
		return nil, Train{}, f.fail(EventError, err)
	}
	train, err := SelectTrain(trains, f.cond)
	if err != nil {
		// Policy found no match. Terminal for the attempt but reported as
		// a warning, not escalated like a server rejection.
		return nil, Train{}, f.fail(EventWarning, err)
	}
	f.events = append(f.events, Event{
		Kind:    EventInfo,
		Message: fmt.Sprintf("selected train %s departing %s", train.ID, train.Depart),
	})
	resp, err := f.client.Submit(ctx, TrainForm, map[string]string{
		fieldTrainGroup:    train.FormValue,
		fieldTrainFormMark: "",
	})
	if err != nil {
		return nil, Train{}, f.fail(EventError, fmt.Errorf("submit %s: %w", TrainForm, err))
	}
	if err := f.checkResponse(StageTrainSelect, resp); err != nil {
		return nil, Train{}, err
	}
	return resp, train, nil
}

// runTicketConfirm merges the member-radio default, the user identity, and
// the assigned passenger IDs, then submits the confirmation form. A
// passenger-ID mismatch aborts before any HTTP call.
func (f *Flow) runTicketConfirm(ctx context.Context, html []byte, train Train) ([]byte, error) {
	member, err := f.decoder.MemberValue(html)
	if err != nil {
		return nil, f.fail(EventError, err)
	}
	passengers, err := AssignPassengerIDs(f.cond, train.EarlyBird())
	if err != nil {
		return nil, f.fail(EventError, err)
	}
	fields := map[string]string{
		fieldTicketFormMark: "",
		fieldDiffOver:       "1",
		fieldIDInputRadio:   "0",
		fieldAgree:          "on",
		fieldIsGoBack:       "",
		fieldBackHome:       "",
		fieldTgoError:       "1",
		fieldMemberRadio:    member,
		fieldPersonalID:     f.user.PersonalID,
		fieldPhone:          f.user.Phone,
	}
	if f.user.Email != "" {
		fields[fieldEmail] = f.user.Email
	}
	for k, v := range passengers {
		fields[k] = v
	}
	resp, err := f.client.Submit(ctx, TicketForm, fields)
	if err != nil {
		return nil, f.fail(EventError, fmt.Errorf("submit %s: %w", TicketForm, err))
	}
	if err := f.checkResponse(StageTicketConfirm, resp); err != nil {
		return nil, err
	}
	return resp, nil
}
