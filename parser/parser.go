package parser

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/transit-helpers/thsr-helper/booking"
)

// Selectors keyed to the booking pages. When the site markup drifts these
// are the first thing to re-verify.
const (
	selCaptchaImg  = "#BookingS1Form_homeCaptcha_passCode"
	selSeatPrefer  = "#BookingS1Form_seatCon_seatRadioGroup [selected=selected]"
	selTripType    = "#BookingS1Form_tripCon_typesoftrip [selected=selected]"
	selSearchBy    = "input[name=bookingMethod][checked]"
	selFeedbackErr = "span.feedbackPanelERROR"

	selTrainRadio = "input[name='TrainQueryDataViewPanel:TrainGroup']"
	selDiscounts  = "p.early-bird span, p.student span"

	selMemberRadio = "input[name='TicketMemberSystemInputPanel:TakerMemberSystemDataView:memberSystemRadioGroup'][checked]"

	selTicketID        = "p.pnr-code span"
	selPaymentDeadline = "p.payment-status"
	selTicketPrice     = "#setTrainTotalPriceValue"
	selTicketNumInfo   = "p.tickets-num span"
	selTicketDate      = "span.date span"
	selStartStation    = "p.departure-stn span"
	selDestStation     = "p.arrival-stn span"
	selDepartTime      = "#setTrainDeparture0"
	selArrivalTime     = "#setTrainArrival0"
	selTrainCode       = "#setTrainCode0"
)

// Decoder implements booking.PageDecoder with goquery.
type Decoder struct{}

var _ booking.PageDecoder = Decoder{}

// New returns a page decoder for the live booking site markup.
func New() Decoder { return Decoder{} }

func parse(html []byte) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return doc, nil
}

func attrOf(doc *goquery.Document, selector, attr, element string) (string, error) {
	sel := doc.Find(selector).First()
	if sel.Length() == 0 {
		return "", &booking.PageStructureError{Element: element}
	}
	v, ok := sel.Attr(attr)
	if !ok {
		return "", &booking.PageStructureError{Element: element}
	}
	return v, nil
}

func textOf(doc *goquery.Document, selector, element string) (string, error) {
	sel := doc.Find(selector).First()
	if sel.Length() == 0 {
		return "", &booking.PageStructureError{Element: element}
	}
	return strings.TrimSpace(sel.Text()), nil
}

// Options decodes the first booking page's server-offered defaults and the
// captcha image URL.
func (Decoder) Options(html []byte) (booking.PageOptions, error) {
	doc, err := parse(html)
	if err != nil {
		return booking.PageOptions{}, err
	}
	src, err := attrOf(doc, selCaptchaImg, "src", "captcha image")
	if err != nil {
		return booking.PageOptions{}, err
	}
	seat, err := attrOf(doc, selSeatPrefer, "value", "seat preference radio")
	if err != nil {
		return booking.PageOptions{}, err
	}
	trip, err := attrOf(doc, selTripType, "value", "trip type option")
	if err != nil {
		return booking.PageOptions{}, err
	}
	searchBy, err := attrOf(doc, selSearchBy, "value", "booking method radio")
	if err != nil {
		return booking.PageOptions{}, err
	}
	return booking.PageOptions{
		SeatPrefer: seat,
		TripType:   trip,
		SearchBy:   searchBy,
		CaptchaURL: booking.BaseURL + src,
	}, nil
}

// Trains decodes the candidate list from the train-selection page. Each
// radio input carries the train attributes; the discount label, possibly
// listing several concurrent discounts, comes from the enclosing label.
func (Decoder) Trains(html []byte) ([]booking.Train, error) {
	doc, err := parse(html)
	if err != nil {
		return nil, err
	}
	var trains []booking.Train
	doc.Find(selTrainRadio).Each(func(_ int, s *goquery.Selection) {
		var discounts []string
		s.Closest("label").Find(selDiscounts).Each(func(_ int, d *goquery.Selection) {
			if t := strings.TrimSpace(d.Text()); t != "" {
				discounts = append(discounts, t)
			}
		})
		trains = append(trains, booking.Train{
			ID:        s.AttrOr("querycode", ""),
			Depart:    s.AttrOr("querydeparture", ""),
			Arrive:    s.AttrOr("queryarrival", ""),
			Duration:  s.AttrOr("queryestimatedtime", ""),
			Discount:  strings.Join(discounts, " "),
			FormValue: s.AttrOr("value", ""),
		})
	})
	if len(trains) == 0 {
		return nil, &booking.PageStructureError{Element: "train radio group"}
	}
	return trains, nil
}

// MemberValue decodes the default membership-radio selection from the
// ticket-confirmation page.
func (Decoder) MemberValue(html []byte) (string, error) {
	doc, err := parse(html)
	if err != nil {
		return "", err
	}
	return attrOf(doc, selMemberRadio, "value", "member system radio")
}

// Ticket decodes the final receipt.
func (Decoder) Ticket(html []byte) (booking.Ticket, error) {
	doc, err := parse(html)
	if err != nil {
		return booking.Ticket{}, err
	}
	var t booking.Ticket
	for _, field := range []struct {
		dst      *string
		selector string
		element  string
	}{
		{&t.ID, selTicketID, "booking code"},
		{&t.PaymentDeadline, selPaymentDeadline, "payment deadline"},
		{&t.Price, selTicketPrice, "total price"},
		{&t.TicketNumInfo, selTicketNumInfo, "ticket count summary"},
		{&t.Date, selTicketDate, "travel date"},
		{&t.StartStation, selStartStation, "departure station"},
		{&t.DestStation, selDestStation, "arrival station"},
		{&t.DepartTime, selDepartTime, "departure time"},
		{&t.ArrivalTime, selArrivalTime, "arrival time"},
		{&t.TrainID, selTrainCode, "train code"},
	} {
		v, err := textOf(doc, field.selector, field.element)
		if err != nil {
			return booking.Ticket{}, err
		}
		*field.dst = v
	}
	return t, nil
}

// FeedbackErrors collects the page's validation feedback messages. An
// empty result means the server accepted the submission.
func (Decoder) FeedbackErrors(html []byte) []string {
	doc, err := parse(html)
	if err != nil {
		return nil
	}
	var msgs []string
	doc.Find(selFeedbackErr).Each(func(_ int, s *goquery.Selection) {
		if t := strings.TrimSpace(s.Text()); t != "" {
			msgs = append(msgs, t)
		}
	})
	return msgs
}
