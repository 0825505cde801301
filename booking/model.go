package booking

import (
	"fmt"
	"strconv"
	"time"
)

// dateLayouts are the accepted conditions-date formats, tried in order.
var dateLayouts = []string{"20060102", "2006-1-2", "2006/1/2"}

const dateOutputLayout = "2006/01/02"

// NormalizeDate parses one of the accepted date formats and renders it as
// YYYY/MM/DD. ok is false when none of the layouts match.
func NormalizeDate(value string) (normalized string, ok bool) {
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, value); err == nil {
			return d.Format(dateOutputLayout), true
		}
	}
	return "", false
}

// TicketValue renders a passenger count as the ticket-amount form value,
// the decimal count followed by the category code ("2F" for two adults).
func TicketValue(c Category, count int) string {
	return fmt.Sprintf("%d%s", count, c.Code())
}

func resolveStation(field, value string) (int, error) {
	code, ok := StationMap[value]
	if !ok {
		n, err := strconv.Atoi(value)
		if err != nil {
			return 0, &ConfigurationError{Field: field, Reason: fmt.Sprintf("unknown station %q", value)}
		}
		code = n
	}
	if code < minStationCode || code > maxStationCode {
		return 0, &ConfigurationError{Field: field, Reason: fmt.Sprintf("station code %d outside %d..%d", code, minStationCode, maxStationCode)}
	}
	return code, nil
}

// BuildBookingModel turns trip conditions and the decoded page defaults
// into the complete BookingS1Form field map. It is a pure transform; the
// only non-error signal is a warning event when the conditions date fails
// to parse and the current date is used instead.
func BuildBookingModel(cond TripConditions, opts PageOptions, securityCode string) (map[string]string, []Event, error) {
	start, err := resolveStation("start_station", cond.StartStation)
	if err != nil {
		return nil, nil, err
	}
	dest, err := resolveStation("dest_station", cond.DestStation)
	if err != nil {
		return nil, nil, err
	}
	if !ValidTimeSlot(cond.TimeSlot) {
		return nil, nil, &ConfigurationError{Field: "thsr_time", Reason: fmt.Sprintf("unknown departure-time slot %q", cond.TimeSlot)}
	}

	var events []Event
	date, ok := NormalizeDate(cond.Date)
	if !ok {
		date = time.Now().Format(dateOutputLayout)
		events = append(events, Event{
			Kind:    EventWarning,
			Message: fmt.Sprintf("date %q not parseable, falling back to %s", cond.Date, date),
		})
	}

	fields := map[string]string{
		fieldStartStation: strconv.Itoa(start),
		fieldDestStation:  strconv.Itoa(dest),
		fieldSearchBy:     opts.SearchBy,
		fieldTripType:     opts.TripType,
		fieldOutboundDate: date,
		fieldOutboundTime: cond.TimeSlot,
		fieldSecurityCode: securityCode,
		fieldSeatPrefer:   opts.SeatPrefer,
		fieldFormMark:     "",
		fieldClassType:    "0",
	}
	for i, c := range Categories {
		fields[fmt.Sprintf(fieldTicketAmount, i)] = TicketValue(c, cond.Count(c))
	}
	return fields, events, nil
}
