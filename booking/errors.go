package booking

import (
	"fmt"
	"strings"
)

// ConfigurationError reports caller input that cannot be turned into a
// valid form submission. Not retryable.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration: %s: %s", e.Field, e.Reason)
}

// PageStructureError reports a page missing an element the decoder
// expects, meaning the site markup has drifted from the decoder contract.
type PageStructureError struct {
	Element string
}

func (e *PageStructureError) Error() string {
	return fmt.Sprintf("page structure: missing %s", e.Element)
}

// NoEligibleTrainError reports that no train in the decoded list satisfied
// the train-type requirement and time window.
type NoEligibleTrainError struct {
	StartHour int
	EndHour   int
}

func (e *NoEligibleTrainError) Error() string {
	return fmt.Sprintf("no eligible train between %02d:00 and %02d:00", e.StartHour, e.EndHour)
}

// PassengerIDMismatchError reports an ID-required category whose supplied
// ID list does not match its passenger count.
type PassengerIDMismatchError struct {
	Category Category
	Want     int
	Got      int
}

func (e *PassengerIDMismatchError) Error() string {
	return fmt.Sprintf("passenger ids: %s requires %d ids, got %d", e.Category, e.Want, e.Got)
}

// ServerValidationError carries the feedback messages the site returned
// for a rejected submission, verbatim.
type ServerValidationError struct {
	Stage    Stage
	Messages []string
}

func (e *ServerValidationError) Error() string {
	return fmt.Sprintf("server rejected %s: %s", e.Stage, strings.Join(e.Messages, "; "))
}
