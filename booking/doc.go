// Package booking implements the THSR reservation pipeline.
//
// A booking run is three dependent form submissions against the ticketing
// site: the trip-conditions form, the train-selection form, and the
// passenger/ticket confirmation form. Each stage decodes the previous
// stage's HTML response into structured fields before building the next
// submission. The Flow type sequences the stages; page decoding, HTTP
// transport, and captcha solving are supplied through the PageDecoder,
// Client, and Solver interfaces.
package booking
