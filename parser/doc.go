// Package parser decodes booking-site HTML into the typed views the
// pipeline consumes. It is the one concrete booking.PageDecoder; stages
// depend on the interface so tests can substitute fixture decoders.
package parser
