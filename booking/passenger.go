package booking

import (
	"fmt"
	"strings"
)

// idRequired reports whether a category's passengers must submit verified
// ID numbers. Disabled and elder fares always do; adult fares do only on
// an early-bird train.
func idRequired(c Category, earlyBird bool) bool {
	switch c {
	case Disabled, Elder:
		return true
	case Adult:
		return earlyBird
	}
	return false
}

func splitIDs(list string) []string {
	var ids []string
	for _, id := range strings.Split(list, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

// AssignPassengerIDs builds the passenger-identity fields of the ticket
// form. Categories are visited in the fixed order; the slot index advances
// once per category with a non-zero count, matching the server's
// per-category slot addressing. An ID-required category must supply exactly
// one ID per passenger or the whole assignment fails and nothing is
// submitted. Returns a fresh field map; inputs are not mutated.
func AssignPassengerIDs(cond TripConditions, earlyBird bool) (map[string]string, error) {
	fields := make(map[string]string)
	slot := passengerSlotBase
	for _, c := range Categories {
		count := cond.Count(c)
		if count == 0 {
			continue
		}
		var ids []string
		if idRequired(c, earlyBird) {
			ids = splitIDs(cond.IDs[c])
			if len(ids) != count {
				return nil, &PassengerIDMismatchError{Category: c, Want: count, Got: len(ids)}
			}
		}
		for i := 0; i < count; i++ {
			id := ""
			if ids != nil {
				id = ids[i]
			}
			fields[fmt.Sprintf(fieldPassengerChoice, slot)] = "0"
			fields[fmt.Sprintf(fieldPassengerID, slot)] = id
		}
		slot++
	}
	return fields, nil
}
