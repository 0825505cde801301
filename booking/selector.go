package booking

import (
	"strconv"
	"strings"
)

func containsMarker(discount string) bool {
	return strings.Contains(discount, EarlyBirdMarker)
}

func eligibleType(t Train, req TrainRequirement) bool {
	switch req {
	case EarlyBirdOnly:
		return t.EarlyBird()
	case NormalOnly:
		return !t.EarlyBird()
	}
	return true
}

// departHour extracts the hour from a "HH:MM" departure display value.
func departHour(depart string) (int, bool) {
	h, _, ok := strings.Cut(depart, ":")
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(h)
	if err != nil {
		return 0, false
	}
	return n, true
}

// SelectTrain picks the booking candidate from the decoded train list.
//
// The list is scanned in document order, which the site presents
// chronologically; if that assumption is violated, selection follows
// encounter order. Trains failing the train-type requirement are filtered
// out first, then the first train departing within [startHour, endHour]
// (inclusive on both ends) wins. No other ranking is applied.
func SelectTrain(trains []Train, cond TripConditions) (Train, error) {
	for _, t := range trains {
		if !eligibleType(t, cond.Requirement) {
			continue
		}
		h, ok := departHour(t.Depart)
		if !ok {
			continue
		}
		if h >= cond.StartHour && h <= cond.EndHour {
			return t, nil
		}
	}
	return Train{}, &NoEligibleTrainError{StartHour: cond.StartHour, EndHour: cond.EndHour}
}
