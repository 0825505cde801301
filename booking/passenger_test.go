package booking

import (
	"errors"
	"fmt"
	"testing"
)

func TestAssignPassengerIDsRequiredCategories(t *testing.T) {
	tests := []struct {
		name      string
		category  Category
		earlyBird bool
	}{
		{"disabled", Disabled, false},
		{"elder", Elder, false},
		{"adult on early bird", Adult, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cond := TripConditions{
				Tickets: map[Category]int{tt.category: 1},
				IDs:     map[Category]string{tt.category: "A123456789"},
			}
			fields, err := AssignPassengerIDs(cond, tt.earlyBird)
			if err != nil {
				t.Fatalf("AssignPassengerIDs: %v", err)
			}
			idKey := fmt.Sprintf("TicketPassengerInfoInputPanel:passengerDataView:passengerDataView%d:passengerDataIdNumber", 2)
			if fields[idKey] != "A123456789" {
				t.Errorf("id slot = %q, want A123456789", fields[idKey])
			}
		})
	}
}

func TestAssignPassengerIDsMismatch(t *testing.T) {
	tests := []struct {
		name      string
		category  Category
		count     int
		ids       string
		earlyBird bool
		got       int
	}{
		{"elder no ids", Elder, 1, "", false, 0},
		{"disabled too few", Disabled, 2, "A123456789", false, 1},
		{"elder too many", Elder, 1, "A123456789,B123456789", false, 2},
		{"adult early bird no ids", Adult, 2, "", true, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cond := TripConditions{
				Tickets: map[Category]int{tt.category: tt.count},
				IDs:     map[Category]string{tt.category: tt.ids},
			}
			_, err := AssignPassengerIDs(cond, tt.earlyBird)
			var mismatch *PassengerIDMismatchError
			if !errors.As(err, &mismatch) {
				t.Fatalf("expected PassengerIDMismatchError, got %v", err)
			}
			if mismatch.Category != tt.category {
				t.Errorf("error names %s, want %s", mismatch.Category, tt.category)
			}
			if mismatch.Want != tt.count || mismatch.Got != tt.got {
				t.Errorf("error counts want=%d got=%d, expected want=%d got=%d",
					mismatch.Want, mismatch.Got, tt.count, tt.got)
			}
		})
	}
}

func TestAssignPassengerIDsZeroCountIgnored(t *testing.T) {
	// A zero-count category contributes nothing, even when ID-required
	// and even with a bogus ID list supplied.
	cond := TripConditions{
		Tickets: map[Category]int{Adult: 1, Elder: 0},
		IDs:     map[Category]string{Elder: "A123456789,B123456789"},
	}
	fields, err := AssignPassengerIDs(cond, false)
	if err != nil {
		t.Fatalf("AssignPassengerIDs: %v", err)
	}
	if len(fields) != 2 {
		t.Errorf("expected one choice + one id field for the adult slot, got %d fields: %v", len(fields), fields)
	}
}

func TestAssignPassengerIDsNotRequiredEmptySlots(t *testing.T) {
	cond := TripConditions{
		Tickets: map[Category]int{Adult: 2, Child: 1},
	}
	fields, err := AssignPassengerIDs(cond, false)
	if err != nil {
		t.Fatalf("AssignPassengerIDs: %v", err)
	}
	for k, v := range fields {
		if v != "0" && v != "" {
			t.Errorf("non-required category produced id value %q at %q", v, k)
		}
	}
}

func TestAssignPassengerIDsSlotPerCategory(t *testing.T) {
	// The slot index advances per category with a non-zero count, not per
	// passenger: adult (slot 2), elder (slot 3); zero-count child and
	// disabled claim no slot.
	cond := TripConditions{
		Tickets: map[Category]int{Adult: 2, Elder: 1},
		IDs:     map[Category]string{Elder: "C123456789"},
	}
	fields, err := AssignPassengerIDs(cond, false)
	if err != nil {
		t.Fatalf("AssignPassengerIDs: %v", err)
	}
	elderKey := "TicketPassengerInfoInputPanel:passengerDataView:passengerDataView3:passengerDataIdNumber"
	if fields[elderKey] != "C123456789" {
		t.Errorf("elder id at slot 3 = %q, want C123456789", fields[elderKey])
	}
	if _, ok := fields["TicketPassengerInfoInputPanel:passengerDataView:passengerDataView4:passengerDataIdNumber"]; ok {
		t.Error("slot 4 should not exist with two occupied categories")
	}
}

func TestAssignPassengerIDsWhitespaceAndEmptyEntries(t *testing.T) {
	cond := TripConditions{
		Tickets: map[Category]int{Elder: 2},
		IDs:     map[Category]string{Elder: " A123456789 , ,B123456789"},
	}
	fields, err := AssignPassengerIDs(cond, false)
	if err != nil {
		t.Fatalf("blank entries should be dropped before counting: %v", err)
	}
	if len(fields) != 2 {
		t.Errorf("expected 2 fields, got %v", fields)
	}
}
