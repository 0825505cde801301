package booking

import (
	"fmt"
	"strings"
	"testing"
	"time"
)

func testConditions() TripConditions {
	return TripConditions{
		StartStation: "Taichung",
		DestStation:  "Taipei",
		Date:         "2026-9-15",
		TimeSlot:     "930A",
		StartHour:    8,
		EndHour:      12,
		Tickets:      map[Category]int{Adult: 2},
	}
}

func testOptions() PageOptions {
	return PageOptions{
		SeatPrefer: "radio17",
		TripType:   "0",
		SearchBy:   "radio31",
		CaptchaURL: BaseURL + "/captcha.png",
	}
}

func TestTicketValue(t *testing.T) {
	codes := map[Category]string{
		Adult:    "F",
		Child:    "H",
		Disabled: "W",
		Elder:    "E",
		College:  "P",
	}
	for c, code := range codes {
		for count := 0; count <= 9; count++ {
			got := TicketValue(c, count)
			want := fmt.Sprintf("%d%s", count, code)
			if got != want {
				t.Errorf("TicketValue(%s, %d) = %q, want %q", c, count, got, want)
			}
		}
	}
}

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{"compact", "20260915", "2026/09/15", true},
		{"dashed short", "2026-9-5", "2026/09/05", true},
		{"dashed padded", "2026-09-15", "2026/09/15", true},
		{"slashed short", "2026/9/5", "2026/09/05", true},
		{"slashed padded", "2026/09/15", "2026/09/15", true},
		{"garbage", "next tuesday", "", false},
		{"empty", "", "", false},
		{"impossible date", "2026-13-40", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NormalizeDate(tt.input)
			if ok != tt.ok {
				t.Fatalf("NormalizeDate(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			}
			if got != tt.want {
				t.Errorf("NormalizeDate(%q) = %q, want %q", tt.input, got, tt.want)
			}
			if !tt.ok {
				return
			}
			// Normalized output must parse back to the same calendar date.
			d, err := time.Parse("2006/01/02", got)
			if err != nil {
				t.Fatalf("normalized %q does not parse: %v", got, err)
			}
			orig, _ := NormalizeDate(d.Format("20060102"))
			if orig != got {
				t.Errorf("round trip changed date: %q -> %q", got, orig)
			}
		})
	}
}

func TestBuildBookingModelFields(t *testing.T) {
	cond := testConditions()
	cond.Tickets = map[Category]int{Adult: 2, Elder: 1}
	fields, warnings, err := BuildBookingModel(cond, testOptions(), "1234")
	if err != nil {
		t.Fatalf("BuildBookingModel: %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	want := map[string]string{
		"selectStartStation":              "7",
		"selectDestinationStation":        "2",
		"toTimeTable":                     "930A",
		"toTimeInputField":                "2026/09/15",
		"homeCaptcha:securityCode":        "1234",
		"seatCon:seatRadioGroup":          "radio17",
		"tripCon:typesoftrip":             "0",
		"bookingMethod":                   "radio31",
		"trainCon:trainRadioGroup":        "0",
		"BookingS1Form:hf:0":              "",
		"ticketPanel:rows:0:ticketAmount": "2F",
		"ticketPanel:rows:1:ticketAmount": "0H",
		"ticketPanel:rows:2:ticketAmount": "0W",
		"ticketPanel:rows:3:ticketAmount": "1E",
		"ticketPanel:rows:4:ticketAmount": "0P",
	}
	for k, v := range want {
		if fields[k] != v {
			t.Errorf("fields[%q] = %q, want %q", k, fields[k], v)
		}
	}
}

func TestBuildBookingModelStationByNumber(t *testing.T) {
	cond := testConditions()
	cond.StartStation = "1"
	cond.DestStation = "12"
	fields, _, err := BuildBookingModel(cond, testOptions(), "1234")
	if err != nil {
		t.Fatalf("BuildBookingModel: %v", err)
	}
	if fields["selectStartStation"] != "1" || fields["selectDestinationStation"] != "12" {
		t.Errorf("numeric stations not preserved: %q -> %q",
			fields["selectStartStation"], fields["selectDestinationStation"])
	}
}

func TestBuildBookingModelErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*TripConditions)
		field  string
	}{
		{"unknown station name", func(c *TripConditions) { c.StartStation = "Kaohsiung" }, "start_station"},
		{"station code too high", func(c *TripConditions) { c.DestStation = "13" }, "dest_station"},
		{"station code too low", func(c *TripConditions) { c.StartStation = "0" }, "start_station"},
		{"unknown time slot", func(c *TripConditions) { c.TimeSlot = "945A" }, "thsr_time"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cond := testConditions()
			tt.mutate(&cond)
			_, _, err := BuildBookingModel(cond, testOptions(), "1234")
			cfgErr, ok := err.(*ConfigurationError)
			if !ok {
				t.Fatalf("expected ConfigurationError, got %v", err)
			}
			if cfgErr.Field != tt.field {
				t.Errorf("error field = %q, want %q", cfgErr.Field, tt.field)
			}
		})
	}
}

func TestBuildBookingModelDateFallback(t *testing.T) {
	cond := testConditions()
	cond.Date = "not-a-date"
	fields, warnings, err := BuildBookingModel(cond, testOptions(), "1234")
	if err != nil {
		t.Fatalf("BuildBookingModel: %v", err)
	}
	if len(warnings) != 1 || warnings[0].Kind != EventWarning {
		t.Fatalf("expected one warning event, got %v", warnings)
	}
	today := time.Now().Format("2006/01/02")
	if fields["toTimeInputField"] != today {
		t.Errorf("fallback date = %q, want %q", fields["toTimeInputField"], today)
	}
	if !strings.Contains(warnings[0].Message, "not-a-date") {
		t.Errorf("warning should name the bad input, got %q", warnings[0].Message)
	}
}
