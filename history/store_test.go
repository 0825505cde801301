package history

import (
	"testing"
	"time"

	"github.com/transit-helpers/thsr-helper/booking"
)

func sampleTicket() booking.Ticket {
	return booking.Ticket{
		ID:              "07140297",
		PaymentDeadline: "2026/09/10 23:59",
		Price:           "1,490",
		TicketNumInfo:   "全票2張",
		Date:            "2026/09/15",
		StartStation:    "台中",
		DestStation:     "台北",
		DepartTime:      "09:10",
		ArrivalTime:     "10:05",
		TrainID:         "0633",
	}
}

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSaveAndList(t *testing.T) {
	s := openStore(t)
	rec := FromTicket(sampleTicket(), "A123456789")
	inserted, err := s.Save(rec)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !inserted {
		t.Fatal("first save should insert")
	}

	travel, _ := time.Parse("2006/01/02", "2026/09/15")
	records, err := s.List(travel.AddDate(0, 0, -1).Unix(), travel.AddDate(0, 0, 1).Unix())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("listed %d records, want 1", len(records))
	}
	if records[0] != rec {
		t.Errorf("listed %+v, want %+v", records[0], rec)
	}
}

func TestSaveSuppressesDuplicates(t *testing.T) {
	s := openStore(t)
	rec := FromTicket(sampleTicket(), "A123456789")
	if _, err := s.Save(rec); err != nil {
		t.Fatal(err)
	}
	inserted, err := s.Save(rec)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if inserted {
		t.Error("identical booking should not insert twice")
	}

	// A differing compared field is a new booking, not a duplicate.
	other := rec
	other.ID = "07140298"
	inserted, err = s.Save(other)
	if err != nil {
		t.Fatal(err)
	}
	if !inserted {
		t.Error("changed booking code should insert")
	}
}

func TestListRange(t *testing.T) {
	s := openStore(t)
	dates := []string{"2026/09/01", "2026/09/15", "2026/09/30"}
	for i, d := range dates {
		ticket := sampleTicket()
		ticket.Date = d
		ticket.ID = ticket.ID + string(rune('a'+i))
		if _, err := s.Save(FromTicket(ticket, "A123456789")); err != nil {
			t.Fatal(err)
		}
	}
	from, _ := time.Parse("2006/01/02", "2026/09/10")
	to, _ := time.Parse("2006/01/02", "2026/09/20")
	records, err := s.List(from.Unix(), to.Unix())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(records) != 1 || records[0].Date != "2026/09/15" {
		t.Errorf("range query returned %+v, want only the 09/15 booking", records)
	}
}
