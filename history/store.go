// Package history keeps a local record of completed bookings in an
// embedded badger store. Writes are best-effort appends: a record whose
// fingerprint matches an existing one is silently skipped, so re-running
// the CLI after a booking never duplicates an entry.
package history

import (
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"time"

	badger "github.com/dgraph-io/badger/v4"

	"github.com/transit-helpers/thsr-helper/booking"
)

// Record is one persisted booking.
type Record struct {
	PersonalID      string `json:"personal_id"`
	Date            string `json:"date"`
	DateTS          int64  `json:"date_ts"`
	ID              string `json:"id"`
	PaymentDeadline string `json:"payment_deadline"`
	Price           string `json:"price"`
	TicketNumInfo   string `json:"ticket_num_info"`
	StartStation    string `json:"start_station"`
	DestStation     string `json:"dest_station"`
	DepartTime      string `json:"depart_time"`
	ArrivalTime     string `json:"arrival_time"`
	TrainID         string `json:"train_id"`
}

// FromTicket builds the record for a decoded receipt.
func FromTicket(t booking.Ticket, personalID string) Record {
	var ts int64
	if d, err := time.Parse("2006/01/02", t.Date); err == nil {
		ts = d.Unix()
	}
	return Record{
		PersonalID:      personalID,
		Date:            t.Date,
		DateTS:          ts,
		ID:              t.ID,
		PaymentDeadline: t.PaymentDeadline,
		Price:           t.Price,
		TicketNumInfo:   t.TicketNumInfo,
		StartStation:    t.StartStation,
		DestStation:     t.DestStation,
		DepartTime:      t.DepartTime,
		ArrivalTime:     t.ArrivalTime,
		TrainID:         t.TrainID,
	}
}

// key is the personal ID plus a fingerprint of the fields compared for
// duplicate detection: date, booking code, price, train id, station pair.
func (r Record) key() []byte {
	sum := sha1.Sum([]byte(fmt.Sprintf("%s|%s|%s|%s|%s|%s",
		r.Date, r.ID, r.Price, r.TrainID, r.StartStation, r.DestStation)))
	return []byte(fmt.Sprintf("%s/%x", r.PersonalID, sum))
}

// Store is a badger-backed history database.
type Store struct {
	db *badger.DB
}

// Open opens (creating if needed) the store at path.
func Open(path string) (*Store, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the store.
func (s *Store) Close() error { return s.db.Close() }

// Save inserts the record unless an identical booking is already present.
// Reports whether a new record was written.
func (s *Store) Save(r Record) (bool, error) {
	key := r.key()
	inserted := false
	err := s.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(key)
		if err == nil {
			return nil
		}
		if err != badger.ErrKeyNotFound {
			return err
		}
		data, err := json.Marshal(r)
		if err != nil {
			return err
		}
		inserted = true
		return txn.Set(key, data)
	})
	if err != nil {
		return false, fmt.Errorf("save history record: %w", err)
	}
	return inserted, nil
}

// List returns the records whose travel date falls in [startTS, endTS).
func (s *Store) List(startTS, endTS int64) ([]Record, error) {
	var records []Record
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var r Record
				if err := json.Unmarshal(val, &r); err != nil {
					return err
				}
				if r.DateTS >= startTS && r.DateTS < endTS {
					records = append(records, r)
				}
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	return records, nil
}
