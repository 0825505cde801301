package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	thsrhelper "github.com/transit-helpers/thsr-helper"
	"github.com/transit-helpers/thsr-helper/booking"
	"github.com/transit-helpers/thsr-helper/captcha"
	"github.com/transit-helpers/thsr-helper/config"
	"github.com/transit-helpers/thsr-helper/history"
	"github.com/transit-helpers/thsr-helper/notify"
	"github.com/transit-helpers/thsr-helper/parser"
	"github.com/transit-helpers/thsr-helper/transport"
)

const (
	attemptDelay       = 3 * time.Second
	defaultHistoryPath = ".db/history"
)

func main() {
	mode := flag.String("mode", "order", "order|history|config")
	configPath := flag.String("config", config.DefaultPath, "settings file path")
	attempts := flag.Int("attempts", 1, "booking attempts before giving up")
	days := flag.Int("days", 7, "history window in days")
	flag.Parse()

	thsrhelper.InitLogging()

	switch *mode {
	case "order":
		runOrder(*configPath, *attempts)
	case "history":
		runHistory(*configPath, *days)
	case "config":
		cfg := loadConfig(*configPath)
		fmt.Printf("%+v\n", cfg)
	default:
		log.Fatalf("unknown mode %q", *mode)
	}
}

func loadConfig(path string) config.AppConfig {
	cfg, err := config.Load(path)
	if err != nil {
		if os.IsNotExist(err) {
			if werr := config.WriteDefault(path); werr != nil {
				log.Fatalf("create default config: %v", werr)
			}
			log.Fatalf("created %s; update the settings before booking", path)
		}
		log.Fatalf("load config: %v", err)
	}
	return cfg
}

// runOrder re-invokes the pipeline up to attempts times, stopping on the
// first success. Per-attempt failures are logged, never propagated.
func runOrder(configPath string, attempts int) {
	cfg := loadConfig(configPath)
	cond := cfg.Conditions.TripConditions()
	user := cfg.User.Identity()
	ctx := context.Background()

	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 {
			time.Sleep(attemptDelay)
		}
		log.Printf("booking attempt %d/%d", attempt, attempts)
		ticket, events, err := runAttempt(ctx, cond, user)
		for _, e := range events {
			log.Printf("[%s] %s", e.Kind, e.Message)
		}
		if err != nil {
			log.Printf("attempt %d failed: %v", attempt, err)
			continue
		}
		printTicket(ticket)
		saveHistory(cfg, ticket)
		sendNotification(ctx, cfg, ticket)
		return
	}
	log.Fatalf("no booking made after %d attempt(s)", attempts)
}

// runAttempt runs one fully independent pipeline instance. Each attempt
// gets its own transport session; cookies never outlive an attempt.
func runAttempt(ctx context.Context, cond booking.TripConditions, user booking.UserIdentity) (booking.Ticket, []booking.Event, error) {
	client, err := transport.NewClient()
	if err != nil {
		return booking.Ticket{}, nil, err
	}
	flow := booking.NewFlow(client, parser.New(), captcha.NewManual(), cond, user)
	ticket, err := flow.Run(ctx)
	return ticket, flow.Events(), err
}

func printTicket(t booking.Ticket) {
	fmt.Printf("booking code:     %s\n", t.ID)
	fmt.Printf("payment deadline: %s\n", t.PaymentDeadline)
	fmt.Printf("tickets:          %s\n", t.TicketNumInfo)
	fmt.Printf("total price:      %s\n", t.Price)
	fmt.Printf("date:             %s\n", t.Date)
	fmt.Printf("train %s  %s → %s  (%s – %s)\n", t.TrainID, t.StartStation, t.DestStation, t.DepartTime, t.ArrivalTime)
}

func historyPath(cfg config.AppConfig) string {
	if cfg.History.Path != "" {
		return cfg.History.Path
	}
	return defaultHistoryPath
}

func saveHistory(cfg config.AppConfig, ticket booking.Ticket) {
	store, err := history.Open(historyPath(cfg))
	if err != nil {
		log.Printf("history: %v", err)
		return
	}
	defer func() { _ = store.Close() }()
	inserted, err := store.Save(history.FromTicket(ticket, cfg.User.PersonalID))
	if err != nil {
		log.Printf("history: %v", err)
		return
	}
	if !inserted {
		log.Printf("history: booking already recorded")
	}
}

func sendNotification(ctx context.Context, cfg config.AppConfig, ticket booking.Ticket) {
	if cfg.Notify.TelegramToken == "" {
		return
	}
	tg, err := notify.NewTelegram(cfg.Notify.TelegramToken, cfg.Notify.TelegramChatID)
	if err != nil {
		log.Printf("notify: %v", err)
		return
	}
	if err := tg.Booked(ctx, ticket); err != nil {
		log.Printf("notify: %v", err)
	}
}

// historyWindow spans from days ago until the upcoming local midnight, so
// today's bookings always fall inside the listing.
func historyWindow(now time.Time, days int) (start, end int64) {
	y, m, d := now.Date()
	midnight := time.Date(y, m, d+1, 0, 0, 0, 0, now.Location())
	return now.AddDate(0, 0, -days).Unix(), midnight.Unix()
}

func runHistory(configPath string, days int) {
	cfg := loadConfig(configPath)
	store, err := history.Open(historyPath(cfg))
	if err != nil {
		log.Fatalf("history: %v", err)
	}
	defer func() { _ = store.Close() }()

	start, end := historyWindow(time.Now(), days)
	records, err := store.List(start, end)
	if err != nil {
		log.Fatalf("history: %v", err)
	}
	if len(records) == 0 {
		fmt.Println("no bookings in range")
		return
	}
	for _, r := range records {
		fmt.Printf("%s  %s  %s → %s  train %s  %s  pay by %s\n",
			r.Date, r.ID, r.StartStation, r.DestStation, r.TrainID, r.Price, r.PaymentDeadline)
	}
}
