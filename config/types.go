package config

import "github.com/transit-helpers/thsr-helper/booking"

// UserConfig identifies the person placing bookings.
type UserConfig struct {
	PersonalID  string `yaml:"personal_id" validate:"required,twid"`
	PhoneNumber string `yaml:"phone_number" validate:"omitempty,twphone"`
	Email       string `yaml:"email" validate:"omitempty,email"`
}

// ConditionsConfig holds the trip parameters of a booking run.
type ConditionsConfig struct {
	AdultTicketNum    int    `yaml:"adult_ticket_num" validate:"gte=0"`
	AdultIDs          string `yaml:"adult_ids"`
	ChildTicketNum    int    `yaml:"child_ticket_num" validate:"gte=0"`
	DisabledTicketNum int    `yaml:"disabled_ticket_num" validate:"gte=0"`
	DisabledIDs       string `yaml:"disabled_ids"`
	ElderTicketNum    int    `yaml:"elder_ticket_num" validate:"gte=0"`
	ElderIDs          string `yaml:"elder_ids"`
	CollegeTicketNum  int    `yaml:"college_ticket_num" validate:"gte=0"`
	TrainRequirement  string `yaml:"train_requirement" validate:"omitempty,oneof=0 1 2"`
	Date              string `yaml:"date" validate:"required"`
	ThsrTime          string `yaml:"thsr_time" validate:"required"`
	TimeRange         []int  `yaml:"time_range" validate:"omitempty,len=2,dive,gte=0,lte=24"`
	StartStation      string `yaml:"start_station" validate:"required"`
	DestStation       string `yaml:"dest_station" validate:"required"`
}

// HistoryConfig locates the local booking-history store.
type HistoryConfig struct {
	Path string `yaml:"path"`
}

// NotifyConfig configures the optional Telegram notification.
type NotifyConfig struct {
	TelegramToken  string `yaml:"telegram_token"`
	TelegramChatID int64  `yaml:"telegram_chat_id"`
}

// AppConfig is the root settings structure.
type AppConfig struct {
	User       UserConfig       `yaml:"user" validate:"required"`
	Conditions ConditionsConfig `yaml:"conditions" validate:"required"`
	History    HistoryConfig    `yaml:"history"`
	Notify     NotifyConfig     `yaml:"notify"`
}

// TripConditions converts the conditions section to the pipeline's input.
func (c ConditionsConfig) TripConditions() booking.TripConditions {
	start, end := 0, 24
	if len(c.TimeRange) == 2 {
		start, end = c.TimeRange[0], c.TimeRange[1]
	}
	req := booking.TrainRequirement(c.TrainRequirement)
	if req == "" {
		req = booking.AnyTrain
	}
	return booking.TripConditions{
		StartStation: c.StartStation,
		DestStation:  c.DestStation,
		Date:         c.Date,
		TimeSlot:     c.ThsrTime,
		StartHour:    start,
		EndHour:      end,
		Tickets: map[booking.Category]int{
			booking.Adult:    c.AdultTicketNum,
			booking.Child:    c.ChildTicketNum,
			booking.Disabled: c.DisabledTicketNum,
			booking.Elder:    c.ElderTicketNum,
			booking.College:  c.CollegeTicketNum,
		},
		IDs: map[booking.Category]string{
			booking.Adult:    c.AdultIDs,
			booking.Disabled: c.DisabledIDs,
			booking.Elder:    c.ElderIDs,
		},
		Requirement: req,
	}
}

// Identity converts the user section to the pipeline's input.
func (u UserConfig) Identity() booking.UserIdentity {
	return booking.UserIdentity{
		PersonalID: u.PersonalID,
		Phone:      u.PhoneNumber,
		Email:      u.Email,
	}
}
