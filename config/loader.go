package config

import (
	"fmt"
	"os"
	"regexp"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// DefaultPath is where the CLI looks for settings unless told otherwise.
const DefaultPath = "config.yml"

var (
	personalIDPattern = regexp.MustCompile(`^[A-Za-z][0-9]{9}$`)
	phonePattern      = regexp.MustCompile(`^09[0-9]{8}$`)
)

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("twid", func(fl validator.FieldLevel) bool {
		return personalIDPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("twphone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	return v
}

// Load reads and validates settings from path.
func Load(path string) (AppConfig, error) {
	var cfg AppConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := Validate(cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks a settings structure without loading it from disk.
func Validate(cfg AppConfig) error {
	v := newValidator()
	if err := v.Struct(cfg.User); err != nil {
		return fmt.Errorf("user: %w", err)
	}
	if err := v.Struct(cfg.Conditions); err != nil {
		return fmt.Errorf("conditions: %w", err)
	}
	if tr := cfg.Conditions.TimeRange; len(tr) == 2 && tr[0] > tr[1] {
		return fmt.Errorf("conditions: time_range end hour %d before start hour %d", tr[1], tr[0])
	}
	return nil
}

const defaultConfig = `# thsr-helper settings. Fill in before booking.
user:
  personal_id: ""
  phone_number: ""
  email: ""

conditions:
  adult_ticket_num: 1
  child_ticket_num: 0
  disabled_ticket_num: 0
  elder_ticket_num: 0
  college_ticket_num: 0
  # 0: any train, 1: early bird only, 2: normal only
  train_requirement: "0"
  date: "2026-1-1"
  thsr_time: "930A"
  time_range: [0, 24]
  start_station: "Taipei"
  dest_station: "Zuoying"

history:
  path: ""

notify:
  telegram_token: ""
  telegram_chat_id: 0
`

// WriteDefault creates a template settings file for the user to edit.
// Fails if path already exists.
func WriteDefault(path string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return err
	}
	if _, err := f.WriteString(defaultConfig); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
