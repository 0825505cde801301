// Package config handles settings loading and validation.
//
// Settings are loaded from a YAML file and validated using struct tags,
// plus registered rules for the personal-ID and phone-number formats the
// booking site enforces.
package config
