package model

import (
	"encoding/json"
	"fmt"
)

// CompanySettings is the typed form of the company settings column.
// It is validated whenever it is read from or written to a Company.
type CompanySettings struct {
	WorkingDays  []string `json:"workingDays"`
	OvertimeDays []string `json:"overtimeDays"`
	RejectLimit  int      `json:"rejectLimit"`
}

var weekdays = map[string]struct{}{
	"monday":    {},
	"tuesday":   {},
	"wednesday": {},
	"thursday":  {},
	"friday":    {},
	"saturday":  {},
	"sunday":    {},
}

// DefaultSettings returns the settings applied to a newly created company
func DefaultSettings() CompanySettings {
	return CompanySettings{
		WorkingDays:  []string{"monday", "tuesday", "wednesday", "thursday", "friday"},
		OvertimeDays: []string{"saturday", "sunday"},
		RejectLimit:  10,
	}
}

// Validate checks weekday names and the reject limit
func (s CompanySettings) Validate() error {
	for _, d := range s.WorkingDays {
		if _, ok := weekdays[d]; !ok {
			return fmt.Errorf("invalid working day: %q", d)
		}
	}
	for _, d := range s.OvertimeDays {
		if _, ok := weekdays[d]; !ok {
			return fmt.Errorf("invalid overtime day: %q", d)
		}
	}
	if s.RejectLimit <= 0 {
		return fmt.Errorf("reject limit must be positive, got %d", s.RejectLimit)
	}
	return nil
}

// ParseSettings decodes and validates the company's settings column.
// An empty column yields the defaults.
func (c *Company) ParseSettings() (CompanySettings, error) {
	if c.Settings == "" {
		return DefaultSettings(), nil
	}
	var s CompanySettings
	if err := json.Unmarshal([]byte(c.Settings), &s); err != nil {
		return CompanySettings{}, fmt.Errorf("malformed company settings: %w", err)
	}
	if s.RejectLimit == 0 {
		s.RejectLimit = DefaultSettings().RejectLimit
	}
	if err := s.Validate(); err != nil {
		return CompanySettings{}, err
	}
	return s, nil
}

// SetSettings validates and encodes settings into the company's settings column
func (c *Company) SetSettings(s CompanySettings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	raw, err := json.Marshal(s)
	if err != nil {
		return err
	}
	c.Settings = string(raw)
	return nil
}
