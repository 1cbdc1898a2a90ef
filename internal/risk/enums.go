// enums.go: closed enumerations for the risk domain
package risk

import (
	"encoding/json"
	"strings"

	"github.com/riskradar/riskradar-go/internal/errors"
)

// Category classifies a risk into one of the fixed domains.
type Category int

const (
	CategoryUnknown Category = iota
	CategoryCareer
	CategoryFinancial
	CategoryHealth
	CategoryTechnical
	CategoryPersonal
)

var categoryNames = map[Category]string{
	CategoryCareer:    "career",
	CategoryFinancial: "financial",
	CategoryHealth:    "health",
	CategoryTechnical: "technical",
	CategoryPersonal:  "personal",
}

func (c Category) String() string {
	return categoryNames[c]
}

// ParseCategory parses a category name. Input is trimmed and matched
// case-insensitively.
func ParseCategory(s string) (Category, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	for c, name := range categoryNames {
		if name == normalized {
			return c, nil
		}
	}
	return CategoryUnknown, errors.Newf("unknown risk category: %q", s).
		Component("risk").
		Category(errors.CategoryValidation).
		Context("field", "category").
		Context("allowed", "career, financial, health, technical, personal").
		Build()
}

// MarshalJSON renders the category as its lowercase name.
func (c Category) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// UnmarshalJSON parses the category from its name.
func (c *Category) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseCategory(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// TimeHorizon is the expected timeframe for a risk to materialize.
type TimeHorizon int

const (
	HorizonUnknown TimeHorizon = iota
	HorizonWeeks
	HorizonMonths
)

var horizonNames = map[TimeHorizon]string{
	HorizonWeeks:  "weeks",
	HorizonMonths: "months",
}

func (h TimeHorizon) String() string {
	return horizonNames[h]
}

// ParseTimeHorizon parses a time horizon name. Input is trimmed and matched
// case-insensitively.
func ParseTimeHorizon(s string) (TimeHorizon, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	for h, name := range horizonNames {
		if name == normalized {
			return h, nil
		}
	}
	return HorizonUnknown, errors.Newf("unknown time horizon: %q", s).
		Component("risk").
		Category(errors.CategoryValidation).
		Context("field", "time_horizon").
		Context("allowed", "weeks, months").
		Build()
}

// MarshalJSON renders the horizon as its lowercase name.
func (h TimeHorizon) MarshalJSON() ([]byte, error) {
	return json.Marshal(h.String())
}

// UnmarshalJSON parses the horizon from its name.
func (h *TimeHorizon) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseTimeHorizon(s)
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}

// SignalDirection indicates whether a signal pushes likelihood up or down.
type SignalDirection int

const (
	DirectionUnknown SignalDirection = iota
	DirectionIncrease
	DirectionDecrease
)

var directionNames = map[SignalDirection]string{
	DirectionIncrease: "increase",
	DirectionDecrease: "decrease",
}

func (d SignalDirection) String() string {
	return directionNames[d]
}

// ParseSignalDirection parses a direction name. Input is trimmed and matched
// case-insensitively.
func ParseSignalDirection(s string) (SignalDirection, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	for d, name := range directionNames {
		if name == normalized {
			return d, nil
		}
	}
	return DirectionUnknown, errors.Newf("unknown signal direction: %q", s).
		Component("risk").
		Category(errors.CategoryValidation).
		Context("field", "direction").
		Context("allowed", "increase, decrease").
		Build()
}

// MarshalJSON renders the direction as its lowercase name.
func (d SignalDirection) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON parses the direction from its name.
func (d *SignalDirection) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseSignalDirection(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// SignalStrength is the magnitude class of a signal's likelihood adjustment.
type SignalStrength int

const (
	StrengthUnknown SignalStrength = iota
	StrengthWeak
	StrengthMedium
	StrengthStrong
)

var strengthNames = map[SignalStrength]string{
	StrengthWeak:   "weak",
	StrengthMedium: "medium",
	StrengthStrong: "strong",
}

func (s SignalStrength) String() string {
	return strengthNames[s]
}

// ParseSignalStrength parses a strength name. Input is trimmed and matched
// case-insensitively.
func ParseSignalStrength(s string) (SignalStrength, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	for st, name := range strengthNames {
		if name == normalized {
			return st, nil
		}
	}
	return StrengthUnknown, errors.Newf("unknown signal strength: %q", s).
		Component("risk").
		Category(errors.CategoryValidation).
		Context("field", "strength").
		Context("allowed", "weak, medium, strong").
		Build()
}

// MarshalJSON renders the strength as its lowercase name.
func (s SignalStrength) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON parses the strength from its name.
func (s *SignalStrength) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	parsed, err := ParseSignalStrength(str)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
