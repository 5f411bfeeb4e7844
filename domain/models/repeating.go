package models

import "time"

// RepeatingModifierType is the unit a recurrence advances by
type RepeatingModifierType string

const (
	RepeatingModifierDays   RepeatingModifierType = "DAYS"
	RepeatingModifierMonths RepeatingModifierType = "MONTHS"
	RepeatingModifierYears  RepeatingModifierType = "YEARS"
)

// RepeatingEndType decides when a recurrence stops
type RepeatingEndType string

const (
	RepeatingEndNever       RepeatingEndType = "NEVER"
	RepeatingEndAfterXTimes RepeatingEndType = "AFTER_X_TIMES"
	RepeatingEndDate        RepeatingEndType = "DATE"
)

// RepeatingOption is the recurrence definition shared by every occurrence of a
// repeating transaction. The ledger core only cares whether a transaction links
// to one; materialization of occurrences happens elsewhere.
type RepeatingOption struct {
	ID            int64                 `json:"id"`
	StartDate     time.Time             `json:"startDate"`
	ModifierType  RepeatingModifierType `json:"modifierType"`
	ModifierValue int                   `json:"modifierValue"`
	EndType       RepeatingEndType      `json:"endType"`
	EndValue      string                `json:"endValue,omitempty"`
}

// NewRepeatingOption creates a recurrence that never ends
func NewRepeatingOption(start time.Time, modifierType RepeatingModifierType, modifierValue int) *RepeatingOption {
	return &RepeatingOption{
		StartDate:     Day(start.Year(), start.Month(), start.Day()),
		ModifierType:  modifierType,
		ModifierValue: modifierValue,
		EndType:       RepeatingEndNever,
	}
}
