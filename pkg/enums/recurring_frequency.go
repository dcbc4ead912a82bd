package enums

import "fmt"

// RecurringFrequency is captured at checkout as order metadata. No scheduler
// consumes it; the cadence is recorded for back-office visibility only.
type RecurringFrequency string

const (
	RecurringDaily    RecurringFrequency = "daily"
	RecurringWeekly   RecurringFrequency = "weekly"
	RecurringBiweekly RecurringFrequency = "biweekly"
	RecurringMonthly  RecurringFrequency = "monthly"
)

var validRecurringFrequencies = []RecurringFrequency{
	RecurringDaily,
	RecurringWeekly,
	RecurringBiweekly,
	RecurringMonthly,
}

// String implements fmt.Stringer.
func (f RecurringFrequency) String() string {
	return string(f)
}

// IsValid reports whether the value is a known RecurringFrequency.
func (f RecurringFrequency) IsValid() bool {
	for _, candidate := range validRecurringFrequencies {
		if candidate == f {
			return true
		}
	}
	return false
}

// ParseRecurringFrequency converts raw input into a RecurringFrequency.
func ParseRecurringFrequency(value string) (RecurringFrequency, error) {
	for _, candidate := range validRecurringFrequencies {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid recurring frequency %q", value)
}
