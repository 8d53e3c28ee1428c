package domain

import (
	"strings"
	"time"
)

const (
	// symbolDelimiter separates the four components of an option symbol,
	// e.g. "ETH-250301-2200-C".
	symbolDelimiter = "-"

	// symbolParts is the exact number of components a valid symbol carries.
	symbolParts = 4

	// expiryDateLayout is the expiration date encoding inside the symbol (YYMMDD).
	expiryDateLayout = "060102"

	// ExpiryCutoffHourUTC is the hour-of-day (UTC) at which a contract expires
	// on its expiration date. Binance exercises options at 08:00 UTC.
	ExpiryCutoffHourUTC = 8
)

// OptionSymbol is the decomposed form of an option contract identifier.
type OptionSymbol struct {
	Underlying string // base asset code, e.g. "ETH"
	Expiration string // raw expiration field, e.g. "250301"
	Strike     string // strike price as decimal text, e.g. "2200"
	Side       string // "C" or "P"
}

// ParseSymbol splits a raw symbol into its four components. Any part count
// other than four is rejected, never guessed.
func ParseSymbol(raw string) (OptionSymbol, error) {
	parts := strings.Split(raw, symbolDelimiter)
	if len(parts) != symbolParts {
		return OptionSymbol{}, &ParseError{Field: "symbol", Value: raw, Err: ErrInvalidSymbol}
	}
	return OptionSymbol{
		Underlying: parts[0],
		Expiration: parts[1],
		Strike:     parts[2],
		Side:       parts[3],
	}, nil
}

// String re-joins the components with the symbol delimiter, reproducing the
// original identifier for any symbol that parsed successfully.
func (s OptionSymbol) String() string {
	return strings.Join([]string{s.Underlying, s.Expiration, s.Strike, s.Side}, symbolDelimiter)
}

// ExpiryCutoff returns the instant the contract stops trading: the encoded
// expiration date at 08:00 UTC. Fails with a ParseError when the expiration
// field is not a valid YYMMDD date.
func (s OptionSymbol) ExpiryCutoff() (time.Time, error) {
	day, err := time.ParseInLocation(expiryDateLayout, s.Expiration, time.UTC)
	if err != nil {
		return time.Time{}, &ParseError{Field: "expiration", Value: s.Expiration, Err: err}
	}
	return time.Date(day.Year(), day.Month(), day.Day(), ExpiryCutoffHourUTC, 0, 0, 0, time.UTC), nil
}

// Expired reports whether the contract's cutoff is at or before now.
// Unparsable expirations count as expired.
func (s OptionSymbol) Expired(now time.Time) bool {
	cutoff, err := s.ExpiryCutoff()
	if err != nil {
		return true
	}
	return !now.Before(cutoff)
}
