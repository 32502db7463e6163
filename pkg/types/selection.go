package types

import (
	"fmt"
	"strconv"
	"time"
)

// Selection is one normalized wager on a fixture.
type Selection struct {
	FixtureID int64    `json:"fixture_id"`
	Market    Market   `json:"market"`
	Pick      string   `json:"pick"`
	Line      *float64 `json:"line,omitempty"`
	Team      Side     `json:"team,omitempty"`

	// RawMarket keeps the submitted label when Market is MarketUnrecognized.
	RawMarket string `json:"raw_market,omitempty"`
}

// MarketLabel returns the label reported back to callers: the raw text for
// unrecognized markets, the canonical identifier otherwise.
func (s Selection) MarketLabel() string {
	if s.Market == MarketUnrecognized && s.RawMarket != "" {
		return s.RawMarket
	}
	return string(s.Market)
}

// LineString formats the line for reasons and logs.
func (s Selection) LineString() string {
	if s.Line == nil {
		return "none"
	}
	return FormatLine(*s.Line)
}

// FormatLine renders a line without trailing zeros.
func FormatLine(line float64) string {
	return strconv.FormatFloat(line, 'f', -1, 64)
}

// Float returns a pointer to v, for building selections with a line.
func Float(v float64) *float64 {
	return &v
}

// Status is the settlement verdict for a selection or a whole slip.
type Status string

const (
	StatusWon          Status = "won"
	StatusLost         Status = "lost"
	StatusPush         Status = "push"
	StatusPending      Status = "pending"
	StatusNotSupported Status = "not_supported"
	StatusVoid         Status = "void"
	StatusRefund       Status = "refund"
	StatusCancelled    Status = "cancelled"
)

// SelectionResult is the verdict for one selection.
type SelectionResult struct {
	FixtureID int64  `json:"fixture_id"`
	Market    string `json:"market"`
	Pick      string `json:"pick"`
	Status    Status `json:"status"`
	Reason    string `json:"reason"`
}

// NewResult builds a SelectionResult for sel.
func NewResult(sel Selection, status Status, format string, args ...interface{}) SelectionResult {
	return SelectionResult{
		FixtureID: sel.FixtureID,
		Market:    sel.MarketLabel(),
		Pick:      sel.Pick,
		Status:    status,
		Reason:    fmt.Sprintf(format, args...),
	}
}

// SlipResult is the aggregated verdict for an ordered list of selections.
type SlipResult struct {
	ID        string            `json:"id"`
	Status    Status            `json:"status"`
	CheckedAt time.Time         `json:"checked_at"`
	Results   []SelectionResult `json:"results"`
}
