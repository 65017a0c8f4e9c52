// Package parser turns raw payment notification text into a structured
// transaction candidate. Deterministic extraction rules are tried first, in
// order; messages no rule recognizes are handed to the semantic extractor.
package parser

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrBlankUserID is returned before any extraction is attempted.
	ErrBlankUserID = errors.New("parser: blank user id")
	// ErrBadTimestamp is returned when the notification timestamp cannot be parsed.
	ErrBadTimestamp = errors.New("parser: malformed timestamp")
	// ErrNoMatch is returned when no rule matched and no extractor recovered
	// the message.
	ErrNoMatch = errors.New("parser: no extraction rule matched")
)

// Input is one raw notification as delivered by the mobile client.
type Input struct {
	UserID          string
	Timestamp       string
	ApplicationName string
	SenderName      string
	RawMessage      string
}

// Timestamp is the coarse notification time. Minutes are dropped.
type Timestamp struct {
	Year  int
	Month int
	Day   int
	Hour  int
}

// Parsed is a structured transaction candidate.
type Parsed struct {
	Timestamp    Timestamp
	Counterparty string
	Method       string
	Type         string
	Amount       decimal.Decimal
	Category     string
	Message      string
}

// Fields is the structured output of the semantic extractor.
type Fields struct {
	Amount       float64 `json:"amount"`
	Counterparty string  `json:"counterparty"`
	Direction    string  `json:"direction"`
	Method       string  `json:"method"`
	Category     string  `json:"category"`
}

// Extractor is the natural-language fallback invoked only when every
// deterministic rule fails. Implementations own their timeout; any failure is
// treated as a parse failure, never retried here.
type Extractor interface {
	Extract(ctx context.Context, rawMessage string) (*Fields, error)
}

// Parser evaluates the ordered rule list with a pluggable fallback.
type Parser struct {
	rules     []Rule
	extractor Extractor
}

// New returns a parser with the default rule set. extractor may be nil, in
// which case unmatched messages fail outright.
func New(extractor Extractor) *Parser {
	return &Parser{rules: DefaultRules(), extractor: extractor}
}

// NewWithRules returns a parser with a caller-supplied rule list.
func NewWithRules(rules []Rule, extractor Extractor) *Parser {
	return &Parser{rules: rules, extractor: extractor}
}

// Parse validates the input and extracts a transaction candidate. The first
// rule whose pattern matches wins; list order is the only ambiguity
// resolution.
func (p *Parser) Parse(ctx context.Context, in Input) (*Parsed, error) {
	if strings.TrimSpace(in.UserID) == "" {
		return nil, ErrBlankUserID
	}

	ts, err := parseTimestamp(in.Timestamp)
	if err != nil {
		return nil, err
	}

	for _, rule := range p.rules {
		parsed, ok := rule.apply(in)
		if !ok {
			continue
		}
		parsed.Timestamp = ts
		return parsed, nil
	}

	if p.extractor == nil {
		return nil, ErrNoMatch
	}

	fields, err := p.extractor.Extract(ctx, in.RawMessage)
	if err != nil {
		return nil, fmt.Errorf("%w: semantic extractor: %v", ErrNoMatch, err)
	}
	parsed, err := fromFields(fields, in)
	if err != nil {
		return nil, err
	}
	parsed.Timestamp = ts
	return parsed, nil
}

func parseTimestamp(raw string) (Timestamp, error) {
	layouts := []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05"}
	for _, layout := range layouts {
		t, err := time.Parse(layout, strings.TrimSpace(raw))
		if err == nil {
			return Timestamp{Year: t.Year(), Month: int(t.Month()), Day: t.Day(), Hour: t.Hour()}, nil
		}
	}
	return Timestamp{}, fmt.Errorf("%w: %q", ErrBadTimestamp, raw)
}

func fromFields(fields *Fields, in Input) (*Parsed, error) {
	if fields == nil || fields.Amount <= 0 {
		return nil, fmt.Errorf("%w: extractor returned no usable amount", ErrNoMatch)
	}

	counterparty := strings.TrimSpace(fields.Counterparty)
	if counterparty == "" {
		counterparty = fallbackCounterparty(in)
	}

	category := strings.TrimSpace(fields.Category)
	if category == "" {
		category = "Uncategorized"
	}

	return &Parsed{
		Counterparty: counterparty,
		Method:       normalizeMethod(fields.Method),
		Type:         normalizeType(fields.Direction),
		Amount:       decimal.NewFromFloat(fields.Amount),
		Category:     category,
		Message:      in.RawMessage,
	}, nil
}

func fallbackCounterparty(in Input) string {
	if s := strings.TrimSpace(in.SenderName); s != "" {
		return s
	}
	return "Unknown"
}

func normalizeMethod(method string) string {
	switch strings.ToLower(strings.TrimSpace(method)) {
	case "card", "credit card", "debit card":
		return "card"
	case "upi":
		return "upi"
	case "bank", "neft", "imps", "rtgs", "bank transfer":
		return "bank"
	}
	return "unknown"
}

func normalizeType(direction string) string {
	switch strings.ToLower(strings.TrimSpace(direction)) {
	case "income", "incoming", "credit", "received":
		return "income"
	}
	return "expense"
}

// parseAmount strips grouping separators and parses the remainder as decimal.
func parseAmount(raw string) (decimal.Decimal, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, err
	}
	if amount.Sign() <= 0 {
		return decimal.Zero, fmt.Errorf("non-positive amount %q", raw)
	}
	return amount, nil
}
