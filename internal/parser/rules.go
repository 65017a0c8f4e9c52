package parser

import (
	"regexp"
	"strings"
)

// Rule is one deterministic extraction rule: a text pattern plus the role
// mapping applied when it matches. Patterns use the named groups "amount" and
// (optionally) "counterparty".
type Rule struct {
	Name    string
	Pattern *regexp.Regexp
	Method  string
	Type    string
}

// apply runs the rule against the raw message. The second return value is
// false when the pattern does not match or the captured amount is unusable,
// in which case the next rule gets its turn.
func (r Rule) apply(in Input) (*Parsed, bool) {
	match := r.Pattern.FindStringSubmatch(in.RawMessage)
	if match == nil {
		return nil, false
	}

	amountIdx := r.Pattern.SubexpIndex("amount")
	if amountIdx < 0 || amountIdx >= len(match) {
		return nil, false
	}
	amount, err := parseAmount(match[amountIdx])
	if err != nil {
		return nil, false
	}

	counterparty := ""
	if idx := r.Pattern.SubexpIndex("counterparty"); idx >= 0 && idx < len(match) {
		counterparty = strings.TrimSpace(match[idx])
	}
	if counterparty == "" {
		counterparty = fallbackCounterparty(in)
	}

	return &Parsed{
		Counterparty: counterparty,
		Method:       r.Method,
		Type:         r.Type,
		Amount:       amount,
		Category:     "Uncategorized",
		Message:      in.RawMessage,
	}, true
}

const currency = `(?:rs\.?|inr|₹)`
const number = `(?P<amount>[0-9,]+(?:\.[0-9]+)?)`

// DefaultRules is the production rule list for Indian bank and UPI alert
// formats. Order matters: the first match wins, so the most specific formats
// come first and the loose sent/received catch-alls last.
func DefaultRules() []Rule {
	return []Rule{
		{
			Name: "upi-debit",
			Pattern: regexp.MustCompile(`(?i)` + currency + `\s*` + number +
				`\s+debited\s+from\s+\S+\s+to\s+(?P<counterparty>\S+)\s+via\s+upi`),
			Method: "upi",
			Type:   "expense",
		},
		{
			Name: "upi-credit",
			Pattern: regexp.MustCompile(`(?i)` + currency + `\s*` + number +
				`\s+credited\s+to\s+\S+\s+from\s+(?P<counterparty>\S+)\s+via\s+upi`),
			Method: "upi",
			Type:   "income",
		},
		{
			Name: "card-spend",
			Pattern: regexp.MustCompile(`(?i)spent\s+` + currency + `\s*` + number +
				`\s+on\s+.*?card\s+\S+\s+at\s+(?P<counterparty>[\w&' -]+?)\s+on\b`),
			Method: "card",
			Type:   "expense",
		},
		{
			Name: "bank-credit",
			Pattern: regexp.MustCompile(`(?i)credited\s+with\s+` + currency + `\s*` + number +
				`\s+by\s+\w+\s+from\s+(?P<counterparty>[\w&' -]+)`),
			Method: "bank",
			Type:   "income",
		},
		{
			Name: "bank-debit",
			Pattern: regexp.MustCompile(`(?i)debited\s+with\s+` + currency + `\s*` + number +
				`\s+by\s+\w+\s+to\s+(?P<counterparty>[\w&' -]+)`),
			Method: "bank",
			Type:   "expense",
		},
		{
			Name: "generic-paid",
			Pattern: regexp.MustCompile(`(?i)\bpaid\s+` + currency + `?\s*` + number +
				`\s+to\s+(?P<counterparty>[\w&' -]+)`),
			Method: "unknown",
			Type:   "expense",
		},
		{
			Name: "generic-received",
			Pattern: regexp.MustCompile(`(?i)\breceived\s+` + currency + `?\s*` + number +
				`\s+from\s+(?P<counterparty>[\w&' -]+)`),
			Method: "unknown",
			Type:   "income",
		},
	}
}
