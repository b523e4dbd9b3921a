// Package numfmt converts between user-typed money text and decimals.
//
// Parsing is deliberately forgiving: thousands separators and currency
// symbols are dropped, the longest leading number is used, and anything that
// is not a number becomes zero. Callers never see an error.
package numfmt

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

var (
	leadingNumber = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?`)
	stripper      = strings.NewReplacer(",", "", "$", "", " ", "", "_", "")
)

// Parse turns text such as "1,250,000", "$12.50" or "12abc" into a decimal.
// Unparseable input yields zero.
func Parse(s string) decimal.Decimal {
	cleaned := stripper.Replace(strings.TrimSpace(s))
	m := leadingNumber.FindString(cleaned)
	m = strings.TrimPrefix(strings.TrimSuffix(m, "."), "+")
	m = strings.NewReplacer(".e", "e", ".E", "e").Replace(m)
	if m == "" || m == "-" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(m)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// ParseGrouped is Parse for text grouped with an arbitrary separator, such as
// "100.000" or "100'000". Every occurrence of sep is removed first.
func ParseGrouped(s, sep string) decimal.Decimal {
	if sep != "" {
		s = strings.ReplaceAll(s, sep, "")
	}
	return Parse(s)
}

// Format rounds to whole units and groups thousands with sep
func Format(d decimal.Decimal, sep string) string {
	rounded := d.Round(0)
	digits := rounded.Abs().String()
	grouped := group(digits, sep)
	if rounded.IsNegative() {
		return "-" + grouped
	}
	return grouped
}

// FormatCurrency renders d as whole dollars with comma grouping
func FormatCurrency(d decimal.Decimal) string {
	if d.Round(0).IsNegative() {
		return "-$" + Format(d.Abs(), ",")
	}
	return "$" + Format(d, ",")
}

// GroupDigits reformats text as it is typed: every non-digit is removed and
// the remaining digits are grouped in threes.
func GroupDigits(text, sep string) string {
	var b strings.Builder
	for _, r := range text {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return group(b.String(), sep)
}

func group(digits, sep string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteString(sep)
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// Amount is a decimal that unmarshals leniently from JSON, YAML or text,
// accepting either numbers or strings like "100,000".
type Amount struct {
	decimal.Decimal
}

// NewAmount wraps a decimal
func NewAmount(d decimal.Decimal) Amount {
	return Amount{Decimal: d}
}

func (a *Amount) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "null" {
		a.Decimal = decimal.Zero
		return nil
	}
	a.Decimal = Parse(s)
	return nil
}

func (a *Amount) UnmarshalYAML(node *yaml.Node) error {
	a.Decimal = Parse(node.Value)
	return nil
}

func (a *Amount) UnmarshalText(text []byte) error {
	a.Decimal = Parse(string(text))
	return nil
}
