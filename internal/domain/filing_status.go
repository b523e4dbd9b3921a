package domain

import (
	"fmt"
	"strings"
)

// FilingStatus selects which row of the tax tables applies to a calculation
type FilingStatus string

const (
	FilingSingle                  FilingStatus = "single"
	FilingMarried                 FilingStatus = "married"
	FilingMarriedFilingSeparately FilingStatus = "married_filing_separately"
)

// FilingStatuses lists the supported statuses in display order
func FilingStatuses() []FilingStatus {
	return []FilingStatus{FilingSingle, FilingMarried, FilingMarriedFilingSeparately}
}

// ParseFilingStatus accepts the canonical names plus the common abbreviations
func ParseFilingStatus(s string) (FilingStatus, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "single", "s":
		return FilingSingle, nil
	case "married", "mfj", "married_filing_jointly", "joint":
		return FilingMarried, nil
	case "married_filing_separately", "mfs", "separate":
		return FilingMarriedFilingSeparately, nil
	default:
		return "", fmt.Errorf("unknown filing status %q (expected single, married or married_filing_separately)", s)
	}
}

// Next cycles to the following status; used by the interactive toggle
func (fs FilingStatus) Next() FilingStatus {
	all := FilingStatuses()
	for i, s := range all {
		if s == fs {
			return all[(i+1)%len(all)]
		}
	}
	return FilingSingle
}

// Label returns a human-readable name
func (fs FilingStatus) Label() string {
	switch fs {
	case FilingSingle:
		return "Single"
	case FilingMarried:
		return "Married Filing Jointly"
	case FilingMarriedFilingSeparately:
		return "Married Filing Separately"
	default:
		return string(fs)
	}
}

// IsValid reports whether fs is one of the supported statuses
func (fs FilingStatus) IsValid() bool {
	for _, s := range FilingStatuses() {
		if s == fs {
			return true
		}
	}
	return false
}
