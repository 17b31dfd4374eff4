package post

import (
	"fmt"
	"strings"
)

// Type identifies a scheduled update and the marker it is tracked under
type Type string

const (
	TypeAuto         Type = "auto"
	TypeSummary      Type = "summary"
	TypeBatting      Type = "batting"
	TypePitching     Type = "pitching"
	TypeNews         Type = "news"
	TypeTransactions Type = "transactions"
)

// DateLayout is the layout of a team-local calendar day as stored in markers
const DateLayout = "2006-01-02"

// DailyTypes lists the stat reports in auto-mode priority order
var DailyTypes = []Type{TypeSummary, TypeBatting, TypePitching}

// ParseType validates a --type selector value. Only "auto" and the daily stat
// reports are accepted; news and transactions have their own commands.
func ParseType(s string) (Type, error) {
	t := Type(strings.ToLower(strings.TrimSpace(s)))
	switch t {
	case TypeAuto, TypeSummary, TypeBatting, TypePitching:
		return t, nil
	default:
		return "", fmt.Errorf("invalid type: %q (must be auto, summary, batting or pitching)", s)
	}
}

func (t Type) String() string {
	return string(t)
}
