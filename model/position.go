package model

import (
	"strings"
)

// Position is the position label from the stats file. Players are grouped by
// the exact label, so combo positions like "PG-SG" form their own group.
type Position string

const (
	POS_UNKNOWN Position = ""
	POS_PG      Position = "PG"
	POS_SG      Position = "SG"
	POS_SF      Position = "SF"
	POS_PF      Position = "PF"
	POS_C       Position = "C"
)

func ParsePosition(pos string) Position {
	return Position(strings.ToUpper(strings.TrimSpace(pos)))
}

func (p Position) String() string {
	return string(p)
}
