// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package abnt

import (
	"fmt"
	"time"
)

var monthAbbrev = [...]string{
	"jan.", "fev.", "mar.", "abr.", "maio", "jun.",
	"jul.", "ago.", "set.", "out.", "nov.", "dez.",
}

// AccessDate formats t the way ABNT writes access dates: "05 ago. 2023".
func AccessDate(t time.Time) string {
	return fmt.Sprintf("%02d %s %d", t.Day(), monthAbbrev[t.Month()-1], t.Year())
}
