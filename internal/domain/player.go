package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// NoDataMarker is the placeholder the stats feed uses when a player has no
// runs recorded.
const NoDataMarker = "-"

// Runs is a run count that may be absent.
// The zero value is the "no data" sentinel.
type Runs struct {
	n  int
	ok bool
}

// NoRuns is the "no data" sentinel.
var NoRuns = Runs{}

// RunsOf returns a Runs holding n.
func RunsOf(n int) Runs {
	return Runs{n: n, ok: true}
}

// Value returns the run count and whether one is recorded.
func (r Runs) Value() (int, bool) {
	return r.n, r.ok
}

// Effective returns the run count, or 0 for the sentinel.
func (r Runs) Effective() int {
	if !r.ok {
		return 0
	}
	return r.n
}

// String renders the count, or NoDataMarker for the sentinel.
func (r Runs) String() string {
	if !r.ok {
		return NoDataMarker
	}
	return strconv.Itoa(r.n)
}

// MarshalJSON encodes a number, or "-" for the sentinel.
func (r Runs) MarshalJSON() ([]byte, error) {
	if !r.ok {
		return json.Marshal(NoDataMarker)
	}
	return []byte(strconv.Itoa(r.n)), nil
}

// UnmarshalJSON accepts numbers, numeric strings and the no-data marker.
// Strings without a leading integer and numbers that do not fit in an int
// decode to the sentinel.
func (r *Runs) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	switch {
	case s == "null":
		*r = NoRuns
		return nil
	case strings.HasPrefix(s, `"`):
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return fmt.Errorf("decode runs: %w", err)
		}
		*r = ParseRuns(str)
		return nil
	default:
		var f float64
		if err := json.Unmarshal(b, &f); err != nil {
			return fmt.Errorf("decode runs: %w", err)
		}
		if math.IsNaN(f) || f >= math.MaxInt || f < math.MinInt {
			*r = NoRuns
			return nil
		}
		*r = RunsOf(int(f))
		return nil
	}
}

// ParseRuns parses the leading integer of s. Thousands separators are
// ignored, so "1,024" is 1024 and "87*" is 87. Anything else is NoRuns.
func ParseRuns(s string) Runs {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return NoRuns
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return NoRuns
	}
	return RunsOf(n)
}

// Player is a roster entry. Name is unique within a roster.
type Player struct {
	Name string `json:"player"`
	Runs Runs   `json:"runs"`
}

// Roster is the ordered list of players available for selection.
type Roster []Player

// Find returns the player with the given name. An exact match wins over a
// case-insensitive one.
func (r Roster) Find(name string) (Player, bool) {
	for _, p := range r {
		if p.Name == name {
			return p, true
		}
	}
	for _, p := range r {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return Player{}, false
}
