package domain

// Team is an ordered selection of players in add order.
type Team []Player

// Contains reports whether a player with the given name is in the team.
func (t Team) Contains(name string) bool {
	return t.indexOf(name) >= 0
}

// TotalRuns sums the effective runs of every player in the team.
func (t Team) TotalRuns() int {
	total := 0
	for _, p := range t {
		total += p.Runs.Effective()
	}
	return total
}

// Clone returns a copy that shares no backing array with t.
func (t Team) Clone() Team {
	out := make(Team, len(t))
	copy(out, t)
	return out
}

// dedupe drops later entries whose name already appeared.
func (t Team) dedupe() Team {
	seen := make(map[string]struct{}, len(t))
	out := make(Team, 0, len(t))
	for _, p := range t {
		if _, ok := seen[p.Name]; ok {
			continue
		}
		seen[p.Name] = struct{}{}
		out = append(out, p)
	}
	return out
}

func (t Team) indexOf(name string) int {
	for i, p := range t {
		if p.Name == name {
			return i
		}
	}
	return -1
}
