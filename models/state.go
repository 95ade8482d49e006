package models

import (
	"fmt"
	"sort"
	"strings"
)

// TargetSet - set of pending target cells. Kept sorted so that two
// sets with the same members always produce the same Key regardless
// of insertion order. Treated as immutable: Without returns a copy.
type TargetSet []Position

// NewTargetSet - canonical target set from arbitrary positions
// (sorted, duplicates removed)
func NewTargetSet(points ...Position) TargetSet {
	seen := make(map[Position]bool, len(points))
	ts := make(TargetSet, 0, len(points))
	for _, p := range points {
		if !seen[p] {
			seen[p] = true
			ts = append(ts, p)
		}
	}
	sort.Slice(ts, func(i, j int) bool {
		if ts[i].X != ts[j].X {
			return ts[i].X < ts[j].X
		}
		return ts[i].Y < ts[j].Y
	})
	return ts
}

// Contains - membership check
func (ts TargetSet) Contains(p Position) bool {
	for _, t := range ts {
		if t == p {
			return true
		}
	}
	return false
}

// Without - copy of the set with p removed. Returns the receiver
// unchanged when p is not a member, so callers can always treat the
// result as a fresh value.
func (ts TargetSet) Without(p Position) TargetSet {
	if !ts.Contains(p) {
		return ts
	}
	out := make(TargetSet, 0, len(ts)-1)
	for _, t := range ts {
		if t != p {
			out = append(out, t)
		}
	}
	return out
}

// Empty - true when no targets remain
func (ts TargetSet) Empty() bool { return len(ts) == 0 }

// Key - canonical order-independent encoding ("x,y;x,y;...")
func (ts TargetSet) Key() string {
	parts := make([]string, len(ts))
	for i, t := range ts {
		parts[i] = fmt.Sprintf("%d,%d", t.X, t.Y)
	}
	return strings.Join(parts, ";")
}

// ========================================
// Search-space state
// ========================================

// State - full search-space key for one navigation leg:
// (position, battery, pending targets). States are created fresh by
// transitions and never mutated, so Key() is safe for visited-state maps.
type State struct {
	Pos     Position
	Battery int
	Targets TargetSet
}

// Key - hashable encoding for visited-state bookkeeping
func (s State) Key() string {
	return fmt.Sprintf("%d,%d|%d|%s", s.Pos.X, s.Pos.Y, s.Battery, s.Targets.Key())
}
