package models

import (
	"sort"
	"time"
)

// UnassignedMembers returns the members whose id does not appear in the
// given assignments, preserving the input order. Pure function of its
// inputs so callers can recompute it after every refetch instead of
// caching it across mutations.
func UnassignedMembers(members []TeamMember, assignments []TeamAssignment) []TeamMember {
	assigned := make(map[int]struct{}, len(assignments))
	for _, a := range assignments {
		assigned[a.TeamMemberID] = struct{}{}
	}

	out := make([]TeamMember, 0, len(members))
	for _, m := range members {
		if _, ok := assigned[m.ID]; !ok {
			out = append(out, m)
		}
	}
	return out
}

// AssignedMembers returns the members referenced by the assignments, in
// assignment order. Assignments pointing at a deleted member are skipped.
func AssignedMembers(members []TeamMember, assignments []TeamAssignment) []TeamMember {
	byID := make(map[int]TeamMember, len(members))
	for _, m := range members {
		byID[m.ID] = m
	}

	out := make([]TeamMember, 0, len(assignments))
	for _, a := range assignments {
		if m, ok := byID[a.TeamMemberID]; ok {
			out = append(out, m)
		}
	}
	return out
}

// UpcomingRallies returns the rallies starting at or after now, sorted by
// start date ascending, capped to limit. limit <= 0 means no cap.
func UpcomingRallies(rallies []RallyEvent, now time.Time, limit int) []RallyEvent {
	out := make([]RallyEvent, 0, len(rallies))
	for _, r := range rallies {
		if !r.StartDate.Before(now) {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartDate.Before(out[j].StartDate)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
