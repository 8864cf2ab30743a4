package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnassignedMembers(t *testing.T) {
	members := []TeamMember{{ID: 1, Name: "m1"}, {ID: 2, Name: "m2"}}
	assignments := []TeamAssignment{{ID: 10, TeamMemberID: 1}}

	got := UnassignedMembers(members, assignments)

	require.Len(t, got, 1)
	assert.Equal(t, "m2", got[0].Name)
}

func TestUnassignedMembersNoAssignments(t *testing.T) {
	members := []TeamMember{{ID: 1}, {ID: 2}}

	got := UnassignedMembers(members, nil)

	assert.Equal(t, members, got)
}

func TestAssignedMembers(t *testing.T) {
	members := []TeamMember{{ID: 1, Name: "m1"}, {ID: 2, Name: "m2"}, {ID: 3, Name: "m3"}}
	assignments := []TeamAssignment{
		{ID: 10, TeamMemberID: 3},
		{ID: 11, TeamMemberID: 1},
		{ID: 12, TeamMemberID: 99},
	}

	got := AssignedMembers(members, assignments)

	require.Len(t, got, 2, "assignments to deleted members are skipped")
	assert.Equal(t, "m3", got[0].Name)
	assert.Equal(t, "m1", got[1].Name)
}

func TestUpcomingRallies(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2026, 6, d, 0, 0, 0, 0, time.UTC) }
	rallies := []RallyEvent{
		{ID: 1, StartDate: day(1)},
		{ID: 2, StartDate: day(20)},
		{ID: 3, StartDate: day(12)},
		{ID: 4, StartDate: day(15)},
		{ID: 5, StartDate: day(28)},
	}
	now := day(10)

	got := UpcomingRallies(rallies, now, 3)

	require.Len(t, got, 3)
	assert.Equal(t, []int{3, 4, 2}, []int{got[0].ID, got[1].ID, got[2].ID})
}

func TestUpcomingRalliesIncludesToday(t *testing.T) {
	now := time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC)
	rallies := []RallyEvent{{ID: 1, StartDate: now}}

	got := UpcomingRallies(rallies, now, 0)

	assert.Len(t, got, 1, "a rally starting today is still upcoming")
}
