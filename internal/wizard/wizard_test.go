package wizard_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ropiclub/attendance/internal/domain"
	"github.com/ropiclub/attendance/internal/wizard"
)

var roster = domain.Roster{"A", "B", "C"}

const (
	ts   = "2026-01-06 18:00:00"
	date = "2026-01-06"
)

// TestNewState_coversWholeRoster verifies an entry exists for every
// roster member from the start, present or not.
func TestNewState_coversWholeRoster(t *testing.T) {
	s := wizard.NewState(roster, date)

	assert.Equal(t, wizard.StepSelect, s.Step)
	assert.Equal(t, date, s.Date)
	require.Len(t, s.Entries, 3)
	for i, name := range roster {
		assert.Equal(t, name, s.Entries[i].Name)
		assert.False(t, s.Entries[i].Present)
		assert.Zero(t, s.Entries[i].GuestCount)
	}
}

// TestApply_navigationClampsAndPreservesData verifies back/forward keeps
// all selections and never leaves [1, 3].
func TestApply_navigationClampsAndPreservesData(t *testing.T) {
	s := wizard.NewState(roster, date)
	s = wizard.Apply(s, wizard.Back{})
	assert.Equal(t, wizard.StepSelect, s.Step)

	s = wizard.Apply(s, wizard.SetPresent{Member: "B", Present: true})
	s = wizard.Apply(s, wizard.SetGuestCount{Member: "B", Count: 2})
	s = wizard.Apply(s, wizard.Next{})
	s = wizard.Apply(s, wizard.SetGuestName{Member: "B", Index: 0, Name: "Zed"})
	s = wizard.Apply(s, wizard.Back{})
	assert.Equal(t, wizard.StepSelect, s.Step)

	// Selections and the partially typed guest name survived.
	assert.True(t, s.Entries[1].Present)
	assert.Equal(t, 2, s.Entries[1].GuestCount)
	assert.Equal(t, "Zed", s.Entries[1].Guests[0])

	s = wizard.Apply(s, wizard.Next{})
	s = wizard.Apply(s, wizard.Next{})
	s = wizard.Apply(s, wizard.Next{})
	assert.Equal(t, wizard.StepReview, s.Step)
}

// TestApply_ignoresUnknownMemberAndBadSlot verifies events addressing a
// non-roster member or an out-of-range slot are dropped.
func TestApply_ignoresUnknownMemberAndBadSlot(t *testing.T) {
	s := wizard.NewState(roster, date)
	before := s

	s = wizard.Apply(s, wizard.SetPresent{Member: "Mallory", Present: true})
	s = wizard.Apply(s, wizard.SetGuestName{Member: "A", Index: 10, Name: "x"})

	assert.Equal(t, before.Entries, s.Entries)
}

// TestCanSubmit_requiresPresentMember verifies the submit control is
// disabled until at least one member is present on the review step.
func TestCanSubmit_requiresPresentMember(t *testing.T) {
	s := wizard.NewState(roster, date)
	s = wizard.Apply(s, wizard.Next{})
	s = wizard.Apply(s, wizard.Next{})
	require.Equal(t, wizard.StepReview, s.Step)
	assert.False(t, s.CanSubmit())

	s = wizard.Apply(s, wizard.SetPresent{Member: "C", Present: true})
	assert.True(t, s.CanSubmit())
}

// TestReview_flagsEmptyGuestSlots verifies blank slots show the explicit
// marker in the preview while filled slots show the trimmed name.
func TestReview_flagsEmptyGuestSlots(t *testing.T) {
	s := wizard.NewState(roster, date)
	s = wizard.Apply(s, wizard.SetPresent{Member: "A", Present: true})
	s = wizard.Apply(s, wizard.SetGuestCount{Member: "A", Count: 2})
	s = wizard.Apply(s, wizard.SetGuestName{Member: "A", Index: 1, Name: "  Zed "})
	s = wizard.Apply(s, wizard.SetPresent{Member: "C", Present: true})

	lines := s.Review()

	require.Len(t, lines, 2)
	assert.Equal(t, "A", lines[0].Member)
	assert.Equal(t, []string{wizard.EmptyGuestMarker, "Zed"}, lines[0].Guests)
	assert.Equal(t, "C", lines[1].Member)
	assert.Empty(t, lines[1].Guests)
}

// TestRows_bulkScenario is the §8 scenario: A present with one guest
// "Zed", B absent — exactly two rows, both attending, both dated.
func TestRows_bulkScenario(t *testing.T) {
	s := wizard.NewState(domain.Roster{"A", "B"}, date)
	s = wizard.Apply(s, wizard.SetPresent{Member: "A", Present: true})
	s = wizard.Apply(s, wizard.SetGuestCount{Member: "A", Count: 1})
	s = wizard.Apply(s, wizard.Next{})
	s = wizard.Apply(s, wizard.SetGuestName{Member: "A", Index: 0, Name: "Zed"})
	s = wizard.Apply(s, wizard.Next{})

	rows := s.Rows(ts)

	require.Equal(t, []domain.Row{
		{Name: "A", Attending: domain.AttendanceYes, SubmittedAt: ts, EventDate: date},
		{Name: "A - Zed", Attending: domain.AttendanceYes, SubmittedAt: ts, EventDate: date},
	}, rows)
}

// TestRows_skipsBlankGuestSlots verifies blank slots are dropped from the
// stored batch even though Review flags them.
func TestRows_skipsBlankGuestSlots(t *testing.T) {
	s := wizard.NewState(roster, date)
	s = wizard.Apply(s, wizard.SetPresent{Member: "B", Present: true})
	s = wizard.Apply(s, wizard.SetGuestCount{Member: "B", Count: 3})
	s = wizard.Apply(s, wizard.SetGuestName{Member: "B", Index: 1, Name: "   "})
	s = wizard.Apply(s, wizard.SetGuestName{Member: "B", Index: 2, Name: "Kata"})

	rows := s.Rows(ts)

	require.Len(t, rows, 2)
	assert.Equal(t, "B", rows[0].Name)
	assert.Equal(t, "B - Kata", rows[1].Name)
}

// TestSucceed_resetsEverythingButDate verifies the corrected reset rule:
// step back to 1, entries cleared, date retained.
func TestSucceed_resetsEverythingButDate(t *testing.T) {
	s := wizard.NewState(roster, date)
	s = wizard.Apply(s, wizard.SetDate{Date: "2025-12-30"})
	s = wizard.Apply(s, wizard.SetPresent{Member: "A", Present: true})
	s = wizard.Apply(s, wizard.SetGuestCount{Member: "A", Count: 1})
	s = wizard.Apply(s, wizard.SetGuestName{Member: "A", Index: 0, Name: "Zed"})
	s = wizard.Apply(s, wizard.Next{})
	s = wizard.Apply(s, wizard.Next{})

	s = s.Succeed(roster, "Registered 1 member")

	assert.Equal(t, wizard.StepSelect, s.Step)
	assert.Equal(t, "2025-12-30", s.Date)
	assert.Equal(t, "Registered 1 member", s.Message)
	for _, en := range s.Entries {
		assert.False(t, en.Present)
		assert.Zero(t, en.GuestCount)
		for _, g := range en.Guests {
			assert.Empty(t, g)
		}
	}
}

// TestFail_leavesStateIntact verifies the round-trip property: state
// before submit equals state after a failed submit, modulo the message.
func TestFail_leavesStateIntact(t *testing.T) {
	s := wizard.NewState(roster, date)
	s = wizard.Apply(s, wizard.SetPresent{Member: "A", Present: true})
	s = wizard.Apply(s, wizard.Next{})
	s = wizard.Apply(s, wizard.Next{})
	before := s

	failed := s.Fail("append: backend error")

	assert.Equal(t, wizard.StepReview, failed.Step)
	assert.True(t, failed.Failed)
	assert.Equal(t, "append: backend error", failed.Message)

	failed.Message = before.Message
	failed.Failed = before.Failed
	assert.Equal(t, before, failed)
}
