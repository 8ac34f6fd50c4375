// Package wizard holds the admin bulk-registration state machine: a
// three-step flow marking attendance for the whole roster in one batch.
// Like the personal form, State is a value and Apply returns a new one;
// the steps are navigation positions, not separate data holders, so input
// survives back/forward navigation untouched.
package wizard

import (
	"strings"

	"github.com/ropiclub/attendance/internal/domain"
)

// Wizard steps. Navigation clamps to this range; nothing blocks advancing.
const (
	StepSelect = 1 // presence checkboxes + guest counts
	StepGuests = 2 // guest name inputs
	StepReview = 3 // review lines + submit
)

// EmptyGuestMarker is shown in the review for a guest slot that was never
// filled. The stored rows skip such slots; only the preview flags them.
const EmptyGuestMarker = "[EMPTY GUEST]"

// Entry is one roster member's row in the wizard. Guest name slots are a
// fixed array for the same reason as in the personal form: lowering and
// raising the count must not lose typed names.
type Entry struct {
	Name       string                   `json:"name"`
	Present    bool                     `json:"present"`
	GuestCount int                      `json:"guest_count"`
	Guests     [domain.MaxGuests]string `json:"guests"`
}

// State is one wizard cycle. Entries always cover the entire roster in
// roster order, present or not. Date is the occasion being registered and
// survives a post-submission reset.
type State struct {
	Step    int     `json:"step"`
	Date    string  `json:"date"`
	Entries []Entry `json:"entries"`
	Message string  `json:"message"`
	Failed  bool    `json:"failed"`
}

// NewState starts a wizard cycle at step 1 with every member absent and
// the given occasion date preselected.
func NewState(roster domain.Roster, date string) State {
	entries := make([]Entry, len(roster))
	for i, name := range roster {
		entries[i] = Entry{Name: name}
	}
	return State{Step: StepSelect, Date: date, Entries: entries}
}

// Event is one wizard interaction.
type Event interface {
	apply(s State) State
}

// SetDate picks the occasion date on step 1.
type SetDate struct{ Date string }

func (e SetDate) apply(s State) State {
	s.Date = e.Date
	return s
}

// SetPresent toggles one member's presence checkbox.
type SetPresent struct {
	Member  string
	Present bool
}

func (e SetPresent) apply(s State) State {
	return s.withEntry(e.Member, func(en *Entry) {
		en.Present = e.Present
	})
}

// SetGuestCount sets one member's guest count, clamped to [0, 10].
type SetGuestCount struct {
	Member string
	Count  int
}

func (e SetGuestCount) apply(s State) State {
	return s.withEntry(e.Member, func(en *Entry) {
		en.GuestCount = clampGuests(e.Count)
	})
}

// SetGuestName commits one guest name slot immediately (commit-on-change:
// partial input must survive back/forward navigation).
type SetGuestName struct {
	Member string
	Index  int
	Name   string
}

func (e SetGuestName) apply(s State) State {
	if e.Index < 0 || e.Index >= domain.MaxGuests {
		return s
	}
	return s.withEntry(e.Member, func(en *Entry) {
		en.Guests[e.Index] = e.Name
	})
}

// Next advances one step; Back returns one step. Both clamp to [1, 3] and
// never touch the collected data.
type Next struct{}

func (Next) apply(s State) State {
	if s.Step < StepReview {
		s.Step++
	}
	return s
}

type Back struct{}

func (Back) apply(s State) State {
	if s.Step > StepSelect {
		s.Step--
	}
	return s
}

// Apply runs one event and returns the new state. Any interaction clears
// a stale submit outcome message.
func Apply(s State, e Event) State {
	next := e.apply(s)
	next.Message = ""
	next.Failed = false
	return next
}

// withEntry copies the entries slice, mutates the named member's copy, and
// returns the new state. Unknown members are ignored.
func (s State) withEntry(member string, mutate func(*Entry)) State {
	idx := -1
	for i := range s.Entries {
		if s.Entries[i].Name == member {
			idx = i
			break
		}
	}
	if idx < 0 {
		return s
	}

	entries := make([]Entry, len(s.Entries))
	copy(entries, s.Entries)
	mutate(&entries[idx])
	s.Entries = entries
	return s
}

// PresentCount returns how many members are marked present.
func (s State) PresentCount() int {
	n := 0
	for _, en := range s.Entries {
		if en.Present {
			n++
		}
	}
	return n
}

// CanSubmit reports whether the review step's submit control is enabled.
func (s State) CanSubmit() bool {
	return s.Step == StepReview && s.PresentCount() > 0
}

// ReviewLine is one present member in the step-3 preview, with one entry
// per guest slot: the trimmed name, or EmptyGuestMarker for a blank slot.
type ReviewLine struct {
	Member string   `json:"member"`
	Guests []string `json:"guests"`
}

// Review recomputes the step-3 preview from the current state.
func (s State) Review() []ReviewLine {
	var lines []ReviewLine
	for _, en := range s.Entries {
		if !en.Present {
			continue
		}
		line := ReviewLine{Member: en.Name, Guests: []string{}}
		for i := 0; i < en.GuestCount; i++ {
			name := strings.TrimSpace(en.Guests[i])
			if name == "" {
				name = EmptyGuestMarker
			}
			line.Guests = append(line.Guests, name)
		}
		lines = append(lines, line)
	}
	return lines
}

// Rows builds the submission batch: a primary row per present member plus
// one row per non-blank trimmed guest slot, all dated to the selected
// occasion. Blank slots are flagged in Review but skipped here.
func (s State) Rows(submittedAt string) []domain.Row {
	var rows []domain.Row
	for _, en := range s.Entries {
		if !en.Present {
			continue
		}
		rows = append(rows, domain.Row{
			Name:        en.Name,
			Attending:   domain.AttendanceYes,
			SubmittedAt: submittedAt,
			EventDate:   s.Date,
		})
		for i := 0; i < en.GuestCount; i++ {
			if strings.TrimSpace(en.Guests[i]) == "" {
				continue
			}
			rows = append(rows, domain.GuestRow(en.Name, en.Guests[i], submittedAt, s.Date))
		}
	}
	return rows
}

// Succeed returns the post-submission state: back to step 1, every entry
// cleared, the selected date retained. An earlier revision cleared the
// date too; keeping it is the corrected behavior.
func (s State) Succeed(roster domain.Roster, message string) State {
	next := NewState(roster, s.Date)
	next.Message = message
	return next
}

// Fail keeps the wizard at step 3 with all data intact and shows the
// gateway's message verbatim.
func (s State) Fail(message string) State {
	s.Message = message
	s.Failed = true
	return s
}

func clampGuests(n int) int {
	if n < 0 {
		return 0
	}
	if n > domain.MaxGuests {
		return domain.MaxGuests
	}
	return n
}
