// Package form holds the single-respondent attendance form state machine.
// A State is an immutable-per-request snapshot; Apply is the only way to
// change it and always returns a new value. Rendering is a pure projection
// of State (see Visible), so the HTTP layer carries no form logic.
package form

import (
	"strings"

	"github.com/ropiclub/attendance/internal/domain"
)

// Phase tracks where the respondent is in the submit cycle. Editing is the
// resting state; Success and Failed only color the message shown above the
// form — both are left again by the next field edit.
type Phase string

const (
	PhaseEditing Phase = "editing"
	PhaseSuccess Phase = "success"
	PhaseFailed  Phase = "failed"
)

// State is one respondent's in-progress answers. Guest name slots live in
// a fixed-size array so partially typed names survive guest-count changes;
// only the first GuestCount slots are rendered or submitted.
type State struct {
	Phase      Phase                    `json:"phase"`
	Name       string                   `json:"name"`
	Attending  bool                     `json:"attending"`
	PastEvent  bool                     `json:"past_event"`
	TargetDate string                   `json:"target_date"`
	GuestCount int                      `json:"guest_count"`
	GuestNames [domain.MaxGuests]string `json:"guest_names"`
	Message    string                   `json:"message"`

	// GuestsWritten is how many guest rows the last successful submission
	// actually stored, after blank names were dropped.
	GuestsWritten int `json:"guests_written"`
}

// NewState returns the fully-populated default state: first roster member
// selected, attending, no past date, no guests.
func NewState(roster domain.Roster) State {
	s := State{Phase: PhaseEditing, Attending: true}
	if len(roster) > 0 {
		s.Name = roster[0]
	}
	return s
}

// Event is a single field change. Exactly one implementation per field.
type Event interface {
	apply(s State) State
}

// SetName selects the respondent. Names outside the roster are ignored —
// the dropdown makes them impossible, so they are treated as noise.
type SetName struct {
	Roster domain.Roster
	Name   string
}

func (e SetName) apply(s State) State {
	if !e.Roster.Contains(e.Name) {
		return s
	}
	s.Name = e.Name
	return s
}

// SetAttending answers the attendance question. Answering "No" zeroes the
// guest count; the guest-name fields disappear with it.
type SetAttending struct{ Attending bool }

func (e SetAttending) apply(s State) State {
	s.Attending = e.Attending
	if !s.Attending {
		s.GuestCount = 0
	}
	return s
}

// SetPastEvent toggles registering for a past occasion. Checking it
// preselects Default (the generator's third-from-last date); unchecking
// clears the date so the submission targets the upcoming occasion again.
type SetPastEvent struct {
	PastEvent bool
	Default   string
}

func (e SetPastEvent) apply(s State) State {
	s.PastEvent = e.PastEvent
	if s.PastEvent {
		if s.TargetDate == "" {
			s.TargetDate = e.Default
		}
	} else {
		s.TargetDate = ""
	}
	return s
}

// SetTargetDate picks the past occasion's date. Only meaningful while the
// past-event box is checked.
type SetTargetDate struct{ Date string }

func (e SetTargetDate) apply(s State) State {
	if !s.PastEvent {
		return s
	}
	s.TargetDate = e.Date
	return s
}

// SetGuestCount chooses how many guests come along, clamped to [0, 10].
// Ignored while not attending.
type SetGuestCount struct{ Count int }

func (e SetGuestCount) apply(s State) State {
	if !s.Attending {
		return s
	}
	s.GuestCount = clampGuests(e.Count)
	return s
}

// SetGuestName fills one guest name slot. Slots outside [0, 10) are
// ignored; slots beyond the current count are still writable so input is
// kept when the count is lowered and raised again.
type SetGuestName struct {
	Index int
	Name  string
}

func (e SetGuestName) apply(s State) State {
	if e.Index < 0 || e.Index >= domain.MaxGuests {
		return s
	}
	s.GuestNames[e.Index] = e.Name
	return s
}

// Apply runs one field event against the state and returns the new state.
// Any edit returns the phase to Editing and clears a stale outcome message,
// so a failed submit's data stays put until the user changes something.
func Apply(s State, e Event) State {
	next := e.apply(s)
	next.Phase = PhaseEditing
	next.Message = ""
	next.GuestsWritten = 0
	return next
}

// Visibility says which dependent controls the current state reveals.
type Visibility struct {
	// GuestCount is true when the guest-count selector is shown.
	GuestCount bool `json:"guest_count"`

	// GuestNameSlots is how many guest name inputs are shown.
	GuestNameSlots int `json:"guest_name_slots"`

	// DateSelect is true when the past-date selector is shown.
	DateSelect bool `json:"date_select"`
}

// Visible computes field visibility purely from the current values.
func (s State) Visible() Visibility {
	v := Visibility{DateSelect: s.PastEvent}
	if s.Attending {
		v.GuestCount = true
		v.GuestNameSlots = s.GuestCount
	}
	return v
}

// Rows builds the submission batch: one primary row, plus one row per
// non-blank trimmed guest name in slot order. Blank guest names are
// skipped silently — an intentional leniency, not an error. A respondent
// answering "No" never produces guest rows, whatever the slots hold.
func (s State) Rows(submittedAt string) []domain.Row {
	attending := domain.AttendanceNo
	if s.Attending {
		attending = domain.AttendanceYes
	}

	eventDate := ""
	if s.PastEvent {
		eventDate = s.TargetDate
	}

	rows := []domain.Row{{
		Name:        s.Name,
		Attending:   attending,
		SubmittedAt: submittedAt,
		EventDate:   eventDate,
	}}

	if !s.Attending {
		return rows
	}
	for i := 0; i < s.GuestCount && i < domain.MaxGuests; i++ {
		if strings.TrimSpace(s.GuestNames[i]) == "" {
			continue
		}
		rows = append(rows, domain.GuestRow(s.Name, s.GuestNames[i], submittedAt, eventDate))
	}
	return rows
}

// Succeed returns the post-submission state: all fields back to defaults,
// phase Success, and the confirmation message carrying the written guest
// tally. The next render regenerates the date default on demand.
func (s State) Succeed(roster domain.Roster, message string, guests int) State {
	next := NewState(roster)
	next.Phase = PhaseSuccess
	next.Message = message
	next.GuestsWritten = guests
	return next
}

// Fail returns the failed-submission state: every entered value intact,
// phase Failed, the gateway's message shown verbatim.
func (s State) Fail(message string) State {
	s.Phase = PhaseFailed
	s.Message = message
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
