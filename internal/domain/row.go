// Package domain contains the core data types for the attendance register.
// This package has zero external dependencies and is imported by every other
// internal package (schedule, sheets, form, wizard, service, handler).
package domain

import "strings"

// Attendance is the answer to "are you coming?". Stored verbatim in the
// second spreadsheet column, so the values are the literal cell contents.
type Attendance string

const (
	AttendanceYes Attendance = "Yes"
	AttendanceNo  Attendance = "No"
)

// MaxGuests is the largest number of guests one person can bring along.
const MaxGuests = 10

// TimestampLayout is the wall-clock format written into the third column.
const TimestampLayout = "2006-01-02 15:04:05"

// Row is one persisted submission: a single line appended to the sheet.
// EventDate is empty for the upcoming occasion and a YYYY-MM-DD date when
// a past occasion is being registered retroactively.
type Row struct {
	Name        string     `json:"name"`
	Attending   Attendance `json:"attending"`
	SubmittedAt string     `json:"submitted_at"`
	EventDate   string     `json:"event_date"`
}

// GuestRow builds the row for a guest brought by member. Guests are always
// attending; the display name ties the guest to whoever registered them.
func GuestRow(member, guest, submittedAt, eventDate string) Row {
	return Row{
		Name:        member + " - " + strings.TrimSpace(guest),
		Attending:   AttendanceYes,
		SubmittedAt: submittedAt,
		EventDate:   eventDate,
	}
}

// Values returns the row as the ordered cell values the sheet expects:
// Name, Attending, Timestamp, EventDate.
func (r Row) Values() []interface{} {
	return []interface{}{r.Name, string(r.Attending), r.SubmittedAt, r.EventDate}
}
