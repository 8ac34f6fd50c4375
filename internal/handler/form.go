package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ropiclub/attendance/internal/domain"
	"github.com/ropiclub/attendance/internal/form"
	"github.com/ropiclub/attendance/internal/schedule"
)

// formSnapshot is the full render model for the attendance form page.
type formSnapshot struct {
	State            form.State      `json:"state"`
	Visibility       form.Visibility `json:"visibility"`
	Roster           domain.Roster   `json:"roster"`
	Dates            []string        `json:"dates"`
	DefaultDateIndex int             `json:"default_date_index"`
	Connected        bool            `json:"connected"`
}

// formEventRequest is one field change from the page. Type selects the
// event; the other fields are read per type.
type formEventRequest struct {
	Type  string `json:"type"`
	Value string `json:"value"`
	Index int    `json:"index"`
	On    bool   `json:"on"`
	Count int    `json:"count"`
}

// formSubmitResponse reports a stored submission together with the reset
// form state.
type formSubmitResponse struct {
	Result domain.SubmissionResult `json:"result"`
	State  form.State              `json:"state"`
}

// GetForm handles GET /api/form: the current state snapshot, regenerating
// the selectable dates on every render.
func (s *Server) GetForm(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	s.writeFormSnapshot(w, r, sess.FormState())
}

// PostFormEvent handles POST /api/form/events: applies one field change
// and returns the new snapshot. Unknown event types are rejected; events
// the state machine considers noise are ignored silently.
func (s *Server) PostFormEvent(w http.ResponseWriter, r *http.Request) {
	var req formEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "malformed event body")
		return
	}

	ev, ok := s.formEvent(req)
	if !ok {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "unknown event type: "+req.Type)
		return
	}

	sess := s.session(w, r)
	st := sess.UpdateForm(func(st form.State) form.State {
		return form.Apply(st, ev)
	})
	s.writeFormSnapshot(w, r, st)
}

// formEvent maps a request payload to a form event.
func (s *Server) formEvent(req formEventRequest) (form.Event, bool) {
	switch req.Type {
	case "set_name":
		return form.SetName{Roster: s.roster, Name: req.Value}, true
	case "set_attending":
		return form.SetAttending{Attending: req.On}, true
	case "set_past_event":
		return form.SetPastEvent{PastEvent: req.On, Default: s.dates.DefaultDate()}, true
	case "set_target_date":
		return form.SetTargetDate{Date: req.Value}, true
	case "set_guest_count":
		return form.SetGuestCount{Count: req.Count}, true
	case "set_guest_name":
		return form.SetGuestName{Index: req.Index, Name: req.Value}, true
	}
	return nil, false
}

// PostFormSubmit handles POST /api/form/submit: builds the row batch from
// the session's form state and writes it through the orchestrator. On
// success the form resets to defaults; on failure every entered value
// stays put and the gateway's message is surfaced verbatim.
func (s *Server) PostFormSubmit(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)

	var result domain.SubmissionResult
	var submitErr error
	st := sess.UpdateForm(func(st form.State) form.State {
		result, submitErr = s.submissions.SubmitPersonal(r.Context(), st, s.dates.Timestamp())
		if submitErr != nil {
			return st.Fail(unwrapMessage(submitErr))
		}
		return st.Succeed(s.roster, result.Message, result.Guests)
	})

	if submitErr != nil {
		s.writeSubmitError(w, submitErr)
		return
	}
	writeJSON(w, http.StatusOK, formSubmitResponse{Result: result, State: st})
}

// writeSubmitError maps orchestrator errors to HTTP statuses, shared by
// both submit endpoints.
func (s *Server) writeSubmitError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotConnected):
		writeError(w, http.StatusServiceUnavailable, "not_connected",
			"No connection to the attendance sheet. Please refresh the page and try again.")
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusUnprocessableEntity, "validation_error", unwrapMessage(err))
	default:
		writeError(w, http.StatusBadGateway, "write_failed", unwrapMessage(err))
	}
}

func (s *Server) writeFormSnapshot(w http.ResponseWriter, r *http.Request, st form.State) {
	dates := s.dates.Dates()
	writeJSON(w, http.StatusOK, formSnapshot{
		State:            st,
		Visibility:       st.Visible(),
		Roster:           s.roster,
		Dates:            dates,
		DefaultDateIndex: schedule.DefaultIndex(len(dates)),
		Connected:        s.counter.Connected(r.Context()),
	})
}
