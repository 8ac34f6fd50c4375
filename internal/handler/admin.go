package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/ropiclub/attendance/internal/domain"
	"github.com/ropiclub/attendance/internal/wizard"
)

// adminSnapshot is the render model for the bulk-registration wizard.
// Review is populated on the review step only; other steps get null.
type adminSnapshot struct {
	State     wizard.State        `json:"state"`
	Dates     []string            `json:"dates"`
	Review    []wizard.ReviewLine `json:"review,omitempty"`
	CanSubmit bool                `json:"can_submit"`
}

// adminEventRequest is one wizard interaction. Type selects the event;
// Member addresses a roster entry where applicable.
type adminEventRequest struct {
	Type   string `json:"type"`
	Member string `json:"member"`
	Value  string `json:"value"`
	Index  int    `json:"index"`
	On     bool   `json:"on"`
	Count  int    `json:"count"`
}

// adminSubmitResponse reports a stored bulk submission and the reset
// wizard state (date retained).
type adminSubmitResponse struct {
	Result domain.SubmissionResult `json:"result"`
	State  wizard.State            `json:"state"`
}

// GetAdmin handles GET /api/admin: the current wizard snapshot.
func (s *Server) GetAdmin(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	s.writeAdminSnapshot(w, sess.WizardState())
}

// PostAdminEvent handles POST /api/admin/events: one wizard interaction,
// committed immediately so partial input survives back/forward navigation.
func (s *Server) PostAdminEvent(w http.ResponseWriter, r *http.Request) {
	var req adminEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "malformed event body")
		return
	}

	ev, ok := adminEvent(req)
	if !ok {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "unknown event type: "+req.Type)
		return
	}

	sess := s.session(w, r)
	st := sess.UpdateWizard(func(st wizard.State) wizard.State {
		return wizard.Apply(st, ev)
	})
	s.writeAdminSnapshot(w, st)
}

// adminEvent maps a request payload to a wizard event.
func adminEvent(req adminEventRequest) (wizard.Event, bool) {
	switch req.Type {
	case "set_date":
		return wizard.SetDate{Date: req.Value}, true
	case "set_present":
		return wizard.SetPresent{Member: req.Member, Present: req.On}, true
	case "set_guest_count":
		return wizard.SetGuestCount{Member: req.Member, Count: req.Count}, true
	case "set_guest_name":
		return wizard.SetGuestName{Member: req.Member, Index: req.Index, Name: req.Value}, true
	case "next":
		return wizard.Next{}, true
	case "back":
		return wizard.Back{}, true
	}
	return nil, false
}

// PostAdminSubmit handles POST /api/admin/submit. Only valid on the review
// step with at least one member present. Success resets the wizard to step
// 1 keeping the selected date; failure leaves everything at step 3 intact.
func (s *Server) PostAdminSubmit(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)

	var result domain.SubmissionResult
	var submitErr error
	st := sess.UpdateWizard(func(st wizard.State) wizard.State {
		if !st.CanSubmit() {
			submitErr = fmt.Errorf("%w: nothing to submit", domain.ErrValidation)
			return st
		}
		result, submitErr = s.submissions.SubmitBulk(r.Context(), st, s.dates.Timestamp())
		if submitErr != nil {
			return st.Fail(unwrapMessage(submitErr))
		}
		return st.Succeed(s.roster, result.Message)
	})

	if submitErr != nil {
		s.writeSubmitError(w, submitErr)
		return
	}
	writeJSON(w, http.StatusOK, adminSubmitResponse{Result: result, State: st})
}

func (s *Server) writeAdminSnapshot(w http.ResponseWriter, st wizard.State) {
	snap := adminSnapshot{
		State:     st,
		Dates:     s.dates.Dates(),
		CanSubmit: st.CanSubmit(),
	}
	if st.Step == wizard.StepReview {
		snap.Review = st.Review()
	}
	writeJSON(w, http.StatusOK, snap)
}
