// Package service contains the submission orchestrator shared by the
// personal form and the admin wizard. It turns finished state machines
// into persisted row batches, builds the human-readable confirmations, and
// keeps any unexpected assembly failure from killing the session.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ropiclub/attendance/internal/domain"
	"github.com/ropiclub/attendance/internal/form"
	"github.com/ropiclub/attendance/internal/wizard"
)

// RowStore is the gateway surface the orchestrator needs. Defined here in
// the consumer package so tests can inject a mock without touching the
// sheets package.
type RowStore interface {
	AppendRows(ctx context.Context, rows []domain.Row) error
}

// SubmissionService writes finished submissions through the row store.
type SubmissionService struct {
	store RowStore
	log   *slog.Logger
}

// NewSubmissionService constructs a SubmissionService backed by store.
func NewSubmissionService(store RowStore, log *slog.Logger) *SubmissionService {
	if log == nil {
		log = slog.Default()
	}
	return &SubmissionService{store: store, log: log}
}

// SubmitPersonal persists one respondent's answer plus their guest rows.
// On failure the error carries the gateway's message and the caller keeps
// the form state untouched.
func (s *SubmissionService) SubmitPersonal(ctx context.Context, st form.State, submittedAt string) (result domain.SubmissionResult, err error) {
	defer s.recoverSubmit("SubmitPersonal", &err)

	rows := st.Rows(submittedAt)
	if err := s.store.AppendRows(ctx, rows); err != nil {
		return domain.SubmissionResult{}, fmt.Errorf("service.SubmissionService.SubmitPersonal: %w", err)
	}

	guests := len(rows) - 1
	message := fmt.Sprintf("Thanks, %s! Your response has been recorded.", st.Name)
	if guests > 0 {
		message += fmt.Sprintf(" (+%d guests)", guests)
	}

	s.log.Info("personal submission stored", "name", st.Name, "guests", guests)
	return domain.SubmissionResult{Message: message, Members: 1, Guests: guests}, nil
}

// SubmitBulk persists the wizard's whole batch: one row per present member
// plus their non-blank guests. Rejects an empty selection with
// domain.ErrValidation before touching the store.
func (s *SubmissionService) SubmitBulk(ctx context.Context, st wizard.State, submittedAt string) (result domain.SubmissionResult, err error) {
	defer s.recoverSubmit("SubmitBulk", &err)

	members := st.PresentCount()
	if members == 0 {
		return domain.SubmissionResult{}, fmt.Errorf("service.SubmissionService.SubmitBulk: %w: no members selected", domain.ErrValidation)
	}

	rows := st.Rows(submittedAt)
	if err := s.store.AppendRows(ctx, rows); err != nil {
		return domain.SubmissionResult{}, fmt.Errorf("service.SubmissionService.SubmitBulk: %w", err)
	}

	guests := len(rows) - members
	message := fmt.Sprintf("Registered %d members for %s.", members, st.Date)
	if guests > 0 {
		message += fmt.Sprintf(" (+%d guests)", guests)
	}

	s.log.Info("bulk submission stored", "date", st.Date, "members", members, "guests", guests)
	return domain.SubmissionResult{Message: message, Members: members, Guests: guests}, nil
}

// recoverSubmit converts a panic during row assembly or persistence into a
// generic error instead of terminating the session. The real cause goes to
// the log; the user sees only "unexpected error".
func (s *SubmissionService) recoverSubmit(op string, err *error) {
	if r := recover(); r != nil {
		s.log.Error("submission panicked", "op", op, "panic", r)
		*err = fmt.Errorf("service.SubmissionService.%s: unexpected error", op)
	}
}
