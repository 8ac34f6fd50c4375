package domain

// SubmissionResult reports what a successful submission wrote.
// Members is 1 for the personal form and the number of present roster
// members for a bulk submit; Guests counts only the guest rows that
// survived blank-name filtering.
type SubmissionResult struct {
	Message string `json:"message"`
	Members int    `json:"members"`
	Guests  int    `json:"guests"`
}
