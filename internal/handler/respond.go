package handler

import (
	"encoding/json"
	"net/http"
	"strings"
)

// errorResponse is the JSON body for every non-2xx response.
type errorResponse struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeJSON renders v as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError renders the standard error body.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Error: errorDetail{Code: code, Message: message}})
}

// unwrapMessage strips the internal context prefixes from a wrapped error
// so the user sees the underlying message verbatim.
// e.g. "service.SubmissionService.SubmitBulk: sheets.Gateway.AppendRows:
// quota exceeded" → "quota exceeded".
func unwrapMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	prefixes := []string{
		"service.SubmissionService.SubmitPersonal: ",
		"service.SubmissionService.SubmitBulk: ",
		"sheets.Gateway.AppendRows: ",
		"sheets.Gateway.handle: ",
		"validation error: ",
	}
	for stripped := true; stripped; {
		stripped = false
		for _, prefix := range prefixes {
			if strings.HasPrefix(msg, prefix) {
				msg = msg[len(prefix):]
				stripped = true
			}
		}
	}
	return msg
}
