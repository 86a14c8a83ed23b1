// ABOUTME: JSON response helpers for the mock backend
// ABOUTME: Emits the same error body dialects the real storefront API uses

package mockapi

import (
	"encoding/json"
	"net/http"
)

// Business error codes the backend emits.
const (
	codeInvalidCredentials = "INVALID_CREDENTIALS"
	codeAccountDeactivated = "ACCOUNT_DEACTIVATED"
	codeDuplicateEmail     = "DUPLICATE_EMAIL"
	codeDuplicateItem      = "DUPLICATE_ITEM"
)

// fieldIssue is one entry of a FastAPI-style validation error.
type fieldIssue struct {
	Msg  string `json:"msg"`
	Loc  []any  `json:"loc"`
	Type string `json:"type,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError emits the structured business-error dialect:
// {"error":{"code":...,"message":...,"details":...}}
func writeError(w http.ResponseWriter, status int, code, message string, details map[string]string) {
	type errorInfo struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details,omitempty"`
	}
	writeJSON(w, status, struct {
		Error errorInfo `json:"error"`
	}{Error: errorInfo{Code: code, Message: message, Details: details}})
}

// writeValidationError emits the FastAPI dialect: {"detail":[{msg,loc},...]}
func writeValidationError(w http.ResponseWriter, issues ...fieldIssue) {
	writeJSON(w, http.StatusUnprocessableEntity, struct {
		Detail []fieldIssue `json:"detail"`
	}{Detail: issues})
}

// writeDetail emits the plain FastAPI string dialect: {"detail":"..."}
func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, struct {
		Detail string `json:"detail"`
	}{Detail: detail})
}

// writeMessage emits the bare dialect: {"message":"..."}
func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, struct {
		Message string `json:"message"`
	}{Message: message})
}

func requireIssue(field string) fieldIssue {
	return fieldIssue{Msg: "field required", Loc: []any{"body", field}, Type: "missing"}
}
