package utils

import (
	"encoding/json"
	"net/http"
)

type Response struct {
	Status   bool           `json:"status"`
	Message  string         `json:"message"`
	Data     any            `json:"data,omitempty"`
	Errors   any            `json:"errors,omitempty"`
	Messages []FlashMessage `json:"messages,omitempty"`
}

// ResponseJSON writes JSON response with custom status code
func ResponseJSON(w http.ResponseWriter, code int, status bool, message string, data, errors any) {
	writeResponse(w, code, Response{
		Status:  status,
		Message: message,
		Data:    data,
		Errors:  errors,
	})
}

// ResponsePage writes a page payload and drains pending flash messages into it
func ResponsePage(w http.ResponseWriter, r *http.Request, code int, message string, data, errors any) {
	writeResponse(w, code, Response{
		Status:   code < http.StatusBadRequest,
		Message:  message,
		Data:     data,
		Errors:   errors,
		Messages: PopFlash(w, r),
	})
}

func writeResponse(w http.ResponseWriter, code int, response Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(response)
}

// Redirect answers with 303 See Other so browsers follow up with a GET
func Redirect(w http.ResponseWriter, r *http.Request, location string) {
	http.Redirect(w, r, location, http.StatusSeeOther)
}

// ------------- Error responses -------------

// returns 400 Bad Request
func ResponseBadRequest(w http.ResponseWriter, message string, errors any) {
	ResponseJSON(w, http.StatusBadRequest, false, message, nil, errors)
}

// returns 403 Forbidden
func ResponseForbidden(w http.ResponseWriter, message string) {
	ResponseJSON(w, http.StatusForbidden, false, message, nil, nil)
}

// returns 404 Not Found
func ResponseNotFound(w http.ResponseWriter, message string) {
	ResponseJSON(w, http.StatusNotFound, false, message, nil, nil)
}

// returns 500 Internal Server Error
func ResponseInternalError(w http.ResponseWriter, message string) {
	ResponseJSON(w, http.StatusInternalServerError, false, message, nil, nil)
}
