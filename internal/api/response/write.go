package response

import (
	"encoding/json"
	"net/http"
)

// JSON encodes data as the response body. Headers go out before the body,
// so encoding failures past that point cannot be reported to the client;
// response types here are all plain data and marshal unconditionally.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// NoContent answers 204 with an empty body
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}
