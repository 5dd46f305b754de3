package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Tariq-Monowar/timetree/errs"
	"github.com/Tariq-Monowar/timetree/logging"
)

// writeJSON writes v with the given status. Encoding failures are logged; at
// that point the status line is already on the wire.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Logger.Errorf("Failed to encode response: %v", err)
	}
}

// writeError maps the error's category to an HTTP status. The category, not
// the message text, is what clients should branch on.
func writeError(w http.ResponseWriter, err error) {
	code := errs.CodeOf(err)

	var status int
	switch code {
	case errs.CodeUnauthorized:
		status = http.StatusForbidden
	case errs.CodeNotFound:
		status = http.StatusNotFound
	case errs.CodeInvalidInput:
		status = http.StatusBadRequest
	case errs.CodeConflict:
		status = http.StatusConflict
	default:
		status = http.StatusInternalServerError
	}

	message := err.Error()
	if code == errs.CodeInternal {
		logging.Logger.Errorf("Internal error: %v", err)
		message = "Internal: something went wrong"
	}

	writeJSON(w, status, map[string]string{
		"error":   string(code),
		"message": message,
	})
}

// decodeBody parses a JSON request body strictly; unknown fields are an
// input error, not silently dropped.
func decodeBody(r *http.Request, v interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(v); err != nil {
		return errs.InvalidInput("invalid request payload: " + err.Error())
	}
	return nil
}

// NotFoundHandler answers unmatched routes with a JSON 404.
func NotFoundHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "404 route not found"})
	})
}

// Recover turns a handler panic into a 500 response instead of tearing down
// the connection.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logging.Logger.Errorf("Panic handling %s %s: %v", r.Method, r.URL.Path, rec)
				writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "500 something broke"})
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// EnableCORS allows cross-origin requests from any origin.
func EnableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
