package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"lotrblog/app/logger"
)

// Response bodies shared by every handler.
type (
	messageResponse struct {
		Message string `json:"message"`
	}
	errorResponse struct {
		Error string `json:"error"`
	}
	validationResponse struct {
		ErrorMessage string `json:"errorMessage"`
	}
)

const msgPostNotFound = "The post with the specified ID does not exist."

// sendJSON writes data with the given status code.
func sendJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func sendNotFound(w http.ResponseWriter) {
	sendJSON(w, http.StatusNotFound, messageResponse{Message: msgPostNotFound})
}

func sendBadRequest(w http.ResponseWriter, message string) {
	sendJSON(w, http.StatusBadRequest, validationResponse{ErrorMessage: message})
}

// sendServerError logs err on the request logger and answers with the fixed
// message. err never reaches the client.
func sendServerError(w http.ResponseWriter, r *http.Request, op string, err error, message string) {
	logger.FromRequest(r).Err(err).Str("op", op).Msg("store operation failed")
	sendJSON(w, http.StatusInternalServerError, errorResponse{Error: message})
}

// pathID parses the {id} route variable. Anything that is not a positive
// base-10 integer names no post.
func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// decodeBody fills v from the JSON request body. A body that does not
// decode leaves v at its zero value, which then fails validation.
func decodeBody(r *http.Request, v any) {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		logger.FromRequest(r).Debug().Err(err).Msg("invalid request body")
	}
}
