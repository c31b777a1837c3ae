package httpapi

import (
	"encoding/json"
	"net/http"

	log "github.com/sirupsen/logrus"
)

// statusResponse общий конверт ответов витрины
type statusResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message,omitempty"`
	Error     string `json:"error,omitempty"`
	MessageID string `json:"messageId,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, data any, logger *log.Entry) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.WithError(err).Error("failed to encode JSON response")
	}
}

// writeFailure отвечает 4xx с полем message.
func writeFailure(w http.ResponseWriter, status int, message string, logger *log.Entry) {
	writeJSON(w, status, statusResponse{Success: false, Message: message}, logger)
}

// writeServerError отвечает 5xx с полем error; детали причины в ответ не попадают.
func writeServerError(w http.ResponseWriter, message string, logger *log.Entry) {
	writeJSON(w, http.StatusInternalServerError, statusResponse{Success: false, Error: message}, logger)
}
