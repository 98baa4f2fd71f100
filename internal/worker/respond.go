package worker

import (
	"encoding/xml"
	"net/http"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
)

// twimlResponse is the TwiML envelope returned to the transport webhook.
type twimlResponse struct {
	XMLName xml.Name `xml:"Response"`
	Message string   `xml:"Message,omitempty"`
}

const webhookErrorMessage = "Error processing your message"

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	body, err := json.Marshal(data)
	if err != nil {
		log.Error().Err(err).Msg("Failed to encode JSON response")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_, _ = w.Write(body)
}

// writeError writes {"error": message}.
func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]string{"error": message})
}

func writeTwiML(w http.ResponseWriter, statusCode int, resp twimlResponse) {
	body, err := xml.Marshal(resp)
	if err != nil {
		log.Error().Err(err).Msg("Failed to encode TwiML response")
		body = []byte("<Response></Response>")
	}
	w.Header().Set("Content-Type", "text/xml")
	w.WriteHeader(statusCode)
	_, _ = w.Write([]byte(xml.Header[:len(xml.Header)-1]))
	_, _ = w.Write(body)
}

// writeTwiMLOK acknowledges the message without a reply.
func writeTwiMLOK(w http.ResponseWriter) {
	writeTwiML(w, http.StatusOK, twimlResponse{})
}

// writeTwiMLError tells the sender processing failed.
func writeTwiMLError(w http.ResponseWriter) {
	writeTwiML(w, http.StatusInternalServerError, twimlResponse{Message: webhookErrorMessage})
}
