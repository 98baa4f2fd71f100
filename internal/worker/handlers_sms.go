package worker

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"

	"github.com/thebtf/moodline/internal/channel"
	"github.com/thebtf/moodline/internal/checkin"
	"github.com/thebtf/moodline/internal/extract"
	"github.com/thebtf/moodline/internal/privacy"
	"github.com/thebtf/moodline/internal/transport"
	"github.com/thebtf/moodline/pkg/models"
)

const (
	// DefaultTestMessage is used by test-inbound when no message is given.
	DefaultTestMessage = "4, M, working from cafe, probably code some more"

	// DefaultTestSender is used by test-inbound when no sender is configured.
	DefaultTestSender = "+1234567890"
)

// handleWebhook receives one inbound message from the transport.
//
//	@Summary	Receive an inbound SMS or WhatsApp check-in
//	@Tags		sms
//	@Accept		x-www-form-urlencoded
//	@Produce	xml
//	@Param		From	formData	string	false	"Sender address, optionally whatsapp: prefixed"
//	@Param		Body	formData	string	true	"Message text"
//	@Success	200
//	@Failure	500
//	@Router		/api/sms/webhook [post]
func (s *Service) handleWebhook(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		log.Error().Err(err).Msg("Failed to parse webhook form")
		writeTwiMLError(w)
		return
	}

	msg := models.InboundMessage{
		RawAddress: r.PostFormValue("From"),
		Body:       r.PostFormValue("Body"),
		ReceivedAt: time.Now(),
	}

	run, err := s.processor.Handle(r.Context(), msg, checkin.Options{})
	if err != nil {
		log.Error().Err(err).Str("from", privacy.MaskAddress(msg.RawAddress)).Msg("Error in SMS webhook")
		writeTwiMLError(w)
		run.Respond()
		return
	}

	writeTwiMLOK(w)
	run.Respond()
}

// handleStatusCallback logs a delivery status report.
//
//	@Summary	Receive a delivery status callback
//	@Tags		sms
//	@Accept		x-www-form-urlencoded
//	@Produce	json
//	@Success	200	{object}	map[string]bool
//	@Failure	500	{object}	map[string]string
//	@Router		/api/sms/status-callback [post]
func (s *Service) handleStatusCallback(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		log.Error().Err(err).Msg("Error in status callback")
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	ev := models.StatusEvent{
		MessageSID:   r.PostFormValue("MessageSid"),
		Status:       r.PostFormValue("MessageStatus"),
		ErrorCode:    r.PostFormValue("ErrorCode"),
		ErrorMessage: r.PostFormValue("ErrorMessage"),
		To:           r.PostFormValue("To"),
		From:         r.PostFormValue("From"),
	}

	log.Info().
		Str("sid", ev.MessageSID).
		Str("status", ev.Status).
		Str("to", privacy.MaskAddress(ev.To)).
		Msg("Message status callback")
	if ev.ErrorCode != "" {
		log.Error().
			Str("sid", ev.MessageSID).
			Str("code", ev.ErrorCode).
			Str("message", ev.ErrorMessage).
			Msg("Message delivery error")
	}

	writeJSON(w, http.StatusOK, map[string]bool{"received": true})
}

// handleSendPrompt sends the check-in question to a recipient.
//
//	@Summary	Send the check-in prompt
//	@Tags		sms
//	@Accept		json
//	@Produce	json
//	@Param		request	body		models.SendPromptRequest	false	"Recipient and channel"
//	@Success	200		{object}	models.SendPromptResponse
//	@Failure	500		{object}	models.SendPromptResponse
//	@Router		/api/sms/send-prompt [post]
func (s *Service) handleSendPrompt(w http.ResponseWriter, r *http.Request) {
	var req models.SendPromptRequest
	if err := decodeBody(r, &req, map[string]*string{
		"phone_number": &req.PhoneNumber,
		"channel":      &req.Channel,
	}); err != nil {
		writeJSON(w, http.StatusInternalServerError, models.SendPromptResponse{Error: err.Error()})
		return
	}

	ch, err := channel.Parse(req.Channel)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.SendPromptResponse{Error: err.Error()})
		return
	}

	phoneNumber := strings.TrimSpace(req.PhoneNumber)
	if phoneNumber == "" {
		phoneNumber = s.config.DefaultRecipient
	}

	log.Info().Str("channel", ch.Label()).Str("to", privacy.MaskAddress(phoneNumber)).Msg("Sending prompt")

	if !s.sender.HasCredentials() {
		log.Error().Msg("Missing Twilio credentials")
		writeJSON(w, http.StatusInternalServerError, models.SendPromptResponse{Error: "Missing Twilio credentials"})
		return
	}
	if !s.sender.AuthTokenLengthOK() {
		log.Warn().
			Int("length", s.sender.AuthTokenLength()).
			Msg("TWILIO_AUTH_TOKEN has unusual length (expected 32). This may cause authentication issues.")
	}
	if channel.Normalize(phoneNumber) == "" {
		writeJSON(w, http.StatusInternalServerError, models.SendPromptResponse{Error: "No recipient phone number"})
		return
	}

	msg := transport.Message{
		From:           channel.Format(s.config.TwilioPhoneNumber, ch),
		To:             channel.Format(phoneNumber, ch),
		Body:           extract.CheckInQuestion,
		StatusCallback: s.config.StatusCallbackURL(),
	}

	res, err := s.sender.Send(r.Context(), msg)
	if err != nil {
		var apiErr *transport.APIError
		if errors.As(err, &apiErr) {
			log.Error().
				Int("status", apiErr.StatusCode).
				Int("code", apiErr.Code).
				Str("body", apiErr.Raw).
				Msg("Twilio API error")
			resp := models.SendPromptResponse{
				Message: apiErr.UserMessage(),
				Error:   apiErr.Raw,
			}
			if apiErr.Code != 0 {
				code := apiErr.Code
				resp.ErrorCode = &code
			}
			writeJSON(w, http.StatusInternalServerError, resp)
			return
		}
		log.Error().Err(err).Msg("Error sending prompt")
		writeJSON(w, http.StatusInternalServerError, models.SendPromptResponse{Error: err.Error()})
		return
	}

	log.Info().
		Str("sid", res.SID).
		Str("status", res.Status).
		Str("from", privacy.MaskAddress(msg.From)).
		Str("to", privacy.MaskAddress(msg.To)).
		Msg("Prompt sent")
	if res.ErrorCode != nil {
		log.Warn().Int("code", *res.ErrorCode).Str("message", res.ErrorMessage).Msg("Twilio accepted prompt with error")
	}

	writeJSON(w, http.StatusOK, models.SendPromptResponse{
		Success: true,
		Message: "Prompt sent",
		Debug: &models.SendPromptDebug{
			Status:        res.StatusCode,
			To:            phoneNumber,
			MessageSID:    res.SID,
			MessageStatus: res.Status,
			ErrorCode:     res.ErrorCode,
			ErrorMessage:  res.ErrorMessage,
		},
	})
}

// handleTestInbound simulates an inbound message without sending a confirmation.
//
//	@Summary	Simulate an inbound check-in
//	@Tags		sms
//	@Accept		json
//	@Produce	json
//	@Param		request	body		models.TestInboundRequest	false	"Message, sender, and channel"
//	@Success	200		{object}	models.TestInboundResponse
//	@Failure	500		{object}	models.TestInboundResponse
//	@Router		/api/sms/test-inbound [post]
func (s *Service) handleTestInbound(w http.ResponseWriter, r *http.Request) {
	var req models.TestInboundRequest
	if err := decodeBody(r, &req, map[string]*string{
		"message": &req.Message,
		"from":    &req.From,
		"channel": &req.Channel,
	}); err != nil {
		writeJSON(w, http.StatusInternalServerError, models.TestInboundResponse{Error: err.Error()})
		return
	}

	ch, err := channel.Parse(req.Channel)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.TestInboundResponse{Error: err.Error()})
		return
	}

	message := req.Message
	if message == "" {
		message = DefaultTestMessage
	}
	from := req.From
	if from == "" {
		from = s.config.DefaultRecipient
	}
	if from == "" {
		from = DefaultTestSender
	}

	msg := models.InboundMessage{
		RawAddress: channel.Format(from, ch),
		Body:       message,
		ReceivedAt: time.Now(),
	}
	log.Info().Str("channel", ch.Label()).Str("from", privacy.MaskAddress(msg.RawAddress)).Msg("Simulating inbound message")

	run, err := s.processor.Handle(r.Context(), msg, checkin.Options{SkipConfirmation: true})
	if err != nil {
		log.Error().Err(err).Msg("Error processing test message")
		writeJSON(w, http.StatusInternalServerError, models.TestInboundResponse{Error: err.Error()})
		run.Respond()
		return
	}

	writeJSON(w, http.StatusOK, models.TestInboundResponse{
		Success:  true,
		Message:  "Test entry created",
		TestMode: true,
		Entry: &models.TestInboundEntry{
			ID:        run.Entry.ID,
			Timestamp: run.Entry.Timestamp,
			RawText:   run.Entry.RawText,
			Extracted: *run.Fields,
		},
	})
	run.Respond()
}

// decodeBody fills dst from a JSON body, or fields from a form body.
// An empty body leaves everything at its zero value.
func decodeBody(r *http.Request, dst interface{}, fields map[string]*string) error {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/x-www-form-urlencoded", "multipart/form-data":
		if err := r.ParseForm(); err != nil {
			return err
		}
		for key, ptr := range fields {
			*ptr = r.PostFormValue(key)
		}
		return nil
	}

	if r.Body == nil || r.ContentLength == 0 {
		return nil
	}
	err := json.NewDecoder(r.Body).Decode(dst)
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
