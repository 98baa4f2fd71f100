package worker

import (
	"net/http"
	"runtime/debug"

	"github.com/rs/zerolog/log"
)

// jsonRecovery intercepts panics from downstream handlers, logs details, and returns HTTP 500.
func jsonRecovery(next http.Handler) http.Handler {
	return recoverWith(next, func(w http.ResponseWriter) {
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"error": "Internal Server Error",
			"code":  http.StatusInternalServerError,
		})
	})
}

// twimlRecovery answers a panicking webhook with the TwiML error envelope.
func twimlRecovery(next http.Handler) http.Handler {
	return recoverWith(next, func(w http.ResponseWriter) {
		writeTwiMLError(w)
	})
}

func recoverWith(next http.Handler, respond func(w http.ResponseWriter)) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				log.Error().
					Interface("panic", rec).
					Str("method", r.Method).
					Str("url", r.URL.String()).
					Str("remote", r.RemoteAddr).
					Bytes("stack", debug.Stack()).
					Msg("panic recovered")
				respond(w)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
