package apihandlers

import (
	"net/http"
	"strings"

	"github.com/docebot/docebot/internal"
	"github.com/docebot/docebot/pkg/chat"
	"github.com/docebot/docebot/pkg/models"
	"github.com/docebot/docebot/pkg/server/handlertools"

	"github.com/go-chi/chi/v5/middleware"
)

var log = internal.GetLogger()

// PostChatHandler classifies a chat message and dispatches it to the
// matching LMS operation.
func PostChatHandler(appState *models.AppState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var chatRequest models.ChatRequest
		if err := handlertools.DecodeJSON(r, &chatRequest); err != nil {
			handlertools.RenderError(w, err, http.StatusBadRequest)
			return
		}

		message := strings.TrimSpace(chatRequest.Message)
		if message == "" {
			handlertools.RenderError(
				w,
				models.NewBadRequestError("message must not be empty"),
				http.StatusBadRequest,
			)
			return
		}

		result := appState.Analyzer.Analyze(message)

		requestID := middleware.GetReqID(r.Context())
		log.Debugf(
			"chat request %s: intent=%s confidence=%.2f",
			requestID, result.Intent, result.Confidence,
		)

		response, err := chat.Dispatch(r.Context(), appState, result, message)
		if err != nil {
			handlertools.RenderError(w, err, http.StatusInternalServerError)
			return
		}
		response.RequestID = requestID

		if err := handlertools.EncodeJSON(w, response); err != nil {
			handlertools.RenderError(w, err, http.StatusInternalServerError)
			return
		}
	}
}

// GetIntentsHandler lists the intents the analyzer can classify, for client
// discovery and debugging.
func GetIntentsHandler(appState *models.AppState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := handlertools.EncodeJSON(w, appState.Analyzer.Intents()); err != nil {
			handlertools.RenderError(w, err, http.StatusInternalServerError)
			return
		}
	}
}
