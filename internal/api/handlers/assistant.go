package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/storefront-checkout/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/models"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/utils"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type Recommender interface {
	Recommend(ctx context.Context, message string) (*models.Recommendation, error)
}

type AssistantHandler struct {
	assistant Recommender
	validator *validator.Validate
}

func NewAssistantHandler(assistant Recommender, validate *validator.Validate) *AssistantHandler {
	return &AssistantHandler{assistant: assistant, validator: validate}
}

// Chat godoc
//
//	@Summary		Ask the shopping assistant
//	@Description	Returns a short reply and the catalog products it recommends.
//	@Tags			Assistant
//	@Accept			json
//	@Produce		json
//	@Param			chat	body		models.ChatRequest	true	"Customer message"
//	@Success		200		{object}	models.Recommendation
//	@Failure		400		{object}	response.ErrorResponse	"Validation error"
//	@Failure		502		{object}	response.ErrorResponse	"Assistant unavailable"
//	@Router			/assistant/chat [post]
func (h *AssistantHandler) Chat() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.ChatRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid chat input")
			return
		}

		reply, err := h.assistant.Recommend(r.Context(), req.Message)
		if err != nil {
			logger.Error("Assistant request failed", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Assistant replied", slog.Int("products", len(reply.Products)))
		response.Success(w, http.StatusOK, reply)
	}
}
