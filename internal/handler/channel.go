package handler

import (
	"context"

	"github.com/gofiber/fiber/v3"

	"github.com/sukantabhun/socioyt-go/internal/apperr"
	"github.com/sukantabhun/socioyt-go/internal/middleware"
	"github.com/sukantabhun/socioyt-go/internal/model"
)

// ChannelAnalyzer is implemented by *service.ChannelService.
type ChannelAnalyzer interface {
	Analyze(ctx context.Context, identifier string) (*model.ChannelAnalysisResponse, error)
}

type ChannelHandler struct {
	svc ChannelAnalyzer
}

func NewChannelHandler(svc ChannelAnalyzer) *ChannelHandler {
	return &ChannelHandler{svc: svc}
}

// Lookup handles GET /channel/lookup?channel_input=
func (h *ChannelHandler) Lookup(c fiber.Ctx) error {
	input, errMsg := middleware.ValidateChannelInput(c.Query("channel_input"))
	if errMsg != "" {
		return middleware.WriteError(c, apperr.Validation(errMsg))
	}

	resp, err := h.svc.Analyze(c.Context(), input)
	if err != nil {
		return middleware.WriteError(c, err)
	}
	return c.JSON(resp)
}
