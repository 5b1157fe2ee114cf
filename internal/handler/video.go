package handler

import (
	"context"

	"github.com/gofiber/fiber/v3"

	"github.com/sukantabhun/socioyt-go/internal/apperr"
	"github.com/sukantabhun/socioyt-go/internal/middleware"
	"github.com/sukantabhun/socioyt-go/internal/model"
)

// VideoAnalyzer is implemented by *service.VideoService.
type VideoAnalyzer interface {
	Analyze(ctx context.Context, videoID string) (*model.VideoAnalysisResponse, error)
}

type VideoHandler struct {
	svc VideoAnalyzer
}

func NewVideoHandler(svc VideoAnalyzer) *VideoHandler {
	return &VideoHandler{svc: svc}
}

// Analyze handles GET /video/:video_id
func (h *VideoHandler) Analyze(c fiber.Ctx) error {
	videoID, errMsg := middleware.ValidateVideoID(c.Params("video_id"))
	if errMsg != "" {
		return middleware.WriteError(c, apperr.Validation(errMsg))
	}

	resp, err := h.svc.Analyze(c.Context(), videoID)
	if err != nil {
		return middleware.WriteError(c, err)
	}
	return c.JSON(resp)
}

// Root handles GET / with the banner the web client polls for.
func Root(c fiber.Ctx) error {
	return c.JSON("Server started!!!")
}
