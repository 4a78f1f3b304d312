package server

import (
	"github.com/gofiber/fiber/v2"

	"stride/internal/models"
)

// GetVideos handles GET /api/youtube/videos
// @Summary List ingested videos
// @Description Fetch stored channel videos, most recently published first
// @Tags videos
// @Produce json
// @Param limit query int false "Max videos (default 20)"
// @Param offset query int false "Offset"
// @Success 200 {object} object{success=bool,data=[]models.Video}
// @Router /youtube/videos [get]
func (s *Server) GetVideos(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	if limit < 1 || limit > 100 {
		limit = 20
	}
	offset := c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}

	videos, err := s.videoService.ListVideos(c.Context(), limit, offset)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return models.RespondWithData(c, videos)
}

// SyncVideos handles POST /api/youtube/sync
// @Summary Trigger feed ingestion
// @Description Fetch all configured channel feeds and upsert new videos
// @Tags videos
// @Produce json
// @Success 200 {object} object{success=bool,data=object{inserted=int}}
// @Failure 401 {object} object{success=bool,message=string}
// @Security AdminAuth
// @Router /youtube/sync [post]
func (s *Server) SyncVideos(c *fiber.Ctx) error {
	inserted, err := s.videoService.SyncAll(c.Context())
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return models.RespondWithData(c, fiber.Map{"inserted": inserted})
}
