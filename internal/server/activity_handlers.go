package server

import (
	"github.com/gofiber/fiber/v2"

	"stride/internal/models"
	"stride/internal/service"
)

// SyncSteps handles POST /api/wechat/werun
// @Summary Sync encrypted step data
// @Description Decrypt the vendor step payload and record today's activity
// @Tags activities
// @Accept json
// @Produce json
// @Param request body object{sessionKey=string,encryptedData=string,iv=string} true "Encrypted step payload"
// @Success 200 {object} object{success=bool,data=service.SyncStepsResult}
// @Failure 400 {object} object{success=bool,message=string}
// @Failure 401 {object} object{success=bool,message=string}
// @Security BearerAuth
// @Router /wechat/werun [post]
func (s *Server) SyncSteps(c *fiber.Ctx) error {
	var req struct {
		SessionKey    string `json:"sessionKey"`
		EncryptedData string `json:"encryptedData"`
		IV            string `json:"iv"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	result, err := s.activityService.SyncSteps(c.Context(), service.SyncStepsInput{
		UserID:        currentUserID(c),
		SessionKey:    req.SessionKey,
		EncryptedData: req.EncryptedData,
		IV:            req.IV,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return models.RespondWithData(c, result)
}

// GetActivities handles GET /api/wechat/activities/:userId
// @Summary List daily activities
// @Description Fetch a user's daily step records, most recent first
// @Tags activities
// @Produce json
// @Param userId path int true "User ID"
// @Param limit query int false "Max records (default 30)"
// @Success 200 {object} object{success=bool,data=[]models.Activity}
// @Failure 400 {object} object{success=bool,message=string}
// @Router /wechat/activities/{userId} [get]
func (s *Server) GetActivities(c *fiber.Ctx) error {
	userID, err := paramUint(c, "userId")
	if err != nil {
		return nil
	}

	activities, err := s.activityService.ListActivities(c.Context(), userID, c.QueryInt("limit", 30))
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return models.RespondWithData(c, activities)
}
