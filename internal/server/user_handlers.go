package server

import (
	"github.com/gofiber/fiber/v2"

	"stride/internal/models"
	"stride/internal/service"
)

// GetUser handles GET /api/wechat/user/:userId
// @Summary Get user profile
// @Description Fetch a user's public profile
// @Tags users
// @Produce json
// @Param userId path int true "User ID"
// @Success 200 {object} object{success=bool,data=models.User}
// @Failure 404 {object} object{success=bool,message=string}
// @Router /wechat/user/{userId} [get]
func (s *Server) GetUser(c *fiber.Ctx) error {
	userID, err := paramUint(c, "userId")
	if err != nil {
		return nil
	}

	user, err := s.userService.GetUser(c.Context(), userID)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return models.RespondWithData(c, user.PublicProfile())
}

// UpdateProfile handles POST /api/wechat/user/profile
// @Summary Update my profile
// @Description Apply a partial profile update for the authenticated user and mark onboarding complete
// @Tags users
// @Accept json
// @Produce json
// @Param request body service.UpdateProfileInput true "Profile fields"
// @Success 200 {object} object{success=bool,data=models.User}
// @Failure 400 {object} object{success=bool,message=string}
// @Failure 401 {object} object{success=bool,message=string}
// @Security BearerAuth
// @Router /wechat/user/profile [post]
func (s *Server) UpdateProfile(c *fiber.Ctx) error {
	var req struct {
		Nickname      *string   `json:"nickname"`
		AvatarURL     *string   `json:"avatarUrl"`
		Gender        *string   `json:"gender"`
		AgeRange      *string   `json:"ageRange"`
		Interests     *[]string `json:"interests"`
		DailyStepGoal *int      `json:"dailyStepGoal"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateProfile(c.Context(), service.UpdateProfileInput{
		UserID:        currentUserID(c),
		Nickname:      req.Nickname,
		AvatarURL:     req.AvatarURL,
		Gender:        req.Gender,
		AgeRange:      req.AgeRange,
		Interests:     req.Interests,
		DailyStepGoal: req.DailyStepGoal,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return models.RespondWithData(c, user.PublicProfile())
}
