package server

import (
	"github.com/gofiber/fiber/v2"

	"stride/internal/models"
)

// Login handles POST /api/wechat/login
// @Summary Mini-program login
// @Description Exchange a one-time login code for the user record, an API token and the session key
// @Tags auth
// @Accept json
// @Produce json
// @Param request body object{code=string} true "Login code"
// @Success 200 {object} object{success=bool,data=service.LoginResult}
// @Failure 400 {object} object{success=bool,message=string}
// @Router /wechat/login [post]
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		Code string `json:"code"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	result, err := s.authService.Login(c.Context(), req.Code)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return models.RespondWithData(c, result)
}
