package server

import (
	"github.com/gofiber/fiber/v2"

	"stride/internal/models"
)

// AdminStats handles GET /api/admin/stats
// @Summary Platform overview stats
// @Description Aggregate user, activity and post counts for today
// @Tags admin
// @Produce json
// @Success 200 {object} object{success=bool,data=models.OverviewStats}
// @Failure 401 {object} object{success=bool,message=string}
// @Security AdminAuth
// @Router /admin/stats [get]
func (s *Server) AdminStats(c *fiber.Ctx) error {
	stats, err := s.adminService.Stats(c.Context())
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondWithData(c, stats)
}

// AdminListUsers handles GET /api/admin/users
// @Summary List users
// @Description Page through registered users, newest first
// @Tags admin
// @Produce json
// @Param page query int false "Page (default 1)"
// @Param limit query int false "Page size (default 20)"
// @Success 200 {object} object{success=bool,data=service.PagedUsers}
// @Failure 401 {object} object{success=bool,message=string}
// @Security AdminAuth
// @Router /admin/users [get]
func (s *Server) AdminListUsers(c *fiber.Ctx) error {
	page, limit := pagination(c)
	users, err := s.adminService.ListUsers(c.Context(), page, limit)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondWithData(c, users)
}

// AdminUserDetail handles GET /api/admin/users/:userId
// @Summary User drill-down
// @Description Fetch a user with their recent activities and posts
// @Tags admin
// @Produce json
// @Param userId path int true "User ID"
// @Success 200 {object} object{success=bool,data=service.UserDetail}
// @Failure 404 {object} object{success=bool,message=string}
// @Failure 401 {object} object{success=bool,message=string}
// @Security AdminAuth
// @Router /admin/users/{userId} [get]
func (s *Server) AdminUserDetail(c *fiber.Ctx) error {
	userID, err := paramUint(c, "userId")
	if err != nil {
		return nil
	}

	detail, err := s.adminService.UserDetail(c.Context(), userID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondWithData(c, detail)
}

// AdminListPosts handles GET /api/admin/posts
// @Summary List posts for moderation
// @Description Page through posts with author nicknames attached
// @Tags admin
// @Produce json
// @Param page query int false "Page (default 1)"
// @Param limit query int false "Page size (default 20)"
// @Success 200 {object} object{success=bool,data=service.PagedPosts}
// @Failure 401 {object} object{success=bool,message=string}
// @Security AdminAuth
// @Router /admin/posts [get]
func (s *Server) AdminListPosts(c *fiber.Ctx) error {
	page, limit := pagination(c)
	posts, err := s.adminService.ListPosts(c.Context(), page, limit)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondWithData(c, posts)
}

// AdminDeletePost handles DELETE /api/admin/posts/:postId
// @Summary Delete any post
// @Description Remove a post regardless of author
// @Tags admin
// @Produce json
// @Param postId path int true "Post ID"
// @Success 200 {object} object{success=bool,data=object{deleted=bool}}
// @Failure 401 {object} object{success=bool,message=string}
// @Security AdminAuth
// @Router /admin/posts/{postId} [delete]
func (s *Server) AdminDeletePost(c *fiber.Ctx) error {
	postID, err := paramUint(c, "postId")
	if err != nil {
		return nil
	}

	if err := s.adminService.DeletePost(c.Context(), postID); err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondWithData(c, fiber.Map{"deleted": true})
}

// AdminLeaderboard handles GET /api/admin/leaderboard
// @Summary Step leaderboard
// @Description Rank users by steps over the trailing window
// @Tags admin
// @Produce json
// @Param days query int false "Window in days (default 7, max 90)"
// @Success 200 {object} object{success=bool,data=[]models.LeaderboardEntry}
// @Failure 401 {object} object{success=bool,message=string}
// @Security AdminAuth
// @Router /admin/leaderboard [get]
func (s *Server) AdminLeaderboard(c *fiber.Ctx) error {
	entries, err := s.adminService.Leaderboard(c.Context(), c.QueryInt("days", 7))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondWithData(c, entries)
}
