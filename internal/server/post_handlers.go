package server

import (
	"github.com/gofiber/fiber/v2"

	"stride/internal/models"
	"stride/internal/service"
)

// GetPosts handles GET /api/social/posts
// @Summary List feed posts
// @Description Fetch the anonymous feed, newest first
// @Tags social
// @Produce json
// @Param limit query int false "Max posts (default 20)"
// @Param offset query int false "Offset"
// @Success 200 {object} object{success=bool,data=[]models.Post}
// @Router /social/posts [get]
func (s *Server) GetPosts(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	if limit < 1 || limit > 100 {
		limit = 20
	}
	offset := c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}

	posts, err := s.postService.ListPosts(c.Context(), limit, offset)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return models.RespondWithData(c, posts)
}

// CreatePost handles POST /api/social/posts
// @Summary Create feed post
// @Description Publish an anonymous post under a randomly assigned display name
// @Tags social
// @Accept json
// @Produce json
// @Param request body object{content=string,imageUrls=[]string} true "Post content"
// @Success 200 {object} object{success=bool,data=models.Post}
// @Failure 400 {object} object{success=bool,message=string}
// @Failure 401 {object} object{success=bool,message=string}
// @Security BearerAuth
// @Router /social/posts [post]
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req struct {
		Content   string   `json:"content"`
		ImageURLs []string `json:"imageUrls"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.CreatePost(c.Context(), service.CreatePostInput{
		UserID:    currentUserID(c),
		Content:   req.Content,
		ImageURLs: req.ImageURLs,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return models.RespondWithData(c, post)
}

// DeletePost handles DELETE /api/social/posts/:postId
// @Summary Delete own post
// @Description Remove a post authored by the caller; other users' posts read as not found
// @Tags social
// @Produce json
// @Param postId path int true "Post ID"
// @Success 200 {object} object{success=bool,data=object{deleted=bool}}
// @Failure 404 {object} object{success=bool,message=string}
// @Failure 401 {object} object{success=bool,message=string}
// @Security BearerAuth
// @Router /social/posts/{postId} [delete]
func (s *Server) DeletePost(c *fiber.Ctx) error {
	postID, err := paramUint(c, "postId")
	if err != nil {
		return nil
	}

	if err := s.postService.DeletePost(c.Context(), postID, currentUserID(c)); err != nil {
		return models.RespondWithError(c, err)
	}

	return models.RespondWithData(c, fiber.Map{"deleted": true})
}
