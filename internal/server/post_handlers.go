package server

import (
	"strconv"

	"inkwell/internal/models"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

// postIDParam parses the :id route parameter.
func postIDParam(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return 0, models.NewValidationError("Invalid post id")
	}
	return uint(id), nil
}

// GetPosts handles GET /api/posts
// @Summary List posts
// @Description Return all posts in insertion order
// @Tags posts
// @Produce json
// @Success 200 {array} models.Post
// @Router /posts [get]
func (s *Server) GetPosts(c *fiber.Ctx) error {
	posts, err := s.postService.ListPosts(c.UserContext())
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(posts)
}

// GetPost handles GET /api/posts/:id
// @Summary Get a post
// @Tags posts
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} models.Post
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{id} [get]
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := postIDParam(c)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	post, err := s.postService.GetPost(c.UserContext(), id)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(post)
}

// CreatePost handles POST /api/posts
// @Summary Create a post
// @Description Administrator only
// @Tags posts
// @Accept json
// @Produce json
// @Param request body object{title=string,subtitle=string,body=string,image_url=string} true "Post fields"
// @Success 201 {object} models.Post
// @Failure 401 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /posts [post]
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req struct {
		Title    string `json:"title"`
		Subtitle string `json:"subtitle"`
		Body     string `json:"body"`
		ImageURL string `json:"image_url"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.CreatePost(c.UserContext(), sessionToken(c), service.PostInput{
		Title:    req.Title,
		Subtitle: req.Subtitle,
		Body:     req.Body,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// UpdatePost handles PUT /api/posts/:id
// @Summary Edit a post
// @Description Administrator only; full replacement of the mutable fields
// @Tags posts
// @Accept json
// @Produce json
// @Param id path int true "Post ID"
// @Param request body object{title=string,subtitle=string,body=string,image_url=string,author_id=int} true "Post fields"
// @Success 200 {object} models.Post
// @Failure 401 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{id} [put]
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	id, err := postIDParam(c)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	var req struct {
		Title    string `json:"title"`
		Subtitle string `json:"subtitle"`
		Body     string `json:"body"`
		ImageURL string `json:"image_url"`
		AuthorID uint   `json:"author_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.UpdatePost(c.UserContext(), sessionToken(c), id, service.PostInput{
		Title:    req.Title,
		Subtitle: req.Subtitle,
		Body:     req.Body,
		ImageURL: req.ImageURL,
		AuthorID: req.AuthorID,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(post)
}

// DeletePost handles DELETE /api/posts/:id
// @Summary Delete a post
// @Description Administrator only
// @Tags posts
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} object{status=string}
// @Failure 401 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{id} [delete]
func (s *Server) DeletePost(c *fiber.Ctx) error {
	id, err := postIDParam(c)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	if err := s.postService.DeletePost(c.UserContext(), sessionToken(c), id); err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(fiber.Map{"status": "deleted"})
}
