package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"instalab_backend/internal/middleware"
	"instalab_backend/internal/services"
	"instalab_backend/internal/services/dto"
)

type StoryHandler struct {
	*BaseHandler
	storyService services.StoryService
}

func NewStoryHandler(base *BaseHandler, storyService services.StoryService) *StoryHandler {
	return &StoryHandler{
		BaseHandler:  base,
		storyService: storyService,
	}
}

func (h *StoryHandler) RegisterRoutes(r *gin.RouterGroup) {
	stories := r.Group("/stories")
	stories.Use(middleware.AuthMiddleware())
	{
		stories.GET("", h.StoriesBar)
		stories.POST("", h.Create)
		stories.GET("/:storyId", h.Get)
		stories.DELETE("/:storyId", h.Delete)
		stories.POST("/:storyId/view", h.View)
	}

	highlights := r.Group("/users")
	highlights.Use(middleware.OptionalAuthMiddleware())
	{
		highlights.GET("/:userId/highlights", h.Highlights)
	}
}

func (h *StoryHandler) StoriesBar(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	groups, err := h.storyService.StoriesBar(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"stories": groups})
}

func (h *StoryHandler) Create(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateStoryRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	story, err := h.storyService.Create(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, story)
}

func (h *StoryHandler) Get(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	story, err := h.storyService.Get(userID, c.Param("storyId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, story)
}

func (h *StoryHandler) Delete(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.storyService.Delete(userID, c.Param("storyId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Story deleted"})
}

func (h *StoryHandler) View(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	story, err := h.storyService.View(userID, c.Param("storyId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, story)
}

func (h *StoryHandler) Highlights(c *gin.Context) {
	stories, err := h.storyService.Highlights(c.Param("userId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"highlights": stories})
}
