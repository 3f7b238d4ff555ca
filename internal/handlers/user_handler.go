package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"instalab_backend/internal/middleware"
	"instalab_backend/internal/services"
	"instalab_backend/internal/services/dto"
)

type UserHandler struct {
	*BaseHandler
	userService services.UserService
	feedService services.FeedService
}

func NewUserHandler(base *BaseHandler, userService services.UserService, feedService services.FeedService) *UserHandler {
	return &UserHandler{
		BaseHandler: base,
		userService: userService,
		feedService: feedService,
	}
}

func (h *UserHandler) RegisterRoutes(r *gin.RouterGroup) {
	public := r.Group("/users")
	public.Use(middleware.OptionalAuthMiddleware())
	{
		public.GET("/:userId", h.GetProfile)
		public.GET("/:userId/posts", h.GetUserPosts)
		public.GET("/:userId/followers", h.GetFollowers)
		public.GET("/:userId/following", h.GetFollowing)
		public.GET("/search", h.Search)
	}

	me := r.Group("/me")
	me.Use(middleware.AuthMiddleware())
	{
		me.GET("", h.GetOwnAccount)
		me.PUT("", h.UpdateProfile)
	}
}

func (h *UserHandler) GetProfile(c *gin.Context) {
	viewerID := middleware.GetUserID(c)

	profile, err := h.userService.GetProfile(viewerID, c.Param("userId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *UserHandler) GetUserPosts(c *gin.Context) {
	var pq dto.PaginationQuery
	if !h.BindAndValidateQuery(c, &pq) {
		return
	}

	posts, err := h.feedService.UserPosts(middleware.GetUserID(c), c.Param("userId"), &pq)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

func (h *UserHandler) GetFollowers(c *gin.Context) {
	var pq dto.PaginationQuery
	if !h.BindAndValidateQuery(c, &pq) {
		return
	}

	followers, err := h.feedService.Followers(c.Param("userId"), &pq)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, followers)
}

func (h *UserHandler) GetFollowing(c *gin.Context) {
	var pq dto.PaginationQuery
	if !h.BindAndValidateQuery(c, &pq) {
		return
	}

	following, err := h.feedService.Following(c.Param("userId"), &pq)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, following)
}

func (h *UserHandler) Search(c *gin.Context) {
	var query dto.UserSearchQuery
	if !h.BindAndValidateQuery(c, &query) {
		return
	}

	users, err := h.userService.Search(&query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *UserHandler) GetOwnAccount(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	account, err := h.userService.GetOwnAccount(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, account)
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	updated, err := h.userService.UpdateProfile(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}
