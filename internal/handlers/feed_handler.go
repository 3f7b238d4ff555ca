package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"instalab_backend/internal/middleware"
	"instalab_backend/internal/services"
	"instalab_backend/internal/services/dto"
)

type FeedHandler struct {
	*BaseHandler
	feedService services.FeedService
}

func NewFeedHandler(base *BaseHandler, feedService services.FeedService) *FeedHandler {
	return &FeedHandler{
		BaseHandler: base,
		feedService: feedService,
	}
}

func (h *FeedHandler) RegisterRoutes(r *gin.RouterGroup) {
	feed := r.Group("/feed")
	feed.Use(middleware.AuthMiddleware())
	{
		feed.GET("", h.Feed)
	}

	posts := r.Group("/posts")
	posts.Use(middleware.AuthMiddleware())
	{
		posts.POST("", h.CreatePost)
		posts.GET("/:postId", h.GetPost)
		posts.PUT("/:postId", h.UpdatePost)
		posts.DELETE("/:postId", h.DeletePost)

		posts.POST("/:postId/like", h.Like)
		posts.DELETE("/:postId/like", h.Unlike)

		posts.GET("/:postId/comments", h.Comments)
		posts.POST("/:postId/comments", h.Comment)
	}

	comments := r.Group("/comments")
	comments.Use(middleware.AuthMiddleware())
	{
		comments.DELETE("/:commentId", h.DeleteComment)
	}

	follows := r.Group("/users")
	follows.Use(middleware.AuthMiddleware())
	{
		follows.POST("/:userId/follow", h.Follow)
		follows.DELETE("/:userId/follow", h.Unfollow)
	}
}

func (h *FeedHandler) Feed(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var query dto.FeedQuery
	if !h.BindAndValidateQuery(c, &query) {
		return
	}

	feed, err := h.feedService.Feed(userID, &query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, feed)
}

func (h *FeedHandler) CreatePost(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreatePostRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	post, err := h.feedService.CreatePost(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, post)
}

func (h *FeedHandler) GetPost(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	post, err := h.feedService.GetPost(userID, c.Param("postId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

func (h *FeedHandler) UpdatePost(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdatePostRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	post, err := h.feedService.UpdatePost(userID, c.Param("postId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

func (h *FeedHandler) DeletePost(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.feedService.DeletePost(userID, c.Param("postId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Post deleted"})
}

func (h *FeedHandler) Like(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, err := h.feedService.Like(userID, c.Param("postId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *FeedHandler) Unlike(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, err := h.feedService.Unlike(userID, c.Param("postId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *FeedHandler) Comments(c *gin.Context) {
	var pq dto.PaginationQuery
	if !h.BindAndValidateQuery(c, &pq) {
		return
	}

	comments, err := h.feedService.Comments(c.Param("postId"), &pq)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}

func (h *FeedHandler) Comment(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateCommentRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	comment, err := h.feedService.Comment(userID, c.Param("postId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

func (h *FeedHandler) DeleteComment(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.feedService.DeleteComment(userID, c.Param("commentId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted"})
}

func (h *FeedHandler) Follow(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, err := h.feedService.Follow(c.Request.Context(), userID, c.Param("userId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *FeedHandler) Unfollow(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, err := h.feedService.Unfollow(userID, c.Param("userId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
