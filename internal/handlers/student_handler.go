package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"instalab_backend/internal/middleware"
	"instalab_backend/internal/models"
	"instalab_backend/internal/services"
	"instalab_backend/internal/services/dto"
)

type StudentHandler struct {
	*BaseHandler
	studentService services.StudentService
}

func NewStudentHandler(base *BaseHandler, studentService services.StudentService) *StudentHandler {
	return &StudentHandler{
		BaseHandler:    base,
		studentService: studentService,
	}
}

func (h *StudentHandler) RegisterRoutes(r *gin.RouterGroup) {
	students := r.Group("/students")
	students.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.UserRoleStudent))
	{
		students.GET("/board", h.Board)
		students.POST("/board", h.CreatePost)
		students.DELETE("/board/:postId", h.DeletePost)

		students.GET("/groups", h.Groups)
		students.POST("/groups", h.CreateGroup)
		students.GET("/groups/:groupId", h.GetGroup)
		students.POST("/groups/:groupId/join", h.JoinGroup)
		students.POST("/groups/:groupId/leave", h.LeaveGroup)

		students.GET("/connections", h.Connections)
		students.POST("/connections", h.Connect)
		students.POST("/connections/:connectionId/accept", h.AcceptConnection)
		students.DELETE("/connections/:connectionId", h.DeclineConnection)
	}
}

func (h *StudentHandler) Board(c *gin.Context) {
	var query dto.StudentBoardQuery
	if !h.BindAndValidateQuery(c, &query) {
		return
	}

	posts, err := h.studentService.Board(&query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

func (h *StudentHandler) CreatePost(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateStudentPostRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	post, err := h.studentService.CreatePost(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, post)
}

func (h *StudentHandler) DeletePost(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.studentService.DeletePost(userID, c.Param("postId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Post deleted"})
}

func (h *StudentHandler) Groups(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var pq dto.PaginationQuery
	if !h.BindAndValidateQuery(c, &pq) {
		return
	}

	groups, err := h.studentService.Groups(userID, c.Query("subject"), &pq)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, groups)
}

func (h *StudentHandler) CreateGroup(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateStudyGroupRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	group, err := h.studentService.CreateGroup(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, group)
}

func (h *StudentHandler) GetGroup(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	group, err := h.studentService.GetGroup(userID, c.Param("groupId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, group)
}

func (h *StudentHandler) JoinGroup(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	group, err := h.studentService.JoinGroup(userID, c.Param("groupId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, group)
}

func (h *StudentHandler) LeaveGroup(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.studentService.LeaveGroup(userID, c.Param("groupId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Left group"})
}

func (h *StudentHandler) Connections(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	status := models.ConnectionStatus(c.DefaultQuery("status", string(models.ConnectionStatusAccepted)))
	connections, err := h.studentService.Connections(userID, status)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"connections": connections})
}

func (h *StudentHandler) Connect(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.ConnectionRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	connection, err := h.studentService.Connect(c.Request.Context(), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, connection)
}

func (h *StudentHandler) AcceptConnection(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	connection, err := h.studentService.AcceptConnection(userID, c.Param("connectionId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, connection)
}

func (h *StudentHandler) DeclineConnection(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.studentService.DeclineConnection(userID, c.Param("connectionId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Connection removed"})
}
