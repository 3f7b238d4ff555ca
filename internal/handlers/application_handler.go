package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"instalab_backend/internal/middleware"
	"instalab_backend/internal/models"
	"instalab_backend/internal/services"
	"instalab_backend/internal/services/dto"
)

type ApplicationHandler struct {
	*BaseHandler
	applicationService services.ApplicationService
}

func NewApplicationHandler(base *BaseHandler, applicationService services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{
		BaseHandler:        base,
		applicationService: applicationService,
	}
}

func (h *ApplicationHandler) RegisterRoutes(r *gin.RouterGroup) {
	applications := r.Group("/applications")
	applications.Use(middleware.AuthMiddleware())
	{
		applications.GET("/my", h.ListOwn)
		applications.GET("/:applicationId", h.Get)
	}

	company := r.Group("/applications")
	company.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.UserRoleCompany))
	{
		company.PUT("/:applicationId/status", h.UpdateStatus)
	}

	student := r.Group("/applications")
	student.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.UserRoleStudent))
	{
		student.POST("/:applicationId/withdraw", h.Withdraw)
	}
}

func (h *ApplicationHandler) ListOwn(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var pq dto.PaginationQuery
	if !h.BindAndValidateQuery(c, &pq) {
		return
	}

	applications, err := h.applicationService.ListOwn(userID, &pq)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, applications)
}

func (h *ApplicationHandler) Get(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	application, err := h.applicationService.Get(userID, c.Param("applicationId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, application)
}

func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateApplicationStatusRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	application, err := h.applicationService.UpdateStatus(c.Request.Context(), userID, c.Param("applicationId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, application)
}

func (h *ApplicationHandler) Withdraw(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	application, err := h.applicationService.Withdraw(c.Request.Context(), userID, c.Param("applicationId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, application)
}
