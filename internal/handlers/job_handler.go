package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"instalab_backend/internal/middleware"
	"instalab_backend/internal/models"
	"instalab_backend/internal/services"
	"instalab_backend/internal/services/dto"
)

type JobHandler struct {
	*BaseHandler
	jobService         services.JobService
	applicationService services.ApplicationService
}

func NewJobHandler(base *BaseHandler, jobService services.JobService, applicationService services.ApplicationService) *JobHandler {
	return &JobHandler{
		BaseHandler:        base,
		jobService:         jobService,
		applicationService: applicationService,
	}
}

func (h *JobHandler) RegisterRoutes(r *gin.RouterGroup) {
	public := r.Group("/jobs")
	public.Use(middleware.OptionalAuthMiddleware())
	{
		public.GET("", h.Search)
		public.GET("/categories", h.Categories)
		public.GET("/:jobId", h.Get)
		public.GET("/company/:companyId", h.ListByCompany)
	}

	company := r.Group("/jobs")
	company.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.UserRoleCompany))
	{
		company.POST("", h.Create)
		company.PUT("/:jobId", h.Update)
		company.PUT("/:jobId/status", h.UpdateStatus)
		company.GET("/:jobId/applications", h.ListApplications)
	}

	student := r.Group("/jobs")
	student.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.UserRoleStudent))
	{
		student.POST("/:jobId/apply", h.Apply)
	}
}

func (h *JobHandler) Search(c *gin.Context) {
	var query dto.JobSearchQuery
	if !h.BindAndValidateQuery(c, &query) {
		return
	}

	jobs, err := h.jobService.Search(&query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, jobs)
}

func (h *JobHandler) Categories(c *gin.Context) {
	categories, err := h.jobService.Categories()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

func (h *JobHandler) Get(c *gin.Context) {
	job, err := h.jobService.Get(middleware.GetUserID(c), c.Param("jobId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

func (h *JobHandler) ListByCompany(c *gin.Context) {
	var pq dto.PaginationQuery
	if !h.BindAndValidateQuery(c, &pq) {
		return
	}

	jobs, err := h.jobService.ListByCompany(middleware.GetUserID(c), c.Param("companyId"), &pq)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, jobs)
}

func (h *JobHandler) Create(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateJobRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	job, err := h.jobService.Create(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, job)
}

func (h *JobHandler) Update(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateJobRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	job, err := h.jobService.Update(userID, c.Param("jobId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

func (h *JobHandler) UpdateStatus(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateJobStatusRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	job, err := h.jobService.UpdateStatus(userID, c.Param("jobId"), req.Status)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

func (h *JobHandler) ListApplications(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var query dto.ApplicationListQuery
	if !h.BindAndValidateQuery(c, &query) {
		return
	}

	applications, err := h.applicationService.ListForJob(userID, c.Param("jobId"), &query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, applications)
}

func (h *JobHandler) Apply(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.ApplyRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	application, err := h.applicationService.Apply(c.Request.Context(), userID, c.Param("jobId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, application)
}
