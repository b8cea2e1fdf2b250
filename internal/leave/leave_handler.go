package leave

import (
	"net/http"

	"github.com/Ajay-karuppaiyan/sensitivetechcrm/internal/middleware"
	"github.com/Ajay-karuppaiyan/sensitivetechcrm/internal/shared/apperror"
	"github.com/Ajay-karuppaiyan/sensitivetechcrm/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// Create files a leave request as multipart form data with an optional
// attachment. The requester's identity comes from the verified session.
func (h *Handler) Create(c *gin.Context) {
	actorID := c.GetString(middleware.CtxEmployeeID)

	var req CreateLeaveRequest
	if err := c.ShouldBind(&req); err != nil {
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, nil)
		return
	}

	file, err := c.FormFile("attachment")
	if err != nil {
		file = nil
	}

	resp, err := h.service.Create(c.Request.Context(), actorID, req, file)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) GetAll(c *gin.Context) {
	viewerID := c.GetString(middleware.CtxEmployeeID)
	viewerRole := c.GetString(middleware.CtxRole)

	resp, err := h.service.ListForViewer(c.Request.Context(), viewerID, viewerRole)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetByID(c *gin.Context) {
	resp, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Update(c *gin.Context) {
	id := c.Param("id")

	var req UpdateLeaveRequest
	if err := c.ShouldBind(&req); err != nil {
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, nil)
		return
	}

	file, err := c.FormFile("attachment")
	if err != nil {
		file = nil
	}

	resp, err := h.service.Update(c.Request.Context(), id, req, file)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	id := c.Param("id")

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "Invalid status payload", err.Error())
		return
	}

	resp, err := h.service.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}

func (h *Handler) CountAll(c *gin.Context) {
	resp, err := h.service.CountAll(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

// Today lists everyone on leave today in the reporting zone.
func (h *Handler) Today(c *gin.Context) {
	resp, err := h.service.Today(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) ByEmployee(c *gin.Context) {
	resp, err := h.service.ByEmployee(c.Request.Context(), c.Param("code"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) CurrentMonth(c *gin.Context) {
	resp, err := h.service.CurrentMonthFor(c.Request.Context(), c.Param("code"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}
