package attendance

import (
	"net/http"
	"strconv"

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

// CheckIn creates a record for the authenticated employee. Identity
// comes from the verified session, never from the body.
func (h *Handler) CheckIn(c *gin.Context) {
	employeeID := c.GetString(middleware.CtxEmployeeID)

	resp, err := h.service.CheckIn(c.Request.Context(), employeeID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) CheckOut(c *gin.Context) {
	id := c.Param("id")

	var req CheckOutRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "Invalid check-out payload", err.Error())
		return
	}

	// optional attachment
	file, err := c.FormFile("attachment")
	if err != nil {
		file = nil
	}

	resp, err := h.service.CheckOut(c.Request.Context(), id, req, file)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetAll(c *gin.Context) {
	viewerID := c.GetString(middleware.CtxEmployeeID)
	viewerRole := c.GetString(middleware.CtxRole)

	resp, err := h.service.ListForViewer(c.Request.Context(), viewerID, viewerRole)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if pageSize < 1 {
		pageSize = 20
	}

	total := int64(len(resp))
	start := (page - 1) * pageSize
	end := start + pageSize
	if start > len(resp) {
		start = len(resp)
	}
	if end > len(resp) {
		end = len(resp)
	}

	meta := response.NewPaginationMeta(total, page, pageSize)
	response.Success(c, http.StatusOK, resp[start:end], &meta)
}

func (h *Handler) CountAll(c *gin.Context) {
	resp, err := h.service.CountAll(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) CountToday(c *gin.Context) {
	resp, err := h.service.CountToday(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

// MonthlyCount resolves by employee code from the path. The code is a
// lookup key only; access is controlled by the session role.
func (h *Handler) MonthlyCount(c *gin.Context) {
	code := c.Param("code")

	resp, err := h.service.MonthlyCountFor(c.Request.Context(), code)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}
