package record

import (
	"net/http"

	"github.com/pokemogu/TimecardSystem-sub001/internal/shared/apperror"
	"github.com/pokemogu/TimecardSystem-sub001/internal/shared/response"

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

func (h *Handler) SubmitPunch(c *gin.Context) {
	var req SubmitPunchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.SubmitPunch(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) Query(c *gin.Context) {
	var req QueryRecordsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	rows, total, err := h.service.Query(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	limit := req.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}
	page := 1
	if limit > 0 {
		page = req.Offset/limit + 1
	}
	meta := response.NewPaginationMeta(total, page, limit)
	response.Success(c, http.StatusOK, rows, &meta)
}
