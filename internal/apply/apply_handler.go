package apply

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

func (h *Handler) Submit(c *gin.Context) {
	actorID := c.GetString("actor_id")

	var req SubmitApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Submit(c.Request.Context(), actorID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) Approve(c *gin.Context) {
	h.decide(c, DecisionApprove)
}

func (h *Handler) Reject(c *gin.Context) {
	h.decide(c, DecisionReject)
}

func (h *Handler) decide(c *gin.Context, decision string) {
	actorID := c.GetString("actor_id")

	resp, err := h.service.Decide(c.Request.Context(), c.Param("id"), decision, actorID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) CurrentDecision(c *gin.Context) {
	resp, err := h.service.CurrentDecision(
		c.Request.Context(),
		c.Query("user_id"),
		c.Query("type"),
		c.Query("date"),
	)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Pending(c *gin.Context) {
	resp, err := h.service.PendingByType(c.Request.Context(), c.Query("type"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Approved(c *gin.Context) {
	resp, err := h.service.ApprovedByTypeRange(
		c.Request.Context(),
		c.Query("type"),
		c.Query("date_from"),
		c.Query("date_to"),
	)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}
