package worktime

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/pokemogu/TimecardSystem-sub001/internal/shared/apperror"
	"github.com/pokemogu/TimecardSystem-sub001/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// reportCacheTTL is short on purpose: aggregates are recomputed from the
// ledger, so a stale report self-heals within a minute.
const reportCacheTTL = 60 * time.Second

type Handler struct {
	service Service
	rdb     *redis.Client
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func NewHandlerWithRedis(service Service, rdb *redis.Client) *Handler {
	return &Handler{service: service, rdb: rdb}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) GetWorkTimeInfo(c *gin.Context) {
	ctx := c.Request.Context()

	var q WorkTimeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	cacheKey := fmt.Sprintf("worktime:%s:%s:%s", q.DateFrom, q.DateTo, q.UserAccount)
	if h.rdb != nil {
		if cached, err := h.rdb.Get(ctx, cacheKey).Bytes(); err == nil {
			var rows []WorkTimeRow
			if json.Unmarshal(cached, &rows) == nil {
				response.Success(c, http.StatusOK, rows, nil)
				return
			}
		}
	}

	rows, err := h.service.GetWorkTimeInfo(ctx, q)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	if h.rdb != nil {
		if payload, marshalErr := json.Marshal(rows); marshalErr == nil {
			_ = h.rdb.Set(ctx, cacheKey, payload, reportCacheTTL).Err()
		}
	}

	response.Success(c, http.StatusOK, rows, nil)
}
