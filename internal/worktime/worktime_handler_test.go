package worktime_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pokemogu/TimecardSystem-sub001/internal/worktime"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeService struct {
	getWorkTimeInfoFn func(ctx context.Context, q worktime.WorkTimeQuery) ([]worktime.WorkTimeRow, error)
}

func (f *fakeService) GetWorkTimeInfo(ctx context.Context, q worktime.WorkTimeQuery) ([]worktime.WorkTimeRow, error) {
	return f.getWorkTimeInfoFn(ctx, q)
}

func TestHandler_GetWorkTimeInfo(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeService{
		getWorkTimeInfoFn: func(ctx context.Context, q worktime.WorkTimeQuery) ([]worktime.WorkTimeRow, error) {
			assert.Equal(t, "2024-06-01", q.DateFrom)
			assert.Equal(t, "2024-06-30", q.DateTo)
			return []worktime.WorkTimeRow{
				{UserAccount: "yamada", TotalWorkTime: 9600, TotalLeaveDays: 1.5},
			}, nil
		},
	}

	h := worktime.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet,
		"/worktime?date_from=2024-06-01&date_to=2024-06-30", nil)
	h.GetWorkTimeInfo(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_account":"yamada"`)
	assert.Contains(t, w.Body.String(), `"total_leave_days":1.5`)
}

func TestHandler_GetWorkTimeInfo_MissingRange(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := worktime.NewHandler(&fakeService{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/worktime", nil)
	h.GetWorkTimeInfo(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
