package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MauroGaravito/emilio-cogs/internal/apierror"
	"github.com/MauroGaravito/emilio-cogs/internal/service"
)

type DashboardHandler struct{ svc service.DashboardService }

func NewDashboardHandler(svc service.DashboardService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

// Summary godoc
// @Summary Dashboard aggregates
// @Tags dashboard
// @Produce json
// @Success 200 {object} dto.DashboardSummary
// @Router /api/dashboard [get]
func (h *DashboardHandler) Summary(c *gin.Context) {
	resp, err := h.svc.Summary(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to compute dashboard summary"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
