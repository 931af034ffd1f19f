package handlers

import (
	"net/http"

	"github.com/Asjdnnc/hackzilla/internal/handlers/apierr"
	"github.com/Asjdnnc/hackzilla/internal/stats"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AdminHandler struct {
	svc    *stats.Service
	logger *zap.SugaredLogger
}

func NewAdminHandler(logger *zap.SugaredLogger, svc *stats.Service) *AdminHandler {
	return &AdminHandler{
		svc:    svc,
		logger: logger,
	}
}

type overallStatsResp struct {
	Success bool `json:"success"`
	*stats.Overall
}

func (h *AdminHandler) Stats(c *gin.Context) {
	overall, err := h.svc.Overall()
	if err != nil {
		h.logger.Errorw("error computing overall stats", "error", err)
		apierr.WriteApiErrJSON(c, http.StatusInternalServerError, apierr.InternalServerError)
		return
	}

	c.JSON(http.StatusOK, overallStatsResp{
		Success: true,
		Overall: overall,
	})
}

type foodStatsResp struct {
	Success bool `json:"success"`
	*stats.Food
}

func (h *AdminHandler) FoodStats(c *gin.Context) {
	food, err := h.svc.Food()
	if err != nil {
		h.logger.Errorw("error computing food stats", "error", err)
		apierr.WriteApiErrJSON(c, http.StatusInternalServerError, apierr.InternalServerError)
		return
	}

	c.JSON(http.StatusOK, foodStatsResp{
		Success: true,
		Food:    food,
	})
}
