package handlers

import (
	"fmt"
	"net/http"

	"github.com/Asjdnnc/hackzilla/internal/checkin"
	"github.com/Asjdnnc/hackzilla/internal/handlers/apierr"
	"github.com/Asjdnnc/hackzilla/pkg/handlers/apidto"
	"github.com/Asjdnnc/hackzilla/pkg/team"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ScanHandler struct {
	svc    *checkin.Service
	logger *zap.SugaredLogger
}

func NewScanHandler(logger *zap.SugaredLogger, svc *checkin.Service) *ScanHandler {
	return &ScanHandler{
		svc:    svc,
		logger: logger,
	}
}

type scanReq struct {
	QRData string `json:"qrData" binding:"required"`
	Action string `json:"action" binding:"required"`
}

func (h *ScanHandler) ScanQR(c *gin.Context) {
	var req scanReq
	if err := c.ShouldBindJSON(&req); err != nil {
		apierr.WriteApiErrJSON(c, http.StatusBadRequest, apierr.BadRequest)
		h.logger.Warnw("error parsing request", "error", err)
		return
	}

	t, err := h.svc.ApplyScan(req.QRData, req.Action)
	if err != nil {
		if apierr.Handle(c, err) {
			h.logger.Warnw("scan rejected", "action", req.Action, "error", err)
			return
		}

		h.logger.Errorw("error processing scan", "action", req.Action, "error", err)
		apierr.WriteApiErrJSON(c, http.StatusInternalServerError, apierr.InternalServerError)
		return
	}

	c.JSON(http.StatusOK, successResp{
		Success: true,
		Message: fmt.Sprintf("%s processed successfully", req.Action),
		Data:    apidto.FromTeam(t),
	})
}

type foodToggleReq struct {
	FoodType string `json:"foodType" binding:"required"`
}

func (h *ScanHandler) UpdateFoodStatus(c *gin.Context) {
	teamID := c.Param("teamId")

	var req foodToggleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		apierr.WriteApiErrJSON(c, http.StatusBadRequest, apierr.BadRequest)
		h.logger.Warnw("error parsing request", "teamID", teamID, "error", err)
		return
	}

	t, err := h.svc.ToggleFood(teamID, req.FoodType)
	if err != nil {
		if apierr.Handle(c, err) {
			h.logger.Warnw("food toggle rejected", "teamID", teamID, "foodType", req.FoodType, "error", err)
			return
		}

		h.logger.Errorw("error toggling food status", "teamID", teamID, "foodType", req.FoodType, "error", err)
		apierr.WriteApiErrJSON(c, http.StatusInternalServerError, apierr.InternalServerError)
		return
	}

	c.JSON(http.StatusOK, successResp{
		Success: true,
		Message: fmt.Sprintf("%s status updated to %s", req.FoodType, mealValue(t, req.FoodType)),
		Data:    apidto.FromTeam(t),
	})
}

func mealValue(t *team.Team, foodType string) team.Status {
	switch foodType {
	case checkin.ActionDinner:
		return t.FoodStatus.Dinner
	case checkin.ActionSnacks:
		return t.FoodStatus.Snacks
	default:
		return t.FoodStatus.Lunch
	}
}
