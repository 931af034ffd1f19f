package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/Asjdnnc/hackzilla/internal/handlers/apierr"
	"github.com/Asjdnnc/hackzilla/internal/metrics"
	"github.com/Asjdnnc/hackzilla/pkg/handlers/apidto"
	"github.com/Asjdnnc/hackzilla/pkg/qrpayload"
	"github.com/Asjdnnc/hackzilla/pkg/team"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type TeamHandler struct {
	repo   team.TeamsRepo
	logger *zap.SugaredLogger
}

func NewTeamHandler(logger *zap.SugaredLogger, repo team.TeamsRepo) *TeamHandler {
	return &TeamHandler{
		repo:   repo,
		logger: logger,
	}
}

type memberReq struct {
	Name        string `json:"name" binding:"required"`
	CollegeName string `json:"collegeName" binding:"required"`
	IsFromIIITS bool   `json:"isFromIIITS"`
}

type createTeamReq struct {
	Name    string      `json:"name" binding:"required"`
	Leader  string      `json:"leader" binding:"required"`
	Members []memberReq `json:"members" binding:"required,min=1,dive"`
}

// toDomainMembers trims member fields and reports false when any name or
// college is blank after trimming; `binding:"required"` alone lets
// whitespace-only strings through.
func toDomainMembers(members []memberReq) ([]team.Member, bool) {
	out := make([]team.Member, 0, len(members))
	for _, m := range members {
		name := strings.TrimSpace(m.Name)
		college := strings.TrimSpace(m.CollegeName)
		if name == "" || college == "" {
			return nil, false
		}
		out = append(out, team.Member{
			Name:        name,
			CollegeName: college,
			IsFromIIITS: m.IsFromIIITS,
		})
	}
	return out, true
}

func (h *TeamHandler) CreateTeam(c *gin.Context) {
	var req createTeamReq
	if err := c.ShouldBindJSON(&req); err != nil {
		apierr.WriteApiErrJSON(c, http.StatusBadRequest, apierr.BadRequest)
		h.logger.Warnw("error parsing request", "error", err)
		return
	}

	name := strings.TrimSpace(req.Name)
	leader := strings.TrimSpace(req.Leader)
	if name == "" || leader == "" {
		apierr.WriteApiErrJSON(c, http.StatusBadRequest, apierr.BadRequest)
		h.logger.Warnw("blank team name or leader", "name", req.Name)
		return
	}

	members, ok := toDomainMembers(req.Members)
	if !ok {
		apierr.WriteApiErrJSON(c, http.StatusBadRequest, apierr.BadRequest)
		h.logger.Warnw("blank member name or college", "name", name)
		return
	}

	created, err := h.repo.Create(&team.Team{
		Name:       name,
		Leader:     leader,
		Members:    members,
		Status:     team.StatusInvalid,
		FoodStatus: team.NewFoodStatus(),
		Allotment:  team.StatusInvalid,
	})
	if err != nil {
		if apierr.Handle(c, err) {
			h.logger.Warnw("error creating team", "name", name, "error", err)
			return
		}

		h.logger.Errorw("error creating team", "name", name, "error", err)
		apierr.WriteApiErrJSON(c, http.StatusInternalServerError, apierr.InternalServerError)
		return
	}

	c.JSON(http.StatusCreated, successResp{
		Success: true,
		Message: fmt.Sprintf("Team %q created successfully with ID: %s", created.Name, created.TeamID),
		Data:    apidto.FromTeam(created),
	})
}

func (h *TeamHandler) ListTeams(c *gin.Context) {
	teams, err := h.repo.List()
	if err != nil {
		h.logger.Errorw("error listing teams", "error", err)
		apierr.WriteApiErrJSON(c, http.StatusInternalServerError, apierr.InternalServerError)
		return
	}

	c.JSON(http.StatusOK, successResp{
		Success: true,
		Data:    apidto.FromTeams(teams),
	})
}

func (h *TeamHandler) GetTeam(c *gin.Context) {
	teamID := c.Param("teamId")

	t, err := h.repo.GetByTeamID(teamID)
	if err != nil {
		if apierr.Handle(c, err) {
			h.logger.Warnw("error getting team", "teamID", teamID, "error", err)
			return
		}

		h.logger.Errorw("error getting team", "teamID", teamID, "error", err)
		apierr.WriteApiErrJSON(c, http.StatusInternalServerError, apierr.InternalServerError)
		return
	}

	c.JSON(http.StatusOK, successResp{
		Success: true,
		Data:    apidto.FromTeam(t),
	})
}

type foodStatusReq struct {
	Lunch  string `json:"lunch"`
	Dinner string `json:"dinner"`
	Snacks string `json:"snacks"`
}

type updateTeamReq struct {
	Name        string         `json:"name" binding:"required"`
	Leader      string         `json:"leader" binding:"required"`
	Status      *string        `json:"status"`
	Members     []memberReq    `json:"members" binding:"omitempty,dive"`
	FoodStatus  *foodStatusReq `json:"foodStatus"`
	Allotment   *string        `json:"allotment"`
	LunchCount  *int           `json:"lunchcount"`
	DinnerCount *int           `json:"dinnercount"`
	SnacksCount *int           `json:"snackscount"`
}

// UpdateTeam is the admin-edit path: provided field groups overwrite the
// stored ones wholesale (a foodStatus body replaces the whole sub-record),
// and qrData is re-encoded from the new state. This is the only path that
// touches qrData after registration.
func (h *TeamHandler) UpdateTeam(c *gin.Context) {
	teamID := c.Param("teamId")

	var req updateTeamReq
	if err := c.ShouldBindJSON(&req); err != nil {
		apierr.WriteApiErrJSON(c, http.StatusBadRequest, apierr.BadRequest)
		h.logger.Warnw("error parsing request", "teamID", teamID, "error", err)
		return
	}

	name := strings.TrimSpace(req.Name)
	leader := strings.TrimSpace(req.Leader)
	if name == "" || leader == "" {
		apierr.WriteApiErrJSON(c, http.StatusBadRequest, apierr.BadRequest)
		h.logger.Warnw("blank team name or leader", "teamID", teamID)
		return
	}

	var members []team.Member
	if req.Members != nil {
		var ok bool
		members, ok = toDomainMembers(req.Members)
		if !ok {
			apierr.WriteApiErrJSON(c, http.StatusBadRequest, apierr.BadRequest)
			h.logger.Warnw("blank member name or college", "teamID", teamID)
			return
		}
	}

	if req.Status != nil && !team.Status(*req.Status).Known() {
		apierr.WriteApiErrJSON(c, http.StatusBadRequest, apierr.BadRequest)
		h.logger.Warnw("invalid status value", "teamID", teamID, "status", *req.Status)
		return
	}
	if req.Allotment != nil && !team.Status(*req.Allotment).Known() {
		apierr.WriteApiErrJSON(c, http.StatusBadRequest, apierr.BadRequest)
		h.logger.Warnw("invalid allotment value", "teamID", teamID, "allotment", *req.Allotment)
		return
	}
	if req.FoodStatus != nil {
		for _, v := range []string{req.FoodStatus.Lunch, req.FoodStatus.Dinner, req.FoodStatus.Snacks} {
			if !team.Status(v).Known() {
				apierr.WriteApiErrJSON(c, http.StatusBadRequest, apierr.BadRequest)
				h.logger.Warnw("invalid food status value", "teamID", teamID, "value", v)
				return
			}
		}
	}

	t, err := h.repo.GetByTeamID(teamID)
	if err != nil {
		if apierr.Handle(c, err) {
			h.logger.Warnw("error loading team for update", "teamID", teamID, "error", err)
			return
		}

		h.logger.Errorw("error loading team for update", "teamID", teamID, "error", err)
		apierr.WriteApiErrJSON(c, http.StatusInternalServerError, apierr.InternalServerError)
		return
	}

	wasCheckedIn := t.Status == team.StatusValid

	t.Name = name
	t.Leader = leader
	if req.Status != nil {
		t.Status = team.Status(*req.Status)
	}
	if req.Members != nil {
		t.Members = members
	}
	if req.FoodStatus != nil {
		t.FoodStatus = team.FoodStatus{
			Lunch:  team.Status(req.FoodStatus.Lunch),
			Dinner: team.Status(req.FoodStatus.Dinner),
			Snacks: team.Status(req.FoodStatus.Snacks),
		}
	}
	if req.Allotment != nil {
		t.Allotment = team.Status(*req.Allotment)
	}
	if req.LunchCount != nil {
		t.LunchCount = *req.LunchCount
	}
	if req.DinnerCount != nil {
		t.DinnerCount = *req.DinnerCount
	}
	if req.SnacksCount != nil {
		t.SnacksCount = *req.SnacksCount
	}

	raw, err := qrpayload.Encode(team.Snapshot(t))
	if err != nil {
		h.logger.Errorw("error re-encoding qr payload", "teamID", teamID, "error", err)
		apierr.WriteApiErrJSON(c, http.StatusInternalServerError, apierr.InternalServerError)
		return
	}
	t.QRData = raw

	saved, err := h.repo.Save(t)
	if err != nil {
		if apierr.Handle(c, err) {
			h.logger.Warnw("error updating team", "teamID", teamID, "error", err)
			return
		}

		h.logger.Errorw("error updating team", "teamID", teamID, "error", err)
		apierr.WriteApiErrJSON(c, http.StatusInternalServerError, apierr.InternalServerError)
		return
	}

	// keep the gauge in step with admin status edits, not just scans
	if isCheckedIn := saved.Status == team.StatusValid; isCheckedIn != wasCheckedIn {
		if isCheckedIn {
			metrics.AddCheckedInTeams(1)
		} else {
			metrics.AddCheckedInTeams(-1)
		}
	}

	c.JSON(http.StatusOK, successResp{
		Success: true,
		Message: "Team updated successfully",
		Data:    apidto.FromTeam(saved),
	})
}

// DeleteTeam is keyed by the storage id, not the 4-char team id. Asymmetric
// with every other lookup, and kept that way: the console only ever deletes
// from the table view where the storage id is at hand.
func (h *TeamHandler) DeleteTeam(c *gin.Context) {
	raw := c.Param("id")

	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		apierr.WriteApiErrJSON(c, http.StatusBadRequest, apierr.InvalidTeamIDFormat)
		h.logger.Warnw("invalid team id format", "id", raw)
		return
	}

	if err := h.repo.Delete(uint32(id)); err != nil {
		if apierr.Handle(c, err) {
			h.logger.Warnw("error deleting team", "id", id, "error", err)
			return
		}

		h.logger.Errorw("error deleting team", "id", id, "error", err)
		apierr.WriteApiErrJSON(c, http.StatusInternalServerError, apierr.InternalServerError)
		return
	}

	c.JSON(http.StatusOK, successResp{
		Success: true,
		Message: "Team deleted successfully",
	})
}

type qrCodeResp struct {
	Success bool   `json:"success"`
	QRCode  string `json:"qrCode"`
}

// TeamQRCode renders the stored payload as a printable PNG data URL.
func (h *TeamHandler) TeamQRCode(c *gin.Context) {
	teamID := c.Param("teamId")

	t, err := h.repo.GetByTeamID(teamID)
	if err != nil {
		if apierr.Handle(c, err) {
			h.logger.Warnw("error getting team for qr", "teamID", teamID, "error", err)
			return
		}

		h.logger.Errorw("error getting team for qr", "teamID", teamID, "error", err)
		apierr.WriteApiErrJSON(c, http.StatusInternalServerError, apierr.InternalServerError)
		return
	}

	dataURL, err := qrpayload.ImageDataURL(t.QRData)
	if err != nil {
		h.logger.Errorw("error rendering qr code", "teamID", teamID, "error", err)
		apierr.WriteApiErrJSON(c, http.StatusInternalServerError, apierr.InternalServerError)
		return
	}

	c.JSON(http.StatusOK, qrCodeResp{
		Success: true,
		QRCode:  dataURL,
	})
}
