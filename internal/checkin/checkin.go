// Package checkin is the sole authority for mutating a team's check-in, meal
// and allotment flags. The scan path is strictly one-directional: a repeated
// scan of the same physical code is rejected, never silently reapplied, so a
// volunteer's device can reconcile after a failure without double-counting a
// meal. The direct food path toggles instead; the two policies serve two
// different client flows and are deliberately not unified.
package checkin

import (
	"errors"
	"time"

	"github.com/Asjdnnc/hackzilla/internal/metrics"
	"github.com/Asjdnnc/hackzilla/pkg/qrpayload"
	"github.com/Asjdnnc/hackzilla/pkg/team"
	"go.uber.org/zap"
)

const (
	ActionCheckIn   = "check-in"
	ActionLunch     = "lunch"
	ActionDinner    = "dinner"
	ActionSnacks    = "snacks"
	ActionAllotment = "allotment"
)

var (
	ErrNotCheckedIn      = errors.New("NOT_CHECKED_IN")
	ErrAlreadyCheckedIn  = errors.New("ALREADY_CHECKED_IN")
	ErrMealAlreadyServed = errors.New("MEAL_ALREADY_SERVED")
	ErrAllotmentDone     = errors.New("ALLOTMENT_ALREADY_DONE")
	ErrUnsupportedAction = errors.New("UNSUPPORTED_ACTION")
	ErrUnknownFoodType   = errors.New("UNKNOWN_FOOD_TYPE")
)

type Service struct {
	logger *zap.SugaredLogger
	repo   team.TeamsRepo
}

func NewService(logger *zap.SugaredLogger, repo team.TeamsRepo) *Service {
	return &Service{
		logger: logger,
		repo:   repo,
	}
}

// ApplyScan validates and applies a scanned action. Only the teamId embedded
// in the payload is trusted; all authoritative state is re-read from the
// repository. The stored QRData is passed through untouched on every branch -
// the printed code must stay valid for repeat scans.
func (s *Service) ApplyScan(qrData, action string) (*team.Team, error) {
	start := time.Now()
	t, err := s.applyScan(qrData, action)
	metrics.ObserveScanOp(action, start, err)
	return t, err
}

func (s *Service) applyScan(qrData, action string) (*team.Team, error) {
	s.logger.Debugw("ApplyScan()", "action", action)

	payload, err := qrpayload.Decode(qrData)
	if err != nil {
		s.logger.Warnw("invalid qr payload", "action", action, "err", err)
		return nil, err
	}

	t, err := s.repo.GetByTeamID(payload.TeamID)
	if err != nil {
		s.logger.Warnw("error loading scanned team", "teamID", payload.TeamID, "err", err)
		return nil, err
	}

	switch action {
	case ActionCheckIn:
		if t.Status == team.StatusValid {
			s.logger.Warnw("team already checked in", "teamID", t.TeamID)
			return nil, ErrAlreadyCheckedIn
		}
		t.Status = team.StatusValid
		ensureFoodStatus(t)

	case ActionLunch, ActionDinner, ActionSnacks:
		if t.Status != team.StatusValid {
			s.logger.Warnw("meal scan before check-in", "teamID", t.TeamID, "action", action)
			return nil, ErrNotCheckedIn
		}
		ensureFoodStatus(t)
		meal := mealRef(&t.FoodStatus, action)
		if *meal == team.StatusValid {
			s.logger.Warnw("meal already served", "teamID", t.TeamID, "action", action)
			return nil, ErrMealAlreadyServed
		}
		*meal = team.StatusValid

	case ActionAllotment:
		if t.Status != team.StatusValid {
			s.logger.Warnw("allotment scan before check-in", "teamID", t.TeamID)
			return nil, ErrNotCheckedIn
		}
		if t.Allotment == team.StatusValid {
			s.logger.Warnw("allotment already done", "teamID", t.TeamID)
			return nil, ErrAllotmentDone
		}
		t.Allotment = team.StatusValid

	default:
		s.logger.Warnw("unsupported scan action", "action", action)
		return nil, ErrUnsupportedAction
	}

	saved, err := s.repo.Save(t)
	if err != nil {
		s.logger.Errorw("error persisting scan result", "teamID", t.TeamID, "action", action, "err", err)
		return nil, err
	}

	if action == ActionCheckIn {
		metrics.AddCheckedInTeams(1)
	}

	s.logger.Debugw("scan applied", "teamID", saved.TeamID, "action", action)
	return saved, nil
}

// ToggleFood is the admin-table path: it flips the named meal valid<->invalid
// rather than one-directionally setting it. Gated on check-in like the scan
// path, but repeat calls keep succeeding.
func (s *Service) ToggleFood(teamID, foodType string) (*team.Team, error) {
	s.logger.Debugw("ToggleFood()", "teamID", teamID, "foodType", foodType)

	if foodType != ActionLunch && foodType != ActionDinner && foodType != ActionSnacks {
		s.logger.Warnw("unknown food type", "teamID", teamID, "foodType", foodType)
		return nil, ErrUnknownFoodType
	}

	t, err := s.repo.GetByTeamID(teamID)
	if err != nil {
		s.logger.Warnw("error loading team", "teamID", teamID, "err", err)
		return nil, err
	}

	if t.Status != team.StatusValid {
		s.logger.Warnw("food toggle before check-in", "teamID", teamID, "foodType", foodType)
		return nil, ErrNotCheckedIn
	}

	ensureFoodStatus(t)
	meal := mealRef(&t.FoodStatus, foodType)
	if *meal == team.StatusValid {
		*meal = team.StatusInvalid
	} else {
		*meal = team.StatusValid
	}

	saved, err := s.repo.Save(t)
	if err != nil {
		s.logger.Errorw("error persisting food toggle", "teamID", teamID, "foodType", foodType, "err", err)
		return nil, err
	}

	s.logger.Debugw("food toggled", "teamID", saved.TeamID, "foodType", foodType)
	return saved, nil
}

// ensureFoodStatus backfills the all-invalid record on documents created
// before the meal fields existed.
func ensureFoodStatus(t *team.Team) {
	if t.FoodStatus.Lunch == "" {
		t.FoodStatus.Lunch = team.StatusInvalid
	}
	if t.FoodStatus.Dinner == "" {
		t.FoodStatus.Dinner = team.StatusInvalid
	}
	if t.FoodStatus.Snacks == "" {
		t.FoodStatus.Snacks = team.StatusInvalid
	}
}

func mealRef(fs *team.FoodStatus, name string) *team.Status {
	switch name {
	case ActionDinner:
		return &fs.Dinner
	case ActionSnacks:
		return &fs.Snacks
	default:
		return &fs.Lunch
	}
}
