package apierr

import (
	"errors"
	"net/http"

	"github.com/Asjdnnc/hackzilla/internal/checkin"
	"github.com/Asjdnnc/hackzilla/pkg/qrpayload"
	"github.com/Asjdnnc/hackzilla/pkg/team"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ErrResponse struct {
	Success bool     `json:"success"`
	Error   APIError `json:"error"`
}

// Map keeps wire responses stable when the underlying errors get reworded
// for logs or readability.
func Map(err error) (int, APIError, bool) {
	switch {
	case errors.Is(err, team.ErrTeamExists):
		return http.StatusBadRequest, TeamExists, true

	case errors.Is(err, team.ErrTeamNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound, NotFound, true

	case errors.Is(err, team.ErrCapacityExhausted):
		return http.StatusInsufficientStorage, CapacityExhausted, true
	case errors.Is(err, team.ErrTeamIDConflict):
		return http.StatusInternalServerError, TeamIDConflict, true

	case errors.Is(err, qrpayload.ErrInvalidPayload):
		return http.StatusBadRequest, InvalidQRPayload, true

	case errors.Is(err, checkin.ErrNotCheckedIn):
		return http.StatusBadRequest, NotCheckedIn, true
	case errors.Is(err, checkin.ErrAlreadyCheckedIn):
		return http.StatusBadRequest, AlreadyCheckedIn, true
	case errors.Is(err, checkin.ErrMealAlreadyServed):
		return http.StatusBadRequest, MealAlreadyServed, true
	case errors.Is(err, checkin.ErrAllotmentDone):
		return http.StatusBadRequest, AllotmentDone, true
	case errors.Is(err, checkin.ErrUnsupportedAction):
		return http.StatusBadRequest, UnsupportedAction, true
	case errors.Is(err, checkin.ErrUnknownFoodType):
		return http.StatusBadRequest, InvalidFoodType, true

	default:
		// not handled automatically - the caller may want a different
		// fallback than a blanket 500
		return http.StatusInternalServerError, InternalServerError, false
	}
}

func Handle(c *gin.Context, err error) bool {
	if status, apiErr, ok := Map(err); ok {
		WriteApiErrJSON(c, status, apiErr)
		return true
	}

	return false
}

func WriteApiErrJSON(c *gin.Context, status int, apiErr APIError) {
	c.JSON(status, ErrResponse{
		Success: false,
		Error:   apiErr,
	})
}
