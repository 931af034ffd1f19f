package apierr

var (
	BadRequest = APIError{
		Code:    "INVALID_REQUEST",
		Message: "invalid request body",
	}
	Unauthorized = APIError{
		Code:    "UNAUTHORIZED_REQUEST",
		Message: "unauthorized request",
	}
	NotFound = APIError{
		Code:    "NOT_FOUND",
		Message: "team not found",
	}
	InternalServerError = APIError{
		Code:    "INTERNAL_SERVER_ERROR",
		Message: "internal server error",
	}
	TeamExists = APIError{
		Code:    "TEAM_EXISTS",
		Message: "a team with this name already exists, please choose a different name",
	}
	CapacityExhausted = APIError{
		Code:    "TEAM_ID_CAPACITY_EXHAUSTED",
		Message: "all possible team IDs in the 25xx range have been used",
	}
	TeamIDConflict = APIError{
		Code:    "TEAM_ID_CONFLICT",
		Message: "failed to generate unique team ID, please try again",
	}
	InvalidQRPayload = APIError{
		Code:    "INVALID_QR_DATA",
		Message: "invalid QR data",
	}
	NotCheckedIn = APIError{
		Code:    "NOT_CHECKED_IN",
		Message: "team must have valid status to update food or allotment status",
	}
	AlreadyCheckedIn = APIError{
		Code:    "ALREADY_CHECKED_IN",
		Message: "team is already checked in (valid status)",
	}
	MealAlreadyServed = APIError{
		Code:    "MEAL_ALREADY_SERVED",
		Message: "this meal has already been served to the team",
	}
	AllotmentDone = APIError{
		Code:    "ALLOTMENT_ALREADY_DONE",
		Message: "allotment has already been marked for the team",
	}
	UnsupportedAction = APIError{
		Code:    "UNSUPPORTED_ACTION",
		Message: "invalid action",
	}
	InvalidFoodType = APIError{
		Code:    "INVALID_FOOD_TYPE",
		Message: "invalid food type",
	}
	InvalidTeamIDFormat = APIError{
		Code:    "INVALID_TEAM_ID",
		Message: "invalid team ID format",
	}
)
