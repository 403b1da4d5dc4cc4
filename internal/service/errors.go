package service

import "errors"

var (
	// ErrSettingsNotFound means the user has never saved settings.
	ErrSettingsNotFound = errors.New("user settings not found")

	// ErrMissingMeasurements means settings exist but weight or height is
	// unset; both are mandatory generation inputs.
	ErrMissingMeasurements = errors.New("weight and height must be set")

	// ErrGenerationFailed wraps any failure of the generation gateway.
	ErrGenerationFailed = errors.New("generation failed")

	// ErrUnknownMealType means the gateway returned a meal-type label outside
	// the agreed vocabulary. This is a contract breach, not a user error.
	ErrUnknownMealType = errors.New("unknown meal type")

	ErrDietNotFound        = errors.New("diet not found")
	ErrGroceryListNotFound = errors.New("no grocery list found for this diet")
	ErrMealNotFound        = errors.New("meal not found")

	// ErrMealForbidden means the meal exists but belongs to another user's
	// diet. Meals are the one place ownership is provable, so this is a 403
	// rather than a 404.
	ErrMealForbidden = errors.New("you do not have access to that meal")

	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token has expired")
)
