package trigger

import (
	"net/http"

	"github.com/kultapp/jobengine/handler"
)

var (
	ErrUnauthorized        = handler.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	ErrInvalidCronSecret   = handler.NewHTTPError(http.StatusUnauthorized, "Invalid cron secret")
	ErrInvalidBearerToken  = handler.NewHTTPError(http.StatusUnauthorized, "Invalid bearer token")
	ErrServerMisconfigured = handler.NewHTTPError(http.StatusInternalServerError, "Server misconfigured")
	ErrFailedToFetchJob    = handler.NewHTTPError(http.StatusInternalServerError, "Failed to fetch job")
)
