package trigger

import (
	"crypto/subtle"
	"log/slog"

	"github.com/kultapp/jobengine/handler"
	"github.com/kultapp/jobengine/pkg/jwt"
	"github.com/kultapp/jobengine/pkg/logger"
)

// TokenVerifier checks bearer tokens. *jwt.Service implements it.
type TokenVerifier interface {
	Verify(token string) (*jwt.Claims, error)
}

// authenticator decides whether a trigger request may run a job.
// A cron secret, when presented, is checked first and decides alone.
type authenticator struct {
	cronSecret []byte
	verifier   TokenVerifier
	logger     *slog.Logger
}

func (a authenticator) decorate(next handler.HandlerFunc[handler.Context, struct{}]) handler.HandlerFunc[handler.Context, struct{}] {
	return func(ctx handler.Context, req struct{}) handler.Response {
		if err := a.authenticate(ctx); err != nil {
			return handler.JSONError(err)
		}
		return next(ctx, req)
	}
}

func (a authenticator) authenticate(ctx handler.Context) error {
	r := ctx.Request()
	secret := r.Header.Get(headerCronSecret)
	authorization := r.Header.Get("Authorization")

	if secret == "" && authorization == "" {
		a.logger.WarnContext(ctx, "trigger request without credentials")
		return ErrUnauthorized
	}

	if secret != "" {
		if len(a.cronSecret) == 0 || subtle.ConstantTimeCompare([]byte(secret), a.cronSecret) != 1 {
			a.logger.WarnContext(ctx, "trigger request with invalid cron secret")
			return ErrInvalidCronSecret
		}
		return nil
	}

	if a.verifier == nil {
		return nil
	}

	token, err := jwt.BearerToken(authorization)
	if err == nil {
		_, err = a.verifier.Verify(token)
	}
	if err != nil {
		a.logger.WarnContext(ctx, "trigger request with invalid bearer token", logger.Error(err))
		return ErrInvalidBearerToken
	}

	return nil
}
