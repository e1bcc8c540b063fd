package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/offer-fe/offer-be/internal/dto"
	"github.com/offer-fe/offer-be/pkg/errs"
	"github.com/offer-fe/offer-be/pkg/response"
	"github.com/offer-fe/offer-be/pkg/utils"
	"github.com/rs/zerolog/log"
)

const authenticationKey = "authentication"

type Auth struct {
	secret string
}

func CreateAuth(jwtSecret string) *Auth {
	return &Auth{secret: jwtSecret}
}

// Optional resolves the bearer token when present. Anonymous requests pass through.
func (a *Auth) Optional(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, ok := bearerToken(c)
		if !ok {
			return next(c)
		}

		if err := a.authenticate(c, token); err != nil {
			return response.WriteErrorResponse(c, errs.ErrInvalidToken, nil)
		}

		return next(c)
	}
}

// Required rejects requests without a valid bearer token.
func (a *Auth) Required(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, ok := bearerToken(c)
		if !ok {
			return response.WriteErrorResponse(c, errs.ErrNotLoggedIn, nil)
		}

		if err := a.authenticate(c, token); err != nil {
			return response.WriteErrorResponse(c, errs.ErrInvalidToken, nil)
		}

		return next(c)
	}
}

func (a *Auth) authenticate(c echo.Context, token string) error {
	principal, err := utils.ParseJWTToken(token, a.secret)
	if err != nil {
		log.Ctx(c.Request().Context()).Warn().Err(err).Str("component", "Auth").Msg("rejected token")
		return err
	}

	c.Set(authenticationKey, &dto.Authentication{LoginID: principal, Token: token})
	return nil
}

// GetAuthentication returns the caller identity, or nil for anonymous requests.
func GetAuthentication(c echo.Context) *dto.Authentication {
	auth, _ := c.Get(authenticationKey).(*dto.Authentication)
	return auth
}

func bearerToken(c echo.Context) (string, bool) {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if header == "" {
		return "", false
	}

	token, found := strings.CutPrefix(header, "Bearer ")
	if !found {
		return "", false
	}

	token = strings.TrimSpace(token)
	return token, token != ""
}
