package auth

import (
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"linkdir/internal/authz"
	apperrors "linkdir/internal/errors"
)

// actorContextKey is where the resolved actor is stashed on the echo context.
const actorContextKey = "actor"

// RequireAuth rejects requests without a valid bearer token with 401 and
// stashes the resolved actor on the context otherwise.
func RequireAuth(jwtService *JWTService) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ParseTokenFunc: parseToken(jwtService),
		SuccessHandler: storeActor,
		ErrorHandler: func(c echo.Context, err error) error {
			httpErr := apperrors.MapErrorToHTTP(apperrors.ErrUnauthenticated)
			return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
		},
	})
}

// OptionalAuth resolves an actor when a valid bearer token is present and
// treats everything else — missing, malformed, or expired tokens — as an
// anonymous request. Registration uses this: the token only matters for the
// role-escalation rule.
func OptionalAuth(jwtService *JWTService) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ParseTokenFunc:         parseToken(jwtService),
		SuccessHandler:         storeActor,
		ContinueOnIgnoredError: true,
		ErrorHandler: func(c echo.Context, err error) error {
			return nil
		},
	})
}

func parseToken(jwtService *JWTService) func(c echo.Context, auth string) (interface{}, error) {
	return func(c echo.Context, auth string) (interface{}, error) {
		claims, err := jwtService.Verify(auth)
		if err != nil {
			return nil, err
		}
		return claims, nil
	}
}

func storeActor(c echo.Context) {
	if claims, ok := c.Get("user").(*Claims); ok {
		if actor := claims.Actor(); actor != nil {
			c.Set(actorContextKey, actor)
		}
	}
}

// ActorFromContext returns the actor resolved by the auth middleware, or nil
// for an anonymous request.
func ActorFromContext(c echo.Context) *authz.Actor {
	actor, _ := c.Get(actorContextKey).(*authz.Actor)
	return actor
}
