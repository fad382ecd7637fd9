package handler

import (
	"net/http"

	"github.com/vfg2006/ppc-flight-recorder/internal/api/handler/router"
	"github.com/vfg2006/ppc-flight-recorder/internal/usecases/authenticating"
	"github.com/vfg2006/ppc-flight-recorder/pkg/middleware"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
	}
}

func Sync(scheduler SyncScheduler) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/sync/schedule",
			Method:      http.MethodGet,
			Handler:     GetSyncSchedule(scheduler),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/sync/run",
			Method:      http.MethodPost,
			Handler:     RunSync(scheduler),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}
