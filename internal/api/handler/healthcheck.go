package handler

import (
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ppc-flight-recorder/pkg/utils"
)

const serviceName = "ppc-flight-recorder"

func HealthcheckHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		err := utils.JSON.NewEncoder(w).Encode(map[string]string{
			"status":  "ok",
			"service": serviceName,
		})
		if err != nil {
			logrus.WithError(err).Warn("error responding to healthcheck")
		}
	})
}
