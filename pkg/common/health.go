package common

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthStatus represents the health of the service and its dependencies
type HealthStatus struct {
	Service   string            `json:"service"`
	Version   string            `json:"version"`
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// HealthCheck returns a basic liveness handler
func HealthCheck(serviceName, version string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, HealthStatus{
			Service:   serviceName,
			Version:   version,
			Status:    "ok",
			Timestamp: time.Now().UTC(),
		})
	}
}

// ReadinessProbe runs the supplied dependency checks and reports 503 when any fail
func ReadinessProbe(serviceName, version string, checks map[string]func() error) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := HealthStatus{
			Service:   serviceName,
			Version:   version,
			Status:    "ready",
			Timestamp: time.Now().UTC(),
			Checks:    make(map[string]string, len(checks)),
		}

		code := http.StatusOK
		for name, check := range checks {
			if err := check(); err != nil {
				status.Checks[name] = err.Error()
				status.Status = "not ready"
				code = http.StatusServiceUnavailable
				continue
			}
			status.Checks[name] = "ok"
		}

		c.JSON(code, status)
	}
}
