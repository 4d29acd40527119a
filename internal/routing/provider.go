package routing

import (
	"fmt"

	"github.com/citywander/trip-planner/pkg/config"
	"github.com/citywander/trip-planner/pkg/logger"
	"go.uber.org/zap"
)

// ResolveProvider picks the directions backend once at startup: the first
// entry of the ordered provider list whose configuration is present wins and
// stays selected for the process lifetime. The result is injected into the
// leg planner rather than read from ambient state, so tests can substitute a
// double by construction.
func ResolveProvider(cfg config.RoutingConfig) (DirectionsProvider, error) {
	for _, name := range cfg.Providers {
		switch Provider(name) {
		case ProviderORS:
			if cfg.ORSAPIKey == "" {
				logger.Debug("skipping openrouteservice, no API key configured")
				continue
			}
			logger.Info("directions provider selected", zap.String("provider", name))
			return NewORSProvider(cfg.ORSBaseURL, cfg.ORSAPIKey, cfg.LegTimeout()), nil
		case ProviderOSRM:
			if cfg.OSRMBaseURL == "" {
				logger.Debug("skipping osrm, no base URL configured")
				continue
			}
			logger.Info("directions provider selected", zap.String("provider", name))
			return NewOSRMProvider(cfg.OSRMBaseURL, cfg.LegTimeout()), nil
		default:
			return nil, fmt.Errorf("unsupported directions provider: %s", name)
		}
	}

	return nil, fmt.Errorf("%w: no directions provider configured", ErrRoutingUnavailable)
}
