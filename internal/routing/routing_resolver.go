package routing

import (
	"context"

	"go-shinsei/internal/directory"
	"go-shinsei/internal/domain"
	routingerrors "go-shinsei/internal/routing/errors"
	"go-shinsei/internal/settings"

	"go.uber.org/zap"
)

// RouteSource provides the current approval route snapshot.
type RouteSource interface {
	Routes(ctx context.Context) ([]settings.ApprovalRouteResponse, error)
}

// Resolver picks exactly one applicable route per (category, requester)
// pair: exact department match first, then the category default.
type Resolver interface {
	Resolve(ctx context.Context, category string, requester directory.UserResponse) (domain.RouteSteps, error)
}

type resolver struct {
	source RouteSource
	logger *zap.Logger
}

func NewResolver(source RouteSource, logger ...*zap.Logger) Resolver {
	l := zap.L().Named("routing.resolver")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("routing.resolver")
	}
	return &resolver{source: source, logger: l}
}

func (r *resolver) Resolve(ctx context.Context, category string, requester directory.UserResponse) (domain.RouteSteps, error) {
	routes, err := r.source.Routes(ctx)
	if err != nil {
		return nil, err
	}

	var fallback domain.RouteSteps
	for _, route := range routes {
		if route.Category != category {
			continue
		}
		if route.Department != nil {
			if *route.Department == requester.Department {
				return route.Steps, nil
			}
			continue
		}
		if fallback == nil {
			fallback = route.Steps
		}
	}

	if fallback != nil {
		return fallback, nil
	}

	r.logger.Error("no approval route configured",
		zap.String("category", category),
		zap.String("department", requester.Department),
	)
	return nil, routingerrors.ErrNoRouteConfigured
}
