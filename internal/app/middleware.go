package app

import (
	"github.com/campushare/campushare-backend/internal/middleware"
	"github.com/campushare/campushare-backend/internal/pkg/logger"
)

type Middleware struct {
	Auth      *middleware.AuthMiddleware
	Moderator *middleware.ModeratorMiddleware
}

func wireMiddleware(log *logger.Logger, cfg Config, svcs Services) Middleware {
	return Middleware{
		Auth:      middleware.NewAuthMiddleware(log, svcs.Identity),
		Moderator: middleware.NewModeratorMiddleware(log, cfg.ModeratorKeyHash),
	}
}
