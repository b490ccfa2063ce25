package app

import (
	"github.com/campushare/campushare-backend/internal/http/handlers"
	"github.com/campushare/campushare-backend/internal/pkg/logger"
	"github.com/campushare/campushare-backend/internal/realtime"
)

type Handlers struct {
	Department  *handlers.DepartmentHandler
	Resource    *handlers.ResourceHandler
	Comment     *handlers.CommentHandler
	Vote        *handlers.VoteHandler
	Leaderboard *handlers.LeaderboardHandler
	Report      *handlers.ReportHandler
	Realtime    *handlers.RealtimeHandler
}

func wireHandlers(log *logger.Logger, svcs Services, sseHub *realtime.SSEHub) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Department:  handlers.NewDepartmentHandler(log, svcs.Department),
		Resource:    handlers.NewResourceHandler(log, svcs.Directory),
		Comment:     handlers.NewCommentHandler(log, svcs.Directory),
		Vote:        handlers.NewVoteHandler(log, svcs.Vote),
		Leaderboard: handlers.NewLeaderboardHandler(log, svcs.Reputation),
		Report:      handlers.NewReportHandler(log, svcs.Moderation),
		Realtime:    handlers.NewRealtimeHandler(log, sseHub),
	}
}
