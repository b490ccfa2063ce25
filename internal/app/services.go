package app

import (
	"gorm.io/gorm"

	"github.com/campushare/campushare-backend/internal/pkg/logger"
	"github.com/campushare/campushare-backend/internal/realtime"
	"github.com/campushare/campushare-backend/internal/realtime/bus"
	"github.com/campushare/campushare-backend/internal/services"
)

type Services struct {
	Identity   services.IdentityService
	Department services.DepartmentService
	Directory  services.DirectoryService
	Vote       services.VoteService
	Reputation services.ReputationService
	Moderation services.ModerationService
	Notifier   *services.Notifier

	SSEBus bus.Bus
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, repos Repos, sseHub *realtime.SSEHub, sseBus bus.Bus) Services {
	log.Info("Wiring services...")

	notifier := services.NewNotifier(sseHub, sseBus, log)

	identity := services.NewIdentityService(cfg.JWTSecretKey, log)
	department := services.NewDepartmentService(db, repos.Department, log)
	directory := services.NewDirectoryService(
		db,
		repos.Resource,
		repos.Course,
		repos.Comment,
		repos.Vote,
		department,
		notifier,
		cfg.GenEdPrefixes,
		log,
	)
	vote := services.NewVoteService(db, repos.Vote, notifier, log)
	reputation := services.NewReputationService(db, repos.Score, repos.Institution, cfg.ScoreWeights, log)
	moderation := services.NewModerationService(db, repos.Report, directory, notifier, log)

	return Services{
		Identity:   identity,
		Department: department,
		Directory:  directory,
		Vote:       vote,
		Reputation: reputation,
		Moderation: moderation,
		Notifier:   notifier,
		SSEBus:     sseBus,
	}
}
