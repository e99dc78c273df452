package service

import (
	"github.com/SAMAymen/formix/internal/adapter"
	"github.com/SAMAymen/formix/internal/config"
	"github.com/SAMAymen/formix/internal/logger"
	"github.com/SAMAymen/formix/internal/store"
)

type Services struct {
	AuthService       AuthService
	FormService       FormService
	SubmissionService SubmissionService
	AccountService    AccountService
	AppInfoService    AppInfoService
}

// Adapters bundles the outbound integrations the services depend on.
type Adapters struct {
	Sheets   adapter.SheetsAdapter
	OAuth    adapter.OAuthAdapter
	Notifier adapter.Notifier
}

func NewServices(repos *store.Repositories, adapters Adapters, cfg *config.StructuredConfig, logger *logger.Logger) *Services {
	accountService := NewAccountService(repos.AccountRepository, adapters.OAuth, cfg.App, logger)

	return &Services{
		AuthService:       NewAuthService(repos.UserRepository, cfg.App, logger),
		FormService:       NewFormService(repos.FormRepository, cfg.App, logger),
		SubmissionService: NewSubmissionService(repos, accountService, adapters.Sheets, adapters.Notifier, logger),
		AccountService:    accountService,
		AppInfoService:    NewAppInfoService(cfg.App, logger),
	}
}
