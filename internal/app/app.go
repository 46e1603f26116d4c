package app

import (
	"net/http"

	"cardledger-go/internal/config"
	"cardledger-go/internal/db"
	accountdomain "cardledger-go/internal/domain/account"
	expensedomain "cardledger-go/internal/domain/expense"
	perioddomain "cardledger-go/internal/domain/period"
	accountrepo "cardledger-go/internal/repository/postgres/account"
	expenserepo "cardledger-go/internal/repository/postgres/expense"
	"cardledger-go/internal/transport/httpserver"
	"cardledger-go/internal/transport/httpserver/handler"
	"cardledger-go/internal/transport/httpserver/handler/accounts"
	"cardledger-go/internal/transport/httpserver/handler/common"
	"cardledger-go/internal/transport/httpserver/handler/expenses"
	"cardledger-go/internal/transport/httpserver/handler/periods"
	"cardledger-go/pkg/logger"
	"gorm.io/gorm"
)

type App struct {
	cfg        config.Config
	httpServer *http.Server
	db         *gorm.DB
}

func New(log logger.Logger) (*App, error) {
	log.Info("app: loading config")
	cfg, err := config.Load(log)
	if err != nil {
		return nil, err
	}

	log.Info("app: initializing database")
	dbConn, err := db.NewPostgres(cfg.DB, log)
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(dbConn); err != nil {
		return nil, err
	}

	accountRepo := accountrepo.NewPostgres(dbConn)
	expenseRepo := expenserepo.NewPostgres(dbConn)

	accountService := accountdomain.NewService(accountRepo)
	expenseService := expensedomain.NewService(expenseRepo)
	periodService := perioddomain.NewService(accountRepo, log)

	handlers := handler.New(
		common.New(log),
		accounts.New(accountService, log),
		expenses.New(accountService, expenseService, log),
		periods.New(periodService, log),
	)

	log.Info("app: initializing http server")
	router := httpserver.NewRouter(cfg, handlers)
	srv := httpserver.New(cfg, router)

	return &App{
		cfg:        cfg,
		httpServer: srv,
		db:         dbConn,
	}, nil
}

func (a *App) HTTPServer() *http.Server {
	return a.httpServer
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
