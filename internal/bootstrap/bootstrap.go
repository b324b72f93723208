package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/go-hclog"

	analyticsinadapter "diagonator/internal/modules/analytics/adapter/in"
	analyticsoutadapter "diagonator/internal/modules/analytics/adapter/out"
	analyticsout "diagonator/internal/modules/analytics/port/out"
	analyticsservice "diagonator/internal/modules/analytics/service"
	analyticsusecase "diagonator/internal/modules/analytics/usecase"
	challengeoutadapter "diagonator/internal/modules/challenge/adapter/out"
	challengedomain "diagonator/internal/modules/challenge/domain"
	challengeservice "diagonator/internal/modules/challenge/service"
	challengeusecase "diagonator/internal/modules/challenge/usecase"
	sessioninadapter "diagonator/internal/modules/session/adapter/in"
	sessionoutadapter "diagonator/internal/modules/session/adapter/out"
	sessionout "diagonator/internal/modules/session/port/out"
	sessionservice "diagonator/internal/modules/session/service"
	sessionusecase "diagonator/internal/modules/session/usecase"
	"diagonator/internal/platform/clock"
	"diagonator/internal/platform/config"
	"diagonator/internal/platform/eventstore"
	"diagonator/internal/platform/logging"
	"diagonator/internal/platform/selector"
)

type App struct {
	SessionCLI    sessioninadapter.CLIHandler
	AnalyticsCLI  analyticsinadapter.CLIHandler
	AnalyticsHTTP http.Handler
	Logger        hclog.Logger
	Config        config.Config

	transport sessionout.Transport
	db        *sql.DB
}

// New wires every module from cfg. Log lines go to logOutput.
func New(ctx context.Context, cfg config.Config, logOutput io.Writer) (*App, error) {
	logger := logging.New(cfg.LogLevel, logOutput)
	clk := clock.SystemClock{}

	var db *sql.DB
	if cfg.AnalyticsEnabled() {
		var err error
		db, err = eventstore.Open(ctx, cfg.AnalyticsFile)
		if err != nil {
			return nil, fmt.Errorf("open analytics file: %w", err)
		}
	}

	var transport sessionout.Transport = sessionoutadapter.UnconfiguredTransport{}
	if cfg.ServerURL != "" {
		var err error
		transport, err = sessionoutadapter.NewTransport(cfg.ServerURL, logger)
		if err != nil {
			closeDB(db)
			return nil, err
		}
	}

	sel := newSelector(cfg)
	policy := challengedomain.Policy{
		Mode:        challengedomain.Mode(cfg.ChallengeMode),
		WakeHour:    cfg.WakeHour,
		BedtimeHour: cfg.BedtimeHour,
	}
	challengeSvc, err := challengeservice.NewChallengeService(clk, challengeoutadapter.NewSelectorAnswerSource(sel), policy)
	if err != nil {
		closeDB(db)
		return nil, fmt.Errorf("challenge policy: %w", err)
	}
	challengeUC := challengeusecase.NewInteractor(challengeSvc)

	events := sessionoutadapter.NewDisabledEventLog()
	var reader analyticsout.LogReader = analyticsoutadapter.UnavailableLogReader{}
	if db != nil {
		events = sessionoutadapter.NewSQLiteEventLog(db)
		reader = analyticsoutadapter.NewSQLiteLogReader(db)
	}

	sessionUC := sessionusecase.NewInteractor(
		sessionservice.NewCommandService(transport, cfg.RequestTimeout, logger),
		challengeUC,
		sessionoutadapter.NewSelectorPicker(sel),
		events,
		clk,
		logger,
	)
	analyticsUC := analyticsusecase.NewInteractor(analyticsservice.NewAnalyticsService(reader))
	if gin.Mode() == gin.DebugMode {
		gin.SetMode(gin.ReleaseMode)
	}

	return &App{
		SessionCLI:    sessioninadapter.NewCLIHandler(sessionUC),
		AnalyticsCLI:  analyticsinadapter.NewCLIHandler(analyticsUC),
		AnalyticsHTTP: analyticsinadapter.NewRouter(analyticsUC, logger),
		Logger:        logger,
		Config:        cfg,
		transport:     transport,
		db:            db,
	}, nil
}

func (a *App) Close() error {
	var errs []error
	if a.transport != nil {
		errs = append(errs, a.transport.Close())
	}
	if a.db != nil {
		errs = append(errs, a.db.Close())
	}
	return errors.Join(errs...)
}

// Serve runs the analytics web server on the configured address until ctx
// is cancelled.
func (a *App) Serve(ctx context.Context) error {
	return analyticsinadapter.Serve(ctx, a.Config.Listen, a.AnalyticsHTTP, a.Logger)
}

func newSelector(cfg config.Config) selector.Selector {
	if cfg.Selector == config.SelectorTUI {
		return selector.NewTUI()
	}
	if cfg.SelectorCommand != "" {
		return selector.NewCommandSelector(cfg.SelectorCommand)
	}
	return selector.NewDmenu()
}

func closeDB(db *sql.DB) {
	if db != nil {
		_ = db.Close()
	}
}
