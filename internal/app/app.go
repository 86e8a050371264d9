package app

import (
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/riskibarqy/fantasy-hoops/internal/config"
	"github.com/riskibarqy/fantasy-hoops/internal/infrastructure/account/introspect"
	"github.com/riskibarqy/fantasy-hoops/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/fantasy-hoops/internal/interfaces/httpapi"
	idgen "github.com/riskibarqy/fantasy-hoops/internal/platform/id"
	"github.com/riskibarqy/fantasy-hoops/internal/platform/logging"
	"github.com/riskibarqy/fantasy-hoops/internal/usecase"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	semconv "go.opentelemetry.io/otel/semconv/v1.12.0"
)

// NewHTTPServer wires repositories, services, and the HTTP router. The
// returned cleanup closes the database pool.
func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, func() error, error) {
	if logger == nil {
		logger = logging.Default()
	}

	db, err := openDatabase(cfg.DBURL)
	if err != nil {
		return nil, nil, err
	}

	txManager := postgres.NewTxManager(db)
	userRepo := postgres.NewUserRepository(db)
	teamRepo := postgres.NewTeamRepository(db)
	playerRepo := postgres.NewPlayerRepository(db)
	rosterRepo := postgres.NewRosterRepository(db)
	statsRepo := postgres.NewStatsRepository(db)
	scoreRepo := postgres.NewScoringRepository(db)
	bonusRepo := postgres.NewBonusRepository(db)
	movesRepo := postgres.NewMovesRepository(db)
	lineupRepo := postgres.NewLineupRepository(db)
	auditRepo := postgres.NewAuditRepository(db)

	ids := idgen.NewRandomGenerator()

	scoringSvc := usecase.NewScoringService(statsRepo, rosterRepo, scoreRepo, txManager, logger)
	bonusSvc := usecase.NewBonusService(statsRepo, rosterRepo, bonusRepo, txManager, logger)
	rosterSvc := usecase.NewRosterService(teamRepo, playerRepo, rosterRepo, movesRepo, lineupRepo, auditRepo, txManager, ids, logger)
	adminSvc := usecase.NewAdminService(userRepo, teamRepo, playerRepo, rosterRepo, movesRepo, lineupRepo, scoreRepo, auditRepo, scoringSvc, txManager, ids, logger)

	accountClient := introspect.NewClient(
		&http.Client{Timeout: cfg.AccountTimeout},
		cfg.AccountBaseURL,
		cfg.AccountIntrospectPath,
		cfg.AccountTimeout,
		logger,
	)

	handler := httpapi.NewHandler(scoringSvc, bonusSvc, rosterSvc, adminSvc, logger)
	router := httpapi.NewRouter(handler, accountClient, logger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		_ = db.Close()
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, db.Close, nil
}

func openDatabase(dbURL string) (*sqlx.DB, error) {
	opts := []otelsql.Option{
		otelsql.WithAttributes(semconv.DBSystemPostgreSQL),
	}
	if name := dbNameFromURL(dbURL); name != "" {
		opts = append(opts, otelsql.WithDBName(name))
	}

	db, err := otelsqlx.Open("postgres", dbURL, opts...)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	return db, nil
}
