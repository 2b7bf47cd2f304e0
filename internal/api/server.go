package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/stakewarden-io/nft-staking-engine/internal/config"
	"github.com/stakewarden-io/nft-staking-engine/internal/observability/tracing"
	"github.com/stakewarden-io/nft-staking-engine/internal/services"
)

// Server exposes the staking operations over HTTP.
type Server struct {
	cfg     *config.ApiConfig
	service *services.Service
	httpSrv *http.Server
}

func NewServer(cfg *config.ApiConfig, service *services.Service) *Server {
	s := &Server{cfg: cfg, service: service}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(traceMiddleware)

	r.Get("/healthcheck", s.handleHealthCheck)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/stake", s.handleStake)
		r.Post("/unstake", s.handleUnstake)
		r.Post("/withdraw", s.handleWithdraw)
		r.Post("/claim", s.handleClaim)

		r.Get("/ledger", s.handleGetLedger)
		r.Get("/accounts/{staker}", s.handleGetAccount)

		r.Route("/admin", func(r chi.Router) {
			r.Post("/reward-rate", s.handleSetRewardRate)
			r.Post("/claim-delay", s.handleSetClaimDelay)
			r.Post("/withdrawal-cooldown", s.handleSetWithdrawalCooldown)
			r.Post("/collections", s.handleSetCollectionAllowed)
			r.Post("/pause", s.handlePause)
			r.Post("/unpause", s.handleUnpause)
		})
	})

	s.httpSrv = &http.Server{
		Addr:         cfg.Address(),
		Handler:      r,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
	return s
}

func (s *Server) Handler() http.Handler {
	return s.httpSrv.Handler
}

func (s *Server) Start() error {
	log.Info().Msgf("Starting API server on %s", s.cfg.Address())
	if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpSrv.Shutdown(ctx)
}

func traceMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := tracing.InjectTraceID(r.Context())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
