package api

import (
	"encoding/json"
	"net/http"

	_ "github.com/driftwell/moodstream/docs"
	"github.com/driftwell/moodstream/internal/api/handler"
	"github.com/driftwell/moodstream/internal/api/middleware"
	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
)

type Router struct {
	slotHandler    *handler.SlotHandler
	scoreHandler   *handler.ScoreHandler
	sampleHandler  *handler.SampleHandler
	segmentHandler *handler.SegmentHandler
	logger         *zap.Logger
}

func NewRouter(
	slotHandler *handler.SlotHandler,
	scoreHandler *handler.ScoreHandler,
	sampleHandler *handler.SampleHandler,
	segmentHandler *handler.SegmentHandler,
	logger *zap.Logger,
) *Router {
	return &Router{
		slotHandler:    slotHandler,
		scoreHandler:   scoreHandler,
		sampleHandler:  sampleHandler,
		segmentHandler: segmentHandler,
		logger:         logger,
	}
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Recovery(rt.logger))
	r.Use(middleware.Logger(rt.logger))
	r.Use(middleware.Tracing)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("list"),
		httpSwagger.DomID("swagger-ui"),
	))

	// API v1 routes
	r.Route("/v1", func(r chi.Router) {
		// Daily slot timeline
		r.Route("/daily-preprocessed", func(r chi.Router) {
			r.Get("/", rt.slotHandler.List)
			r.Post("/", rt.slotHandler.Ensure)
			r.Put("/{slotIndex}", rt.slotHandler.Upsert)
		})

		// Scores and live metrics
		r.Get("/sleep-score", rt.scoreHandler.GetSleepScore)
		r.Get("/metrics/current", rt.scoreHandler.GetCurrentMetrics)

		// Sample history (nested under users)
		r.Route("/users/{userId}/samples", func(r chi.Router) {
			r.Get("/", rt.sampleHandler.List)
		})

		// Mood segment queue
		r.Route("/mood-segments", func(r chi.Router) {
			r.Get("/", rt.segmentHandler.List)
			r.Post("/regenerate", rt.segmentHandler.Regenerate)
		})
	})

	return r
}
