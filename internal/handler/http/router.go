package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
)

func NewRouter(env string, pontoHandler PontoHandler, escalaHandler EscalaHandler, alunoHandler AlunoHandler) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "ponto-hcfisio"),
		slog.String("version", "v1.0.0"),
		slog.String("env", env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowCredentials: false,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/ponto", func(r chi.Router) {
			r.Get("/", pontoHandler.Dataset)
			r.Post("/refresh", pontoHandler.Refresh)
			r.Get("/dates", pontoHandler.Dates)
		})

		r.Route("/escalas", func(r chi.Router) {
			r.Get("/", escalaHandler.List)
			r.Get("/roster", escalaHandler.Roster)
		})

		r.Route("/alunos", func(r chi.Router) {
			r.Get("/", alunoHandler.List)

			r.Route("/{key}", func(r chi.Router) {
				r.Get("/", alunoHandler.Get)
				r.Get("/escalas", alunoHandler.Escalas)
				r.Get("/banco-horas", alunoHandler.HourBank)
				r.Get("/notas", alunoHandler.Grades)
				r.Get("/ausencias", alunoHandler.Absences)
			})
		})

		r.Get("/ausencias/recentes", alunoHandler.RecentAbsences)
	})
	return r
}
