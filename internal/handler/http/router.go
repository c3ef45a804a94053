package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
)

func NewRouter(payrollHandler PayrollHandler) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "payroll-engine"),
		slog.String("version", "v1.0.0"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
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

	r.Route("/api/v1/payroll", func(r chi.Router) {
		r.Post("/calculate", payrollHandler.CalculatePayroll)

		r.Route("/runs", func(r chi.Router) {
			r.Get("/", payrollHandler.ListRunsByPeriod)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", payrollHandler.GetRun)
				r.Get("/line-items", payrollHandler.ListLineItemsByRun)
				r.Post("/finalize", payrollHandler.FinalizeRun)
			})
		})

		r.Route("/line-items/{id}", func(r chi.Router) {
			r.Get("/", payrollHandler.GetLineItem)
			r.Post("/override", payrollHandler.ApplyOverride)
		})

		r.Route("/employees/{employeeId}", func(r chi.Router) {
			r.Get("/line-items", payrollHandler.ListLineItemsByEmployee)
			r.Get("/ytd", payrollHandler.GetEmployeeYTD)
		})
	})

	return r
}
