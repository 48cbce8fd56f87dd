package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/splitmint/splitmint/docs"
	"github.com/splitmint/splitmint/internal/auth"
	"github.com/splitmint/splitmint/internal/balance"
	"github.com/splitmint/splitmint/internal/config"
	"github.com/splitmint/splitmint/internal/database"
	"github.com/splitmint/splitmint/internal/expense"
	expensesplit "github.com/splitmint/splitmint/internal/expense/split"
	"github.com/splitmint/splitmint/internal/group"
	"github.com/splitmint/splitmint/internal/participant"
	"github.com/splitmint/splitmint/internal/user"
	"github.com/splitmint/splitmint/pkg/logging"
	mw "github.com/splitmint/splitmint/pkg/middleware"
)

// @title           SplitMint API
// @version         1.0
// @description     Expense splitting service with exact-sum allocation, balances and settlement plans.
// @BasePath        /api/v1
func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	cfg := config.Load()
	logging.Setup(logging.ParseLevel(cfg.LogLevel))

	db, err := database.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	slog.Info("Connected to database")

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	splitFactory := expensesplit.NewFactory()

	// User + auth
	userRepo := user.NewRepository(db)
	userService := user.NewService(userRepo)
	userHandler := user.NewHandler(userService)

	authService := auth.NewService(userRepo, jwtManager)
	authHandler := auth.NewHandler(authService)

	// Group feature
	groupRepo := group.NewRepository(db)
	groupService := group.NewService(groupRepo)
	groupHandler := group.NewHandler(groupService)

	// Participant feature
	participantRepo := participant.NewRepository(db)
	participantService := participant.NewService(participantRepo, groupService)
	participantHandler := participant.NewHandler(participantService)

	// Expense feature (with split factory injected)
	expenseRepo := expense.NewRepository(db)
	expenseService := expense.NewService(expenseRepo, participantRepo, groupService, splitFactory)
	expenseHandler := expense.NewHandler(expenseService)

	// Balance feature
	balanceRepo := balance.NewRepository(db)
	balanceService := balance.NewService(balanceRepo, groupService)
	balanceHandler := balance.NewHandler(balanceService)

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(mw.Metrics)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.Handler())

	// API routes
	requireAuth := mw.RequireAuth(jwtManager)
	r.Route("/api/v1", func(r chi.Router) {
		r.Mount("/auth", authHandler.Routes(requireAuth))

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)

			r.Mount("/users", userHandler.Routes())
			r.Mount("/expenses", expenseHandler.Routes())

			r.Route("/groups", func(r chi.Router) {
				groupHandler.RegisterCollection(r)

				r.Route("/{groupID}", func(r chi.Router) {
					groupHandler.RegisterItem(r)
					balanceHandler.Register(r)
					r.Mount("/participants", participantHandler.Routes())
					r.Mount("/expenses", expenseHandler.GroupRoutes())
				})
			})
		})
	})

	slog.Info("Server starting", "port", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
