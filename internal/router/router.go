package router

import (
	"net/http"

	"quiz-backend/internal/handlers"
	"quiz-backend/internal/middleware"
	"quiz-backend/internal/ratelimit"
	"quiz-backend/internal/services"
	"quiz-backend/internal/store"
)

// Limiters throttles the unauthenticated auth routes and quiz submission.
// Nil limiters disable throttling.
type Limiters struct {
	Auth   ratelimit.Limiter
	Submit ratelimit.Limiter
}

type Options struct {
	AllowedOrigins []string
	Limiters       Limiters
	// TrustProxy keys rate limits by X-Forwarded-For/X-Real-IP instead of
	// the connection address.
	TrustProxy bool
}

func NewRouter(st store.Store, tokens *services.TokenService, opts Options) http.Handler {
	authService := services.NewAuthService(st, tokens)
	quizService := services.NewQuizService(st)
	leaderboardService := services.NewLeaderboardService(st)

	authMiddleware := middleware.NewAuthMiddleware(tokens, authService)
	authLimit := middleware.RateLimit(opts.Limiters.Auth, middleware.ByClientIP(opts.TrustProxy))
	submitLimit := middleware.RateLimit(opts.Limiters.Submit, middleware.ByIdentity(opts.TrustProxy))

	authHandler := handlers.NewAuthHandler(authService)
	quizHandler := handlers.NewQuizHandler(quizService)
	leaderboardHandler := handlers.NewLeaderboardHandler(leaderboardService)
	adminHandler := handlers.NewAdminHandler(quizService)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	mux.Handle("POST /register", authLimit(http.HandlerFunc(authHandler.RegisterUser)))
	mux.Handle("POST /login", authLimit(http.HandlerFunc(authHandler.LoginUser)))
	mux.Handle("GET /me", authMiddleware.RequireAuth(http.HandlerFunc(authHandler.GetMe)))
	mux.Handle("GET /me/results", authMiddleware.RequireAuth(http.HandlerFunc(quizHandler.MyResults)))

	mux.HandleFunc("GET /categories", quizHandler.ListCategories)
	mux.Handle("GET /questions/{category_id}", authMiddleware.RequireAuth(http.HandlerFunc(quizHandler.GetQuestions)))
	mux.Handle("POST /submit-quiz", authMiddleware.RequireAuth(submitLimit(http.HandlerFunc(quizHandler.SubmitQuiz))))
	mux.HandleFunc("GET /leaderboard/{category_id}", leaderboardHandler.GetLeaderboard)

	mux.Handle("POST /admin/questions", authMiddleware.RequireAdmin(http.HandlerFunc(adminHandler.AddQuestion)))
	mux.Handle("POST /admin/categories", authMiddleware.RequireAdmin(http.HandlerFunc(adminHandler.AddCategory)))

	return middleware.WithLogging(middleware.CORS(opts.AllowedOrigins)(mux))
}
