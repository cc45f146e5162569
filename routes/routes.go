package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/glucheck/backend/config"
	"github.com/glucheck/backend/controllers"
	"github.com/glucheck/backend/middleware"
)

// Controllers bundles the handlers the router wires up.
type Controllers struct {
	Auth      *controllers.AuthController
	User      *controllers.UserController
	Predict   *controllers.PredictController
	History   *controllers.HistoryController
	Stats     *controllers.StatsController
	Recommend *controllers.RecommendController
}

// SetupRouter wires the public auth routes and the JWT-protected pipeline
// routes.
func SetupRouter(cfg *config.Config, c Controllers) *chi.Mux {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://127.0.0.1:5173"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message": "Diabetes Risk API"}`))
	})

	// Public
	r.Post("/auth/register", c.Auth.Register)
	r.Post("/auth/login", c.Auth.Login)

	// JWT protected
	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate([]byte(cfg.JWTSecretKey)))

		r.Get("/user/me", c.User.Me)
		r.Put("/user/me", c.User.UpdateMe)

		r.Post("/predict", c.Predict.Create)
		r.Get("/predict/latest", c.Predict.Latest)

		r.Get("/history", c.History.List)
		r.Get("/history/{prediction_id}", c.History.Get)

		r.Get("/recommend/food", c.Recommend.Food)

		r.Get("/summary", c.Stats.Summary)
		r.Get("/dashboard", c.Stats.Dashboard)
	})

	return r
}
