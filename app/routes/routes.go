package routes

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"lotrblog/app/config"
	"lotrblog/app/controllers"
	"lotrblog/app/logger"
	"lotrblog/app/middleware"
	"lotrblog/app/repositories"
	"lotrblog/app/services"
)

const welcomeHTML = `<h2>LOTR Blog Post</h2><p>Welcome to the Lord of the Rings web log API</p>`

// Setup builds the application's handler: the welcome page, the posts API
// under /api/posts and the global middleware chain.
func Setup(store repositories.Store, cfg config.Server, log *logger.Logger) http.Handler {
	router := mux.NewRouter()
	router.NotFoundHandler = http.HandlerFunc(notFound)
	router.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowed)

	router.HandleFunc("/", welcome).Methods(http.MethodGet)

	postController := controllers.NewPostController(services.NewPostService(store))
	commentController := controllers.NewCommentController(services.NewCommentService(store))

	// API routes sit on the root router so a method mismatch reaches
	// MethodNotAllowedHandler.
	postController.RegisterRoutes(router)
	commentController.RegisterRoutes(router)

	// Unmatched requests go through the chain too.
	var handler http.Handler = router
	handler = middleware.ContentTypeJSON(handler)
	handler = middleware.Timeout(cfg.RequestTimeout)(handler)
	handler = middleware.CORS(cfg.CORSOrigins)(handler)
	handler = middleware.Logger(handler)
	handler = middleware.Recoverer(handler)
	handler = middleware.TraceID(log)(handler)

	return handler
}

func welcome(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(welcomeHTML))
}

func notFound(w http.ResponseWriter, r *http.Request) {
	if !strings.HasPrefix(r.URL.Path, "/api") {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	w.Write([]byte(`{"error":"Not found"}` + "\n"))
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusMethodNotAllowed)
	w.Write([]byte(`{"error":"Method not allowed"}` + "\n"))
}
