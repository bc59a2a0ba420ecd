// Package httpapi exposes the photoshare HTTP surface: authentication,
// uploads, comments, and the aggregated photo listing.
package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"photoshare/internal/service"
)

// Server routes HTTP requests to the application services.
type Server struct {
	log    *zap.Logger
	auth   service.AuthService
	photos service.PhotoService

	// imageDir, when non-empty, is served statically under /images/.
	imageDir string

	router *mux.Router
}

// New constructs the HTTP server and registers all routes.
func New(log *zap.Logger, auth service.AuthService, photos service.PhotoService, imageDir string) *Server {
	s := &Server{log: log, auth: auth, photos: photos, imageDir: imageDir}

	r := mux.NewRouter()
	r.Use(s.recovery, s.logging, s.authGate)

	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)

	r.HandleFunc("/admin/login", s.handleLogin).Methods(http.MethodPost)
	r.HandleFunc("/admin/logout", s.handleLogout).Methods(http.MethodPost)
	r.HandleFunc("/user", s.handleRegister).Methods(http.MethodPost)

	r.HandleFunc("/user/list", s.handleUserList).Methods(http.MethodGet)
	r.HandleFunc("/user/{id}", s.handleUserDetail).Methods(http.MethodGet)
	r.HandleFunc("/photosOfUser/{id}", s.handlePhotosOfUser).Methods(http.MethodGet)
	r.HandleFunc("/photos/new", s.handleUpload).Methods(http.MethodPost)
	r.HandleFunc("/commentsOfPhoto/{photo_id}", s.handleAddComment).Methods(http.MethodPost)

	if imageDir != "" {
		r.PathPrefix("/images/").Handler(
			http.StripPrefix("/images/", http.FileServer(http.Dir(imageDir))))
	}

	s.router = r
	return s
}

// Handler returns the root handler for http.Server.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy", "service": "photoshare"})
}
