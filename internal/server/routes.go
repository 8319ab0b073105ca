package http

import "net/http"

func (s *Server) routes() {
	s.mux.HandleFunc("GET /{$}", s.handleRoot)
	s.mux.HandleFunc("GET /task", s.handleTask)
	s.mux.HandleFunc("GET /top-posts", s.handleTopPosts)
	s.mux.HandleFunc("POST /create-and-fetch", s.handleCreateAndFetch)

	s.mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, s.api.Health())
	})
}
