package api

import (
	"html/template"
	"net/http"

	h "callagent/internal/api/handlers"
	"callagent/internal/conversation"
	"callagent/internal/export"
	"callagent/internal/middleware"
	"callagent/internal/web"

	"github.com/gorilla/websocket"
)

// Dependencies are the services the routes are wired to.
type Dependencies struct {
	Initiator h.CallInitiator
	Generator h.PromptGenerator
	Store     conversation.Store
	Exporter  *export.Exporter
	Templates *template.Template
}

func NewRouter(deps Dependencies, upgrader websocket.Upgrader) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /up", h.HealthCheck)
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(web.Static())))

	// Calls
	mux.Handle("GET /{$}", h.HandleHome(deps.Templates))
	mux.Handle("POST /make_call", h.HandleMakeCall(deps.Initiator))
	mux.Handle("POST /webhook", h.HandleWebhook(deps.Store, deps.Exporter))
	mux.Handle("GET /conversation/{call_id}", h.HandleGetConversation(deps.Store))

	// Transcript exports
	mux.Handle("GET /files", h.HandleListFiles(deps.Exporter, deps.Templates))
	mux.Handle("GET /download/{filename}", h.HandleDownload(deps.Exporter))

	// Prompt generator
	mux.Handle("GET /prompt_generator", h.HandlePromptGeneratorPage(deps.Templates))
	mux.Handle("POST /generate", h.HandleGenerate(deps.Generator))
	mux.Handle("GET /generate/ws", h.HandleGenerateStream(deps.Generator, upgrader))

	var handler http.Handler = mux
	handler = middleware.Logging(handler)

	return handler
}
