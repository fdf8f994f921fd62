package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/hdnotes/internal/auth/service"
	"github.com/aussiebroadwan/hdnotes/internal/auth/store"
	"github.com/aussiebroadwan/hdnotes/pkg/httpx"
	"github.com/aussiebroadwan/hdnotes/pkg/slogx"

	_ "github.com/aussiebroadwan/hdnotes/api/auth" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store        store.Store
	OTPService   *service.OTPService
	TokenService *service.TokenService
	UserService  *service.UserService
	NoteService  *service.NoteService
}

func NewRouter(buildVersion string, st store.Store, logger *slog.Logger) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerMe()
	r.registerNotes()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			HD Notes Authentication API
//	@version		0.1.0
//	@description	Passwordless sign in for HD Notes. A one-time code is mailed to the user and exchanged for a session token.
//	@description
//	@description				Session tokens are HS256 JWTs valid for seven days. Send them as "Authorization: Bearer {token}".
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/hdnotes
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Session token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) authn() httpx.Middleware {
	return httpx.AuthnMiddleware(sessionAuthenticator(r.TokenService), writeAuthnError)
}

func (r *Router) registerAuth() {
	otp := &OTPHandler{OTPService: r.OTPService}
	check := &CheckUserHandler{UserService: r.UserService}

	r.Mux.HandleFunc("POST /v1/auth/issue-otp", otp.HandleIssue)
	r.Mux.HandleFunc("POST /v1/auth/verify-otp", otp.HandleVerify)
	r.Mux.Handle("POST /v1/auth/check-user", check)
}

func (r *Router) registerMe() {
	h := &MeHandler{UserService: r.UserService}

	r.Mux.Handle("GET /v1/me", httpx.Chain(http.HandlerFunc(h.HandleGet), r.authn()))
	r.Mux.Handle("PATCH /v1/me", httpx.Chain(http.HandlerFunc(h.HandleRename), r.authn()))
	r.Mux.Handle("DELETE /v1/me", httpx.Chain(http.HandlerFunc(h.HandleDelete), r.authn()))
}

func (r *Router) registerNotes() {
	h := &NotesHandler{NoteService: r.NoteService}

	r.Mux.Handle("GET /v1/notes", httpx.Chain(http.HandlerFunc(h.HandleList), r.authn()))
	r.Mux.Handle("POST /v1/notes", httpx.Chain(http.HandlerFunc(h.HandleCreate), r.authn()))
	r.Mux.Handle("PUT /v1/notes/{id}", httpx.Chain(http.HandlerFunc(h.HandleUpdate), r.authn()))
	r.Mux.Handle("DELETE /v1/notes/{id}", httpx.Chain(http.HandlerFunc(h.HandleDelete), r.authn()))
}

func (r *Router) registerSystem() {
	h := &HealthHandler{StartTime: r.startTime, Version: r.buildVersion, Store: r.store}

	r.Mux.HandleFunc("GET /livez", h.HandleLivez)
	r.Mux.HandleFunc("GET /readyz", h.HandleReadyz)
}
