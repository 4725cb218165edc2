package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/hivedesk/hivedesk/internal/workspace/service"
	"github.com/hivedesk/hivedesk/internal/workspace/store"
	"github.com/hivedesk/hivedesk/pkg/authx"
	"github.com/hivedesk/hivedesk/pkg/httpx"
	"github.com/hivedesk/hivedesk/pkg/slogx"

	_ "github.com/hivedesk/hivedesk/api/workspace" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     authx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store store.Store

	WorkspaceService  *service.WorkspaceService
	LifecycleService  *service.LifecycleService
	MembershipService *service.MembershipService
	InvitationService *service.InvitationService
}

func NewRouter(
	verifier authx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
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
	r.registerWorkspaces()
	r.registerMembers()
	r.registerInvitations()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			HiveDesk Workspace Service API
//	@version		0.1.0
//	@description	Multi-tenant workspace control plane: workspace lifecycle with archive grace periods,
//	@description	membership with per-user role caching, and tokenized invitations.
//	@description
//	@description				Authentication is delegated to the identity provider; this service verifies
//	@description				bearer access tokens and enforces workspace-level permissions on top.
//
//	@contact.name				HiveDesk Team
//	@contact.url				https://github.com/hivedesk/hivedesk
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
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerWorkspaces() {
	wsHandler := &WorkspacesHandler{WorkspaceService: r.WorkspaceService}
	lcHandler := &LifecycleHandler{LifecycleService: r.LifecycleService}

	// POST /v1/workspaces - moderate rate limit by user
	r.Mux.Handle("POST /v1/workspaces",
		httpx.Chain(http.HandlerFunc(wsHandler.HandleCreate),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyScope("workspaces"),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)

	// GET /v1/workspaces/{id} - lenient rate limit by user
	r.Mux.Handle("GET /v1/workspaces/{id}",
		httpx.Chain(http.HandlerFunc(wsHandler.HandleGet),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyScope("workspaces"),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)

	// PUT /v1/workspaces/{id}/rules - moderate rate limit by user
	r.Mux.Handle("PUT /v1/workspaces/{id}/rules",
		httpx.Chain(http.HandlerFunc(wsHandler.HandleUpdateRules),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyScope("workspaces"),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)

	// Lifecycle transitions are destructive or near-destructive: strict limit
	r.Mux.Handle("POST /v1/workspaces/{id}/archive",
		httpx.Chain(http.HandlerFunc(lcHandler.HandleArchive),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyScope("workspaces"),
			httpx.RateLimitByUser(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /v1/workspaces/{id}/restore",
		httpx.Chain(http.HandlerFunc(lcHandler.HandleRestore),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyScope("workspaces"),
			httpx.RateLimitByUser(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("DELETE /v1/workspaces/{id}",
		httpx.Chain(http.HandlerFunc(lcHandler.HandleDelete),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyScope("workspaces"),
			httpx.RateLimitByUser(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerMembers() {
	h := &MembersHandler{
		WorkspaceService:  r.WorkspaceService,
		MembershipService: r.MembershipService,
	}

	r.Mux.Handle("GET /v1/workspaces/{id}/members",
		httpx.Chain(http.HandlerFunc(h.HandleList),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyScope("workspaces"),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("POST /v1/workspaces/{id}/members",
		httpx.Chain(http.HandlerFunc(h.HandleAdd),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyScope("workspaces"),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("DELETE /v1/workspaces/{id}/members/{userID}",
		httpx.Chain(http.HandlerFunc(h.HandleRemove),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyScope("workspaces"),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("POST /v1/workspaces/{id}/transfer",
		httpx.Chain(http.HandlerFunc(h.HandleTransfer),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyScope("workspaces"),
			httpx.RateLimitByUser(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerInvitations() {
	h := &InvitationsHandler{InvitationService: r.InvitationService}

	r.Mux.Handle("POST /v1/workspaces/{id}/invitations",
		httpx.Chain(http.HandlerFunc(h.HandleCreate),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyScope("workspaces"),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("GET /v1/workspaces/{id}/invitations",
		httpx.Chain(http.HandlerFunc(h.HandleList),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyScope("workspaces"),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)

	// Token redemption is brute-forceable: strict limit by IP as well as user
	r.Mux.Handle("POST /v1/invitations/accept",
		httpx.Chain(http.HandlerFunc(h.HandleAccept),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyScope("workspaces"),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /v1/invitations/decline",
		httpx.Chain(http.HandlerFunc(h.HandleDecline),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyScope("workspaces"),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	r.Mux.Handle("DELETE /v1/invitations/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleCancel),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyScope("workspaces"),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("POST /v1/invitations/{id}/remind",
		httpx.Chain(http.HandlerFunc(h.HandleRemind),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyScope("workspaces"),
			httpx.RateLimitByUser(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /v1/invitations/{id}/extend",
		httpx.Chain(http.HandlerFunc(h.HandleExtend),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyScope("workspaces"),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store))
}
