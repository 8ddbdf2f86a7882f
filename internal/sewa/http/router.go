package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/mysewa/sewa/internal/sewa/domain"
	"github.com/mysewa/sewa/internal/sewa/service"
	"github.com/mysewa/sewa/internal/sewa/store"
	"github.com/mysewa/sewa/pkg/httpx"
	"github.com/mysewa/sewa/pkg/jwtx"
	"github.com/mysewa/sewa/pkg/metrics"
	"github.com/mysewa/sewa/pkg/slogx"

	_ "github.com/mysewa/sewa/api/sewa" // Swagger docs
	"github.com/prometheus/client_golang/prometheus/promhttp"
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

	// Cookie carries the session token for browser clients.
	Cookie httpx.SessionCookie
	Limits httpx.RateLimits

	// ExposeMetrics mounts the Prometheus handler at /metrics.
	ExposeMetrics bool

	SessionService    *service.SessionService
	PinService        *service.PinService
	InvitationService *service.InvitationService
	LeaseService      *service.LeaseService
	PropertyService   *service.PropertyService
}

func NewRouter(st store.Store, buildVersion string, logger *slog.Logger) *Router {
	r := &Router{
		Mux:           http.NewServeMux(),
		buildVersion:  buildVersion,
		startTime:     time.Now(),
		store:         st,
		logger:        logger,
		Cookie:        httpx.SessionCookie{Name: "sewa_session", Secure: true},
		Limits:        httpx.DefaultRateLimits(),
		ExposeMetrics: true,
	}

	// metrics.HTTPMiddleware must stay last so it wraps the mux directly.
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		metrics.HTTPMiddleware,
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerProperties()
	r.registerInvitations()
	r.registerLeases()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			MySewa API
//	@version		0.1.0
//	@description	Passwordless PIN login for landlords and tenants, tenant invitations and leases.
//	@description
//	@description				Sessions are HS256 JWTs, sent as the sewa_session cookie or a Bearer header.
//
//	@contact.name				MySewa Team
//	@contact.url				https://github.com/mysewa/sewa
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
	return httpx.Authn(r.SessionService, r.Cookie.Name)
}

// requireRole guards a route with service.Authorize.
func requireRole(allowed ...domain.Role) httpx.Middleware {
	return httpx.Authorize(func(claims jwtx.Claims) error {
		return service.Authorize(claims, allowed...)
	})
}

func (r *Router) registerAuth() {
	h := &AuthHandler{
		PinService:     r.PinService,
		SessionService: r.SessionService,
		Cookie:         r.Cookie,
	}

	// PIN issue and verification share the strict limit: both are brute
	// force or mail-bombing targets.
	r.Mux.Handle("POST /v1/auth/pin/request",
		httpx.Chain(http.HandlerFunc(h.HandleRequestPin),
			httpx.RateLimitByIP(r.Limits.Strict),
		),
	)
	r.Mux.Handle("POST /v1/auth/pin/verify",
		httpx.Chain(http.HandlerFunc(h.HandleVerifyPin),
			httpx.RateLimitByIP(r.Limits.Strict),
		),
	)

	r.Mux.Handle("POST /v1/auth/logout",
		httpx.Chain(http.HandlerFunc(h.HandleLogout),
			r.authn(),
			httpx.RateLimitByAccount(r.Limits.Route),
		),
	)
	r.Mux.Handle("GET /v1/auth/me",
		httpx.Chain(http.HandlerFunc(h.HandleMe),
			r.authn(),
			httpx.RateLimitByAccount(r.Limits.Route),
		),
	)
}

func (r *Router) registerProperties() {
	h := &PropertyHandler{PropertyService: r.PropertyService}

	r.Mux.Handle("POST /v1/properties",
		httpx.Chain(http.HandlerFunc(h.HandleRegister),
			r.authn(),
			requireRole(domain.RoleLandlord),
			httpx.RateLimitByAccount(r.Limits.Route),
		),
	)
}

func (r *Router) registerInvitations() {
	h := &InvitationHandler{InvitationService: r.InvitationService}

	landlordOnly := func(fn http.HandlerFunc) http.Handler {
		return httpx.Chain(fn,
			r.authn(),
			requireRole(domain.RoleLandlord),
			httpx.RateLimitByAccount(r.Limits.Route),
		)
	}

	r.Mux.Handle("POST /v1/invitations", landlordOnly(h.HandleCreate))
	r.Mux.Handle("GET /v1/invitations", landlordOnly(h.HandleList))
	r.Mux.Handle("DELETE /v1/invitations/{id}", landlordOnly(h.HandleCancel))
	r.Mux.Handle("POST /v1/invitations/{id}/resend", landlordOnly(h.HandleResend))

	// Link endpoints are public; the token is the credential.
	r.Mux.Handle("GET /v1/invitations/{token}",
		httpx.Chain(http.HandlerFunc(h.HandleGet),
			httpx.RateLimitByIP(r.Limits.Route),
		),
	)
	r.Mux.Handle("POST /v1/invitations/{token}/accept",
		httpx.Chain(http.HandlerFunc(h.HandleAccept),
			httpx.RateLimitByIP(r.Limits.Strict),
		),
	)
}

func (r *Router) registerLeases() {
	h := &LeaseHandler{LeaseService: r.LeaseService}

	r.Mux.Handle("POST /v1/leases",
		httpx.Chain(http.HandlerFunc(h.HandleAssign),
			r.authn(),
			requireRole(domain.RoleLandlord),
			httpx.RateLimitByAccount(r.Limits.Route),
		),
	)
	r.Mux.Handle("GET /v1/leases",
		httpx.Chain(http.HandlerFunc(h.HandleList),
			r.authn(),
			requireRole(domain.RoleLandlord, domain.RoleTenant),
			httpx.RateLimitByAccount(r.Limits.Route),
		),
	)
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(r.Limits.Public),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(r.Limits.Public),
		),
	)
	if r.ExposeMetrics {
		r.Mux.Handle("GET /metrics", promhttp.Handler())
	}
}
