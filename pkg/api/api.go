// Package api exposes the grocery repository over HTTP.
package api

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/gorilla/securecookie"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"groceries/pkg/grocery"
	"groceries/pkg/logger"
	gotel "groceries/pkg/otel"
)

const (
	notFoundBody     = "404 Not Found"
	itemNotFoundBody = "Grocery item not found"
	requestIDHeader  = "X-Request-ID"
)

// Config holds the HTTP layer settings.
type Config struct {
	// CookieSecret signs the demo signed cookie.
	CookieSecret string
}

// Handler serves the grocery API. All state lives in the injected repository.
type Handler struct {
	repo    grocery.Repository
	log     *logger.Logger
	tracer  trace.Tracer
	cookies *securecookie.SecureCookie
}

// New returns a Handler backed by repo.
func New(repo grocery.Repository, log *logger.Logger, tracer trace.Tracer, cfg Config) *Handler {
	sc := securecookie.New([]byte(cfg.CookieSecret), nil)
	sc.SetSerializer(securecookie.JSONEncoder{})
	return &Handler{repo: repo, log: log, tracer: tracer, cookies: sc}
}

// Router builds the full HTTP handler including middleware.
func (h *Handler) Router() http.Handler {
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(notFound)
	r.MethodNotAllowedHandler = http.HandlerFunc(notFound)
	r.Use(nameSpan)

	r.HandleFunc("/api/health", h.health).Methods(http.MethodGet)

	api := r.PathPrefix("/api/groceries").Subrouter()
	api.HandleFunc("", h.listGroceries).Methods(http.MethodGet)
	api.HandleFunc("", h.createGrocery).Methods(http.MethodPost)
	api.HandleFunc("/{id:[0-9]+}", h.getGrocery).Methods(http.MethodGet)
	api.HandleFunc("/{id:[0-9]+}", h.updateGrocery).Methods(http.MethodPut)
	api.HandleFunc("/{id:[0-9]+}", h.deleteGrocery).Methods(http.MethodDelete)

	r.HandleFunc("/api/cookies", h.readCookies).Methods(http.MethodGet)
	r.HandleFunc("/api/cookies/set", h.setCookies).Methods(http.MethodGet)
	r.HandleFunc("/api/cookies/clear", h.clearCookies).Methods(http.MethodGet)

	r.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	var out http.Handler = r
	out = handlers.CustomLoggingHandler(io.Discard, out, h.logRequest)
	out = h.traceMiddleware(out)
	out = requestID(out)
	out = handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type", requestIDHeader}),
	)(out)
	out = handlers.RecoveryHandler(handlers.RecoveryLogger(h.log), handlers.PrintRecoveryStack(true))(out)
	return out
}

// health reports that the service is up.
// @Summary Health check
// @Produce plain
// @Success 200 {string} string "Hello World!"
// @Router /api/health [get]
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	writeText(w, http.StatusOK, "Hello World!")
}

func notFound(w http.ResponseWriter, r *http.Request) {
	writeText(w, http.StatusNotFound, notFoundBody)
}

// traceMiddleware opens the request span around the whole router, so
// unmatched routes and the access log see it too.
func (h *Handler) traceMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))
		ctx = gotel.InjectTracing(ctx, h.tracer)

		ctx, span := gotel.AddSpan(ctx, r.Method,
			attribute.String("http.method", r.Method),
			attribute.String("http.target", r.URL.Path),
			attribute.String("request.id", r.Header.Get(requestIDHeader)),
		)
		defer span.End()

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// nameSpan renames the request span after the matched route template.
func nameSpan(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if route := mux.CurrentRoute(r); route != nil {
			if tpl, err := route.GetPathTemplate(); err == nil {
				trace.SpanFromContext(r.Context()).SetName(r.Method + " " + tpl)
			}
		}
		next.ServeHTTP(w, r)
	})
}

// requestID makes sure every request carries an X-Request-ID and echoes it.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
			r.Header.Set(requestIDHeader, id)
		}
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) logRequest(_ io.Writer, p handlers.LogFormatterParams) {
	h.log.Info(p.Request.Context(), "request",
		"method", p.Request.Method,
		"path", p.URL.Path,
		"status", p.StatusCode,
		"size", p.Size,
		"request_id", p.Request.Header.Get(requestIDHeader),
	)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeText(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(code)
	_, _ = io.WriteString(w, msg)
}
