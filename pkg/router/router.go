package router

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lorekeeper-lab/backend/config"
	"github.com/lorekeeper-lab/backend/pkg/errorx"
	"github.com/lorekeeper-lab/backend/pkg/xcontext"
	"github.com/rs/cors"
	"golang.org/x/exp/slices"
)

type HandlerFunc[Request, Response any] func(ctx context.Context, req *Request) (*Response, error)

// MiddlewareFunc runs before the handler. It may return a derived context which is passed to the
// next middlewares and to the handler. Returning an error stops the request.
type MiddlewareFunc func(ctx context.Context) (context.Context, error)

// CloserFunc runs once the response has been written, whatever the outcome of the request. The
// request error, if any, is available through xcontext.Error.
type CloserFunc func(ctx context.Context)

type Router struct {
	ctx    context.Context
	engine *gin.Engine

	befores []MiddlewareFunc
	closers []CloserFunc
}

// New creates a router whose handlers receive the configs, logger, database and token engine
// attached to ctx.
func New(ctx context.Context) *Router {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	return &Router{ctx: ctx, engine: engine}
}

// Branch returns a router sharing the same endpoints table but with its own copy of the
// middlewares, so that a group of endpoints can add middlewares without affecting the others.
func (r *Router) Branch() *Router {
	return &Router{
		ctx:     r.ctx,
		engine:  r.engine,
		befores: slices.Clone(r.befores),
		closers: slices.Clone(r.closers),
	}
}

func (r *Router) Before(middleware MiddlewareFunc) {
	r.befores = append(r.befores, middleware)
}

func (r *Router) AddCloser(closer CloserFunc) {
	r.closers = append(r.closers, closer)
}

// Handle registers a plain http.Handler, which bypasses the middlewares and the envelope.
func (r *Router) Handle(method, pattern string, handler http.Handler) {
	r.engine.Handle(method, pattern, gin.WrapH(handler))
}

func (r *Router) Handler(cfg config.ServerConfigs) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	return c.Handler(r.engine)
}

func GET[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	route(r, http.MethodGet, pattern, handler)
}

func POST[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	route(r, http.MethodPost, pattern, handler)
}

func route[Request, Response any](
	r *Router,
	method, pattern string,
	handler HandlerFunc[Request, Response],
) {
	r.engine.Handle(method, pattern, func(c *gin.Context) {
		ctx := xcontext.Inherit(c.Request.Context(), r.ctx)
		ctx = xcontext.WithHTTPRequest(ctx, c.Request)

		ctx, resp, err := serve(ctx, c, r.befores, handler)
		if err != nil {
			writeError(c, err)
		} else {
			c.JSON(http.StatusOK, newResponse(resp))
		}

		ctx = xcontext.WithError(ctx, err)
		for _, closer := range r.closers {
			closer(ctx)
		}
	})
}

func serve[Request, Response any](
	ctx context.Context,
	c *gin.Context,
	befores []MiddlewareFunc,
	handler HandlerFunc[Request, Response],
) (context.Context, *Response, error) {
	var err error
	for _, before := range befores {
		ctx, err = before(ctx)
		if err != nil {
			return ctx, nil, err
		}
	}

	var req Request
	switch c.Request.Method {
	case http.MethodGet:
		err = c.ShouldBindQuery(&req)
	default:
		err = c.ShouldBindJSON(&req)
	}
	if err != nil {
		xcontext.Logger(ctx).Debugf("Cannot bind the request: %v", err)
		return ctx, nil, errorx.New(errorx.BadRequest, "Invalid request")
	}

	resp, err := handler(ctx, &req)
	return ctx, resp, err
}
