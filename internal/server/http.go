package server

import (
	"context"
	nethttp "net/http"

	"go-linktrack/internal/conf"
	"go-linktrack/internal/service"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/middleware/logging"
	"github.com/go-kratos/kratos/v2/middleware/recovery"
	"github.com/go-kratos/kratos/v2/transport/http"
)

const (
	operationTrackClick = "/linktrack.v1.Clicks/TrackClick"
	operationStats      = "/linktrack.v1.Clicks/Stats"
)

// NewHTTPServer new an HTTP server.
func NewHTTPServer(c *conf.Server, clicks *service.ClickService, logger log.Logger) *http.Server {
	var opts = []http.ServerOption{
		http.Middleware(
			recovery.Recovery(),
			logging.Server(logger),
		),
	}
	if c != nil && c.Http != nil {
		if c.Http.Network != "" {
			opts = append(opts, http.Network(c.Http.Network))
		}
		if c.Http.Addr != "" {
			opts = append(opts, http.Address(c.Http.Addr))
		}
		if timeout := c.Http.TimeoutDuration(); timeout > 0 {
			opts = append(opts, http.Timeout(timeout))
		}
	}
	srv := http.NewServer(opts...)

	r := srv.Route("/v1")
	r.POST("/clicks", trackClickHandler(clicks))
	r.GET("/stats", statsHandler(clicks))

	srv.HandleFunc("/healthz", func(w nethttp.ResponseWriter, _ *nethttp.Request) {
		w.WriteHeader(nethttp.StatusOK)
	})

	return srv
}

func trackClickHandler(clicks *service.ClickService) http.HandlerFunc {
	return func(ctx http.Context) error {
		var in service.ClickRequest
		if err := ctx.Bind(&in); err != nil {
			return err
		}
		http.SetOperation(ctx, operationTrackClick)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return clicks.TrackClick(ctx, req.(*service.ClickRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		return ctx.Result(nethttp.StatusOK, out)
	}
}

func statsHandler(clicks *service.ClickService) http.HandlerFunc {
	return func(ctx http.Context) error {
		http.SetOperation(ctx, operationStats)
		h := ctx.Middleware(func(ctx context.Context, _ interface{}) (interface{}, error) {
			return clicks.Stats(ctx)
		})
		out, err := h(ctx, nil)
		if err != nil {
			return err
		}
		return ctx.Result(nethttp.StatusOK, out)
	}
}
