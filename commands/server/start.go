package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iov-one/custody/errors"
	"github.com/julienschmidt/httprouter"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tendermint/tendermint/abci/server"
	abci "github.com/tendermint/tendermint/abci/types"
	cmn "github.com/tendermint/tendermint/libs/common"
	"github.com/tendermint/tendermint/libs/log"
)

// AppGenerator lets us lazily initialize app, using home dir
// and logger potentially initialized with other flags. Collectors of the
// application are registered with the given registerer.
type AppGenerator func(home string, logger log.Logger, debug bool, metrics prometheus.Registerer) (abci.Application, error)

// StartCmd initializes the application and serves it over the ABCI socket
// until the process receives an interrupt or terminate signal.
func StartCmd(gen AppGenerator, logger log.Logger, home string, args []string) error {
	cfg, err := LoadConfig(home, args)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(home, 0700); err != nil {
		return errors.Wrap(err, "cannot create home directory")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(prometheus.NewGoCollector())

	// Generate the app in the proper dir
	app, err := gen(home, logger, cfg.Debug, registry)
	if err != nil {
		return err
	}

	node, err := NewNode(cfg, app, registry, logger)
	if err != nil {
		return err
	}
	if err := node.Start(); err != nil {
		return err
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	s := <-sig
	logger.Info("Shutting down", "signal", s.String())
	return node.Stop()
}

// Node runs the ABCI server and the metrics server of one application.
type Node struct {
	logger  log.Logger
	abci    cmn.Service
	metrics *http.Server
}

// NewNode prepares the servers described by the configuration. Nothing is
// listening until Start is called.
func NewNode(cfg Config, app abci.Application, gatherer prometheus.Gatherer, logger log.Logger) (*Node, error) {
	svr, err := server.NewServer(cfg.Bind, "socket", app)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "cannot create listener: %s", err)
	}
	svr.SetLogger(logger.With("module", "abci-server"))

	n := &Node{logger: logger, abci: svr}
	if cfg.Metrics != "" {
		n.metrics = &http.Server{
			Addr:    cfg.Metrics,
			Handler: NewMetricsRouter(gatherer, logger),
		}
	}
	return n, nil
}

// Start begins listening. The metrics server runs in the background and
// its failure is only logged.
func (n *Node) Start() error {
	n.logger.Info("Starting ABCI app", "bind", n.abci.String())
	if err := n.abci.Start(); err != nil {
		return errors.Wrap(err, "cannot start abci server")
	}
	if n.metrics != nil {
		n.logger.Info("Starting metrics server", "addr", n.metrics.Addr)
		go func() {
			if err := n.metrics.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				n.logger.Error("metrics server failed", "err", err)
			}
		}()
	}
	return nil
}

// Stop shuts down both servers.
func (n *Node) Stop() error {
	var errs error
	if n.metrics != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := n.metrics.Shutdown(ctx); err != nil {
			errs = errors.Append(errs, errors.Wrap(err, "metrics server shutdown"))
		}
	}
	if err := n.abci.Stop(); err != nil {
		errs = errors.Append(errs, errors.Wrap(err, "abci server shutdown"))
	}
	return errs
}

// NewMetricsRouter serves the collected metrics under /metrics and a
// liveness probe under /healthcheck.
func NewMetricsRouter(gatherer prometheus.Gatherer, logger log.Logger) http.Handler {
	router := httprouter.New()
	metrics := promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{
		ErrorLog: promLogger{logger},
	})
	router.Handler(http.MethodGet, "/metrics", metrics)
	router.GET("/healthcheck", healthCheck)
	return router
}

func healthCheck(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprint(w, "OK")
}

// promLogger adapts the tendermint logger to the promhttp error log.
type promLogger struct {
	log.Logger
}

func (l promLogger) Println(v ...interface{}) {
	l.Error(fmt.Sprint(v...))
}
