// Copyright 2020 The Bankfeed Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"crypto/tls"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-kit/kit/log"
	"github.com/moov-io/base/admin"
	"github.com/moov-io/base/http/bind"

	"github.com/bankfeed-io/bankfeed"
	appcfg "github.com/bankfeed-io/bankfeed/internal/config"
	"github.com/bankfeed-io/bankfeed/internal/feed"
	"github.com/bankfeed-io/bankfeed/internal/gocardless"
	"github.com/bankfeed-io/bankfeed/internal/route"
	"github.com/bankfeed-io/bankfeed/internal/trace"
	"github.com/bankfeed-io/bankfeed/internal/util"

	"github.com/gorilla/mux"
)

var (
	httpAddr  = flag.String("http.addr", bind.HTTP("bankfeed"), "HTTP listen address")
	adminAddr = flag.String("admin.addr", bind.Admin("bankfeed"), "Admin HTTP listen address")

	flagConfigFile = flag.String("config", "", "Filepath for config file to load")
	flagLogFormat  = flag.String("log.format", "", "Format for log lines (Options: json, plain)")
)

func main() {
	flag.Parse()

	configFilepath := util.Or(os.Getenv("CONFIG_FILE"), *flagConfigFile)
	cfg, err := appcfg.LoadConfig(configFilepath, flagLogFormat)
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
	cfg.Logger.Log("startup", fmt.Sprintf("Starting bankfeed server version %s", bankfeed.Version))

	// Listen for application termination.
	errs := make(chan error)
	go func() {
		c := make(chan os.Signal, 1)
		signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
		errs <- fmt.Errorf("%s", <-c)
	}()

	// Spin up admin HTTP server and optionally override -admin.addr
	if v := os.Getenv("HTTP_ADMIN_BIND_ADDRESS"); v != "" {
		*adminAddr = v
	} else if cfg.Admin.BindAddress != "" {
		*adminAddr = cfg.Admin.BindAddress
	}
	adminServer := admin.NewServer(*adminAddr)
	adminServer.AddVersionHandler(bankfeed.Version) // Setup 'GET /version'
	go func() {
		cfg.Logger.Log("admin", fmt.Sprintf("listening on %s", adminServer.BindAddr()))
		if err := adminServer.Listen(); err != nil {
			err = fmt.Errorf("problem starting admin http: %v", err)
			cfg.Logger.Log("admin", err)
			errs <- err
		}
	}()
	defer adminServer.Shutdown()

	// Setup a distributed tracer
	if !util.Yes(os.Getenv("TRACING_DISABLED")) {
		closer, err := setupTracing(cfg.Logger)
		if err != nil {
			panic(fmt.Sprintf("problem creating tracer: %v", err))
		}
		defer closer.Close()
	}

	// Bring up our aggregation API client
	client := setupGoCardlessClient(cfg, adminServer)

	publisher, err := feed.NewPublisher(cfg.Pipeline)
	if err != nil {
		panic(fmt.Sprintf("problem creating event publisher: %v", err))
	}
	defer publisher.Shutdown(context.TODO())

	svc := feed.NewService(cfg.Logger, client, publisher)

	// Create HTTP handler
	handler := mux.NewRouter()
	feed.RegisterRoutes(cfg.Logger, handler, svc)
	route.AddPingRoute(cfg.Logger, handler)

	// Check to see if our -http.addr flag has been overridden
	if v := os.Getenv("HTTP_BIND_ADDRESS"); v != "" {
		*httpAddr = v
	} else if cfg.Http.BindAddress != "" {
		*httpAddr = cfg.Http.BindAddress
	}
	// Create main HTTP server
	serve := &http.Server{
		Addr:    *httpAddr,
		Handler: handler,
		TLSConfig: &tls.Config{
			InsecureSkipVerify:       false,
			PreferServerCipherSuites: true,
			MinVersion:               tls.VersionTLS12,
		},
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	shutdownServer := func() {
		if err := serve.Shutdown(context.TODO()); err != nil {
			cfg.Logger.Log("shutdown", err)
		}
	}
	defer shutdownServer()

	// Start main HTTP server
	go func() {
		if certFile, keyFile := os.Getenv("HTTPS_CERT_FILE"), os.Getenv("HTTPS_KEY_FILE"); certFile != "" && keyFile != "" {
			cfg.Logger.Log("startup", fmt.Sprintf("binding to %s for secure HTTP server", *httpAddr))
			if err := serve.ListenAndServeTLS(certFile, keyFile); err != nil {
				cfg.Logger.Log("exit", err)
			}
		} else {
			cfg.Logger.Log("startup", fmt.Sprintf("binding to %s for HTTP server", *httpAddr))
			if err := serve.ListenAndServe(); err != nil {
				cfg.Logger.Log("exit", err)
			}
		}
	}()

	if err := <-errs; err != nil {
		cfg.Logger.Log("exit", err)
	}
}

// setupTracing picks a span sampler from the environment. TRACING_SAMPLE_RATE
// holds a fraction of spans to record (e.g. 0.25); when unset every span is
// recorded.
func setupTracing(logger log.Logger) (io.Closer, error) {
	if v := os.Getenv("TRACING_SAMPLE_RATE"); v != "" {
		rate, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid TRACING_SAMPLE_RATE %q: %v", v, err)
		}
		_, closer, err := trace.NewProbabilisticTracer(logger, "bankfeed", rate)
		return closer, err
	}
	_, closer, err := trace.NewConstantTracer(logger, "bankfeed")
	return closer, err
}

func setupGoCardlessClient(cfg *appcfg.Config, svc *admin.Server) gocardless.Client {
	endpoint := util.Or(os.Getenv("GOCARDLESS_ENDPOINT"), cfg.GoCardless.Endpoint)
	client := gocardless.NewClient(cfg.Logger, endpoint, cfg.GoCardless.ID(), cfg.GoCardless.Key(), nil)
	if client == nil {
		panic("no GoCardless client created")
	}
	svc.AddLivenessCheck("gocardless", client.Ping)
	return client
}
