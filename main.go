package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/gorilla/mux"
	"golang.org/x/sync/errgroup"

	"github.com/spencer-p/tidepool/pkg/check"
	"github.com/spencer-p/tidepool/pkg/config"
	"github.com/spencer-p/tidepool/pkg/handlers"
	"github.com/spencer-p/tidepool/pkg/metrics"
	"github.com/spencer-p/tidepool/pkg/noaa"
)

func main() {
	env, err := config.Load()
	if err != nil {
		log.Fatal(err.Error())
	}

	client := noaa.NewClient(env.NOAA())
	checker := check.New(client, check.Settings{
		Threshold:      env.Threshold,
		LookAheadHours: env.LookAheadHours,
		Place:          env.Place(),
	})

	r := mux.NewRouter().StrictSlash(true)
	s := r.PathPrefix(env.Prefix).Subrouter()
	handlers.Register(s, checker, handlers.Options{
		Station: client.Station(),
		Place:   env.Place(),
	})

	srv := &http.Server{
		Handler:      metrics.LatencyHandler(r),
		Addr:         "0.0.0.0:" + env.Port,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Printf("Listening and serving on %s%s for station %s", srv.Addr, env.Prefix, client.Station())
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		log.Printf("Shutting down")
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatal(err)
	}
}
