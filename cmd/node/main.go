// cmd/node is the entrypoint for a single ring member process.
//
// Example — three-node ring:
//
//	./node -id 1 -port 9001 -listen :9001 -data-dir /tmp/ring/1 \
//	       -peers 2:9002=http://localhost:9002,3:9003=http://localhost:9003
//	./node -id 2 -port 9002 -listen :9002 -data-dir /tmp/ring/2 \
//	       -peers 1:9001=http://localhost:9001,3:9003=http://localhost:9003
//	./node -id 3 -port 9003 -listen :9003 -data-dir /tmp/ring/3 \
//	       -peers 1:9001=http://localhost:9001,2:9002=http://localhost:9002
package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang/glog"
	"golang.org/x/sync/errgroup"

	"ringstore/internal/api"
	"ringstore/internal/config"
	"ringstore/internal/logging"
	"ringstore/internal/membership"
	"ringstore/internal/ringcore"
	"ringstore/internal/storage"
	"ringstore/internal/transport"
)

func main() {
	defer glog.Flush()

	cfg, err := config.Load()
	if err != nil {
		glog.Fatalf("config: %v", err)
	}
	self := cfg.Self()

	engine, err := storage.Open(cfg.DataDir)
	if err != nil {
		glog.Fatalf("storage: %v", err)
	}
	defer engine.Close()

	members := []ringcore.Address{self}
	resolver := make(transport.StaticResolver)
	for _, p := range cfg.Peers {
		members = append(members, p.Addr)
		resolver[p.Addr] = p.BaseURL
	}
	mship := membership.New(members)

	tr := transport.NewHTTP(self, resolver)
	logger := logging.New()

	core := ringcore.New(self, tr, engine, logger, mship)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(api.Logger(), api.Recovery())

	tr.Register(router)
	handler := api.NewHandler(core, mship, time.Duration(cfg.TickIntervalMS)*time.Millisecond)
	handler.Register(router)

	srv := &http.Server{
		Addr:         cfg.Listen,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	group, gctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		glog.Infof("node %s listening on %s", self, cfg.Listen)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	group.Go(func() error {
		return runTickLoop(gctx, core, time.Duration(cfg.TickIntervalMS)*time.Millisecond)
	})

	group.Go(func() error {
		return runSnapshotLoop(gctx, engine, time.Duration(cfg.SnapshotIntervalMS)*time.Millisecond)
	})

	<-gctx.Done()
	glog.Infof("shutting down node %s", self)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		glog.Errorf("server shutdown: %v", err)
	}
	if err := engine.Snapshot(); err != nil {
		glog.Errorf("final snapshot: %v", err)
	}

	if err := group.Wait(); err != nil && err != context.Canceled {
		glog.Errorf("node exited with error: %v", err)
	}
}

// runTickLoop drives Core's single cooperative entry point once per
// interval, counting logical ticks from zero for this process's lifetime.
func runTickLoop(ctx context.Context, core *ringcore.Core, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	tick := 0
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			core.Tick(tick)
			tick++
		}
	}
}

func runSnapshotLoop(ctx context.Context, engine *storage.Engine, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := engine.Snapshot(); err != nil {
				glog.Errorf("snapshot: %v", err)
			}
		}
	}
}
