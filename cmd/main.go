package main

import (
	"context"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/bugsnag/panicwrap"
	"github.com/shirokodev/presence-relay/data/model"
	"github.com/shirokodev/presence-relay/internal/api/eventapi"
	"github.com/shirokodev/presence-relay/internal/api/eventbridge"
	"github.com/shirokodev/presence-relay/internal/configure"
	"github.com/shirokodev/presence-relay/internal/global"
	"github.com/shirokodev/presence-relay/internal/health"
	"github.com/shirokodev/presence-relay/internal/monitoring"
	"github.com/shirokodev/presence-relay/internal/svc/discord"
	"github.com/shirokodev/presence-relay/internal/svc/prometheus"
	"github.com/shirokodev/presence-relay/internal/svc/relay"
	"go.uber.org/zap"
)

var (
	Version = "development"
	Unix    = ""
	Time    = "unknown"
	User    = "unknown"
)

func init() {
	debug.SetGCPercent(2000)
	if i, err := strconv.Atoi(Unix); err == nil {
		Time = time.Unix(int64(i), 0).Format(time.RFC3339)
	}
}

func main() {
	config := configure.New()

	exitStatus, err := panicwrap.BasicWrap(func(s string) {
		zap.S().Errorw("panic detected",
			"panic", s,
		)
	})
	if err != nil {
		zap.S().Errorw("failed to setup panic handler",
			"error", err,
		)
		os.Exit(2)
	}

	if exitStatus >= 0 {
		os.Exit(exitStatus)
	}

	if !config.NoHeader {
		zap.S().Info("Presence Relay")
		zap.S().Infof("Version: %s", Version)
		zap.S().Infof("build.Time: %s", Time)
		zap.S().Infof("build.User: %s", User)
	}

	zap.S().Debugf("MaxProcs: %d", runtime.GOMAXPROCS(0))

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	gCtx, cancel := global.WithCancel(global.New(context.Background(), config))

	{
		gCtx.Inst().Discord, err = discord.New(gCtx, discord.Options{
			Token:         config.Discord.Token,
			TrackedUserID: config.Discord.TrackedUserID,
		})
		if err != nil {
			zap.S().Fatalw("failed to setup discord gateway",
				"error", err,
			)
		}
	}

	{
		gCtx.Inst().Relay = relay.New()
	}

	{
		gCtx.Inst().Prometheus = prometheus.New(prometheus.Options{
			Labels: config.Monitoring.Labels.ToPrometheus(),
		})
	}

	{
		gCtx.Inst().Modelizer = model.NewInstance()
	}

	wg := sync.WaitGroup{}

	if gCtx.Config().Health.Enabled {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-health.New(gCtx)
		}()
	}
	if gCtx.Config().Monitoring.Enabled {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-monitoring.New(gCtx)
		}()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		<-eventbridge.New(gCtx)
	}()

	// Serve downstream consumers only once the gateway session is up.
	wg.Add(1)
	go func() {
		defer wg.Done()

		select {
		case <-gCtx.Done():
			return
		case <-gCtx.Inst().Discord.Ready():
		}

		<-eventapi.New(gCtx)
	}()

	zap.S().Info("running")

	done := make(chan struct{})
	go func() {
		<-sig
		cancel()
		go func() {
			select {
			case <-time.After(time.Minute):
			case <-sig:
			}
			zap.S().Fatal("force shutdown")
		}()

		zap.S().Info("shutting down")

		wg.Wait()

		close(done)
	}()

	<-done

	zap.S().Info("shutdown")
	os.Exit(0)
}
