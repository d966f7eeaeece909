package main

import (
	"errors"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/kube-rca/alert-broadcast/internal/config"
	"github.com/kube-rca/alert-broadcast/internal/handler"
	"github.com/kube-rca/alert-broadcast/internal/logger"
	"github.com/kube-rca/alert-broadcast/internal/server"
	"github.com/kube-rca/alert-broadcast/internal/service"
	"github.com/kube-rca/alert-broadcast/internal/sink"
	"github.com/kube-rca/alert-broadcast/web"
)

// @title Alert Broadcast API
// @version 1.0
// @description Accepts alert broadcast submissions and serves the bundled web app.
func main() {
	// .env 파일이 없어도 환경변수만으로 동작
	_ = godotenv.Load()

	cfg := config.Load()
	logger.Init(cfg.Log.Level, cfg.Log.Development)
	log := logger.Logger

	if !cfg.Log.Development {
		gin.SetMode(gin.ReleaseMode)
	}

	// 1. 알림 기록 sink 구성 (로그 + 선택적으로 Kafka 감사 토픽)
	sinks := sink.Multi{sink.NewLog(logger.WithComponent("alerts"))}
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaSink, err := sink.NewKafka(cfg.Kafka.Brokers, cfg.Kafka.Topic, logger.WithComponent("kafka"))
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create kafka sink")
		}
		defer kafkaSink.Close()
		sinks = append(sinks, kafkaSink)
		log.Info().Strs("brokers", cfg.Kafka.Brokers).Str("topic", cfg.Kafka.Topic).Msg("kafka audit sink enabled")
	}

	// 2. service / handler 생성
	clk := clock.New()
	alertService := service.NewAlertService(sinks, clk, cfg.Alert.PublishDelay)

	var spaFS fs.FS = web.FS()
	if cfg.Static.Dir != "" {
		spaFS = os.DirFS(cfg.Static.Dir)
	}
	spaHandler, err := handler.NewSPAHandler(spaFS)
	if err != nil {
		log.Fatal().Err(err).Str("dir", cfg.Static.Dir).Msg("failed to load SPA bundle")
	}

	deps := server.Deps{
		Config: cfg.Server,
		Log:    logger.WithComponent("http"),
		Alerts: handler.NewAlertHandler(alertService, logger.WithComponent("alerts")),
		Health: handler.NewHealthHandler(clk),
		SPA:    spaHandler,
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           server.NewHandler(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// 3. 서버 시작
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server exited")
		}
	}()

	log.Info().Msgf("Server running on port %s", cfg.Server.Port)
	log.Info().Msgf("App available at: http://localhost:%s", cfg.Server.Port)

	// 4. 종료 시그널 대기
	// 지연 중인 요청은 기다리지 않고 바로 종료
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs

	log.Info().Msg("Shutting down...")
	if err := srv.Close(); err != nil {
		log.Error().Err(err).Msg("failed to close server")
	}
}
