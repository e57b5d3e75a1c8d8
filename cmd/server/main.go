package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"

	"github.com/tripsentry/tripsentry/config"
	"github.com/tripsentry/tripsentry/module/core"
	"github.com/tripsentry/tripsentry/module/core/service"
)

func main() {
	cfg := config.Load()

	db, err := config.NewPostgres(cfg)
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer func() { _ = db.Close() }()

	amqpConn, err := config.NewRabbitMQ(cfg)
	if err != nil {
		log.Fatalf("rabbitmq: %v", err)
	}
	defer func() { _ = amqpConn.Close() }()

	mqttClient, err := config.NewMQTT(cfg)
	if err != nil {
		log.Fatalf("mqtt: %v", err)
	}
	defer mqttClient.Disconnect(250)

	monitorCfg := service.MonitorConfig{
		ResponseTimeout:         cfg.ResponseTimeout,
		StationaryWindow:        cfg.StationaryWindow,
		MovementEpsilonKm:       cfg.MovementEpsilonKm,
		StationaryAlertRadiusKm: cfg.StationaryAlertRadiusKm,
		SweepInterval:           cfg.SweepInterval,
	}

	coreModule, err := core.Build(db, amqpConn, mqttClient, monitorCfg)
	if err != nil {
		log.Fatalf("core module: %v", err)
	}

	if err := coreModule.StartSubscribers(); err != nil {
		log.Fatalf("start subscribers: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	coreModule.StartSweeper(ctx)

	r := gin.Default()

	health := config.NewHealthChecker(db, amqpConn, mqttClient)
	health.Register(r)

	coreModule.RegisterRoutes(&r.RouterGroup)

	log.Printf("listening on :%s", cfg.HTTPPort)
	if err := r.Run(":" + cfg.HTTPPort); err != nil {
		log.Fatalf("server: %v", err)
	}
}
