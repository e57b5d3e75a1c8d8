package core

import (
	"context"
	"database/sql"
	"fmt"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/gin-gonic/gin"
	amqp "github.com/rabbitmq/amqp091-go"

	handler "github.com/tripsentry/tripsentry/module/core/internal/handler/http"
	"github.com/tripsentry/tripsentry/module/core/internal/handler/subscriber"
	"github.com/tripsentry/tripsentry/module/core/internal/repository/database/postgres"
	"github.com/tripsentry/tripsentry/module/core/internal/repository/publisher/rabbitmq"
	"github.com/tripsentry/tripsentry/module/core/service"
)

type Module struct {
	SampleSvc  *service.SampleService
	MonitorSvc *service.MonitorService
	AlertSvc   *service.AlertService

	travelerHandler *handler.TravelerHandler
	alertHandler    *handler.AlertHandler
	subscriber      *subscriber.SampleSubscriber
	sweeper         *service.EscalationSweeper
}

func Build(db *sql.DB, amqpConn *amqp.Connection, mqttClient mqtt.Client, cfg service.MonitorConfig) (*Module, error) {
	itineraryRepo := postgres.NewItineraryRepo(db)
	sampleRepo := postgres.NewSampleRepo(db)
	alertRepo := postgres.NewAlertRepo(db)

	alertPub, err := rabbitmq.NewAlertPublisher(amqpConn)
	if err != nil {
		return nil, fmt.Errorf("alert publisher: %w", err)
	}

	sampleSvc := service.NewSampleService(sampleRepo)
	monitorSvc := service.NewMonitorService(itineraryRepo, sampleRepo, alertRepo, alertPub, cfg)
	alertSvc := service.NewAlertService(alertRepo, sampleRepo, alertPub, cfg)

	return &Module{
		SampleSvc:       sampleSvc,
		MonitorSvc:      monitorSvc,
		AlertSvc:        alertSvc,
		travelerHandler: handler.NewTravelerHandler(sampleSvc),
		alertHandler:    handler.NewAlertHandler(alertSvc),
		subscriber:      subscriber.NewSampleSubscriber(mqttClient, sampleSvc, monitorSvc),
		sweeper:         service.NewEscalationSweeper(alertSvc, cfg.SweepInterval),
	}, nil
}

func (m *Module) RegisterRoutes(r *gin.RouterGroup) {
	m.travelerHandler.Register(r)
	m.alertHandler.Register(r)
}

func (m *Module) StartSubscribers() error {
	return m.subscriber.Start()
}

// StartSweeper runs the deadline escalation sweep until ctx is cancelled.
func (m *Module) StartSweeper(ctx context.Context) {
	go m.sweeper.Run(ctx)
}
