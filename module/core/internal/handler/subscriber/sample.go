package subscriber

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/tripsentry/tripsentry/module/core/domain"
)

const topicPattern = "/travel/user/+/location"

type sampleService interface {
	SaveSample(ctx context.Context, sample *domain.LocationSample) error
}

type monitorService interface {
	HandleSample(ctx context.Context, sample *domain.LocationSample) ([]domain.SafetyAlert, error)
}

type sampleMessage struct {
	UserID         int64    `json:"user_id"`
	TripID         int64    `json:"trip_id"`
	Latitude       float64  `json:"latitude"`
	Longitude      float64  `json:"longitude"`
	Timestamp      int64    `json:"timestamp"`
	AccuracyMeters *float64 `json:"accuracy_meters,omitempty"`
	BatteryLevel   *int     `json:"battery_level,omitempty"`
	IsManual       bool     `json:"is_manual,omitempty"`
}

type SampleSubscriber struct {
	client     mqtt.Client
	sampleSvc  sampleService
	monitorSvc monitorService
}

func NewSampleSubscriber(client mqtt.Client, sampleSvc sampleService, monitorSvc monitorService) *SampleSubscriber {
	return &SampleSubscriber{
		client:     client,
		sampleSvc:  sampleSvc,
		monitorSvc: monitorSvc,
	}
}

func (s *SampleSubscriber) Start() error {
	token := s.client.Subscribe(topicPattern, 1, s.handleMessage)
	token.Wait()
	return token.Error()
}

func (s *SampleSubscriber) handleMessage(_ mqtt.Client, msg mqtt.Message) {
	var raw sampleMessage
	if err := json.Unmarshal(msg.Payload(), &raw); err != nil {
		log.Printf("invalid sample message: %v", err)
		return
	}

	if err := validateSampleMessage(&raw); err != nil {
		log.Printf("validation error: %v", err)
		return
	}

	sample := &domain.LocationSample{
		UserID:         raw.UserID,
		TripID:         raw.TripID,
		Coordinate:     domain.Coordinate{Lat: raw.Latitude, Lon: raw.Longitude},
		Timestamp:      time.Unix(raw.Timestamp, 0),
		AccuracyMeters: raw.AccuracyMeters,
		BatteryLevel:   raw.BatteryLevel,
		IsManual:       raw.IsManual,
	}

	ctx := context.Background()

	if err := s.sampleSvc.SaveSample(ctx, sample); err != nil {
		log.Printf("save sample error: %v", err)
		return
	}

	fired, err := s.monitorSvc.HandleSample(ctx, sample)
	if err != nil {
		log.Printf("safety check error: %v", err)
		return
	}
	if len(fired) > 0 {
		log.Printf("user %d trip %d: %d safety alert(s) triggered", sample.UserID, sample.TripID, len(fired))
	}
}

func validateSampleMessage(msg *sampleMessage) error {
	if msg.UserID <= 0 {
		return fmt.Errorf("user_id: required")
	}
	if msg.TripID <= 0 {
		return fmt.Errorf("trip_id: required")
	}
	if msg.Latitude < -90 || msg.Latitude > 90 {
		return fmt.Errorf("latitude: must be between -90 and 90")
	}
	if msg.Longitude < -180 || msg.Longitude > 180 {
		return fmt.Errorf("longitude: must be between -180 and 180")
	}
	if msg.Timestamp <= 0 {
		return fmt.Errorf("timestamp: must be positive")
	}
	if msg.BatteryLevel != nil && (*msg.BatteryLevel < 0 || *msg.BatteryLevel > 100) {
		return fmt.Errorf("battery_level: must be between 0 and 100")
	}
	return nil
}
