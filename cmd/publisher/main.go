package main

import (
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strconv"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

type sampleMessage struct {
	UserID    int64   `json:"user_id"`
	TripID    int64   `json:"trip_id"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timestamp int64   `json:"timestamp"`
}

// a planned stop to drift around; matches the seed itinerary used in dev
var waypoint = struct{ lat, lon float64 }{48.8584, 2.2945}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <interval_seconds>\n", os.Args[0])
		os.Exit(1)
	}

	intervalSec, err := strconv.Atoi(os.Args[1])
	if err != nil || intervalSec <= 0 {
		fmt.Fprintf(os.Stderr, "error: interval must be a positive integer\n")
		os.Exit(1)
	}

	broker := "tcp://localhost:1883"
	if v := os.Getenv("MQTT_BROKER"); v != "" {
		broker = v
	}

	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID("tripsentry-mock-publisher")

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		log.Fatalf("mqtt connect: %v", token.Error())
	}
	defer client.Disconnect(250)

	userIDs := []int64{1, 2, 3, 4, 5}
	tripID := int64(1)

	log.Printf("connected to %s, publishing every %ds...", broker, intervalSec)

	ticker := time.NewTicker(time.Duration(intervalSec) * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		uid := userIDs[rand.Intn(len(userIDs))]

		var lat, lon float64
		// 70% of samples stay near the waypoint, the rest wander off
		if rand.Float64() < 0.7 {
			lat = waypoint.lat + (rand.Float64()-0.5)*0.005 // ~500m drift
			lon = waypoint.lon + (rand.Float64()-0.5)*0.005
		} else {
			lat = waypoint.lat + (rand.Float64()-0.5)*0.2 // up to ~10km away
			lon = waypoint.lon + (rand.Float64()-0.5)*0.2
		}

		msg := sampleMessage{
			UserID:    uid,
			TripID:    tripID,
			Latitude:  lat,
			Longitude: lon,
			Timestamp: time.Now().Unix(),
		}

		payload, _ := json.Marshal(msg)
		topic := fmt.Sprintf("/travel/user/%d/location", uid)

		token := client.Publish(topic, 1, false, payload)
		token.Wait()

		log.Printf("published to %s: %s", topic, payload)
	}
}
