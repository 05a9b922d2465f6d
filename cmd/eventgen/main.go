// eventgen is a load generator: it publishes synthetic payment events to the
// Kafka topic the service consumes, with a small HTTP control plane.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

type Generator struct {
	writer    *kafka.Writer
	isRunning atomic.Bool
	wg        sync.WaitGroup
	ctx       context.Context
	cancel    context.CancelFunc
	topic     string
	brokers   []string
	totalSent atomic.Int64
	startedAt time.Time
}

type GenRequest struct {
	Rate     int    `json:"rate"`
	Duration string `json:"duration"`
	// FailureRatio is the share of payment_failed events, 0..1.
	FailureRatio float64 `json:"failure_ratio"`
}

func NewGenerator(brokers []string, topic string) *Generator {
	ctx, cancel := context.WithCancel(context.Background())

	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
		BatchSize:    100,
	}

	return &Generator{
		writer:    writer,
		ctx:       ctx,
		cancel:    cancel,
		topic:     topic,
		brokers:   brokers,
		startedAt: time.Now(),
	}
}

func (g *Generator) Start(rate int, duration time.Duration, failureRatio float64) {
	if g.isRunning.Load() {
		return
	}
	g.isRunning.Store(true)
	g.totalSent.Store(0)

	log.Printf("Starting event generator: rate=%d msg/s, duration=%v, failure_ratio=%.2f", rate, duration, failureRatio)

	g.wg.Add(1)
	go func() {
		defer g.wg.Done()
		defer g.isRunning.Store(false)

		ticker := time.NewTicker(time.Second / time.Duration(rate))
		defer ticker.Stop()

		timer := time.NewTimer(duration)
		defer timer.Stop()

		for {
			select {
			case <-ticker.C:
				event := generatePaymentEvent(failureRatio)
				jsonData, err := json.Marshal(event)
				if err != nil {
					log.Printf("Error marshaling event: %v", err)
					continue
				}

				err = g.writer.WriteMessages(g.ctx, kafka.Message{
					Value: jsonData,
					Time:  time.Now(),
				})
				if err != nil {
					log.Printf("Error sending event to Kafka: %v", err)
				} else {
					g.totalSent.Add(1)
				}

			case <-timer.C:
				log.Printf("Generation completed. Total sent: %d", g.totalSent.Load())
				return

			case <-g.ctx.Done():
				log.Printf("Generation stopped. Total sent: %d", g.totalSent.Load())
				return
			}
		}
	}()
}

func (g *Generator) Stop() {
	if g.isRunning.Load() {
		g.cancel()
		g.wg.Wait()

		// Recreate context for next run
		g.ctx, g.cancel = context.WithCancel(context.Background())
	}
}

func (g *Generator) Close() {
	g.Stop()
	g.writer.Close()
}

func generatePaymentEvent(failureRatio float64) map[string]interface{} {
	eventType := "payment_succeeded"
	if rand.Float64() < failureRatio {
		eventType = "payment_failed"
	}

	return map[string]interface{}{
		"event_type":       eventType,
		"order_uid":        fmt.Sprintf("order_%s", uuid.NewString()),
		"subscription_uid": fmt.Sprintf("sub_%s", uuid.NewString()),
	}
}

func main() {
	brokers := []string{"kafka:9092"}
	if envBrokers := os.Getenv("KAFKA_BROKERS"); envBrokers != "" {
		brokers = []string{envBrokers}
	}

	topic := "payment-events"
	if envTopic := os.Getenv("KAFKA_TOPIC"); envTopic != "" {
		topic = envTopic
	}

	generator := NewGenerator(brokers, topic)
	defer generator.Close()

	http.HandleFunc("/start", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req GenRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}

		if req.Rate <= 0 {
			req.Rate = 10
		}
		if req.FailureRatio <= 0 || req.FailureRatio > 1 {
			req.FailureRatio = 0.3
		}

		duration, err := time.ParseDuration(req.Duration)
		if err != nil {
			http.Error(w, "Invalid duration format: "+err.Error(), http.StatusBadRequest)
			return
		}

		generator.Start(req.Rate, duration, req.FailureRatio)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":        "started",
			"rate":          req.Rate,
			"duration":      duration.String(),
			"failure_ratio": req.FailureRatio,
		})
	})

	http.HandleFunc("/stop", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		generator.Stop()

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":     "stopped",
			"total_sent": generator.totalSent.Load(),
		})
	})

	http.HandleFunc("/stats", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"is_running": generator.isRunning.Load(),
			"total_sent": generator.totalSent.Load(),
		})
	})

	port := ":8082"
	if envPort := os.Getenv("EVENTGEN_PORT"); envPort != "" {
		port = ":" + envPort
	}

	log.Printf("Event generator started on %s", port)
	log.Printf("Endpoints: POST /start, POST /stop, GET /stats")
	log.Fatal(http.ListenAndServe(port, nil))
}
