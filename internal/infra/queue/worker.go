package queue

import (
	"context"
	"encoding/json"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/serenelion/earthcare-network/internal/infra/http/middleware"
)

// LeadGenerationProcessor runs the discovery -> campaign workflow for one
// company. Implemented by the agent use case.
type LeadGenerationProcessor interface {
	ProcessLeadGeneration(ctx context.Context, companyID string, autoEmailing bool) error
}

type Worker struct {
	Channel   *amqp.Channel
	Processor LeadGenerationProcessor
}

func NewWorker(ch *amqp.Channel, processor LeadGenerationProcessor) *Worker {
	return &Worker{
		Channel:   ch,
		Processor: processor,
	}
}

func (w *Worker) Start(queueName string) {
	msgs, err := w.Channel.Consume(
		queueName,
		"",    // consumer
		false, // manual ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		log.Fatalf("worker: failed to register consumer: %s", err)
	}

	forever := make(chan bool)

	go func() {
		for d := range msgs {
			var payload LeadGenerationPayload
			if err := json.Unmarshal(d.Body, &payload); err != nil {
				log.Printf("worker: invalid JSON, rejecting: %s", err)
				// Malformed message, reject without requeue so the queue
				// never jams on it.
				d.Nack(false, false)
				continue
			}

			log.Printf("worker: processing lead generation for company %s (origin: %s)", payload.CompanyID, payload.Origin)

			if err := w.Processor.ProcessLeadGeneration(context.Background(), payload.CompanyID, payload.AutoEmailing); err != nil {
				log.Printf("worker: processing failed: %s", err)
				middleware.RecordIntegrationError("leadgen_worker")
				// No in-queue retry: the DLQ keeps the job for inspection and
				// callers re-invoke explicitly.
				d.Nack(false, false)
			} else {
				log.Printf("worker: company %s processed", payload.CompanyID)
				d.Ack(false)
			}
		}
	}()

	log.Printf("worker: waiting on queue '%s'", queueName)
	<-forever
}
