package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/serenelion/earthcare-network/internal/infra/database"
	"github.com/serenelion/earthcare-network/internal/infra/http/handlers"
	"github.com/serenelion/earthcare-network/internal/infra/http/middleware"
	"github.com/serenelion/earthcare-network/internal/infra/integration/apollo"
	"github.com/serenelion/earthcare-network/internal/infra/integration/hunter"
	"github.com/serenelion/earthcare-network/internal/infra/integration/linkedin"
	"github.com/serenelion/earthcare-network/internal/infra/mail"
	"github.com/serenelion/earthcare-network/internal/infra/queue"
	"github.com/serenelion/earthcare-network/internal/infra/worker"
	"github.com/serenelion/earthcare-network/internal/usecase"
)

func main() {
	godotenv.Load()

	db, err := database.NewDBConnection(os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	rabbitMQ, err := queue.NewRabbitMQ(
		envOr("RABBITMQ_USER", "guest"),
		envOr("RABBITMQ_PASS", "guest"),
		envOr("RABBITMQ_HOST", "localhost"),
		envOr("RABBITMQ_PORT", "5672"),
	)
	if err != nil {
		log.Fatal(err)
	}
	defer rabbitMQ.Conn.Close()
	defer rabbitMQ.Ch.Close()

	// 1. Repositories
	leadRepo := database.NewLeadRepository(db)
	campaignRepo := database.NewCampaignRepository(db)
	companyRepo := database.NewCompanyRepository(db)

	// 2. Integrations and adapters
	producer := queue.NewProducer(rabbitMQ.Conn, rabbitMQ.Ch)
	mailer := buildMailSender()
	renderer := usecase.NewTemplateRenderer(
		os.Getenv("DIRECTORY_BASE_URL"),
		os.Getenv("SPATIAL_NETWORK_BASE_URL"),
	)

	// Prospect sources, in dedup precedence order.
	apolloClient := apollo.NewClient(os.Getenv("APOLLO_API_KEY"))
	linkedinClient := linkedin.NewClient()
	hunterClient := hunter.NewClient(os.Getenv("HUNTER_API_KEY"))

	// 3. Use cases
	discoveryUC := usecase.NewLeadDiscoveryUseCase(leadRepo, companyRepo, apolloClient, linkedinClient, hunterClient)
	campaignUC := usecase.NewEmailCampaignUseCase(campaignRepo, leadRepo, companyRepo, mailer, renderer)
	agentUC := usecase.NewAgentUseCase(discoveryUC, campaignUC, companyRepo, producer)

	// 4. Workers
	queueWorker := queue.NewWorker(rabbitMQ.Ch, agentUC)
	go queueWorker.Start(queue.QueueName)

	sweeper := worker.NewEnrichmentSweeper(db)
	go sweeper.Start(context.Background())

	// 5. Handlers
	discoveryHandler := handlers.NewDiscoveryHandler(discoveryUC)
	campaignHandler := handlers.NewCampaignHandler(campaignUC)
	agentHandler := handlers.NewAgentHandler(agentUC)
	healthHandler := handlers.NewHealthHandler(db, rabbitMQ.Conn)

	// 6. Router
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"http://localhost:5173", "*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
	}))

	r.Post("/companies/{companyId}/discover", discoveryHandler.HandleDiscover)
	r.Get("/companies/{companyId}/leads", discoveryHandler.HandleGetLeads)
	r.Put("/leads/{leadId}/score", discoveryHandler.HandleUpdateScore)

	r.Post("/campaigns", campaignHandler.HandleCreate)
	r.Get("/campaigns", campaignHandler.HandleList)
	r.Post("/campaigns/{campaignId}/execute", campaignHandler.HandleExecute)
	r.Post("/campaigns/{campaignId}/pause", campaignHandler.HandlePause)
	r.Post("/campaigns/{campaignId}/resume", campaignHandler.HandleResume)
	r.Get("/campaigns/{campaignId}/metrics", campaignHandler.HandleGetMetrics)
	r.Post("/campaigns/{campaignId}/metrics", campaignHandler.HandleUpdateMetrics)
	r.Get("/templates/business-claim", campaignHandler.HandleGetDefaultTemplate)

	r.Post("/agent/process", agentHandler.HandleProcessCompany)
	r.Post("/agent/process-batch", agentHandler.HandleProcessBatch)
	r.Post("/agent/campaigns", agentHandler.HandleCreateCustomCampaign)
	r.Get("/agent/summary", agentHandler.HandleSummary)
	r.Get("/agent/recommended-actions", agentHandler.HandleRecommendedActions)
	r.Post("/agent/schedule-discovery", agentHandler.HandleScheduleDiscovery)

	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	port := ":" + envOr("PORT", "8080")
	log.Printf("EarthCare lead-generation API listening on %s", port)
	http.ListenAndServe(port, r)
}

// buildMailSender picks SMTP when MAIL_HOST is configured, the simulated
// sender otherwise. Development setups run without an SMTP relay.
func buildMailSender() usecase.MailSender {
	host := os.Getenv("MAIL_HOST")
	if host == "" {
		log.Println("MAIL_HOST not set, using simulated mail sender")
		return mail.NewSimulatedSender()
	}

	port, err := strconv.Atoi(envOr("MAIL_PORT", "587"))
	if err != nil {
		port = 587
	}

	return mail.NewSMTPSender(host, port, os.Getenv("MAIL_USER"), os.Getenv("MAIL_PASS"), os.Getenv("MAIL_FROM"))
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
