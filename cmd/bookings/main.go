package main

import (
	bookingshandler "nuffjamz/internal/bookings/handler"
	bookingsrepo "nuffjamz/internal/bookings/repository"
	bookingssvc "nuffjamz/internal/bookings/service"
	contactshandler "nuffjamz/internal/contacts/handler"
	contactsrepo "nuffjamz/internal/contacts/repository"
	contactssvc "nuffjamz/internal/contacts/service"
	contactsvalidator "nuffjamz/internal/contacts/validator"
	"nuffjamz/internal/events"
	"nuffjamz/internal/mailer"
	testimonialshandler "nuffjamz/internal/testimonials/handler"
	testimonialsrepo "nuffjamz/internal/testimonials/repository"
	testimonialssvc "nuffjamz/internal/testimonials/service"
	"nuffjamz/pkg/app"
	"nuffjamz/pkg/config"
	"nuffjamz/pkg/kafka"
	kafka_config "nuffjamz/pkg/kafka/config"
)

const ServiceName = "bookings"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()

	cfg.Log.Info("Starting bookings service")

	serverApp := app.NewApplication()
	serverApp.OnShutdown(cfg.GracefulShutdown)

	bookingMailer := initMailer(cfg)
	publisher := initPublisher(cfg, serverApp)

	bookingRepo := bookingsrepo.NewMongoBookingRepository(cfg)
	bookingService := bookingssvc.NewBookingService(bookingRepo, bookingMailer, publisher, cfg)

	contactRepo := contactsrepo.NewMongoContactRepository(cfg)
	contactService := contactssvc.NewContactService(
		contactRepo,
		contactsvalidator.NewContactValidator(),
		bookingMailer,
		cfg,
	)

	testimonialRepo := testimonialsrepo.NewMongoTestimonialRepository(cfg)
	testimonialService := testimonialssvc.NewTestimonialService(testimonialRepo, cfg)

	serverApp.SetApp(cfg,
		bookingshandler.NewBookingHandler(bookingService, cfg.Log),
		contactshandler.NewContactHandler(contactService, cfg.Log),
		testimonialshandler.NewTestimonialHandler(testimonialService, cfg.Log),
	)
	serverApp.Run()
}

// initMailer selects the SendGrid gateway when a key is configured,
// otherwise falls back to logging deliveries.
func initMailer(cfg *config.Config) *mailer.Mailer {
	var gateway mailer.Gateway
	if cfg.SendGridAPIKey != "" {
		gateway = mailer.NewSendGridGateway(cfg.SendGridAPIKey)
		cfg.Log.Info("SendGrid mail gateway enabled")
	} else {
		gateway = mailer.NewLogGateway(cfg.Log)
		cfg.Log.Warn("No SendGrid API key configured, emails will be logged only")
	}

	return mailer.NewMailer(gateway, cfg.BusinessEmail, cfg.AdminEmail, cfg.Log)
}

func initPublisher(cfg *config.Config, serverApp *app.Application) *events.Publisher {
	kafkaCfg := kafka_config.Load()
	kafkaCfg.LogConfiguration(cfg.Log.Info)

	producer, err := kafka.NewProducer(kafkaCfg, cfg.BookingEventsTopic, cfg.BookingEventsTopic+".dlq")
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}
	serverApp.OnShutdown(func() {
		if err := producer.Close(); err != nil {
			cfg.Log.Error("Failed to close Kafka producer", "error", err)
		}
	})

	return events.NewPublisher(producer, ServiceName)
}
