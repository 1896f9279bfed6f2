package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/ArnW0lf/ParaJose/domain/model"
	"github.com/ArnW0lf/ParaJose/domain/repository"
	"github.com/ArnW0lf/ParaJose/infrastructure/cache"
	"github.com/ArnW0lf/ParaJose/infrastructure/clients/gemini"
	"github.com/ArnW0lf/ParaJose/infrastructure/clients/pexels"
	"github.com/ArnW0lf/ParaJose/infrastructure/clients/pollinations"
	"github.com/ArnW0lf/ParaJose/infrastructure/clients/social"
	"github.com/ArnW0lf/ParaJose/infrastructure/clients/tiktok"
	"github.com/ArnW0lf/ParaJose/infrastructure/configuration"
	"github.com/ArnW0lf/ParaJose/infrastructure/logger"
	"github.com/ArnW0lf/ParaJose/infrastructure/notification"
	"github.com/ArnW0lf/ParaJose/infrastructure/persistence"
	"github.com/ArnW0lf/ParaJose/infrastructure/pubsub"
	"github.com/ArnW0lf/ParaJose/infrastructure/realtime"
	"github.com/ArnW0lf/ParaJose/infrastructure/servicebus"
	httpHandler "github.com/ArnW0lf/ParaJose/interfaces/http"
	"github.com/ArnW0lf/ParaJose/server"
	"github.com/ArnW0lf/ParaJose/usecase"

	"golang.org/x/sync/errgroup"
)

var httpServer *http.Server

func recoverPanic() {
	if err := recover(); err != nil {
		logger.GetLogger().WithField("error", err).Error("Application panic recovered")
	}
}

func main() {
	defer recoverPanic()
	ctx := context.Background()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(interrupt)

	g, ctx := errgroup.WithContext(ctx)

	// Load env from files (non-destructive; OS env still has precedence)
	configuration.LoadEnvFromFile("config.env", ".env")

	app := configuration.C.App

	db, err := InitiateDatabase()
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Database initialization failed")
		os.Exit(1)
	}
	logger.GetLogger().WithField("ping", db.Ping()).Info("Database connected.")

	posts, publications, credentials := InitiateRepositories(db)

	// Mongo is optional: without it the API call audit falls back to logs only.
	mongoDb, err := persistence.NewMongoDb(
		configuration.C.Database.Mongo.Host,
		configuration.C.Database.Mongo.Port,
		configuration.C.Database.Mongo.User,
		configuration.C.Database.Mongo.Password,
		configuration.C.Database.Mongo.Name,
	)
	if err != nil {
		logger.GetLogger().WithField("error", err).Warn("MongoDB not available - API call audit will be log-only")
		mongoDb = nil
	} else if err := mongoDb.Ping(ctx, nil); err != nil {
		logger.GetLogger().WithField("error", err).Warn("MongoDB ping failed - API call audit will be log-only")
		mongoDb = nil
	}
	auditSink := persistence.NewAuditRepository(mongoDb, configuration.C.Database.Mongo.Name)

	// Redis is optional too: the PKCE verifier store degrades to memory.
	var verifiers cache.IVerifierStore
	redisPort, _ := strconv.Atoi(configuration.C.RedisClient.Port)
	redisClient, err := cache.NewRedisClient(
		configuration.C.RedisClient.Host,
		redisPort,
		configuration.C.RedisClient.Password,
		0,
	)
	if err != nil {
		logger.GetLogger().WithField("error", err).Warn("Redis not available - using in-memory verifier store")
		verifiers = cache.NewMemoryVerifierStore()
	} else {
		verifiers = cache.NewRedisVerifierStore(redisClient)
	}

	notifier := InitiateNotifier(ctx)

	// Content generation collaborators.
	textModel := gemini.NewClient(configuration.C.Gemini.APIKey, configuration.C.Gemini.Model)
	images := pollinations.NewClient()
	videos := pexels.NewClient(configuration.C.Pexels.APIKey)
	enricher := usecase.NewEnricher(images, videos)

	// Platform publishers.
	publishers := []repository.IPublisher{
		social.NewFacebookPublisher(configuration.C.Facebook.PageID, configuration.C.Facebook.AccessToken, auditSink),
		social.NewInstagramPublisher(configuration.C.Instagram.AccountID, configuration.C.Facebook.AccessToken, auditSink),
		social.NewLinkedInPublisher(configuration.C.LinkedIn.AccessToken, auditSink),
		social.NewWhatsAppPublisher(configuration.C.Twilio.AccountSID, configuration.C.Twilio.AuthToken, configuration.C.Twilio.WhatsappFrom, auditSink),
		social.NewTikTokPublisher(credentials, auditSink),
	}

	publishHub := realtime.NewPublishHub()

	adaptUsecase := usecase.NewAdaptUsecase(textModel, enricher, posts, publications)
	publishUsecase := usecase.NewPublishUsecase(publications, publishers, notifier, func(pub *model.Publication) {
		publishHub.BroadcastPublishStatus(pub)
	})

	tiktokOAuth := tiktok.NewOAuthClient(
		configuration.C.TikTok.ClientKey,
		configuration.C.TikTok.ClientSecret,
		configuration.C.TikTok.RedirectURI,
	)

	adaptHandler := httpHandler.NewAdaptHandler(adaptUsecase)
	publishHandler := httpHandler.NewPublishHandler(publishUsecase)
	postHandler := httpHandler.NewPostHandler(adaptUsecase)
	tiktokOAuthHandler := httpHandler.NewTikTokOAuthHandler(tiktokOAuth, verifiers, credentials)

	router := server.InitiateRouter(adaptHandler, publishHandler, postHandler, tiktokOAuthHandler, publishHub, app.SecretKey)

	port := app.Port
	logger.GetLogger().WithField("port", port).Info("Starting application")
	g.Go(func() error {
		httpServer = &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: router,
		}
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	select {
	case <-interrupt:
		logger.GetLogger().Info("Application shutdown requested")
	case <-ctx.Done():
	}

	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if httpServer != nil {
		_ = httpServer.Shutdown(shutdownCtx)
	}
	if mongoDb != nil {
		_ = mongoDb.Disconnect(shutdownCtx)
	}

	if err := g.Wait(); err != nil {
		logger.GetLogger().WithField("error", err).Error("Server returned an error")
		os.Exit(2)
	}
}

// InitiateDatabase returns the primary relational database: Azure SQL in
// production (or when DB_VENDOR=mssql), PostgreSQL otherwise.
func InitiateDatabase() (*sql.DB, error) {
	env := os.Getenv("ENV")
	if os.Getenv("DB_VENDOR") == "mssql" || env == "production" || env == "prod" {
		mssql, err := persistence.NewMSSQLDB()
		if err != nil {
			logger.GetLogger().WithField("error", err).Error("Cannot connect to MSSQL")
			return nil, err
		}
		return mssql, nil
	}
	postgres, err := persistence.NewPostgreSQLDB()
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Cannot connect to PostgreSQL")
		return nil, err
	}
	return postgres, nil
}

// InitiateRepositories wires the vendor-matched repository set and ensures
// the schema exists.
func InitiateRepositories(db *sql.DB) (repository.IPost, repository.IPublication, repository.ICredential) {
	env := os.Getenv("ENV")
	if os.Getenv("DB_VENDOR") == "mssql" || env == "production" || env == "prod" {
		if err := persistence.EnsureContentSchemaMSSQL(db); err != nil {
			logger.GetLogger().WithField("error", err).Error("failed ensuring content schema")
		}
		if err := persistence.EnsureCredentialSchemaMSSQL(db); err != nil {
			logger.GetLogger().WithField("error", err).Error("failed ensuring credential schema")
		}
		return persistence.NewPostRepositoryMSSQL(db),
			persistence.NewPublicationRepositoryMSSQL(db),
			persistence.NewCredentialRepositoryMSSQL(db)
	}
	if err := persistence.EnsureContentSchema(db); err != nil {
		logger.GetLogger().WithField("error", err).Error("failed ensuring content schema")
	}
	return persistence.NewPostRepository(db),
		persistence.NewPublicationRepository(db),
		persistence.NewCredentialRepository(db)
}

// InitiateNotifier assembles the event transports that are configured;
// either or both may be absent.
func InitiateNotifier(ctx context.Context) *notification.Notifier {
	var events pubsub.IEventPublisher
	if projectID := configuration.C.Notifier.PubsubProjectID; projectID != "" {
		client, err := pubsub.NewPubSub(ctx, projectID)
		if err != nil {
			logger.GetLogger().WithField("error", err).Warn("Pub/Sub not available - continuing without it")
		} else {
			events = pubsub.NewEventPublisher(client)
		}
	}
	var bus servicebus.IEventBus
	if namespace := configuration.C.Notifier.ServiceBusNamespace; namespace != "" {
		client, err := servicebus.NewServiceBus(namespace)
		if err != nil {
			logger.GetLogger().WithField("error", err).Warn("Azure Service Bus not available - continuing without it")
		} else {
			bus = servicebus.NewEventBus(client, configuration.C.Notifier.ServiceBusQueue)
		}
	}
	return notification.NewNotifier(events, configuration.C.Notifier.PubsubTopic, bus)
}
