package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/offer-fe/offer-be/config"
	"github.com/offer-fe/offer-be/internal/controller"
	"github.com/offer-fe/offer-be/internal/infrastructure/database/schema"
	"github.com/offer-fe/offer-be/internal/infrastructure/mail"
	"github.com/offer-fe/offer-be/internal/infrastructure/message-queue/kafka"
	objectstorage "github.com/offer-fe/offer-be/internal/infrastructure/object-storage"
	"github.com/offer-fe/offer-be/internal/infrastructure/tracing"
	localmiddleware "github.com/offer-fe/offer-be/internal/middleware"
	"github.com/offer-fe/offer-be/internal/repository"
	"github.com/offer-fe/offer-be/internal/service"
	"github.com/offer-fe/offer-be/pkg/response"
	"github.com/offer-fe/offer-be/pkg/utils"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/sdk/trace"
)

type App struct {
	DB     *sqlx.DB
	Config *config.Config
	Server *echo.Echo

	cancel        context.CancelFunc
	scheduler     gocron.Scheduler
	traceProvider *trace.TracerProvider
}

func setupLogger(level string) {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	log.Logger = logger
}

func (app *App) Start() error {
	setupLogger(app.Config.LogLevel)

	ctx, cancel := context.WithCancel(context.Background())
	app.cancel = cancel

	if err := schema.Migrate(ctx, app.DB); err != nil {
		return fmt.Errorf("migrating schema: %w", err)
	}

	e := echo.New()
	e.Validator = utils.CreateValidator()
	app.Server = e

	traceProvider, err := tracing.InitTracing(app.Config.TracingConfig.CollectorHost)
	if err != nil {
		log.Error().Err(err).Msg("Failed to initialize tracing")
	} else {
		app.traceProvider = traceProvider
		tracer := traceProvider.Tracer(tracing.ServiceName)

		e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error {
				// span creation and naming
				ctx, span := tracer.Start(c.Request().Context(), fmt.Sprintf("[%s] %s", c.Request().Method, c.Path()))
				defer span.End()

				req := c.Request()
				c.SetRequest(req.WithContext(ctx))

				return next(c)
			}
		})
	}

	// Used empty string so that metrics are not prefixed with the service name
	e.Use(echoprometheus.NewMiddleware(""))

	go func() {
		metrics := echo.New()
		metrics.GET("/metrics", echoprometheus.NewHandler())
		if err := metrics.Start(fmt.Sprintf(":%s", app.Config.MetricsPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start metrics server")
		}
	}()

	e.Use(localmiddleware.Logger)

	ossStorage, err := objectstorage.CreateOSSStorage(app.Config.OSSConfig)
	if err != nil {
		return fmt.Errorf("creating object storage: %w", err)
	}
	storage := objectstorage.WithCircuitBreaker(ossStorage, "object-storage")

	kafkaProducer, err := kafka.CreateKafkaProducer(app.Config)
	if err != nil {
		return fmt.Errorf("connecting to kafka: %w", err)
	}
	publisher := kafka.CreatePublisher(kafkaProducer)
	kafkaReader := kafka.CreateKafkaReader(app.Config)

	var notifier service.Notifier = mail.NoopNotifier{}
	if app.Config.SMTPConfig.Host != "" {
		notifier = mail.CreateSMTPNotifier(app.Config.SMTPConfig)
	}

	articleRepo := repository.CreateArticleRepository(app.DB)
	memberRepo := repository.CreateMemberRepository(app.DB)

	articleSvc := service.CreateArticleService(articleRepo, memberRepo, storage, publisher, app.Config.ArticleConfig)
	offerSvc := service.CreateOfferService(articleRepo, memberRepo, notifier)
	memberSvc := service.CreateMemberService(memberRepo, storage, *app.Config)
	janitor := service.CreateImageJanitor(articleRepo, storage, kafkaReader, app.Config.ArticleConfig, app.Config.ReaperConfig)

	g := e.Group("/api/v1")
	auth := localmiddleware.CreateAuth(app.Config.JWTConfig.JWTSecret)

	controller.CreateArticleController(g, articleSvc, auth)
	controller.CreateOfferController(g, offerSvc, auth)
	controller.CreateMemberController(g, memberSvc, auth)

	g.GET("/ping", func(c echo.Context) error {
		return response.WriteSuccessResponse(c, "Hello, World!", nil)
	})

	go janitor.ConsumeEvent(ctx)

	s, err := gocron.NewScheduler()
	if err != nil {
		return fmt.Errorf("creating scheduler: %w", err)
	}

	_, err = s.NewJob(
		gocron.DurationJob(
			time.Duration(app.Config.ReaperConfig.IntervalMinutes)*time.Minute,
		),
		gocron.NewTask(
			func() {
				if _, err := janitor.ReapOrphanImages(ctx); err != nil {
					log.Error().Err(err).Str("component", "ReapOrphanImages").Msg("")
				}
			},
		),
	)
	if err != nil {
		return fmt.Errorf("scheduling image reaper: %w", err)
	}

	s.Start()
	app.scheduler = s

	if err := e.Start(fmt.Sprintf(":%s", app.Config.ServicePort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func (app *App) StopServer() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if app.cancel != nil {
		app.cancel()
	}

	if app.scheduler != nil {
		if err := app.scheduler.Shutdown(); err != nil {
			log.Error().Err(err).Msg("Failed to shutdown scheduler")
		}
	}

	if kafka.KafkaReader != nil {
		kafka.KafkaReader.Close()
	}
	if kafka.KafkaConn != nil {
		kafka.KafkaConn.Close()
	}

	if app.traceProvider != nil {
		if err := app.traceProvider.Shutdown(ctx); err != nil {
			log.Error().Err(err).Msg("Failed to shutdown tracing")
		}
	}

	if app.Server == nil {
		return nil
	}
	return app.Server.Shutdown(ctx)
}
