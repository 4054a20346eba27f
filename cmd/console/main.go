package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jonboulle/clockwork"

	_ "github.com/jhoicas/user-console/docs"
	"github.com/jhoicas/user-console/internal/application/auth"
	"github.com/jhoicas/user-console/internal/application/export"
	"github.com/jhoicas/user-console/internal/application/navigation"
	"github.com/jhoicas/user-console/internal/application/session"
	"github.com/jhoicas/user-console/internal/application/usecase"
	"github.com/jhoicas/user-console/internal/application/usercache"
	"github.com/jhoicas/user-console/internal/infrastructure/i18n"
	"github.com/jhoicas/user-console/internal/infrastructure/mockapi"
	infrapdf "github.com/jhoicas/user-console/internal/infrastructure/pdf"
	"github.com/jhoicas/user-console/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/user-console/internal/interfaces/http"
	"github.com/jhoicas/user-console/pkg/config"
	"github.com/jhoicas/user-console/pkg/logger"
)

// @title        User Console API
// @version      1.0
// @description  Consola de administración de usuarios sobre un backend simulado.
// @BasePath     /
// @securityDefinitions.apikey  Bearer
// @in           header
// @name         Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	clk := clockwork.NewRealClock()

	// Backend simulado: latencia, fallos transitorios y datos semilla configurables.
	store := mockapi.New(
		mockapi.WithGeneratedUsers(cfg.MockAPI.SeedCount),
		mockapi.WithUniformLatency(cfg.MockAPI.DelayMin(), cfg.MockAPI.DelayMax()),
		mockapi.WithErrorRate(cfg.MockAPI.ErrorRate),
		mockapi.WithRandomSeed(uint64(cfg.MockAPI.RandomSeed)),
		mockapi.WithClock(clk),
		mockapi.WithLogger(log),
	)

	// Sesión en memoria del proceso; preferencias en archivo durable.
	guard := session.NewGuard(storage.NewMemoryStorage(),
		session.WithClock(clk),
		session.WithTimeout(cfg.Session.Timeout()),
		session.WithLogger(log),
		session.WithOnExpire(func() {
			log.Info().Msg("sesión cerrada por inactividad")
		}),
	)
	prefStorage, err := storage.NewPreferenceFile(cfg.Preferences.FilePath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.Preferences.FilePath).Msg("abrir archivo de preferencias")
	}

	roleUC := usecase.NewRoleUseCase(store, log)
	ctx, cancelRoles := context.WithTimeout(context.Background(), 5*time.Second)
	if err := roleUC.FetchRoles(ctx); err != nil {
		log.Warn().Err(err).Msg("catálogo de roles no disponible al arrancar; se usarán los roles por defecto")
	}
	cancelRoles()

	authUC, err := auth.NewAuthUseCase(store, guard, roleUC, auth.Config{
		JWT: auth.JWTConfig{
			Secret:     cfg.JWT.Secret,
			ExpMinutes: cfg.JWT.Expiration,
			Issuer:     cfg.JWT.Issuer,
		},
		DemoPassword: cfg.Auth.DemoPassword,
	}, clk, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar auth")
	}

	cache := usercache.New(store,
		usercache.WithLogger(log),
		usercache.WithResolutionHook(func(op usercache.PendingOperation) {
			log.Debug().Int("user_id", op.ID).Str("kind", string(op.Kind)).Str("state", string(op.State)).Msg("operación resuelta")
		}),
	)
	userUC := usecase.NewUserUseCase(cache)
	prefUC := usecase.NewPreferenceUseCase(prefStorage)

	// PDF y CSV de exportación
	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	exportUC := export.NewUseCase(pdfGenerator, i18n.New(), clk)

	authorizer := navigation.NewAuthorizer(guard, navigation.DefaultRoutes(), log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "User Console API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		UserUC:       userUC,
		RoleUC:       roleUC,
		PreferenceUC: prefUC,
		ExportUC:     exportUC,
		Navigation:   authorizer,
		Guard:        guard,
		JWTSecret:    cfg.JWT.Secret,
		AppName:      cfg.App.Name,
		Env:          cfg.App.Env,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	guard.Logout()

	log.Info().Msg("aplicación detenida")
}
