package di

import (
	"context"
	"fmt"
	"time"

	"tps-admin/application/serviceimpl"
	"tps-admin/domain/services"
	"tps-admin/infrastructure/redis"
	"tps-admin/infrastructure/tpsapi"
	"tps-admin/infrastructure/viewstate"
	"tps-admin/interfaces/web/handlers"
	"tps-admin/interfaces/web/views"
	"tps-admin/pkg/config"
	"tps-admin/pkg/i18n"
	"tps-admin/pkg/logger"
	"tps-admin/pkg/scheduler"
)

const (
	viewStateSweepJob = "viewstate_sweep"
	serviceTokenTTL   = 5 * time.Minute
)

type Container struct {
	// Configuration
	Config *config.Config

	// Infrastructure
	RedisClient  *redis.RedisClient
	JobScheduler scheduler.JobScheduler
	ViewState    *viewstate.Store

	// Clients
	TPSClient *tpsapi.Client

	// Services
	CityLoader services.CityLoader

	// Presentation
	Translator *i18n.Translator
	Renderer   *views.Renderer
}

// NewContainer wraps an already loaded configuration; nil loads it from the
// environment during Initialize.
func NewContainer(cfg *config.Config) *Container {
	return &Container{Config: cfg}
}

func (c *Container) Initialize() error {
	if err := c.initConfig(); err != nil {
		return err
	}

	if err := c.initInfrastructure(); err != nil {
		return err
	}

	if err := c.initServices(); err != nil {
		return err
	}

	if err := c.initScheduler(); err != nil {
		return err
	}

	return nil
}

func (c *Container) initConfig() error {
	if c.Config == nil {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}
		c.Config = cfg
	}
	logger.Startup("config_loaded", "Configuration loaded", map[string]interface{}{
		"env":     c.Config.App.Env,
		"lang":    c.Config.App.Lang,
		"tps_api": c.Config.TPSAPI.BaseURL,
	})
	return nil
}

func (c *Container) initInfrastructure() error {
	// Initialize Redis
	if c.Config.Redis.Enabled {
		c.RedisClient = redis.NewRedisClient(redis.RedisConfig{
			Host:     c.Config.Redis.Host,
			Port:     c.Config.Redis.Port,
			Password: c.Config.Redis.Password,
			DB:       c.Config.Redis.DB,
		})

		if err := c.RedisClient.Ping(context.Background()); err != nil {
			logger.StartupWarn("redis_connection_failed", "Redis connection failed, cities will not be cached", map[string]interface{}{"error": err.Error()})
		} else {
			logger.Startup("redis_connected", "Redis connected", nil)
		}
	} else {
		logger.Startup("redis_disabled", "Redis disabled, city cache off", nil)
	}

	// Initialize TPS API client
	tokens := tpsapi.NewTokenSource(c.Config.TPSAPI.JWTSecret, serviceTokenTTL)
	c.TPSClient = tpsapi.NewClient(c.Config.TPSAPI.BaseURL, c.Config.TPSAPI.Timeout, tokens)
	logger.Startup("tps_client_initialized", "TPS API client initialized", map[string]interface{}{
		"base_url":      c.Config.TPSAPI.BaseURL,
		"service_token": tokens != nil,
	})

	c.ViewState = viewstate.NewStore(c.Config.Session.TTL)
	return nil
}

func (c *Container) initServices() error {
	var cache services.CityCache
	if c.RedisClient != nil {
		cache = redis.NewCityCache(c.RedisClient)
	}
	c.CityLoader = serviceimpl.NewCityLoader(c.TPSClient, cache, c.Config.Redis.CityTTL)

	c.Translator = i18n.New(c.Config.App.Lang)
	renderer, err := views.NewRenderer(c.Translator)
	if err != nil {
		return fmt.Errorf("failed to load templates: %w", err)
	}
	c.Renderer = renderer

	logger.Startup("services_initialized", "Services initialized", map[string]interface{}{"lang": c.Translator.Lang()})
	return nil
}

func (c *Container) initScheduler() error {
	c.JobScheduler = scheduler.NewJobScheduler()

	err := c.JobScheduler.AddJob(viewStateSweepJob, c.Config.Session.SweepCron, func() error {
		removed := c.ViewState.Sweep()
		if removed > 0 {
			logger.Scheduler("viewstate_swept", "Expired views removed", map[string]interface{}{
				"removed":   removed,
				"remaining": c.ViewState.Len(),
			})
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to schedule view state sweep: %w", err)
	}

	c.JobScheduler.Start()
	logger.Startup("scheduler_started", "Job scheduler started", nil)
	return nil
}

func (c *Container) Cleanup() error {
	logger.Startup("cleanup_started", "Starting cleanup...", nil)

	// Stop scheduler
	if c.JobScheduler != nil {
		if c.JobScheduler.IsRunning() {
			c.JobScheduler.Stop()
			logger.Startup("scheduler_stopped", "Job scheduler stopped", nil)
		} else {
			logger.Startup("scheduler_already_stopped", "Job scheduler was already stopped", nil)
		}
	}

	// Close Redis connection
	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			logger.StartupWarn("redis_close_failed", "Failed to close Redis connection", map[string]interface{}{"error": err.Error()})
		} else {
			logger.Startup("redis_closed", "Redis connection closed", nil)
		}
	}

	logger.Startup("cleanup_completed", "Cleanup completed", nil)
	return nil
}

func (c *Container) GetConfig() *config.Config {
	return c.Config
}

func (c *Container) GetHandlerServices() *handlers.Services {
	return &handlers.Services{
		Persons:    c.TPSClient,
		Cities:     c.CityLoader,
		Translator: c.Translator,
		Renderer:   c.Renderer,
		ViewState:  c.ViewState,
	}
}

func (c *Container) GetHealthHandler() *handlers.HealthHandler {
	return handlers.NewHealthHandler(c.Config.App.Name, c.TPSClient, c.RedisClient, c.ViewState, c.JobScheduler)
}
