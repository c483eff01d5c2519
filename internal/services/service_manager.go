package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/VibeFlow-2025/eduvibe-service/internal/cache"
	"github.com/VibeFlow-2025/eduvibe-service/internal/events"
	"github.com/VibeFlow-2025/eduvibe-service/internal/repositories"
	"github.com/VibeFlow-2025/eduvibe-service/internal/validator"
)

// ServiceManagerConfig holds configuration for the service manager
type ServiceManagerConfig struct {
	Mentor ServiceConfig

	// DefaultHourlyRate applies to mentors who register without a rate.
	DefaultHourlyRate float64
	// BookingLocation is the zone session dates and times are read in.
	BookingLocation *time.Location
}

type ServiceConfig struct {
	CacheEnabled bool
	CacheTTL     time.Duration
}

// Dependencies groups what every service is built from
type Dependencies struct {
	Repo           repositories.Repository
	CacheManager   *cache.CacheManager
	EventPublisher events.EventPublisher
	Logger         *slog.Logger
	Validator      *validator.Validator
}

// serviceManager implements ServiceManager interface
type serviceManager struct {
	deps   Dependencies
	config ServiceManagerConfig

	// Service instances
	registrationService RegistrationService
	profileService      ProfileService
	mentorService       MentorService
	sessionService      SessionService
	dashboardService    DashboardService

	// Lifecycle management
	initialized bool
	shutdown    bool
	mu          sync.RWMutex
}

// NewServiceManager creates a new service manager with all dependencies
func NewServiceManager(deps Dependencies, config ServiceManagerConfig) ServiceManager {
	if deps.CacheManager == nil || !config.Mentor.CacheEnabled {
		deps.CacheManager = cache.NewCacheManager(nil)
	}
	if deps.Validator == nil {
		deps.Validator = validator.New()
	}
	if config.BookingLocation == nil {
		config.BookingLocation = time.UTC
	}

	return &serviceManager{
		deps:   deps,
		config: config,
	}
}

// NewDefaultServiceManager creates a service manager with default configuration
func NewDefaultServiceManager(deps Dependencies) ServiceManager {
	return NewServiceManager(deps, ServiceManagerConfig{
		Mentor: ServiceConfig{
			CacheEnabled: true,
			CacheTTL:     cache.MentorCacheConfig.TTL,
		},
		DefaultHourlyRate: 25,
		BookingLocation:   time.UTC,
	})
}

// Initialize sets up all services and their dependencies
func (sm *serviceManager) Initialize(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if sm.deps.Repo == nil {
		return fmt.Errorf("failed to initialize services: repository is required")
	}
	if sm.deps.EventPublisher == nil {
		return fmt.Errorf("failed to initialize services: event publisher is required")
	}

	sm.deps.Logger.Info("Initializing service manager")

	d := sm.deps
	sm.registrationService = NewRegistrationService(d.Repo, d.CacheManager, d.EventPublisher, d.Logger, d.Validator, sm.config.DefaultHourlyRate)
	sm.profileService = NewProfileService(d.Repo, d.Logger)
	sm.mentorService = NewMentorService(d.Repo, d.CacheManager, sm.config.Mentor.CacheTTL, d.Logger, d.Validator)
	sm.sessionService = NewSessionService(d.Repo, d.EventPublisher, d.Logger, d.Validator, sm.config.BookingLocation)
	sm.dashboardService = NewDashboardService(d.Repo, d.Logger)

	sm.initialized = true
	sm.deps.Logger.Info("Service manager initialized successfully",
		"mentor_cache", d.CacheManager.Mentor.Available(),
		"booking_location", sm.config.BookingLocation.String())

	return nil
}

// Service getters
func (sm *serviceManager) Registration() RegistrationService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	sm.mustBeInitialized()
	return sm.registrationService
}

func (sm *serviceManager) Profile() ProfileService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	sm.mustBeInitialized()
	return sm.profileService
}

func (sm *serviceManager) Mentor() MentorService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	sm.mustBeInitialized()
	return sm.mentorService
}

func (sm *serviceManager) Session() SessionService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	sm.mustBeInitialized()
	return sm.sessionService
}

func (sm *serviceManager) Dashboard() DashboardService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	sm.mustBeInitialized()
	return sm.dashboardService
}

func (sm *serviceManager) mustBeInitialized() {
	if !sm.initialized {
		panic("service manager not initialized")
	}
}

// Health and lifecycle
func (sm *serviceManager) HealthCheck(ctx context.Context) error {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		return fmt.Errorf("service manager not initialized")
	}

	if sm.shutdown {
		return fmt.Errorf("service manager is shut down")
	}

	if err := sm.deps.Repo.Ping(ctx); err != nil {
		return fmt.Errorf("repository health check failed: %w", err)
	}

	return nil
}

// Shutdown closes the event publisher. The repository is owned by its
// manager and closed there.
func (sm *serviceManager) Shutdown(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.shutdown {
		return nil
	}

	sm.deps.Logger.Info("Shutting down service manager")

	if sm.deps.EventPublisher != nil {
		if err := sm.deps.EventPublisher.Close(); err != nil {
			sm.deps.Logger.Error("Failed to close event publisher", "error", err)
		}
	}

	sm.shutdown = true
	sm.deps.Logger.Info("Service manager shut down completed")

	return nil
}
