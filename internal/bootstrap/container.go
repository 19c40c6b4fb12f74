package bootstrap

import (
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"datakit/internal/config"
	"datakit/internal/controller"
	"datakit/internal/model"
	"datakit/internal/pkg/logger"
	"datakit/internal/service"
	"datakit/pkg/repository"
)

// Container wires the dependency graph once at startup.
type Container struct {
	Logger             logger.ILogger
	EmployeeRepository repository.Repository[model.Employee, uuid.UUID]
	EmployeeService    service.IEmployeeService
	EmployeeController controller.IEmployeeController
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	zapLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	employeeRepo := NewEmployeeRepository(db, cfg, zapLogger)
	employeeService := service.NewEmployeeService(employeeRepo, zapLogger)
	employeeController := controller.NewEmployeeController(employeeService)

	return &Container{
		Logger:             zapLogger,
		EmployeeRepository: employeeRepo,
		EmployeeService:    employeeService,
		EmployeeController: employeeController,
	}
}

// NewEmployeeRepository picks the cache backend from config: redis when a URL
// is set, an in-process cache otherwise. A malformed URL falls back to the
// in-process cache with a warning.
func NewEmployeeRepository(db *gorm.DB, cfg *config.Config, log logger.ILogger) repository.Repository[model.Employee, uuid.UUID] {
	base := repository.NewGormRepository[model.Employee, uuid.UUID](db)

	var cache repository.Cache
	if cfg.Cache.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.Cache.RedisURL)
		if err != nil {
			log.Warn("Bootstrap", "Invalid REDIS_URL, falling back to in-memory cache", map[string]interface{}{"error": err.Error()})
		} else {
			cache = repository.NewRedisCache(redis.NewClient(opts), cfg.Cache.TTL)
		}
	}
	if cache == nil {
		cache = repository.NewMemoryCache(cfg.Cache.TTL, 10*cfg.Cache.TTL)
	}

	return repository.NewCachedRepository(base, cache, "employee", func(e *model.Employee) uuid.UUID {
		return e.Id
	})
}
