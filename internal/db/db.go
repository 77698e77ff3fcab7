package db

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/BruksfildServices01/medical-scheduler/internal/audit"
	"github.com/BruksfildServices01/medical-scheduler/internal/config"
	"github.com/BruksfildServices01/medical-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/medical-scheduler/internal/domain/doctor"
	"github.com/BruksfildServices01/medical-scheduler/internal/domain/user"
	"github.com/BruksfildServices01/medical-scheduler/internal/infra/mongostore"
	"github.com/BruksfildServices01/medical-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/medical-scheduler/internal/models"
)

// Stores bundles the repositories of whichever backend DB_DRIVER selects.
type Stores struct {
	Users        user.Repository
	Doctors      doctor.Repository
	Appointments appointment.Store
	Audit        audit.Store

	close func(context.Context) error
}

func (s *Stores) Close(ctx context.Context) error {
	if s.close == nil {
		return nil
	}
	return s.close(ctx)
}

// Open connects to the configured backend and migrates its schema.
func Open(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Stores, error) {
	if cfg.DBDriver == config.DriverMongo {
		return openMongo(ctx, cfg, log)
	}

	gdb, err := NewDB(cfg)
	if err != nil {
		return nil, err
	}
	if err := Migrate(gdb); err != nil {
		return nil, err
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	log.Info().Str("driver", cfg.DBDriver).Msg("database ready")

	return &Stores{
		Users:        repository.NewUserGormRepository(gdb),
		Doctors:      repository.NewDoctorGormRepository(gdb),
		Appointments: repository.NewAppointmentGormRepository(gdb),
		Audit:        audit.NewGormStore(gdb),
		close:        func(context.Context) error { return sqlDB.Close() },
	}, nil
}

func NewDB(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case config.DriverPostgres:
		dialector = postgres.Open(cfg.DBUrl)
	case config.DriverSQLite:
		dialector = sqlite.Open(cfg.DBUrl)
	default:
		return nil, fmt.Errorf("unsupported relational driver %q", cfg.DBDriver)
	}

	logLevel := logger.Warn
	if cfg.IsProduction() {
		logLevel = logger.Error
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		PrepareStmt: cfg.DBDriver == config.DriverPostgres,
		Logger:      logger.Default.LogMode(logLevel),
		NowFunc:     func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	if cfg.DBDriver == config.DriverSQLite {
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(10)
		sqlDB.SetMaxIdleConns(5)
	}
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}

func openMongo(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Stores, error) {
	store, err := mongostore.Connect(ctx, cfg.MongoURL, cfg.MongoDatabase)
	if err != nil {
		return nil, err
	}
	if err := store.EnsureIndexes(ctx); err != nil {
		_ = store.Disconnect(ctx)
		return nil, err
	}

	log.Info().Str("driver", cfg.DBDriver).Str("database", cfg.MongoDatabase).Msg("database ready")

	return &Stores{
		Users:        store.Users(),
		Doctors:      store.Doctors(),
		Appointments: store.Appointments(),
		Audit:        store.AuditLogs(),
		close:        store.Disconnect,
	}, nil
}
