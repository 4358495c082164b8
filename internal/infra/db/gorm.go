package db

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/imRishabh-ofc/narad-muni/internal/domain"
)

type gormZapWriter struct {
	logger *zap.Logger
}

func (w gormZapWriter) Printf(format string, args ...interface{}) {
	w.logger.Sugar().Infof(format, args...)
}

// Open opens the shared store file in WAL mode. Two processes write to
// this file (the web front end and this monitor), so the connection
// carries a busy timeout instead of relying on sqlite defaults.
func Open(path string, log *zap.Logger) (*gorm.DB, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on", path)

	gormLogger := logger.New(
		gormZapWriter{logger: log},
		logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: gormLogger})
	if err != nil {
		return nil, err
	}

	// One writer at a time keeps the cross-process discipline simple;
	// WAL lets the front end's readers proceed meanwhile.
	sqlDB, err := conn.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	if err := conn.AutoMigrate(&userModel{}, &holdingModel{}, &alertModel{}); err != nil {
		return nil, err
	}

	return conn, nil
}

// Store bundles the repositories and runs per-cycle transactions.
type Store struct {
	db *gorm.DB
}

func NewStore(conn *gorm.DB) *Store {
	return &Store{db: conn}
}

func (s *Store) Repositories() domain.Repositories {
	return repositoriesFor(s.db)
}

// InTx executes fn against repositories bound to a single transaction.
func (s *Store) InTx(ctx context.Context, fn func(domain.Repositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(repositoriesFor(tx))
	})
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func repositoriesFor(conn *gorm.DB) domain.Repositories {
	return domain.Repositories{
		Users:    NewUserRepository(conn),
		Holdings: NewHoldingRepository(conn),
		Alerts:   NewAlertRepository(conn),
	}
}

var _ domain.TxRunner = (*Store)(nil)
