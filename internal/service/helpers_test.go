package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"auction-desk-be/internal/config"
	"auction-desk-be/internal/dto"
	"auction-desk-be/internal/model"
	"auction-desk-be/internal/repository/unitofwork"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

// capturePublisher records every frame the engine emits so tests can assert
// on broadcast behavior without a running bus.
type capturePublisher struct {
	mu        sync.Mutex
	snapshots []*dto.SnapshotResponse
	logs      []string
}

func (p *capturePublisher) PublishSnapshot(ctx context.Context, snapshot *dto.SnapshotResponse) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.snapshots = append(p.snapshots, snapshot)
	return nil
}

func (p *capturePublisher) PublishLog(ctx context.Context, message string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.logs = append(p.logs, message)
	return nil
}

func (p *capturePublisher) snapshotCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.snapshots)
}

func (p *capturePublisher) lastLog() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.logs) == 0 {
		return ""
	}
	return p.logs[len(p.logs)-1]
}

func (p *capturePublisher) lastSnapshot() *dto.SnapshotResponse {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.snapshots) == 0 {
		return nil
	}
	return p.snapshots[len(p.snapshots)-1]
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Lot{},
		&model.Buyer{},
		&model.BidEntry{},
		&model.PacingRecord{},
		&model.AuctionSession{},
		&model.LotImage{},
		&model.OperationLog{},
	))
	return db
}

func newTestFactory(t *testing.T) unitofwork.RepositoryFactory {
	t.Helper()
	return unitofwork.NewRepositoryFactory(newTestDB(t))
}

func newTestConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		App: config.AppConfig{Environment: "test"},
		Auth: config.AuthConfig{
			JwtSecret:         "test-secret",
			TokenTTLHours:     24,
			AdminUsername:     "admin",
			AdminPassword:     "admin123",
			MaxLoginAttempts:  5,
			LockoutWindowMins: 15,
		},
		Media: config.MediaConfig{
			ImageDir:     t.TempDir(),
			MaxImageSize: 10 * 1024 * 1024,
		},
	}
}

// testClock hands out strictly increasing timestamps so ledger ordering is
// deterministic.
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock(start time.Time) *testClock {
	return &testClock{now: start}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Millisecond)
	return c.now
}

func (c *testClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
