package service

import (
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"ui_review_backend/internal/config"
	"ui_review_backend/internal/model"
	"ui_review_backend/pkg/logger"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	logger.Log = zap.NewNop()
	os.Exit(m.Run())
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.Participant{},
		&model.Submission{},
		&model.AccessLog{},
		&model.Admin{},
	))

	return db
}

func testConfig() *config.Config {
	return &config.Config{
		Study: config.StudyConfig{
			StartDate:           "2026-01-01",
			Timezone:            "UTC",
			MinWords:            10,
			MaxWords:            500,
			SimilarityThreshold: 0.8,
			GoalTarget:          80,
			GoalThreshold:       7,
			TaskPoolMin:         1,
			TaskPoolMax:         7,
			FeedbackTaskPoolMin: 0,
		},
	}
}

// testClock returns a clock frozen at noon of the given study day.
func testClock(t *testing.T, dayIdx int) *StudyClock {
	t.Helper()

	clock, err := NewStudyClock("2026-01-01", "UTC")
	require.NoError(t, err)
	clock.Now = func() time.Time {
		return time.Date(2026, 1, 1+dayIdx, 12, 0, 0, 0, time.UTC)
	}
	return clock
}

// fixedIntn plays back a scripted draw sequence.
type fixedIntn struct {
	vals []int
	pos  int
}

func (f *fixedIntn) Intn(n int) int {
	if f.pos >= len(f.vals) {
		return 0
	}
	v := f.vals[f.pos] % n
	f.pos++
	return v
}

// words returns a review-length text of n distinct words.
func words(n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = fmt.Sprintf("word%d", i)
	}
	return strings.Join(parts, " ")
}

func intPtr(n int) *int {
	return &n
}
