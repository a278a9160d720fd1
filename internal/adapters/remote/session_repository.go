package remote

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/renato0307/spotter/internal/adapters/storage"
	"github.com/renato0307/spotter/internal/domain"
	"github.com/renato0307/spotter/internal/logging"
	"github.com/renato0307/spotter/internal/paths"
	"github.com/renato0307/spotter/internal/ports"
)

// SessionRepository implements ports.SessionRepository on a relational database.
// Postgres is the hosted store; SQLite is used for development and tests.
type SessionRepository struct {
	db *gorm.DB
}

// Verify interface compliance at compile time
var _ ports.SessionRepository = (*SessionRepository)(nil)

// IsPostgresDSN reports whether dsn points at Postgres rather than a SQLite file
func IsPostgresDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") ||
		strings.HasPrefix(dsn, "postgresql://") ||
		strings.Contains(dsn, "host=")
}

// NewSessionRepository opens the session store behind dsn and migrates its schema
func NewSessionRepository(dsn string) (*SessionRepository, error) {
	var dialector gorm.Dialector
	if IsPostgresDSN(dsn) {
		dialector = postgres.Open(dsn)
	} else {
		dbPath := paths.ExpandPath(dsn)
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
		dialector = sqlite.Open(dbPath)
	}

	// No ping on open: the client must start offline
	db, err := gorm.Open(dialector, &gorm.Config{
		DisableAutomaticPing: true,
		PrepareStmt:          false,
		NowFunc:              func() time.Time { return time.Now().UTC() },
		Logger:               storage.NewGormLogger(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open session store: %w", err)
	}

	if !IsPostgresDSN(dsn) {
		db.Exec("PRAGMA journal_mode=WAL")
		db.Exec("PRAGMA busy_timeout=5000")
		db.Exec("PRAGMA foreign_keys=ON")
	}

	if err := db.AutoMigrate(&SessionModel{}, &ExerciseModel{}); err != nil {
		switch {
		case strings.Contains(err.Error(), "already exists"):
		case IsPostgresDSN(dsn):
			logging.Logger.Warn("Session store unreachable, schema not migrated", "error", err)
		default:
			return nil, fmt.Errorf("failed to migrate session schema: %w", err)
		}
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	return &SessionRepository{db: db}, nil
}

// Close closes the database connection
func (r *SessionRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ping checks that the store answers
func (r *SessionRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func preloadExercises(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

// FetchByIDs implements SessionReader.FetchByIDs
func (r *SessionRepository) FetchByIDs(ctx context.Context, ids []string) ([]domain.CoachingSession, error) {
	if len(ids) == 0 {
		return []domain.CoachingSession{}, nil
	}

	var models []SessionModel
	err := storage.WithRetry(func() error {
		return r.db.WithContext(ctx).
			Preload("Exercises", preloadExercises).
			Where("id IN ?", ids).
			Find(&models).Error
	}, 3)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sessions: %w", err)
	}

	byID := make(map[string]SessionModel, len(models))
	for _, m := range models {
		byID[m.ID] = m
	}

	result := make([]domain.CoachingSession, 0, len(models))
	for _, id := range ids {
		m, ok := byID[id]
		if !ok {
			logging.Logger.Warn("Session referenced by live run not found", "session_id", id)
			continue
		}
		result = append(result, sessionModelToDomain(m))
	}
	return result, nil
}

// ListByDate implements SessionReader.ListByDate
func (r *SessionRepository) ListByDate(ctx context.Context, coachID, date string) ([]domain.CoachingSession, error) {
	var models []SessionModel
	err := storage.WithRetry(func() error {
		return r.db.WithContext(ctx).
			Preload("Exercises", preloadExercises).
			Where("coach_id = ? AND date = ?", coachID, date).
			Order("client_name ASC").
			Find(&models).Error
	}, 3)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions for %s: %w", date, err)
	}

	result := make([]domain.CoachingSession, len(models))
	for i, m := range models {
		result[i] = sessionModelToDomain(m)
	}
	return result, nil
}

// Create implements SessionWriter.Create.
// Missing session and exercise IDs are generated.
func (r *SessionRepository) Create(ctx context.Context, session domain.CoachingSession) (domain.CoachingSession, error) {
	if session.ID == "" {
		session.ID = uuid.New().String()
	}
	for i := range session.Exercises {
		if session.Exercises[i].ID == "" {
			session.Exercises[i].ID = uuid.New().String()
		}
		session.Exercises[i].Position = i
	}

	model := domainToSessionModel(session)
	err := storage.WithRetry(func() error {
		if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
			return fmt.Errorf("failed to create session: %w", err)
		}
		return nil
	}, 3)
	if err != nil {
		return domain.CoachingSession{}, err
	}
	return sessionModelToDomain(model), nil
}

// UpdateProgress implements ProgressWriter.UpdateProgress
func (r *SessionRepository) UpdateProgress(ctx context.Context, update ports.ProgressUpdate) error {
	return storage.WithRetry(func() error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			result := tx.Model(&SessionModel{}).
				Where("id = ?", update.SessionID).
				Updates(map[string]any{
					"current_exercise_index": update.CurrentExerciseIndex,
					"updated_at":             time.Now().UTC(),
				})
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return fmt.Errorf("%w: %s", domain.ErrSessionNotFound, update.SessionID)
			}

			if update.ExerciseID == "" {
				return nil
			}

			result = tx.Model(&ExerciseModel{}).
				Where("id = ? AND session_id = ?", update.ExerciseID, update.SessionID).
				Updates(map[string]any{
					"completed":  update.Outcome == domain.OutcomeCompleted,
					"skipped":    update.Outcome == domain.OutcomeSkipped,
					"updated_at": time.Now().UTC(),
				})
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return fmt.Errorf("exercise %s not found in session %s", update.ExerciseID, update.SessionID)
			}
			return nil
		})
	}, 3)
}

// IsNotFound reports whether err means a session is missing
func IsNotFound(err error) bool {
	return errors.Is(err, domain.ErrSessionNotFound) || errors.Is(err, gorm.ErrRecordNotFound)
}
