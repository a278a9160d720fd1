package remote

import "time"

// SessionModel is the GORM model for the coaching sessions table
type SessionModel struct {
	ClientID             string          `gorm:"not null;default:''"`
	ClientName           string          `gorm:"not null;default:''"`
	CoachID              string          `gorm:"not null;index:idx_coach_date"`
	CreatedAt            time.Time
	CurrentExerciseIndex int             `gorm:"not null;default:0"`
	Date                 string          `gorm:"not null;index:idx_coach_date"`
	Exercises            []ExerciseModel `gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE"`
	GymName              string          `gorm:"not null;default:''"`
	ID                   string          `gorm:"primaryKey"`
	UpdatedAt            time.Time
}

// TableName specifies the table name for GORM
func (SessionModel) TableName() string { return "sessions" }

// ExerciseModel is the GORM model for the session exercises table
type ExerciseModel struct {
	Completed bool      `gorm:"not null;default:false"`
	CreatedAt time.Time
	ID        string    `gorm:"primaryKey"`
	Name      string    `gorm:"not null"`
	Position  int       `gorm:"not null;default:0"`
	Reps      int       `gorm:"not null;default:0"`
	SessionID string    `gorm:"not null;index"`
	Sets      int       `gorm:"not null;default:0"`
	Skipped   bool      `gorm:"not null;default:false"`
	UpdatedAt time.Time
	WeightKg  float64   `gorm:"not null;default:0"`
}

// TableName specifies the table name for GORM
func (ExerciseModel) TableName() string { return "session_exercises" }
