package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Solution is one user's progress record against one problem. Result is a
// percentage in [0,100]; SolveDate is set only when the result reached 100.
type Solution struct {
	ID        string     `gorm:"type:uuid;primary_key" json:"id"`
	ProblemID int        `gorm:"not null;uniqueIndex:idx_solutions_problem_user;column:problem_id" json:"problem_id"`
	UserID    string     `gorm:"type:uuid;not null;uniqueIndex:idx_solutions_problem_user;column:user_id" json:"user_id"`
	Result    int        `gorm:"type:integer;not null" json:"result"`
	SolveDate *time.Time `gorm:"type:date;column:solve_date" json:"solve_date"`
	Problem   *Problem   `gorm:"foreignKey:ProblemID" json:"problem,omitempty"`
	User      *User      `gorm:"foreignKey:UserID" json:"-"`
}

func (s *Solution) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
