package problems

import "tracker/models"

// Constants for error messages
const (
	ErrProblemNotFound   = "Problem not found"
	ErrInvalidProblemID  = "Invalid problem id"
	ErrFailedToGetStats  = "Failed to get problem statistics"
	ErrFailedToGetList   = "Failed to get problem list"
	ErrNoUsernameClaimed = "No training site username claimed yet, run a sync first"
)

// ProblemColumns is the problem list split into three display columns
type ProblemColumns struct {
	Columns    [3][]models.Problem `json:"columns"`
	NoProblems bool                `json:"no_problems"`
}
