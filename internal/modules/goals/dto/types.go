package dto

import "time"

type Goal struct {
	ID          string
	Title       string
	TargetHours float64
	Period      string
	Progress    float64
	CreatedAt   time.Time
	CompletedAt *time.Time
	Completed   bool
}

type AddGoalInput struct {
	Title       string
	TargetHours float64
	Period      string
}

type UpdateGoalInput struct {
	ID          string
	Title       *string
	TargetHours *float64
	Period      *string
}
