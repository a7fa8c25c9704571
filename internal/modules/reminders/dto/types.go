package dto

import "time"

type Reminder struct {
	ID        string
	Title     string
	Time      string
	Days      []int
	Enabled   bool
	CreatedAt time.Time
}

type AddReminderInput struct {
	Title string
	Time  string
	Days  []int
}

type UpdateReminderInput struct {
	ID      string
	Title   *string
	Time    *string
	Days    []int
	Enabled *bool
}

type Occurrence struct {
	Reminder Reminder
	At       time.Time
}
