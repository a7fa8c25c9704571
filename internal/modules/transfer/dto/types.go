package dto

import "time"

type Summary struct {
	Sessions   int
	Songs      int
	Goals      int
	ExportedAt time.Time
}
