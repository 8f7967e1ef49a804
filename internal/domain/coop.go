package domain

import "time"

type Coop struct {
	ID         int64
	Name       string
	NumBirds   int
	HasRooster bool
	CreatedAt  time.Time
}
