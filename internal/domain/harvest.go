package domain

import "time"

type Harvest struct {
	ID             int64
	CoopID         int64
	CoopName       string
	EggsCollected  int
	CollectionDate time.Time
	Notes          *string
	CreatedAt      time.Time
}
