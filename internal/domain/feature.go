package domain

import "time"

// Feature is a unit of scope committed to a plan, optionally scheduled
// into one of its phases.
type Feature struct {
	ID        string
	PlanID    string
	PhaseID   *string
	Title     string
	Status    FeatureStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Product groups plans that ship the same thing.
type Product struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
