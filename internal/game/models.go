package game

import (
	"time"
)

// Entity is a creature record from the catalog. Records are immutable once
// the catalog has been loaded.
type Entity struct {
	ID            uint64          `json:"id"`
	Name          string          `json:"name"`
	PrimaryType   Type            `json:"type1"`
	SecondaryType Type            `json:"type2,omitempty"`
	AttackPower   float64         `json:"attack"`
	Resistances   ResistanceTable `json:"against"`
}

// BattleStatus is the lifecycle state of a battle.
type BattleStatus string

const (
	StatusPending  BattleStatus = "pending"
	StatusResolved BattleStatus = "resolved"
	StatusFailed   BattleStatus = "failed"
)

// Terminal reports whether the status can no longer change.
func (s BattleStatus) Terminal() bool {
	return s == StatusResolved || s == StatusFailed
}

// Battle is a single simulated contest between two catalog entities. The
// entities are referenced by their catalog names.
type Battle struct {
	ID         string       `json:"id" gorm:"primaryKey;size:36"`
	EntityA    string       `json:"pokemon1" gorm:"not null"`
	EntityB    string       `json:"pokemon2" gorm:"not null"`
	Status     BattleStatus `json:"status" gorm:"size:16;index;not null"`
	Winner     string       `json:"winner,omitempty"`
	Damage     float64      `json:"damage"`
	CreatedAt  time.Time    `json:"created_at"`
	ResolvedAt *time.Time   `json:"resolved_at,omitempty"`
}

// TableName keeps the GORM table name stable.
func (Battle) TableName() string { return "battles" }

// Resolution is the terminal state written back into a pending battle.
type Resolution struct {
	Status BattleStatus
	Winner string
	Damage float64
}
