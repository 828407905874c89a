package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GadgetStatus enum
type GadgetStatus string

const (
	GadgetAvailable      GadgetStatus = "Available"
	GadgetDeployed       GadgetStatus = "Deployed"
	GadgetDestroyed      GadgetStatus = "Destroyed"
	GadgetDecommissioned GadgetStatus = "Decommissioned"
)

// GadgetStatuses lists every status a gadget can be stored with
var GadgetStatuses = []GadgetStatus{
	GadgetAvailable,
	GadgetDeployed,
	GadgetDestroyed,
	GadgetDecommissioned,
}

// Valid reports whether s is one of the known statuses
func (s GadgetStatus) Valid() bool {
	for _, known := range GadgetStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Gadget model
type Gadget struct {
	ID               string       `gorm:"primaryKey;type:varchar(36);column:id" json:"id"`
	Name             string       `gorm:"column:name;not null" json:"name"`
	Status           GadgetStatus `gorm:"column:status;type:varchar(32);not null;default:Available;index" json:"status"`
	DecommissionedAt *time.Time   `gorm:"column:decommissioned_at" json:"decommissionedAt"`

	CreatedAt time.Time `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (Gadget) TableName() string {
	return "gadgets"
}

// BeforeCreate assigns a UUID when none is set
func (g *Gadget) BeforeCreate(tx *gorm.DB) error {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	return nil
}
