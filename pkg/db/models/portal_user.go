package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// PortalUser is a login within a tenant. CustomerID links the user to the
// customer account used for pricing; it may be absent for staff users.
// Permissions mirrors the capability set the RBAC collaborator grants; the
// core only checks membership.
type PortalUser struct {
	ID          uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	TenantID    uuid.UUID      `gorm:"column:tenant_id;type:uuid;not null;index"`
	Email       string         `gorm:"column:email;not null"`
	DisplayName string         `gorm:"column:display_name;not null"`
	CustomerID  *uuid.UUID     `gorm:"column:customer_id;type:uuid"`
	Permissions pq.StringArray `gorm:"column:permissions;type:text[]"`
	IsActive    bool           `gorm:"column:is_active;not null;default:true"`
	CreatedAt   time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
