package domain

import (
	"github.com/google/uuid"
)

// Tenant represents a business account sharing the platform.
// All schedule data is scoped by tenant to prevent cross-tenant leakage.
type Tenant struct {
	ID                  uuid.UUID
	Slug                string
	Name                string
	SlotIntervalMinutes *int // nil = use DefaultSlotIntervalMinutes
}

// EffectiveSlotInterval returns the tenant's configured slot granularity,
// falling back to the platform default
func (t *Tenant) EffectiveSlotInterval() int {
	if t.SlotIntervalMinutes == nil || *t.SlotIntervalMinutes <= 0 {
		return DefaultSlotIntervalMinutes
	}
	return *t.SlotIntervalMinutes
}

// ProfileRole is the role of an identity within a tenant
type ProfileRole string

const (
	RoleOwner    ProfileRole = "owner"
	RoleEmployee ProfileRole = "employee"
	RoleClient   ProfileRole = "client"
)

// Profile represents an identity's membership in a tenant.
// Employee-role identities act on behalf of the business owner:
// holiday lookups resolve against the owning tenant, not the employee.
type Profile struct {
	ID       uuid.UUID
	TenantID uuid.UUID
	Role     ProfileRole
}
