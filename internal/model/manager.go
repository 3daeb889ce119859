package model

// Manager is the single persisted record of the service.
// Like every type in this package it carries no persistence tags.
type Manager struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	ContractsCount int    `json:"contracts_count"`
}

// ManagerInput is the body accepted when creating a manager.
// Any id sent by the client is ignored; the service assigns one.
type ManagerInput struct {
	Name           string `json:"name" validate:"required,notblank,max=255"`
	ContractsCount int    `json:"contracts_count" validate:"gte=0,lte=2147483647"`
}

// ManagerPatch is a partial update. Nil fields are left untouched.
type ManagerPatch struct {
	Name           *string `json:"name,omitempty" validate:"omitempty,notblank,max=255"`
	ContractsCount *int    `json:"contracts_count,omitempty" validate:"omitempty,gte=0,lte=2147483647"`
}

// Empty reports whether the patch changes nothing.
func (p ManagerPatch) Empty() bool {
	return p.Name == nil && p.ContractsCount == nil
}
