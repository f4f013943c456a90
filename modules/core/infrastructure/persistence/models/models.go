package models

import (
	"database/sql"
	"time"
)

type Workspace struct {
	ID                    string
	Name                  string
	Subdomain             string
	CustomDomain          sql.NullString
	IsCustomDomainEnabled bool
	IsActive              bool
	CreatedAt             time.Time
	UpdatedAt             time.Time
}
