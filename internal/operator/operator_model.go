// internal/operator/operator_model.go
package operator

import (
	"gorm.io/gorm"
)

// Operator is a broadcast operator account. The username is the actor
// recorded on every action log entry.
type Operator struct {
	gorm.Model
	Username     string `json:"username" gorm:"uniqueIndex;size:64;not null"`
	PasswordHash string `json:"-" gorm:"not null"`
	DisplayName  string `json:"display_name"`
	Role         string `json:"role" gorm:"default:'operator'"`
}
