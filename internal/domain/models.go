package domain

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Exchange is one recorded tutoring interaction: the snippet the
// student supplied, the prompt it was rendered into, and the model's
// answer.
type Exchange struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key"`
	PromptName string    `gorm:"index"`
	Input      string
	Rendered   string
	Response   string
	ModelName  string
	Provider   string
	CacheHit   bool
	gorm.Model
}

// BeforeCreate assigns an ID when the caller did not.
func (e *Exchange) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
