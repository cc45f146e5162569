package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents an authenticated user in the system.
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Email     string         `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password  string         `gorm:"size:255;not null" json:"-"`
	Height    *int           `json:"height"`
	Weight    *int           `json:"weight"`
	BMI       *float64       `gorm:"type:decimal(5,2)" json:"bmi"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Predictions []Prediction `json:"predictions,omitempty"`
}

// Prediction is one stored risk-scoring event for a user. The five clinical
// inputs are nullable: rows written before the schema settled may miss some,
// and an absent value means unknown, never zero. Outcome and Probability are
// written together by the scorer and never updated afterwards.
type Prediction struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `gorm:"not null;index" json:"user_id"`
	Pregnancies   *float64  `json:"pregnancies"`
	Glucose       *float64  `json:"glucose"`
	BloodPressure *float64  `json:"blood_pressure"`
	BMI           *float64  `json:"bmi"`
	DPF           *float64  `json:"dpf"` // diabetes pedigree function
	Outcome       int       `gorm:"column:prediction;not null" json:"prediction"`
	Probability   float64   `gorm:"not null" json:"probability"` // percent, 0..100
	CreatedAt     time.Time `gorm:"index" json:"created_at"`
}

func (Prediction) TableName() string { return "predictions" }
