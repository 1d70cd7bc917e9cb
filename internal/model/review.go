package model

import "time"

// Review is a company review submitted by a user. Owner and IPAddress are
// always set server-side; clients never control them.
type Review struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"-" gorm:"not null;index"`
	Title     string    `json:"title" gorm:"size:64;not null"`
	Summary   string    `json:"summary" gorm:"type:text;not null"`
	Rating    int       `json:"rating" gorm:"not null"`
	Company   string    `json:"company" gorm:"size:100;not null"`
	IPAddress *string   `json:"ip_address" gorm:"size:45"`
	Date      time.Time `json:"date" gorm:"autoUpdateTime"` // last save time, auto_now semantics

	// Relations
	User User `json:"user" gorm:"foreignKey:UserID"`
}
