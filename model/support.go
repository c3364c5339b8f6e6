package model

import (
	"time"
)

// ContactInquiry is a user-submitted support inquiry
type ContactInquiry struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Category  string    `json:"category"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Status    string    `json:"status"` // pending, replied, closed
	CreatedAt time.Time `json:"created_at"`
}

// Inquiry status constants
const (
	InquiryPending = "pending"
	InquiryReplied = "replied"
	InquiryClosed  = "closed"
)

// Notification is a per-user in-app notification
type Notification struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

// NotificationSettings holds a user's notification preferences
type NotificationSettings struct {
	PushEnabled      bool `json:"push_enabled"`
	AnalysisComplete bool `json:"analysis_complete"`
	RiskAlert        bool `json:"risk_alert"`
	MarketingPush    bool `json:"marketing_push"`
	EmailEnabled     bool `json:"email_enabled"`
	EmailReport      bool `json:"email_report"`
}

// DefaultNotificationSettings returns the settings applied to a user
// who has never saved preferences.
func DefaultNotificationSettings() NotificationSettings {
	return NotificationSettings{
		PushEnabled:      true,
		AnalysisComplete: true,
		RiskAlert:        true,
		MarketingPush:    false,
		EmailEnabled:     false,
		EmailReport:      false,
	}
}
