// Package entity defines the system configuration singleton.
package entity

import "time"

// SystemConfigID is the fixed primary key of the singleton row.
const SystemConfigID uint = 1

// SMTPConfig holds the outbound mail settings.
type SMTPConfig struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Secure   bool   `json:"secure"`
	User     string `json:"user"`
	Password string `json:"password"`
	From     string `json:"from"`
}

// EmailTemplate is one configurable notification template.
type EmailTemplate struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// EmailTemplates groups the notification templates by event.
type EmailTemplates struct {
	Welcome            EmailTemplate `json:"welcome"`
	PackageRegistered  EmailTemplate `json:"packageRegistered"`
	LiquidationCreated EmailTemplate `json:"liquidationCreated"`
}

// ThemeConfig holds the branding settings.
type ThemeConfig struct {
	Logo            string `json:"logo,omitempty"`
	LoginBackground string `json:"loginBackground,omitempty"`
	PrimaryColor    string `json:"primaryColor"`
	SecondaryColor  string `json:"secondaryColor"`
}

// Message is a banner shown to clients during its active window.
type Message struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	Image     string `json:"image,omitempty"`
	Active    bool   `json:"active"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// SystemConfig is the single persisted row of system-wide settings:
// branding, SMTP, notification templates and client-facing banners.
// Structured members are stored as JSON columns.
type SystemConfig struct {
	ID           uint           `gorm:"primaryKey"`
	CompanyName  string         `gorm:"size:255;not null"`
	SupportEmail string         `gorm:"size:255;not null"`
	SupportPhone string         `gorm:"size:32"`
	Address      string         `gorm:"size:512"`
	Website      string         `gorm:"size:255"`
	SMTP         SMTPConfig     `gorm:"serializer:json"`
	Templates    EmailTemplates `gorm:"serializer:json"`
	Theme        ThemeConfig    `gorm:"serializer:json"`
	Messages     []Message      `gorm:"serializer:json"`
	UpdatedAt    time.Time
}

// DefaultSystemConfig returns the configuration used before an
// administrator has saved one.
func DefaultSystemConfig() *SystemConfig {
	return &SystemConfig{
		ID: SystemConfigID,
		Theme: ThemeConfig{
			PrimaryColor:   "#1e40af",
			SecondaryColor: "#f59e0b",
		},
	}
}
