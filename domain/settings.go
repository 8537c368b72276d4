package domain

import (
	"time"

	"gorm.io/datatypes"
)

// SettingsID is the primary key of the single site_settings row.
const SettingsID = 1

type ContactInfo struct {
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
	Address string `json:"address,omitempty"`
}

type SiteSettings struct {
	ID             uint                            `gorm:"column:id;primaryKey;autoIncrement:false" json:"id"`
	SiteName       string                          `gorm:"column:site_name" json:"site_name"`
	PrimaryColor   string                          `gorm:"column:primary_color" json:"primary_color"`
	SecondaryColor string                          `gorm:"column:secondary_color" json:"secondary_color"`
	HeroTitle      string                          `gorm:"column:hero_title" json:"hero_title"`
	HeroSubtitle   string                          `gorm:"column:hero_subtitle" json:"hero_subtitle"`
	ContactInfo    datatypes.JSONType[ContactInfo] `gorm:"column:contact_info" json:"contact_info"`
	UpdatedAt      time.Time                       `gorm:"column:updated_at" json:"updated_at"`
}

func (SiteSettings) TableName() string {
	return "site_settings"
}

// SettingsFields lists the columns an admin may change through PUT /settings.
var SettingsFields = []string{
	"site_name",
	"primary_color",
	"secondary_color",
	"hero_title",
	"hero_subtitle",
	"contact_info",
}
