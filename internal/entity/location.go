package entity

type Location struct {
	Base
	CampaignID  string   `gorm:"index;not null"`
	Campaign    Campaign `gorm:"foreignKey:CampaignID"`
	Name        string   `gorm:"not null"`
	Description string   `gorm:"type:text"`
}
