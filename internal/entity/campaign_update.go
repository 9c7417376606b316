package entity

type CampaignUpdate struct {
	Base
	CampaignID string
	Campaign   Campaign `gorm:"foreignKey:CampaignID"`

	AuthorID string
	Author   User `gorm:"foreignKey:AuthorID"`

	Title   string
	Content []byte `gorm:"type:longtext"`
}
