package entity

import "github.com/reelify-app/backend/pkg/enum"

type CampaignStatus string

var (
	CampaignActive = enum.New(CampaignStatus("Active"))
	CampaignEnded  = enum.New(CampaignStatus("Ended"))
	CampaignSoon   = enum.New(CampaignStatus("Soon"))
	CampaignPaused = enum.New(CampaignStatus("Paused"))
)

type CampaignType string

var (
	CampaignUGC      = enum.New(CampaignType("UGC"))
	CampaignClipping = enum.New(CampaignType("Clipping"))
	CampaignFaceless = enum.New(CampaignType("Faceless"))
)

type CampaignCategory string

var (
	CategoryMusic     = enum.New(CampaignCategory("Music"))
	CategoryGaming    = enum.New(CampaignCategory("Gaming"))
	CategoryLifestyle = enum.New(CampaignCategory("Lifestyle"))
	CategoryBrand     = enum.New(CampaignCategory("Brand"))
	CategoryOther     = enum.New(CampaignCategory("Other"))
)

type ChannelType string

var (
	ChannelUpdates = enum.New(ChannelType("updates"))
	ChannelChat    = enum.New(ChannelType("chat"))
	ChannelFeed    = enum.New(ChannelType("feed"))
)

type Channel struct {
	Name string      `json:"name"`
	Type ChannelType `json:"type"`
}

type Campaign struct {
	Base
	CreatedBy     string
	CreatedByUser User `gorm:"foreignKey:CreatedBy"`

	Name     string `gorm:"unique"`
	PhotoURL string
	Rules    []byte `gorm:"type:longtext"`

	Budget         float64
	RewardPerKView float64
	MinPayout      float64
	MaxPayout      float64

	Type      CampaignType
	Category  CampaignCategory
	Status    CampaignStatus `gorm:"default:Soon"`
	IsPrivate bool

	Channels Array[Channel] `gorm:"type:longtext"`
}
