package entity

import (
	"time"

	"github.com/reelify-app/backend/pkg/enum"
)

type MemberStatus string

var (
	MemberParticipant = enum.New(MemberStatus("participant"))
	MemberWaitlist    = enum.New(MemberStatus("waitlist"))
)

// CampaignMember is one membership row per (campaign, user). The composite
// primary key guarantees a user can never be recorded as both waitlisted
// and participant of the same campaign.
type CampaignMember struct {
	CreatedAt time.Time
	UpdatedAt time.Time

	UserID string `gorm:"primaryKey"`
	User   User   `gorm:"foreignKey:UserID"`

	CampaignID string   `gorm:"primaryKey"`
	Campaign   Campaign `gorm:"foreignKey:CampaignID"`

	Status MemberStatus
}
