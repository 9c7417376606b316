package common

import (
	"context"
	"errors"
	"fmt"

	"github.com/reelify-app/backend/internal/entity"
	"github.com/reelify-app/backend/internal/repository"
	"github.com/reelify-app/backend/pkg/xcontext"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

var (
	ErrInvalidUser  = errors.New("user is not valid")
	ErrNoPermission = errors.New("user role does not have permission")
)

type GlobalRoleVerifier struct {
	userRepo repository.UserRepository
}

func NewGlobalRoleVerifier(userRepo repository.UserRepository) *GlobalRoleVerifier {
	return &GlobalRoleVerifier{userRepo: userRepo}
}

func (verifier *GlobalRoleVerifier) Verify(ctx context.Context, requiredRoles ...entity.GlobalRole) error {
	userID := xcontext.RequestUserID(ctx)
	u, err := verifier.userRepo.GetByID(ctx, userID)
	if err != nil {
		return ErrInvalidUser
	}

	if !slices.Contains(requiredRoles, u.Role) {
		return ErrNoPermission
	}

	return nil
}

// CampaignMemberVerifier checks that the request user is an approved
// participant of a campaign. Admins pass regardless of membership.
type CampaignMemberVerifier struct {
	userRepo   repository.UserRepository
	memberRepo repository.CampaignMemberRepository
}

func NewCampaignMemberVerifier(
	userRepo repository.UserRepository,
	memberRepo repository.CampaignMemberRepository,
) *CampaignMemberVerifier {
	return &CampaignMemberVerifier{userRepo: userRepo, memberRepo: memberRepo}
}

func (verifier *CampaignMemberVerifier) Verify(ctx context.Context, campaignID string) error {
	userID := xcontext.RequestUserID(ctx)
	u, err := verifier.userRepo.GetByID(ctx, userID)
	if err != nil {
		return ErrInvalidUser
	}

	if slices.Contains(entity.GlobalAdminRoles, u.Role) {
		return nil
	}

	member, err := verifier.memberRepo.Get(ctx, userID, campaignID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNoPermission
		}

		return err
	}

	if member.Status != entity.MemberParticipant {
		return fmt.Errorf("user is still on the waitlist")
	}

	return nil
}
