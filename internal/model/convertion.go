package model

import (
	"strings"
	"time"

	"github.com/reelify-app/backend/internal/entity"
)

const DefaultTimeLayout string = time.RFC3339Nano

func ConvertShortUser(user *entity.User) ShortUser {
	if user == nil {
		return ShortUser{}
	}

	return ShortUser{
		ID:        user.ID,
		Username:  user.Username,
		AvatarURL: user.AvatarURL,
	}
}

func ConvertUser(user *entity.User, serviceUsers []entity.OAuth2, includeSensitive bool) User {
	if user == nil {
		return User{}
	}

	serviceMap := map[string]string{}
	for _, u := range serviceUsers {
		tag, id, found := strings.Cut(u.ServiceUserID, "_")
		if !found || tag != u.Service {
			continue
		}

		serviceMap[u.Service] = id
	}

	email := user.Email
	role := string(user.Role)
	if !includeSensitive {
		email = ""
		role = ""
		serviceMap = nil
	}

	return User{
		ShortUser: ShortUser{
			ID:        user.ID,
			Username:  user.Username,
			AvatarURL: user.AvatarURL,
		},
		Email:      email,
		Role:       role,
		IsActive:   user.IsActive,
		IsVerified: user.IsVerified,
		Services:   serviceMap,
		CreatedAt:  user.CreatedAt.Format(DefaultTimeLayout),
	}
}

func ConvertCampaign(campaign *entity.Campaign, participantCount int64, memberStatus string) Campaign {
	if campaign == nil {
		return Campaign{}
	}

	channels := []Channel{}
	for _, c := range campaign.Channels {
		channels = append(channels, Channel{Name: c.Name, Type: string(c.Type)})
	}

	return Campaign{
		ID:               campaign.ID,
		CreatedAt:        campaign.CreatedAt.Format(DefaultTimeLayout),
		UpdatedAt:        campaign.UpdatedAt.Format(DefaultTimeLayout),
		CreatedBy:        campaign.CreatedBy,
		Name:             campaign.Name,
		PhotoURL:         campaign.PhotoURL,
		Rules:            string(campaign.Rules),
		Budget:           campaign.Budget,
		RewardPerKView:   campaign.RewardPerKView,
		MinPayout:        campaign.MinPayout,
		MaxPayout:        campaign.MaxPayout,
		Type:             string(campaign.Type),
		Category:         string(campaign.Category),
		Status:           string(campaign.Status),
		IsPrivate:        campaign.IsPrivate,
		Channels:         channels,
		ParticipantCount: participantCount,
		MemberStatus:     memberStatus,
	}
}

func ConvertPost(
	post *entity.Post,
	author *entity.User,
	likes int64,
	liked bool,
	reactions map[string]int64,
	commentCount int64,
) Post {
	if post == nil {
		return Post{}
	}

	return Post{
		ID:           post.ID,
		CreatedAt:    post.CreatedAt.Format(DefaultTimeLayout),
		Author:       ConvertShortUser(author),
		Content:      string(post.Content),
		ImageURLs:    post.ImageURLs,
		VideoURLs:    post.VideoURLs,
		Likes:        likes,
		Liked:        liked,
		Reactions:    reactions,
		CommentCount: commentCount,
	}
}

func ConvertComment(comment *entity.Comment, author *entity.User) Comment {
	if comment == nil {
		return Comment{}
	}

	return Comment{
		ID:        comment.ID,
		CreatedAt: comment.CreatedAt.Format(DefaultTimeLayout),
		UpdatedAt: comment.UpdatedAt.Format(DefaultTimeLayout),
		PostID:    comment.PostID,
		Author:    ConvertShortUser(author),
		Content:   string(comment.Content),
	}
}

func ConvertTransaction(tx *entity.Transaction) Transaction {
	if tx == nil {
		return Transaction{}
	}

	return Transaction{
		ID:         tx.ID,
		CreatedAt:  tx.CreatedAt.Format(DefaultTimeLayout),
		UserID:     tx.UserID,
		CampaignID: tx.CampaignID.String,
		Type:       string(tx.Type),
		Amount:     tx.Amount,
		Note:       tx.Note,
	}
}

func ConvertCampaignUpdate(update *entity.CampaignUpdate, author *entity.User) CampaignUpdate {
	if update == nil {
		return CampaignUpdate{}
	}

	return CampaignUpdate{
		ID:         update.ID,
		CreatedAt:  update.CreatedAt.Format(DefaultTimeLayout),
		CampaignID: update.CampaignID,
		Author:     ConvertShortUser(author),
		Title:      update.Title,
		Content:    string(update.Content),
	}
}

func ConvertChatMessage(message *entity.ChatMessage, author *entity.User) ChatMessage {
	if message == nil {
		return ChatMessage{}
	}

	return ChatMessage{
		ID:         message.ID,
		CreatedAt:  message.CreatedAt.Format(DefaultTimeLayout),
		CampaignID: message.CampaignID,
		Channel:    message.Channel,
		Author:     ConvertShortUser(author),
		Content:    message.Content,
	}
}
