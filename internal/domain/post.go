package domain

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/reelify-app/backend/internal/entity"
	"github.com/reelify-app/backend/internal/model"
	"github.com/reelify-app/backend/internal/repository"
	"github.com/reelify-app/backend/pkg/errorx"
	"github.com/reelify-app/backend/pkg/xcontext"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

type PostDomain interface {
	GetPosts(context.Context, *model.GetPostsRequest) (*model.GetPostsResponse, error)
	GetPost(context.Context, *model.GetPostRequest) (*model.GetPostResponse, error)
	LikePost(context.Context, *model.LikePostRequest) (*model.LikePostResponse, error)
	ReactPost(context.Context, *model.ReactPostRequest) (*model.ReactPostResponse, error)
	CommentPost(context.Context, *model.CommentPostRequest) (*model.CommentPostResponse, error)
	UpdateComment(context.Context, *model.UpdateCommentRequest) (*model.UpdateCommentResponse, error)
	DeleteComment(context.Context, *model.DeleteCommentRequest) (*model.DeleteCommentResponse, error)
	CreatePost(context.Context, *model.CreatePostRequest) (*model.CreatePostResponse, error)
	DeletePost(context.Context, *model.DeletePostRequest) (*model.DeletePostResponse, error)
}

type postDomain struct {
	postRepo     repository.PostRepository
	likeRepo     repository.PostLikeRepository
	reactionRepo repository.PostReactionRepository
	commentRepo  repository.CommentRepository
	userRepo     repository.UserRepository
}

func NewPostDomain(
	postRepo repository.PostRepository,
	likeRepo repository.PostLikeRepository,
	reactionRepo repository.PostReactionRepository,
	commentRepo repository.CommentRepository,
	userRepo repository.UserRepository,
) PostDomain {
	return &postDomain{
		postRepo:     postRepo,
		likeRepo:     likeRepo,
		reactionRepo: reactionRepo,
		commentRepo:  commentRepo,
		userRepo:     userRepo,
	}
}

func (d *postDomain) GetPosts(
	ctx context.Context, req *model.GetPostsRequest,
) (*model.GetPostsResponse, error) {
	apiCfg := xcontext.Configs(ctx).ApiServer
	if req.Limit == 0 {
		req.Limit = apiCfg.DefaultLimit
	}

	if req.Limit < 0 {
		return nil, errorx.New(errorx.BadRequest, "Limit must be positive")
	}

	if req.Limit > apiCfg.MaxLimit {
		return nil, errorx.New(errorx.BadRequest, "Exceed the maximum of limit (%d)", apiCfg.MaxLimit)
	}

	records, err := d.postRepo.GetList(ctx, req.Offset, req.Limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get posts: %v", err)
		return nil, errorx.Unknown
	}

	postIDs := []string{}
	authorIDs := []string{}
	for _, record := range records {
		postIDs = append(postIDs, record.ID)
		authorIDs = append(authorIDs, record.AuthorID)
	}

	authorSet, err := d.authorSet(ctx, authorIDs)
	if err != nil {
		return nil, err
	}

	likeCounts, err := d.likeRepo.CountByPostIDs(ctx, postIDs)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count likes: %v", err)
		return nil, errorx.Unknown
	}

	likeSet := map[string]int64{}
	for _, count := range likeCounts {
		likeSet[count.PostID] = count.Count
	}

	likedSet := map[string]bool{}
	if userID := xcontext.RequestUserID(ctx); userID != "" {
		myLikes, err := d.likeRepo.GetListByUserID(ctx, userID, postIDs)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot get likes of user: %v", err)
			return nil, errorx.Unknown
		}

		for _, like := range myLikes {
			likedSet[like.PostID] = true
		}
	}

	reactionCounts, err := d.reactionRepo.CountByPostIDs(ctx, postIDs)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count reactions: %v", err)
		return nil, errorx.Unknown
	}

	reactionSet := map[string]map[string]int64{}
	for _, count := range reactionCounts {
		if reactionSet[count.PostID] == nil {
			reactionSet[count.PostID] = map[string]int64{}
		}

		reactionSet[count.PostID][count.Emoji] = count.Count
	}

	posts := []model.Post{}
	for _, record := range records {
		record := record
		author := authorSet[record.AuthorID]
		commentCount, err := d.commentRepo.CountByPostID(ctx, record.ID)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot count comments: %v", err)
			return nil, errorx.Unknown
		}

		posts = append(posts, model.ConvertPost(
			&record, author, likeSet[record.ID], likedSet[record.ID],
			reactionSet[record.ID], commentCount))
	}

	return &model.GetPostsResponse{Posts: posts}, nil
}

func (d *postDomain) GetPost(
	ctx context.Context, req *model.GetPostRequest,
) (*model.GetPostResponse, error) {
	apiCfg := xcontext.Configs(ctx).ApiServer
	if req.CommentLimit == 0 {
		req.CommentLimit = apiCfg.DefaultLimit
	}

	if req.CommentLimit < 0 || req.CommentLimit > apiCfg.MaxLimit {
		return nil, errorx.New(errorx.BadRequest, "Invalid comment limit")
	}

	post, err := d.postRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found post")
		}

		xcontext.Logger(ctx).Errorf("Cannot get post: %v", err)
		return nil, errorx.Unknown
	}

	comments, err := d.commentRepo.GetListByPostID(ctx, post.ID, req.CommentOffset, req.CommentLimit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get comments: %v", err)
		return nil, errorx.Unknown
	}

	authorIDs := []string{post.AuthorID}
	for _, comment := range comments {
		authorIDs = append(authorIDs, comment.AuthorID)
	}

	authorSet, err := d.authorSet(ctx, authorIDs)
	if err != nil {
		return nil, err
	}

	modelPost, err := d.convertPost(ctx, post, authorSet[post.AuthorID])
	if err != nil {
		return nil, err
	}

	modelComments := []model.Comment{}
	for _, comment := range comments {
		comment := comment
		modelComments = append(modelComments, model.ConvertComment(&comment, authorSet[comment.AuthorID]))
	}

	return &model.GetPostResponse{Post: modelPost, Comments: modelComments}, nil
}

func (d *postDomain) LikePost(
	ctx context.Context, req *model.LikePostRequest,
) (*model.LikePostResponse, error) {
	if _, err := d.postRepo.GetByID(ctx, req.PostID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found post")
		}

		xcontext.Logger(ctx).Errorf("Cannot get post: %v", err)
		return nil, errorx.Unknown
	}

	userID := xcontext.RequestUserID(ctx)
	_, err := d.likeRepo.Get(ctx, req.PostID, userID)
	if err == nil {
		if err := d.likeRepo.Delete(ctx, req.PostID, userID); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot unlike post: %v", err)
			return nil, errorx.Unknown
		}

		return &model.LikePostResponse{Liked: false}, nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get like: %v", err)
		return nil, errorx.Unknown
	}

	err = d.likeRepo.Create(ctx, &entity.PostLike{PostID: req.PostID, UserID: userID})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot like post: %v", err)
		return nil, errorx.Unknown
	}

	return &model.LikePostResponse{Liked: true}, nil
}

func (d *postDomain) ReactPost(
	ctx context.Context, req *model.ReactPostRequest,
) (*model.ReactPostResponse, error) {
	if _, err := d.postRepo.GetByID(ctx, req.PostID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found post")
		}

		xcontext.Logger(ctx).Errorf("Cannot get post: %v", err)
		return nil, errorx.Unknown
	}

	userID := xcontext.RequestUserID(ctx)

	// An empty emoji clears the previous reaction.
	if req.Emoji == "" {
		if err := d.reactionRepo.Delete(ctx, req.PostID, userID); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot clear reaction: %v", err)
			return nil, errorx.Unknown
		}

		return &model.ReactPostResponse{}, nil
	}

	err := d.reactionRepo.Upsert(ctx, &entity.PostReaction{
		PostID: req.PostID,
		UserID: userID,
		Emoji:  req.Emoji,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot react to post: %v", err)
		return nil, errorx.Unknown
	}

	return &model.ReactPostResponse{}, nil
}

func (d *postDomain) CommentPost(
	ctx context.Context, req *model.CommentPostRequest,
) (*model.CommentPostResponse, error) {
	if req.Content == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty comment")
	}

	if _, err := d.postRepo.GetByID(ctx, req.PostID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found post")
		}

		xcontext.Logger(ctx).Errorf("Cannot get post: %v", err)
		return nil, errorx.Unknown
	}

	comment := &entity.Comment{
		Base:     entity.Base{ID: uuid.NewString()},
		PostID:   req.PostID,
		AuthorID: xcontext.RequestUserID(ctx),
		Content:  []byte(req.Content),
	}

	if err := d.commentRepo.Create(ctx, comment); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create comment: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CommentPostResponse{ID: comment.ID}, nil
}

func (d *postDomain) UpdateComment(
	ctx context.Context, req *model.UpdateCommentRequest,
) (*model.UpdateCommentResponse, error) {
	if req.Content == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty comment")
	}

	comment, err := d.commentRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found comment")
		}

		xcontext.Logger(ctx).Errorf("Cannot get comment: %v", err)
		return nil, errorx.Unknown
	}

	if comment.AuthorID != xcontext.RequestUserID(ctx) && !d.isAdmin(ctx) {
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	if err := d.commentRepo.UpdateContentByID(ctx, req.ID, []byte(req.Content)); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update comment: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UpdateCommentResponse{}, nil
}

func (d *postDomain) DeleteComment(
	ctx context.Context, req *model.DeleteCommentRequest,
) (*model.DeleteCommentResponse, error) {
	comment, err := d.commentRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found comment")
		}

		xcontext.Logger(ctx).Errorf("Cannot get comment: %v", err)
		return nil, errorx.Unknown
	}

	userID := xcontext.RequestUserID(ctx)
	if comment.AuthorID != userID && !d.isAdmin(ctx) {
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	if err := d.commentRepo.DeleteByID(ctx, req.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete comment: %v", err)
		return nil, errorx.Unknown
	}

	return &model.DeleteCommentResponse{}, nil
}

func (d *postDomain) CreatePost(
	ctx context.Context, req *model.CreatePostRequest,
) (*model.CreatePostResponse, error) {
	if req.Content == "" && len(req.ImageURLs) == 0 && len(req.VideoURLs) == 0 {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty post")
	}

	post := &entity.Post{
		Base:      entity.Base{ID: uuid.NewString()},
		AuthorID:  xcontext.RequestUserID(ctx),
		Content:   []byte(req.Content),
		ImageURLs: req.ImageURLs,
		VideoURLs: req.VideoURLs,
	}

	if err := d.postRepo.Create(ctx, post); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create post: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreatePostResponse{ID: post.ID}, nil
}

func (d *postDomain) DeletePost(
	ctx context.Context, req *model.DeletePostRequest,
) (*model.DeletePostResponse, error) {
	if _, err := d.postRepo.GetByID(ctx, req.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found post")
		}

		xcontext.Logger(ctx).Errorf("Cannot get post: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.postRepo.DeleteByID(ctx, req.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete post: %v", err)
		return nil, errorx.Unknown
	}

	return &model.DeletePostResponse{}, nil
}

func (d *postDomain) authorSet(ctx context.Context, ids []string) (map[string]*entity.User, error) {
	users, err := d.userRepo.GetByIDs(ctx, ids)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get authors: %v", err)
		return nil, errorx.Unknown
	}

	authorSet := map[string]*entity.User{}
	for i := range users {
		authorSet[users[i].ID] = &users[i]
	}

	return authorSet, nil
}

func (d *postDomain) convertPost(
	ctx context.Context, post *entity.Post, author *entity.User,
) (model.Post, error) {
	likeCounts, err := d.likeRepo.CountByPostIDs(ctx, []string{post.ID})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count likes: %v", err)
		return model.Post{}, errorx.Unknown
	}

	var likes int64
	if len(likeCounts) == 1 {
		likes = likeCounts[0].Count
	}

	liked := false
	if userID := xcontext.RequestUserID(ctx); userID != "" {
		_, err := d.likeRepo.Get(ctx, post.ID, userID)
		if err == nil {
			liked = true
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			xcontext.Logger(ctx).Errorf("Cannot get like: %v", err)
			return model.Post{}, errorx.Unknown
		}
	}

	reactionCounts, err := d.reactionRepo.CountByPostIDs(ctx, []string{post.ID})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count reactions: %v", err)
		return model.Post{}, errorx.Unknown
	}

	reactions := map[string]int64{}
	for _, count := range reactionCounts {
		reactions[count.Emoji] = count.Count
	}

	commentCount, err := d.commentRepo.CountByPostID(ctx, post.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count comments: %v", err)
		return model.Post{}, errorx.Unknown
	}

	return model.ConvertPost(post, author, likes, liked, reactions, commentCount), nil
}

func (d *postDomain) isAdmin(ctx context.Context) bool {
	user, err := d.userRepo.GetByID(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		return false
	}

	return slices.Contains(entity.GlobalAdminRoles, user.Role)
}
