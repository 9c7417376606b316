package domain

import (
	"testing"
	"time"

	"github.com/reelify-app/backend/internal/entity"
	"github.com/reelify-app/backend/internal/model"
	"github.com/reelify-app/backend/internal/repository"
	"github.com/reelify-app/backend/pkg/errorx"
	"github.com/reelify-app/backend/pkg/testutil"
	"github.com/reelify-app/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func newPostDomain() PostDomain {
	return NewPostDomain(
		repository.NewPostRepository(),
		repository.NewPostLikeRepository(),
		repository.NewPostReactionRepository(),
		repository.NewCommentRepository(),
		repository.NewUserRepository(),
	)
}

func Test_postDomain_LikePost_Toggle(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)

	domain := newPostDomain()

	resp, err := domain.LikePost(ctx, &model.LikePostRequest{PostID: testutil.Post1.ID})
	require.NoError(t, err)
	require.True(t, resp.Liked)

	post, err := domain.GetPost(ctx, &model.GetPostRequest{ID: testutil.Post1.ID})
	require.NoError(t, err)
	require.Equal(t, int64(1), post.Post.Likes)
	require.True(t, post.Post.Liked)

	// The second like takes the first one back.
	resp, err = domain.LikePost(ctx, &model.LikePostRequest{PostID: testutil.Post1.ID})
	require.NoError(t, err)
	require.False(t, resp.Liked)

	post, err = domain.GetPost(ctx, &model.GetPostRequest{ID: testutil.Post1.ID})
	require.NoError(t, err)
	require.Equal(t, int64(0), post.Post.Likes)
	require.False(t, post.Post.Liked)
}

func Test_postDomain_ReactPost(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)

	domain := newPostDomain()

	_, err := domain.ReactPost(ctx, &model.ReactPostRequest{
		PostID: testutil.Post1.ID,
		Emoji:  "🔥",
	})
	require.NoError(t, err)

	// Reacting again replaces the previous emoji instead of stacking up.
	_, err = domain.ReactPost(ctx, &model.ReactPostRequest{
		PostID: testutil.Post1.ID,
		Emoji:  "❤️",
	})
	require.NoError(t, err)

	post, err := domain.GetPost(ctx, &model.GetPostRequest{ID: testutil.Post1.ID})
	require.NoError(t, err)
	require.Equal(t, map[string]int64{"❤️": 1}, post.Post.Reactions)

	// An empty emoji clears the reaction.
	_, err = domain.ReactPost(ctx, &model.ReactPostRequest{PostID: testutil.Post1.ID})
	require.NoError(t, err)

	post, err = domain.GetPost(ctx, &model.GetPostRequest{ID: testutil.Post1.ID})
	require.NoError(t, err)
	require.Empty(t, post.Post.Reactions)
}

func Test_postDomain_Comment(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)

	domain := newPostDomain()

	resp, err := domain.CommentPost(ctx, &model.CommentPostRequest{
		PostID:  testutil.Post1.ID,
		Content: "Nice one",
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.ID)

	_, err = domain.CommentPost(ctx, &model.CommentPostRequest{PostID: testutil.Post1.ID})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.BadRequest, errx.Code)

	// The author can edit their own comment.
	_, err = domain.UpdateComment(ctx, &model.UpdateCommentRequest{
		ID:      resp.ID,
		Content: "Nice one (edited)",
	})
	require.NoError(t, err)

	// Another user cannot edit it.
	otherCtx := xcontext.WithRequestUserID(ctx, testutil.User2.ID)
	_, err = domain.UpdateComment(otherCtx, &model.UpdateCommentRequest{
		ID:      resp.ID,
		Content: "Hijacked",
	})
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.PermissionDenied, errx.Code)

	// An admin can edit any comment.
	adminCtx := xcontext.WithRequestUserID(ctx, testutil.Admin.ID)
	_, err = domain.UpdateComment(adminCtx, &model.UpdateCommentRequest{
		ID:      resp.ID,
		Content: "Moderated",
	})
	require.NoError(t, err)

	// And an admin can delete any comment.
	_, err = domain.DeleteComment(adminCtx, &model.DeleteCommentRequest{ID: resp.ID})
	require.NoError(t, err)

	post, err := domain.GetPost(ctx, &model.GetPostRequest{ID: testutil.Post1.ID})
	require.NoError(t, err)
	require.Equal(t, int64(0), post.Post.CommentCount)
}

func Test_postDomain_GetPost_CommentsNewestFirst(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)

	commentRepo := repository.NewCommentRepository()
	err := commentRepo.Create(ctx, &entity.Comment{
		Base:     entity.Base{ID: "comment1", CreatedAt: time.Now().Add(-time.Hour)},
		PostID:   testutil.Post1.ID,
		AuthorID: testutil.User1.ID,
		Content:  []byte("older"),
	})
	require.NoError(t, err)

	err = commentRepo.Create(ctx, &entity.Comment{
		Base:     entity.Base{ID: "comment2", CreatedAt: time.Now()},
		PostID:   testutil.Post1.ID,
		AuthorID: testutil.User1.ID,
		Content:  []byte("newer"),
	})
	require.NoError(t, err)

	domain := newPostDomain()

	resp, err := domain.GetPost(ctx, &model.GetPostRequest{ID: testutil.Post1.ID, CommentLimit: 10})
	require.NoError(t, err)
	require.Len(t, resp.Comments, 2)
	require.Equal(t, "newer", resp.Comments[0].Content)
	require.Equal(t, "older", resp.Comments[1].Content)
}

func Test_postDomain_DeleteComment_OtherUser(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)

	domain := newPostDomain()

	resp, err := domain.CommentPost(ctx, &model.CommentPostRequest{
		PostID:  testutil.Post1.ID,
		Content: "Mine",
	})
	require.NoError(t, err)

	otherCtx := xcontext.WithRequestUserID(ctx, testutil.User2.ID)
	_, err = domain.DeleteComment(otherCtx, &model.DeleteCommentRequest{ID: resp.ID})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.PermissionDenied, errx.Code)
}

func Test_postDomain_GetPosts(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)

	domain := newPostDomain()

	_, err := domain.LikePost(ctx, &model.LikePostRequest{PostID: testutil.Post1.ID})
	require.NoError(t, err)

	resp, err := domain.GetPosts(ctx, &model.GetPostsRequest{Limit: 10})
	require.NoError(t, err)
	require.Len(t, resp.Posts, 2)

	for _, post := range resp.Posts {
		require.Equal(t, testutil.Admin.Username, post.Author.Username)
		if post.ID == testutil.Post1.ID {
			require.True(t, post.Liked)
			require.Equal(t, int64(1), post.Likes)
		}
	}

	// The limit is capped by the server configuration.
	_, err = domain.GetPosts(ctx, &model.GetPostsRequest{Limit: 1000})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.BadRequest, errx.Code)
}

func Test_postDomain_CreateAndDeletePost(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.Admin.ID)
	testutil.CreateFixtureDb(ctx)

	domain := newPostDomain()

	_, err := domain.CreatePost(ctx, &model.CreatePostRequest{})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.BadRequest, errx.Code)

	resp, err := domain.CreatePost(ctx, &model.CreatePostRequest{
		Content:   "New drop is live",
		ImageURLs: []string{"https://cdn.example.com/cover.png"},
	})
	require.NoError(t, err)

	_, err = domain.DeletePost(ctx, &model.DeletePostRequest{ID: resp.ID})
	require.NoError(t, err)

	_, err = domain.GetPost(ctx, &model.GetPostRequest{ID: resp.ID})
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.NotFound, errx.Code)
}
