package domain

import (
	"context"
	"testing"
	"time"

	"github.com/reelify-app/backend/internal/entity"
	"github.com/reelify-app/backend/internal/model"
	"github.com/reelify-app/backend/internal/repository"
	"github.com/reelify-app/backend/pkg/authenticator"
	"github.com/reelify-app/backend/pkg/crypto"
	"github.com/reelify-app/backend/pkg/errorx"
	"github.com/reelify-app/backend/pkg/testutil"
	"github.com/reelify-app/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func Test_authDomain_Signup(t *testing.T) {
	ctx := testutil.MockContext()

	domain := &authDomain{
		userRepo:         repository.NewUserRepository(),
		refreshTokenRepo: repository.NewRefreshTokenRepository(),
	}

	resp, err := domain.Signup(ctx, &model.SignupRequest{
		Username: "newbie",
		Email:    "newbie@example.com",
		Password: "secret-password",
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.AccessToken)
	require.NotEmpty(t, resp.RefreshToken)

	accessToken := model.AccessToken{}
	err = xcontext.TokenEngine(ctx).Verify(resp.AccessToken, &accessToken)
	require.NoError(t, err)
	require.Equal(t, "newbie", accessToken.Username)

	// The same username cannot be registered twice.
	_, err = domain.Signup(ctx, &model.SignupRequest{
		Username: "newbie",
		Email:    "another@example.com",
		Password: "secret-password",
	})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.AlreadyExists, errx.Code)

	// Neither can the same email.
	_, err = domain.Signup(ctx, &model.SignupRequest{
		Username: "newbie2",
		Email:    "newbie@example.com",
		Password: "secret-password",
	})
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.AlreadyExists, errx.Code)
}

func Test_authDomain_Signup_InvalidInput(t *testing.T) {
	ctx := testutil.MockContext()

	domain := &authDomain{
		userRepo:         repository.NewUserRepository(),
		refreshTokenRepo: repository.NewRefreshTokenRepository(),
	}

	testcases := []model.SignupRequest{
		{Username: "ab", Email: "short@example.com", Password: "secret-password"},
		{Username: "has space", Email: "space@example.com", Password: "secret-password"},
		{Username: "valid_name", Email: "not-an-email", Password: "secret-password"},
		{Username: "valid_name", Email: "valid@example.com", Password: "short"},
	}

	for _, req := range testcases {
		req := req
		_, err := domain.Signup(ctx, &req)
		var errx errorx.Error
		require.ErrorAs(t, err, &errx)
		require.Equal(t, errorx.BadRequest, errx.Code)
	}
}

func Test_authDomain_Signin(t *testing.T) {
	ctx := testutil.MockContext()

	domain := &authDomain{
		userRepo:         repository.NewUserRepository(),
		refreshTokenRepo: repository.NewRefreshTokenRepository(),
	}

	_, err := domain.Signup(ctx, &model.SignupRequest{
		Username: "signin_user",
		Email:    "signin@example.com",
		Password: "secret-password",
	})
	require.NoError(t, err)

	resp, err := domain.Signin(ctx, &model.SigninRequest{
		Username: "signin_user",
		Password: "secret-password",
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.AccessToken)

	// A wrong password and an unknown username get the same answer.
	_, err = domain.Signin(ctx, &model.SigninRequest{
		Username: "signin_user",
		Password: "wrong-password",
	})
	require.Error(t, err)
	require.Equal(t, "Wrong username or password", err.Error())

	_, err = domain.Signin(ctx, &model.SigninRequest{
		Username: "who_is_this",
		Password: "secret-password",
	})
	require.Error(t, err)
	require.Equal(t, "Wrong username or password", err.Error())
}

func Test_authDomain_Signin_DeactivatedUser(t *testing.T) {
	ctx := testutil.MockContext()

	userRepo := repository.NewUserRepository()
	domain := &authDomain{
		userRepo:         userRepo,
		refreshTokenRepo: repository.NewRefreshTokenRepository(),
	}

	_, err := domain.Signup(ctx, &model.SignupRequest{
		Username: "deactivated",
		Email:    "deactivated@example.com",
		Password: "secret-password",
	})
	require.NoError(t, err)

	user, err := userRepo.GetByUsername(ctx, "deactivated")
	require.NoError(t, err)
	require.NoError(t, userRepo.UpdateByID(ctx, user.ID, map[string]any{"is_active": false}))

	_, err = domain.Signin(ctx, &model.SigninRequest{
		Username: "deactivated",
		Password: "secret-password",
	})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.PermissionDenied, errx.Code)
}

func Test_authDomain_OAuth2Verify_DuplicateEmail(t *testing.T) {
	// Mock oauth2 returns an email which already belongs to another account.
	oauth2Service := testutil.NewMockOAuth2Service("example")
	oauth2Service.VerifyIDTokenFunc = func(context.Context, string) (authenticator.OAuth2User, error) {
		return authenticator.OAuth2User{
			ID:       "new_service_user_id",
			Username: "service_user",
			Email:    "taken@example.com",
		}, nil
	}

	// Generate database environment. DO NOT create fixture db here.
	ctx := testutil.MockContext()
	userRepo := repository.NewUserRepository()
	oauth2Repo := repository.NewOAuth2Repository()

	domain := &authDomain{
		userRepo:         userRepo,
		oauth2Repo:       oauth2Repo,
		refreshTokenRepo: repository.NewRefreshTokenRepository(),
		oauth2Services:   []authenticator.IOAuth2Service{oauth2Service},
	}

	err := userRepo.Create(ctx, &entity.User{
		Base:     entity.Base{ID: "existing"},
		Username: "existing",
		Email:    "taken@example.com",
		IsActive: true,
	})
	require.NoError(t, err)

	// The verify method cannot process this request because inserting the
	// new user violates the unique email column.
	_, err = domain.OAuth2Verify(ctx, &model.OAuth2VerifyRequest{
		Type:    oauth2Service.Name,
		IDToken: "foo",
	})
	require.Error(t, err)

	// The transaction rolls back everything written for the new account, so
	// only the pre-existing user remains and no oauth2 record was kept.
	var count int64
	require.NoError(t, xcontext.DB(ctx).Model(&entity.User{}).Count(&count).Error)
	require.Equal(t, int64(1), count)

	var oauth2Record entity.OAuth2
	err = xcontext.DB(ctx).First(&oauth2Record).Error
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func Test_authDomain_OAuth2Verify_CreatesUser(t *testing.T) {
	oauth2Service := testutil.NewMockOAuth2Service("example")
	oauth2Service.VerifyIDTokenFunc = func(context.Context, string) (authenticator.OAuth2User, error) {
		return authenticator.OAuth2User{
			ID:       "example_service_user_id",
			Username: "service_user",
			Email:    "service_user@example.com",
		}, nil
	}

	ctx := testutil.MockContext()
	domain := &authDomain{
		userRepo:         repository.NewUserRepository(),
		oauth2Repo:       repository.NewOAuth2Repository(),
		refreshTokenRepo: repository.NewRefreshTokenRepository(),
		oauth2Services:   []authenticator.IOAuth2Service{oauth2Service},
	}

	resp, err := domain.OAuth2Verify(ctx, &model.OAuth2VerifyRequest{
		Type:    oauth2Service.Name,
		IDToken: "foo",
	})
	require.NoError(t, err)
	require.Equal(t, "service_user", resp.User.Username)
	require.True(t, resp.User.IsVerified)
	require.NotEmpty(t, resp.AccessToken)
	require.NotEmpty(t, resp.RefreshToken)

	// A second verify with the same service user id signs in the same
	// account instead of creating a new one.
	again, err := domain.OAuth2Verify(ctx, &model.OAuth2VerifyRequest{
		Type:    oauth2Service.Name,
		IDToken: "foo",
	})
	require.NoError(t, err)
	require.Equal(t, resp.User.ID, again.User.ID)
}

func Test_authDomain_Refresh(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	domain := &authDomain{
		userRepo:         repository.NewUserRepository(),
		refreshTokenRepo: repository.NewRefreshTokenRepository(),
	}

	refreshTokenObj := model.RefreshToken{
		Family:  "Foo",
		Counter: 0,
	}

	err := domain.refreshTokenRepo.Create(ctx, &entity.RefreshToken{
		UserID:     testutil.User1.ID,
		Family:     crypto.SHA256([]byte(refreshTokenObj.Family)),
		Counter:    0,
		Expiration: time.Now().Add(time.Minute),
	})
	require.NoError(t, err)

	refreshToken, err := xcontext.TokenEngine(ctx).Generate(time.Minute, refreshTokenObj)
	require.NoError(t, err)

	// Successfully for the first refresh.
	resp, err := domain.Refresh(ctx, &model.RefreshTokenRequest{RefreshToken: refreshToken})
	require.NoError(t, err)

	// Verify access token.
	accessToken := model.AccessToken{}
	err = xcontext.TokenEngine(ctx).Verify(resp.AccessToken, &accessToken)
	require.NoError(t, err)
	require.Equal(t, testutil.User1.ID, accessToken.ID)

	// Detect stolen for the second refresh, the refresh token will be
	// deleted after this call.
	_, err = domain.Refresh(ctx, &model.RefreshTokenRequest{RefreshToken: refreshToken})
	require.Error(t, err)
	require.Equal(t, "Your refresh token will be revoked because it is detected as stolen", err.Error())

	// Not found refresh token for the third refresh.
	_, err = domain.Refresh(ctx, &model.RefreshTokenRequest{RefreshToken: refreshToken})
	require.Error(t, err)
	require.Equal(t, "Request failed", err.Error())
}

func Test_authDomain_Refresh_ExpiredToken(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	domain := &authDomain{
		userRepo:         repository.NewUserRepository(),
		refreshTokenRepo: repository.NewRefreshTokenRepository(),
	}

	expiredToken, err := xcontext.TokenEngine(ctx).Generate(-time.Minute, model.RefreshToken{
		Family:  "Foo",
		Counter: 0,
	})
	require.NoError(t, err)

	_, err = domain.Refresh(ctx, &model.RefreshTokenRequest{RefreshToken: expiredToken})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.TokenExpired, errx.Code)
	require.Equal(t, "Your refresh token is expired", err.Error())
}
