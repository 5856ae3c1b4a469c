package impl

import (
	"context"
	"testing"
	"time"

	"gahana/internal/domain/entity"
	domainerrors "gahana/internal/domain/errors"
	"gahana/internal/domain/repository"
	"gahana/internal/domain/service"
	"gahana/internal/errors"
	mockRepo "gahana/internal/mocks/repository"
	mockSvc "gahana/internal/mocks/service"
	"gahana/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

// userServiceFixtures holds all test dependencies for user service tests.
type userServiceFixtures struct {
	service          usecase.UserUsecase
	txManager        *mockRepo.MockTransactionManager
	userRepo         *mockRepo.MockUserRepository
	profileRepo      *mockRepo.MockProfileRepository
	authRepo         *mockRepo.MockAuthRepository
	refreshTokenRepo *mockRepo.MockRefreshTokenRepository
	hasher           *mockSvc.MockPasswordHasher
	tokenService     *mockSvc.MockTokenService
}

func createTestUserService(t *testing.T, allowAdminSignUp bool) userServiceFixtures {
	cfg := newTestConfig(0)
	cfg.Auth.AllowAdminSignUp = allowAdminSignUp

	f := userServiceFixtures{
		txManager:        mockRepo.NewMockTransactionManager(t),
		userRepo:         mockRepo.NewMockUserRepository(t),
		profileRepo:      mockRepo.NewMockProfileRepository(t),
		authRepo:         mockRepo.NewMockAuthRepository(t),
		refreshTokenRepo: mockRepo.NewMockRefreshTokenRepository(t),
		hasher:           mockSvc.NewMockPasswordHasher(t),
		tokenService:     mockSvc.NewMockTokenService(t),
	}

	f.service = NewUserService(UserServiceParams{
		TxManager:        f.txManager,
		UserRepo:         f.userRepo,
		ProfileRepo:      f.profileRepo,
		AuthRepo:         f.authRepo,
		RefreshTokenRepo: f.refreshTokenRepo,
		Hasher:           f.hasher,
		TokenService:     f.tokenService,
		Config:           cfg,
		Logger:           newDiscardLogger(),
	})
	f.service.(*userService).now = func() time.Time { return testNow }

	return f
}

// expectSessionOpened covers token issuance and the direct refresh token insert.
func (f userServiceFixtures) expectSessionOpened(userID uuid.UUID, role entity.Role) {
	f.tokenService.EXPECT().GenerateTokens(userID, []string{role.String()}).Return("access-token", "refresh-token", nil).Once()
	f.tokenService.EXPECT().HashToken("refresh-token").Return("refresh-hash").Once()
	f.tokenService.EXPECT().GetRefreshTokenDuration().Return(7 * 24 * time.Hour).Once()
	f.tokenService.EXPECT().GetAccessTokenDuration().Return(15 * time.Minute).Once()
	f.refreshTokenRepo.EXPECT().
		CreateRefreshToken(mock.Anything, mock.MatchedBy(func(token *entity.RefreshToken) bool {
			return token.UserID == userID &&
				token.TokenHash == "refresh-hash" &&
				token.ExpiresAt.Equal(testNow.Add(7*24*time.Hour))
		})).
		Return(nil).Once()
}

func TestUserService_Register_Success(t *testing.T) {
	f := createTestUserService(t, false)
	ctx := context.Background()
	newID := uuid.New()

	input := &usecase.RegisterInput{
		Email:     "  Sita@Example.com ",
		Password:  "Correct#Horse9",
		Role:      entity.RoleStoreOwner,
		FirstName: "Sita",
		LastName:  "Shrestha",
	}

	f.hasher.EXPECT().ValidatePasswordStrength(input.Password).Return(nil).Once()
	f.hasher.EXPECT().Hash(input.Password).Return("bcrypt-hash", nil).Once()

	txUserRepo := mockRepo.NewMockUserRepository(t)
	txAuthRepo := mockRepo.NewMockAuthRepository(t)
	factory := mockRepo.NewMockRepositoryFactory(t)
	factory.EXPECT().UserRepo().Return(txUserRepo)
	factory.EXPECT().AuthRepo().Return(txAuthRepo)
	expectTx(f.txManager, factory)

	txUserRepo.EXPECT().FindByEmail(mock.Anything, "sita@example.com").Return(nil, repository.ErrUserNotFound).Once()
	txUserRepo.EXPECT().
		Create(mock.Anything, mock.MatchedBy(func(user *entity.User) bool {
			return user.Email == "sita@example.com" &&
				user.Profile != nil &&
				user.Profile.Role == entity.RoleStoreOwner &&
				user.Profile.FirstName == "Sita"
		})).
		Run(func(_ context.Context, user *entity.User) {
			user.ID = newID
			user.Profile.UserID = newID
		}).
		Return(nil).Once()
	txAuthRepo.EXPECT().
		CreateAuthentication(mock.Anything, &entity.Authentication{
			UserID:       newID,
			Provider:     entity.ProviderEmail,
			PasswordHash: "bcrypt-hash",
		}).
		Return(nil).Once()

	f.expectSessionOpened(newID, entity.RoleStoreOwner)

	out, err := f.service.Register(ctx, input)

	require.NoError(t, err)
	assert.Equal(t, "access-token", out.AccessToken)
	assert.Equal(t, "refresh-token", out.RefreshToken)
	assert.Equal(t, testNow.Add(15*time.Minute), out.ExpiresAt)
	assert.Equal(t, newID, out.User.ID)
	assert.Equal(t, entity.RoleStoreOwner, out.User.Role())
}

func TestUserService_Register_DuplicateEmail(t *testing.T) {
	f := createTestUserService(t, false)

	f.hasher.EXPECT().ValidatePasswordStrength(mock.Anything).Return(nil).Once()
	f.hasher.EXPECT().Hash(mock.Anything).Return("bcrypt-hash", nil).Once()

	txUserRepo := mockRepo.NewMockUserRepository(t)
	factory := mockRepo.NewMockRepositoryFactory(t)
	factory.EXPECT().UserRepo().Return(txUserRepo)
	expectTx(f.txManager, factory)
	txUserRepo.EXPECT().FindByEmail(mock.Anything, "sita@example.com").Return(&entity.User{ID: uuid.New()}, nil).Once()

	out, err := f.service.Register(context.Background(), &usecase.RegisterInput{
		Email:    "sita@example.com",
		Password: "Correct#Horse9",
		Role:     entity.RoleCustomer,
	})

	assert.Nil(t, out)
	assert.ErrorIs(t, err, domainerrors.ErrUserAlreadyExists)
}

func TestUserService_Register_RejectedBeforeStorage(t *testing.T) {
	tests := []struct {
		name       string
		allowAdmin bool
		role       entity.Role
		strength   error
		wantErr    error
	}{
		{
			name:    "unknown role",
			role:    entity.Role("jeweler"),
			wantErr: domainerrors.ErrValidationFailed,
		},
		{
			name:    "admin sign-up disabled",
			role:    entity.RoleAdmin,
			wantErr: domainerrors.ErrRoleNotAllowed,
		},
		{
			name:     "weak password",
			role:     entity.RoleCustomer,
			strength: domainerrors.ErrPasswordStrength.WithDetails("password must be at least 8 characters long"),
			wantErr:  domainerrors.ErrPasswordStrength,
		},
		{
			name:       "weak password with admin sign-up enabled",
			allowAdmin: true,
			role:       entity.RoleAdmin,
			strength:   domainerrors.ErrPasswordStrength,
			wantErr:    domainerrors.ErrPasswordStrength,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := createTestUserService(t, tt.allowAdmin)
			if tt.strength != nil {
				f.hasher.EXPECT().ValidatePasswordStrength("short").Return(tt.strength).Once()
			}

			out, err := f.service.Register(context.Background(), &usecase.RegisterInput{
				Email:    "sita@example.com",
				Password: "short",
				Role:     tt.role,
			})

			assert.Nil(t, out)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestUserService_Login_Success(t *testing.T) {
	f := createTestUserService(t, false)
	userID := uuid.New()
	user := &entity.User{
		ID:      userID,
		Email:   "ram@example.com",
		Profile: &entity.Profile{UserID: userID, Role: entity.RoleAdmin},
	}

	f.userRepo.EXPECT().FindByEmail(mock.Anything, "ram@example.com").Return(user, nil).Once()
	f.authRepo.EXPECT().
		FindAuthenticationByUserID(mock.Anything, userID, entity.ProviderEmail).
		Return(&entity.Authentication{UserID: userID, Provider: entity.ProviderEmail, PasswordHash: "bcrypt-hash"}, nil).Once()
	f.hasher.EXPECT().Check("Correct#Horse9", "bcrypt-hash").Return(true).Once()
	f.expectSessionOpened(userID, entity.RoleAdmin)

	out, err := f.service.Login(context.Background(), &usecase.LoginInput{Email: "Ram@example.com", Password: "Correct#Horse9"})

	require.NoError(t, err)
	assert.Equal(t, user, out.User)
	assert.Equal(t, "refresh-token", out.RefreshToken)
}

func TestUserService_Login_InvalidCredentials(t *testing.T) {
	userID := uuid.New()
	user := &entity.User{ID: userID, Email: "ram@example.com"}

	tests := []struct {
		name  string
		setup func(f userServiceFixtures)
	}{
		{
			name: "unknown email",
			setup: func(f userServiceFixtures) {
				f.userRepo.EXPECT().FindByEmail(mock.Anything, "ram@example.com").Return(nil, repository.ErrUserNotFound).Once()
			},
		},
		{
			name: "no password credential",
			setup: func(f userServiceFixtures) {
				f.userRepo.EXPECT().FindByEmail(mock.Anything, "ram@example.com").Return(user, nil).Once()
				f.authRepo.EXPECT().FindAuthenticationByUserID(mock.Anything, userID, entity.ProviderEmail).Return(nil, repository.ErrAuthNotFound).Once()
			},
		},
		{
			name: "wrong password",
			setup: func(f userServiceFixtures) {
				f.userRepo.EXPECT().FindByEmail(mock.Anything, "ram@example.com").Return(user, nil).Once()
				f.authRepo.EXPECT().
					FindAuthenticationByUserID(mock.Anything, userID, entity.ProviderEmail).
					Return(&entity.Authentication{UserID: userID, PasswordHash: "bcrypt-hash"}, nil).Once()
				f.hasher.EXPECT().Check("wrong", "bcrypt-hash").Return(false).Once()
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := createTestUserService(t, false)
			tt.setup(f)

			out, err := f.service.Login(context.Background(), &usecase.LoginInput{Email: "ram@example.com", Password: "wrong"})

			assert.Nil(t, out)
			assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
		})
	}
}

func TestUserService_Login_RepositoryFailure(t *testing.T) {
	f := createTestUserService(t, false)
	dbErr := errors.New("connection reset")
	f.userRepo.EXPECT().FindByEmail(mock.Anything, "ram@example.com").Return(nil, dbErr).Once()

	_, err := f.service.Login(context.Background(), &usecase.LoginInput{Email: "ram@example.com", Password: "x"})

	require.ErrorIs(t, err, dbErr)
	assert.NotErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestUserService_RefreshToken(t *testing.T) {
	userID := uuid.New()

	t.Run("success", func(t *testing.T) {
		f := createTestUserService(t, false)
		f.tokenService.EXPECT().ValidateRefreshToken("refresh-token").
			Return(&service.Claims{UserID: userID, Type: service.TokenTypeRefresh}, nil).Once()
		f.tokenService.EXPECT().HashToken("refresh-token").Return("refresh-hash").Once()
		f.refreshTokenRepo.EXPECT().FindRefreshTokenByHash(mock.Anything, "refresh-hash").
			Return(&entity.RefreshToken{UserID: userID}, nil).Once()
		f.userRepo.EXPECT().FindByID(mock.Anything, userID).
			Return(&entity.User{ID: userID, Profile: &entity.Profile{Role: entity.RoleCustomer}}, nil).Once()
		f.tokenService.EXPECT().GenerateTokens(userID, []string{"customer"}).Return("access-2", "unused", nil).Once()
		f.tokenService.EXPECT().GetAccessTokenDuration().Return(15 * time.Minute).Once()

		out, err := f.service.RefreshToken(context.Background(), &usecase.RefreshTokenInput{RefreshToken: "refresh-token"})

		require.NoError(t, err)
		assert.Equal(t, "access-2", out.AccessToken)
		assert.Equal(t, testNow.Add(15*time.Minute), out.ExpiresAt)
	})

	t.Run("invalid signature", func(t *testing.T) {
		f := createTestUserService(t, false)
		f.tokenService.EXPECT().ValidateRefreshToken("forged").Return(nil, errors.New("token signature is invalid")).Once()

		_, err := f.service.RefreshToken(context.Background(), &usecase.RefreshTokenInput{RefreshToken: "forged"})

		assert.ErrorIs(t, err, domainerrors.ErrRefreshTokenInvalid)
	})

	t.Run("revoked", func(t *testing.T) {
		f := createTestUserService(t, false)
		f.tokenService.EXPECT().ValidateRefreshToken("refresh-token").Return(&service.Claims{UserID: userID}, nil).Once()
		f.tokenService.EXPECT().HashToken("refresh-token").Return("refresh-hash").Once()
		f.refreshTokenRepo.EXPECT().FindRefreshTokenByHash(mock.Anything, "refresh-hash").
			Return(nil, repository.ErrRefreshTokenNotFound).Once()

		_, err := f.service.RefreshToken(context.Background(), &usecase.RefreshTokenInput{RefreshToken: "refresh-token"})

		assert.ErrorIs(t, err, domainerrors.ErrRefreshTokenInvalid)
	})
}

func TestUserService_Logout_DeletesEvenInvalidToken(t *testing.T) {
	f := createTestUserService(t, false)
	f.tokenService.EXPECT().ValidateRefreshToken("expired").Return(nil, errors.New("token is expired")).Once()
	f.tokenService.EXPECT().HashToken("expired").Return("expired-hash").Once()
	f.refreshTokenRepo.EXPECT().DeleteRefreshTokenByHash(mock.Anything, "expired-hash").Return(nil).Once()

	assert.NoError(t, f.service.Logout(context.Background(), &usecase.LogoutInput{RefreshToken: "expired"}))
}

func TestUserService_GetProfile(t *testing.T) {
	userID := uuid.New()

	t.Run("found", func(t *testing.T) {
		f := createTestUserService(t, false)
		want := &entity.Profile{UserID: userID, Role: entity.RoleStoreOwner}
		f.profileRepo.EXPECT().FindByUserID(mock.Anything, userID).Return(want, nil).Once()

		got, err := f.service.GetProfile(context.Background(), userID)

		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("missing", func(t *testing.T) {
		f := createTestUserService(t, false)
		f.profileRepo.EXPECT().FindByUserID(mock.Anything, userID).Return(nil, repository.ErrProfileNotFound).Once()

		_, err := f.service.GetProfile(context.Background(), userID)

		assert.ErrorIs(t, err, domainerrors.ErrProfileNotFound)
	})
}

func TestUserService_GetSessionUser_Missing(t *testing.T) {
	f := createTestUserService(t, false)
	userID := uuid.New()
	f.userRepo.EXPECT().FindByID(mock.Anything, userID).Return(nil, repository.ErrUserNotFound).Once()

	_, err := f.service.GetSessionUser(context.Background(), userID)

	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}

func TestUserService_PurgeExpiredSessions(t *testing.T) {
	f := createTestUserService(t, false)
	f.refreshTokenRepo.EXPECT().DeleteExpiredRefreshTokens(mock.Anything).Return(int64(4), nil).Once()

	removed, err := f.service.PurgeExpiredSessions(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(4), removed)
}
