package auth_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"centavo/internal/auth"
	"centavo/internal/auth/storage"
)

func signedToken(t *testing.T, expiresAt time.Time) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": expiresAt.Unix(),
	})

	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	return signed
}

func TestStore_Login(t *testing.T) {
	type testCase struct {
		name      string
		creds     auth.Credentials
		setupMock func(m *auth.MockAPI)
		wantErr   bool
	}

	session := &auth.Session{
		AccessToken:  "access-token",
		RefreshToken: "refresh-token",
		User:         auth.User{ID: uuid.New(), Username: "maria"},
	}

	tests := []testCase{
		{
			name:  "Success",
			creds: auth.Credentials{Username: "maria", Password: "secret"},
			setupMock: func(m *auth.MockAPI) {
				m.EXPECT().
					Login(gomock.Any(), auth.Credentials{Username: "maria", Password: "secret"}).
					Return(session, nil)
			},
		},
		{
			name:  "BadCredentials",
			creds: auth.Credentials{Username: "maria", Password: "wrong"},
			setupMock: func(m *auth.MockAPI) {
				m.EXPECT().
					Login(gomock.Any(), gomock.Any()).
					Return(nil, errors.New("invalid credentials"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			api := auth.NewMockAPI(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(api)
			}

			files := storage.New(filepath.Join(t.TempDir(), "session.json"))
			store := auth.NewStore(api, files)

			got, err := store.Login(context.Background(), tt.creds)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)
				assert.Nil(t, store.Session())
				assert.Equal(t, "invalid credentials", store.Err())
				assert.False(t, store.Authenticated())

				return
			}

			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, "maria", store.User().Username)

			// Session must have hit the disk, not just memory.
			persisted, err := files.Load()
			require.NoError(t, err)
			assert.Equal(t, session.AccessToken, persisted.AccessToken)
			assert.Equal(t, session.User.ID, persisted.User.ID)
		})
	}
}

func TestStore_Login_StorageFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	api := auth.NewMockAPI(ctrl)
	files := auth.NewMockStorage(ctrl)

	api.EXPECT().
		Login(gomock.Any(), gomock.Any()).
		Return(&auth.Session{AccessToken: "tok"}, nil)
	files.EXPECT().
		Save(gomock.Any()).
		Return(errors.New("disk full"))

	store := auth.NewStore(api, files)

	got, err := store.Login(context.Background(), auth.Credentials{Username: "maria"})
	require.Error(t, err)
	assert.Nil(t, got)
	assert.Nil(t, store.Session())
	assert.Equal(t, "disk full", store.Err())
}

func TestStore_Logout_ClearsDespiteServerFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	api := auth.NewMockAPI(ctrl)
	files := storage.New(filepath.Join(t.TempDir(), "session.json"))
	store := auth.NewStore(api, files)

	api.EXPECT().
		Login(gomock.Any(), gomock.Any()).
		Return(&auth.Session{AccessToken: "tok", User: auth.User{Username: "maria"}}, nil)
	_, err := store.Login(context.Background(), auth.Credentials{Username: "maria"})
	require.NoError(t, err)
	require.True(t, store.Authenticated())

	api.EXPECT().Logout(gomock.Any()).Return(errors.New("server unreachable"))
	store.Logout(context.Background())

	assert.False(t, store.Authenticated())
	assert.Nil(t, store.Session())
	assert.Nil(t, store.User())

	_, err = files.Load()
	assert.ErrorIs(t, err, auth.ErrNoSession)
}

func TestStore_Initialize(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	api := auth.NewMockAPI(ctrl)
	path := filepath.Join(t.TempDir(), "session.json")

	seed := storage.New(path)
	require.NoError(t, seed.Save(&auth.Session{
		AccessToken: "tok",
		User:        auth.User{Username: "maria"},
	}))

	store := auth.NewStore(api, storage.New(path))
	store.Initialize()

	require.NotNil(t, store.Session())
	assert.Equal(t, "maria", store.User().Username)
}

func TestStore_Initialize_Idempotent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	api := auth.NewMockAPI(ctrl)
	files := auth.NewMockStorage(ctrl)

	// Only the first call may touch the storage.
	files.EXPECT().Load().Return(nil, auth.ErrNoSession).Times(1)

	store := auth.NewStore(api, files)
	store.Initialize()
	store.Initialize()

	assert.Nil(t, store.Session())
}

func TestStore_Authenticated(t *testing.T) {
	type testCase struct {
		name    string
		session *auth.Session
		want    bool
	}

	tests := []testCase{
		{
			name: "NoSession",
			want: false,
		},
		{
			name:    "EmptyToken",
			session: &auth.Session{},
			want:    false,
		},
		{
			name:    "OpaqueTokenCountsAsValid",
			session: &auth.Session{AccessToken: "not-a-jwt"},
			want:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			api := auth.NewMockAPI(ctrl)
			files := auth.NewMockStorage(ctrl)
			store := auth.NewStore(api, files)

			if tt.session != nil {
				api.EXPECT().Login(gomock.Any(), gomock.Any()).Return(tt.session, nil)
				files.EXPECT().Save(gomock.Any()).Return(nil)

				_, err := store.Login(context.Background(), auth.Credentials{})
				require.NoError(t, err)
			}

			assert.Equal(t, tt.want, store.Authenticated())
		})
	}
}

func TestStore_Authenticated_TokenExpiry(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	api := auth.NewMockAPI(ctrl)
	files := auth.NewMockStorage(ctrl)
	files.EXPECT().Save(gomock.Any()).Return(nil).AnyTimes()

	store := auth.NewStore(api, files)

	api.EXPECT().
		Login(gomock.Any(), gomock.Any()).
		Return(&auth.Session{AccessToken: signedToken(t, time.Now().Add(time.Hour))}, nil)
	_, err := store.Login(context.Background(), auth.Credentials{})
	require.NoError(t, err)
	assert.True(t, store.Authenticated())

	api.EXPECT().
		Login(gomock.Any(), gomock.Any()).
		Return(&auth.Session{AccessToken: signedToken(t, time.Now().Add(-time.Hour))}, nil)
	_, err = store.Login(context.Background(), auth.Credentials{})
	require.NoError(t, err)
	assert.False(t, store.Authenticated())
}

func TestStore_UpdateProfile_PersistsUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	api := auth.NewMockAPI(ctrl)
	files := storage.New(filepath.Join(t.TempDir(), "session.json"))
	store := auth.NewStore(api, files)

	api.EXPECT().
		Login(gomock.Any(), gomock.Any()).
		Return(&auth.Session{AccessToken: "tok", User: auth.User{Username: "maria"}}, nil)
	_, err := store.Login(context.Background(), auth.Credentials{Username: "maria"})
	require.NoError(t, err)

	api.EXPECT().
		UpdateProfile(gomock.Any(), auth.ProfileParams{FirstName: "Maria", LastName: "Silva"}).
		Return(&auth.User{Username: "maria", FirstName: "Maria", LastName: "Silva"}, nil)

	user, err := store.UpdateProfile(context.Background(), auth.ProfileParams{FirstName: "Maria", LastName: "Silva"})
	require.NoError(t, err)
	assert.Equal(t, "Maria", user.FirstName)

	persisted, err := files.Load()
	require.NoError(t, err)
	assert.Equal(t, "Silva", persisted.User.LastName)
}
