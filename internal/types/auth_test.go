package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUserRequest_Validation(t *testing.T) {
	validate := validator.New()

	tests := []struct {
		name    string
		request CreateUserRequest
		wantErr bool
		errMsg  string
	}{
		{
			name: "valid request",
			request: CreateUserRequest{
				Name:     "Jane Smith",
				Email:    "jane@example.com",
				Password: "password123",
			},
			wantErr: false,
		},
		{
			name: "missing name",
			request: CreateUserRequest{
				Email:    "jane@example.com",
				Password: "password123",
			},
			wantErr: true,
			errMsg:  "required",
		},
		{
			name: "missing email",
			request: CreateUserRequest{
				Name:     "Jane Smith",
				Password: "password123",
			},
			wantErr: true,
			errMsg:  "required",
		},
		{
			name: "invalid email format",
			request: CreateUserRequest{
				Name:     "Jane Smith",
				Email:    "not-an-email",
				Password: "password123",
			},
			wantErr: true,
			errMsg:  "email",
		},
		{
			name: "password too short",
			request: CreateUserRequest{
				Name:     "Jane Smith",
				Email:    "jane@example.com",
				Password: "short",
			},
			wantErr: true,
			errMsg:  "min",
		},
		{
			name: "password exactly 8 characters",
			request: CreateUserRequest{
				Name:     "Jane Smith",
				Email:    "jane@example.com",
				Password: "12345678",
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validate.Struct(tt.request)
			if tt.wantErr {
				require.Error(t, err)
				if tt.errMsg != "" {
					assert.Contains(t, err.Error(), tt.errMsg)
				}
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestLoginRequest_Validation(t *testing.T) {
	validate := validator.New()

	tests := []struct {
		name    string
		request LoginRequest
		wantErr bool
	}{
		{
			name:    "valid request",
			request: LoginRequest{Email: "jane@example.com", Password: "password123"},
			wantErr: false,
		},
		{
			name:    "missing email",
			request: LoginRequest{Password: "password123"},
			wantErr: true,
		},
		{
			name:    "invalid email",
			request: LoginRequest{Email: "nope", Password: "password123"},
			wantErr: true,
		},
		{
			name:    "missing password",
			request: LoginRequest{Email: "jane@example.com"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validate.Struct(tt.request)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestUpdatePasswordRequest_Validation(t *testing.T) {
	validate := validator.New()

	valid := UpdatePasswordRequest{CurrentPassword: "oldpassword", NewPassword: "newpassword"}
	require.NoError(t, validate.Struct(valid))

	short := UpdatePasswordRequest{CurrentPassword: "oldpassword", NewPassword: "short"}
	require.Error(t, validate.Struct(short))

	missing := UpdatePasswordRequest{NewPassword: "newpassword"}
	require.Error(t, validate.Struct(missing))
}

func TestUser_JSONRoundTrip(t *testing.T) {
	user := User{
		ID:          uuid.New(),
		Name:        "Jane Smith",
		Email:       "jane@example.com",
		PasswordSet: true,
		CreatedAt:   time.Now().UTC().Truncate(time.Second),
		UpdatedAt:   time.Now().UTC().Truncate(time.Second),
	}

	data, err := json.Marshal(user)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "password_hash")

	var decoded User
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, user.ID, decoded.ID)
	assert.Equal(t, user.Email, decoded.Email)
	assert.True(t, decoded.PasswordSet)
}

func TestValidateMethods(t *testing.T) {
	create := &CreateUserRequest{Name: "Jane", Email: "jane@example.com", Password: "password123"}
	assert.NoError(t, create.Validate())

	login := &LoginRequest{Email: "bad", Password: "x"}
	assert.Error(t, login.Validate())

	update := &UpdatePasswordRequest{CurrentPassword: "old", NewPassword: "newpassword"}
	assert.NoError(t, update.Validate())
}
