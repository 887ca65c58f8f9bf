package auth

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// AdminClient talks to the auth service with the elevated service key. It is
// wired only into server-side user management and must never reach anything
// browser-facing.
type AdminClient struct {
	client *Client
}

func NewAdminClient(baseURL, serviceKey string) *AdminClient {
	return &AdminClient{
		client: &Client{
			baseURL: strings.TrimRight(baseURL, "/"),
			apiKey:  serviceKey,
			client:  &http.Client{Timeout: 15 * time.Second},
		},
	}
}

type CreateUserParams struct {
	Email    string
	Password string
	FullName string
}

// CreateUser provisions an auth identity with the email pre-confirmed, the
// same way the old admin panel did.
func (a *AdminClient) CreateUser(ctx context.Context, params CreateUserParams) (*User, error) {
	body := map[string]any{
		"email":         params.Email,
		"password":      params.Password,
		"email_confirm": true,
		"user_metadata": map[string]string{"full_name": params.FullName},
	}

	var user User
	if err := a.client.do(ctx, http.MethodPost, "/auth/v1/admin/users", "", body, &user); err != nil {
		return nil, err
	}

	return &user, nil
}

func (a *AdminClient) DeleteUser(ctx context.Context, id uuid.UUID) error {
	return a.client.do(ctx, http.MethodDelete, "/auth/v1/admin/users/"+id.String(), "", nil, nil)
}
