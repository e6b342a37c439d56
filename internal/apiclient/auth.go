package apiclient

import "context"

// User is the authenticated cashier/admin account.
type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role,omitempty"`
}

type userEnvelope struct {
	User User `json:"user"`
}

// Me probes the current session. A 401 means no session; anything else
// unexpected is surfaced as-is.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var env userEnvelope
	if err := c.get(ctx, "/auth/me", nil, &env); err != nil {
		return nil, err
	}
	return &env.User, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*User, error) {
	body := map[string]string{"email": email, "password": password}
	var env userEnvelope
	if err := c.post(ctx, "/auth/login", body, &env); err != nil {
		return nil, err
	}
	return &env.User, nil
}

func (c *Client) Logout(ctx context.Context) error {
	return c.post(ctx, "/auth/logout", nil, nil)
}
