package remote

import (
	"context"
	"fmt"
	"time"
)

// User identifies a signed-in account.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Session holds the tokens and identity returned by the auth endpoints.
type Session struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
	User         User      `json:"user"`
}

// authResponse is the wire shape of the auth endpoints. Sign-up without
// auto-confirmation returns only the user, no tokens.
type authResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
	User         *User  `json:"user"`
	// Sign-up with confirmation pending returns the bare user object.
	ID    string `json:"id"`
	Email string `json:"email"`
}

func (r *authResponse) session() *Session {
	if r.AccessToken == "" {
		return nil
	}
	s := &Session{
		AccessToken:  r.AccessToken,
		RefreshToken: r.RefreshToken,
		ExpiresAt:    time.Now().Add(time.Duration(r.ExpiresIn) * time.Second),
	}
	if r.User != nil {
		s.User = *r.User
	}
	return s
}

// SignUp registers a new account. When the backend requires email
// confirmation before first sign-in, the returned session is nil and
// confirmationRequired is true; the caller must surface that as a
// "check your email" outcome, not an error.
func (c *Client) SignUp(ctx context.Context, email, password, redirectTo string) (*Session, bool, error) {
	path := "/auth/v1/signup"
	if redirectTo != "" {
		path += "?redirect_to=" + redirectTo
	}

	body := map[string]string{"email": email, "password": password}
	var resp authResponse
	if err := c.do(ctx, "POST", path, "", nil, body, &resp); err != nil {
		return nil, false, &AuthError{Message: fmt.Sprintf("sign up failed: %v", err)}
	}

	if sess := resp.session(); sess != nil {
		return sess, false, nil
	}
	return nil, true, nil
}

// SignIn exchanges credentials for a session.
func (c *Client) SignIn(ctx context.Context, email, password string) (*Session, error) {
	body := map[string]string{"email": email, "password": password}
	var resp authResponse
	if err := c.do(ctx, "POST", "/auth/v1/token?grant_type=password", "", nil, body, &resp); err != nil {
		return nil, &AuthError{Message: fmt.Sprintf("sign in failed: %v", err)}
	}

	sess := resp.session()
	if sess == nil {
		return nil, &AuthError{Message: "sign in failed: no session returned"}
	}
	return sess, nil
}

// SignOut invalidates the session on the backend.
func (c *Client) SignOut(ctx context.Context, accessToken string) error {
	if err := c.do(ctx, "POST", "/auth/v1/logout", accessToken, nil, nil, nil); err != nil {
		return &AuthError{Message: fmt.Sprintf("sign out failed: %v", err)}
	}
	return nil
}
