package cli

import (
	"context"
	"fmt"
	"os"
)

// getSimpleText and getToken are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getToken = GetToken

// Connect fetches the Slack OAuth URL and prints it. After approving the
// app in the browser, the user lands on a page showing the access token to
// paste into the login command.
func (a *App) Connect(ctx context.Context) error {
	out, err := a.gateway.GetAuthURL(ctx)
	if err != nil {
		a.fail("failed to get auth URL", err)
		return err
	}

	fmt.Println("Open this URL in your browser to connect your workspace:")
	fmt.Println(" ", out.AuthURL)
	fmt.Println("Then run 'login' and paste the token you received.")
	return nil
}

// Login reads the access token and establishes the session. This is the one
// flow where a failure is surfaced directly: the user just pasted a token
// and needs to know it was rejected.
func (a *App) Login(ctx context.Context) error {
	token, err := getToken(os.Stdout)
	if err != nil {
		return err
	}
	if token == "" {
		a.warn("empty token, not logging in")
		return nil
	}

	if err := a.session.Login(ctx, token); err != nil {
		a.fail("login failed", err)
		return err
	}

	s := a.session.State()
	a.success(fmt.Sprintf("logged in as %s (team %s)", s.User.SlackUserID, s.User.TeamID))
	return nil
}

// Logout ends the session. It always succeeds locally.
func (a *App) Logout(ctx context.Context) error {
	a.session.Logout(ctx)
	a.success("logged out")
	return nil
}

// Status prints the current session snapshot.
func (a *App) Status(ctx context.Context) error {
	s := a.session.State()
	switch {
	case s.IsLoading:
		fmt.Println("Session: loading...")
	case !s.IsAuthenticated:
		fmt.Println("Session: not connected. Run 'connect' to start.")
	default:
		fmt.Printf("Session: %s @ team %s\n", s.User.SlackUserID, s.User.TeamID)
		if s.User.TokenValid {
			fmt.Println("Slack credential: valid")
		} else {
			fmt.Println("Slack credential: EXPIRED — reconnect your workspace")
		}
	}
	return nil
}

// Refresh re-checks the workspace credential and refreshes the user record.
func (a *App) Refresh(ctx context.Context) error {
	if !a.isLoggedIn() {
		fmt.Println("Not logged in.")
		return nil
	}

	a.session.CheckTokenValidity(ctx)
	a.session.RefreshUser(ctx)
	return a.Status(ctx)
}
