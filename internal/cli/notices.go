package cli

import (
	"fmt"

	"github.com/slackconnect/cli/internal/notify"
)

// success records and prints the outcome of a user-triggered action. Every
// mutation ends in exactly one of success/fail so the user is never left
// without feedback.
func (a *App) success(msg string) {
	a.notices.Push(notify.KindSuccess, msg)
	fmt.Println("OK:", msg)
}

func (a *App) fail(prefix string, err error) {
	msg := prefix + ": " + err.Error()
	a.notices.Push(notify.KindError, msg)
	fmt.Println("ERROR:", msg)
}

func (a *App) warn(msg string) {
	a.notices.Push(notify.KindWarning, msg)
	fmt.Println("WARNING:", msg)
}

// Notices lists the current notification queue, newest first.
func (a *App) Notices() {
	items := a.notices.Notifications()
	if len(items) == 0 {
		fmt.Println("No notifications.")
		return
	}
	for _, n := range items {
		fmt.Printf("[%s] %s  (id %s)\n", n.Kind, n.Message, n.ID)
	}
}

// DismissNotice removes one notification by id, or all of them.
func (a *App) DismissNotice(id string) {
	if id == "all" {
		a.notices.Clear()
		fmt.Println("Notifications cleared.")
		return
	}
	a.notices.Dismiss(id)
}
