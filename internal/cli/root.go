package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

// commands is the surface the REPL dispatches to. The real App satisfies
// it; tests can provide a lightweight stub.
type commands interface {
	isLoggedIn() bool
	Connect(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Status(ctx context.Context) error
	Refresh(ctx context.Context) error
	Channels(ctx context.Context) error
	Send(ctx context.Context) error
	Schedule(ctx context.Context) error
	ListScheduled(ctx context.Context) error
	Cancel(ctx context.Context) error
	Edit(ctx context.Context) error
	WebhookSend(ctx context.Context) error
	WebhookSchedule(ctx context.Context) error
	WebhookList(ctx context.Context) error
	WebhookCancel(ctx context.Context) error
	WebhookEdit(ctx context.Context) error
	TestWebhook(ctx context.Context) error
	Notices()
	DismissNotice(id string)
}

func (a *App) getStatus() string {
	s := a.session.State()
	switch {
	case s.IsLoading:
		return "(loading)"
	case !s.IsAuthenticated:
		return ""
	case !s.User.TokenValid:
		return fmt.Sprintf("(%s token-expired)", s.User.SlackUserID)
	default:
		return fmt.Sprintf("(%s)", s.User.SlackUserID)
	}
}

// Root runs the interactive loop until EOF or exit.
func (a *App) Root(ctx context.Context) {
	fmt.Println("Welcome to Slack Connect CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Printf("scli %s> ", a.getStatus())
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		if done := runCommand(ctx, a, parts[0], parts[1:]); done {
			return
		}
	}
}

// runCommand dispatches one REPL command. It returns true when the loop
// should terminate. Handler errors are not propagated: handlers report
// their own failures through the notification queue.
func runCommand(ctx context.Context, a commands, cmd string, args []string) bool {
	switch cmd {
	case "help":
		if a.isLoggedIn() {
			printlnFn("Session:  status, refresh, logout, exit")
			printlnFn("Messages: channels, send, schedule, list, cancel, edit")
		} else {
			printlnFn("Session:  connect, login, status, exit")
		}
		printlnFn("Webhook:  wsend, wschedule, wlist, wcancel, wedit, testhook")
		printlnFn("Notices:  notices, dismiss <id|all>")

	case "connect":
		_ = a.Connect(ctx)
	case "login":
		_ = a.Login(ctx)
	case "logout":
		_ = a.Logout(ctx)
	case "status", "whoami":
		_ = a.Status(ctx)
	case "refresh":
		_ = a.Refresh(ctx)

	case "channels":
		_ = a.Channels(ctx)
	case "send":
		_ = a.Send(ctx)
	case "schedule":
		_ = a.Schedule(ctx)
	case "l", "list":
		_ = a.ListScheduled(ctx)
	case "cancel":
		_ = a.Cancel(ctx)
	case "edit":
		_ = a.Edit(ctx)

	case "wsend":
		_ = a.WebhookSend(ctx)
	case "wschedule":
		_ = a.WebhookSchedule(ctx)
	case "wlist":
		_ = a.WebhookList(ctx)
	case "wcancel":
		_ = a.WebhookCancel(ctx)
	case "wedit":
		_ = a.WebhookEdit(ctx)
	case "testhook":
		_ = a.TestWebhook(ctx)

	case "notices":
		a.Notices()
	case "dismiss":
		if len(args) == 0 {
			printlnFn("Usage: dismiss <id|all>")
			break
		}
		a.DismissNotice(args[0])

	case "exit", "quit":
		printlnFn("Bye!")
		return true

	default:
		printlnFn("Unknown command:", cmd)
	}
	return false
}
