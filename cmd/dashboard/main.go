package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"teacher-transfer-system/internal/dashboard"
	"teacher-transfer-system/internal/model"
	"teacher-transfer-system/pkg/client"
	"teacher-transfer-system/pkg/session"
)

const usage = `Usage: dashboard [-server URL] <command> [options]

Commands:
  login -username U -password P   authenticate and store the session token
  logout                          drop the stored session token
  whoami                          show the logged-in identity
  schools [-filter Q] [-page N]   list schools
  teachers [-filter Q] [-page N]  list teachers
  transfers [-filter Q] [-page N] list transfers with available actions
  decide -id N -status S [-reason R]
                                  apply a workflow decision to a transfer
  request -teacher N -to N        open a transfer request
  stats                           show dashboard totals and monthly breakdown
  notifications [-limit N]        show recent transfer activity
`

func main() {
	serverURL := flag.String("server", envOr("TTS_SERVER_URL", "http://localhost:4000"), "API base URL")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	sess := session.New(session.DefaultStore())
	api := client.New(*serverURL, client.WithSession(sess))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := run(ctx, api, sess, flag.Arg(0), flag.Args()[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, api *client.Client, sess *session.Session, command string, args []string) error {
	switch command {
	case "login":
		return runLogin(ctx, api, args)
	case "logout":
		return api.Logout()
	case "whoami":
		return runWhoami(sess)
	case "schools":
		return runSchools(ctx, api, args)
	case "teachers":
		return runTeachers(ctx, api, args)
	case "transfers":
		return runTransfers(ctx, api, sess, args)
	case "decide":
		return runDecide(ctx, api, args)
	case "request":
		return runRequest(ctx, api, args)
	case "stats":
		return runStats(ctx, api)
	case "notifications":
		return runNotifications(ctx, api, args)
	default:
		flag.Usage()
		return fmt.Errorf("unknown command %q", command)
	}
}

func runLogin(ctx context.Context, api *client.Client, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	username := fs.String("username", "", "account username")
	password := fs.String("password", "", "account password")
	_ = fs.Parse(args)

	if *username == "" || *password == "" {
		return errors.New("login requires -username and -password")
	}

	result, err := api.Login(ctx, *username, *password)
	if err != nil {
		return err
	}

	fmt.Printf("Logged in as %s (%s)\n", result.User.Username, result.User.Role)
	return nil
}

func runWhoami(sess *session.Session) error {
	identity, err := sess.Current()
	if errors.Is(err, session.ErrNotLoggedIn) {
		fmt.Println("Not logged in.")
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Printf("%s (%s)", identity.Username, identity.Role)
	if identity.Expired() {
		fmt.Print("  [session expired]")
	}
	fmt.Println()
	return nil
}

func runSchools(ctx context.Context, api *client.Client, args []string) error {
	filter, page := listFlags("schools", args)

	schools, err := api.Schools(ctx)
	if err != nil {
		return err
	}

	view := dashboard.NewListView(schools, dashboard.SchoolKey, dashboard.DefaultPageSize)
	view.SetFilter(filter)
	view.SetPage(page)
	dashboard.RenderSchools(os.Stdout, view)
	return nil
}

func runTeachers(ctx context.Context, api *client.Client, args []string) error {
	filter, page := listFlags("teachers", args)

	teachers, err := api.Teachers(ctx)
	if err != nil {
		return err
	}

	view := dashboard.NewListView(teachers, dashboard.TeacherKey, dashboard.DefaultPageSize)
	view.SetFilter(filter)
	view.SetPage(page)
	dashboard.RenderTeachers(os.Stdout, view)
	return nil
}

func runTransfers(ctx context.Context, api *client.Client, sess *session.Session, args []string) error {
	filter, page := listFlags("transfers", args)

	role := model.Role("")
	if identity, err := sess.Current(); err == nil {
		role = model.Role(identity.Role)
	}

	transfers, err := api.Transfers(ctx)
	if err != nil {
		return err
	}

	view := dashboard.NewListView(transfers, dashboard.TransferKey, dashboard.DefaultPageSize)
	view.SetFilter(filter)
	view.SetPage(page)
	dashboard.RenderTransfers(os.Stdout, view, role)
	return nil
}

func runDecide(ctx context.Context, api *client.Client, args []string) error {
	fs := flag.NewFlagSet("decide", flag.ExitOnError)
	id := fs.Int64("id", 0, "transfer id")
	status := fs.String("status", "", "target status")
	reason := fs.String("reason", "", "decision reason, required on rejections")
	_ = fs.Parse(args)

	if *id <= 0 || *status == "" {
		return errors.New("decide requires -id and -status")
	}

	transfer, err := api.UpdateTransferStatus(ctx, *id, client.UpdateTransferStatusRequest{
		Status: *status,
		Reason: *reason,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Transfer %d is now %s\n", transfer.ID, model.TransferStatus(transfer.Status).Display())
	return nil
}

func runRequest(ctx context.Context, api *client.Client, args []string) error {
	fs := flag.NewFlagSet("request", flag.ExitOnError)
	teacherID := fs.Int64("teacher", 0, "teacher id")
	toSchoolID := fs.Int64("to", 0, "destination school id")
	_ = fs.Parse(args)

	if *teacherID <= 0 || *toSchoolID <= 0 {
		return errors.New("request requires -teacher and -to")
	}

	transfer, err := api.CreateTransfer(ctx, client.CreateTransferRequest{
		TeacherID:  *teacherID,
		ToSchoolID: *toSchoolID,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Opened transfer %d (%s)\n", transfer.ID, model.TransferStatus(transfer.Status).Display())
	return nil
}

func runStats(ctx context.Context, api *client.Client) error {
	stats, err := api.Stats(ctx)
	if err != nil {
		return err
	}

	dashboard.RenderStats(os.Stdout, stats)
	return nil
}

func runNotifications(ctx context.Context, api *client.Client, args []string) error {
	fs := flag.NewFlagSet("notifications", flag.ExitOnError)
	limit := fs.Int("limit", 20, "maximum entries")
	_ = fs.Parse(args)

	notifications, err := api.Notifications(ctx, *limit)
	if err != nil {
		return err
	}

	dashboard.RenderNotifications(os.Stdout, notifications)
	return nil
}

func listFlags(name string, args []string) (filter string, page int) {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	filterFlag := fs.String("filter", "", "substring filter")
	pageFlag := fs.Int("page", 1, "page number")
	_ = fs.Parse(args)

	return *filterFlag, *pageFlag
}

func envOr(key string, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}
