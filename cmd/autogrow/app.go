package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"auto_grow/internal/client"
	"auto_grow/internal/config"
	"auto_grow/internal/logger"
	"auto_grow/internal/models"
	"auto_grow/internal/repository"
	"auto_grow/internal/repository/db"
	"auto_grow/internal/session"

	"github.com/spf13/pflag"
)

const usage = `usage: autogrow [flags] <command> [args]

commands:
  login                         sign in (-u user, password from -p or stdin)
  logout                        forget the stored credentials
  status                        show the session state
  devices | stages | protocols  list the catalog
  actions                       list custom actions
  trackings <deviceId> [window] readings for a device, optionally limited to
                                today, week, month, quarter, semester or year
  latest <deviceId>             most recent reading for a device
  dashboard                     devices with their stage and protocol counts

flags:
`

var errUsage = errors.New("invalid usage")

// domainCommands call the API and need a session first.
var domainCommands = map[string]bool{
	"devices": true, "stages": true, "protocols": true, "actions": true,
	"trackings": true, "latest": true, "dashboard": true,
}

type app struct {
	sess *session.Manager
	api  *client.Client
	in   *bufio.Reader
	out  io.Writer

	username string
	password string
}

// run parses args, wires the session and client, and executes one command.
// It returns the process exit code.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	flags := pflag.NewFlagSet("autogrow", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.Usage = func() {
		fmt.Fprint(stderr, usage)
		flags.PrintDefaults()
	}
	configFile := flags.String("config", "", "path to a config file (default configs/config.yml)")
	envFile := flags.String("env", "", "path to a .env file (default .env)")
	username := flags.StringP("username", "u", "", "username for login")
	password := flags.StringP("password", "p", "", "password for login (read from stdin when empty)")
	flags.String("base-url", "", "API base URL")
	flags.Duration("timeout", 0, "per-request timeout")
	flags.String("state", "", "credential state file")
	flags.String("log-level", "", "debug, info, warn or error")
	flags.Bool("dev", false, "development logging")

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 2
	}
	if flags.NArg() == 0 {
		flags.Usage()
		return 2
	}

	cfg, err := config.Load(config.Options{ConfigFile: *configFile, EnvFile: *envFile, Flags: flags})
	if err != nil {
		fmt.Fprintf(stderr, "config: %v\n", err)
		return 1
	}
	log := logger.New(cfg.Log.Level, cfg.Log.Development)
	defer func() { _ = log.Sync() }()

	conn, err := db.InitDB(cfg.Client.StatePath)
	if err != nil {
		fmt.Fprintf(stderr, "open state %s: %v\n", cfg.Client.StatePath, err)
		return 1
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			log.Warnw("state_close_failed", "err", cerr)
		}
	}()

	// wire dependencies
	ccfg := client.Config{BaseURL: cfg.Client.BaseURL, Timeout: cfg.Client.Timeout}
	store := session.NewStore(repository.NewStateSQLite(conn))
	sess := session.NewManager(store, client.NewVerifier(ccfg, log), log)
	a := &app{
		sess:     sess,
		api:      client.New(ccfg, sess, log),
		in:       bufio.NewReader(stdin),
		out:      stdout,
		username: *username,
		password: *password,
	}

	cmd, rest := flags.Arg(0), flags.Args()[1:]
	if err := a.dispatch(ctx, cmd, rest); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintf(stderr, "%v\n", err)
			flags.Usage()
			return 2
		}
		fmt.Fprintln(stderr, describe(err))
		return 1
	}
	return 0
}

func (a *app) dispatch(ctx context.Context, cmd string, args []string) error {
	if cmd != "login" {
		a.sess.Initialize()
	}
	if domainCommands[cmd] && !a.sess.IsAuthenticated() {
		return session.ErrNotAuthenticated
	}

	switch cmd {
	case "login":
		return a.login(ctx)
	case "logout":
		a.sess.Logout()
		fmt.Fprintln(a.out, "logged out")
		return nil
	case "status":
		return a.status()
	case "devices":
		return a.devices(ctx)
	case "stages":
		return a.stages(ctx)
	case "protocols":
		return a.protocols(ctx)
	case "actions":
		return a.actions(ctx)
	case "trackings":
		return a.trackings(ctx, args)
	case "latest":
		return a.latest(ctx, args)
	case "dashboard":
		return a.dashboard(ctx)
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, cmd)
	}
}

func (a *app) login(ctx context.Context) error {
	user := a.username
	if user == "" {
		var err error
		if user, err = a.prompt("username: "); err != nil {
			return err
		}
	}
	pass := a.password
	if pass == "" {
		var err error
		if pass, err = a.prompt("password: "); err != nil {
			return err
		}
	}
	if !a.sess.Login(ctx, user, pass) {
		return errLoginFailed
	}
	fmt.Fprintf(a.out, "logged in as %s\n", user)
	return nil
}

var errLoginFailed = errors.New("login failed")

func (a *app) prompt(label string) (string, error) {
	fmt.Fprint(a.out, label)
	line, err := a.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("reading %s%w", label, err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (a *app) status() error {
	state := a.sess.State()
	if user, ok := a.sess.Username(); ok {
		fmt.Fprintf(a.out, "%s as %s\n", state, user)
		return nil
	}
	fmt.Fprintln(a.out, state)
	return nil
}

func (a *app) devices(ctx context.Context) error {
	list, err := a.api.Devices().List(ctx)
	if err != nil {
		return err
	}
	return renderDevices(a.out, list)
}

func (a *app) stages(ctx context.Context) error {
	list, err := a.api.Stages().List(ctx)
	if err != nil {
		return err
	}
	return renderStages(a.out, list)
}

func (a *app) protocols(ctx context.Context) error {
	list, err := a.api.Protocols().List(ctx)
	if err != nil {
		return err
	}
	return renderProtocols(a.out, list)
}

func (a *app) actions(ctx context.Context) error {
	list, err := a.api.CustomActions().List(ctx)
	if err != nil {
		return err
	}
	return renderActions(a.out, list)
}

func (a *app) trackings(ctx context.Context, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return fmt.Errorf("%w: trackings <deviceId> [window]", errUsage)
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	var list []models.Tracking
	if len(args) == 2 {
		w := models.HistoryWindow(args[1])
		if !w.Valid() {
			return fmt.Errorf("%w: unknown window %q", errUsage, args[1])
		}
		list, err = a.api.Trackings().ListByDeviceHistory(ctx, id, w)
	} else {
		list, err = a.api.Trackings().ListByDevice(ctx, id)
	}
	if err != nil {
		return err
	}
	return renderTrackings(a.out, list)
}

func (a *app) latest(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: latest <deviceId>", errUsage)
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	t, err := a.api.Trackings().Latest(ctx, id)
	if err != nil {
		return err
	}
	return renderTrackings(a.out, []models.Tracking{t})
}

func (a *app) dashboard(ctx context.Context) error {
	snap, err := a.api.Snapshot(ctx)
	if err != nil {
		return err
	}
	return renderDashboard(a.out, snap)
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid device id %q", errUsage, s)
	}
	return id, nil
}

// describe turns an error into the line shown to the user.
func describe(err error) string {
	var reqErr *client.RequestError
	switch {
	case errors.Is(err, client.ErrUnauthorized):
		return "the server rejected the stored credentials; the session was cleared, run `autogrow login`"
	case errors.Is(err, session.ErrNotAuthenticated):
		return "not logged in; run `autogrow login`"
	case errors.Is(err, errLoginFailed):
		return "login failed: invalid username or password, or the server is unreachable"
	case errors.As(err, &reqErr) && reqErr.Status == http.StatusNotFound:
		return "not found: " + reqErr.Error()
	default:
		return "error: " + err.Error()
	}
}
