// prolearn is a terminal client for the ProLearn educational platform:
// teachers manage classes, lessons and coding tasks, students work through
// activities, run their code and submit solutions.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/prolearn/prolearn-go/internal/cache"
	"github.com/prolearn/prolearn-go/internal/client"
	"github.com/prolearn/prolearn-go/internal/config"
	"github.com/prolearn/prolearn-go/internal/localstore"
	"github.com/prolearn/prolearn-go/internal/messages"
	"github.com/prolearn/prolearn-go/internal/session"
)

// Version is set at build time via ldflags.
var Version = "dev"

type app struct {
	cfg    config.Config
	logger zerolog.Logger
	store  *localstore.Store
	api    *client.Client
	sess   *localstore.Session
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	switch cmd {
	case "help", "-h", "--help":
		printUsage()
		return
	case "version", "-v", "--version":
		fmt.Printf("prolearn %s\n", Version)
		return
	}

	a, err := newApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	args := os.Args[2:]

	switch cmd {
	case "health":
		err = a.cmdHealth(ctx)
	case "register":
		err = a.cmdRegister(ctx, args)
	case "login":
		err = a.cmdLogin(ctx, args)
	case "logout":
		err = a.cmdLogout()
	case "whoami":
		err = a.cmdWhoami()
	case "password":
		err = a.cmdPassword(ctx, args)
	case "classes":
		err = a.cmdClasses(ctx, args)
	case "lessons":
		err = a.cmdLessons(ctx, args)
	case "task":
		err = a.cmdTask(ctx, args)
	case "tests":
		err = a.cmdTests(ctx, args)
	case "run":
		err = a.cmdRun(ctx, args)
	case "submit":
		err = a.cmdSubmit(ctx, args)
	case "grade":
		err = a.cmdGrade(ctx, args)
	case "progress":
		err = a.cmdProgress(ctx, args)
	case "quiz":
		err = a.cmdQuiz(ctx, args)
	case "prefs":
		err = a.cmdPrefs(args)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Błąd: %s\n", messages.LocalizeErr(err))
		os.Exit(1)
	}
}

func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	level := zerolog.WarnLevel
	if cfg.Debug {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).With().Timestamp().Logger()

	store, err := localstore.Open(cfg.StatePath())
	if err != nil {
		return nil, err
	}

	opts := []client.Option{}
	if cfg.RedisURL != "" {
		c, err := cache.New(cfg.RedisURL, cfg.CacheTTL, logger)
		if err != nil {
			logger.Warn().Err(err).Msg("cache disabled: bad redis url")
		} else {
			opts = append(opts, client.WithCache(c))
		}
	}

	sess, err := store.LoadSession()
	if err != nil {
		return nil, err
	}
	if sess != nil {
		if claims, err := session.Decode(sess.Token); err == nil && claims.Expired(time.Now()) {
			logger.Warn().Msg("stored session token is expired; run 'prolearn login'")
		}
		opts = append(opts, client.WithToken(sess.Token))
	}

	if cfg.Debug {
		opts = append(opts, client.WithHooks(client.Hooks{
			OnLoadingStart: func() { logger.Debug().Msg("request started") },
			OnLoadingEnd:   func() { logger.Debug().Msg("request finished") },
		}))
	}

	if cfg.MetricsAddr != "" {
		go serveMetrics(cfg.MetricsAddr, logger)
	}

	return &app{
		cfg:    cfg,
		logger: logger,
		store:  store,
		api:    client.New(cfg.APIBaseURL, cfg.APITimeout, logger, opts...),
		sess:   sess,
	}, nil
}

func serveMetrics(addr string, logger zerolog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Warn().Err(err).Str("addr", addr).Msg("metrics endpoint failed")
	}
}

// requireSession fails fast for commands that need a signed-in user.
func (a *app) requireSession() (*localstore.Session, error) {
	if a.sess == nil {
		return nil, session.ErrNotSignedIn
	}
	return a.sess, nil
}

func printUsage() {
	fmt.Println(`ProLearn - client for the ProLearn educational platform

Usage:
  prolearn <command> [arguments]

Account:
  register        Create an account (teacher or student)
  login           Sign in and store the session
  logout          Discard the stored session
  whoami          Show the signed-in user
  password        change / forgot / reset

Classes:
  classes list                    List your classes
  classes create <name>           Create a class (teacher)
  classes join <code>             Join a class by code (student)
  classes leave <id>              Leave a class
  classes members <id>            List class members
  classes remove <id> <userId>    Remove a member (teacher)

Lessons:
  lessons list <classId>          List lessons in a class
  lessons show <lessonId>         Show a lesson with activities
  lessons create <classId> ...    Create a lesson
  lessons activity ...            Manage activities

Tasks and code:
  task show <taskId>              Show a task
  task edit <taskId> ...          Edit task metadata
  tests <taskId> ...              Manage test cases
  run <taskId>                    Run code against the tests
  submit <taskId>                 Submit a solution (uses an attempt)
  grade <submissionId> ...        Grade a submission (teacher)

Progress and quizzes:
  progress lesson <lessonId>      Your progress within a lesson
  progress class <classId>        Class progress matrix (teacher)
  progress overview <classId>     Students x lessons overview (teacher)
  quiz show <activityId>          Show quiz questions
  quiz submit <activityId> ...    Submit quiz answers
  quiz attempts <activityId>      List quiz attempts
  quiz edit <activityId> ...      Build a quiz through a local draft

Other:
  prefs           Show or change display preferences
  health          Check backend availability
  version         Show version information

Configuration via PROLEARN_* environment variables (or .env):
  PROLEARN_API_BASE_URL, PROLEARN_API_TIMEOUT, PROLEARN_STATE_DIR,
  PROLEARN_REDIS_URL, PROLEARN_CACHE_TTL, PROLEARN_METRICS_ADDR,
  PROLEARN_DEFAULT_LANGUAGE, PROLEARN_DEBUG`)
}
