package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/spf13/cobra"

	"github.com/callmeskyy111/wayfind/internal/config"
	"github.com/callmeskyy111/wayfind/internal/errors"
	"github.com/callmeskyy111/wayfind/pkg/archive"
	"github.com/callmeskyy111/wayfind/pkg/nav"
	"github.com/callmeskyy111/wayfind/pkg/router"
	"github.com/callmeskyy111/wayfind/pkg/server"
)

func serveCmd() *cobra.Command {
	var (
		manifestFlag string
		host         string
		port         int
		snapshotID   string
		restore      bool
		noArchive    bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the route server",
		Long: `Run the route server for the current project.

The server resolves paths over HTTP, streams navigation events to
websocket clients, and keeps every client's history in sync with a
shared session. Unless --no-archive is set, the session is snapshotted
to the configured archive backend after each navigation, and --restore
starts from the stored snapshot instead of a fresh session.

Endpoints:
  GET /resolve?path=   resolve a path against the route table
  GET /routes          list all routes
  GET /healthz         health check
  GET /metrics         Prometheus metrics
  GET /ws              navigation sync websocket

Examples:
  wayfind serve
  wayfind serve --port 8080
  wayfind serve --restore            # resume the recorded session
  wayfind serve --no-archive         # in-memory session only`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(manifestFlag, host, port, snapshotID, restore, noArchive)
		},
	}

	cmd.Flags().StringVarP(&manifestFlag, "manifest", "m", "", "Route manifest path (default from wayfind.json)")
	cmd.Flags().StringVar(&host, "host", "", "Host to bind to (default from wayfind.json)")
	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (default from wayfind.json)")
	cmd.Flags().StringVar(&snapshotID, "snapshot", "latest", "Snapshot ID to record to and restore from")
	cmd.Flags().BoolVar(&restore, "restore", false, "Resume the session from the stored snapshot")
	cmd.Flags().BoolVar(&noArchive, "no-archive", false, "Disable session snapshotting")

	return cmd
}

func runServe(manifestFlag, host string, port int, snapshotID string, restore, noArchive bool) error {
	root, cfg, manifestFile, err := loadTree(manifestFlag)
	if err != nil {
		return err
	}

	if host != "" {
		cfg.Server.Host = host
	}
	if port != 0 {
		cfg.Server.Port = port
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := buildLogger(cfg)
	slog.SetDefault(logger)

	if issues := router.Validate(root); len(issues) > 0 {
		if cfg.Strict {
			return errors.New("E024").Wrap(&router.MultiIssueError{Issues: issues})
		}
		for _, issue := range issues {
			fmt.Fprint(os.Stderr, router.FormatIssue(issue))
		}
	}

	var session *nav.Session
	if noArchive {
		session = nav.NewSession(nav.Location{Path: "/"}, nav.WithLogger(logger))
	} else {
		store, err := buildStore(cfg)
		if err != nil {
			return err
		}
		session, err = buildSession(store, snapshotID, restore, logger)
		if err != nil {
			return err
		}
		rec := archive.Record(session, store, snapshotID, archive.WithLogger(logger))
		defer rec.Close()
	}

	srv := server.New(root, session, &server.Config{
		Address: cfg.Address(),
		Logger:  logger,
	})

	name := cfg.Name
	if name == "" {
		name = "wayfind"
	}

	printBanner()
	fmt.Println()
	success("%s ready", name)
	info("Manifest:   %s (%d routes)", filepath.Base(manifestFile), len(router.Routes(root)))
	info("Server:     %s", cfg.URL())
	info("Sync:       ws://%s/ws", cfg.Address())
	if noArchive {
		info("Archive:    off")
	} else {
		info("Archive:    %s (snapshot %q)", cfg.Archive.Backend, snapshotID)
	}
	fmt.Println()

	return srv.Run()
}

// buildLogger builds the process logger from the config's log section.
func buildLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel()}
	var handler slog.Handler
	if cfg.Log.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	return slog.New(handler)
}

// buildStore builds the snapshot store named by the config's archive
// section. The s3 backend reads credentials from the standard
// AWS_ACCESS_KEY_ID / AWS_SECRET_ACCESS_KEY environment variables.
func buildStore(cfg *config.Config) (archive.Store, error) {
	switch cfg.Archive.Backend {
	case "disk":
		return archive.NewDiskStore(cfg.ArchiveDir())
	case "s3":
		if cfg.Archive.Bucket == "" {
			return nil, errors.New("E061").WithDetail("archive.bucket is required for the s3 backend")
		}
		region := cfg.Archive.Region
		if region == "" {
			region = os.Getenv("AWS_REGION")
		}
		client := s3.New(s3.Options{
			Region: region,
			Credentials: aws.NewCredentialsCache(aws.CredentialsProviderFunc(
				func(ctx context.Context) (aws.Credentials, error) {
					creds := aws.Credentials{
						AccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
						SecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
						SessionToken:    os.Getenv("AWS_SESSION_TOKEN"),
						Source:          "environment",
					}
					if creds.AccessKeyID == "" || creds.SecretAccessKey == "" {
						return aws.Credentials{}, errors.New("E101").
							WithDetail("AWS credentials not found in the environment").
							WithSuggestion("Set AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY.")
					}
					return creds, nil
				})),
		})
		return archive.NewS3Store(client, cfg.Archive.Bucket, cfg.Archive.Prefix), nil
	default:
		return nil, errors.New("E063").WithDetail(fmt.Sprintf("archive.backend is %q", cfg.Archive.Backend))
	}
}

// buildSession builds the navigation session, resuming from the stored
// snapshot when asked. A missing snapshot downgrades to a fresh start.
func buildSession(store archive.Store, snapshotID string, restore bool, logger *slog.Logger) (*nav.Session, error) {
	if restore {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		snap, err := store.Load(ctx, snapshotID)
		switch {
		case err == nil:
			sess, err := archive.Restore(snap, nav.WithLogger(logger))
			if err != nil {
				return nil, err
			}
			info("Restored session %q (%d entries)", snapshotID, len(snap.Entries))
			return sess, nil
		case stderrors.Is(err, archive.ErrNotFound):
			warn("Snapshot %q not found, starting fresh", snapshotID)
		default:
			return nil, err
		}
	}
	return nav.NewSession(nav.Location{Path: "/"}, nav.WithLogger(logger)), nil
}
