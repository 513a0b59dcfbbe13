package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/contentloom/contentloom/pkg/client"
	"github.com/spf13/cobra"
)

func newSessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Usage session commands",
	}

	cmd.AddCommand(newSessionStartCmd())
	cmd.AddCommand(newSessionPauseCmd())
	cmd.AddCommand(newSessionResumeCmd())
	cmd.AddCommand(newSessionEndCmd())
	cmd.AddCommand(newSessionTrackCmd())

	return cmd
}

func newSessionStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Open a usage session",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			sess, err := apiClient.StartSession(ctx)
			if err != nil {
				return fmt.Errorf("failed to start session: %w", err)
			}
			fmt.Printf("Session %s is %s\n", sess.ID, sess.State)
			return nil
		},
	}
}

func newSessionPauseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pause <session-id>",
		Short: "Pause a usage session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			secs, err := apiClient.PauseSession(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to pause session: %w", err)
			}
			fmt.Printf("Session paused at %ds of active time\n", secs.AccumulatedSeconds)
			return nil
		},
	}
}

func newSessionResumeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resume <session-id>",
		Short: "Resume a paused usage session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			sess, err := apiClient.ResumeSession(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to resume session: %w", err)
			}
			if sess.ID != args[0] {
				fmt.Printf("Previous session was closed; opened %s\n", sess.ID)
			} else {
				fmt.Printf("Session %s is %s\n", sess.ID, sess.State)
			}
			return nil
		},
	}
}

func newSessionEndCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "end <session-id>",
		Short: "End a usage session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			secs, err := apiClient.EndSession(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to end session: %w", err)
			}
			fmt.Printf("Session ended with %ds of active time\n", secs.AccumulatedSeconds)
			return nil
		},
	}
}

func newSessionTrackCmd() *cobra.Command {
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "track",
		Short: "Track active time until interrupted",
		Long: `Opens a usage session and keeps it alive with heartbeats until the
command is interrupted, then ends the session and reports the total.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			tracker := client.NewSessionTracker(apiClient, interval)
			tracker.Logf = func(format string, v ...interface{}) {
				fmt.Fprintf(os.Stderr, "warning: "+format+"\n", v...)
			}

			ctx := context.Background()
			if err := tracker.Start(ctx); err != nil {
				return fmt.Errorf("failed to start tracking: %w", err)
			}
			fmt.Printf("Tracking session %s, press Ctrl-C to stop\n", tracker.SessionID())

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
			<-quit

			secs, err := tracker.Close(ctx)
			if err != nil {
				return fmt.Errorf("failed to end session: %w", err)
			}
			fmt.Printf("\nTracked %ds of active time\n", secs)
			return nil
		},
	}

	cmd.Flags().DurationVar(&interval, "heartbeat", 30*time.Second, "heartbeat interval")

	return cmd
}
