package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Krishmal2004/Expense-Tracker/internal/events"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print notifications from the message broker as they are published",
	RunE:  runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	cfg, _, err := setup(false)
	if err != nil {
		return err
	}
	if cfg.AMQP.URL == "" {
		return errors.New("AMQP URL is not configured")
	}

	consumer, err := events.NewAMQPPublisher(cfg.AMQP.URL, cfg.AMQP.Exchange, cfg.AMQP.RoutingKey)
	if err != nil {
		return err
	}
	defer consumer.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	err = consumer.Consume(ctx, func(msg events.NotificationMessage) error {
		_, err := fmt.Fprintf(out, "%s  %-15s  %s  %s\n",
			msg.CreatedAt.Format("2006-01-02 15:04:05"), msg.Kind, msg.UserID, msg.Message)
		return err
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
