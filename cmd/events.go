package cmd

import (
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"contacthub/internal/logger"
	"contacthub/pkg/rabbitmq"
)

func newEventsCommand() *cobra.Command {
	var queue string

	cmd := &cobra.Command{
		Use:   "events",
		Short: "Consume and log contact events from RabbitMQ",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cfg.RabbitMQURL == "" {
				return errors.New("RABBITMQ_URL is not set")
			}
			logger.Configure(cfg.LogLevel, cfg.Environment)
			log := logger.GetLogger()
			defer logger.Close()

			mq, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL, Queue: queue})
			if err != nil {
				return err
			}
			defer mq.Close()

			err = mq.ConsumeContactEvents(func(evt rabbitmq.ContactEvent) error {
				log.Infow("Contact event",
					"type", evt.Type,
					"contact_id", evt.ContactID,
					"name", evt.Name,
					"email", logger.MaskEmail(evt.Email),
					"occurred_at", evt.OccurredAt,
				)
				return nil
			})
			if err != nil {
				return err
			}

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
			<-quit
			log.Info("Stopping event consumer")
			return nil
		},
	}

	cmd.Flags().StringVar(&queue, "queue", rabbitmq.DefaultQueue, "queue to consume")

	return cmd
}
