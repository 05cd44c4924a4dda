// cmd/license-monitor/main.go
package main

import (
	"context"

	"go.uber.org/zap"

	"adobe-license-monitor/internal/common/adobe"
	"adobe-license-monitor/internal/common/aws"
	"adobe-license-monitor/internal/common/config"
	"adobe-license-monitor/internal/common/httpclient"
	"adobe-license-monitor/internal/common/logger"
	"adobe-license-monitor/internal/common/slack"
	"adobe-license-monitor/internal/monitor"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootstrapLog := logger.New("info", "console")
		bootstrapLog.Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("starting license monitor",
		zap.String("environment", cfg.App.Environment),
		zap.String("orgId", cfg.Adobe.OrgID),
	)

	ctx := context.Background()

	hc := httpclient.NewClient(
		config.GetDuration(cfg.Adobe.Timeout),
		cfg.HTTP.MaxAttempts,
		config.GetDuration(cfg.HTTP.BaseDelay),
		config.GetDuration(cfg.HTTP.MaxJitter),
		log,
	)
	umapi := adobe.NewUMAPIClient(cfg.Adobe, hc, log)

	notifiers := []monitor.Notifier{
		slack.NewWebhookClient(cfg.Slack.WebhookURL, log),
	}

	if cfg.Notifications.Email.Enabled {
		sesClient, err := aws.NewSESClient(
			ctx,
			cfg.Notifications.AWS.Region,
			cfg.Notifications.Email.FromEmail,
			cfg.Notifications.Email.ToEmails,
			cfg.Notifications.Email.Subject,
		)
		if err != nil {
			zapLog.Fatal("ses client init failed", zap.Error(err))
		}
		notifiers = append(notifiers, sesClient)
	}

	svc := monitor.NewService(umapi, notifiers, cfg.Licenses, log)

	// A failed fetch skips reporting but is not an unhandled exception;
	// the process still exits 0.
	if err := svc.Run(ctx); err != nil {
		zapLog.Error("monitor run failed", zap.Error(err))
		return
	}

	zapLog.Info("license monitor run complete")
}
