// internal/monitor/service.go
package monitor

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"adobe-license-monitor/internal/common/adobe"
	"adobe-license-monitor/internal/common/config"
	"adobe-license-monitor/internal/common/logger"
	"adobe-license-monitor/internal/common/metrics"
	"adobe-license-monitor/internal/licenses"
)

// UserSource fetches the organization's user records.
type UserSource interface {
	ListUsers(ctx context.Context) ([]adobe.User, error)
}

// Notifier delivers the formatted report to one channel.
type Notifier interface {
	Channel() string
	Notify(ctx context.Context, message string) error
}

// Service runs the fetch-aggregate-report pipeline once per invocation.
type Service struct {
	source    UserSource
	notifiers []Notifier
	licenses  config.LicenseConfig
	logger    logger.Logger
}

func NewService(source UserSource, notifiers []Notifier, lic config.LicenseConfig, log logger.Logger) *Service {
	return &Service{
		source:    source,
		notifiers: notifiers,
		licenses:  lic,
		logger:    log,
	}
}

// Run executes one monitoring pass. A fetch failure aborts before any
// notification goes out; notification failures are logged and do not fail
// the run.
func (s *Service) Run(ctx context.Context) error {
	log := s.logger.WithFields(map[string]interface{}{
		"runId": uuid.NewString(),
	})

	users, err := s.source.ListUsers(ctx)
	if err != nil {
		metrics.MonitorRuns.WithLabelValues("fetch_failed").Inc()
		return fmt.Errorf("failed to retrieve user data: %w", err)
	}
	if len(users) == 0 {
		metrics.MonitorRuns.WithLabelValues("no_users").Inc()
		log.Warn("no user data retrieved", nil)
		return nil
	}

	counts := licenses.Count(users, s.licenses)
	summary := licenses.FormatSummary(counts, s.licenses)

	log.Info("license summary", map[string]interface{}{
		"users":    len(users),
		"products": len(counts),
		"summary":  summary,
	})

	message := licenses.FormatMessage(summary)
	for _, n := range s.notifiers {
		if err := n.Notify(ctx, message); err != nil {
			metrics.ReportNotifications.WithLabelValues(n.Channel(), "failed").Inc()
			log.WithError(err).Error("failed to deliver report", map[string]interface{}{
				"channel": n.Channel(),
			})
			continue
		}
		metrics.ReportNotifications.WithLabelValues(n.Channel(), "sent").Inc()
	}

	metrics.MonitorRuns.WithLabelValues("completed").Inc()
	return nil
}
