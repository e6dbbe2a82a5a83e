package smtp

import (
	"fmt"
	"time"

	"github.com/JMURv/iptv-gateway/internal/config"
	"github.com/JMURv/iptv-gateway/internal/dto"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// Email delivers operator reports over SMTP.
type Email struct {
	conf   config.EmailConfig
	dialer *gomail.Dialer
}

func New(conf config.EmailConfig) *Email {
	return &Email{
		conf:   conf,
		dialer: gomail.NewDialer(conf.Server, conf.Port, conf.User, conf.Pass),
	}
}

// SendSyncReport mails the admin the outcome of an ingestion cycle.
// summary is nil when the cycle failed before producing one.
func (e *Email) SendSyncReport(summary *dto.SyncSummary, runErr error) error {
	subject := "IPTV sync completed"
	body := e.successBody(summary)
	if runErr != nil {
		subject = "IPTV sync FAILED"
		body = fmt.Sprintf(
			"Sync cycle failed at %s:\n\n%v\n",
			time.Now().Format(time.RFC1123),
			runErr,
		)
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", e.conf.User)
	msg.SetHeader("To", e.conf.Admin)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := e.dialer.DialAndSend(msg); err != nil {
		zap.L().Error("failed to send sync report", zap.Error(err))
		return err
	}

	return nil
}

func (e *Email) successBody(s *dto.SyncSummary) string {
	if s == nil {
		return "Sync completed, no summary available.\n"
	}

	return fmt.Sprintf(
		"Sync cycle finished at %s\n\n"+
			"Channels: %d\nMovies:   %d\nSeries:   %d\n\n"+
			"Inserted: %d\nFailed:   %d\nSkipped write phase: %v\n\n"+
			"Feed size: %d bytes\nTemplate:  %s\n\n"+
			"Download: %s\nParse:    %s\nInsert:   %s\nTotal:    %s\n",
		s.FinishedAt.Format(time.RFC1123),
		s.Channels, s.Movies, s.Series,
		s.Inserted, s.Failed, s.Skipped,
		s.FeedSizeBytes, s.TemplatePath,
		s.DownloadTime.Round(time.Millisecond),
		s.ParseTime.Round(time.Millisecond),
		s.InsertTime.Round(time.Millisecond),
		s.FinishedAt.Sub(s.StartedAt).Round(time.Millisecond),
	)
}
