package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"math"
	"time"

	"ayyam/internal/mailer"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Worker drains the job queue. Today the only job type is email dispatch;
// the claim/retry machinery is type-agnostic.
type Worker struct {
	ID     string
	Repo   *Repo
	DB     *gorm.DB
	Sender mailer.Sender
	Log    *slog.Logger
}

func (w *Worker) Run(ctx context.Context) {
	ticker := time.NewTicker(800 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			job, err := w.Repo.Claim(w.ID)
			if err != nil {
				w.Log.Error("worker claim failed", "err", err)
				continue
			}
			if job == nil {
				continue
			}
			w.handle(ctx, job)
		}
	}
}

func (w *Worker) handle(ctx context.Context, job *Job) {
	switch job.Type {
	case TypeEmailDispatch:
		w.handleEmail(ctx, job)
	default:
		_ = w.Repo.MarkFailed(job.ID, "unknown job type")
	}
}

func (w *Worker) handleEmail(ctx context.Context, job *Job) {
	type payload struct {
		EmailLogID uuid.UUID `json:"email_log_id"`
	}
	var p payload
	if err := json.Unmarshal(job.Payload, &p); err != nil || p.EmailLogID == uuid.Nil {
		_ = w.Repo.MarkFailed(job.ID, "bad payload")
		return
	}

	var email mailer.EmailLog
	if err := w.DB.Where("id = ?", p.EmailLogID).First(&email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			_ = w.Repo.MarkDone(job.ID)
			return
		}
		w.retry(job, "db read error")
		return
	}

	// Already delivered by a previous attempt.
	if email.Status == mailer.StatusSent {
		_ = w.Repo.MarkDone(job.ID)
		return
	}

	if err := w.Sender.Send(ctx, email.RecipientEmail, email.Subject, email.Body); err != nil {
		w.Log.Warn("email send failed", "email_log_id", email.ID, "attempt", job.Attempts+1, "err", err)
		if job.Attempts+1 >= job.MaxAttempts {
			w.markEmail(email.ID, mailer.StatusFailed, err.Error())
		}
		w.retry(job, err.Error())
		return
	}

	w.markEmail(email.ID, mailer.StatusSent, "")
	w.Log.Info("email sent", "email_log_id", email.ID, "to", email.RecipientEmail)
	_ = w.Repo.MarkDone(job.ID)
}

func (w *Worker) markEmail(id uuid.UUID, status, errMsg string) {
	changes := map[string]any{"status": status, "sent_at": time.Now()}
	if errMsg != "" {
		changes["error_message"] = errMsg
	}
	if err := w.DB.Model(&mailer.EmailLog{}).Where("id = ?", id).Updates(changes).Error; err != nil {
		w.Log.Error("email log update failed", "email_log_id", id, "err", err)
	}
}

func (w *Worker) retry(job *Job, errMsg string) {
	attempts := job.Attempts + 1
	if attempts >= job.MaxAttempts {
		_ = w.Repo.MarkFailed(job.ID, errMsg)
		return
	}

	sec := math.Min(math.Pow(2, float64(attempts)), 600)
	next := time.Now().Add(time.Duration(sec) * time.Second)

	_ = w.Repo.RetryLater(job.ID, attempts, next, errMsg)
}
