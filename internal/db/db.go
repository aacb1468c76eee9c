package db

import (
	"fmt"

	"ayyam/internal/auth"
	"ayyam/internal/event"
	"ayyam/internal/i18n"
	"ayyam/internal/jobs"
	"ayyam/internal/mailer"
	"ayyam/internal/media"
	"ayyam/internal/profile"
	"ayyam/internal/role"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Connect(dsn string) (*gorm.DB, error) {
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	return gdb, nil
}

func AutoMigrateAndIndexes(gdb *gorm.DB) error {
	// Tables
	if err := gdb.AutoMigrate(
		&auth.User{},
		&event.Event{},
		&profile.Profile{},
		&role.UserRole{},
		&i18n.Translation{},
		&media.GenerationLog{},
		&mailer.EmailLog{},
		&jobs.Job{},
	); err != nil {
		return err
	}

	// One active role per user, enforced at the DB level as well.
	if err := gdb.Exec(`create unique index if not exists uq_user_roles_user on user_roles(user_id);`).Error; err != nil {
		return err
	}

	// Helpful indexes
	stmts := []string{
		`create index if not exists idx_events_user_date on events(user_id, event_date desc);`,
		`create index if not exists idx_events_user_type on events(user_id, event_type);`,
		`create index if not exists idx_translations_ns_key on translations(namespace, key);`,
		`create index if not exists idx_generation_logs_user_time on generation_logs(user_id, generated_at desc);`,
		`create index if not exists idx_email_logs_user_time on email_logs(user_id, sent_at desc);`,
		`create index if not exists idx_jobs_due on jobs(status, run_at);`,
		`create index if not exists idx_jobs_lock on jobs(status, locked_at);`,
	}
	for _, s := range stmts {
		if err := gdb.Exec(s).Error; err != nil {
			return fmt.Errorf("index exec failed: %w (sql=%s)", err, s)
		}
	}

	return nil
}
