package dataservice

import (
	"context"
	"errors"
	"fmt"

	"github.com/julianstephens/calmind/internal/logger"
	"github.com/julianstephens/calmind/internal/models"
	"github.com/julianstephens/calmind/internal/storage/local"
	"github.com/julianstephens/calmind/internal/storage/postgres"
)

// MigrationFailure records one local record that could not be copied.
type MigrationFailure struct {
	Entity local.Entity
	ID     string
	Err    error
}

func (f MigrationFailure) Error() string {
	return fmt.Sprintf("%s %s: %v", f.Entity, f.ID, f.Err)
}

func (f MigrationFailure) Unwrap() error { return f.Err }

// MigrationReport summarizes one MigrateLocalData run.
type MigrationReport struct {
	Tasks    int
	Goals    int
	Sessions int
	Profile  bool
	Quiz     bool
	// Skipped lists singleton entities dropped because the remote already had one.
	Skipped    []local.Entity
	Failures   []MigrationFailure
	BackupPath string
}

func (r MigrationReport) Migrated() int {
	n := r.Tasks + r.Goals + r.Sessions
	if r.Profile {
		n++
	}
	if r.Quiz {
		n++
	}
	return n
}

// Err joins every per-record failure, or returns nil.
func (r MigrationReport) Err() error {
	if len(r.Failures) == 0 {
		return nil
	}
	errs := make([]error, len(r.Failures))
	for i, f := range r.Failures {
		errs[i] = f
	}
	return errors.Join(errs...)
}

// MigrateLocalData copies every record stored locally under fromUserID to
// the remote store under toUserID. Each record is removed from local storage
// once the remote accepts it; records that fail stay local for the next
// attempt.
func (s *Service) MigrateLocalData(ctx context.Context, fromUserID, toUserID string) (MigrationReport, error) {
	var report MigrationReport

	r, err := s.activeRemote()
	if err != nil {
		return report, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tasksKey := local.Key(local.EntityTasks, fromUserID)
	goalsKey := local.Key(local.EntityGoals, fromUserID)
	sessionsKey := local.Key(local.EntityPomodoro, fromUserID)
	profileKey := local.Key(local.EntityProfile, fromUserID)
	quizKey := local.Key(local.EntityQuiz, fromUserID)

	tasks := local.ReadCollection[models.Task](s.local, tasksKey)
	goals := local.ReadCollection[models.Goal](s.local, goalsKey)
	sessions := local.ReadCollection[models.PomodoroSession](s.local, sessionsKey)
	profile, hasProfile := local.ReadObject[models.UserProfile](s.local, profileKey)
	quiz, hasQuiz := local.ReadObject[models.QuizResult](s.local, quizKey)

	if len(tasks) == 0 && len(goals) == 0 && len(sessions) == 0 && !hasProfile && !hasQuiz {
		logger.Debug("No local data to migrate", "from", fromUserID)
		return report, nil
	}

	if s.backup != nil {
		path, err := s.backup.CreateBackup()
		if err != nil {
			return report, fmt.Errorf("failed to back up local data before migration: %w", err)
		}
		report.BackupPath = path
	}

	logger.Info("Migrating local data", "from", fromUserID, "to", toUserID,
		"tasks", len(tasks), "goals", len(goals), "sessions", len(sessions))

	remoteCall := func(fn func(context.Context) error) error {
		rctx, cancel := context.WithTimeout(ctx, s.timeout)
		defer cancel()
		return fn(rctx)
	}

	// oldest first so remote insertion order matches creation order
	var keptTasks []models.Task
	for i := len(tasks) - 1; i >= 0; i-- {
		t := tasks[i]
		t.UserID = toUserID
		err := remoteCall(func(ctx context.Context) error {
			_, err := r.CreateTask(ctx, t)
			return err
		})
		if err != nil {
			report.Failures = append(report.Failures, MigrationFailure{Entity: local.EntityTasks, ID: tasks[i].ID, Err: err})
			keptTasks = append([]models.Task{tasks[i]}, keptTasks...)
			continue
		}
		report.Tasks++
	}

	var keptGoals []models.Goal
	for i := len(goals) - 1; i >= 0; i-- {
		g := goals[i]
		g.UserID = toUserID
		err := remoteCall(func(ctx context.Context) error {
			_, err := r.CreateGoal(ctx, g)
			return err
		})
		if err != nil {
			report.Failures = append(report.Failures, MigrationFailure{Entity: local.EntityGoals, ID: goals[i].ID, Err: err})
			keptGoals = append([]models.Goal{goals[i]}, keptGoals...)
			continue
		}
		report.Goals++
	}

	var keptSessions []models.PomodoroSession
	for i := len(sessions) - 1; i >= 0; i-- {
		p := sessions[i]
		p.UserID = toUserID
		err := remoteCall(func(ctx context.Context) error {
			_, err := r.CreateSession(ctx, p)
			return err
		})
		if err != nil {
			report.Failures = append(report.Failures, MigrationFailure{Entity: local.EntityPomodoro, ID: sessions[i].ID, Err: err})
			keptSessions = append([]models.PomodoroSession{sessions[i]}, keptSessions...)
			continue
		}
		report.Sessions++
	}

	var writeErrs []error
	writeErrs = append(writeErrs,
		local.WriteCollection(s.local, tasksKey, keptTasks),
		local.WriteCollection(s.local, goalsKey, keptGoals),
		local.WriteCollection(s.local, sessionsKey, keptSessions),
	)

	if hasProfile {
		migrated, skipped, err := migrateSingleton(remoteCall,
			func(ctx context.Context) error {
				_, err := r.GetProfile(ctx, toUserID)
				return err
			},
			func(ctx context.Context) error {
				profile.ID = toUserID
				_, err := r.UpsertProfile(ctx, profile)
				return err
			})
		report.Profile = migrated
		s.settleSingleton(&report, local.EntityProfile, profileKey, fromUserID, migrated, skipped, err, &writeErrs)
	}

	if hasQuiz {
		migrated, skipped, err := migrateSingleton(remoteCall,
			func(ctx context.Context) error {
				_, err := r.GetQuizResult(ctx, toUserID)
				return err
			},
			func(ctx context.Context) error {
				quiz.UserID = toUserID
				_, err := r.SaveQuizResult(ctx, quiz)
				return err
			})
		report.Quiz = migrated
		s.settleSingleton(&report, local.EntityQuiz, quizKey, fromUserID, migrated, skipped, err, &writeErrs)
	}

	if err := errors.Join(writeErrs...); err != nil {
		// remote copies exist; the local leftovers will be migrated again
		return report, fmt.Errorf("failed to clear migrated local data: %w", err)
	}

	if len(report.Failures) > 0 {
		logger.Warn("Some local records were not migrated", "failed", len(report.Failures), "migrated", report.Migrated())
	} else {
		logger.Info("Local data migrated", "migrated", report.Migrated())
	}
	return report, nil
}

// migrateSingleton copies a one-per-user record only when the remote has
// none. skipped is true when the remote already had one.
func migrateSingleton(call func(func(context.Context) error) error, exists, write func(context.Context) error) (migrated, skipped bool, err error) {
	err = call(exists)
	switch {
	case err == nil:
		return false, true, nil
	case !errors.Is(err, postgres.ErrNotFound):
		return false, false, err
	}
	if err := call(write); err != nil {
		return false, false, err
	}
	return true, false, nil
}

func (s *Service) settleSingleton(report *MigrationReport, entity local.Entity, key, owner string, migrated, skipped bool, err error, writeErrs *[]error) {
	if err != nil {
		report.Failures = append(report.Failures, MigrationFailure{Entity: entity, ID: owner, Err: err})
		return
	}
	if skipped {
		report.Skipped = append(report.Skipped, entity)
	}
	if migrated || skipped {
		*writeErrs = append(*writeErrs, s.local.RemoveItem(key))
	}
}
