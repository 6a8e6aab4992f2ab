package scheduler

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/go-co-op/gocron"

	"tps-admin/pkg/logger"
)

// Task is one periodic unit of work. A returned error is logged and the job
// stays scheduled.
type Task func() error

type JobScheduler interface {
	Start()
	Stop()
	AddJob(id, cronExpr string, task Task) error
	RemoveJob(id string) error
	RunJob(id string) error
	ListJobs() []JobInfo
	IsRunning() bool
}

// JobInfo is a snapshot of one job's bookkeeping.
type JobInfo struct {
	ID        string     `json:"id"`
	CronExpr  string     `json:"cron_expr"`
	Runs      int        `json:"runs"`
	LastError string     `json:"last_error,omitempty"`
	LastRun   *time.Time `json:"last_run,omitempty"`
	NextRun   *time.Time `json:"next_run,omitempty"`
}

type job struct {
	info JobInfo
	cron *gocron.Job
	run  func()
}

type GocronScheduler struct {
	scheduler *gocron.Scheduler
	jobs      map[string]*job
	mu        sync.RWMutex
	running   bool
}

func NewJobScheduler() JobScheduler {
	scheduler := gocron.NewScheduler(time.UTC)
	scheduler.SingletonModeAll()

	return &GocronScheduler{
		scheduler: scheduler,
		jobs:      make(map[string]*job),
	}
}

func (s *GocronScheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		logger.SchedulerWarn("start", "Scheduler is already running", nil)
		return
	}

	s.scheduler.StartAsync()
	s.running = true
	logger.Scheduler("started", "Job scheduler started", map[string]interface{}{"jobs": len(s.jobs)})
}

func (s *GocronScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	s.scheduler.Stop()
	s.running = false
	logger.Scheduler("stopped", "Job scheduler stopped", nil)
}

func (s *GocronScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

func (s *GocronScheduler) AddJob(id, cronExpr string, task Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.jobs[id]; exists {
		return fmt.Errorf("job with ID %s already exists", id)
	}

	j := &job{info: JobInfo{ID: id, CronExpr: cronExpr}}
	j.run = func() { s.execute(j, task) }

	cronJob, err := s.scheduler.Cron(cronExpr).Do(j.run)
	if err != nil {
		return fmt.Errorf("failed to create job %s: %w", id, err)
	}
	j.cron = cronJob
	s.jobs[id] = j

	nextRun := cronJob.NextRun()
	logger.Scheduler("job_added", "Job added", map[string]interface{}{
		"job_id":    id,
		"cron_expr": cronExpr,
		"next_run":  nextRun.Format(time.RFC3339),
	})
	return nil
}

func (s *GocronScheduler) execute(j *job, task Task) {
	start := time.Now()
	err := task()

	s.mu.Lock()
	j.info.Runs++
	j.info.LastRun = &start
	j.info.LastError = ""
	if err != nil {
		j.info.LastError = err.Error()
	}
	s.mu.Unlock()

	if err != nil {
		logger.SchedulerError("job_failed", "Job failed", err, map[string]interface{}{"job_id": j.info.ID})
		return
	}
	logger.Scheduler("job_executed", "Job executed", map[string]interface{}{
		"job_id":   j.info.ID,
		"duration": time.Since(start).String(),
	})
}

func (s *GocronScheduler) RemoveJob(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	j, exists := s.jobs[id]
	if !exists {
		return fmt.Errorf("job with ID %s not found", id)
	}

	s.scheduler.RemoveByReference(j.cron)
	delete(s.jobs, id)
	logger.Scheduler("job_removed", "Job removed", map[string]interface{}{"job_id": id})
	return nil
}

// RunJob runs a job immediately on the calling goroutine.
func (s *GocronScheduler) RunJob(id string) error {
	s.mu.RLock()
	j, exists := s.jobs[id]
	s.mu.RUnlock()
	if !exists {
		return fmt.Errorf("job with ID %s not found", id)
	}

	j.run()
	return nil
}

// ListJobs returns copies sorted by id.
func (s *GocronScheduler) ListJobs() []JobInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	jobs := make([]JobInfo, 0, len(s.jobs))
	for _, j := range s.jobs {
		info := j.info
		if j.info.LastRun != nil {
			lastRun := *j.info.LastRun
			info.LastRun = &lastRun
		}
		nextRun := j.cron.NextRun()
		info.NextRun = &nextRun
		jobs = append(jobs, info)
	}

	sort.Slice(jobs, func(a, b int) bool { return jobs[a].ID < jobs[b].ID })
	return jobs
}

// ValidateCronExpression reports whether cronExpr is accepted by gocron.
func ValidateCronExpression(cronExpr string) error {
	scheduler := gocron.NewScheduler(time.UTC)
	if _, err := scheduler.Cron(cronExpr).Do(func() {}); err != nil {
		return fmt.Errorf("invalid cron expression: %w", err)
	}
	return nil
}
