package job

import (
	"sync"

	mapset "github.com/deckarep/golang-set/v2"
	cron "github.com/robfig/cron"
	"github.com/sirupsen/logrus"
)

type CronJob interface {
	Schedule() string
	Run()
}

// TaskExecutor schedules cron jobs and prevents overlapping runs of the
// same job.
type TaskExecutor struct {
	cron        *cron.Cron
	cronJobs    []CronJob
	runningJobs mapset.Set[CronJob]
	mu          sync.Mutex
}

func NewTaskExecutor(cronJobs []CronJob) *TaskExecutor {
	return &TaskExecutor{
		cron:        cron.New(),
		cronJobs:    cronJobs,
		runningJobs: mapset.NewSet[CronJob](),
	}
}

// Run the jobs in their own goroutines inside the cron.
func (t *TaskExecutor) Run() {
	for _, job := range t.cronJobs {
		err := t.cron.AddFunc(job.Schedule(), func() {
			t.mu.Lock()
			if t.runningJobs.Contains(job) {
				t.mu.Unlock()
				logrus.Warn("task is already running")
				return
			}

			t.runningJobs.Add(job)
			t.mu.Unlock()

			defer func() {
				t.mu.Lock()
				defer t.mu.Unlock()
				t.runningJobs.Remove(job)
			}()

			job.Run()
		})

		if err != nil {
			logrus.Errorf("failed to add task to cron: %v", err)
			panic(err)
		}
	}

	t.cron.Start()
}

func (t *TaskExecutor) Stop() {
	logrus.Infof("stopping all tasks")
	t.cron.Stop()
}
