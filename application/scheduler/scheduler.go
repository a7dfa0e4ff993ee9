// application/scheduler/scheduler.go
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"web3-token-analytics-bot/pkg/logger"
)

// Schedule определяет расписание задачи: запуск с заданным интервалом
type Schedule struct {
	interval time.Duration
}

// Every создает расписание "каждые N времени"
func Every(d time.Duration) Schedule {
	return Schedule{interval: d}
}

// nextRun вычисляет время следующего запуска относительно now
func (s Schedule) nextRun(now time.Time) time.Time {
	if s.interval <= 0 {
		return now.Add(24 * time.Hour)
	}
	return now.Add(s.interval)
}

// DefaultRunTimeout - таймаут одного запуска, если у задачи он не задан
const DefaultRunTimeout = 5 * time.Minute

// Job описывает одну планируемую задачу
type Job struct {
	Name        string
	Description string
	Schedule    Schedule
	Handler     func(ctx context.Context) error

	// RetryDelay: после ошибки следующий запуск через RetryDelay вместо расписания (0 - по расписанию)
	RetryDelay time.Duration
	// Timeout одного запуска; 0 - DefaultRunTimeout
	Timeout time.Duration
	// RunImmediately: первый запуск сразу после Register
	RunImmediately bool

	mu      sync.Mutex
	nextRun time.Time
	lastRun time.Time
	lastErr error
	runs    int
	fails   int
}

// Status возвращает текущее состояние задачи
func (j *Job) Status() JobStatus {
	j.mu.Lock()
	defer j.mu.Unlock()
	return JobStatus{
		Name:        j.Name,
		Description: j.Description,
		NextRun:     j.nextRun,
		LastRun:     j.lastRun,
		LastErr:     j.lastErr,
		Runs:        j.runs,
		Failures:    j.fails,
	}
}

// JobStatus снапшот состояния задачи
type JobStatus struct {
	Name        string
	Description string
	NextRun     time.Time
	LastRun     time.Time
	LastErr     error
	Runs        int
	Failures    int
}

// Scheduler запускает задачи последовательно в одной горутине.
// Отмена проверяется между запусками.
type Scheduler struct {
	jobs     []*Job
	mu       sync.RWMutex
	stopChan chan struct{}
	stopOnce sync.Once
	wakeChan chan struct{}
	wg       sync.WaitGroup
	now      func() time.Time
}

// New создает новый планировщик
func New() *Scheduler {
	return &Scheduler{
		stopChan: make(chan struct{}),
		wakeChan: make(chan struct{}, 1),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Register добавляет задачу в планировщик
func (s *Scheduler) Register(job *Job) {
	s.mu.Lock()
	now := s.now()
	job.mu.Lock()
	if job.RunImmediately {
		job.nextRun = now
	} else {
		job.nextRun = job.Schedule.nextRun(now)
	}
	nextRun := job.nextRun
	job.mu.Unlock()
	s.jobs = append(s.jobs, job)
	s.mu.Unlock()

	select {
	case s.wakeChan <- struct{}{}:
	default:
	}

	logger.Info("📋 [Scheduler] Зарегистрирована задача %q, первый запуск в %s",
		job.Name, nextRun.Format("2006-01-02 15:04:05 UTC"))
}

// Start запускает цикл планировщика в фоновой горутине.
// Цикл завершается по Stop() или отмене ctx.
func (s *Scheduler) Start(ctx context.Context) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.loop(ctx)
	}()

	s.mu.RLock()
	count := len(s.jobs)
	s.mu.RUnlock()
	logger.Info("✅ [Scheduler] Запущен (%d задач)", count)
}

// Stop останавливает планировщик и ждёт завершения текущего запуска
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() { close(s.stopChan) })
	s.wg.Wait()
	logger.Info("🛑 [Scheduler] Остановлен")
}

// Wait блокируется до выхода цикла планировщика
func (s *Scheduler) Wait() {
	s.wg.Wait()
}

// Jobs возвращает статус всех задач
func (s *Scheduler) Jobs() []JobStatus {
	s.mu.RLock()
	jobs := make([]*Job, len(s.jobs))
	copy(jobs, s.jobs)
	s.mu.RUnlock()

	statuses := make([]JobStatus, len(jobs))
	for i, j := range jobs {
		statuses[i] = j.Status()
	}
	return statuses
}

// loop: спит до ближайшей задачи, выполняет наступившие, повторяет
func (s *Scheduler) loop(ctx context.Context) {
	for {
		if s.stopped(ctx) {
			return
		}

		for _, job := range s.dueJobs() {
			if s.stopped(ctx) {
				return
			}
			s.run(ctx, job)
		}

		wait, ok := s.untilNext()
		if !ok {
			wait = time.Hour
		}

		timer := time.NewTimer(wait)
		select {
		case <-timer.C:
		case <-s.wakeChan:
			timer.Stop()
		case <-s.stopChan:
			timer.Stop()
			return
		case <-ctx.Done():
			timer.Stop()
			return
		}
	}
}

func (s *Scheduler) stopped(ctx context.Context) bool {
	select {
	case <-s.stopChan:
		return true
	case <-ctx.Done():
		return true
	default:
		return false
	}
}

// dueJobs - задачи, у которых наступило время
func (s *Scheduler) dueJobs() []*Job {
	now := s.now()

	s.mu.RLock()
	defer s.mu.RUnlock()

	var due []*Job
	for _, job := range s.jobs {
		job.mu.Lock()
		if !now.Before(job.nextRun) {
			due = append(due, job)
		}
		job.mu.Unlock()
	}
	return due
}

// untilNext - время до ближайшего запуска
func (s *Scheduler) untilNext() (time.Duration, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.jobs) == 0 {
		return 0, false
	}

	var next time.Time
	for i, job := range s.jobs {
		job.mu.Lock()
		if i == 0 || job.nextRun.Before(next) {
			next = job.nextRun
		}
		job.mu.Unlock()
	}

	wait := next.Sub(s.now())
	if wait < 0 {
		wait = 0
	}
	return wait, true
}

// run выполняет одну задачу и обновляет её состояние
func (s *Scheduler) run(ctx context.Context, job *Job) {
	timeout := job.Timeout
	if timeout <= 0 {
		timeout = DefaultRunTimeout
	}
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	logger.Info("▶️  [Scheduler] Запуск задачи %q", job.Name)
	start := time.Now()

	err := safeRun(runCtx, job.Handler)

	elapsed := time.Since(start)

	job.mu.Lock()
	job.lastRun = start
	job.lastErr = err
	job.runs++
	if err != nil && job.RetryDelay > 0 {
		job.nextRun = s.now().Add(job.RetryDelay)
	} else {
		job.nextRun = job.Schedule.nextRun(s.now())
	}
	if err != nil {
		job.fails++
	}
	nextRun := job.nextRun
	job.mu.Unlock()

	if err != nil {
		logger.Error("❌ [Scheduler] Задача %q завершилась с ошибкой за %v: %v. Повтор в %s",
			job.Name, elapsed, err, nextRun.Format("2006-01-02 15:04:05 UTC"))
	} else {
		logger.Info("✅ [Scheduler] Задача %q выполнена за %v. Следующий запуск: %s",
			job.Name, elapsed, nextRun.Format("2006-01-02 15:04:05 UTC"))
	}
}

// safeRun превращает панику обработчика в ошибку, чтобы цикл продолжал работу
func safeRun(ctx context.Context, handler func(ctx context.Context) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return handler(ctx)
}
