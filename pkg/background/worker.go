package background

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"freight/pkg/logger"

	"golang.org/x/sync/errgroup"
)

const (
	statusOK    = "ok"
	statusError = "error"
	statusPanic = "panic"
)

// Task периодическая работа процесса: чистки, сверка, пересборка индекса.
type Task interface {
	// TTL интервал между запусками; неположительный TTL означает только прогрев.
	TTL() time.Duration
	Do(context.Context) error
	// Info имя задачи для логов и меток метрик.
	Info() string
}

type handlerLogger interface {
	Debug(msg string, fields ...logger.Field)
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Worker struct {
	log   handlerLogger
	tasks []Task
	loops sync.WaitGroup
}

// New прогревает задачи: каждая выполняется один раз параллельно, первая ошибка
// или паника срывает старт. Дальше задачи идут в фоне по своим TTL до отмены ctx.
func New(ctx context.Context, log handlerLogger, tasks []Task) (*Worker, error) {
	w := &Worker{log: log, tasks: tasks}

	warmup, warmupCtx := errgroup.WithContext(ctx)
	for _, task := range tasks {
		warmup.Go(func() error {
			log.Info("warming up background task", logger.NewField("task", task.Info()))
			return w.execute(warmupCtx, task)
		})
	}
	if err := warmup.Wait(); err != nil {
		return nil, fmt.Errorf("background warmup: %w", err)
	}

	for _, task := range tasks {
		ttl := task.TTL()
		if ttl <= 0 {
			log.Warn("non-positive TTL, task runs only at warmup",
				logger.NewField("task", task.Info()),
				logger.NewField("ttl", ttl),
			)
			continue
		}

		w.loops.Add(1)
		go w.loop(ctx, task, ttl)
	}

	return w, nil
}

func (w *Worker) loop(ctx context.Context, task Task, ttl time.Duration) {
	defer w.loops.Done()

	taskLog := w.log.With(logger.NewField("task", task.Info()))
	taskLog.Info("background task scheduled", logger.NewField("ttl", ttl.String()))

	ticker := time.NewTicker(ttl)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			taskLog.Debug("background task stopped")
			return
		case <-ticker.C:
			if err := w.execute(ctx, task); err != nil {
				taskLog.With(logger.NewField("error", err)).Error("background task failed")
			}
		}
	}
}

// execute паника задачи возвращается ошибкой со стеком, процесс не падает.
func (w *Worker) execute(ctx context.Context, task Task) (err error) {
	start := time.Now()
	status := statusOK

	defer func() {
		if r := recover(); r != nil {
			status = statusPanic
			err = fmt.Errorf("task %s panicked: %v\n%s", task.Info(), r, debug.Stack())
		}
		TaskRunsTotal.WithLabelValues(task.Info(), status).Inc()
		TaskDuration.WithLabelValues(task.Info()).Observe(time.Since(start).Seconds())
	}()

	if err = task.Do(ctx); err != nil {
		status = statusError
		return fmt.Errorf("task %s: %w", task.Info(), err)
	}
	return nil
}

// Wait ждет выхода фоновых циклов после отмены контекста New.
func (w *Worker) Wait() {
	w.loops.Wait()
}

func (w *Worker) Tasks() []string {
	names := make([]string, 0, len(w.tasks))
	for _, task := range w.tasks {
		names = append(names, task.Info())
	}
	return names
}
