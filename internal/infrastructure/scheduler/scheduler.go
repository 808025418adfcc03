package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/jhoicas/Empleados-api/pkg/logger"
)

// jobTimeout tiempo máximo de una ejecución programada.
const jobTimeout = 2 * time.Minute

// Job tarea ejecutable por el Scheduler.
type Job interface {
	Run(ctx context.Context) (string, error)
}

// Scheduler envuelve cron.Cron con recuperación de panics y logging estructurado.
type Scheduler struct {
	cron *cron.Cron
	log  *logger.Logger
}

// New crea un scheduler detenido. Las expresiones usan 5 campos (minuto hora día mes díaSemana).
func New(log *logger.Logger) *Scheduler {
	if log == nil {
		log = logger.Nop()
	}
	l := log.Component("scheduler")
	adapter := cronLogger{log: l}
	return &Scheduler{
		cron: cron.New(cron.WithLogger(adapter), cron.WithChain(cron.Recover(adapter), cron.SkipIfStillRunning(adapter))),
		log:  l,
	}
}

// Schedule registra job con la expresión spec.
func (s *Scheduler) Schedule(spec, name string, job Job) error {
	_, err := s.cron.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()
		out, err := job.Run(ctx)
		if err != nil {
			s.log.Error().Err(err).Str("job", name).Msg("tarea programada falló")
			return
		}
		s.log.Info().Str("job", name).Str("output", out).Msg("tarea programada completada")
	})
	if err != nil {
		return fmt.Errorf("scheduler: expresión %q: %w", spec, err)
	}
	s.log.Info().Str("job", name).Str("spec", spec).Msg("tarea programada registrada")
	return nil
}

// Start arranca el scheduler en su propia goroutine.
func (s *Scheduler) Start() { s.cron.Start() }

// Stop detiene el scheduler y espera a las tareas en curso o a que ctx expire.
func (s *Scheduler) Stop(ctx context.Context) error {
	select {
	case <-s.cron.Stop().Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// cronLogger adapta el logger de la aplicación a cron.Logger.
type cronLogger struct {
	log *logger.Logger
}

func (c cronLogger) Info(msg string, keysAndValues ...interface{}) {
	c.log.Debug().Fields(keysAndValues).Msg(msg)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	c.log.Error().Err(err).Fields(keysAndValues).Msg(msg)
}
