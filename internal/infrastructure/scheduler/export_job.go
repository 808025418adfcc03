// Package scheduler ejecuta tareas periódicas de la nómina (exportación programada del CSV).
package scheduler

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/afero"

	"github.com/jhoicas/Empleados-api/internal/domain/entity"
	"github.com/jhoicas/Empleados-api/pkg/logger"
)

// SystemSession sesión con la que corren las tareas programadas; no pertenece a ningún usuario.
var SystemSession = &entity.Session{ID: "scheduler", UserID: "", Username: "scheduler"}

// CSVExporter puerto hacia el caso de uso de nómina.
type CSVExporter interface {
	ExportCSV(ctx context.Context, s *entity.Session) (string, error)
}

// PayrollExportJob escribe el CSV de nómina en dir como nomina-AAAA-MM.csv.
type PayrollExportJob struct {
	exporter CSVExporter
	fs       afero.Fs
	dir      string
	log      *logger.Logger
	now      func() time.Time
}

// NewPayrollExportJob construye el job. fs nil usa el sistema de archivos del SO.
func NewPayrollExportJob(exporter CSVExporter, fs afero.Fs, dir string, log *logger.Logger) *PayrollExportJob {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if log == nil {
		log = logger.Nop()
	}
	return &PayrollExportJob{exporter: exporter, fs: fs, dir: dir, log: log.Component("export-job"), now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (j *PayrollExportJob) WithClock(now func() time.Time) *PayrollExportJob {
	j.now = now
	return j
}

// Run genera el CSV y lo escribe de forma atómica (archivo temporal + rename). Devuelve la ruta final.
func (j *PayrollExportJob) Run(ctx context.Context) (string, error) {
	csv, err := j.exporter.ExportCSV(ctx, SystemSession)
	if err != nil {
		return "", fmt.Errorf("export job: %w", err)
	}
	if err := j.fs.MkdirAll(j.dir, 0o755); err != nil {
		return "", fmt.Errorf("export job: crear directorio: %w", err)
	}

	name := filepath.Join(j.dir, fmt.Sprintf("nomina-%s.csv", j.now().Format("2006-01")))
	tmp := name + ".tmp"
	if err := afero.WriteFile(j.fs, tmp, []byte(csv), 0o644); err != nil {
		return "", fmt.Errorf("export job: escribir: %w", err)
	}
	if err := j.fs.Rename(tmp, name); err != nil {
		_ = j.fs.Remove(tmp)
		return "", fmt.Errorf("export job: renombrar: %w", err)
	}

	j.log.Info().Str("file", name).Int("bytes", len(csv)).Msg("CSV de nómina exportado")
	return name, nil
}
