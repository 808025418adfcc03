// seed crea la cuenta inicial de administración y, opcionalmente, importa un CSV
// exportado por la versión de escritorio.
//
// Uso: go run ./cmd/seed [-csv empleados.csv] [-encoding windows-1252|utf-8]
// Usa la misma configuración que la API (DB_DRIVER, DATABASE_URL, SQLITE_PATH, CREDENTIAL_*).
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/Empleados-api/internal/application/roster"
	"github.com/jhoicas/Empleados-api/internal/domain/credential"
	"github.com/jhoicas/Empleados-api/internal/domain/entity"
	"github.com/jhoicas/Empleados-api/internal/infrastructure/storage"
	"github.com/jhoicas/Empleados-api/pkg/config"
	"github.com/jhoicas/Empleados-api/pkg/logger"
)

const (
	adminUsername = "admin"
	adminPassword = "admin123"
	adminEmail    = "admin@company.com"
)

func main() {
	csvPath := flag.String("csv", "", "CSV heredado a importar (opcional)")
	encoding := flag.String("encoding", "windows-1252", "codificación del CSV: windows-1252 | utf-8")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx := context.Background()
	store, err := storage.Open(ctx, cfg.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacén")
	}
	defer store.Close()

	hasher, err := credential.NewHasher(credential.Config{Scheme: cfg.Credential.Scheme, Iterations: cfg.Credential.Iterations})
	if err != nil {
		log.Fatal().Err(err).Msg("configurar hasher de credenciales")
	}
	if err := seedAdmin(ctx, store, hasher, log); err != nil {
		log.Fatal().Err(err).Msg("crear administrador")
	}

	if *csvPath == "" {
		return
	}
	records, err := readLegacyCSV(*csvPath, *encoding)
	if err != nil {
		log.Fatal().Err(err).Str("file", *csvPath).Msg("leer CSV heredado")
	}
	rosterUC := roster.NewRosterUseCase(store.Employees, store.Tx, nil, cfg.Payroll.DefaultWorkingDays, log)
	seedSession := &entity.Session{ID: "seed", Username: "seed"}
	res, err := rosterUC.ImportLegacy(ctx, seedSession, records)
	if err != nil {
		log.Fatal().Err(err).Int("imported", res.Imported).Msg("importar CSV heredado")
	}
	fmt.Printf("Importados: %d, omitidos: %d\n", res.Imported, res.Skipped)
}

// seedAdmin crea la cuenta admin si no existe.
func seedAdmin(ctx context.Context, store *storage.Storage, hasher *credential.Hasher, log *logger.Logger) error {
	existing, err := store.Users.FindByUsername(ctx, adminUsername)
	if err != nil {
		return err
	}
	if existing != nil {
		log.Info().Msg("la cuenta admin ya existe")
		return nil
	}
	hash, err := hasher.Hash(adminPassword)
	if err != nil {
		return err
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		Username:     adminUsername,
		Email:        adminEmail,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}
	if err := store.Users.Create(ctx, user); err != nil {
		return err
	}
	log.Info().Str("user_id", user.ID).Msg("cuenta admin creada")
	return nil
}

func readLegacyCSV(path, encoding string) ([]roster.LegacyRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	switch strings.ToLower(encoding) {
	case "windows-1252", "cp1252":
		r = transform.NewReader(f, charmap.Windows1252.NewDecoder())
	case "utf-8", "utf8":
	default:
		return nil, fmt.Errorf("codificación no soportada %q", encoding)
	}
	return roster.ParseLegacyCSV(r)
}
