package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Empleados-api/internal/application/auth"
	"github.com/jhoicas/Empleados-api/internal/application/dto"
	"github.com/jhoicas/Empleados-api/internal/application/roster"
	"github.com/jhoicas/Empleados-api/internal/domain/credential"
	"github.com/jhoicas/Empleados-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Empleados-api/internal/infrastructure/sqlite"
	apphttp "github.com/jhoicas/Empleados-api/internal/interfaces/http"
	"github.com/jhoicas/Empleados-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// 15 de abril de 2024: abril tiene 22 días hábiles.
var rosterNow = time.Date(2024, time.April, 15, 10, 0, 0, 0, time.UTC)

// buildTestApp arma la API completa sobre SQLite en memoria.
func buildTestApp(t *testing.T) *fiber.App {
	t.Helper()
	store, err := sqlite.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	authUC := auth.NewAuthUseCase(store.Users(), store.Sessions(), store, credential.NewDefaultHasher(),
		auth.JWTConfig{Secret: "test-secret-key-for-unit-tests", ExpMinutes: 60, Issuer: "empleados-test"}, logger.Nop())
	rosterUC := roster.NewRosterUseCase(store.Employees(), store, pdf.NewMarotoPayrollReport("Empresa de prueba"), 22, logger.Nop()).
		WithClock(func() time.Time { return rosterNow })

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{AuthUC: authUC, RosterUC: rosterUC, AppName: "empleados-test"})
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func signUp(t *testing.T, app *fiber.App) string {
	t.Helper()
	resp := doJSON(t, app, http.MethodPost, "/api/auth/signup", "",
		map[string]string{"username": "admin", "email": "admin@company.com", "password": "admin123"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decode[dto.LoginResponse](t, resp).Token
}

var ana = map[string]any{
	"name":           "Ana",
	"email":          "ana@empresa.com",
	"department":     "Finanzas",
	"hire_date":      "2024-01-01",
	"monthly_salary": 3000,
}

// ── Health ────────────────────────────────────────────────────────────────────

func TestHealth(t *testing.T) {
	app := buildTestApp(t)
	resp := doJSON(t, app, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// ── Auth ──────────────────────────────────────────────────────────────────────

func TestSignUp_DuplicadoRetorna409(t *testing.T) {
	app := buildTestApp(t)
	signUp(t, app)

	resp := doJSON(t, app, http.MethodPost, "/api/auth/signup", "",
		map[string]string{"username": "admin", "email": "otro@company.com", "password": "x"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "USERNAME_EXISTS", decode[dto.ErrorResponse](t, resp).Code)
}

func TestSignUp_CamposVaciosRetorna400(t *testing.T) {
	app := buildTestApp(t)
	resp := doJSON(t, app, http.MethodPost, "/api/auth/signup", "",
		map[string]string{"username": "", "email": "a@b.com", "password": "x"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestLogin_CredencialesInvalidasRetorna401(t *testing.T) {
	app := buildTestApp(t)
	signUp(t, app)

	for _, body := range []map[string]string{
		{"username": "admin", "password": "incorrecta"},
		{"username": "nadie", "password": "admin123"},
	} {
		resp := doJSON(t, app, http.MethodPost, "/api/auth/login", "", body)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "UNAUTHORIZED", decode[dto.ErrorResponse](t, resp).Code)
	}
}

func TestLogin_InvalidaTokenAnterior(t *testing.T) {
	app := buildTestApp(t)
	first := signUp(t, app)

	resp := doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{"username": "admin", "password": "admin123"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	second := decode[dto.LoginResponse](t, resp).Token

	resp = doJSON(t, app, http.MethodGet, "/api/auth/me", first, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "SESSION_EXPIRED", decode[dto.ErrorResponse](t, resp).Code)

	resp = doJSON(t, app, http.MethodGet, "/api/auth/me", second, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "admin", decode[dto.UserResponse](t, resp).Username)
}

func TestLogout_CierraSesion(t *testing.T) {
	app := buildTestApp(t)
	token := signUp(t, app)

	resp := doJSON(t, app, http.MethodPost, "/api/auth/logout", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/api/employees", token, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ── AuthMiddleware ────────────────────────────────────────────────────────────

func TestAuthMiddleware_SinHeader(t *testing.T) {
	app := buildTestApp(t)
	resp := doJSON(t, app, http.MethodGet, "/api/employees", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "MISSING_TOKEN", decode[dto.ErrorResponse](t, resp).Code)
}

func TestAuthMiddleware_TokenInvalido(t *testing.T) {
	app := buildTestApp(t)
	resp := doJSON(t, app, http.MethodGet, "/api/employees", "token.invalido.aqui", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_TOKEN", decode[dto.ErrorResponse](t, resp).Code)
}

func TestAuthMiddleware_FormatoIncorrecto(t *testing.T) {
	app := buildTestApp(t)
	req := httptest.NewRequest(http.MethodGet, "/api/employees", nil)
	req.Header.Set("Authorization", "Token abc")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ── Employees ─────────────────────────────────────────────────────────────────

func TestEmployees_FlujoCompleto(t *testing.T) {
	app := buildTestApp(t)
	token := signUp(t, app)

	resp := doJSON(t, app, http.MethodPost, "/api/employees", token, ana)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[dto.EmployeeResponse](t, resp)
	assert.Equal(t, 105, created.WorkingDays)
	assert.Equal(t, "3000", created.CalculatedSalary.String())

	resp = doJSON(t, app, http.MethodPatch, "/api/employees/"+created.ID+"/absent-days", token, map[string]int{"absent_days": 11})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated := decode[dto.EmployeeResponse](t, resp)
	assert.Equal(t, 94, updated.WorkingDays)
	assert.Equal(t, "1500", updated.CalculatedSalary.String())

	resp = doJSON(t, app, http.MethodGet, "/api/employees/"+created.ID+"/salary?absent_days=11", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "1500", decode[dto.SalaryResponse](t, resp).Salary.String())

	resp = doJSON(t, app, http.MethodGet, "/api/employees", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]dto.EmployeeResponse](t, resp), 1)

	resp = doJSON(t, app, http.MethodDelete, "/api/employees/"+created.ID, token, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/api/employees/"+created.ID, token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestEmployees_ErroresDeValidacion(t *testing.T) {
	app := buildTestApp(t)
	token := signUp(t, app)

	resp := doJSON(t, app, http.MethodPost, "/api/employees", token, ana)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	id := decode[dto.EmployeeResponse](t, resp).ID

	resp = doJSON(t, app, http.MethodPost, "/api/employees", token, ana)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "EMPLOYEE_EMAIL_EXISTS", decode[dto.ErrorResponse](t, resp).Code)

	resp = doJSON(t, app, http.MethodPatch, "/api/employees/"+id+"/absent-days", token, map[string]int{"absent_days": 500})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "ABSENT_DAYS_EXCEEDED", decode[dto.ErrorResponse](t, resp).Code)

	resp = doJSON(t, app, http.MethodGet, "/api/employees/"+id+"/salary?absent_days=abc", token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	bad := map[string]any{"name": "X", "email": "x@x.com", "department": "D", "hire_date": "2024-01-01", "monthly_salary": -5}
	resp = doJSON(t, app, http.MethodPost, "/api/employees", token, bad)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", decode[dto.ErrorResponse](t, resp).Code)

	for _, salary := range []string{"1e30", "1234.5678"} {
		bad["monthly_salary"] = salary
		resp = doJSON(t, app, http.MethodPost, "/api/employees", token, bad)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "salario %s", salary)
		assert.Equal(t, "VALIDATION", decode[dto.ErrorResponse](t, resp).Code)
	}
}

func TestEmployees_IDNoUUIDEsNoEncontrado(t *testing.T) {
	app := buildTestApp(t)
	token := signUp(t, app)
	update := map[string]any{
		"name": "Ana", "email": "ana@empresa.com", "department": "Finanzas", "hire_date": "2024-01-01",
		"absent_days": 0, "monthly_salary": 3000, "working_days_per_month": 22,
	}

	resp := doJSON(t, app, http.MethodGet, "/api/employees/abc", token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", decode[dto.ErrorResponse](t, resp).Code)

	resp = doJSON(t, app, http.MethodPut, "/api/employees/abc", token, update)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPatch, "/api/employees/abc/absent-days", token, map[string]int{"absent_days": 1})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/api/employees/abc/salary", token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = doJSON(t, app, http.MethodDelete, "/api/employees/abc", token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestEmployees_Exportaciones(t *testing.T) {
	app := buildTestApp(t)
	token := signUp(t, app)
	resp := doJSON(t, app, http.MethodPost, "/api/employees", token, ana)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/api/employees/export.csv", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/csv")
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	lines := strings.Split(string(body), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, roster.CSVHeader, lines[0])
	assert.True(t, strings.HasSuffix(lines[1], ",Ana,ana@empresa.com,Finanzas,2024-01-01,0,105,3000,3000"))

	resp = doJSON(t, app, http.MethodGet, "/api/employees/export.pdf", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	body, err = io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))
}
