package http

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Empleados-api/internal/application/dto"
	"github.com/jhoicas/Empleados-api/internal/application/roster"
	"github.com/jhoicas/Empleados-api/internal/domain"
	"github.com/jhoicas/Empleados-api/pkg/logger"
)

// EmployeeHandler maneja las peticiones HTTP de la nómina (protegido).
type EmployeeHandler struct {
	uc  *roster.RosterUseCase
	log *logger.Logger
}

// NewEmployeeHandler construye el handler.
func NewEmployeeHandler(uc *roster.RosterUseCase, log *logger.Logger) *EmployeeHandler {
	return &EmployeeHandler{uc: uc, log: log}
}

// Create godoc
// @Summary      Registrar empleado
// @Tags         employees
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateEmployeeRequest  true  "Datos del empleado"
// @Success      201   {object}  dto.EmployeeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/employees [post]
func (h *EmployeeHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateEmployeeRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Add(c.UserContext(), GetSession(c), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar empleados
// @Tags         employees
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.EmployeeResponse
// @Router       /api/employees [get]
func (h *EmployeeHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), GetSession(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener empleado por ID
// @Tags         employees
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del empleado"
// @Success      200  {object}  dto.EmployeeResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/employees/{id} [get]
func (h *EmployeeHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), GetSession(c), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Editar empleado
// @Tags         employees
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del empleado"
// @Param        body  body  dto.UpdateEmployeeRequest  true  "Todos los campos"
// @Success      200   {object}  dto.EmployeeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/employees/{id} [put]
func (h *EmployeeHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateEmployeeRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), GetSession(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar empleado
// @Tags         employees
// @Security     Bearer
// @Param        id   path  string  true  "ID del empleado"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/employees/{id} [delete]
func (h *EmployeeHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), GetSession(c), c.Params("id")); err != nil {
		return writeError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// UpdateAbsentDays godoc
// @Summary      Actualizar días de ausencia
// @Tags         employees
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del empleado"
// @Param        body  body  dto.UpdateAbsentDaysRequest  true  "absent_days"
// @Success      200   {object}  dto.EmployeeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/employees/{id}/absent-days [patch]
func (h *EmployeeHandler) UpdateAbsentDays(c *fiber.Ctx) error {
	var in dto.UpdateAbsentDaysRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.UpdateAbsentDays(c.UserContext(), GetSession(c), c.Params("id"), in.AbsentDays)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Salary godoc
// @Summary      Salario del mes con N ausencias
// @Tags         employees
// @Security     Bearer
// @Produce      json
// @Param        id           path   string  true   "ID del empleado"
// @Param        absent_days  query  int     false  "Ausencias del mes"  default(0)
// @Success      200  {object}  dto.SalaryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/employees/{id}/salary [get]
func (h *EmployeeHandler) Salary(c *fiber.Ctx) error {
	absent := 0
	if q := c.Query("absent_days"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil {
			return writeError(c, h.log, fmt.Errorf("%w: absent_days debe ser un entero", domain.ErrInvalidInput))
		}
		absent = n
	}
	out, err := h.uc.CalculateSalary(c.UserContext(), GetSession(c), c.Params("id"), absent)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// ExportCSV godoc
// @Summary      Exportar nómina en CSV
// @Tags         employees
// @Security     Bearer
// @Produce      text/csv
// @Success      200  {string}  string
// @Router       /api/employees/export.csv [get]
func (h *EmployeeHandler) ExportCSV(c *fiber.Ctx) error {
	csv, err := h.uc.ExportCSV(c.UserContext(), GetSession(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="empleados.csv"`)
	return c.SendString(csv)
}

// ExportPDF godoc
// @Summary      Reporte de nómina en PDF
// @Tags         employees
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Router       /api/employees/export.pdf [get]
func (h *EmployeeHandler) ExportPDF(c *fiber.Ctx) error {
	pdf, err := h.uc.ExportPDF(c.UserContext(), GetSession(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="nomina.pdf"`)
	return c.Send(pdf)
}
