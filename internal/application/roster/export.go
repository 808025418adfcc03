package roster

import (
	"strconv"
	"strings"

	"github.com/jhoicas/Empleados-api/internal/application/dto"
)

// CSVHeader cabecera fija del export de nómina.
const CSVHeader = "Id,Name,Email,Department,HireDate,AbsentDays,WorkingDays,MonthlySalary,CalculatedSalary"

// BuildCSV serializa los empleados ya enriquecidos, una fila por empleado, líneas separadas por "\n".
// Los campos no se escapan: una coma dentro de un nombre desplaza las columnas (formato heredado).
func BuildCSV(employees []*dto.EmployeeResponse) string {
	lines := make([]string, 0, len(employees)+1)
	lines = append(lines, CSVHeader)
	for _, e := range employees {
		lines = append(lines, strings.Join([]string{
			e.ID,
			e.Name,
			e.Email,
			e.Department,
			e.HireDate,
			strconv.Itoa(e.AbsentDays),
			strconv.Itoa(e.WorkingDays),
			e.MonthlySalary.String(),
			e.CalculatedSalary.String(),
		}, ","))
	}
	return strings.Join(lines, "\n")
}
