package models

// Employee roles surfaced in the warehouse roster views. The roster
// endpoints only expose supervisor, in-charge and data-entry-operator
// roles; everything else stays internal to the ingestion pipelines.
const (
	RoleSupervisor        = "ROLE_SUP"
	RoleInCharge          = "ROLE_INC"
	RoleDataEntryOperator = "ROLE_DEO"
)

type Employee struct {
	EmpID       string  `json:"emp_id" gorm:"column:emp_id;primaryKey"`
	WarehouseID string  `json:"warehouse_id" gorm:"column:warehouse_id"`
	EmpName     *string `json:"emp_name" gorm:"column:emp_name"`
	EmpNumber   *string `json:"emp_number" gorm:"column:emp_number"`
	RoleID      *string `json:"role_id" gorm:"column:role_id"`
	EmpFacecrop *string `json:"emp_facecrop" gorm:"column:emp_facecrop"`
}

func (Employee) TableName() string {
	return "wh_emp_data"
}

type EmployeeRole struct {
	RoleID   string  `json:"role_id" gorm:"column:role_id;primaryKey"`
	RoleName *string `json:"role_name" gorm:"column:role_name"`
}

func (EmployeeRole) TableName() string {
	return "wh_emp_role"
}

// EmployeeRow is the scan target for the roster query joined with
// wh_emp_role.
type EmployeeRow struct {
	EmpID       string  `json:"emp_id"`
	WarehouseID string  `json:"warehouse_id"`
	EmpName     *string `json:"emp_name"`
	EmpNumber   *string `json:"emp_number"`
	RoleID      *string `json:"role_id"`
	EmpFacecrop *string `json:"emp_facecrop"`
	RoleName    *string `json:"role_name"`
}
