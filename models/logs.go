package models

import "time"

// EmployeeLog rows with a NULL emp_id are unrecognized entrants; they
// still count toward raw totals but never toward unique-employee counts.
type EmployeeLog struct {
	ID          int64      `json:"id" gorm:"column:id;primaryKey"`
	WarehouseID string     `json:"warehouse_id" gorm:"column:warehouse_id"`
	EmpID       *string    `json:"emp_id" gorm:"column:emp_id"`
	CamID       string     `json:"cam_id" gorm:"column:cam_id"`
	Date        *time.Time `json:"date" gorm:"column:date"`
	Time        *time.Time `json:"time" gorm:"column:time"`
	CropBlobURL *string    `json:"crop_blob_url" gorm:"column:crop_blob_url"`
	ChunkID     *string    `json:"chunk_id" gorm:"column:chunk_id"`
	EmpAccess   *string    `json:"emp_access" gorm:"column:emp_access"`
}

func (EmployeeLog) TableName() string {
	return "wh_emp_logs"
}

// EmployeeLogRow is the scan target for the employee-log query joined
// with wh_emp_data and wh_emp_role.
type EmployeeLogRow struct {
	ID          int64
	WarehouseID string
	EmpID       *string
	EmpName     *string
	EmpNumber   *string
	RoleName    *string
	Date        *time.Time
	Time        *time.Time
	CamID       string
	CropBlobURL *string
	ChunkID     *string
	EmpAccess   *string
}

type GunnyLog struct {
	ID          int64      `json:"id" gorm:"column:id;primaryKey"`
	WarehouseID string     `json:"warehouse_id" gorm:"column:warehouse_id"`
	CamID       string     `json:"cam_id" gorm:"column:cam_id"`
	Count       *int64     `json:"count" gorm:"column:count"`
	Date        *time.Time `json:"date" gorm:"column:date"`
	ChunkID     *string    `json:"chunk_id" gorm:"column:chunk_id"`
	CreatedAt   *time.Time `json:"created_at" gorm:"column:created_at"`
	Action      *string    `json:"action" gorm:"column:action"`
}

func (GunnyLog) TableName() string {
	return "wh_gunny_logs"
}

type VehicleLog struct {
	ID            int64      `json:"id" gorm:"column:id;primaryKey"`
	WarehouseID   string     `json:"warehouse_id" gorm:"column:warehouse_id"`
	CamID         string     `json:"cam_id" gorm:"column:cam_id"`
	Date          *time.Time `json:"date" gorm:"column:date"`
	ChunkID       *string    `json:"chunk_id" gorm:"column:chunk_id"`
	NumberPlate   *string    `json:"number_plate" gorm:"column:number_plate"`
	VehicleAccess *string    `json:"vehicle_access" gorm:"column:vehicle_access"`
	CreatedAt     *time.Time `json:"created_at" gorm:"column:created_at"`
}

func (VehicleLog) TableName() string {
	return "wh_vehicle_logs"
}
