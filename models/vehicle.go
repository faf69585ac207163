package models

import "time"

type Vehicle struct {
	ID            int64      `json:"id" gorm:"column:id;primaryKey"`
	WarehouseID   string     `json:"warehouse_id" gorm:"column:warehouse_id"`
	NumberPlate   *string    `json:"number_plate" gorm:"column:number_plate"`
	BagsCapacity  *int64     `json:"bags_capacity" gorm:"column:bags_capacity"`
	VehicleAccess *string    `json:"vehicle_access" gorm:"column:vehicle_access"`
	DriverID      *string    `json:"driver_id" gorm:"column:driver_id"`
	CreatedAt     *time.Time `json:"created_at" gorm:"column:created_at"`
}

func (Vehicle) TableName() string {
	return "wh_vehicles"
}

type Driver struct {
	DriverID    string  `json:"driver_id" gorm:"column:driver_id;primaryKey"`
	DriverName  *string `json:"driver_name" gorm:"column:driver_name"`
	DriverPhone *string `json:"driver_phone" gorm:"column:driver_phone"`
	DriverCrop  *string `json:"driver_crop" gorm:"column:driver_crop"`
}

func (Driver) TableName() string {
	return "wh_drivers"
}

// VehicleRow is the scan target for the vehicle query left-joined with
// wh_drivers.
type VehicleRow struct {
	ID            int64      `json:"id"`
	WarehouseID   string     `json:"warehouse_id"`
	NumberPlate   *string    `json:"number_plate"`
	BagsCapacity  *int64     `json:"bags_capacity"`
	VehicleAccess *string    `json:"vehicle_access"`
	DriverID      *string    `json:"driver_id"`
	CreatedAt     *time.Time `json:"-"`
	DriverName    *string    `json:"driver_name"`
	DriverPhone   *string    `json:"driver_phone"`
	DriverCrop    *string    `json:"driver_crop"`
}
