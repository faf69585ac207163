package models

type Warehouse struct {
	WarehouseID        string   `json:"warehouse_id" gorm:"column:warehouse_id;primaryKey"`
	WarehouseName      *string  `json:"warehouse_name" gorm:"column:warehouse_name"`
	WarehouseCapacity  *int64   `json:"warehouse_capacity" gorm:"column:warehouse_capacity"`
	WarehouseLongitude *float64 `json:"warehouse_longitude" gorm:"column:warehouse_longitude"`
	WarehouseLatitude  *float64 `json:"warehouse_latitude" gorm:"column:warehouse_latitude"`
	WarehouseLocation  *string  `json:"warehouse_location" gorm:"column:warehouse_location"`
}

func (Warehouse) TableName() string {
	return "warehouse"
}
