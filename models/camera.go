package models

type Camera struct {
	CamID           string   `json:"cam_id" gorm:"column:cam_id;primaryKey"`
	CamDirection    *string  `json:"cam_direction" gorm:"column:cam_direction"`
	CameraStatus    *string  `json:"camera_status" gorm:"column:camera_status"`
	WarehouseID     string   `json:"warehouse_id" gorm:"column:warehouse_id"`
	StreamARN       *string  `json:"stream_arn" gorm:"column:stream_arn"`
	HLSURL          *string  `json:"hls_url" gorm:"column:hls_url"`
	CameraLongitude *float64 `json:"camera_longitude" gorm:"column:camera_longitude"`
	CameraLatitude  *float64 `json:"camera_latitude" gorm:"column:camera_latitude"`
	Services        *string  `json:"services" gorm:"column:services"`
}

func (Camera) TableName() string {
	return "cameras"
}
