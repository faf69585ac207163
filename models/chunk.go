package models

import "time"

// Chunk is one stored segment of recorded video plus its transcript,
// scoped to one camera and one day.
type Chunk struct {
	ChunkID        string     `json:"chunk_id" gorm:"column:chunk_id;primaryKey"`
	WarehouseID    string     `json:"warehouse_id" gorm:"column:warehouse_id"`
	CamID          string     `json:"cam_id" gorm:"column:cam_id"`
	ChunkBlobURL   *string    `json:"chunk_blob_url" gorm:"column:chunk_blob_url"`
	TranscriptsURL *string    `json:"transcripts_url" gorm:"column:transcripts_url"`
	Date           *time.Time `json:"date" gorm:"column:date"`
	Time           *time.Time `json:"time" gorm:"column:time"`
}

func (Chunk) TableName() string {
	return "wh_chunks"
}
