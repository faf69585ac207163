package handlers

import (
	"net/http"

	"warehouse-surveillance/be/logger"
	"warehouse-surveillance/be/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ChunkHandler struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewChunkHandler(db *gorm.DB, log *logger.Logger) *ChunkHandler {
	return &ChunkHandler{db: db, log: log}
}

type chunkResponse struct {
	ChunkID        string  `json:"chunk_id"`
	WarehouseID    string  `json:"warehouse_id"`
	CamID          string  `json:"cam_id"`
	ChunkBlobURL   *string `json:"chunk_blob_url"`
	TranscriptsURL *string `json:"transcripts_url"`
	Date           *string `json:"date"`
	Time           *string `json:"time"`
}

// GetChunks lists the recorded video chunks for one camera and day in
// time order.
func (h *ChunkHandler) GetChunks(c *gin.Context) {
	warehouseID := c.Param("warehouse_id")
	camID := c.Param("cam_id")
	date, ok := requireDate(c)
	if !ok {
		return
	}

	var chunks []models.Chunk
	err := h.db.Where("warehouse_id = ? AND cam_id = ? AND date = ?", warehouseID, camID, date).
		Order("time").Find(&chunks).Error
	if err != nil {
		h.log.Error("failed to fetch chunks", "warehouse_id", warehouseID, "cam_id", camID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error: " + err.Error()})
		return
	}

	if len(chunks) == 0 {
		c.JSON(http.StatusOK, gin.H{
			"status":       "success",
			"message":      "No chunks found for the given criteria",
			"warehouse_id": warehouseID,
			"cam_id":       camID,
			"date":         date,
			"total_chunks": 0,
			"chunks":       []chunkResponse{},
		})
		return
	}

	list := make([]chunkResponse, 0, len(chunks))
	for _, chunk := range chunks {
		list = append(list, chunkResponse{
			ChunkID:        chunk.ChunkID,
			WarehouseID:    chunk.WarehouseID,
			CamID:          chunk.CamID,
			ChunkBlobURL:   chunk.ChunkBlobURL,
			TranscriptsURL: chunk.TranscriptsURL,
			Date:           models.FormatDate(chunk.Date),
			Time:           models.FormatDateTime(chunk.Time),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"status":       "success",
		"warehouse_id": warehouseID,
		"cam_id":       camID,
		"date":         date,
		"total_chunks": len(list),
		"chunks":       list,
	})
}
