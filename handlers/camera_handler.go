package handlers

import (
	"fmt"
	"net/http"

	"warehouse-surveillance/be/logger"
	"warehouse-surveillance/be/models"
	"warehouse-surveillance/be/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CameraHandler struct {
	db      *gorm.DB
	kinesis *services.KinesisService
	log     *logger.Logger
}

func NewCameraHandler(db *gorm.DB, kinesis *services.KinesisService, log *logger.Logger) *CameraHandler {
	return &CameraHandler{db: db, kinesis: kinesis, log: log}
}

// GetStreamURL signs a live HLS playback URL for the camera. The signed
// URL and an active status are written back to the camera row as a side
// effect; that write failing does not fail the request.
func (h *CameraHandler) GetStreamURL(c *gin.Context) {
	warehouseID := c.Query("warehouse_id")
	camID := c.Query("cam_id")
	if warehouseID == "" || camID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "warehouse_id and cam_id query parameters are required"})
		return
	}

	var camera models.Camera
	err := h.db.Where("warehouse_id = ? AND cam_id = ?", warehouseID, camID).First(&camera).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{
				"error": fmt.Sprintf("Camera not found: cam_id=%s, warehouse_id=%s", camID, warehouseID),
			})
			return
		}
		h.log.Error("failed to fetch camera", "warehouse_id", warehouseID, "cam_id", camID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error: " + err.Error()})
		return
	}

	if camera.StreamARN == nil || *camera.StreamARN == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("Stream ARN not configured for camera: %s", camID),
		})
		return
	}
	streamARN := *camera.StreamARN

	streamName, err := services.StreamNameFromARN(streamARN)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid stream ARN format in database"})
		return
	}

	session, err := h.kinesis.GetHLSStreamingURL(c.Request.Context(), streamARN)
	if err != nil {
		if code, message, ok := services.AWSErrorDetail(err); ok {
			h.log.Error("AWS error signing HLS URL", "code", code, "message", message)
			c.JSON(http.StatusBadRequest, gin.H{
				"error": fmt.Sprintf("AWS Kinesis Error: %s - %s", code, message),
			})
			return
		}
		h.log.Error("failed to sign HLS URL", "stream_arn", streamARN, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error: " + err.Error()})
		return
	}

	// Best-effort status write; the signed URL is still good if it
	// fails.
	updateStatus := "Camera status updated to 'active' and HLS URL saved"
	result := h.db.Exec(
		"UPDATE cameras SET camera_status = 'active', hls_url = ? WHERE warehouse_id = ? AND cam_id = ?",
		session.URL, warehouseID, camID,
	)
	if result.Error != nil {
		h.log.Warn("failed to update camera status", "warehouse_id", warehouseID, "cam_id", camID, "error", result.Error)
		updateStatus = "Camera update failed"
	} else if result.RowsAffected == 0 {
		updateStatus = "Camera update failed"
	}

	c.JSON(http.StatusOK, gin.H{
		"status":             "success",
		"stream_arn":         streamARN,
		"stream_name":        streamName,
		"warehouse_id":       warehouseID,
		"cam_id":             camID,
		"hls_streaming_url":  session.URL,
		"expires_in_seconds": session.ExpiresIn,
		"data_endpoint":      session.DataEndpoint,
		"database_update":    updateStatus,
	})
}
