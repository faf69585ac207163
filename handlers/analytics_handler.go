package handlers

import (
	"net/http"

	"warehouse-surveillance/be/logger"
	"warehouse-surveillance/be/models"
	"warehouse-surveillance/be/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AnalyticsHandler struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAnalyticsHandler(db *gorm.DB, log *logger.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{db: db, log: log}
}

// GetVehicleGunnyCount cross-references the day's vehicle sightings
// with gunny-bag events through shared chunk ids: phase one collects
// each plate's chunk set, phase two batch-fetches the gunny rows for
// the union of those sets and attributes them per plate in memory.
func (h *AnalyticsHandler) GetVehicleGunnyCount(c *gin.Context) {
	warehouseID := c.Param("warehouse_id")
	camID := c.Param("cam_id")
	date, ok := requireDate(c)
	if !ok {
		return
	}

	var vehicleRows []models.VehicleLog
	err := h.db.Where(
		"warehouse_id = ? AND cam_id = ? AND date = ? AND number_plate IS NOT NULL AND chunk_id IS NOT NULL",
		warehouseID, camID, date,
	).Order("created_at").Find(&vehicleRows).Error
	if err != nil {
		h.log.Error("failed to fetch vehicle logs", "warehouse_id", warehouseID, "cam_id", camID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error: " + err.Error()})
		return
	}

	plates := services.CollectPlateChunks(vehicleRows)
	if len(plates) == 0 {
		c.JSON(http.StatusOK, gin.H{
			"status":           "success",
			"message":          "No vehicles found for the given criteria",
			"warehouse_id":     warehouseID,
			"cam_id":           camID,
			"date":             date,
			"total_vehicles":   0,
			"grand_total_bags": 0,
			"vehicles":         []services.VehicleGunnySummary{},
		})
		return
	}

	chunkUnion := make([]string, 0)
	seen := make(map[string]struct{})
	for _, plate := range plates {
		for _, chunkID := range plate.ChunkIDs {
			if _, ok := seen[chunkID]; !ok {
				seen[chunkID] = struct{}{}
				chunkUnion = append(chunkUnion, chunkID)
			}
		}
	}

	var gunnyRows []models.GunnyLog
	err = h.db.Where(
		"warehouse_id = ? AND cam_id = ? AND date = ? AND chunk_id IN ?",
		warehouseID, camID, date, chunkUnion,
	).Order("created_at").Find(&gunnyRows).Error
	if err != nil {
		h.log.Error("failed to fetch gunny logs", "warehouse_id", warehouseID, "cam_id", camID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error: " + err.Error()})
		return
	}

	report := services.ResolveVehicleGunny(plates, gunnyRows)
	c.JSON(http.StatusOK, gin.H{
		"status":           "success",
		"warehouse_id":     warehouseID,
		"cam_id":           camID,
		"date":             date,
		"total_vehicles":   report.TotalVehicles,
		"grand_total_bags": report.GrandTotalBags,
		"vehicles":         report.Vehicles,
	})
}
