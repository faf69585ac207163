package handlers

import (
	"net/http"

	"warehouse-surveillance/be/logger"
	"warehouse-surveillance/be/models"
	"warehouse-surveillance/be/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type LogHandler struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLogHandler(db *gorm.DB, log *logger.Logger) *LogHandler {
	return &LogHandler{db: db, log: log}
}

const employeeLogQuery = `
	SELECT el.id, el.warehouse_id, el.emp_id, e.emp_name, e.emp_number, r.role_name,
	       el.date, el.time, el.cam_id, el.crop_blob_url, el.chunk_id, el.emp_access
	FROM wh_emp_logs el
	LEFT JOIN wh_emp_data e ON el.emp_id = e.emp_id
	LEFT JOIN wh_emp_role r ON e.role_id = r.role_id
	WHERE el.warehouse_id = ? AND el.cam_id = ? AND el.date = ?
	ORDER BY el.time`

// GetEmployeeLogs returns the day's employee sightings for one camera,
// bucketed into non-empty hour ranges.
func (h *LogHandler) GetEmployeeLogs(c *gin.Context) {
	warehouseID := c.Param("warehouse_id")
	camID := c.Param("cam_id")
	date, ok := requireDate(c)
	if !ok {
		return
	}

	var rows []models.EmployeeLogRow
	if err := h.db.Raw(employeeLogQuery, warehouseID, camID, date).Scan(&rows).Error; err != nil {
		h.log.Error("failed to fetch employee logs", "warehouse_id", warehouseID, "cam_id", camID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error: " + err.Error()})
		return
	}

	if len(rows) == 0 {
		c.JSON(http.StatusOK, gin.H{
			"status":        "success",
			"message":       "No employee logs found for the given criteria",
			"warehouse_id":  warehouseID,
			"cam_id":        camID,
			"date":          date,
			"total_logs":    0,
			"hourly_ranges": []services.HourlyRange{},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":           "success",
		"warehouse_id":     warehouseID,
		"cam_id":           camID,
		"date":             date,
		"total_logs":       len(rows),
		"unique_employees": services.CountUniqueEmployees(rows),
		"hourly_ranges":    services.BucketEmployeeLogsByHour(rows),
	})
}

// GetGunnyBagLogs returns the day's gunny-bag events for one camera
// with a per-action summary.
func (h *LogHandler) GetGunnyBagLogs(c *gin.Context) {
	warehouseID := c.Param("warehouse_id")
	camID := c.Param("cam_id")
	date, ok := requireDate(c)
	if !ok {
		return
	}

	var rows []models.GunnyLog
	err := h.db.Where("warehouse_id = ? AND cam_id = ? AND date = ?", warehouseID, camID, date).
		Order("created_at").Find(&rows).Error
	if err != nil {
		h.log.Error("failed to fetch gunny bag logs", "warehouse_id", warehouseID, "cam_id", camID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error: " + err.Error()})
		return
	}

	if len(rows) == 0 {
		c.JSON(http.StatusOK, gin.H{
			"status":       "success",
			"message":      "No gunny bag logs found for the given criteria",
			"warehouse_id": warehouseID,
			"cam_id":       camID,
			"date":         date,
			"total_logs":   0,
			"total_bags":   0,
			"logs":         []services.GunnyLogEntry{},
		})
		return
	}

	summary := services.SummarizeGunnyLogs(rows)
	c.JSON(http.StatusOK, gin.H{
		"status":         "success",
		"warehouse_id":   warehouseID,
		"cam_id":         camID,
		"date":           date,
		"total_logs":     summary.TotalLogs,
		"total_bags":     summary.TotalBags,
		"action_summary": summary.ActionSummary,
		"logs":           summary.Logs,
	})
}

// GetVehicleLogs returns the day's vehicle sightings for one camera
// with distinct-plate and access-label summaries.
func (h *LogHandler) GetVehicleLogs(c *gin.Context) {
	warehouseID := c.Param("warehouse_id")
	camID := c.Param("cam_id")
	date, ok := requireDate(c)
	if !ok {
		return
	}

	var rows []models.VehicleLog
	err := h.db.Where("warehouse_id = ? AND cam_id = ? AND date = ?", warehouseID, camID, date).
		Order("created_at").Find(&rows).Error
	if err != nil {
		h.log.Error("failed to fetch vehicle logs", "warehouse_id", warehouseID, "cam_id", camID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error: " + err.Error()})
		return
	}

	if len(rows) == 0 {
		c.JSON(http.StatusOK, gin.H{
			"status":       "success",
			"message":      "No vehicle logs found for the given criteria",
			"warehouse_id": warehouseID,
			"cam_id":       camID,
			"date":         date,
			"total_logs":   0,
			"logs":         []services.VehicleLogEntry{},
		})
		return
	}

	summary := services.SummarizeVehicleLogs(rows)
	c.JSON(http.StatusOK, gin.H{
		"status":          "success",
		"warehouse_id":    warehouseID,
		"cam_id":          camID,
		"date":            date,
		"total_logs":      summary.TotalLogs,
		"unique_vehicles": summary.UniqueVehicles,
		"access_summary":  summary.AccessSummary,
		"logs":            summary.Logs,
	})
}
