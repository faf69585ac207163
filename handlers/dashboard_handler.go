package handlers

import (
	"net/http"

	"warehouse-surveillance/be/logger"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type DashboardHandler struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDashboardHandler(db *gorm.DB, log *logger.Logger) *DashboardHandler {
	return &DashboardHandler{db: db, log: log}
}

const bagTotalsQuery = `
	SELECT
		COALESCE(SUM(CASE WHEN LOWER(action) = 'loading' THEN count ELSE 0 END), 0) AS loaded_bags,
		COALESCE(SUM(CASE WHEN LOWER(action) = 'unloading' THEN count ELSE 0 END), 0) AS unloaded_bags
	FROM wh_gunny_logs
	WHERE warehouse_id = ? AND date = ?`

// Both british and american spellings show up in the feed; count both.
const vehicleTotalsQuery = `
	SELECT
		COUNT(DISTINCT CASE
			WHEN LOWER(vehicle_access) IN ('authorized', 'authorised')
			THEN number_plate
		END) AS authorised_vehicles,
		COUNT(DISTINCT CASE
			WHEN LOWER(vehicle_access) IN ('unauthorized', 'unauthorised')
			THEN number_plate
		END) AS unauthorised_vehicles
	FROM wh_vehicle_logs
	WHERE warehouse_id = ? AND date = ?`

const employeeTotalsQuery = `
	SELECT
		COUNT(*) AS total_employee_logs,
		COUNT(DISTINCT emp_id) FILTER (WHERE emp_id IS NOT NULL) AS total_unique_authorised_employees,
		COUNT(*) FILTER (WHERE emp_id IS NULL) AS total_unauthorised_entries
	FROM wh_emp_logs
	WHERE warehouse_id = ? AND date = ?`

type bagTotals struct {
	LoadedBags   int64
	UnloadedBags int64
}

type vehicleTotals struct {
	AuthorisedVehicles   int64
	UnauthorisedVehicles int64
}

type employeeTotals struct {
	TotalEmployeeLogs              int64
	TotalUniqueAuthorisedEmployees int64
	TotalUnauthorisedEntries       int64
}

// GetDashboard returns the warehouse-wide aggregates for one day:
// loaded/unloaded bag totals, authorised/unauthorised distinct
// vehicles and the employee log summary. Aggregation stays in SQL, all
// cameras in scope.
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	warehouseID := c.Param("warehouse_id")
	date, ok := requireDate(c)
	if !ok {
		return
	}

	var bags bagTotals
	if err := h.db.Raw(bagTotalsQuery, warehouseID, date).Scan(&bags).Error; err != nil {
		h.log.Error("failed to fetch bag totals", "warehouse_id", warehouseID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error: " + err.Error()})
		return
	}

	var vehicles vehicleTotals
	if err := h.db.Raw(vehicleTotalsQuery, warehouseID, date).Scan(&vehicles).Error; err != nil {
		h.log.Error("failed to fetch vehicle totals", "warehouse_id", warehouseID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error: " + err.Error()})
		return
	}

	var employees employeeTotals
	if err := h.db.Raw(employeeTotalsQuery, warehouseID, date).Scan(&employees).Error; err != nil {
		h.log.Error("failed to fetch employee totals", "warehouse_id", warehouseID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":                            "success",
		"warehouse_id":                      warehouseID,
		"date":                              date,
		"total_loaded_bags":                 bags.LoadedBags,
		"total_unloaded_bags":               bags.UnloadedBags,
		"total_authorised_vehicles":         vehicles.AuthorisedVehicles,
		"total_unauthorised_vehicles":       vehicles.UnauthorisedVehicles,
		"total_employee_logs":               employees.TotalEmployeeLogs,
		"total_unique_authorised_employees": employees.TotalUniqueAuthorisedEmployees,
		"total_unauthorised_entries":        employees.TotalUnauthorisedEntries,
	})
}
