package handlers

import (
	"fmt"
	"net/http"

	"warehouse-surveillance/be/logger"
	"warehouse-surveillance/be/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type WarehouseHandler struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewWarehouseHandler(db *gorm.DB, log *logger.Logger) *WarehouseHandler {
	return &WarehouseHandler{db: db, log: log}
}

// Roster views only surface the three managing roles, supervisors
// first.
const rosterQuery = `
	SELECT e.emp_id, e.warehouse_id, e.emp_name, e.emp_number, e.role_id, e.emp_facecrop, r.role_name
	FROM wh_emp_data e
	LEFT JOIN wh_emp_role r ON e.role_id = r.role_id
	WHERE e.warehouse_id = ? AND e.role_id IN (?, ?, ?)
	ORDER BY
		CASE e.role_id
			WHEN 'ROLE_SUP' THEN 1
			WHEN 'ROLE_INC' THEN 2
			WHEN 'ROLE_DEO' THEN 3
			ELSE 4
		END,
		e.emp_name`

const employeeQuery = `
	SELECT e.emp_id, e.warehouse_id, e.emp_name, e.emp_number, e.role_id, e.emp_facecrop, r.role_name
	FROM wh_emp_data e
	LEFT JOIN wh_emp_role r ON e.role_id = r.role_id
	WHERE e.warehouse_id = ?
	ORDER BY e.role_id, e.emp_name`

const vehicleQuery = `
	SELECT v.id, v.warehouse_id, v.number_plate, v.bags_capacity, v.vehicle_access,
	       v.driver_id, v.created_at, d.driver_name, d.driver_phone, d.driver_crop
	FROM wh_vehicles v
	LEFT JOIN wh_drivers d ON v.driver_id = d.driver_id
	WHERE v.warehouse_id = ?
	ORDER BY v.id`

type warehouseWithRoster struct {
	models.Warehouse
	Employees      []models.EmployeeRow `json:"employees"`
	TotalEmployees int                  `json:"total_employees"`
}

// GetWarehouses lists every warehouse with its managing-role roster.
func (h *WarehouseHandler) GetWarehouses(c *gin.Context) {
	var warehouses []models.Warehouse
	if err := h.db.Order("warehouse_id").Find(&warehouses).Error; err != nil {
		h.log.Error("failed to fetch warehouses", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error: " + err.Error()})
		return
	}

	list := make([]warehouseWithRoster, 0, len(warehouses))
	for _, warehouse := range warehouses {
		employees := make([]models.EmployeeRow, 0)
		err := h.db.Raw(rosterQuery, warehouse.WarehouseID,
			models.RoleSupervisor, models.RoleInCharge, models.RoleDataEntryOperator,
		).Scan(&employees).Error
		if err != nil {
			h.log.Error("failed to fetch warehouse roster", "warehouse_id", warehouse.WarehouseID, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error: " + err.Error()})
			return
		}
		list = append(list, warehouseWithRoster{
			Warehouse:      warehouse,
			Employees:      employees,
			TotalEmployees: len(employees),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"status":           "success",
		"total_warehouses": len(list),
		"warehouses":       list,
	})
}

type vehicleResponse struct {
	models.VehicleRow
	CreatedAt *string `json:"created_at"`
}

// GetWarehouse returns one warehouse with all of its cameras, vehicles
// (with driver details) and employees.
func (h *WarehouseHandler) GetWarehouse(c *gin.Context) {
	warehouseID := c.Param("warehouse_id")

	var warehouse models.Warehouse
	if err := h.db.Where("warehouse_id = ?", warehouseID).First(&warehouse).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Warehouse not found: %s", warehouseID)})
			return
		}
		h.log.Error("failed to fetch warehouse", "warehouse_id", warehouseID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error: " + err.Error()})
		return
	}

	var cameras []models.Camera
	if err := h.db.Where("warehouse_id = ?", warehouseID).Order("cam_id").Find(&cameras).Error; err != nil {
		h.log.Error("failed to fetch cameras", "warehouse_id", warehouseID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error: " + err.Error()})
		return
	}

	var vehicleRows []models.VehicleRow
	if err := h.db.Raw(vehicleQuery, warehouseID).Scan(&vehicleRows).Error; err != nil {
		h.log.Error("failed to fetch vehicles", "warehouse_id", warehouseID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error: " + err.Error()})
		return
	}
	vehicles := make([]vehicleResponse, 0, len(vehicleRows))
	for _, row := range vehicleRows {
		vehicles = append(vehicles, vehicleResponse{
			VehicleRow: row,
			CreatedAt:  models.FormatDateTime(row.CreatedAt),
		})
	}

	employees := make([]models.EmployeeRow, 0)
	if err := h.db.Raw(employeeQuery, warehouseID).Scan(&employees).Error; err != nil {
		h.log.Error("failed to fetch employees", "warehouse_id", warehouseID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "success",
		"warehouse": warehouse,
		"cameras": gin.H{
			"total_cameras": len(cameras),
			"data":          cameras,
		},
		"vehicles": gin.H{
			"total_vehicles": len(vehicles),
			"data":           vehicles,
		},
		"employees": gin.H{
			"total_employees": len(employees),
			"data":            employees,
		},
	})
}
