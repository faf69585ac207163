package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"warehouse-surveillance/be/models"
)

// EmployeeLogEntry is one employee-log row shaped for the API response.
type EmployeeLogEntry struct {
	LogID       int64   `json:"log_id"`
	WarehouseID string  `json:"warehouse_id"`
	EmpID       *string `json:"emp_id"`
	EmpName     *string `json:"emp_name"`
	EmpNumber   *string `json:"emp_number"`
	RoleName    *string `json:"role_name"`
	Date        *string `json:"date"`
	Time        string  `json:"time"`
	CamID       string  `json:"cam_id"`
	CropBlobURL *string `json:"crop_blob_url"`
	ChunkID     *string `json:"chunk_id"`
	EmpAccess   *string `json:"emp_access"`
}

// HourlyRange is one non-empty hour bucket of employee logs.
type HourlyRange struct {
	HourRange       string             `json:"hour_range"`
	StartTime       string             `json:"start_time"`
	EndTime         string             `json:"end_time"`
	TotalLogs       int                `json:"total_logs"`
	UniqueEmployees int                `json:"unique_employees"`
	Logs            []EmployeeLogEntry `json:"logs"`
}

// BucketEmployeeLogsByHour partitions time-ordered employee log rows by
// hour of day and emits the non-empty buckets in ascending hour order.
// Rows with a NULL timestamp never reach a bucket; unique_employees per
// bucket counts distinct non-NULL emp ids.
func BucketEmployeeLogsByHour(rows []models.EmployeeLogRow) []HourlyRange {
	hourly := make(map[int][]EmployeeLogEntry)

	for _, row := range rows {
		if row.Time == nil {
			continue
		}
		hour := row.Time.Hour()
		entry := EmployeeLogEntry{
			LogID:       row.ID,
			WarehouseID: row.WarehouseID,
			EmpID:       row.EmpID,
			EmpName:     row.EmpName,
			EmpNumber:   row.EmpNumber,
			RoleName:    row.RoleName,
			Date:        models.FormatDate(row.Date),
			Time:        *models.FormatDateTime(row.Time),
			CamID:       row.CamID,
			CropBlobURL: row.CropBlobURL,
			ChunkID:     row.ChunkID,
			EmpAccess:   row.EmpAccess,
		}
		hourly[hour] = append(hourly[hour], entry)
	}

	hours := make([]int, 0, len(hourly))
	for hour := range hourly {
		hours = append(hours, hour)
	}
	sort.Ints(hours)

	ranges := make([]HourlyRange, 0, len(hours))
	for _, hour := range hours {
		logs := hourly[hour]
		unique := make(map[string]struct{})
		for _, entry := range logs {
			if entry.EmpID != nil {
				unique[*entry.EmpID] = struct{}{}
			}
		}
		ranges = append(ranges, HourlyRange{
			HourRange:       fmt.Sprintf("%02d:00 - %02d:59", hour, hour),
			StartTime:       fmt.Sprintf("%02d:00", hour),
			EndTime:         fmt.Sprintf("%02d:59", hour),
			TotalLogs:       len(logs),
			UniqueEmployees: len(unique),
			Logs:            logs,
		})
	}
	return ranges
}

// CountUniqueEmployees counts distinct non-NULL emp ids across the whole
// result set, independent of hour bucketing.
func CountUniqueEmployees(rows []models.EmployeeLogRow) int {
	unique := make(map[string]struct{})
	for _, row := range rows {
		if row.EmpID != nil {
			unique[*row.EmpID] = struct{}{}
		}
	}
	return len(unique)
}

// GunnyLogEntry is one gunny-bag log row shaped for the API response.
// A NULL count is reported as 0.
type GunnyLogEntry struct {
	LogID       int64   `json:"log_id"`
	WarehouseID string  `json:"warehouse_id"`
	CamID       string  `json:"cam_id"`
	Count       int64   `json:"count"`
	Date        *string `json:"date"`
	ChunkID     *string `json:"chunk_id"`
	CreatedAt   *string `json:"created_at"`
	Action      *string `json:"action"`
}

// ActionTotals accumulates entries and bag counts for one action label.
type ActionTotals struct {
	Count     int   `json:"count"`
	TotalBags int64 `json:"total_bags"`
}

// ActionSummary groups gunny events by their raw action string. The
// upstream detectors don't guarantee canonical casing or spelling, so
// keys stay untouched and marshal in first-seen order.
type ActionSummary struct {
	order  []string
	totals map[string]*ActionTotals
}

func NewActionSummary() *ActionSummary {
	return &ActionSummary{totals: make(map[string]*ActionTotals)}
}

func (s *ActionSummary) Add(action string, bags int64) {
	totals, ok := s.totals[action]
	if !ok {
		totals = &ActionTotals{}
		s.totals[action] = totals
		s.order = append(s.order, action)
	}
	totals.Count++
	totals.TotalBags += bags
}

func (s *ActionSummary) Len() int {
	return len(s.order)
}

func (s *ActionSummary) Actions() []string {
	return s.order
}

func (s *ActionSummary) Get(action string) (ActionTotals, bool) {
	totals, ok := s.totals[action]
	if !ok {
		return ActionTotals{}, false
	}
	return *totals, true
}

func (s *ActionSummary) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, action := range s.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(action)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(s.totals[action])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// GunnyLogSummary is the aggregated gunny-bag view for one scope.
type GunnyLogSummary struct {
	TotalLogs     int
	TotalBags     int64
	ActionSummary *ActionSummary
	Logs          []GunnyLogEntry
}

// SummarizeGunnyLogs folds time-ordered gunny rows into entries, a bag
// grand total and a per-action summary in one pass. Rows with a NULL
// action add to the totals but not to the summary.
func SummarizeGunnyLogs(rows []models.GunnyLog) GunnyLogSummary {
	summary := GunnyLogSummary{
		ActionSummary: NewActionSummary(),
		Logs:          make([]GunnyLogEntry, 0, len(rows)),
	}

	for _, row := range rows {
		var bags int64
		if row.Count != nil {
			bags = *row.Count
		}

		summary.Logs = append(summary.Logs, GunnyLogEntry{
			LogID:       row.ID,
			WarehouseID: row.WarehouseID,
			CamID:       row.CamID,
			Count:       bags,
			Date:        models.FormatDate(row.Date),
			ChunkID:     row.ChunkID,
			CreatedAt:   models.FormatClock(row.CreatedAt),
			Action:      row.Action,
		})

		summary.TotalLogs++
		summary.TotalBags += bags
		if row.Action != nil {
			summary.ActionSummary.Add(*row.Action, bags)
		}
	}
	return summary
}

// VehicleLogEntry is one vehicle log row shaped for the API response.
type VehicleLogEntry struct {
	LogID         int64   `json:"log_id"`
	WarehouseID   string  `json:"warehouse_id"`
	CamID         string  `json:"cam_id"`
	Date          *string `json:"date"`
	ChunkID       *string `json:"chunk_id"`
	NumberPlate   *string `json:"number_plate"`
	VehicleAccess *string `json:"vehicle_access"`
	CreatedAt     *string `json:"created_at"`
}

// AccessSummary counts vehicle sightings per raw access label, keys in
// first-seen order like ActionSummary.
type AccessSummary struct {
	order  []string
	counts map[string]int
}

func NewAccessSummary() *AccessSummary {
	return &AccessSummary{counts: make(map[string]int)}
}

func (s *AccessSummary) Add(access string) {
	if _, ok := s.counts[access]; !ok {
		s.order = append(s.order, access)
	}
	s.counts[access]++
}

func (s *AccessSummary) Len() int {
	return len(s.order)
}

func (s *AccessSummary) Get(access string) int {
	return s.counts[access]
}

func (s *AccessSummary) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, access := range s.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(access)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		fmt.Fprintf(&buf, "%d", s.counts[access])
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// VehicleLogSummary is the aggregated vehicle view for one scope.
type VehicleLogSummary struct {
	TotalLogs      int
	UniqueVehicles int
	AccessSummary  *AccessSummary
	Logs           []VehicleLogEntry
}

// SummarizeVehicleLogs folds time-ordered vehicle rows into entries, a
// distinct-plate count (NULL plates excluded) and a per-access-label
// summary in one pass.
func SummarizeVehicleLogs(rows []models.VehicleLog) VehicleLogSummary {
	summary := VehicleLogSummary{
		AccessSummary: NewAccessSummary(),
		Logs:          make([]VehicleLogEntry, 0, len(rows)),
	}
	plates := make(map[string]struct{})

	for _, row := range rows {
		summary.Logs = append(summary.Logs, VehicleLogEntry{
			LogID:         row.ID,
			WarehouseID:   row.WarehouseID,
			CamID:         row.CamID,
			Date:          models.FormatDate(row.Date),
			ChunkID:       row.ChunkID,
			NumberPlate:   row.NumberPlate,
			VehicleAccess: row.VehicleAccess,
			CreatedAt:     models.FormatClock(row.CreatedAt),
		})

		summary.TotalLogs++
		if row.NumberPlate != nil {
			plates[*row.NumberPlate] = struct{}{}
		}
		if row.VehicleAccess != nil {
			summary.AccessSummary.Add(*row.VehicleAccess)
		}
	}
	summary.UniqueVehicles = len(plates)
	return summary
}
