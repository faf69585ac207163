package services

import (
	"sort"
	"time"

	"warehouse-surveillance/be/models"
)

// PlateChunks is the set of distinct chunk ids a number plate was seen
// in for one (warehouse, camera, date) scope.
type PlateChunks struct {
	NumberPlate string
	ChunkIDs    []string
}

// CollectPlateChunks groups vehicle log rows by plate and collects each
// plate's distinct chunk ids. Rows with a NULL plate or NULL chunk id
// are skipped. Plates come back in lexicographic order, chunk ids
// sorted ascending.
func CollectPlateChunks(rows []models.VehicleLog) []PlateChunks {
	chunksByPlate := make(map[string]map[string]struct{})
	for _, row := range rows {
		if row.NumberPlate == nil || row.ChunkID == nil {
			continue
		}
		set, ok := chunksByPlate[*row.NumberPlate]
		if !ok {
			set = make(map[string]struct{})
			chunksByPlate[*row.NumberPlate] = set
		}
		set[*row.ChunkID] = struct{}{}
	}

	plates := make([]string, 0, len(chunksByPlate))
	for plate := range chunksByPlate {
		plates = append(plates, plate)
	}
	sort.Strings(plates)

	result := make([]PlateChunks, 0, len(plates))
	for _, plate := range plates {
		chunkIDs := make([]string, 0, len(chunksByPlate[plate]))
		for chunkID := range chunksByPlate[plate] {
			chunkIDs = append(chunkIDs, chunkID)
		}
		sort.Strings(chunkIDs)
		result = append(result, PlateChunks{NumberPlate: plate, ChunkIDs: chunkIDs})
	}
	return result
}

// VehicleGunnyAction is the per-action breakdown of gunny events inside
// one vehicle's chunk set.
type VehicleGunnyAction struct {
	Action          *string `json:"action"`
	TotalCount      int64   `json:"total_count"`
	NumberOfEntries int     `json:"number_of_entries"`
	FirstEntryTime  *string `json:"first_entry_time"`
	LastEntryTime   *string `json:"last_entry_time"`
}

// VehicleGunnySummary is one vehicle's bag activity for the scope.
type VehicleGunnySummary struct {
	NumberPlate         string               `json:"number_plate"`
	ChunkIDs            []string             `json:"chunk_ids"`
	TotalBagsAllActions int64                `json:"total_bags_all_actions"`
	ActionBreakdown     []VehicleGunnyAction `json:"action_breakdown"`
}

// VehicleGunnyReport is the full cross-referenced analytics view.
type VehicleGunnyReport struct {
	TotalVehicles  int
	GrandTotalBags int64
	Vehicles       []VehicleGunnySummary
}

type actionAccumulator struct {
	total   int64
	entries int
	first   *time.Time
	last    *time.Time
}

// ResolveVehicleGunny attributes the scope's gunny events to vehicles
// through chunk-set membership: a gunny row counts toward a plate when
// its chunk id is in that plate's set. A vehicle with no matching rows
// stays in the report with an empty breakdown. If two plates share a
// chunk, that chunk's events count toward both totals; the source data
// carries no tighter attribution key, so the overlap is reported rather
// than resolved here.
func ResolveVehicleGunny(plates []PlateChunks, gunnyRows []models.GunnyLog) VehicleGunnyReport {
	report := VehicleGunnyReport{
		TotalVehicles: len(plates),
		Vehicles:      make([]VehicleGunnySummary, 0, len(plates)),
	}

	for _, plate := range plates {
		chunkSet := make(map[string]struct{}, len(plate.ChunkIDs))
		for _, chunkID := range plate.ChunkIDs {
			chunkSet[chunkID] = struct{}{}
		}

		accumulators := make(map[string]*actionAccumulator)
		var nilAction *actionAccumulator

		for _, row := range gunnyRows {
			if row.ChunkID == nil {
				continue
			}
			if _, ok := chunkSet[*row.ChunkID]; !ok {
				continue
			}

			var acc *actionAccumulator
			if row.Action == nil {
				if nilAction == nil {
					nilAction = &actionAccumulator{}
				}
				acc = nilAction
			} else {
				var ok bool
				acc, ok = accumulators[*row.Action]
				if !ok {
					acc = &actionAccumulator{}
					accumulators[*row.Action] = acc
				}
			}

			if row.Count != nil {
				acc.total += *row.Count
			}
			acc.entries++
			if row.CreatedAt != nil {
				if acc.first == nil || row.CreatedAt.Before(*acc.first) {
					acc.first = row.CreatedAt
				}
				if acc.last == nil || row.CreatedAt.After(*acc.last) {
					acc.last = row.CreatedAt
				}
			}
		}

		actions := make([]string, 0, len(accumulators))
		for action := range accumulators {
			actions = append(actions, action)
		}
		sort.Strings(actions)

		summary := VehicleGunnySummary{
			NumberPlate:     plate.NumberPlate,
			ChunkIDs:        plate.ChunkIDs,
			ActionBreakdown: make([]VehicleGunnyAction, 0, len(actions)+1),
		}
		for _, action := range actions {
			acc := accumulators[action]
			label := action
			summary.ActionBreakdown = append(summary.ActionBreakdown, VehicleGunnyAction{
				Action:          &label,
				TotalCount:      acc.total,
				NumberOfEntries: acc.entries,
				FirstEntryTime:  models.FormatClock(acc.first),
				LastEntryTime:   models.FormatClock(acc.last),
			})
			summary.TotalBagsAllActions += acc.total
		}
		if nilAction != nil {
			summary.ActionBreakdown = append(summary.ActionBreakdown, VehicleGunnyAction{
				Action:          nil,
				TotalCount:      nilAction.total,
				NumberOfEntries: nilAction.entries,
				FirstEntryTime:  models.FormatClock(nilAction.first),
				LastEntryTime:   models.FormatClock(nilAction.last),
			})
			summary.TotalBagsAllActions += nilAction.total
		}

		report.Vehicles = append(report.Vehicles, summary)
		report.GrandTotalBags += summary.TotalBagsAllActions
	}
	return report
}
