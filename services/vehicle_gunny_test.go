package services

import (
	"testing"
	"time"

	"warehouse-surveillance/be/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func vehicleSighting(plate, chunkID *string) models.VehicleLog {
	return models.VehicleLog{
		WarehouseID: "WH001",
		CamID:       "1",
		NumberPlate: plate,
		ChunkID:     chunkID,
	}
}

func gunnyEvent(chunkID string, action string, count int64, at time.Time) models.GunnyLog {
	return models.GunnyLog{
		WarehouseID: "WH001",
		CamID:       "1",
		ChunkID:     &chunkID,
		Action:      &action,
		Count:       &count,
		CreatedAt:   &at,
	}
}

func TestCollectPlateChunks(t *testing.T) {
	rows := []models.VehicleLog{
		vehicleSighting(strPtr("TN22CD5678"), strPtr("chunk-2")),
		vehicleSighting(strPtr("KA01AB1234"), strPtr("chunk-1")),
		vehicleSighting(strPtr("KA01AB1234"), strPtr("chunk-3")),
		vehicleSighting(strPtr("KA01AB1234"), strPtr("chunk-1")), // duplicate sighting
		vehicleSighting(nil, strPtr("chunk-4")),
		vehicleSighting(strPtr("MH12EF9999"), nil),
	}

	plates := CollectPlateChunks(rows)

	require.Len(t, plates, 2)
	assert.Equal(t, "KA01AB1234", plates[0].NumberPlate)
	assert.Equal(t, []string{"chunk-1", "chunk-3"}, plates[0].ChunkIDs)
	assert.Equal(t, "TN22CD5678", plates[1].NumberPlate)
	assert.Equal(t, []string{"chunk-2"}, plates[1].ChunkIDs)
}

func TestResolveVehicleGunny(t *testing.T) {
	plates := []PlateChunks{
		{NumberPlate: "KA01AB1234", ChunkIDs: []string{"c1", "c2"}},
		{NumberPlate: "TN22CD5678", ChunkIDs: []string{"c9"}},
	}
	day := time.Date(2025, 9, 22, 0, 0, 0, 0, time.UTC)
	gunny := []models.GunnyLog{
		gunnyEvent("c1", "loading", 5, day.Add(9*time.Hour)),
		gunnyEvent("c2", "unloading", 3, day.Add(11*time.Hour)),
		gunnyEvent("c7", "loading", 99, day.Add(12*time.Hour)), // not in any set
	}

	report := ResolveVehicleGunny(plates, gunny)

	assert.Equal(t, 2, report.TotalVehicles)
	assert.Equal(t, int64(8), report.GrandTotalBags)
	require.Len(t, report.Vehicles, 2)

	first := report.Vehicles[0]
	assert.Equal(t, "KA01AB1234", first.NumberPlate)
	assert.Equal(t, int64(8), first.TotalBagsAllActions)
	require.Len(t, first.ActionBreakdown, 2)
	// Breakdown is ordered by action label.
	assert.Equal(t, "loading", *first.ActionBreakdown[0].Action)
	assert.Equal(t, int64(5), first.ActionBreakdown[0].TotalCount)
	assert.Equal(t, 1, first.ActionBreakdown[0].NumberOfEntries)
	assert.Equal(t, "09:00:00", *first.ActionBreakdown[0].FirstEntryTime)
	assert.Equal(t, "unloading", *first.ActionBreakdown[1].Action)

	// A plate whose chunks saw no bag activity stays in the report.
	second := report.Vehicles[1]
	assert.Equal(t, "TN22CD5678", second.NumberPlate)
	assert.Zero(t, second.TotalBagsAllActions)
	assert.Empty(t, second.ActionBreakdown)
}

func TestResolveVehicleGunnyFirstAndLastEntryTimes(t *testing.T) {
	plates := []PlateChunks{{NumberPlate: "KA01AB1234", ChunkIDs: []string{"c1"}}}
	day := time.Date(2025, 9, 22, 0, 0, 0, 0, time.UTC)
	gunny := []models.GunnyLog{
		gunnyEvent("c1", "loading", 2, day.Add(10*time.Hour+30*time.Minute)),
		gunnyEvent("c1", "loading", 4, day.Add(8*time.Hour+15*time.Minute)),
		gunnyEvent("c1", "loading", 1, day.Add(16*time.Hour+45*time.Minute)),
	}

	report := ResolveVehicleGunny(plates, gunny)

	require.Len(t, report.Vehicles, 1)
	breakdown := report.Vehicles[0].ActionBreakdown
	require.Len(t, breakdown, 1)
	assert.Equal(t, int64(7), breakdown[0].TotalCount)
	assert.Equal(t, 3, breakdown[0].NumberOfEntries)
	assert.Equal(t, "08:15:00", *breakdown[0].FirstEntryTime)
	assert.Equal(t, "16:45:00", *breakdown[0].LastEntryTime)
}

func TestResolveVehicleGunnySharedChunkCountedForBothPlates(t *testing.T) {
	// Two plates recorded against the same chunk: the chunk's events
	// count toward both vehicles. Known attribution ambiguity in the
	// source data, pinned here so any disambiguation rule shows up as
	// a deliberate change.
	plates := []PlateChunks{
		{NumberPlate: "KA01AB1234", ChunkIDs: []string{"c1"}},
		{NumberPlate: "TN22CD5678", ChunkIDs: []string{"c1"}},
	}
	gunny := []models.GunnyLog{
		gunnyEvent("c1", "loading", 10, time.Date(2025, 9, 22, 9, 0, 0, 0, time.UTC)),
	}

	report := ResolveVehicleGunny(plates, gunny)

	assert.Equal(t, int64(10), report.Vehicles[0].TotalBagsAllActions)
	assert.Equal(t, int64(10), report.Vehicles[1].TotalBagsAllActions)
	assert.Equal(t, int64(20), report.GrandTotalBags)
}

func TestResolveVehicleGunnyNilCountAndAction(t *testing.T) {
	plates := []PlateChunks{{NumberPlate: "KA01AB1234", ChunkIDs: []string{"c1"}}}
	chunkID := "c1"
	gunny := []models.GunnyLog{
		{WarehouseID: "WH001", CamID: "1", ChunkID: &chunkID}, // nil action, count, time
	}

	report := ResolveVehicleGunny(plates, gunny)

	require.Len(t, report.Vehicles, 1)
	breakdown := report.Vehicles[0].ActionBreakdown
	require.Len(t, breakdown, 1)
	assert.Nil(t, breakdown[0].Action)
	assert.Zero(t, breakdown[0].TotalCount)
	assert.Equal(t, 1, breakdown[0].NumberOfEntries)
	assert.Nil(t, breakdown[0].FirstEntryTime)
}

func TestResolveVehicleGunnyEmptyScope(t *testing.T) {
	report := ResolveVehicleGunny(nil, nil)

	assert.Zero(t, report.TotalVehicles)
	assert.Zero(t, report.GrandTotalBags)
	assert.Empty(t, report.Vehicles)
}
