package cache

import (
	"fmt"
	"time"
)

const (
	PlanetKeyPrefix  = "planet:%d"
	VehicleKeyPrefix = "vehicle:%d"
)

const (
	PlanetTTL  = 30 * time.Minute
	VehicleTTL = 30 * time.Minute
)

func PlanetKey(planetID uint) string {
	return fmt.Sprintf(PlanetKeyPrefix, planetID)
}

func VehicleKey(vehicleID uint) string {
	return fmt.Sprintf(VehicleKeyPrefix, vehicleID)
}
