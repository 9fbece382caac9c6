package domain

// VehicleState represents the reachability state of a vehicle.
type VehicleState string

const (
	VehicleStateOnline  VehicleState = "online"
	VehicleStateOffline VehicleState = "offline"
	VehicleStateWaking  VehicleState = "waking"
)

// ValidVehicleState reports whether s is a known vehicle state.
func ValidVehicleState(s VehicleState) bool {
	switch s {
	case VehicleStateOnline, VehicleStateOffline, VehicleStateWaking:
		return true
	}
	return false
}

// Vehicle represents a telemetry-capable vehicle registered with the system.
type Vehicle struct {
	ID          string
	Name        string
	Model       string
	VIN         string
	DisplayName string
	State       VehicleState
}
