package api

import "time"

// Vehicle classes the detection backend reports.
const (
	VehicleCar        = "car"
	VehicleMotorcycle = "motorcycle"
)

// Object lifecycle states as they appear on the wire.
const (
	StatusActive  = "Active"
	StatusExpired = "Expired"
)

// Series is one chart-ready slice of analytics: parallel label and
// value arrays, oldest bucket first.
type Series struct {
	Labels []string  `json:"labels"`
	Data   []float64 `json:"data"`
}

// ClassStat summarizes one vehicle class among the active objects.
type ClassStat struct {
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// StatsResponse is the body of GET /vehicle-stats.
type StatsResponse struct {
	IsRunning     bool                 `json:"is_running"`
	CurrentCount  int64                `json:"current_count"`
	ActiveObjects int                  `json:"active_objects"`
	Analytics     map[Period]Series    `json:"analytics"`
	StatsByClass  map[string]ClassStat `json:"stats_by_class"`
	LastReset     time.Time            `json:"last_reset"`
}

// DetectedObject is one tracked vehicle as reported by GET /detected-objects.
type DetectedObject struct {
	ID         int64   `json:"id"`
	Type       string  `json:"vehicle_type"`
	Confidence float64 `json:"confidence_score"`
	DetectedAt string  `json:"detected_at"`
	Status     string  `json:"status"`
	Updates    int     `json:"update_count"`
	Duration   string  `json:"duration"`
}

// ObjectsResponse is the body of GET /detected-objects. Objects are
// ordered newest first.
type ObjectsResponse struct {
	ActiveObjects int              `json:"active_objects"`
	TotalObjects  int              `json:"total_objects"`
	Objects       []DetectedObject `json:"objects"`
}

// CommandResponse is the shared shape of the detection control
// endpoints. Success false is a valid outcome, not a transport error.
type CommandResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status           string    `json:"status"`
	DetectionRunning bool      `json:"detection_running"`
	Timestamp        time.Time `json:"timestamp"`
	ClassesLoaded    int       `json:"classes_loaded"`
	AvailableClasses []string  `json:"available_classes"`
	TotalDetected    int64     `json:"total_detected"`
	ActiveObjects    int       `json:"active_objects"`
	TrackedObjects   int       `json:"total_tracked_objects"`
	RunID            string    `json:"run_id,omitempty"`
}

// Healthy reports whether the probe came back with the expected status.
func (h HealthResponse) Healthy() bool {
	return h.Status == "healthy"
}

// CountResponse is the body of GET /vehicle-detection.
type CountResponse struct {
	VehicleCount int64    `json:"vehicle_count"`
	Classes      []string `json:"classes"`
}

// ClassesResponse is the body of GET /classes.
type ClassesResponse struct {
	TotalClasses int            `json:"total_classes"`
	ClassNames   []string       `json:"class_names"`
	ClassMapping map[int]string `json:"class_mapping"`
}
