package domain

import "time"

// EquipmentStatus represents the operational state of a piece of equipment.
type EquipmentStatus string

const (
	EquipmentIdle        EquipmentStatus = "Idle"
	EquipmentRunning     EquipmentStatus = "Running"
	EquipmentMaintenance EquipmentStatus = "Maintenance"
	EquipmentBreakdown   EquipmentStatus = "Breakdown"
)

// AirQuality is the coarse air quality rating recorded with environment logs.
type AirQuality string

const (
	AirGood     AirQuality = "Good"
	AirModerate AirQuality = "Moderate"
	AirPoor     AirQuality = "Poor"
)

// ComplianceStatus is the outcome of an environmental compliance check.
type ComplianceStatus string

const (
	CompliancePass    ComplianceStatus = "Pass"
	ComplianceWarning ComplianceStatus = "Warning"
	ComplianceFail    ComplianceStatus = "Fail"
)

// ProductionRecord is one production log entry. BlockVolume is always
// server-computed from the block dimensions, never taken from the caller.
type ProductionRecord struct {
	ID          string    `json:"id"`
	Timestamp   time.Time `json:"timestamp"`
	HourlyTons  float64   `json:"hourly_tons"`
	DailyTons   float64   `json:"daily_tons"`
	BlockW      float64   `json:"block_w"`
	BlockH      float64   `json:"block_h"`
	BlockL      float64   `json:"block_l"`
	BlockVolume float64   `json:"block_volume"`
	Notes       string    `json:"notes,omitempty"`
	Owner       string    `json:"username"`
}

// EquipmentRecord is one equipment status entry. EquipmentID is a
// caller-supplied business key: upserts match on it while the surrogate ID
// stays server-assigned. Start and end times are 24-hour "HH:MM:SS" strings.
type EquipmentRecord struct {
	ID             string          `json:"id"`
	EquipmentType  string          `json:"equipment_type"`
	EquipmentID    string          `json:"equipment_id"`
	Status         EquipmentStatus `json:"status"`
	StartTime      string          `json:"start_time"`
	EndTime        string          `json:"end_time"`
	RunningTime    float64         `json:"running_time"`
	ProductionTons float64         `json:"production_tons"`
	Owner          string          `json:"username"`
	LastUpdated    time.Time       `json:"last_updated"`
}

// InventoryRecord is one stockpile entry.
type InventoryRecord struct {
	ID           string    `json:"id"`
	Location     string    `json:"location"`
	MaterialType string    `json:"material_type"`
	Quantity     float64   `json:"quantity"`
	Unit         string    `json:"unit"`
	DateStocked  time.Time `json:"date_stocked"`
	Owner        string    `json:"username"`
}

// WorkerRecord is one workforce shift entry.
type WorkerRecord struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	Shift        string    `json:"shift"`
	StartTime    string    `json:"start_time"`
	EndTime      string    `json:"end_time"`
	WorkingHours float64   `json:"working_hours"`
	WorkingPlace string    `json:"working_place"`
	HiredOn      time.Time `json:"hired_on"`
	Owner        string    `json:"username"`
}

// EnvironmentRecord is one environmental reading.
type EnvironmentRecord struct {
	ID               string           `json:"id"`
	Timestamp        time.Time        `json:"timestamp"`
	NoiseDB          float64          `json:"noise_db"`
	AirQuality       AirQuality       `json:"air_quality"`
	WaterUsageL      float64          `json:"water_usage_l"`
	ComplianceStatus ComplianceStatus `json:"compliance_status"`
	Notes            string           `json:"notes,omitempty"`
	Owner            string           `json:"username"`
}
