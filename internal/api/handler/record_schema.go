package handler

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// acceptedResponse acknowledges a suppressed duplicate submission.
type acceptedResponse struct {
	Message string `json:"message"`
}

// clockRequest is a 12-hour clock reading as captured by the shift forms.
type clockRequest struct {
	Hour     int    `json:"hour"     validate:"required,min=1,max=12"`
	Minute   int    `json:"minute"   validate:"min=0,max=59"`
	Meridiem string `json:"meridiem" validate:"required,oneof=AM PM"`
}

type productionRequest struct {
	HourlyTons float64 `json:"hourly_tons" validate:"gte=0"`
	DailyTons  float64 `json:"daily_tons"  validate:"gte=0"`
	BlockW     float64 `json:"block_w"     validate:"gte=0"`
	BlockH     float64 `json:"block_h"     validate:"gte=0"`
	BlockL     float64 `json:"block_l"     validate:"gte=0"`
	Notes      string  `json:"notes"`
}

type equipmentRequest struct {
	EquipmentType  string       `json:"equipment_type"  validate:"required"`
	EquipmentID    string       `json:"equipment_id"    validate:"required"`
	Status         string       `json:"status"          validate:"required,oneof=Idle Running Maintenance Breakdown"`
	Start          clockRequest `json:"start"           validate:"required"`
	End            clockRequest `json:"end"             validate:"required"`
	ProductionTons float64      `json:"production_tons" validate:"gte=0"`
}

// equipmentUpsertRequest omits the business key (it rides in the path) and
// makes the type optional: it only applies when the upsert inserts.
type equipmentUpsertRequest struct {
	EquipmentType  string       `json:"equipment_type"`
	Status         string       `json:"status"          validate:"required,oneof=Idle Running Maintenance Breakdown"`
	Start          clockRequest `json:"start"           validate:"required"`
	End            clockRequest `json:"end"             validate:"required"`
	ProductionTons float64      `json:"production_tons" validate:"gte=0"`
}

type inventoryRequest struct {
	Location     string  `json:"location"      validate:"required"`
	MaterialType string  `json:"material_type" validate:"required,oneof=Overburden 'Rough Block' 'Finished Slab' Aggregate Other"`
	Quantity     float64 `json:"quantity"      validate:"gte=0"`
	Unit         string  `json:"unit"          validate:"required"`
	DateStocked  string  `json:"date_stocked"  validate:"required,datetime=2006-01-02"`
}

type workerRequest struct {
	Name         string       `json:"name"          validate:"required"`
	Role         string       `json:"role"          validate:"required"`
	Shift        string       `json:"shift"         validate:"required,oneof='Shift 1' 'Shift 2' 'Shift 3'"`
	Start        clockRequest `json:"start"         validate:"required"`
	End          clockRequest `json:"end"           validate:"required"`
	WorkingPlace string       `json:"working_place"`
	HiredOn      string       `json:"hired_on"      validate:"required,datetime=2006-01-02"`
}

type environmentRequest struct {
	NoiseDB          float64 `json:"noise_db"          validate:"gte=0"`
	AirQuality       string  `json:"air_quality"       validate:"required,oneof=Good Moderate Poor"`
	WaterUsageL      float64 `json:"water_usage_l"     validate:"gte=0"`
	ComplianceStatus string  `json:"compliance_status" validate:"required,oneof=Pass Warning Fail"`
	Notes            string  `json:"notes"`
}

type dashboardResponse struct {
	TotalStockpile   float64  `json:"total_stockpile"`
	EquipmentRunning int      `json:"equipment_running"`
	EquipmentTotal   int      `json:"equipment_total"`
	ProductionCount  int      `json:"production_count"`
	AvgNoiseDB       *float64 `json:"avg_noise_db"`
}
