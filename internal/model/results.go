package model

// AnomalyType tags which side of the price distribution an anomaly sits on.
type AnomalyType string

const (
	AnomalyHigh AnomalyType = "HIGH"
	AnomalyLow  AnomalyType = "LOW"
)

// PriceAnomaly is one order whose price deviates more than the z-score
// cutoff from its part-type's price profile.
type PriceAnomaly struct {
	PartType     string      `json:"part_type"`
	PartName     string      `json:"part_name"`
	SupplierName string      `json:"supplier_name"`
	ClaimNumber  string      `json:"claim_number"`
	Price        float64     `json:"price"`
	AvgPrice     float64     `json:"avg_price"`
	StdDev       float64     `json:"std_dev"`
	ZScore       float64     `json:"z_score"`
	AnomalyType  AnomalyType `json:"anomaly_type"`
}

// RiskTier buckets a supplier's composite risk score.
type RiskTier string

const (
	RiskLow    RiskTier = "LOW"
	RiskMedium RiskTier = "MEDIUM"
	RiskHigh   RiskTier = "HIGH"
)

// SupplierRisk is the composite risk assessment for one supplier.
// AvgDeliveryDays is nil when the supplier has no completed deliveries.
type SupplierRisk struct {
	SupplierName       string   `json:"supplier_name"`
	TotalOrders        int      `json:"total_orders"`
	Delivered          int      `json:"delivered"`
	Cancelled          int      `json:"cancelled"`
	SupplierCancels    int      `json:"supplier_cancels"`
	AvgDeliveryDays    *float64 `json:"avg_delivery_days"`
	DeliveryRate       float64  `json:"delivery_rate"`
	CancelRate         float64  `json:"cancel_rate"`
	SupplierCancelRate float64  `json:"supplier_cancel_rate"`
	TotalValue         float64  `json:"total_value"`
	RiskScore          int      `json:"risk_score"`
	RiskTier           RiskTier `json:"risk_tier"`
}

// DeliveryForecast holds distributional delivery-time statistics for one
// part type, over completed orders only.
type DeliveryForecast struct {
	PartType   string  `json:"part_type"`
	SampleSize int     `json:"sample_size"`
	AvgDays    float64 `json:"avg_days"`
	MedianDays float64 `json:"median_days"`
	MinDays    int     `json:"min_days"`
	MaxDays    int     `json:"max_days"`
	P25Days    float64 `json:"p25_days"`
	P75Days    float64 `json:"p75_days"`
	P90Days    float64 `json:"p90_days"`
	StdDev     float64 `json:"std_dev"`
}

// PartAssociation is one unordered part-type pair ordered together within
// the same claims. Lift uses the documented scaled formula
// co_count^2 / (support_a * support_b) * 1000; the constant is part of the
// output contract and must not be re-derived.
type PartAssociation struct {
	PartA         string  `json:"part_a"`
	PartB         string  `json:"part_b"`
	TimesTogether int     `json:"times_together"`
	PartATotal    int     `json:"part_a_total"`
	PartBTotal    int     `json:"part_b_total"`
	PctAWithB     float64 `json:"pct_a_with_b"`
	PctBWithA     float64 `json:"pct_b_with_a"`
	Lift          float64 `json:"lift"`
}

// PerformanceTier ranks a supplier's delivery performance.
type PerformanceTier string

const (
	TierPremium         PerformanceTier = "PREMIUM"
	TierReliable        PerformanceTier = "RELIABLE"
	TierStandard        PerformanceTier = "STANDARD"
	TierUnderperforming PerformanceTier = "UNDERPERFORMING"
)

// ReachTier ranks a supplier's catalog and geographic coverage.
type ReachTier string

const (
	ReachBroad       ReachTier = "BROAD"
	ReachModerate    ReachTier = "MODERATE"
	ReachSpecialized ReachTier = "SPECIALIZED"
)

// ValueTier ranks a supplier's contribution to total order value.
type ValueTier string

const (
	ValueKeyAccount ValueTier = "KEY_ACCOUNT"
	ValueGrowth     ValueTier = "GROWTH"
	ValueEmerging   ValueTier = "EMERGING"
)

// SupplierSegment tiers one supplier along three independent axes.
type SupplierSegment struct {
	SupplierName     string          `json:"supplier_name"`
	TotalOrders      int             `json:"total_orders"`
	DeliveryRate     float64         `json:"delivery_rate"`
	AvgPrice         float64         `json:"avg_price"`
	TotalValue       float64         `json:"total_value"`
	AvgDeliveryDays  *float64        `json:"avg_delivery_days"`
	PartTypesServed  int             `json:"part_types_served"`
	WorkshopsServed  int             `json:"workshops_served"`
	PerformanceTier  PerformanceTier `json:"performance_tier"`
	ReachTier        ReachTier       `json:"reach_tier"`
	ValueTier        ValueTier       `json:"value_tier"`
	ValueSharePct    float64         `json:"value_share_pct"`
}

// WeeklyTrend is one ISO-week bucket of order activity. Week is the Monday
// of the bucket in YYYY-MM-DD form. WowChange is nil for the first observed
// week; MA4Orders averages the current and up to three preceding observed
// weeks.
type WeeklyTrend struct {
	Week         string   `json:"week"`
	OrderCount   int      `json:"order_count"`
	ClaimCount   int      `json:"claim_count"`
	TotalValue   float64  `json:"total_value"`
	Delivered    int      `json:"delivered"`
	Cancelled    int      `json:"cancelled"`
	DeliveryRate *float64 `json:"delivery_rate"`
	MA4Orders    int      `json:"ma4_orders"`
	WowChange    *int     `json:"wow_change"`
}

// AutomationLevel classifies how much of an order's handling was automated.
type AutomationLevel string

const (
	AutomationFull       AutomationLevel = "FULL_AUTO"
	AutomationAssignOnly AutomationLevel = "AUTO_ASSIGN_ONLY"
	AutomationQuoteOnly  AutomationLevel = "AUTO_QUOTE_ONLY"
	AutomationManual     AutomationLevel = "MANUAL"
)

// AutomationImpact compares outcome metrics for one automation level.
type AutomationImpact struct {
	AutomationLevel AutomationLevel `json:"automation_level"`
	OrderCount      int             `json:"order_count"`
	PctOfTotal      float64         `json:"pct_of_total"`
	Delivered       int             `json:"delivered"`
	Cancelled       int             `json:"cancelled"`
	DeliveryRate    *float64        `json:"delivery_rate"`
	AvgDeliveryDays *float64        `json:"avg_delivery_days"`
	AvgPrice        *float64        `json:"avg_price"`
	AvgQuoteDays    *float64        `json:"avg_quote_days"`
}

// CancelSource attributes a cancellation to the party that triggered it,
// inferred from which reason field is present.
type CancelSource string

const (
	CancelBySupplier CancelSource = "SUPPLIER"
	CancelByInsurer  CancelSource = "INSURER"
	CancelByManual   CancelSource = "MANUAL"
	CancelByOther    CancelSource = "OTHER"
)

// CancellationBySource counts cancellations attributed to one source.
type CancellationBySource struct {
	CancelSource CancelSource `json:"cancel_source"`
	CancelCount  int          `json:"cancel_count"`
	PctOfTotal   float64      `json:"pct_of_total"`
}

// CancelReasonCount is one supplier-stated cancellation reason tally.
type CancelReasonCount struct {
	Reason string `json:"reason"`
	Count  int    `json:"count"`
}

// SupplierCancelRate is a per-supplier cancellation rate row.
type SupplierCancelRate struct {
	SupplierName string  `json:"supplier_name"`
	TotalOrders  int     `json:"total_orders"`
	Cancelled    int     `json:"cancelled"`
	CancelRate   float64 `json:"cancel_rate"`
}

// CancellationAnalysis bundles the three cancellation views returned by the
// cancellation endpoint.
type CancellationAnalysis struct {
	BySource   []CancellationBySource `json:"by_source"`
	TopReasons []CancelReasonCount    `json:"top_reasons"`
	BySupplier []SupplierCancelRate   `json:"by_supplier"`
}

// ComplexityTier buckets a claim by how hard it is to fulfil.
type ComplexityTier string

const (
	ComplexitySimple   ComplexityTier = "SIMPLE"
	ComplexityModerate ComplexityTier = "MODERATE"
	ComplexityComplex  ComplexityTier = "COMPLEX"
)

// ClaimComplexity scores one multi-part claim.
type ClaimComplexity struct {
	ClaimNumber     string         `json:"claim_number"`
	PartCount       int            `json:"part_count"`
	UniquePartTypes int            `json:"unique_part_types"`
	UniqueSuppliers int            `json:"unique_suppliers"`
	TotalValue      float64        `json:"total_value"`
	Delivered       int            `json:"delivered"`
	Cancelled       int            `json:"cancelled"`
	AvgDeliveryDays *float64       `json:"avg_delivery_days"`
	CycleTimeDays   *int           `json:"cycle_time_days"`
	FulfillmentRate float64        `json:"fulfillment_rate"`
	ComplexityScore int            `json:"complexity_score"`
	ComplexityTier  ComplexityTier `json:"complexity_tier"`
}

// DemandPattern classifies the stability of a workshop's weekly ordering.
type DemandPattern string

const (
	DemandStable   DemandPattern = "STABLE"
	DemandModerate DemandPattern = "MODERATE"
	DemandVolatile DemandPattern = "VOLATILE"
)

// WorkshopDemand summarizes one workshop's weekly order volume over the
// demand window.
type WorkshopDemand struct {
	WorkshopName    string        `json:"workshop_name"`
	ActiveWeeks     int           `json:"active_weeks"`
	TotalOrders     int           `json:"total_orders"`
	AvgWeeklyOrders float64       `json:"avg_weekly_orders"`
	StdOrders       float64       `json:"std_orders"`
	TotalValue      float64       `json:"total_value"`
	Volatility      *float64      `json:"volatility"`
	DemandPattern   DemandPattern `json:"demand_pattern"`
}

// Summary holds the headline counters shown at the top of the patterns page.
type Summary struct {
	PriceAnomalies    int     `json:"price_anomalies"`
	HighRiskSuppliers int     `json:"high_risk_suppliers"`
	ComplexClaims     int     `json:"complex_claims"`
	AutoAssignRate    float64 `json:"auto_assign_rate"`
	AutoQuoteRate     float64 `json:"auto_quote_rate"`
}
