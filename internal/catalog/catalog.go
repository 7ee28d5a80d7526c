package catalog

// Plan is an immutable catalog entry.
type Plan struct {
	ID           string  `json:"id"`
	ServiceType  string  `json:"service_type"`
	Category     string  `json:"category"`
	MonthlyPrice float64 `json:"monthly_price"`
	DataQuotaGB  float64 `json:"data_quota_gb"`
	SpeedMbps    int     `json:"speed_mbps"`
}

// Name returns the display name used in recommendations.
func (p Plan) Name() string {
	return p.ServiceType + " " + p.Category
}

// Catalog is a fixed set of plans populated at process start and never
// mutated. Iteration order is insertion order, which doubles as the
// deterministic tie-break for equal recommendation scores.
type Catalog struct {
	plans []Plan
	byID  map[string]Plan
}

// New creates a catalog from the given plans, preserving their order.
func New(plans []Plan) *Catalog {
	c := &Catalog{
		plans: make([]Plan, len(plans)),
		byID:  make(map[string]Plan, len(plans)),
	}
	copy(c.plans, plans)
	for _, p := range plans {
		c.byID[p.ID] = p
	}
	return c
}

// Default returns the built-in five-plan catalog.
func Default() *Catalog {
	return New([]Plan{
		{ID: "fibernet-basic", ServiceType: "Fibernet", Category: "Basic", MonthlyPrice: 29.99, DataQuotaGB: 100, SpeedMbps: 50},
		{ID: "fibernet-standard", ServiceType: "Fibernet", Category: "Standard", MonthlyPrice: 49.99, DataQuotaGB: 500, SpeedMbps: 100},
		{ID: "fibernet-premium", ServiceType: "Fibernet", Category: "Premium", MonthlyPrice: 79.99, DataQuotaGB: 1000, SpeedMbps: 200},
		{ID: "copper-basic", ServiceType: "Broadband Copper", Category: "Basic", MonthlyPrice: 19.99, DataQuotaGB: 50, SpeedMbps: 25},
		{ID: "copper-standard", ServiceType: "Broadband Copper", Category: "Standard", MonthlyPrice: 34.99, DataQuotaGB: 250, SpeedMbps: 50},
	})
}

// Plans returns all plans in insertion order.
func (c *Catalog) Plans() []Plan {
	return c.plans
}

// Get returns the plan with the given id.
func (c *Catalog) Get(id string) (Plan, bool) {
	p, ok := c.byID[id]
	return p, ok
}

// Len returns the number of plans in the catalog.
func (c *Catalog) Len() int {
	return len(c.plans)
}
