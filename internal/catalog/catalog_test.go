package catalog

import "testing"

func TestDefault(t *testing.T) {
	c := Default()

	if c.Len() != 5 {
		t.Fatalf("Expected 5 plans, got %d", c.Len())
	}

	plans := c.Plans()
	expectedOrder := []string{"fibernet-basic", "fibernet-standard", "fibernet-premium", "copper-basic", "copper-standard"}
	for i, id := range expectedOrder {
		if plans[i].ID != id {
			t.Errorf("Position %d: expected %q, got %q", i, id, plans[i].ID)
		}
	}

	premium, ok := c.Get("fibernet-premium")
	if !ok {
		t.Fatal("Expected fibernet-premium to exist")
	}
	if premium.MonthlyPrice != 79.99 {
		t.Errorf("Expected premium price 79.99, got %v", premium.MonthlyPrice)
	}
	if premium.DataQuotaGB != 1000 {
		t.Errorf("Expected premium quota 1000, got %v", premium.DataQuotaGB)
	}
}

func TestGet_Missing(t *testing.T) {
	c := Default()
	if _, ok := c.Get("no-such-plan"); ok {
		t.Error("Expected lookup miss for unknown plan id")
	}
}

func TestPlanName(t *testing.T) {
	testCases := []struct {
		plan     Plan
		expected string
	}{
		{Plan{ServiceType: "Fibernet", Category: "Standard"}, "Fibernet Standard"},
		{Plan{ServiceType: "Broadband Copper", Category: "Basic"}, "Broadband Copper Basic"},
	}

	for _, tc := range testCases {
		if got := tc.plan.Name(); got != tc.expected {
			t.Errorf("Expected %q, got %q", tc.expected, got)
		}
	}
}

func TestNew_CopiesInput(t *testing.T) {
	src := []Plan{{ID: "a", ServiceType: "Fibernet", Category: "Basic", MonthlyPrice: 10}}
	c := New(src)

	src[0].MonthlyPrice = 999
	got, _ := c.Get("a")
	if got.MonthlyPrice != 10 {
		t.Errorf("Expected catalog to be isolated from caller mutation, got price %v", got.MonthlyPrice)
	}
}
