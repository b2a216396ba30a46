package domain

import "testing"

func TestSortConfig_SetFieldNewFieldStartsDescending(t *testing.T) {
	c := DefaultSortConfig()

	c.SetField(StatusNew, SortMarketCap)

	col := c.For(StatusNew)
	if col.Field != SortMarketCap {
		t.Fatalf("field: got %q", col.Field)
	}
	if col.Direction != SortDesc {
		t.Errorf("new field should start descending, got %q", col.Direction)
	}
}

func TestSortConfig_SetFieldSameFieldToggles(t *testing.T) {
	c := DefaultSortConfig()

	c.SetField(StatusNew, SortMarketCap)
	c.SetField(StatusNew, SortMarketCap)
	if got := c.For(StatusNew).Direction; got != SortAsc {
		t.Errorf("second select should toggle to asc, got %q", got)
	}

	c.SetField(StatusNew, SortMarketCap)
	if got := c.For(StatusNew).Direction; got != SortDesc {
		t.Errorf("third select should toggle back to desc, got %q", got)
	}
}

func TestSortConfig_SetFieldDifferentFieldResetsDirection(t *testing.T) {
	c := DefaultSortConfig()

	c.SetField(StatusNew, SortMarketCap)
	c.SetField(StatusNew, SortMarketCap) // asc
	c.SetField(StatusNew, SortVolume)

	col := c.For(StatusNew)
	if col.Field != SortVolume || col.Direction != SortDesc {
		t.Errorf("switching field should start descending, got %+v", col)
	}
}

func TestSortConfig_PerCategoryIndependence(t *testing.T) {
	c := DefaultSortConfig()

	c.SetField(StatusNew, SortMarketCap)

	if c.For(StatusFinalStretch).Field != "" {
		t.Error("setting one category should not affect another")
	}
	if c.For(StatusMigrated).Field != "" {
		t.Error("setting one category should not affect another")
	}
}

func TestSortConfig_Reset(t *testing.T) {
	c := DefaultSortConfig()
	c.SetField(StatusNew, SortMarketCap)
	c.SetField(StatusMigrated, SortPrice)

	c.Reset(StatusNew)
	if c.For(StatusNew).Field != "" {
		t.Error("Reset should clear the category's sort")
	}
	if c.For(StatusMigrated).Field != SortPrice {
		t.Error("Reset should not touch other categories")
	}

	c.ResetAll()
	if c.For(StatusMigrated).Field != "" {
		t.Error("ResetAll should clear every category")
	}
}

func TestSortConfig_ToggleDirection(t *testing.T) {
	c := DefaultSortConfig()
	c.SetField(StatusNew, SortHolders)

	c.ToggleDirection(StatusNew)
	if got := c.For(StatusNew).Direction; got != SortAsc {
		t.Errorf("toggle: got %q, want asc", got)
	}
}
