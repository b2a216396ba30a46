package domain

// SortField selects which token metric a column is ordered by.
type SortField string

const (
	SortMarketCap SortField = "marketCap"
	SortVolume    SortField = "volume"
	SortLiquidity SortField = "liquidity"
	SortTime      SortField = "time"
	SortPrice     SortField = "price"
	SortHolders   SortField = "holders"
)

// IsValid checks if the sort field is a known value.
func (f SortField) IsValid() bool {
	switch f {
	case SortMarketCap, SortVolume, SortLiquidity, SortTime, SortPrice, SortHolders:
		return true
	}
	return false
}

// SortDirection is the ordering direction of a sorted column.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// ColumnSort is the sort state of one lifecycle column. An empty Field means
// "insertion order" (no sorting applied).
type ColumnSort struct {
	Field     SortField     `json:"field"`
	Direction SortDirection `json:"direction"`
}

// SortConfig holds independent sort state per lifecycle column.
type SortConfig struct {
	New          ColumnSort `json:"new"`
	FinalStretch ColumnSort `json:"final_stretch"`
	Migrated     ColumnSort `json:"migrated"`
}

// DefaultSortConfig returns the initial sort state: no field, descending.
func DefaultSortConfig() SortConfig {
	def := ColumnSort{Direction: SortDesc}
	return SortConfig{New: def, FinalStretch: def, Migrated: def}
}

// For returns the sort state of the given column.
func (c SortConfig) For(status Status) ColumnSort {
	switch status {
	case StatusNew:
		return c.New
	case StatusFinalStretch:
		return c.FinalStretch
	default:
		return c.Migrated
	}
}

// SetField applies the field to the column. Selecting the already-active
// field toggles the direction; a new field resets the column to descending.
func (c *SortConfig) SetField(status Status, field SortField) {
	col := c.col(status)
	if col.Field == field {
		col.Direction = toggled(col.Direction)
		return
	}
	col.Field = field
	col.Direction = SortDesc
}

// ToggleDirection flips the direction of the column.
func (c *SortConfig) ToggleDirection(status Status) {
	col := c.col(status)
	col.Direction = toggled(col.Direction)
}

// Reset restores the column to its default (insertion order, descending).
func (c *SortConfig) Reset(status Status) {
	*c.col(status) = ColumnSort{Direction: SortDesc}
}

// ResetAll restores every column to its default.
func (c *SortConfig) ResetAll() {
	*c = DefaultSortConfig()
}

func (c *SortConfig) col(status Status) *ColumnSort {
	switch status {
	case StatusNew:
		return &c.New
	case StatusFinalStretch:
		return &c.FinalStretch
	default:
		return &c.Migrated
	}
}

func toggled(d SortDirection) SortDirection {
	if d == SortAsc {
		return SortDesc
	}
	return SortAsc
}
