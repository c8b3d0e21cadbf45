package domain

// Tag is immutable reference data attached to recipes for filtering.
type Tag struct {
	ID    int64   `json:"id" gorm:"primaryKey"`
	Name  string  `json:"name" gorm:"size:30;not null;uniqueIndex"`
	Color *string `json:"color,omitempty" gorm:"size:10;uniqueIndex"`
	Slug  *string `json:"slug,omitempty" gorm:"size:90;uniqueIndex"`
}

func (Tag) TableName() string { return "tags" }

// Ingredient is shared reference data. Rows are not unique per
// (name, measurement_unit); that pair is the natural key the shopping-list
// aggregation groups by, distinct from the row id.
type Ingredient struct {
	ID              int64  `json:"id" gorm:"primaryKey"`
	Name            string `json:"name" gorm:"size:100;not null;index;index:idx_ingredient_natural"`
	MeasurementUnit string `json:"measurement_unit" gorm:"size:30;not null;index:idx_ingredient_natural"`
}

func (Ingredient) TableName() string { return "ingredients" }
