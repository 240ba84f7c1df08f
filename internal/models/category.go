package models

// MainCategory is the top level of the two-level taxonomy.
type MainCategory struct {
	ID            uint          `json:"id" gorm:"primaryKey"`
	Name          string        `json:"name" gorm:"size:200"`
	SubCategories []SubCategory `json:"sub_category" gorm:"constraint:OnDelete:CASCADE"`
}

// SubCategory always hangs off a main category; MainCategoryID is nil only for legacy rows.
type SubCategory struct {
	ID             uint          `json:"id" gorm:"primaryKey"`
	Name           string        `json:"name" gorm:"size:200"`
	MainCategoryID *uint         `json:"main_category" gorm:"index"`
	MainCategory   *MainCategory `json:"-"`
}
