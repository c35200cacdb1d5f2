package models

// Statik referans listeleri; init sırasında seed edilir, normal akışta
// kullanıcı tarafından düzenlenmez.

type ShiftLeader struct {
	Name string `gorm:"primaryKey;size:100" json:"name"`
}

type Warehouse struct {
	Name string `gorm:"primaryKey;size:100" json:"name"`
}
