package models

type HotelType struct {
	Base
	Name        string `json:"name" gorm:"size:120;not null"`
	Description string `json:"description"`
}

func (h *HotelType) SlugSource() string  { return h.Name }
func (h *HotelType) DisplayName() string { return h.Name }

type Inclusion struct {
	Base
	Name        string `json:"name" gorm:"size:120;not null"`
	Description string `json:"description"`
}

func (i *Inclusion) SlugSource() string  { return i.Name }
func (i *Inclusion) DisplayName() string { return i.Name }

type Exclusion struct {
	Base
	Name        string `json:"name" gorm:"size:120;not null"`
	Description string `json:"description"`
}

func (e *Exclusion) SlugSource() string  { return e.Name }
func (e *Exclusion) DisplayName() string { return e.Name }
