package models

import "time"

type ProductCategory string

const (
	CategoryMedicines         ProductCategory = "medicines"
	CategoryVitamins          ProductCategory = "vitamins"
	CategoryPersonalCare      ProductCategory = "personal-care"
	CategoryHealthcareDevices ProductCategory = "healthcare-devices"
	CategoryBabyCare          ProductCategory = "baby-care"
	CategorySkinCare          ProductCategory = "skin-care"
	CategorySupplements       ProductCategory = "supplements"
)

// Product is a pharmacy catalog item. DiscountPrice equal to zero means
// no discount; EffectivePrice folds that rule in.
type Product struct {
	ID                   string          `json:"_id"`
	Name                 string          `json:"name"`
	Description          string          `json:"description"`
	ShortDescription     string          `json:"shortDescription,omitempty"`
	Price                float64         `json:"price"`
	DiscountPrice        float64         `json:"discountPrice,omitempty"`
	Category             ProductCategory `json:"category"`
	SubCategory          string          `json:"subCategory,omitempty"`
	Thumbnail            string          `json:"thumbnail"`
	InStock              bool            `json:"inStock"`
	StockQuantity        int             `json:"stockQuantity"`
	Manufacturer         string          `json:"manufacturer"`
	RequiresPrescription bool            `json:"requiresPrescription"`
	Ratings              Ratings         `json:"ratings"`
	CreatedAt            time.Time       `json:"createdAt"`
	UpdatedAt            time.Time       `json:"updatedAt"`
}

type Ratings struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

// EffectivePrice returns the discount price when one is set, else the
// regular price.
func (p Product) EffectivePrice() float64 {
	if p.DiscountPrice > 0 {
		return p.DiscountPrice
	}
	return p.Price
}

// Doctor extends User with practice details.
type Doctor struct {
	User
	DoctorInfo DoctorInfo `json:"doctorInfo"`
}

type DoctorInfo struct {
	Specialization  string         `json:"specialization"`
	Experience      int            `json:"experience"`
	Qualification   string         `json:"qualification"`
	ConsultationFee float64        `json:"consultationFee"`
	Rating          float64        `json:"rating"`
	ReviewCount     int            `json:"reviewCount"`
	Availability    []Availability `json:"availability"`
	About           string         `json:"about"`
	Languages       []string       `json:"languages"`
	IsAvailable     bool           `json:"isAvailable"`
	Hospital        string         `json:"hospital,omitempty"`
}

type Availability struct {
	Day   string     `json:"day"`
	Slots []TimeSlot `json:"slots"`
}

type TimeSlot struct {
	Start    string `json:"start"`
	End      string `json:"end"`
	IsBooked bool   `json:"isBooked"`
}

type LabTest struct {
	ID                      string   `json:"_id"`
	Name                    string   `json:"name"`
	Description             string   `json:"description"`
	Price                   float64  `json:"price"`
	DiscountPrice           float64  `json:"discountPrice,omitempty"`
	Category                string   `json:"category"`
	SampleType              string   `json:"sampleType"`
	PreparationInstructions []string `json:"preparationInstructions"`
	ReportTime              string   `json:"reportTime"`
	IncludedTests           []string `json:"includedTests"`
	Popular                 bool     `json:"popular"`
	HomeCollection          bool     `json:"homeCollection"`
}
