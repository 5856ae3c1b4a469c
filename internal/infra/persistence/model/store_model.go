package model

import (
	"time"

	"github.com/google/uuid"
)

// StoreModel mirrors the 'stores' table. Latitude and Longitude are both set or both NULL.
type StoreModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	OwnerID     uuid.UUID `gorm:"type:uuid;not null;unique"`
	Name        string    `gorm:"type:varchar(150);not null"`
	Description string    `gorm:"type:text"`
	Address     string    `gorm:"type:text"`
	ContactInfo string    `gorm:"type:varchar(255)"`
	LogoURL     string    `gorm:"type:text"`
	Latitude    *float64  `gorm:"type:double precision"`
	Longitude   *float64  `gorm:"type:double precision"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (StoreModel) TableName() string {
	return "stores"
}

// MetalPriceModel mirrors the 'metal_prices' table, one row per metal and purity.
type MetalPriceModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	MetalType    string    `gorm:"type:varchar(20);not null;uniqueIndex:idx_metal_prices_metal_purity"`
	Purity       string    `gorm:"type:varchar(20);not null;uniqueIndex:idx_metal_prices_metal_purity"`
	PricePerGram float64   `gorm:"type:numeric(12,2);not null"`
	UpdatedBy    uuid.UUID `gorm:"type:uuid"`
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (MetalPriceModel) TableName() string {
	return "metal_prices"
}

// ProductModel mirrors the 'products' table.
type ProductModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	StoreID     uuid.UUID `gorm:"type:uuid;not null;index"`
	Name        string    `gorm:"type:varchar(150);not null"`
	Description string    `gorm:"type:text"`
	Category    string    `gorm:"type:varchar(60);index"`
	MetalType   string    `gorm:"type:varchar(20);not null"`
	Purity      string    `gorm:"type:varchar(20);not null"`
	WeightGrams float64   `gorm:"type:numeric(10,3)"`
	Price       float64   `gorm:"type:numeric(12,2);not null"`
	ImageURL    string    `gorm:"type:text"`
	Available   bool      `gorm:"not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Store *StoreModel `gorm:"foreignKey:StoreID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (ProductModel) TableName() string {
	return "products"
}
