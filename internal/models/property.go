package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MaxImages is the number of image slots a listing may carry (image1..image4).
const MaxImages = 4

type Property struct {
	// 基本情報
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title    string             `bson:"title" json:"title"`
	Location string             `bson:"location" json:"location"`
	Price    float64            `bson:"price" json:"price"`

	// フィルタ用属性
	Beds         int                  `bson:"beds" json:"beds"`
	Baths        int                  `bson:"baths" json:"baths"`
	Sqft         int                  `bson:"sqft" json:"sqft"`
	Type         string               `bson:"type" json:"type"`
	Availability PropertyAvailability `bson:"availability" json:"availability"`

	// 詳細情報
	Description string   `bson:"description" json:"description"`
	Amenities   []string `bson:"amenities" json:"amenities"`
	Image       []string `bson:"image" json:"image"`
	Phone       string   `bson:"phone" json:"phone"`

	// タイムスタンプ
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// PropertyAvailability は物件の募集ステータス
type PropertyAvailability string

const (
	AvailabilityAvailable PropertyAvailability = "available"
	AvailabilityRented    PropertyAvailability = "rented"
	AvailabilitySold      PropertyAvailability = "sold"
)

// CollectionName returns the Mongo collection properties are stored in.
func (Property) CollectionName() string {
	return "properties"
}

// IsValid reports whether the listing carries the minimum required fields.
func (p *Property) IsValid() bool {
	return p.Title != "" &&
		p.Price >= 0 &&
		p.Beds >= 0 && p.Baths >= 0 && p.Sqft >= 0 &&
		len(p.Image) <= MaxImages
}

// IsAvailable は物件が募集中かどうか
func (p *Property) IsAvailable() bool {
	return p.Availability == AvailabilityAvailable
}

// ApplyUpdate replaces every mutable field from src. The image list is
// replaced only when src carries one; otherwise the existing list is kept.
// ID and CreatedAt are never touched.
func (p *Property) ApplyUpdate(src *Property) {
	p.Title = src.Title
	p.Location = src.Location
	p.Price = src.Price
	p.Beds = src.Beds
	p.Baths = src.Baths
	p.Sqft = src.Sqft
	p.Type = src.Type
	p.Availability = src.Availability
	p.Description = src.Description
	p.Amenities = src.Amenities
	p.Phone = src.Phone
	if src.Image != nil {
		p.Image = src.Image
	}
	p.UpdatedAt = time.Now()
}
