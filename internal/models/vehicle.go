package models

// 车辆类型（开放集合，以下为页面上的常用取值）
const (
	VehicleTypeCar  = "car"
	VehicleTypeBike = "bike"
	VehicleTypeSUV  = "suv"
)

// Vehicle 出租车辆
// 加载后只读，过滤永远不会修改原始记录
type Vehicle struct {
	ID              string   `json:"id" db:"id"`
	Type            string   `json:"type" db:"type"`
	Location        string   `json:"location" db:"location"`
	PricePerKm      float64  `json:"price_per_km" db:"price_per_km"`
	Rating          float64  `json:"rating" db:"rating"` // 0-5
	TotalReviews    int      `json:"total_reviews" db:"total_reviews"`
	OwnerID         string   `json:"owner_id" db:"owner_id"` // 可能指向不存在的车主
	Name            string   `json:"name" db:"name"`
	Brand           string   `json:"brand" db:"brand"`
	Year            int      `json:"year" db:"year"`
	Transmission    string   `json:"transmission" db:"transmission"`
	FuelType        string   `json:"fuel_type" db:"fuel_type"`
	Seats           int      `json:"seats,omitempty" db:"seats"` // 0 表示未提供
	Image           string   `json:"image" db:"image"`
	Video           string   `json:"video,omitempty" db:"video"`
	Features        []string `json:"features,omitempty" db:"features"`
	PickupLocations []string `json:"pickup_locations,omitempty" db:"pickup_locations"`
	Condition       string   `json:"condition" db:"condition"`
}

// HasVideo 是否有视频
func (v Vehicle) HasVideo() bool {
	return v.Video != ""
}
