package catalog

import (
	"strings"

	"github.com/langchou/rentgazer/internal/models"
)

// VehicleCard 车辆卡片展示数据
type VehicleCard struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Brand        string      `json:"brand"`
	Type         string      `json:"type"`
	Image        string      `json:"image"`
	HasVideo     bool        `json:"has_video"`
	PricePerKm   float64     `json:"price_per_km"`
	Rating       float64     `json:"rating"`
	Stars        []StarGlyph `json:"stars"`
	TotalReviews int         `json:"total_reviews"`
	Transmission string      `json:"transmission"`
	FuelType     string      `json:"fuel_type"`
	Seats        int         `json:"seats,omitempty"`
	Year         int         `json:"year"`
	Location     string      `json:"location"`
}

// NewVehicleCard 车辆 -> 卡片
func NewVehicleCard(v models.Vehicle) VehicleCard {
	return VehicleCard{
		ID:           v.ID,
		Name:         v.Name,
		Brand:        v.Brand,
		Type:         v.Type,
		Image:        v.Image,
		HasVideo:     v.HasVideo(),
		PricePerKm:   v.PricePerKm,
		Rating:       v.Rating,
		Stars:        StarGlyphs(v.Rating),
		TotalReviews: v.TotalReviews,
		Transmission: v.Transmission,
		FuelType:     v.FuelType,
		Seats:        v.Seats,
		Year:         v.Year,
		Location:     v.Location,
	}
}

// NewVehicleCards 批量转换，保持顺序
func NewVehicleCards(vehicles []models.Vehicle) []VehicleCard {
	cards := make([]VehicleCard, 0, len(vehicles))
	for _, v := range vehicles {
		cards = append(cards, NewVehicleCard(v))
	}
	return cards
}

// OwnerProfile 详情页中的车主信息
type OwnerProfile struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	ProfileImage  string  `json:"profile_image"`
	Rating        float64 `json:"rating"`
	MemberSince   string  `json:"member_since"`
	TotalVehicles int     `json:"total_vehicles"`
	Phone         string  `json:"phone"`
	Email         string  `json:"email"`
	Location      string  `json:"location"`
}

// VehicleDetail 车辆详情展示数据
type VehicleDetail struct {
	VehicleCard
	TypeBadge       string        `json:"type_badge"`
	Condition       string        `json:"condition"`
	Video           string        `json:"video,omitempty"`
	Features        []string      `json:"features,omitempty"`
	Owner           *OwnerProfile `json:"owner,omitempty"`
	PickupLocations []string      `json:"pickup_locations,omitempty"`
}

// NewVehicleDetail 车辆 + 车主 -> 详情
// 车主不存在时省略车主及取车地点部分
func NewVehicleDetail(v models.Vehicle, owner models.Owner, hasOwner bool) VehicleDetail {
	d := VehicleDetail{
		VehicleCard: NewVehicleCard(v),
		TypeBadge:   strings.ToUpper(v.Type),
		Condition:   v.Condition,
		Video:       v.Video,
	}
	if len(v.Features) > 0 {
		d.Features = append([]string(nil), v.Features...)
	}

	if hasOwner {
		d.Owner = &OwnerProfile{
			ID:            owner.ID,
			Name:          owner.Name,
			ProfileImage:  owner.ProfileImage,
			Rating:        owner.Rating,
			MemberSince:   owner.MemberSince,
			TotalVehicles: owner.TotalVehicles,
			Phone:         owner.Phone,
			Email:         owner.Email,
			Location:      owner.Location,
		}
		if len(v.PickupLocations) > 0 {
			d.PickupLocations = append([]string(nil), v.PickupLocations...)
		}
	}

	return d
}

// OwnerContact 预订摘要中的车主联系方式
type OwnerContact struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

// BookingSummary 预订摘要，仅展示，不创建预订
type BookingSummary struct {
	VehicleID       string        `json:"vehicle_id"`
	VehicleName     string        `json:"vehicle_name"`
	PricePerKm      float64       `json:"price_per_km"`
	Condition       string        `json:"condition"`
	Owner           *OwnerContact `json:"owner,omitempty"`
	PickupLocations string        `json:"pickup_locations,omitempty"`
	CallURL         string        `json:"call_url,omitempty"`
}

// NewBookingSummary 车辆 + 车主 -> 预订摘要
func NewBookingSummary(v models.Vehicle, owner models.Owner, hasOwner bool) BookingSummary {
	b := BookingSummary{
		VehicleID:       v.ID,
		VehicleName:     v.Name,
		PricePerKm:      v.PricePerKm,
		Condition:       v.Condition,
		PickupLocations: strings.Join(v.PickupLocations, ", "),
	}

	if hasOwner {
		b.Owner = &OwnerContact{
			Name:  owner.Name,
			Phone: owner.Phone,
			Email: owner.Email,
		}
		b.CallURL = "tel:" + owner.Phone
	}

	return b
}
