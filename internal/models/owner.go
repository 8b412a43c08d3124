package models

// Owner 车主信息
type Owner struct {
	ID            string  `json:"id" db:"id"`
	Name          string  `json:"name" db:"name"`
	Phone         string  `json:"phone" db:"phone"`
	Email         string  `json:"email" db:"email"`
	Location      string  `json:"location" db:"location"`
	Rating        float64 `json:"rating" db:"rating"`
	MemberSince   string  `json:"member_since" db:"member_since"`
	TotalVehicles int     `json:"total_vehicles" db:"total_vehicles"`
	ProfileImage  string  `json:"profile_image" db:"profile_image"`
}
