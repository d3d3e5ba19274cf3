package domain

// Room 房间领域模型
// Tenants 含当前及历史租客；IsBooked 为上游原始预订标记，
// 租客已退租不改变该标记（过滤仍按原始标记分类）
type Room struct {
	ID       string   `json:"id"`
	Building Building `json:"building"`
	Number   string   `json:"number"`
	IsBooked bool     `json:"is_booked"`
	Rent     float64  `json:"rent"`
	Tenants  []Tenant `json:"tenants"`

	Raw Record `json:"-"`
}

// RoomStatus 房间展示状态
type RoomStatus string

const (
	RoomStatusBooked    RoomStatus = "Booked"
	RoomStatusAvailable RoomStatus = "Available"
	RoomStatusLeft      RoomStatus = "Left"
)
