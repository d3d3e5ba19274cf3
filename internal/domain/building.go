package domain

// Building 楼栋（上游可能返回对象，也可能只返回名称字符串）
type Building struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
}
