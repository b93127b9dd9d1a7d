package dto

type NameCount struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

type ReportedPost struct {
	ID      uint   `json:"id"`
	Message string `json:"message"`
	Sender  string `json:"sender"`
}

type AdminStatsResponse struct {
	TotalShoutouts  int64            `json:"total_shoutouts"`
	TopGivers       []NameCount      `json:"top_givers"`
	MostTagged      []NameCount      `json:"most_tagged"`
	DepartmentStats map[string]int64 `json:"department_stats"`
	ReportedPosts   []ReportedPost   `json:"reported_posts"`
}

// CreateUserRequest is the admin-dashboard variant of registration. The
// admin_secret field still works, matching self-service registration.
type CreateUserRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Department  string `json:"department"`
	AdminSecret string `json:"admin_secret"`
}
