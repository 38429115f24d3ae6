// internal/domain/models/stats.go
package models

// AdminStats feeds the admin dashboard cards.
type AdminStats struct {
	TotalUsers       int     `json:"totalUsers"`
	TotalInstructors int     `json:"totalInstructors"`
	TotalStudents    int     `json:"totalStudents"`
	TotalCourses     int     `json:"totalCourses"`
	PendingCourses   int     `json:"pendingCourses"`
	TotalBookings    int     `json:"totalBookings"`
	TotalRevenue     float64 `json:"totalRevenue"`
}

// RevenuePoint is one bar of the revenue chart.
type RevenuePoint struct {
	Period   string  `json:"period"`
	Revenue  float64 `json:"revenue"`
	Bookings int     `json:"bookings"`
}

// InstructorStats feeds the instructor dashboard.
type InstructorStats struct {
	TotalCourses     int       `json:"totalCourses"`
	TotalStudents    int       `json:"totalStudents"`
	TotalSessions    int       `json:"totalSessions"`
	TotalRevenue     float64   `json:"totalRevenue"`
	AverageRating    float64   `json:"averageRating"`
	UpcomingSessions []Session `json:"upcomingSessions"`
}

// ReportTypes are the exports the API can produce.
var ReportTypes = []string{"revenue", "bookings", "users", "courses"}

// ReportFormats are the file formats the API can produce.
var ReportFormats = []string{"csv", "pdf"}
