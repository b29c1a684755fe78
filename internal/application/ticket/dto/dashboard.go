package dto

// MonthLabels and WeekdayLabels name the dashboard chart buckets.
var (
	MonthLabels   = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}
	WeekdayLabels = []string{"M", "T", "W", "Th", "F"}
)

type StatusCountsDTO struct {
	Pending    int `json:"pending"`
	InProgress int `json:"in_progress"`
	Completed  int `json:"completed"`
	Total      int `json:"total"`
}

type TopTitleDTO struct {
	Rank        int    `json:"rank"`
	TitleID     uint   `json:"title_id"`
	TitleName   string `json:"title_name"`
	TicketCount int    `json:"ticket_count"`
}

type DashboardDTO struct {
	SiteID        *uint           `json:"site_id,omitempty"`
	Year          *int            `json:"year,omitempty"`
	Years         []int           `json:"years"`
	Counts        StatusCountsDTO `json:"counts"`
	TopTitles     []TopTitleDTO   `json:"top_titles"`
	Months        []string        `json:"months"`
	MonthCounts   []int           `json:"month_counts"`
	Weekdays      []string        `json:"weekdays"`
	WeekdayCounts []int           `json:"weekday_counts"`
}
