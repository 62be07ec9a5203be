package dto

// DashboardSummary is the aggregate served to the dashboard landing page.
// AvgMargin and TotalCost are rounded to 2 decimals like every other
// monetary value the API reports.
type DashboardSummary struct {
	TotalRecipes     int64   `json:"totalRecipes"`
	AvgMargin        float64 `json:"avgMargin"`
	TotalIngredients int64   `json:"totalIngredients"`
	TotalCost        float64 `json:"totalCost"`
}
