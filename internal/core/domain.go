package core

const (
	StatusPlanning   ProjectStatus = "Planning"
	StatusInProgress ProjectStatus = "In Progress"
	StatusCompleted  ProjectStatus = "Completed"
	StatusOnHold     ProjectStatus = "On Hold"
)

const (
	CategoryTeam      ExpenseCategory = "Team"
	CategoryTools     ExpenseCategory = "Tools"
	CategoryVendor    ExpenseCategory = "Vendor"
	CategoryMarketing ExpenseCategory = "Marketing"
)

const (
	RoleAdmin   Role = "Admin"
	RoleManager Role = "Manager"
	RoleViewer  Role = "Viewer"
)

// UnknownClient is the display name used when a project's client id
// resolves to no stored client.
const UnknownClient = "Unknown Client"

type (
	ProjectStatus   string
	ExpenseCategory string
	Role            string

	Client struct {
		ID        string `json:"id"`
		Nickname  string `json:"nickname"`
		Address   string `json:"address"`
		City      string `json:"city"`
		CreatedAt string `json:"createdAt"`
	}

	Project struct {
		ID        string        `json:"id"`
		Name      string        `json:"name"`
		ClientID  string        `json:"clientId"`
		StartDate string        `json:"startDate"`
		EndDate   string        `json:"endDate,omitempty"`
		Status    ProjectStatus `json:"status"`
	}

	IncomeTransaction struct {
		ID          string  `json:"id"`
		ClientID    string  `json:"clientId"`
		Amount      float64 `json:"amount"`
		Date        string  `json:"date"`
		Description string  `json:"description"`
		ProjectID   string  `json:"projectId,omitempty"`
	}

	Expense struct {
		ID          string          `json:"id"`
		Category    ExpenseCategory `json:"category"`
		Amount      float64         `json:"amount"`
		ProjectID   string          `json:"projectId,omitempty"`
		Date        string          `json:"date"`
		Description string          `json:"description"`
	}

	User struct {
		ID        string `json:"id"`
		Username  string `json:"username"`
		Role      Role   `json:"role"`
		CreatedAt string `json:"createdAt"`
	}

	// DashboardStats is recomputed on every request, never persisted.
	DashboardStats struct {
		TotalClients   int     `json:"totalClients"`
		TotalProjects  int     `json:"totalProjects"`
		TotalIncome    float64 `json:"totalIncome"`
		TotalExpenses  float64 `json:"totalExpenses"`
		TotalProfit    float64 `json:"totalProfit"`
		ActiveProjects int     `json:"activeProjects"`
	}

	// ProjectProfit is the per-project profitability breakdown.
	ProjectProfit struct {
		ProjectID     string  `json:"projectId"`
		ProjectName   string  `json:"projectName"`
		ClientName    string  `json:"clientName"`
		TotalIncome   float64 `json:"totalIncome"`
		TotalExpenses float64 `json:"totalExpenses"`
		Profit        float64 `json:"profit"`
		ProfitMargin  float64 `json:"profitMargin"`
	}
)

// IsActive reports whether the project counts toward the dashboard's active
// total. Planning is counted alongside In Progress on purpose; the dashboard
// has always shown it that way.
func (p Project) IsActive() bool {
	return p.Status == StatusInProgress || p.Status == StatusPlanning
}
