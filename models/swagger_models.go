package models

// APIResponse 通用API响应
type APIResponse struct {
	Code    int         `json:"code" example:"0"`
	Message string      `json:"message" example:"success"`
	Data    interface{} `json:"data,omitempty"`
}

// SearchRequest /api/search 请求体
type SearchRequest struct {
	JobTitle string `json:"job_title" example:"Software Engineer"`
	Location string `json:"location" example:"San Francisco, CA"`
	Industry string `json:"industry" example:"Technology"`
}

// SearchResponseData /api/search 响应数据
type SearchResponseData struct {
	Count   int             `json:"count" example:"1"`
	Summary string          `json:"summary" example:"Found 1 profile"`
	Results []ProfileResult `json:"results"`
}

// StateResponseData /api/state 响应数据
type StateResponseData struct {
	State         string          `json:"state" example:"results"` // idle / searching / results
	Form          SearchCriteria  `json:"form"`
	Results       []ProfileResult `json:"results"`
	Decisions     map[string]bool `json:"decisions"`
	Keys          []string        `json:"keys"` // 与results按下标对齐的记录key
	View          ResultsView     `json:"view" example:"selection"`
	AllDecided    bool            `json:"all_decided"`
	SelectedCount int             `json:"selected_count"`
	CanDeepDive   bool            `json:"can_deep_dive"`
	NoResults     bool            `json:"no_results"` // 搜索成功但没有结果
}
