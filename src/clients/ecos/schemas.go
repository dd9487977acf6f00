package ecos

// StatisticQuery selects one statistic item over a period. Start and End use the
// period format of Frequency (YYYYMMDD for D, YYYYMM for M).
type StatisticQuery struct {
	StatCode  string
	Frequency string
	Start     string
	End       string
	ItemCode  string
}

type StatisticRow struct {
	StatCode  string `json:"STAT_CODE"`
	StatName  string `json:"STAT_NAME"`
	ItemCode1 string `json:"ITEM_CODE1"`
	ItemName1 string `json:"ITEM_NAME1"`
	UnitName  string `json:"UNIT_NAME"`
	Time      string `json:"TIME"`
	DataValue string `json:"DATA_VALUE"`
}

type StatisticSearch struct {
	ListTotalCount int            `json:"list_total_count"`
	Rows           []StatisticRow `json:"row"`
}

type Result struct {
	Code    string `json:"CODE"`
	Message string `json:"MESSAGE"`
}

type GetStatisticSearchResponse struct {
	StatisticSearch *StatisticSearch `json:"StatisticSearch,omitempty"`
	Result          *Result          `json:"RESULT,omitempty"`
}
