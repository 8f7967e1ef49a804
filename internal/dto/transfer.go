package dto

// ImportResult collects the outcome of a bulk CSV import. Row-level problems
// land in Errors; they never abort the rows that already succeeded.
type ImportResult struct {
	Success int      `json:"success"`
	Errors  []string `json:"errors"`
}
