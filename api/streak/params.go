package streak

// ListBoxesParams are the optional query parameters of ListBoxes.
type ListBoxesParams struct {
	Page     *int    `url:"page,omitempty"`
	Limit    *int    `url:"limit,omitempty"`
	SortBy   *string `url:"sortBy,omitempty"`
	StageKey *string `url:"stageKey,omitempty"`
}

// String returns a pointer to v, for optional parameters.
func String(v string) *string { return &v }

// Int returns a pointer to v, for optional parameters.
func Int(v int) *int { return &v }
