package streak

// Pipeline is a Streak pipeline: a workflow with custom fields and ordered stages.
type Pipeline struct {
	Key         string          `json:"key"`
	PipelineKey string          `json:"pipelineKey"`
	CreatorKey  string          `json:"creatorKey"`
	Name        string          `json:"name"`
	Description *string         `json:"description"`
	OrgWide     bool            `json:"orgWide"`
	Fields      []PipelineField `json:"fields"`
	// Stages is keyed by stage key. StageOrder gives the display order.
	Stages     map[string]Stage `json:"stages"`
	StageOrder []string         `json:"stageOrder"`
	ACLEntries []ACLEntry       `json:"aclEntries"`
	Owner      *ACLEntry        `json:"owner"`

	// Returned by the API but not documented.
	TeamKey                 string `json:"teamKey"`
	TeamWide                bool   `json:"teamWide"`
	CreationTimestamp       int64  `json:"creationTimestamp"`
	LastUpdatedTimestamp    int64  `json:"lastUpdatedTimestamp"`
	LastSavedTimestamp      int64  `json:"lastSavedTimestamp"`
	BoxCountHint            int    `json:"boxCountHint"`
	BoxCount                int    `json:"boxCount"`
	SharingRestrictedToOrg  bool   `json:"sharingRestrictedToOrg"`
	SharingRestrictedToTeam bool   `json:"sharingRestrictedToTeam"`
}

// OrderedStages returns the stages in StageOrder. Keys without a matching
// stage are skipped.
func (p *Pipeline) OrderedStages() []Stage {
	stages := make([]Stage, 0, len(p.StageOrder))
	for _, key := range p.StageOrder {
		if stage, ok := p.Stages[key]; ok {
			stages = append(stages, stage)
		}
	}
	return stages
}

// Field returns the pipeline field definition with the given key.
func (p *Pipeline) Field(key string) (PipelineField, bool) {
	for _, f := range p.Fields {
		if f.Key == key {
			return f, true
		}
	}
	return PipelineField{}, false
}

// PipelineField describes a custom column of a pipeline. Box.Fields holds
// its values, keyed by Key.
type PipelineField struct {
	Name                 string            `json:"name"`
	Key                  string            `json:"key"`
	Type                 string            `json:"type"`
	LastUpdatedTimestamp *int64            `json:"lastUpdatedTimestamp,omitempty"`
	DropdownSettings     *DropdownSettings `json:"dropdownSettings,omitempty"`
}

// DropdownSettings lists the choices of a dropdown field.
type DropdownSettings struct {
	Items []DropdownItem `json:"items"`
}

// DropdownItem is one dropdown choice. A box stores its Key as the field value.
type DropdownItem struct {
	Key  string `json:"key"`
	Name string `json:"name"`
}

// Stage is one step of a pipeline.
type Stage struct {
	Name     string     `json:"name"`
	Key      string     `json:"key"`
	Color    StageColor `json:"color"`
	BoxCount int        `json:"boxCount"`
}

// StageColor holds the CSS colors a stage is drawn with.
type StageColor struct {
	ForegroundColor string `json:"foregroundColor"`
	BackgroundColor string `json:"backgroundColor"`
}

// ACLEntry is a user a pipeline is shared with.
type ACLEntry struct {
	FullName    string `json:"fullName"`
	Email       string `json:"email"`
	IsOwner     *bool  `json:"isOwner,omitempty"`
	Image       string `json:"image"`
	DisplayName string `json:"displayName"`
	UserKey     string `json:"userKey"`
	// PermissionSetName is e.g. "OWNER" or "EDITOR".
	PermissionSetName string `json:"permissionSetName"`
}
