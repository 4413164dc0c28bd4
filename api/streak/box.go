package streak

// Box is a record in a pipeline, such as a deal or a ticket.
type Box struct {
	Key         string  `json:"key"`
	BoxKey      string  `json:"boxKey"`
	PipelineKey string  `json:"pipelineKey"`
	StageKey    string  `json:"stageKey"`
	CreatorKey  string  `json:"creatorKey"`
	Name        string  `json:"name"`
	Notes       *string `json:"notes"`

	CreationTimestamp        int64  `json:"creationTimestamp"`
	LastUpdatedTimestamp     int64  `json:"lastUpdatedTimestamp"`
	LastSavedTimestamp       int64  `json:"lastSavedTimestamp"`
	LastStageChangeTimestamp int64  `json:"lastStageChangeTimestamp"`
	LastCommentTimestamp     *int64 `json:"lastCommentTimestamp"`

	TotalNumberOfEmails         int `json:"totalNumberOfEmails"`
	TotalNumberOfSentEmails     int `json:"totalNumberOfSentEmails"`
	TotalNumberOfReceivedEmails int `json:"totalNumberOfReceivedEmails"`

	AssignedToSharingEntries []SharingEntry `json:"assignedToSharingEntries"`
	CreatorSharingEntry      SharingEntry   `json:"creatorSharingEntry"`
	FollowerSharingEntries   []SharingEntry `json:"followerSharingEntries"`
	FollowerKeys             []string       `json:"followerKeys"`
	LinkedBoxKeys            []string       `json:"linkedBoxKeys"`

	EmailAddressesAutoExtracted []string `json:"emailAddressesAutoExtracted"`
	EmailAddressesBlacklist     []string `json:"emailAddressesBlacklist"`
	EmailAddresses              []string `json:"emailAddresses"`

	TaskCompleteCount   int `json:"taskCompleteCount"`
	TaskIncompleteCount int `json:"taskIncompleteCount"`
	TaskOverdueCount    int `json:"taskOverdueCount"`
	TaskTotal           int `json:"taskTotal"`

	CallLogCount              int `json:"callLogCount"`
	MeetingNotesCount         int `json:"meetingNotesCount"`
	TotalCallLogDuration      int `json:"totalCallLogDuration"`
	TotalMeetingNotesDuration int `json:"totalMeetingNotesDuration"`
	FollowerCount             int `json:"followerCount"`
	CommentCount              int `json:"commentCount"`
	GmailThreadCount          int `json:"gmailThreadCount"`
	FileCount                 int `json:"fileCount"`

	// Fields holds custom field values keyed by PipelineField.Key.
	Fields    map[string]FieldValue `json:"fields"`
	Contacts  []ContactRef          `json:"contacts,omitempty"`
	Freshness float64               `json:"freshness"`
}

// Field returns the value of the custom field with the given key.
// ok is false when the box has no such field or the value is null.
func (b *Box) Field(key string) (value FieldValue, ok bool) {
	value, ok = b.Fields[key]
	return value, ok && value.IsSet()
}

// SharingEntry identifies a Streak user attached to a box.
type SharingEntry struct {
	DisplayName string `json:"displayName"`
	FullName    string `json:"fullName"`
	Email       string `json:"email"`
	Image       string `json:"image"`
	UserKey     string `json:"userKey"`
}

// ContactRef links a box to a contact. Fetch the contact with Client.GetContact.
type ContactRef struct {
	Key       string `json:"key"`
	IsStarred bool   `json:"isStarred"`
}
