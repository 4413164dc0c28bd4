package streak

import "strings"

// Contact is a person record, served by the v2 API.
type Contact struct {
	Key                string   `json:"key"`
	TeamKey            string   `json:"teamKey"`
	GivenName          string   `json:"givenName"`
	FamilyName         string   `json:"familyName"`
	Title              *string  `json:"title"`
	EmailAddresses     []string `json:"emailAddresses"`
	PhoneNumbers       []string `json:"phoneNumbers"`
	LastSavedUserKey   string   `json:"lastSavedUserKey"`
	CreatorKey         string   `json:"creatorKey"`
	CreationDate       int64    `json:"creationDate"`
	VersionTimestamp   int64    `json:"versionTimestamp"`
	LastSavedTimestamp int64    `json:"lastSavedTimestamp"`
}

// FullName joins the given and family names, skipping empty parts.
func (c *Contact) FullName() string {
	return strings.TrimSpace(c.GivenName + " " + c.FamilyName)
}
