package streak

import (
	"encoding/json"

	"github.com/lexfrei/go-streak/internal/apierrors"
)

// SearchParams are the query parameters of the search endpoint. Nil and
// empty fields are left out of the query string. The API expects Query or
// Name to be set; start from SearchQuery or SearchName.
type SearchParams struct {
	// Query searches box contents.
	Query *string `url:"query,omitempty"`
	// Name searches box names.
	Name *string `url:"name,omitempty"`
	Page *int    `url:"page,omitempty"`
	// PipelineKeys and StageKeys restrict results. Each key is sent as a
	// separate parameter.
	PipelineKeys []string `url:"pipelineKey,omitempty"`
	StageKeys    []string `url:"stageKey,omitempty"`
}

// SearchQuery returns params searching box contents for query.
func SearchQuery(query string) SearchParams {
	return SearchParams{Query: String(query)}
}

// SearchName returns params searching box names for name.
func SearchName(name string) SearchParams {
	return SearchParams{Name: String(name)}
}

// WithPage returns a copy of p requesting the given page.
func (p SearchParams) WithPage(page int) SearchParams {
	p.Page = Int(page)
	return p
}

// InPipelines returns a copy of p restricted to the given pipelines.
func (p SearchParams) InPipelines(pipelineKeys ...string) SearchParams {
	p.PipelineKeys = append(p.PipelineKeys[:len(p.PipelineKeys):len(p.PipelineKeys)], pipelineKeys...)
	return p
}

// InStages returns a copy of p restricted to the given stages.
func (p SearchParams) InStages(stageKeys ...string) SearchParams {
	p.StageKeys = append(p.StageKeys[:len(p.StageKeys):len(p.StageKeys)], stageKeys...)
	return p
}

// SearchResult is the response of the search endpoint. Hits are kept as raw
// JSON since their fields differ by entity type.
type SearchResult struct {
	Results SearchResults `json:"results"`
}

// SearchResults groups hits by entity type. Empty groups are omitted.
type SearchResults struct {
	Boxes         []json.RawMessage `json:"boxes,omitempty"`
	Contacts      []json.RawMessage `json:"contacts,omitempty"`
	Organizations []json.RawMessage `json:"organizations,omitempty"`
}

// DecodeBoxes decodes the box hits. Fields absent from a hit are left zero.
func (r *SearchResults) DecodeBoxes() ([]Box, error) {
	boxes := make([]Box, 0, len(r.Boxes))
	for _, raw := range r.Boxes {
		var b Box
		if err := json.Unmarshal(raw, &b); err != nil {
			return nil, apierrors.Mark(err, apierrors.ErrJSONParse, "failed to decode box search hit")
		}
		boxes = append(boxes, b)
	}
	return boxes, nil
}

// DecodeContacts decodes the contact hits.
func (r *SearchResults) DecodeContacts() ([]Contact, error) {
	contacts := make([]Contact, 0, len(r.Contacts))
	for _, raw := range r.Contacts {
		var c Contact
		if err := json.Unmarshal(raw, &c); err != nil {
			return nil, apierrors.Mark(err, apierrors.ErrJSONParse, "failed to decode contact search hit")
		}
		contacts = append(contacts, c)
	}
	return contacts, nil
}
