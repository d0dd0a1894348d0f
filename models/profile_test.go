package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileResultUnmarshalSpacedKeys(t *testing.T) {
	raw := `{
		"Name": "Ada Lovelace",
		"Location": "London",
		"Job Title": "Engineer",
		"Company": "Analytical Engines",
		"Description": "First programmer",
		"Linkedin URL": "https://linkedin.com/in/ada",
		"Linkedin Followers": 1200
	}`

	var p ProfileResult
	require.NoError(t, json.Unmarshal([]byte(raw), &p))

	assert.Equal(t, "Ada Lovelace", p.Name)
	assert.Equal(t, "Engineer", p.JobTitle)
	assert.Equal(t, "https://linkedin.com/in/ada", p.LinkedinURL)
	assert.Equal(t, "1200", p.LinkedinFollowers)
	assert.True(t, p.HasFollowers())
}

func TestProfileResultUnmarshalMissingFields(t *testing.T) {
	var p ProfileResult
	require.NoError(t, json.Unmarshal([]byte(`{"Name": "Only Name", "Company": null, "extra": true}`), &p))

	assert.Equal(t, ProfileResult{Name: "Only Name"}, p)
	assert.False(t, p.HasFollowers())
}

func TestProfileResultUnmarshalNonObject(t *testing.T) {
	var list []ProfileResult
	require.NoError(t, json.Unmarshal([]byte(`[{"Name": "A"}, "junk", 42]`), &list))

	require.Len(t, list, 3)
	assert.Equal(t, "A", list[0].Name)
	assert.Equal(t, ProfileResult{}, list[1])
	assert.Equal(t, ProfileResult{}, list[2])
}

func TestProfileResultMarshalKeepsUpstreamNames(t *testing.T) {
	b, err := json.Marshal(ProfileResult{Name: "A", JobTitle: "CTO", LinkedinURL: "u"})
	require.NoError(t, err)

	s := string(b)
	assert.Contains(t, s, `"Job Title":"CTO"`)
	assert.Contains(t, s, `"Linkedin URL":"u"`)
	assert.NotContains(t, s, "Linkedin Followers")
}

func TestSearchCriteriaSnakeCase(t *testing.T) {
	b, err := json.Marshal(SearchCriteria{JobTitle: "Engineer", Location: "NYC", Industry: "Tech"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"job_title":"Engineer","location":"NYC","industry":"Tech"}`, string(b))
}
