package models

// SheetName is sent with every submission so the backend writes to the right spreadsheet tab
const SheetName = "Twitch"

// Field names as they appear in forms, payloads and validation error maps
const (
	FieldName             = "name"
	FieldEmail            = "email"
	FieldTwitchUsername   = "twitchUsername"
	FieldCurrentFollowers = "currentFollowers"
	FieldPlan             = "plan"
	FieldMessage          = "message"
)

// FollowerRange is one option of the current followers select
type FollowerRange struct {
	Value string
	Label string
}

// FollowerRanges lists the accepted current follower labels
var FollowerRanges = []FollowerRange{
	{Value: "0-50", Label: "0-50 followers"},
	{Value: "51-100", Label: "51-100 followers"},
	{Value: "101-500", Label: "101-500 followers"},
	{Value: "500+", Label: "500+ followers"},
}

// IsValidFollowerRange checks the value against FollowerRanges
func IsValidFollowerRange(value string) bool {
	for _, r := range FollowerRanges {
		if r.Value == value {
			return true
		}
	}
	return false
}

// LeadFormData is everything the prospect enters in the lead form
type LeadFormData struct {
	Name             string   `json:"name"`
	Email            string   `json:"email"`
	TwitchUsername   string   `json:"twitchUsername"`
	CurrentFollowers string   `json:"currentFollowers"`
	Plan             Plan     `json:"plan"`
	Message          string   `json:"message"`
	Goals            []string `json:"goals"`
	AttachmentURL    string   `json:"url"`
}

// NewLeadFormData returns empty form data with the plan preselected
func NewLeadFormData(plan Plan) LeadFormData {
	return LeadFormData{
		Plan:  plan,
		Goals: []string{},
	}
}

// HasGoal reports whether the label is currently selected
func (d *LeadFormData) HasGoal(label string) bool {
	for _, g := range d.Goals {
		if g == label {
			return true
		}
	}
	return false
}

// Clone returns a copy that does not share the goals slice
func (d LeadFormData) Clone() LeadFormData {
	goals := make([]string, len(d.Goals))
	copy(goals, d.Goals)
	d.Goals = goals
	return d
}

// LeadSubmission is the JSON body sent to the submission backend
type LeadSubmission struct {
	LeadFormData
	SheetName string `json:"sheetName"`
}

// NewLeadSubmission wraps form data with the fixed sheet name. Goals always serialize as an array.
func NewLeadSubmission(data LeadFormData) LeadSubmission {
	data = data.Clone()
	return LeadSubmission{
		LeadFormData: data,
		SheetName:    SheetName,
	}
}
