package types

// GA4 tag type identifiers
const (
	TagTypeGA4Event  = "gaawe"
	TagTypeGA4Config = "gaawc"
)

// VariableTypeEventSettings is the GA4 event settings variable type
const VariableTypeEventSettings = "gtes"

// Account is a Tag Manager account
type Account struct {
	AccountID     string `json:"accountId,omitempty"`
	Name          string `json:"name,omitempty"`
	Path          string `json:"path,omitempty"`
	TagManagerURL string `json:"tagManagerUrl,omitempty"`
}

// Container is a Tag Manager container
type Container struct {
	AccountID     string `json:"accountId,omitempty"`
	ContainerID   string `json:"containerId,omitempty"`
	Name          string `json:"name,omitempty"`
	Path          string `json:"path,omitempty"`
	PublicID      string `json:"publicId,omitempty"`
	TagManagerURL string `json:"tagManagerUrl,omitempty"`
}

// Workspace is a Tag Manager workspace
type Workspace struct {
	AccountID     string `json:"accountId,omitempty"`
	ContainerID   string `json:"containerId,omitempty"`
	WorkspaceID   string `json:"workspaceId,omitempty"`
	Name          string `json:"name,omitempty"`
	Description   string `json:"description,omitempty"`
	Path          string `json:"path,omitempty"`
	TagManagerURL string `json:"tagManagerUrl,omitempty"`
}

// SetupTag links a tag that must fire before the owning tag
type SetupTag struct {
	TagName            string `json:"tagName,omitempty"`
	StopOnSetupFailure bool   `json:"stopOnSetupFailure,omitempty"`
}

// TeardownTag links a tag that fires after the owning tag
type TeardownTag struct {
	TagName               string `json:"tagName,omitempty"`
	StopTeardownOnFailure bool   `json:"stopTeardownOnFailure,omitempty"`
}

// ConsentSettings holds the consent requirements of a tag
type ConsentSettings struct {
	ConsentStatus string     `json:"consentStatus,omitempty"`
	ConsentType   *Parameter `json:"consentType,omitempty"`
}

// Tag is a Tag Manager tag
type Tag struct {
	AccountID                    string           `json:"accountId,omitempty"`
	ContainerID                  string           `json:"containerId,omitempty"`
	WorkspaceID                  string           `json:"workspaceId,omitempty"`
	TagID                        string           `json:"tagId,omitempty"`
	Name                         string           `json:"name,omitempty"`
	Type                         string           `json:"type,omitempty"`
	Path                         string           `json:"path,omitempty"`
	Fingerprint                  string           `json:"fingerprint,omitempty"`
	TagManagerURL                string           `json:"tagManagerUrl,omitempty"`
	Notes                        string           `json:"notes,omitempty"`
	Paused                       bool             `json:"paused,omitempty"`
	LiveOnly                     bool             `json:"liveOnly,omitempty"`
	Parameter                    []Parameter      `json:"parameter,omitempty"`
	Priority                     *Parameter       `json:"priority,omitempty"`
	ScheduleStartMs              int64            `json:"scheduleStartMs,omitempty,string"`
	ScheduleEndMs                int64            `json:"scheduleEndMs,omitempty,string"`
	SetupTag                     []SetupTag       `json:"setupTag,omitempty"`
	TeardownTag                  []TeardownTag    `json:"teardownTag,omitempty"`
	TagFiringOption              string           `json:"tagFiringOption,omitempty"`
	ConsentSettings              *ConsentSettings `json:"consentSettings,omitempty"`
	MonitoringMetadata           *Parameter       `json:"monitoringMetadata,omitempty"`
	MonitoringMetadataTagNameKey string           `json:"monitoringMetadataTagNameKey,omitempty"`
	FiringTriggerID              []string         `json:"firingTriggerId,omitempty"`
	BlockingTriggerID            []string         `json:"blockingTriggerId,omitempty"`
	ParentFolderID               string           `json:"parentFolderId,omitempty"`
}

// IsGA4Event reports whether the tag is a GA4 event tag
func (t Tag) IsGA4Event() bool {
	return t.Type == TagTypeGA4Event
}

// Param returns the top level parameter with the given key
func (t Tag) Param(key string) (Parameter, bool) {
	return FindParameter(t.Parameter, key)
}

// ParamValue returns the value of a top level parameter or ""
func (t Tag) ParamValue(key string) string {
	param, _ := t.Param(key)
	return param.Value
}

// Trigger is a Tag Manager trigger
type Trigger struct {
	AccountID                      string      `json:"accountId,omitempty"`
	ContainerID                    string      `json:"containerId,omitempty"`
	WorkspaceID                    string      `json:"workspaceId,omitempty"`
	TriggerID                      string      `json:"triggerId,omitempty"`
	Name                           string      `json:"name,omitempty"`
	Type                           string      `json:"type,omitempty"`
	Path                           string      `json:"path,omitempty"`
	Fingerprint                    string      `json:"fingerprint,omitempty"`
	TagManagerURL                  string      `json:"tagManagerUrl,omitempty"`
	Notes                          string      `json:"notes,omitempty"`
	Parameter                      []Parameter `json:"parameter,omitempty"`
	CustomEventFilter              []Condition `json:"customEventFilter,omitempty"`
	Filter                         []Condition `json:"filter,omitempty"`
	AutoEventFilter                []Condition `json:"autoEventFilter,omitempty"`
	WaitForTags                    *Parameter  `json:"waitForTags,omitempty"`
	CheckValidation                *Parameter  `json:"checkValidation,omitempty"`
	WaitForTagsTimeout             *Parameter  `json:"waitForTagsTimeout,omitempty"`
	UniqueTriggerID                *Parameter  `json:"uniqueTriggerId,omitempty"`
	EventName                      *Parameter  `json:"eventName,omitempty"`
	Interval                       *Parameter  `json:"interval,omitempty"`
	Limit                          *Parameter  `json:"limit,omitempty"`
	Selector                       *Parameter  `json:"selector,omitempty"`
	IntervalSeconds                *Parameter  `json:"intervalSeconds,omitempty"`
	MaxTimerLengthSeconds          *Parameter  `json:"maxTimerLengthSeconds,omitempty"`
	VerticalScrollPercentageList   *Parameter  `json:"verticalScrollPercentageList,omitempty"`
	HorizontalScrollPercentageList *Parameter  `json:"horizontalScrollPercentageList,omitempty"`
	VisibilitySelector             *Parameter  `json:"visibilitySelector,omitempty"`
	VisiblePercentageMin           *Parameter  `json:"visiblePercentageMin,omitempty"`
	VisiblePercentageMax           *Parameter  `json:"visiblePercentageMax,omitempty"`
	ContinuousTimeMinMilliseconds  *Parameter  `json:"continuousTimeMinMilliseconds,omitempty"`
	TotalTimeMinMilliseconds       *Parameter  `json:"totalTimeMinMilliseconds,omitempty"`
}

// ScalarFields returns the non-condition, non-parameter-list fields that may
// hold variable references.
func (t Trigger) ScalarFields() []Parameter {
	candidates := []*Parameter{
		t.WaitForTags,
		t.CheckValidation,
		t.WaitForTagsTimeout,
		t.UniqueTriggerID,
		t.EventName,
		t.Interval,
		t.Limit,
		t.Selector,
		t.IntervalSeconds,
		t.MaxTimerLengthSeconds,
		t.VerticalScrollPercentageList,
		t.HorizontalScrollPercentageList,
		t.VisibilitySelector,
		t.VisiblePercentageMin,
		t.VisiblePercentageMax,
		t.ContinuousTimeMinMilliseconds,
		t.TotalTimeMinMilliseconds,
	}
	fields := make([]Parameter, 0, len(candidates))
	for _, candidate := range candidates {
		if candidate != nil {
			fields = append(fields, *candidate)
		}
	}
	return fields
}

// Conditions returns every filter clause of the trigger
func (t Trigger) Conditions() []Condition {
	conditions := make([]Condition, 0, len(t.CustomEventFilter)+len(t.Filter)+len(t.AutoEventFilter))
	conditions = append(conditions, t.CustomEventFilter...)
	conditions = append(conditions, t.Filter...)
	conditions = append(conditions, t.AutoEventFilter...)
	return conditions
}

// FormatValue holds the output conversions of a variable
type FormatValue struct {
	CaseConversionType      string     `json:"caseConversionType,omitempty"`
	ConvertNullToValue      *Parameter `json:"convertNullToValue,omitempty"`
	ConvertUndefinedToValue *Parameter `json:"convertUndefinedToValue,omitempty"`
	ConvertTrueToValue      *Parameter `json:"convertTrueToValue,omitempty"`
	ConvertFalseToValue     *Parameter `json:"convertFalseToValue,omitempty"`
}

// Conversions returns the populated conversion overrides
func (f *FormatValue) Conversions() []Parameter {
	if f == nil {
		return nil
	}
	var conversions []Parameter
	for _, candidate := range []*Parameter{
		f.ConvertNullToValue,
		f.ConvertUndefinedToValue,
		f.ConvertTrueToValue,
		f.ConvertFalseToValue,
	} {
		if candidate != nil {
			conversions = append(conversions, *candidate)
		}
	}
	return conversions
}

// Variable is a Tag Manager user-defined variable
type Variable struct {
	AccountID     string       `json:"accountId,omitempty"`
	ContainerID   string       `json:"containerId,omitempty"`
	WorkspaceID   string       `json:"workspaceId,omitempty"`
	VariableID    string       `json:"variableId,omitempty"`
	Name          string       `json:"name,omitempty"`
	Type          string       `json:"type,omitempty"`
	Path          string       `json:"path,omitempty"`
	Fingerprint   string       `json:"fingerprint,omitempty"`
	TagManagerURL string       `json:"tagManagerUrl,omitempty"`
	Notes         string       `json:"notes,omitempty"`
	Parameter     []Parameter  `json:"parameter,omitempty"`
	FormatValue   *FormatValue `json:"formatValue,omitempty"`
}

// BuiltInVariable is an enabled built-in variable of a workspace
type BuiltInVariable struct {
	Name string `json:"name,omitempty"`
	Type string `json:"type,omitempty"`
	Path string `json:"path,omitempty"`
}
