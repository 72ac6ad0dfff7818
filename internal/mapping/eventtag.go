package mapping

import (
	"strconv"
	"strings"

	"github.com/yairfalse/tagsync/pkg/types"
)

// GA4 event tag parameter keys
const (
	KeyEventName             = "eventName"
	KeyMeasurementID         = "measurementId"
	KeyMeasurementIDOverride = "measurementIdOverride"
	KeySendEcommerceData     = "sendEcommerceData"
	KeyGetEcommerceDataFrom  = "getEcommerceDataFrom"
	KeyEcommerceMacroData    = "ecommerceMacroData"
	KeyEventSettingsVariable = "eventSettingsVariable"
)

const (
	ecommerceFromDataLayer    = "dataLayer"
	ecommerceFromCustomObject = "customObject"
	consentNeeded             = "needed"
)

// managedKeys are rebuilt from the row on every write; every other
// parameter of an existing tag is carried over untouched.
var managedKeys = map[string]bool{
	KeyEventName:             true,
	KeyMeasurementID:         true,
	KeyMeasurementIDOverride: true,
	KeySendEcommerceData:     true,
	KeyGetEcommerceDataFrom:  true,
	KeyEcommerceMacroData:    true,
	KeyEventSettingsVariable: true,
}

// IsManagedKey reports whether the event tag row owns the parameter key
func IsManagedKey(key string) bool {
	return managedKeys[key]
}

// Event Tag Settings columns
const (
	ColWorkspaceName = iota
	ColWorkspacePath
	ColTagName
	ColTagID
	ColPaused
	ColEventName
	ColSendEcommerce
	ColEcommerceSource
	ColMeasurementID
	ColEventSettingsVariable
	ColPriority
	ColScheduleStart
	ColScheduleEnd
	ColLiveOnly
	ColSetupTag
	ColStopOnSetupFailure
	ColTeardownTag
	ColStopTeardownOnFailure
	ColTagFiringOption
	ColConsentStatus
	ColConsentTypes
	ColMonitoringMetadataKey
	ColFiringTriggers
	ColBlockingTriggers

	EventTagWriteWidth
)

// EventTagReadWidth adds the create, update and delete checkboxes
const EventTagReadWidth = EventTagWriteWidth + 3

// EventTagActions reads the three trailing action checkboxes
func EventTagActions(row types.Row) (create, update, remove bool) {
	return row.FlagFromEnd(3), row.FlagFromEnd(2), row.FlagFromEnd(1)
}

// EventTagRow renders a GA4 event tag. It fails only when a trigger id
// cannot be named.
func EventTagRow(ws WorkspaceRef, tag types.Tag, ix *TriggerIndex) (types.Row, error) {
	row := types.NewRow(EventTagWriteWidth)

	row[ColWorkspaceName] = ws.Name
	row[ColWorkspacePath] = ws.Path
	row[ColTagName] = tag.Name
	row[ColTagID] = tag.TagID
	row[ColPaused] = boolCell(tag.Paused)
	row[ColEventName] = tag.ParamValue(KeyEventName)

	if send, ok := tag.Param(KeySendEcommerceData); ok {
		row[ColSendEcommerce] = boolCell(strings.EqualFold(send.Value, "true"))
	}
	if from, ok := tag.Param(KeyGetEcommerceDataFrom); ok {
		if from.Value == ecommerceFromDataLayer {
			row[ColEcommerceSource] = ecommerceFromDataLayer
		} else {
			row[ColEcommerceSource] = tag.ParamValue(KeyEcommerceMacroData)
		}
	}

	row[ColMeasurementID] = tag.ParamValue(KeyMeasurementIDOverride)
	row[ColEventSettingsVariable] = tag.ParamValue(KeyEventSettingsVariable)
	if tag.Priority != nil {
		row[ColPriority] = tag.Priority.Value
	}
	row[ColScheduleStart] = int64Cell(tag.ScheduleStartMs)
	row[ColScheduleEnd] = int64Cell(tag.ScheduleEndMs)
	row[ColLiveOnly] = boolCell(tag.LiveOnly)

	if len(tag.SetupTag) > 0 {
		row[ColSetupTag] = tag.SetupTag[0].TagName
		row[ColStopOnSetupFailure] = boolCell(tag.SetupTag[0].StopOnSetupFailure)
	}
	if len(tag.TeardownTag) > 0 {
		row[ColTeardownTag] = tag.TeardownTag[0].TagName
		row[ColStopTeardownOnFailure] = boolCell(tag.TeardownTag[0].StopTeardownOnFailure)
	}

	row[ColTagFiringOption] = tag.TagFiringOption
	if consent := tag.ConsentSettings; consent != nil {
		row[ColConsentStatus] = consent.ConsentStatus
		if consent.ConsentStatus == consentNeeded && consent.ConsentType != nil {
			var consentTypes []string
			for _, entry := range consent.ConsentType.List {
				consentTypes = append(consentTypes, entry.Value)
			}
			row[ColConsentTypes] = strings.Join(consentTypes, ", ")
		}
	}
	row[ColMonitoringMetadataKey] = tag.MonitoringMetadataTagNameKey

	var err error
	if row[ColFiringTriggers], err = ix.JoinedNames(tag.FiringTriggerID); err != nil {
		return nil, err
	}
	if row[ColBlockingTriggers], err = ix.JoinedNames(tag.BlockingTriggerID); err != nil {
		return nil, err
	}

	return row, nil
}

// EventTagFromRow builds the tag payload a row describes. When current is
// set, its unmanaged parameters follow the managed ones. Only a trigger name
// that does not resolve is an error.
func EventTagFromRow(row types.Row, ix *TriggerIndex, current *types.Tag) (types.Tag, error) {
	firing, err := ix.IDs(row.Cell(ColFiringTriggers))
	if err != nil {
		return types.Tag{}, err
	}
	blocking, err := ix.IDs(row.Cell(ColBlockingTriggers))
	if err != nil {
		return types.Tag{}, err
	}

	tag := types.Tag{
		Type:                         types.TagTypeGA4Event,
		Name:                         row.Cell(ColTagName),
		Paused:                       row.Flag(ColPaused),
		LiveOnly:                     row.Flag(ColLiveOnly),
		TagFiringOption:              row.Cell(ColTagFiringOption),
		MonitoringMetadataTagNameKey: row.Cell(ColMonitoringMetadataKey),
		FiringTriggerID:              firing,
		BlockingTriggerID:            blocking,
		Parameter:                    eventTagParameters(row),
	}

	if priority, ok := parseDigits(row.Cell(ColPriority)); ok {
		tag.Priority = &types.Parameter{Type: types.ParameterInteger, Value: strconv.FormatInt(priority, 10)}
	}
	if start, ok := parseDigits(row.Cell(ColScheduleStart)); ok {
		tag.ScheduleStartMs = start
	}
	if end, ok := parseDigits(row.Cell(ColScheduleEnd)); ok {
		tag.ScheduleEndMs = end
	}

	if name := row.Cell(ColSetupTag); name != "" {
		tag.SetupTag = []types.SetupTag{{
			TagName:            name,
			StopOnSetupFailure: row.Flag(ColStopOnSetupFailure),
		}}
	}
	if name := row.Cell(ColTeardownTag); name != "" {
		tag.TeardownTag = []types.TeardownTag{{
			TagName:               name,
			StopTeardownOnFailure: row.Flag(ColStopTeardownOnFailure),
		}}
	}

	if status := row.Cell(ColConsentStatus); status != "" {
		tag.ConsentSettings = &types.ConsentSettings{ConsentStatus: status}
		if consentTypes := splitList(row.Cell(ColConsentTypes)); status == consentNeeded && len(consentTypes) > 0 {
			list := make([]types.Parameter, 0, len(consentTypes))
			for _, consentType := range consentTypes {
				list = append(list, types.Parameter{Type: types.ParameterTemplate, Value: consentType})
			}
			tag.ConsentSettings.ConsentType = &types.Parameter{Type: types.ParameterList, List: list}
		}
	}

	if current != nil {
		for _, param := range current.Parameter {
			if !IsManagedKey(param.Key) {
				tag.Parameter = append(tag.Parameter, param)
			}
		}
	}

	return tag, nil
}

func eventTagParameters(row types.Row) []types.Parameter {
	params := []types.Parameter{types.Template(KeyEventName, row.Cell(ColEventName))}

	if id := row.Cell(ColMeasurementID); id != "" {
		params = append(params, types.Template(KeyMeasurementIDOverride, id))
	}
	if variable := row.Cell(ColEventSettingsVariable); variable != "" {
		params = append(params, types.Template(KeyEventSettingsVariable, variable))
	}

	if row.Flag(ColSendEcommerce) {
		params = append(params, types.Parameter{Type: types.ParameterBoolean, Key: KeySendEcommerceData, Value: "true"})
		switch source := row.Cell(ColEcommerceSource); source {
		case "", ecommerceFromDataLayer:
			params = append(params, types.Template(KeyGetEcommerceDataFrom, ecommerceFromDataLayer))
		default:
			params = append(params,
				types.Template(KeyEcommerceMacroData, source),
				types.Template(KeyGetEcommerceDataFrom, ecommerceFromCustomObject),
			)
		}
	}

	return params
}
