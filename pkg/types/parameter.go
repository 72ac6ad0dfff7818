package types

// ParameterType is the Tag Manager parameter type discriminator
type ParameterType string

const (
	ParameterTemplate         ParameterType = "template"
	ParameterBoolean          ParameterType = "boolean"
	ParameterInteger          ParameterType = "integer"
	ParameterList             ParameterType = "list"
	ParameterMap              ParameterType = "map"
	ParameterTagReference     ParameterType = "tagReference"
	ParameterTriggerReference ParameterType = "triggerReference"
)

// ParameterShape classifies a parameter node for tree traversal
type ParameterShape int

const (
	ShapeScalar ParameterShape = iota
	ShapeList
	ShapeMap
)

// Parameter is a node of a Tag Manager parameter tree. Scalars carry Value,
// lists carry List entries and maps carry named Map fields.
type Parameter struct {
	Type            ParameterType `json:"type,omitempty"`
	Key             string        `json:"key,omitempty"`
	Value           string        `json:"value,omitempty"`
	List            []Parameter   `json:"list,omitempty"`
	Map             []Parameter   `json:"map,omitempty"`
	IsWeakReference bool          `json:"isWeakReference,omitempty"`
}

// Condition is a trigger filter clause; its arguments are nested parameters
type Condition struct {
	Type      string      `json:"type,omitempty"`
	Parameter []Parameter `json:"parameter,omitempty"`
}

// Shape returns the variant of the parameter
func (p Parameter) Shape() ParameterShape {
	switch {
	case p.Type == ParameterList || (p.Type == "" && len(p.List) > 0):
		return ShapeList
	case p.Type == ParameterMap || (p.Type == "" && len(p.Map) > 0):
		return ShapeMap
	default:
		return ShapeScalar
	}
}

// Children returns the nested entries of a list or map parameter
func (p Parameter) Children() []Parameter {
	children := make([]Parameter, 0, len(p.List)+len(p.Map))
	children = append(children, p.List...)
	children = append(children, p.Map...)
	return children
}

// Field returns the map entry with the given key
func (p Parameter) Field(key string) (Parameter, bool) {
	return FindParameter(p.Map, key)
}

// FindParameter returns the first parameter with the given key
func FindParameter(params []Parameter, key string) (Parameter, bool) {
	for _, param := range params {
		if param.Key == key {
			return param, true
		}
	}
	return Parameter{}, false
}

// Template builds a keyed template parameter
func Template(key, value string) Parameter {
	return Parameter{Type: ParameterTemplate, Key: key, Value: value}
}

// NameValueMap builds the {name, value} map entry used by event parameter
// and user property tables.
func NameValueMap(name, value string) Parameter {
	return Parameter{
		Type: ParameterMap,
		Map: []Parameter{
			Template("name", name),
			Template("value", value),
		},
	}
}

// NameValue returns the name and value fields of a map entry. Entries are
// matched by key so field order does not matter.
func (p Parameter) NameValue() (string, string) {
	name, _ := p.Field("name")
	value, _ := p.Field("value")
	return name.Value, value.Value
}

// Walk visits every node of the parameter trees depth first and stops as
// soon as visit returns true. It reports whether any visit returned true.
func Walk(params []Parameter, visit func(Parameter) bool) bool {
	for _, param := range params {
		if visit(param) {
			return true
		}
		if Walk(param.Children(), visit) {
			return true
		}
	}
	return false
}

// WalkConditions visits the nested parameters of every condition
func WalkConditions(conditions []Condition, visit func(Parameter) bool) bool {
	for _, condition := range conditions {
		if Walk(condition.Parameter, visit) {
			return true
		}
	}
	return false
}
