package jsonmap

// Object is a JSON object that keeps its members in insertion order.
// Parse produces *Object for every object in the input, and Stringify
// emits its members in that order.
type Object struct {
	keys   []string
	values map[string]any
}

// NewObject creates an empty object
func NewObject() *Object {
	return &Object{values: make(map[string]any)}
}

// ObjectOf builds an object from alternating keys and values.
// It panics if a key is not a string.
func ObjectOf(pairs ...any) *Object {
	o := NewObject()
	for i := 0; i+1 < len(pairs); i += 2 {
		o.Set(pairs[i].(string), pairs[i+1])
	}
	return o
}

// Set stores value under key. A key that is already present keeps its
// position and takes the new value.
func (o *Object) Set(key string, value any) {
	if o.values == nil {
		o.values = make(map[string]any)
	}
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = value
}

// Get returns the value stored under key
func (o *Object) Get(key string) (any, bool) {
	if o == nil {
		return nil, false
	}
	v, ok := o.values[key]
	return v, ok
}

// Len returns the number of members
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.keys)
}

// Keys returns the member names in insertion order
func (o *Object) Keys() []string {
	if o == nil {
		return nil
	}
	keys := make([]string, len(o.keys))
	copy(keys, o.keys)
	return keys
}

// Range calls fn for each member in order until fn returns false
func (o *Object) Range(fn func(key string, value any) bool) {
	if o == nil {
		return
	}
	for _, key := range o.keys {
		if !fn(key, o.values[key]) {
			return
		}
	}
}

// Plain converts parsed data into the shapes encoding/json decodes to:
// every *Object becomes a map[string]any, recursively. Other values are
// returned as they are.
func Plain(value any) any {
	switch v := value.(type) {
	case *Object:
		if v == nil {
			return nil
		}
		m := make(map[string]any, v.Len())
		v.Range(func(key string, item any) bool {
			m[key] = Plain(item)
			return true
		})
		return m
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = Plain(item)
		}
		return out
	default:
		return v
	}
}
