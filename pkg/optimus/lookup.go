package optimus

import "fmt"

// Lookup replaces every value found in keys with replaceBy.
func (df *DataFrame) Lookup(replaceBy string, keys []string, cols ...string) (*DataFrame, error) {
	if len(keys) == 0 {
		return nil, fmt.Errorf("%w: lookup keys must not be empty", ErrInvalidArgument)
	}
	set := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		set[k] = struct{}{}
	}
	return df.Apply(func(s string) string {
		if _, ok := set[s]; ok {
			return replaceBy
		}
		return s
	}, cols...)
}

// LookupMap replaces values using a dictionary. Values absent from the
// dictionary are left as they are.
func (df *DataFrame) LookupMap(replace map[string]string, cols ...string) (*DataFrame, error) {
	if len(replace) == 0 {
		return nil, fmt.Errorf("%w: replacement map must not be empty", ErrInvalidArgument)
	}
	return df.Apply(func(s string) string {
		if nv, ok := replace[s]; ok {
			return nv
		}
		return s
	}, cols...)
}

// EmptyStrToStr replaces empty strings with custom. Nulls are untouched.
func (df *DataFrame) EmptyStrToStr(custom string, cols ...string) (*DataFrame, error) {
	return df.Apply(func(s string) string {
		if s == "" {
			return custom
		}
		return s
	}, cols...)
}
