package core

import "strconv"

// LookupInt parses cfg[key] into dst when present.
func LookupInt(cfg map[string]string, key string, dst *int) error {
	v, ok := cfg[key]
	if !ok {
		return nil
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return ParseError(key, v, err)
	}
	*dst = parsed
	return nil
}

// LookupFloat parses cfg[key] into dst when present.
func LookupFloat(cfg map[string]string, key string, dst *float64) error {
	v, ok := cfg[key]
	if !ok {
		return nil
	}
	parsed, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return ParseError(key, v, err)
	}
	*dst = parsed
	return nil
}

// LookupSeed parses an optional seed. An empty value clears dst so the
// generator picks a random seed.
func LookupSeed(cfg map[string]string, key string, dst **int64) error {
	v, ok := cfg[key]
	if !ok {
		return nil
	}
	if v == "" {
		*dst = nil
		return nil
	}
	parsed, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return ParseError(key, v, err)
	}
	*dst = &parsed
	return nil
}

// SeedPtr returns a pointer to seed, for building configs inline.
func SeedPtr(seed int64) *int64 { return &seed }
