package params

import "strconv"

// ResolveName returns the name a parameter requested as base receives given
// the names already in use.
//
// base itself is returned when free. Otherwise an ascending suffix starting
// at 2 is appended until the candidate is free: base2, base3, ...
func ResolveName[V any](existing map[string]V, base string) string {
	if _, taken := existing[base]; !taken {
		return base
	}
	for i := 2; ; i++ {
		candidate := base + strconv.Itoa(i)
		if _, taken := existing[candidate]; !taken {
			return candidate
		}
	}
}
