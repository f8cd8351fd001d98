// Copyright 2020 The Bankfeed Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package banks

// Institutions with their own quirks register here. Adding a case means
// appending an adapter, never branching in a caller.
var adapters = []Adapter{
	ING{},
	AmericanExpress{},
	SEBKort{},
	BancSabadell{},
}

var byInstitution = make(map[string]Adapter)

func init() {
	for _, adapter := range adapters {
		for _, id := range adapter.InstitutionIDs() {
			byInstitution[id] = adapter
		}
	}
}

// ForInstitution returns the adapter registered for institutionID, or
// Fallback when there isn't one. Resolution is total: an unknown institution
// is a normal, supported case, not an error.
func ForInstitution(institutionID string) Adapter {
	if adapter, ok := byInstitution[institutionID]; ok {
		return adapter
	}
	return Fallback{}
}
