package handlers

import "net/http"

// formValue returns a pointer to the first value of a form or query field,
// or nil when the field is absent. Presence matters for partial updates:
// an absent field means "leave unchanged", an empty one means "set empty".
func formValue(r *http.Request, name string) *string {
	if vs, ok := r.Form[name]; ok && len(vs) > 0 {
		return &vs[0]
	}
	return nil
}
