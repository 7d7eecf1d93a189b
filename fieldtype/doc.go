// Package fieldtype provides the semantic normalizers applied to candidate
// text once a finder has located it.
//
// Each field has a [Type], and each type has a [Handler] obtained from [New]:
//
//	h, err := fieldtype.New(fieldtype.TypeDate, fieldtype.Options{})
//	raw, ok := h.FindValue(h.Preprocess("DOB: O1/I5/2O2O"))
//	v, ok := h.Extract(raw) // 2020-01-15
//
// Handlers tolerate the usual OCR confusions (1 read as I or l, 0 read as
// o or O, words run together) and report unrecognizable text as absent
// rather than as an error. Handlers are safe for concurrent use.
package fieldtype
