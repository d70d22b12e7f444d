// Package policy decides which record fields an admin may edit.
//
// Editability is a pure function of three inputs: the admin's department
// (from the stored session), the field name, and whether the owning screen is
// in edit mode. Departments outside the known set are normalized to the
// carrier profile, so unrecognized authorization data always degrades to the
// most restrictive behavior.
//
// The package holds no state and performs no I/O, which keeps the whole
// (department x field x mode) product unit-testable.
package policy
