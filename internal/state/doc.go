// Package state holds the fetched list data shared between screens.
//
// The store is a mutex-guarded snapshot of the last ticket and quote pages.
// List screens write into it after every user-initiated fetch; the ticket
// detail screen resolves the selected record from it. Reads and writes copy
// slices defensively so no screen can alias another's data. There is no
// background refresh; every update is driven by a user action.
package state
