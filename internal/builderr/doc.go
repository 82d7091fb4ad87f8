// Package builderr defines the error kinds a generation run can fail with.
//
// Every detected configuration or consistency problem is reported as a
// *Error carrying a Kind, the offending name or path (Subject) and a
// human-readable message. Callers match kinds with errors.Is against the
// exported sentinels and recover the details with errors.As:
//
//	var berr *builderr.Error
//	if errors.As(err, &berr) && berr.Kind == builderr.KindIncludeCycle {
//	    // berr.Subject names the file that closes the cycle
//	}
//
// Errors that are not *Error (I/O failures, programmer errors) are internal
// and are propagated without special formatting.
package builderr
