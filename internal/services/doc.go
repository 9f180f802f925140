// Package services implements the business logic between the HTTP handlers
// and the filter engine.
//
// FilterService keeps the session: up to two loaded tables, in the slots
// "first" and "second". Each mode reads the stored tables, runs the pure
// functions of package filter and returns new tables, so concurrent requests
// only contend on the slot lock:
//
//	svc := services.NewFilterService(loader, workbook, cols, logger)
//	svc.LoadTable(ctx, services.SlotFirst, "day1.csv", f1)
//	svc.LoadTable(ctx, services.SlotSecond, "day2.csv", f2)
//	res, err := svc.Highlight(ctx, domain.DefaultFilterOptions())
//
// A mode that needs an empty slot fails with ErrTableNotLoaded before the
// engine runs.
package services
