// Package http implements the HTTP request handlers of the chngfilter
// service. Handlers are a thin layer over services.FilterService: they parse
// and validate the request, call the service and format the response.
//
// # Routes
//
//	POST   /api/tables/{slot}      upload a CSV or XLSX file (multipart field "file")
//	GET    /api/tables             describe the loaded tables
//	DELETE /api/tables/{slot}      empty a slot
//	POST   /api/filter/split       positive and negative subsets of the first table
//	POST   /api/filter/highlight   rows of the second table picked by the first
//	POST   /api/export/split       the split workbook as an attachment
//	POST   /api/export/highlight   the highlight workbook as an attachment
//	GET    /api/health
//	GET    /api/version
//
// The filter and export endpoints take an optional FilterRequest body; an
// empty body runs with the default thresholds and exclusion switches.
//
// # Error Handling
//
// Errors are rendered by errors.ErrorHandler as RFC 7807 Problem Details:
//
//	{
//	    "type": "/errors/table/not-loaded",
//	    "title": "Unprocessable Entity",
//	    "status": 422,
//	    "detail": "table \"second\" has not been loaded",
//	    "instance": "/api/filter/highlight",
//	    "error_code": "TABLE_NOT_LOADED"
//	}
//
// # Testing
//
// Handlers are tested with httptest against a real FilterService, so a test
// uploads fixtures and then exercises the filter routes.
package http
