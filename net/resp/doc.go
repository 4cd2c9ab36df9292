// Package resp writes the JSON responses of the local dashboard API.
//
// Successful reads return the payload as is. Screen submits return
//
//	{"redirect": "/dashboard/news", "message": "...", "data": {...}}
//
// and failures return
//
//	{"code": -401, "message": "Title is required", "errors": {"title": "..."}}
//
// with the HTTP status derived from the ecode.
package resp
