// Package version exposes build metadata set through ldflags:
//
//	go build -ldflags "\
//	  -X github.com/ncobase/newsdesk/version.Version=1.2.3 \
//	  -X github.com/ncobase/newsdesk/version.Branch=main \
//	  -X github.com/ncobase/newsdesk/version.Revision=abc1234 \
//	  -X 'github.com/ncobase/newsdesk/version.BuiltAt=$(date)'" ./cmd/newsdesk
package version
