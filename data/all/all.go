// Package all registers every store driver at once.
//
//	import _ "github.com/ncobase/newsdesk/data/all"
package all

import (
	_ "github.com/ncobase/newsdesk/data/file"
	_ "github.com/ncobase/newsdesk/data/redis"
	_ "github.com/ncobase/newsdesk/data/sqlite"
)
