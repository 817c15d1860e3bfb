package testutil

import (
	"strconv"
	"strings"
	"sync/atomic"
	"testing"
)

// maxDatabaseName keeps generated names under MongoDB's 63 byte limit.
const maxDatabaseName = 63

var databaseSeq atomic.Uint64

// DatabaseName returns a database name unique to t. Characters MongoDB
// rejects in database names are replaced with underscores.
func DatabaseName(t testing.TB) string {
	t.Helper()
	return databaseName(t.Name(), databaseSeq.Add(1))
}

func databaseName(testName string, seq uint64) string {
	suffix := "_" + strconv.FormatUint(seq, 10)
	name := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			return r
		default:
			return '_'
		}
	}, "pr_"+testName)
	if len(name)+len(suffix) > maxDatabaseName {
		name = name[:maxDatabaseName-len(suffix)]
	}
	return name + suffix
}
