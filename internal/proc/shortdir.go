package proc

import (
	"os"
	"strings"
	"sync"

	"github.com/pranshuparmar/pinfo/internal/config"
)

var (
	commonDirNamesOnce sync.Once
	commonDirNames     map[string]struct{}
)

// CommonDirNames returns the set of directory names ShortenDir may
// abbreviate. It is read from the configuration on first use and never
// changes afterwards.
func CommonDirNames() map[string]struct{} {
	commonDirNamesOnce.Do(func() {
		names := config.Current().ProcessInfo.CommonDirNames
		commonDirNames = make(map[string]struct{}, len(names))
		for _, n := range names {
			if n = strings.TrimSpace(n); n != "" {
				commonDirNames[n] = struct{}{}
			}
		}
	})
	return commonDirNames
}

// ShortenDir abbreviates the common directory names directly above the last
// path segment to their first letter, stopping at the first segment that is
// not in common:
//
//	/home/user/project/src/module -> /home/user/project/s/module
//	/home/user/src/lib/include/foo -> /home/user/s/l/i/foo
func ShortenDir(path string, common map[string]struct{}) string {
	sep := string(os.PathSeparator)
	trimmed := strings.TrimRight(path, sep)
	if trimmed == "" {
		return path
	}

	parts := strings.Split(trimmed, sep)
	last := len(parts) - 1
	if last == 0 {
		return trimmed
	}

	keep := last - 1
	for ; keep >= 0; keep-- {
		if _, ok := common[parts[keep]]; !ok || parts[keep] == "" {
			break
		}
	}

	out := make([]string, 0, len(parts))
	out = append(out, parts[:keep+1]...)
	for _, seg := range parts[keep+1 : last] {
		out = append(out, string([]rune(seg)[0]))
	}
	out = append(out, parts[last])
	return strings.Join(out, sep)
}
