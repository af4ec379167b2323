package client

import (
	"net/http"
	"sort"
	"strings"

	"github.com/alessio/shellescape"
)

type commandBuilder []string

func (b *commandBuilder) add(args ...string) {
	for _, a := range args {
		*b = append(*b, shellescape.Quote(a))
	}
}

func (b commandBuilder) String() string {
	return strings.Join(b, " ")
}

// CurlCommand returns a shell command that repeats a request, for pasting into a terminal
// when investigating a failure. Headers are written in sorted order.
func CurlCommand(method, url string, headers http.Header, body []byte) string {
	var b commandBuilder
	b.add("curl", "-X", method)
	names := make([]string, 0, len(headers))
	for name := range headers {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		for _, v := range headers[name] {
			b.add("-H", name+": "+v)
		}
	}
	if len(body) > 0 {
		b.add("-d", string(body))
	}
	b.add(url)
	return b.String()
}
