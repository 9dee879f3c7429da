package engine

import (
	"bufio"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rzarajczyk/actions-server/pkg/response"
)

// wireProto is the protocol version written on every status line. The
// connection is closed after each response, which delimits the body.
const wireProto = "HTTP/1.0"

var headerValueSanitizer = strings.NewReplacer("\r", " ", "\n", " ")

// writeResponse writes the status line, every header in order, an empty line
// and the body. No headers are added.
func writeResponse(w io.Writer, status int, headers response.Headers, body []byte) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%s %d %s\r\n", wireProto, status, http.StatusText(status))
	for _, h := range headers {
		fmt.Fprintf(bw, "%s: %s\r\n", h.Name, headerValueSanitizer.Replace(h.Value))
	}
	_, _ = bw.WriteString("\r\n")
	_, _ = bw.Write(body)
	return bw.Flush()
}
