package preview

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
)

// Response is a rendered payload ready to be written: renderer output plus
// the content type negotiated by the route.
type Response struct {
	Status      int
	ContentType string
	Body        []byte
}

// ErrorResponse is the JSON envelope error payloads are written with.
type ErrorResponse struct {
	Status   int    `json:"-"`
	ErrorMsg string `json:"error_msg"`
}

// LogWriter pairs a response writer with its request so handlers can write
// payloads and log failures with method/path context.
type LogWriter struct {
	logger *log.Logger
	rw     http.ResponseWriter
	r      *http.Request
}

// NewLogWriter wraps the writer/request pair for one request.
func NewLogWriter(l *log.Logger, rw http.ResponseWriter, r *http.Request) *LogWriter {
	return &LogWriter{logger: l, rw: rw, r: r}
}

func (w *LogWriter) log(format string, v ...any) {
	w.logger.Printf("%s %s: %s", w.r.Method, w.r.URL.Path, fmt.Sprintf(format, v...))
}

// Write sends the response payload with its content type.
func (w *LogWriter) Write(resp Response) {
	if resp.ContentType != "" {
		w.rw.Header().Set("Content-Type", resp.ContentType)
	}
	w.rw.WriteHeader(resp.Status)
	if _, err := w.rw.Write(resp.Body); err != nil {
		w.log("write response: %v", err)
	}
}

// WriteError sends a JSON error envelope and logs the underlying error.
func (w *LogWriter) WriteError(status int, err error) {
	w.log("%v", err)

	resp := ErrorResponse{Status: status, ErrorMsg: http.StatusText(status)}
	w.rw.Header().Set("Content-Type", "application/json")
	w.rw.WriteHeader(resp.Status)
	if encodeErr := json.NewEncoder(w.rw).Encode(resp); encodeErr != nil {
		w.log("write error response: %v", encodeErr)
	}
}
