package extract

import (
	"io"

	"github.com/rxlsgo/rxls/cell"
	"github.com/rxlsgo/rxls/sharedstrings"
	"github.com/rxlsgo/rxls/style"
)

// XLSXAsync mirrors XLSX but decouples XML decoding from cell consumption: a
// goroutine drives the decode loop and sends cells through a buffered
// channel, closing it (the sentinel) once decoding finishes or the reader is
// exhausted. bufSize <= 0 defaults to 64.
//
// This is the channel-based counterpart to the SAX thread/queue decoupling
// in the reference reader, reworked around Go channels instead of a
// background thread and a blocking queue.
func XLSXAsync(r io.Reader, shared *sharedstrings.Table, styles *style.Catalog, opts Options, bufSize int) <-chan cell.Cell {
	if bufSize <= 0 {
		bufSize = 64
	}
	out := make(chan cell.Cell, bufSize)
	go func() {
		defer close(out)
		for c := range XLSX(r, shared, styles, opts) {
			out <- c
		}
	}()
	return out
}
