// Companydesk - Company Directory Browsing Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/companydesk

package middleware

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"
	"sync"
)

// CompressMinSize is the smallest body that gets gzipped. Smaller bodies
// are written as-is.
const CompressMinSize = 1024

// compressibleTypes are Content-Type prefixes worth compressing.
var compressibleTypes = []string{
	"application/json",
	"text/",
}

// gzipWriterPool pools gzip writers to reduce allocations
var gzipWriterPool = sync.Pool{
	New: func() interface{} {
		return gzip.NewWriter(io.Discard)
	},
}

// gzipResponseWriter buffers up to CompressMinSize bytes before deciding
// whether to compress. The status line is deferred until that decision.
type gzipResponseWriter struct {
	http.ResponseWriter
	gz          *gzip.Writer
	buf         []byte
	status      int
	wroteHeader bool
}

func (w *gzipResponseWriter) WriteHeader(status int) {
	if w.status == 0 {
		w.status = status
	}
}

func (w *gzipResponseWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	if w.wroteHeader {
		if w.gz != nil {
			return w.gz.Write(b)
		}
		return w.ResponseWriter.Write(b)
	}

	w.buf = append(w.buf, b...)
	if len(w.buf) < CompressMinSize {
		return len(b), nil
	}
	if err := w.commit(true); err != nil {
		return 0, err
	}
	return len(b), nil
}

// commit sends the deferred header and the buffered bytes, gzipped when
// large is set and the content type allows it.
func (w *gzipResponseWriter) commit(large bool) error {
	w.wroteHeader = true
	if w.status == 0 {
		w.status = http.StatusOK
	}

	h := w.Header()
	if large && h.Get("Content-Encoding") == "" && isCompressible(h.Get("Content-Type")) {
		h.Set("Content-Encoding", "gzip")
		h.Add("Vary", "Accept-Encoding")
		h.Del("Content-Length")

		w.gz = gzipWriterPool.Get().(*gzip.Writer)
		w.gz.Reset(w.ResponseWriter)
		w.ResponseWriter.WriteHeader(w.status)
		_, err := w.gz.Write(w.buf)
		w.buf = nil
		return err
	}

	w.ResponseWriter.WriteHeader(w.status)
	if len(w.buf) == 0 {
		return nil
	}
	_, err := w.ResponseWriter.Write(w.buf)
	w.buf = nil
	return err
}

// finish flushes whatever is still pending once the handler returns.
func (w *gzipResponseWriter) finish() {
	if !w.wroteHeader {
		_ = w.commit(false)
		return
	}
	if w.gz != nil {
		_ = w.gz.Close()
		gzipWriterPool.Put(w.gz)
		w.gz = nil
	}
}

func isCompressible(contentType string) bool {
	ct := strings.ToLower(contentType)
	for _, prefix := range compressibleTypes {
		if strings.HasPrefix(ct, prefix) {
			return true
		}
	}
	return false
}

// Compression gzips JSON and text responses of at least CompressMinSize
// bytes for clients that send Accept-Encoding: gzip.
func Compression(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.Header.Get("Accept-Encoding"), "gzip") {
			next(w, r)
			return
		}

		gzw := &gzipResponseWriter{ResponseWriter: w}
		defer gzw.finish()
		next(gzw, r)
	}
}
