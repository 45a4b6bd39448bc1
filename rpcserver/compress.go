package rpcserver

import (
	"io"
	"net/http"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/gin-gonic/gin"
	"github.com/klauspost/compress/gzip"
	"github.com/sat20-labs/emission/common"
)

const (
	ENCODING_BROTLI = "br"
	ENCODING_GZIP   = "gzip"
)

type compressWriter struct {
	gin.ResponseWriter
	encoding string
	w        io.WriteCloser
}

func (p *compressWriter) start() {
	if p.w != nil {
		return
	}
	h := p.ResponseWriter.Header()
	h.Set(CONTENT_ENCODING, p.encoding)
	h.Add(VARY, "Accept-Encoding")
	h.Del("Content-Length")
	switch p.encoding {
	case ENCODING_BROTLI:
		p.w = brotli.NewWriterLevel(p.ResponseWriter, brotli.DefaultCompression)
	default:
		gz, err := gzip.NewWriterLevel(p.ResponseWriter, gzip.DefaultCompression)
		if err != nil {
			common.Log.Errorf("gzip writer: %v", err)
			gz = gzip.NewWriter(p.ResponseWriter)
		}
		p.w = gz
	}
}

func (p *compressWriter) Write(data []byte) (int, error) {
	p.start()
	return p.w.Write(data)
}

func (p *compressWriter) WriteString(s string) (int, error) {
	return p.Write([]byte(s))
}

func (p *compressWriter) WriteHeader(code int) {
	p.ResponseWriter.Header().Del("Content-Length")
	p.ResponseWriter.WriteHeader(code)
}

func (p *compressWriter) close() {
	if p.w == nil {
		return
	}
	if err := p.w.Close(); err != nil {
		common.Log.Errorf("flush %s response failed: %v", p.encoding, err)
	}
}

func acceptedEncoding(header string) string {
	var gz bool
	for _, part := range strings.Split(header, ",") {
		enc := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		switch enc {
		case ENCODING_BROTLI:
			return ENCODING_BROTLI
		case ENCODING_GZIP:
			gz = true
		}
	}
	if gz {
		return ENCODING_GZIP
	}
	return ""
}

// CompressionMiddleware encodes response bodies with brotli when the client
// accepts it, otherwise gzip.
func CompressionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodHead {
			c.Next()
			return
		}
		enc := acceptedEncoding(c.GetHeader("Accept-Encoding"))
		if enc == "" {
			c.Next()
			return
		}
		cw := &compressWriter{ResponseWriter: c.Writer, encoding: enc}
		c.Writer = cw
		defer cw.close()
		c.Next()
	}
}
