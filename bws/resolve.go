package bws

import (
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

// DefaultDocuments are tried, in order, when a path does not name a
// readable regular file.
var DefaultDocuments = []string{"index.html", "index.htm"}

var mimeTypes = map[string]string{
	"jpeg": "image/jpeg",
	"jpg":  "image/jpeg",
	"png":  "image/png",
	"gif":  "image/gif",
	"css":  "text/css",
	"js":   "text/javascript",
	"txt":  "text/plain",
}

const defaultContentType = "text/html"

// Resource is a file resolved from a request path.
type Resource struct {
	Path        string // absolute filesystem path
	Size        int64
	ModTime     time.Time
	ContentType string
}

// Open opens the resource for streaming.
func (r *Resource) Open() (*os.File, error) {
	return os.Open(r.Path)
}

// Probe describes one resolution attempt, for debug tracing.
type Probe func(candidate string, found bool)

// Resolve maps reqPath below root to a readable regular file, falling back
// to DefaultDocuments. It fails with a NotFound *StatusError.
func Resolve(root, reqPath string, probe Probe) (*Resource, error) {
	base := filepath.Join(root, filepath.FromSlash(path.Clean("/"+reqPath)))
	if abs, err := filepath.Abs(base); err == nil {
		base = abs
	}
	candidates := make([]string, 0, 1+len(DefaultDocuments))
	candidates = append(candidates, base)
	for _, name := range DefaultDocuments {
		candidates = append(candidates, base+string(filepath.Separator)+name)
	}
	for _, c := range candidates {
		info, ok := readableFile(c)
		if probe != nil {
			probe(c, ok)
		}
		if ok {
			return &Resource{
				Path:        c,
				Size:        info.Size(),
				ModTime:     info.ModTime(),
				ContentType: ContentType(c),
			}, nil
		}
	}
	return nil, statusErr(NotFound, reqPath)
}

func readableFile(name string) (os.FileInfo, bool) {
	f, err := os.Open(name)
	if err != nil {
		return nil, false
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil || !info.Mode().IsRegular() {
		return nil, false
	}
	return info, true
}

// ContentType infers a MIME type from the text after the last '.' in name.
func ContentType(name string) string {
	i := strings.LastIndexByte(name, '.')
	if i < 0 {
		return defaultContentType
	}
	if t, ok := mimeTypes[name[i+1:]]; ok {
		return t
	}
	return defaultContentType
}
