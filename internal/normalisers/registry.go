package normalisers

import (
	"fmt"
	"strings"

	"github.com/clindex-labs/clindex-cli/internal/core/ports/driven"
)

// Ensure Registry implements the interface.
var _ driven.NormaliserRegistry = (*Registry)(nil)

// Registry resolves normalisers by MIME type. When several normalisers
// claim a type the highest priority wins; unknown types fall back to the
// plaintext normaliser.
type Registry struct {
	byMIME   map[string]driven.Normaliser
	fallback driven.Normaliser
}

// NewRegistry creates a registry over the given normalisers. The
// fallback handles MIME types no normaliser claims.
func NewRegistry(fallback driven.Normaliser, normalisers ...driven.Normaliser) *Registry {
	r := &Registry{
		byMIME:   make(map[string]driven.Normaliser),
		fallback: fallback,
	}

	all := append([]driven.Normaliser{fallback}, normalisers...)
	for _, n := range all {
		for _, mime := range n.SupportedMIMETypes() {
			mime = strings.ToLower(mime)
			if existing, ok := r.byMIME[mime]; ok && existing.Priority() >= n.Priority() {
				continue
			}
			r.byMIME[mime] = n
		}
	}

	return r
}

// Resolve returns the normaliser for the MIME type. Parameters such as
// "; charset=utf-8" are ignored.
func (r *Registry) Resolve(mimeType string) (driven.Normaliser, error) {
	mime := strings.ToLower(strings.TrimSpace(mimeType))
	if i := strings.Index(mime, ";"); i >= 0 {
		mime = strings.TrimSpace(mime[:i])
	}

	if n, ok := r.byMIME[mime]; ok {
		return n, nil
	}
	if r.fallback != nil {
		return r.fallback, nil
	}
	return nil, fmt.Errorf("no normaliser for MIME type %q", mimeType)
}
