package scenario

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"path"
	"strings"

	"github.com/viant/afs"
	_ "github.com/viant/afs/embed"
	"github.com/viant/afs/storage"
	"gopkg.in/yaml.v3"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

const (
	builtinBaseURL = "embed:///builtin"
	extension      = ".yaml"
)

// Loader loads scenarios from any afs supported URL
type Loader struct {
	fs      afs.Service
	options []storage.Option
}

// Load loads and validates a scenario. The name defaults to the file name
// without extension.
func (l *Loader) Load(ctx context.Context, URL string) (*Scenario, error) {
	data, err := l.fs.DownloadWithURL(ctx, URL, l.options...)
	if err != nil {
		return nil, fmt.Errorf("failed to load scenario %v: %w", URL, err)
	}
	return decode(URL, data)
}

// Builtin loads an embedded scenario by name
func (l *Loader) Builtin(ctx context.Context, name string) (*Scenario, error) {
	URL := builtinBaseURL + "/" + name + extension
	data, err := l.fs.DownloadWithURL(ctx, URL, &builtinFS)
	if err != nil {
		return nil, fmt.Errorf("unknown builtin scenario %q: %w", name, err)
	}
	return decode(URL, data)
}

// Resolve loads a builtin scenario when nameOrURL names one, otherwise it
// loads nameOrURL as URL
func (l *Loader) Resolve(ctx context.Context, nameOrURL string) (*Scenario, error) {
	for _, name := range Builtins() {
		if name == nameOrURL {
			return l.Builtin(ctx, name)
		}
	}
	return l.Load(ctx, nameOrURL)
}

// Builtins returns sorted names of embedded scenarios
func Builtins() []string {
	entries, err := builtinFS.ReadDir("builtin")
	if err != nil {
		return nil
	}
	var result []string
	for _, entry := range entries {
		if name, ok := strings.CutSuffix(entry.Name(), extension); ok {
			result = append(result, name)
		}
	}
	return result
}

func decode(URL string, data []byte) (*Scenario, error) {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	ret := &Scenario{}
	if err := decoder.Decode(ret); err != nil {
		return nil, fmt.Errorf("failed to decode scenario %v: %w", URL, err)
	}
	if ret.Name == "" {
		ret.Name = strings.TrimSuffix(path.Base(URL), path.Ext(URL))
	}
	if err := ret.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scenario %v: %w", URL, err)
	}
	return ret, nil
}

// NewLoader creates a scenario loader; options are passed to every download
func NewLoader(options ...storage.Option) *Loader {
	return &Loader{fs: afs.New(), options: options}
}
