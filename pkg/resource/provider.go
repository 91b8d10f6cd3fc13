// Package resource loads raw file data by (filename, resource group).
package resource

import (
	"os"
	"path"
	"path/filepath"
	"sort"
	"sync"

	guierrors "github.com/go-drift/facet/pkg/errors"
)

// Provider loads raw resource data. Every successful Load must be paired
// with an Unload of the returned slice.
type Provider interface {
	// Load reads filename from group ("" means the default group).
	Load(filename, group string) ([]byte, error)
	Unload(data []byte)
	// Files lists names in group matching the path.Match pattern.
	Files(pattern, group string) ([]string, error)
}

// tracker counts outstanding loads.
type tracker struct {
	mu          sync.Mutex
	outstanding int
}

func (t *tracker) loaded() {
	t.mu.Lock()
	t.outstanding++
	t.mu.Unlock()
}

func (t *tracker) unloaded() {
	t.mu.Lock()
	if t.outstanding > 0 {
		t.outstanding--
	}
	t.mu.Unlock()
}

// Outstanding returns the number of loads not yet unloaded.
func (t *tracker) Outstanding() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.outstanding
}

// DirProvider maps resource groups to directories on disk.
type DirProvider struct {
	tracker
	groups       map[string]string
	defaultGroup string
}

// NewDirProvider returns a provider whose default group reads from dir.
func NewDirProvider(dir string) *DirProvider {
	p := &DirProvider{groups: map[string]string{}}
	p.SetGroupDirectory("", dir)
	return p
}

// SetGroupDirectory assigns dir to group.
func (p *DirProvider) SetGroupDirectory(group, dir string) {
	p.groups[group] = dir
}

// GroupDirectory returns the directory of group.
func (p *DirProvider) GroupDirectory(group string) (string, bool) {
	d, ok := p.groups[p.resolve(group)]
	return d, ok
}

// SetDefaultGroup sets the group used when Load is given "".
func (p *DirProvider) SetDefaultGroup(group string) {
	p.defaultGroup = group
}

// DefaultGroup returns the default group name.
func (p *DirProvider) DefaultGroup() string {
	return p.defaultGroup
}

// Groups returns the group names in sorted order.
func (p *DirProvider) Groups() []string {
	names := make([]string, 0, len(p.groups))
	for g := range p.groups {
		names = append(names, g)
	}
	sort.Strings(names)
	return names
}

func (p *DirProvider) resolve(group string) string {
	if group == "" {
		return p.defaultGroup
	}
	return group
}

func (p *DirProvider) path(filename, group string) string {
	if filepath.IsAbs(filename) {
		return filename
	}
	return filepath.Join(p.groups[p.resolve(group)], filepath.FromSlash(filename))
}

// Load reads the file from disk.
func (p *DirProvider) Load(filename, group string) ([]byte, error) {
	if filename == "" {
		return nil, guierrors.InvalidRequestf("resource.Load", filename, "empty filename")
	}
	data, err := os.ReadFile(p.path(filename, group))
	if err != nil {
		return nil, guierrors.FileIO("resource.Load", filename, err)
	}
	p.loaded()
	return data, nil
}

// Unload releases data returned by Load.
func (p *DirProvider) Unload(data []byte) {
	p.unloaded()
}

// Files lists the group directory entries matching pattern.
func (p *DirProvider) Files(pattern, group string) ([]string, error) {
	dir := p.groups[p.resolve(group)]
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, guierrors.FileIO("resource.Files", dir, err)
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ok, err := path.Match(pattern, e.Name())
		if err != nil {
			return nil, guierrors.InvalidRequest("resource.Files", pattern, err)
		}
		if ok {
			out = append(out, e.Name())
		}
	}
	return out, nil
}

// MemoryProvider serves files held in memory, keyed by group and name.
type MemoryProvider struct {
	tracker
	files map[string]map[string][]byte
}

// NewMemoryProvider returns an empty provider.
func NewMemoryProvider() *MemoryProvider {
	return &MemoryProvider{files: map[string]map[string][]byte{}}
}

// Add stores data as filename in group.
func (p *MemoryProvider) Add(group, filename string, data []byte) *MemoryProvider {
	g := p.files[group]
	if g == nil {
		g = map[string][]byte{}
		p.files[group] = g
	}
	g[filename] = data
	return p
}

// AddString stores text as filename in group.
func (p *MemoryProvider) AddString(group, filename, text string) *MemoryProvider {
	return p.Add(group, filename, []byte(text))
}

// Load returns a copy of the stored data.
func (p *MemoryProvider) Load(filename, group string) ([]byte, error) {
	data, ok := p.files[group][filename]
	if !ok {
		return nil, guierrors.FileIO("resource.Load", filename, os.ErrNotExist)
	}
	p.loaded()
	return append([]byte(nil), data...), nil
}

// Unload releases data returned by Load.
func (p *MemoryProvider) Unload(data []byte) {
	p.unloaded()
}

// Files lists stored names in group matching pattern.
func (p *MemoryProvider) Files(pattern, group string) ([]string, error) {
	var out []string
	for name := range p.files[group] {
		ok, err := path.Match(pattern, name)
		if err != nil {
			return nil, guierrors.InvalidRequest("resource.Files", pattern, err)
		}
		if ok {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out, nil
}

// WithData loads filename, passes the data to fn and unloads it again.
func WithData(p Provider, filename, group string, fn func([]byte) error) error {
	data, err := p.Load(filename, group)
	if err != nil {
		return err
	}
	defer p.Unload(data)
	return fn(data)
}
