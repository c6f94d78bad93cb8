// FILE: lixenwraith/deconfig/ini.go
package deconfig

import (
	"errors"
	"fmt"
	"sync"

	"gopkg.in/ini.v1"
)

var (
	iniDefaultsMu   sync.RWMutex
	iniDefaultFiles []string
)

// SetDefaultIniFiles sets files read by every IniAdapter in addition to its
// own, unless the adapter or the field overrides them. Like the adapter
// registry it is meant to be set during start-up.
func SetDefaultIniFiles(paths ...string) {
	iniDefaultsMu.Lock()
	iniDefaultFiles = append([]string(nil), paths...)
	iniDefaultsMu.Unlock()
}

func defaultIniPaths() []string {
	iniDefaultsMu.RLock()
	defer iniDefaultsMu.RUnlock()
	return append([]string(nil), iniDefaultFiles...)
}

// A delimiter that never appears in section names turns off parent lookup.
var iniLoadOptions = ini.LoadOptions{
	Loose:                 true,
	InsensitiveKeys:       true,
	ChildSectionDelimiter: "\x00",
}

// IniFieldOptions customizes how one field is read by IniAdapter.
type IniFieldOptions struct {
	Option        string   // Option name, defaults to the field name
	Section       string   // Section, defaults to the adapter section
	Files         []string // Extra files for this field
	OverrideFiles bool     // Use only Files, ignoring default and adapter files
}

type iniFieldKey struct{}

// IniField attaches IniFieldOptions to a field.
func IniField(o IniFieldOptions) Modifier {
	return func(m *MethodBuilder) {
		o.Files = append([]string(nil), o.Files...)
		m.Option(iniFieldKey{}, o)
	}
}

// IniOption configures an IniAdapter.
type IniOption func(a *IniAdapter)

// IniFiles adds files read by the adapter.
func IniFiles(paths ...string) IniOption {
	return func(a *IniAdapter) {
		a.files = append(a.files, paths...)
	}
}

// IniOverrideFiles makes the adapter ignore the default files.
func IniOverrideFiles() IniOption {
	return func(a *IniAdapter) {
		a.overrideFiles = true
	}
}

// IniAdapter resolves fields from a section of one or more INI files.
// Files are re-read on every access, later files override earlier ones,
// missing files are ignored and option names are case-insensitive.
// Options missing from the section are read from [DEFAULT]. Dotted section
// names are plain names: [server.http] does not inherit from [server].
type IniAdapter struct {
	section       string
	files         []string
	overrideFiles bool
}

// NewIniAdapter creates an adapter reading section.
func NewIniAdapter(section string, opts ...IniOption) *IniAdapter {
	a := &IniAdapter{section: section}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Name implements Named.
func (a *IniAdapter) Name() string { return "ini" }

// Files returns the file list used for a field, in load order.
func (a *IniAdapter) Files(field *Field) ([]string, error) {
	return a.filesFor(iniOptions(field))
}

func (a *IniAdapter) filesFor(o *IniFieldOptions) ([]string, error) {
	var files []string
	if !a.overrideFiles {
		files = append(files, defaultIniPaths()...)
	}
	files = append(files, a.files...)
	if o != nil {
		if o.OverrideFiles {
			files = nil
		}
		files = append(files, o.Files...)
	}
	if len(files) == 0 {
		return nil, errors.New("no INI files specified")
	}
	return files, nil
}

func iniOptions(field *Field) *IniFieldOptions {
	if v, ok := field.Option(iniFieldKey{}); ok {
		o := v.(IniFieldOptions)
		return &o
	}
	return nil
}

// GetField implements Adapter.
func (a *IniAdapter) GetField(name string, field *Field, _ ...any) (any, error) {
	section, option := a.section, name
	o := iniOptions(field)
	if o != nil {
		if o.Section != "" {
			section = o.Section
		}
		if o.Option != "" {
			option = o.Option
		}
	}
	if section == "" {
		return nil, errors.New("no section name specified")
	}

	files, err := a.filesFor(o)
	if err != nil {
		return nil, err
	}

	sources := make([]any, len(files))
	for i, f := range files {
		sources[i] = f
	}

	cfg, err := ini.LoadSources(iniLoadOptions, sources[0], sources[1:]...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse INI files %v: %w", files, err)
	}

	sec, err := cfg.GetSection(section)
	if err != nil {
		return nil, notFoundf("section %s not found in %v", section, files)
	}
	key, err := sec.GetKey(option)
	if err != nil {
		if key, err = cfg.Section(ini.DefaultSection).GetKey(option); err != nil {
			return nil, notFoundf("field %s not found in %s section of %v", option, section, files)
		}
	}
	return key.String(), nil
}
