package gui

import (
	"slices"

	"github.com/go-drift/facet/pkg/resource"
)

// Poll applies resource changes seen by the watcher since the last call:
// look-and-feel files loaded by a scheme are reloaded. It returns the
// changes it saw. Without a watcher it does nothing.
func (s *System) Poll() []resource.Change {
	if s.watcher == nil {
		return nil
	}
	for _, err := range s.watcher.Errors() {
		s.logger.Warn("resource watch failed", "error", err)
	}
	changes := s.watcher.Poll()
	for _, c := range changes {
		if c.Kind == resource.ChangeRemoved {
			continue
		}
		if _, ok := s.lookFiles[c.Filename]; !ok {
			continue
		}
		if err := s.ReloadLookNFeel(c.Filename); err != nil {
			s.logger.Error("look reload failed", "resource", c.Filename, "group", c.Group, "error", err)
		}
	}
	return changes
}

// ReloadLookNFeel parses a look-and-feel file again and reapplies the
// looks it defines to every window using them. On a parse error the
// previous looks stay in place.
func (s *System) ReloadLookNFeel(filename string) error {
	group := s.lookFiles[filename]
	names, err := s.looks.LoadFile(filename, group)
	if err != nil {
		return err
	}
	s.lookFiles[filename] = group
	for _, w := range s.windows.Windows() {
		name := w.LookNFeel()
		if name == "" || !slices.Contains(names, name) || w.IsDestroyed() {
			continue
		}
		if err := w.SetLookNFeel(""); err != nil {
			return err
		}
		if err := w.SetLookNFeel(name); err != nil {
			return err
		}
	}
	for _, c := range s.contexts {
		c.MarkAsDirty()
	}
	s.logger.Info("looks reloaded", "resource", filename, "looks", len(names))
	return nil
}
