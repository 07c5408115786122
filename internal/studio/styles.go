package studio

import (
	"slices"
	"strconv"
	"strings"

	"voxtone/internal/catalog"
	"voxtone/internal/store"
)

// SaveStyle creates a custom style when id is empty and otherwise updates the
// custom style with that id. Name and prompt are trimmed. The name must not be
// used by any other style. The saved style becomes the active selection.
func (s *Studio) SaveStyle(id, name, prompt string) (catalog.Style, error) {
	name = strings.TrimSpace(name)
	prompt = strings.TrimSpace(prompt)
	if name == "" || prompt == "" {
		return catalog.Style{}, ErrBlankStyle
	}

	s.mu.Lock()
	if id != "" && !slices.ContainsFunc(s.customs, func(st catalog.Style) bool { return st.ID == id }) {
		s.mu.Unlock()
		if slices.ContainsFunc(catalog.Presets(), func(st catalog.Style) bool { return st.ID == id }) {
			return catalog.Style{}, ErrNotCustomStyle
		}
		return catalog.Style{}, ErrStyleNotFound
	}
	for _, st := range slices.Concat(catalog.Presets(), s.customs) {
		if st.Name == name && (id == "" || st.ID != id) {
			s.mu.Unlock()
			return catalog.Style{}, ErrDuplicateStyle
		}
	}

	var saved catalog.Style
	updated := slices.Clone(s.customs)
	if id != "" {
		for i := range updated {
			if updated[i].ID == id {
				updated[i].Name = name
				updated[i].Prompt = prompt
				saved = updated[i]
			}
		}
	} else {
		saved = catalog.Style{
			ID:     s.newID(updated),
			Name:   name,
			Prompt: prompt,
		}
		updated = append(updated, saved)
	}
	s.customs = updated
	s.styleName = saved.Name
	s.mu.Unlock()

	s.persist.Save(store.KeyCustomStyles, slices.Clone(updated))
	s.log.Info("Style saved", "id", saved.ID, "name", saved.Name)
	s.notify(EventStyles, EventSelection)
	return saved, nil
}

// newID derives a millisecond timestamp id, bumped past any id already taken.
func (s *Studio) newID(customs []catalog.Style) string {
	ms := s.now().UnixMilli()
	for {
		id := strconv.FormatInt(ms, 10)
		if !slices.ContainsFunc(customs, func(st catalog.Style) bool { return st.ID == id }) {
			return id
		}
		ms++
	}
}

// DeleteStyle removes the custom style with the given id once confirm
// approves it, and reports whether it was removed. Deleting the active style
// selects the first preset.
func (s *Studio) DeleteStyle(id string, confirm func(catalog.Style) bool) (bool, error) {
	s.mu.Lock()
	var target catalog.Style
	i := slices.IndexFunc(s.customs, func(st catalog.Style) bool { return st.ID == id })
	if i >= 0 {
		target = s.customs[i]
	}
	s.mu.Unlock()
	if i < 0 {
		if slices.ContainsFunc(catalog.Presets(), func(st catalog.Style) bool { return st.ID == id }) {
			return false, ErrNotCustomStyle
		}
		return false, ErrStyleNotFound
	}

	if confirm != nil && !confirm(target) {
		return false, nil
	}

	s.mu.Lock()
	// the list may have changed while confirm was showing
	i = slices.IndexFunc(s.customs, func(st catalog.Style) bool { return st.ID == id })
	if i < 0 {
		s.mu.Unlock()
		return false, ErrStyleNotFound
	}
	updated := slices.Delete(slices.Clone(s.customs), i, i+1)
	s.customs = updated
	if s.styleName == target.Name {
		s.styleName = catalog.DefaultStyle().Name
	}
	s.mu.Unlock()

	s.persist.Save(store.KeyCustomStyles, slices.Clone(updated))
	s.log.Info("Style deleted", "id", target.ID, "name", target.Name)
	s.notify(EventStyles, EventSelection)
	return true, nil
}
