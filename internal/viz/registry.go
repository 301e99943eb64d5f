package viz

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/rileyhilliard/tally/internal/errors"
)

// Registry owns the live visualizations, keyed by uuid and slot.
type Registry struct {
	env Env

	mu        sync.Mutex
	theme     Theme
	instances map[string]map[string]Visualization
}

// NewRegistry creates an empty registry.
func NewRegistry(env Env) *Registry {
	env = env.withDefaults()
	return &Registry{
		env:       env,
		theme:     env.Theme,
		instances: make(map[string]map[string]Visualization),
	}
}

// Theme returns the current theme.
func (r *Registry) Theme() Theme {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.theme
}

// Create returns the live visualization at (uuid, slot), or creates one.
// A child of "-" means no child. Unknown types register nothing.
func (r *Registry) Create(uuid, slot, name, childName, typeTag string) (Visualization, error) {
	spec := newSpec(uuid, slot, name, childName, typeTag)

	r.mu.Lock()
	defer r.mu.Unlock()

	if v := r.lookup(uuid, slot); v != nil {
		return v, nil
	}
	v, err := r.build(spec)
	if err != nil {
		return nil, err
	}
	r.install(v)
	return v, nil
}

// Replace creates a visualization at (uuid, slot), releasing any occupant.
func (r *Registry) Replace(uuid, slot, name, childName, typeTag string) (Visualization, error) {
	spec := newSpec(uuid, slot, name, childName, typeTag)

	r.mu.Lock()
	defer r.mu.Unlock()

	v, err := r.build(spec)
	if err != nil {
		return nil, err
	}
	r.install(v)
	return v, nil
}

func newSpec(uuid, slot, name, childName, typeTag string) Spec {
	childName = strings.TrimSpace(childName)
	if childName == NoChild {
		childName = ""
	}
	return Spec{
		UUID:   uuid,
		Slot:   slot,
		Metric: strings.TrimSpace(name),
		Child:  childName,
		Type:   strings.TrimSpace(typeTag),
	}
}

// build constructs the visualization for spec.Type. Must be called with
// r.mu held.
func (r *Registry) build(spec Spec) (Visualization, error) {
	kind, ok := KindFor(spec.Type)
	if !ok {
		return nil, errors.New(errors.ErrVisualization,
			fmt.Sprintf("Unknown visualization: %s", spec.Type),
			fmt.Sprintf("Use one of: %s", strings.Join(Types(), ", ")))
	}

	theme := r.currentTheme
	base := &chartBase{spec: spec, kind: kind, env: r.env, theme: theme}

	switch kind {
	case KindCard:
		return &card{spec: spec, env: r.env, theme: theme}, nil
	case KindBar:
		return newBarChart(base), nil
	case KindLine:
		return newLineChart(base), nil
	case KindPropertiesLine:
		return newPropertiesChart(base), nil
	default:
		panic(fmt.Sprintf("viz: unhandled kind %v", kind))
	}
}

// currentTheme is handed to visualizations so they read the theme when
// drawing. It takes r.mu, so it must not be called while r.mu is held.
func (r *Registry) currentTheme() Theme {
	return r.Theme()
}

// install puts v at its key, releasing the previous occupant. Must be
// called with r.mu held.
func (r *Registry) install(v Visualization) {
	spec := v.Spec()
	slots := r.instances[spec.UUID]
	if slots == nil {
		slots = make(map[string]Visualization)
		r.instances[spec.UUID] = slots
	}
	if old := slots[spec.Slot]; old != nil {
		old.Release()
	}
	slots[spec.Slot] = v
}

// lookup must be called with r.mu held.
func (r *Registry) lookup(uuid, slot string) Visualization {
	return r.instances[uuid][slot]
}

// Get returns the live visualization at (uuid, slot), or nil.
func (r *Registry) Get(uuid, slot string) Visualization {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lookup(uuid, slot)
}

// Live returns every live visualization, ordered by uuid then slot.
func (r *Registry) Live() []Visualization {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []Visualization
	for _, slots := range r.instances {
		for _, v := range slots {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].Spec(), out[j].Spec()
		if a.UUID != b.UUID {
			return a.UUID < b.UUID
		}
		return a.Slot < b.Slot
	})
	return out
}

// Release tears down and removes the visualization at (uuid, slot).
func (r *Registry) Release(uuid, slot string) {
	r.mu.Lock()
	v := r.lookup(uuid, slot)
	if v != nil {
		delete(r.instances[uuid], slot)
		if len(r.instances[uuid]) == 0 {
			delete(r.instances, uuid)
		}
	}
	r.mu.Unlock()

	if v != nil {
		v.Release()
	}
}

// ReleaseBlock releases every slot under uuid.
func (r *Registry) ReleaseBlock(uuid string) {
	r.mu.Lock()
	slots := r.instances[uuid]
	delete(r.instances, uuid)
	r.mu.Unlock()

	for _, v := range slots {
		v.Release()
	}
}

// ReleaseAll releases every live visualization.
func (r *Registry) ReleaseAll() {
	r.mu.Lock()
	all := r.instances
	r.instances = make(map[string]map[string]Visualization)
	r.mu.Unlock()

	for _, slots := range all {
		for _, v := range slots {
			v.Release()
		}
	}
}

// ThemeChanged switches the theme and re-runs PostRender on every live
// visualization. Every instance is refreshed even if one fails; the first
// error is returned.
func (r *Registry) ThemeChanged(ctx context.Context, theme Theme) error {
	r.mu.Lock()
	r.theme = theme
	r.mu.Unlock()

	var first error
	for _, v := range r.Live() {
		if err := v.PostRender(ctx); err != nil {
			r.env.Log.Warn("Failed to refresh %s: %v", v.Spec().Slot, err)
			if first == nil {
				first = err
			}
		}
	}
	return first
}

// Navigated releases everything; the host is about to drop its slots.
func (r *Registry) Navigated() {
	r.ReleaseAll()
}

// Mount fills slot with the visualization a directive describes. args are
// the directive arguments. Directives for other renderers are ignored, and
// so are unknown visualization types, after logging.
func (r *Registry) Mount(ctx context.Context, uuid, slot string, args []string) error {
	d, ok := ParseArgs(args)
	if !ok {
		return nil
	}

	if v := r.Get(uuid, slot); v != nil && v.Spec().matches(d) {
		return v.PostRender(ctx)
	}

	// A live occupant with different arguments means the directive was
	// edited. Replace it.
	v, err := r.Replace(uuid, slot, d.Metric, d.Child, d.Type)
	if err != nil {
		r.env.Log.Info("Unknown visualization: %s", d.Type)
		return nil
	}

	r.env.Log.Debug("visualize %s @%s", d.Type, slot)

	markup, err := v.Render(ctx)
	if err != nil {
		r.env.Log.Warn("Failed to render %s: %v", slot, err)
		return err
	}

	// The slot or the registration may have gone away while rendering.
	if r.Get(uuid, slot) != v || !r.env.Host.HasSlot(slot) {
		r.env.Log.Debug("Dropping stale render for %s", slot)
		return nil
	}

	r.env.Host.Provide(slot, providerKey(slot), markup)
	return v.PostRender(ctx)
}

// providerKey names the content a visualization provides for slot.
func providerKey(slot string) string { return "metrics-" + slot }
