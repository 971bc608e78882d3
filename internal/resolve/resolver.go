package resolve

import (
	"sync"

	"golang.org/x/sync/singleflight"

	"xmlbind/internal/common"
	"xmlbind/internal/diagnostic"
	"xmlbind/internal/meta"
	"xmlbind/internal/model"
	"xmlbind/internal/scan"
)

// Config holds the host-supplied configuration for one resolution pass.
type Config struct {
	// DefaultScanMode applies to types that do not declare a scan mode.
	// ScanModeDefault here means CommonCase.
	DefaultScanMode meta.ScanMode
	// Converters is the global type-default converter table: declared
	// type name to converter reference. Built once before resolution,
	// immutable during and after.
	Converters map[string]string
}

// effectiveDefault returns the process-wide scan mode fallback.
func (c Config) effectiveDefault() meta.ScanMode {
	if c.DefaultScanMode == meta.ScanModeDefault {
		return meta.ScanModeCommonCase
	}

	return c.DefaultScanMode
}

// entry is the memoization slot of one type. The slot is registered
// before references are chased, so reference cycles terminate, and is
// marked complete once dispatch tables are built. An incomplete slot is
// only ever visible to the goroutine building it.
type entry struct {
	class    *model.AnnotatedClass
	complete bool
}

// outcome is the shared result of one resolution pass.
type outcome struct {
	model *model.BindingModel
	diags *diagnostic.Diagnostics
}

// Resolver performs one batch resolution over a closed descriptor set.
// Safe for concurrent use: overlapping Resolve calls collapse onto one
// pass and observe the same published result.
type Resolver struct {
	set      *meta.DescriptorSet
	composer *scan.Composer
	cfg      Config

	group singleflight.Group

	mu      sync.Mutex
	entries map[meta.TypeName]*entry
	order   []meta.TypeName
	diags   diagnostic.Diagnostics
}

// New creates a resolver over the given descriptor set.
func New(set *meta.DescriptorSet, cfg Config) *Resolver {
	return &Resolver{
		set:      set,
		composer: scan.NewComposer(set, cfg.effectiveDefault()),
		cfg:      cfg,
		entries:  make(map[meta.TypeName]*entry),
	}
}

// Resolve resolves every bound type in the set plus everything they
// reach, and returns the assembled model. Assembly is all-or-nothing:
// any error anywhere in the reachable set voids the model and nil is
// returned alongside the diagnostics.
//
// The singleflight group is the concurrency barrier: overlapping calls
// collapse onto one pass, and nothing is published until every
// reachable type is fully built, dispatch tables included.
func (r *Resolver) Resolve() (*model.BindingModel, *diagnostic.Diagnostics) {
	v, _, _ := r.group.Do("batch", func() (any, error) {
		for _, name := range r.set.Bound() {
			r.resolveType(name)
		}

		return r.publish(), nil
	})

	out := v.(*outcome)

	return out.model, out.diags
}

// ResolvedClass returns the memoized class for a type, if resolution
// completed it. Identical by pointer no matter which reference path
// discovered the type first.
func (r *Resolver) ResolvedClass(name meta.TypeName) (*model.AnnotatedClass, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[name]
	if !ok || !e.complete {
		return nil, false
	}

	return e.class, true
}

// publish snapshots the accumulated state into an immutable outcome.
// Runs inside the singleflight barrier, after every build finished.
func (r *Resolver) publish() *outcome {
	r.mu.Lock()
	defer r.mu.Unlock()

	diags := &diagnostic.Diagnostics{}
	diags.Merge(r.diags)

	if diags.HasErrors() {
		return &outcome{diags: diags}
	}

	classes := make(map[meta.TypeName]*model.AnnotatedClass, len(r.entries))
	for name, e := range r.entries {
		classes[name] = e.class
	}

	return &outcome{
		model: model.NewBindingModel(classes, r.order, r.cfg.Converters),
		diags: diags,
	}
}

// resolveType resolves one type at most once. Only the batch builder
// reaches here, so a registered entry means the type is either done or
// being built higher up the current reference chain; returning in the
// latter case is what terminates cycles.
func (r *Resolver) resolveType(name meta.TypeName) {
	r.mu.Lock()
	_, seen := r.entries[name]
	r.mu.Unlock()

	if seen {
		return
	}

	r.buildType(name)
}

// buildType scans the type, registers the memoization slot, then builds
// dispatch tables and chases references. Registration happens before
// reference chasing so cycles (including self-references) terminate.
func (r *Resolver) buildType(name meta.TypeName) {
	td, _ := r.set.Lookup(name)

	local := &diagnostic.Diagnostics{}
	comp, _ := r.composer.Compose(td, local)

	e := &entry{class: comp.Class}

	r.mu.Lock()
	r.entries[name] = e
	r.order = append(r.order, name)
	r.diags.Merge(*local)
	r.mu.Unlock()

	refDiags := &diagnostic.Diagnostics{}

	for _, b := range comp.Bindings {
		if b.Field.Category != model.CategoryElement {
			continue
		}

		b.Field.Dispatch = r.buildDispatch(td, b, refDiags)
	}

	r.mu.Lock()
	r.diags.Merge(*refDiags)
	e.complete = true
	r.mu.Unlock()
}

// buildDispatch constructs the dispatch table of one element binding
// site. Declared polymorphism pairs make a multi-entry table; without a
// directive the site dispatches on its own XML name, so the runtime has
// a uniform lookup either way.
func (r *Resolver) buildDispatch(td *meta.TypeDescriptor, b scan.Binding, diags *diagnostic.Diagnostics) *model.PolymorphismTable {
	f, m := b.Field, b.Member

	if common.IsEmpty(m.Dispatch) {
		if f.ItemType != "" {
			r.checkReference(td, m, f.ItemType, diags)
		}

		return model.SingleEntry(f.XMLName, f.Type.ItemName())
	}

	table := model.NewPolymorphismTable()

	for _, pair := range m.Dispatch {
		if err := table.Add(pair.Name, pair.Type); err != nil {
			diags.AddError(diagnostic.CodeDuplicateDispatchName, err.Error(), string(td.Name), m.Name)
			continue
		}

		r.checkReference(td, m, pair.Type, diags)
	}

	return table
}

// checkReference validates that a referenced type can itself resolve to
// a class, and resolves it (memoized, recursion-safe).
func (r *Resolver) checkReference(td *meta.TypeDescriptor, m *meta.MemberDescriptor, ref meta.TypeName, diags *diagnostic.Diagnostics) {
	if meta.IsScalarName(string(ref)) {
		diags.Errorf(diagnostic.CodeUnresolvedReference, string(td.Name), m.Name,
			"dispatch target %q is a scalar type and cannot be instantiated from an element", ref)

		return
	}

	refTD, known := r.set.Lookup(ref)
	if !known {
		diags.Errorf(diagnostic.CodeUnresolvedReference, string(td.Name), m.Name,
			"referenced type %q is not part of the binding set", ref)

		return
	}

	if !refTD.Bound {
		diags.Errorf(diagnostic.CodeUnresolvedReference, string(td.Name), m.Name,
			"referenced type %q has not opted into binding", ref)

		return
	}

	r.resolveType(ref)
}
