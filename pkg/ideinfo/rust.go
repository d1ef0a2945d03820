// Package ideinfo mirrors the IDE info messages produced by the IntelliJ
// aspect as immutable Go values.
//
// Each value converts to and from its wire message, and supports structural
// equality and hashing so it can key sets and maps.
package ideinfo

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/albertocavalcante/ideinfo/pkg/ideinfo/ideinfopb"
	"github.com/cespare/xxhash/v2"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/dynamicpb"
)

// RustIdeInfo is the IDE info specific to Rust rules: the crate sources in
// declaration order and an optional artifact holding the dependency count.
//
// RustIdeInfo is immutable; use RustIdeInfoBuilder to assemble one.
type RustIdeInfo struct {
	sources   []ArtifactLocation
	depsCount Optional[ArtifactLocation]
}

// RustIdeInfoFromProto decodes a RustIdeInfo message. Errors from decoding
// nested ArtifactLocation messages are returned unchanged.
func RustIdeInfoFromProto(m protoreflect.Message) (RustIdeInfo, error) {
	sourcesField, ok1 := messageField(m, ideinfopb.FieldSources, true)
	depsCountField, ok2 := messageField(m, ideinfopb.FieldDepsCount, false)
	if !ok1 || !ok2 {
		return RustIdeInfo{}, fmt.Errorf("%w: %s is not a %s",
			ErrUnexpectedMessage, m.Descriptor().FullName(), ideinfopb.RustIdeInfoName)
	}

	sources, err := mapFromProtos(m.Get(sourcesField).List(), ArtifactLocationFromProto)
	if err != nil {
		return RustIdeInfo{}, err
	}

	var depsCount Optional[ArtifactLocation]
	if m.Has(depsCountField) {
		loc, err := ArtifactLocationFromProto(m.Get(depsCountField).Message())
		if err != nil {
			return RustIdeInfo{}, err
		}
		depsCount = Some(loc)
	}

	return RustIdeInfo{sources: sources, depsCount: depsCount}, nil
}

// ToProto encodes the info as a RustIdeInfo message. deps_count is left
// unset when absent.
func (r RustIdeInfo) ToProto() *dynamicpb.Message {
	m := ideinfopb.NewRustIdeInfo()
	f := ideinfopb.RustIdeInfoFieldSet()

	if len(r.sources) > 0 {
		mapToProtos(m.Mutable(f.Sources).List(), r.sources)
	}
	if loc, ok := r.depsCount.Get(); ok {
		m.Set(f.DepsCount, protoreflect.ValueOfMessage(loc.ToProto()))
	}
	return m
}

// Sources returns a copy of the sources in declaration order. The result is
// never nil.
func (r RustIdeInfo) Sources() []ArtifactLocation {
	if r.sources == nil {
		return []ArtifactLocation{}
	}
	return slices.Clone(r.sources)
}

// DepsCount returns the dependency count artifact, if any.
func (r RustIdeInfo) DepsCount() Optional[ArtifactLocation] {
	return r.depsCount
}

// Equal reports whether both infos have the same sources in the same order
// and the same deps count.
func (r RustIdeInfo) Equal(other RustIdeInfo) bool {
	return slices.EqualFunc(r.sources, other.sources, ArtifactLocation.Equal) &&
		r.depsCount.EqualFunc(other.depsCount, ArtifactLocation.Equal)
}

// Hash returns an xxHash64 over both fields. Equal infos hash equally.
func (r RustIdeInfo) Hash() uint64 {
	d := xxhash.New()
	writeUint64(d, uint64(len(r.sources)))
	for _, src := range r.sources {
		src.writeHash(d)
	}
	loc, ok := r.depsCount.Get()
	writeBool(d, ok)
	if ok {
		loc.writeHash(d)
	}
	return d.Sum64()
}

// LogValue implements slog.LogValuer.
func (r RustIdeInfo) LogValue() slog.Value {
	attrs := []slog.Attr{slog.Int("sources", len(r.sources))}
	if loc, ok := r.depsCount.Get(); ok {
		attrs = append(attrs, slog.String("deps_count", loc.ExecutionRootRelativePath()))
	}
	return slog.GroupValue(attrs...)
}

// RustIdeInfoBuilder accumulates fields for a RustIdeInfo.
type RustIdeInfoBuilder struct {
	sources   []ArtifactLocation
	depsCount Optional[ArtifactLocation]
}

// NewRustIdeInfoBuilder returns an empty builder. Building it without any
// calls yields an info with no sources and no deps count.
func NewRustIdeInfoBuilder() *RustIdeInfoBuilder {
	return &RustIdeInfoBuilder{}
}

// AddSource appends a source file.
func (b *RustIdeInfoBuilder) AddSource(src ArtifactLocation) *RustIdeInfoBuilder {
	b.sources = append(b.sources, src)
	return b
}

// AddSources appends source files in order.
func (b *RustIdeInfoBuilder) AddSources(srcs ...ArtifactLocation) *RustIdeInfoBuilder {
	b.sources = append(b.sources, srcs...)
	return b
}

// SetDepsCount sets the dependency count artifact.
func (b *RustIdeInfoBuilder) SetDepsCount(loc ArtifactLocation) *RustIdeInfoBuilder {
	b.depsCount = Some(loc)
	return b
}

// ClearDepsCount removes the dependency count artifact.
func (b *RustIdeInfoBuilder) ClearDepsCount() *RustIdeInfoBuilder {
	b.depsCount = None[ArtifactLocation]()
	return b
}

// Build returns a snapshot of the accumulated fields. Later changes to the
// builder do not affect it.
func (b *RustIdeInfoBuilder) Build() RustIdeInfo {
	sources := make([]ArtifactLocation, len(b.sources))
	copy(sources, b.sources)
	return RustIdeInfo{sources: sources, depsCount: b.depsCount}
}
