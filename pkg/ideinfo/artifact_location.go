package ideinfo

import (
	"encoding/binary"
	"fmt"
	"hash"
	"log/slog"
	"path"

	"github.com/albertocavalcante/ideinfo/pkg/ideinfo/ideinfopb"
	"github.com/cespare/xxhash/v2"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/dynamicpb"
)

// ArtifactLocation identifies a file produced or consumed by a target,
// relative to a root under the execution root.
type ArtifactLocation struct {
	// RelativePath is the path relative to the root, e.g. "src/lib.rs".
	RelativePath string

	// RootExecutionPathFragment is the root relative to the execution root,
	// e.g. "bazel-out/k8-fastbuild/bin". Empty for source files in the main
	// repository.
	RootExecutionPathFragment string

	// IsSource is true for source files, false for generated files.
	IsSource bool

	// IsExternal is true for files from an external repository.
	IsExternal bool
}

// ArtifactLocationFromProto decodes an ArtifactLocation message. Messages
// missing any of the ArtifactLocation fields are rejected with
// ErrUnexpectedMessage.
func ArtifactLocationFromProto(m protoreflect.Message) (ArtifactLocation, error) {
	relativePath, ok1 := scalarField(m, ideinfopb.FieldRelativePath, protoreflect.StringKind)
	isSource, ok2 := scalarField(m, ideinfopb.FieldIsSource, protoreflect.BoolKind)
	isExternal, ok3 := scalarField(m, ideinfopb.FieldIsExternal, protoreflect.BoolKind)
	root, ok4 := scalarField(m, ideinfopb.FieldRootExecutionPathFragment, protoreflect.StringKind)
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return ArtifactLocation{}, fmt.Errorf("%w: %s is not an %s",
			ErrUnexpectedMessage, m.Descriptor().FullName(), ideinfopb.ArtifactLocationName)
	}

	return ArtifactLocation{
		RelativePath:              m.Get(relativePath).String(),
		RootExecutionPathFragment: m.Get(root).String(),
		IsSource:                  m.Get(isSource).Bool(),
		IsExternal:                m.Get(isExternal).Bool(),
	}, nil
}

// ToProto encodes the location as an ArtifactLocation message.
func (a ArtifactLocation) ToProto() *dynamicpb.Message {
	m := ideinfopb.NewArtifactLocation()
	f := ideinfopb.ArtifactLocationFieldSet()

	if a.RelativePath != "" {
		m.Set(f.RelativePath, protoreflect.ValueOfString(a.RelativePath))
	}
	if a.RootExecutionPathFragment != "" {
		m.Set(f.RootExecutionPathFragment, protoreflect.ValueOfString(a.RootExecutionPathFragment))
	}
	if a.IsSource {
		m.Set(f.IsSource, protoreflect.ValueOfBool(true))
	}
	if a.IsExternal {
		m.Set(f.IsExternal, protoreflect.ValueOfBool(true))
	}
	return m
}

// ExecutionRootRelativePath returns the path of the file relative to the
// execution root.
func (a ArtifactLocation) ExecutionRootRelativePath() string {
	if a.RootExecutionPathFragment == "" {
		return a.RelativePath
	}
	return path.Join(a.RootExecutionPathFragment, a.RelativePath)
}

// Equal reports whether a and other describe the same file.
func (a ArtifactLocation) Equal(other ArtifactLocation) bool {
	return a == other
}

// Hash returns an xxHash64 of the location, consistent with Equal.
func (a ArtifactLocation) Hash() uint64 {
	d := xxhash.New()
	a.writeHash(d)
	return d.Sum64()
}

// writeHash feeds a length-prefixed encoding of every field to h.
func (a ArtifactLocation) writeHash(h hash.Hash64) {
	writeString(h, a.RelativePath)
	writeString(h, a.RootExecutionPathFragment)
	writeBool(h, a.IsSource)
	writeBool(h, a.IsExternal)
}

func (a ArtifactLocation) String() string {
	return a.ExecutionRootRelativePath()
}

// LogValue implements slog.LogValuer.
func (a ArtifactLocation) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("path", a.RelativePath),
		slog.String("root", a.RootExecutionPathFragment),
		slog.Bool("source", a.IsSource),
		slog.Bool("external", a.IsExternal),
	)
}

func writeUint64(h hash.Hash64, v uint64) {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], v)
	_, _ = h.Write(buf[:])
}

func writeString(h hash.Hash64, s string) {
	writeUint64(h, uint64(len(s)))
	_, _ = h.Write([]byte(s))
}

func writeBool(h hash.Hash64, b bool) {
	if b {
		_, _ = h.Write([]byte{1})
		return
	}
	_, _ = h.Write([]byte{0})
}
