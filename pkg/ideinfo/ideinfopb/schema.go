// Package ideinfopb holds the wire schema of the IDE info messages emitted by
// the IntelliJ aspect. The schema is assembled from descriptor protos at
// runtime and messages are backed by dynamicpb, so no generated code is needed.
package ideinfopb

import (
	"fmt"
	"sync"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/descriptorpb"
	"google.golang.org/protobuf/types/dynamicpb"
)

// FileName is the path of the schema file the messages are declared in.
const FileName = "intellij_ide_info.proto"

// Package is the proto package of the schema.
const Package protoreflect.FullName = "blaze.intellij"

// Message names.
const (
	ArtifactLocationName protoreflect.FullName = Package + ".ArtifactLocation"
	RustIdeInfoName      protoreflect.FullName = Package + ".RustIdeInfo"
)

// Field names, shared by every encoding of the schema.
const (
	FieldRelativePath              protoreflect.Name = "relative_path"
	FieldIsSource                  protoreflect.Name = "is_source"
	FieldIsExternal                protoreflect.Name = "is_external"
	FieldRootExecutionPathFragment protoreflect.Name = "root_execution_path_fragment"

	FieldSources   protoreflect.Name = "sources"
	FieldDepsCount protoreflect.Name = "deps_count"
)

// ArtifactLocationFields are the field descriptors of ArtifactLocation.
type ArtifactLocationFields struct {
	RelativePath              protoreflect.FieldDescriptor
	IsSource                  protoreflect.FieldDescriptor
	IsExternal                protoreflect.FieldDescriptor
	RootExecutionPathFragment protoreflect.FieldDescriptor
}

// RustIdeInfoFields are the field descriptors of RustIdeInfo.
type RustIdeInfoFields struct {
	Sources   protoreflect.FieldDescriptor
	DepsCount protoreflect.FieldDescriptor
}

type schema struct {
	file             protoreflect.FileDescriptor
	artifactLocation protoreflect.MessageDescriptor
	rustIdeInfo      protoreflect.MessageDescriptor
	locationFields   ArtifactLocationFields
	rustFields       RustIdeInfoFields
}

// load builds the schema exactly once. The descriptor protos are constants,
// so a failure here is a programming error.
var load = sync.OnceValue(func() *schema {
	fd, err := protodesc.NewFile(fileProto(), nil)
	if err != nil {
		panic(fmt.Sprintf("ideinfopb: invalid schema: %v", err))
	}

	s := &schema{
		file:             fd,
		artifactLocation: fd.Messages().ByName(ArtifactLocationName.Name()),
		rustIdeInfo:      fd.Messages().ByName(RustIdeInfoName.Name()),
	}

	loc := s.artifactLocation.Fields()
	s.locationFields = ArtifactLocationFields{
		RelativePath:              loc.ByName(FieldRelativePath),
		IsSource:                  loc.ByName(FieldIsSource),
		IsExternal:                loc.ByName(FieldIsExternal),
		RootExecutionPathFragment: loc.ByName(FieldRootExecutionPathFragment),
	}

	rust := s.rustIdeInfo.Fields()
	s.rustFields = RustIdeInfoFields{
		Sources:   rust.ByName(FieldSources),
		DepsCount: rust.ByName(FieldDepsCount),
	}
	return s
})

// File returns the schema file descriptor.
func File() protoreflect.FileDescriptor { return load().file }

// ArtifactLocation returns the ArtifactLocation message descriptor.
func ArtifactLocation() protoreflect.MessageDescriptor { return load().artifactLocation }

// RustIdeInfo returns the RustIdeInfo message descriptor.
func RustIdeInfo() protoreflect.MessageDescriptor { return load().rustIdeInfo }

// ArtifactLocationFieldSet returns the ArtifactLocation field descriptors.
func ArtifactLocationFieldSet() ArtifactLocationFields { return load().locationFields }

// RustIdeInfoFieldSet returns the RustIdeInfo field descriptors.
func RustIdeInfoFieldSet() RustIdeInfoFields { return load().rustFields }

// NewArtifactLocation returns an empty ArtifactLocation message.
func NewArtifactLocation() *dynamicpb.Message {
	return dynamicpb.NewMessage(ArtifactLocation())
}

// NewRustIdeInfo returns an empty RustIdeInfo message.
func NewRustIdeInfo() *dynamicpb.Message {
	return dynamicpb.NewMessage(RustIdeInfo())
}

func fileProto() *descriptorpb.FileDescriptorProto {
	return &descriptorpb.FileDescriptorProto{
		Name:    proto.String(FileName),
		Package: proto.String(string(Package)),
		Syntax:  proto.String("proto3"),
		MessageType: []*descriptorpb.DescriptorProto{
			{
				Name: proto.String(string(ArtifactLocationName.Name())),
				Field: []*descriptorpb.FieldDescriptorProto{
					scalarField(FieldRelativePath, "relativePath", 2, descriptorpb.FieldDescriptorProto_TYPE_STRING),
					scalarField(FieldIsSource, "isSource", 3, descriptorpb.FieldDescriptorProto_TYPE_BOOL),
					scalarField(FieldIsExternal, "isExternal", 4, descriptorpb.FieldDescriptorProto_TYPE_BOOL),
					scalarField(FieldRootExecutionPathFragment, "rootExecutionPathFragment", 5, descriptorpb.FieldDescriptorProto_TYPE_STRING),
				},
			},
			{
				Name: proto.String(string(RustIdeInfoName.Name())),
				Field: []*descriptorpb.FieldDescriptorProto{
					messageField(FieldSources, "sources", 1, descriptorpb.FieldDescriptorProto_LABEL_REPEATED, ArtifactLocationName),
					messageField(FieldDepsCount, "depsCount", 2, descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL, ArtifactLocationName),
				},
			},
		},
	}
}

func scalarField(name protoreflect.Name, jsonName string, number int32, typ descriptorpb.FieldDescriptorProto_Type) *descriptorpb.FieldDescriptorProto {
	return &descriptorpb.FieldDescriptorProto{
		Name:     proto.String(string(name)),
		JsonName: proto.String(jsonName),
		Number:   proto.Int32(number),
		Label:    descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL.Enum(),
		Type:     typ.Enum(),
	}
}

func messageField(name protoreflect.Name, jsonName string, number int32, label descriptorpb.FieldDescriptorProto_Label, msg protoreflect.FullName) *descriptorpb.FieldDescriptorProto {
	return &descriptorpb.FieldDescriptorProto{
		Name:     proto.String(string(name)),
		JsonName: proto.String(jsonName),
		Number:   proto.Int32(number),
		Label:    label.Enum(),
		Type:     descriptorpb.FieldDescriptorProto_TYPE_MESSAGE.Enum(),
		TypeName: proto.String("." + string(msg)),
	}
}
