package ideinfo

import (
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/dynamicpb"
)

// ProtoWrapper is implemented by values that mirror a wire message.
type ProtoWrapper interface {
	ToProto() *dynamicpb.Message
}

// mapFromProtos decodes every message in list, keeping order. The first
// error from fromProto is returned as is.
func mapFromProtos[T any](list protoreflect.List, fromProto func(protoreflect.Message) (T, error)) ([]T, error) {
	out := make([]T, 0, list.Len())
	for i := range list.Len() {
		v, err := fromProto(list.Get(i).Message())
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// mapToProtos appends the wire form of every item to list, keeping order.
func mapToProtos[W ProtoWrapper](list protoreflect.List, items []W) {
	for _, item := range items {
		list.Append(protoreflect.ValueOfMessage(item.ToProto()))
	}
}

// messageField resolves a message-typed field by name on the message's own
// descriptor, so generated and dynamic messages of the same schema both work.
func messageField(m protoreflect.Message, name protoreflect.Name, repeated bool) (protoreflect.FieldDescriptor, bool) {
	fd := m.Descriptor().Fields().ByName(name)
	if fd == nil || fd.Message() == nil || fd.IsList() != repeated {
		return nil, false
	}
	return fd, true
}

// scalarField resolves a singular scalar field of the given kind by name.
func scalarField(m protoreflect.Message, name protoreflect.Name, kind protoreflect.Kind) (protoreflect.FieldDescriptor, bool) {
	fd := m.Descriptor().Fields().ByName(name)
	if fd == nil || fd.Kind() != kind || fd.IsList() {
		return nil, false
	}
	return fd, true
}
