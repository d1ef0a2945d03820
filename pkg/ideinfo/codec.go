package ideinfo

import (
	"fmt"
	"strings"

	"github.com/albertocavalcante/ideinfo/pkg/ideinfo/ideinfopb"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/encoding/prototext"
	"google.golang.org/protobuf/proto"
)

// Format is a wire encoding of the IDE info messages.
type Format string

const (
	FormatBinary Format = "binary"
	FormatJSON   Format = "json"
	FormatText   Format = "text"
)

// Formats lists the supported formats.
var Formats = []Format{FormatBinary, FormatJSON, FormatText}

// ParseFormat parses a format name. "proto" and "pb" are accepted for binary,
// "textproto" and "txtpb" for text.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "binary", "proto", "pb":
		return FormatBinary, nil
	case "json":
		return FormatJSON, nil
	case "text", "textproto", "txtpb":
		return FormatText, nil
	}
	return "", fmt.Errorf("unknown format %q (want binary, json or text)", s)
}

// MarshalOptions configures Marshal.
type MarshalOptions struct {
	Format Format

	// Multiline pretty-prints json and text output.
	Multiline bool

	// UseProtoNames emits snake_case json field names.
	UseProtoNames bool

	// EmitUnpopulated emits json fields holding default values.
	EmitUnpopulated bool
}

// Marshal encodes info in the requested format. Binary output is
// deterministic.
func Marshal(info RustIdeInfo, opts MarshalOptions) ([]byte, error) {
	m := info.ToProto()

	var (
		data []byte
		err  error
	)
	switch opts.Format {
	case FormatBinary, "":
		data, err = proto.MarshalOptions{Deterministic: true}.Marshal(m)
	case FormatJSON:
		mo := protojson.MarshalOptions{
			UseProtoNames:   opts.UseProtoNames,
			EmitUnpopulated: opts.EmitUnpopulated,
		}
		if opts.Multiline {
			mo.Multiline = true
			mo.Indent = "  "
		}
		data, err = mo.Marshal(m)
	case FormatText:
		mo := prototext.MarshalOptions{}
		if opts.Multiline {
			mo.Multiline = true
			mo.Indent = "  "
		}
		data, err = mo.Marshal(m)
	default:
		return nil, fmt.Errorf("unknown format %q", opts.Format)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s as %s: %w", ideinfopb.RustIdeInfoName, opts.Format, err)
	}
	return data, nil
}

// Unmarshal decodes a RustIdeInfo message in the given format.
func Unmarshal(data []byte, format Format) (RustIdeInfo, error) {
	m := ideinfopb.NewRustIdeInfo()

	var err error
	switch format {
	case FormatBinary, "":
		err = proto.Unmarshal(data, m)
	case FormatJSON:
		err = protojson.Unmarshal(data, m)
	case FormatText:
		err = prototext.Unmarshal(data, m)
	default:
		return RustIdeInfo{}, fmt.Errorf("unknown format %q", format)
	}
	if err != nil {
		return RustIdeInfo{}, fmt.Errorf("failed to decode %s from %s: %w", ideinfopb.RustIdeInfoName, format, err)
	}

	return RustIdeInfoFromProto(m)
}
