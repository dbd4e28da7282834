package lightpb

import (
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/descriptorpb"
)

// FileName is the proto file the service is registered under
const FileName = "ambientlight/v1/ambientlight.proto"

// File is the registered descriptor of the service. gRPC reflection
// serves it to clients such as grpcurl.
var File protoreflect.FileDescriptor

func init() {
	method := func(name, in, out string) *descriptorpb.MethodDescriptorProto {
		return &descriptorpb.MethodDescriptorProto{
			Name:       proto.String(name),
			InputType:  proto.String(".google.protobuf." + in),
			OutputType: proto.String(".google.protobuf." + out),
		}
	}

	fdp := &descriptorpb.FileDescriptorProto{
		Name:    proto.String(FileName),
		Package: proto.String("ambientlight.v1"),
		Syntax:  proto.String("proto3"),
		Dependency: []string{
			"google/protobuf/empty.proto",
			"google/protobuf/struct.proto",
			"google/protobuf/wrappers.proto",
		},
		Service: []*descriptorpb.ServiceDescriptorProto{{
			Name: proto.String("AmbientLightService"),
			Method: []*descriptorpb.MethodDescriptorProto{
				method("GetStatus", "Empty", "Struct"),
				method("SetThresholds", "Struct", "Struct"),
				method("SetEnabled", "BoolValue", "Struct"),
				method("SubmitSample", "Struct", "Struct"),
				method("ListEvents", "Int64Value", "ListValue"),
			},
		}},
	}

	fd, err := protodesc.NewFile(fdp, protoregistry.GlobalFiles)
	if err != nil {
		panic("lightpb: build descriptor: " + err.Error())
	}
	if err := protoregistry.GlobalFiles.RegisterFile(fd); err != nil {
		panic("lightpb: register descriptor: " + err.Error())
	}
	File = fd
}
