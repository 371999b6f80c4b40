// Package v1alpha1 handles the character sheet grpc service interface.
//
// Messages on the wire are google.protobuf.Struct values whose fields
// follow the JSON shape of the types in this package.
package v1alpha1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified grpc service name
const ServiceName = "rpgsheet.api.v1alpha1.CharacterSheetService"

// Full method names
const (
	CreateCharacterFullMethodName = "/" + ServiceName + "/CreateCharacter"
	GetCharacterFullMethodName    = "/" + ServiceName + "/GetCharacter"
	ListCharactersFullMethodName  = "/" + ServiceName + "/ListCharacters"
	DeleteCharacterFullMethodName = "/" + ServiceName + "/DeleteCharacter"
	ImportCharacterFullMethodName = "/" + ServiceName + "/ImportCharacter"
	ExportCharacterFullMethodName = "/" + ServiceName + "/ExportCharacter"
	ApplyMutationFullMethodName   = "/" + ServiceName + "/ApplyMutation"
)

// CharacterSheetServiceServer is the server API for the character sheet service
type CharacterSheetServiceServer interface {
	CreateCharacter(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	GetCharacter(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	ListCharacters(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	DeleteCharacter(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	ImportCharacter(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	ExportCharacter(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	ApplyMutation(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

type unaryMethod func(srv CharacterSheetServiceServer, ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)

func unaryHandler(fullMethod string, call unaryMethod) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(CharacterSheetServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(CharacterSheetServiceServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// CharacterSheetServiceDesc is the grpc.ServiceDesc for the character sheet service
var CharacterSheetServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CharacterSheetServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "CreateCharacter",
			Handler:    unaryHandler(CreateCharacterFullMethodName, CharacterSheetServiceServer.CreateCharacter),
		},
		{
			MethodName: "GetCharacter",
			Handler:    unaryHandler(GetCharacterFullMethodName, CharacterSheetServiceServer.GetCharacter),
		},
		{
			MethodName: "ListCharacters",
			Handler:    unaryHandler(ListCharactersFullMethodName, CharacterSheetServiceServer.ListCharacters),
		},
		{
			MethodName: "DeleteCharacter",
			Handler:    unaryHandler(DeleteCharacterFullMethodName, CharacterSheetServiceServer.DeleteCharacter),
		},
		{
			MethodName: "ImportCharacter",
			Handler:    unaryHandler(ImportCharacterFullMethodName, CharacterSheetServiceServer.ImportCharacter),
		},
		{
			MethodName: "ExportCharacter",
			Handler:    unaryHandler(ExportCharacterFullMethodName, CharacterSheetServiceServer.ExportCharacter),
		},
		{
			MethodName: "ApplyMutation",
			Handler:    unaryHandler(ApplyMutationFullMethodName, CharacterSheetServiceServer.ApplyMutation),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "rpgsheet/api/v1alpha1/character_sheet.proto",
}

// RegisterCharacterSheetServiceServer registers the service on a grpc server
func RegisterCharacterSheetServiceServer(s grpc.ServiceRegistrar, srv CharacterSheetServiceServer) {
	s.RegisterService(&CharacterSheetServiceDesc, srv)
}
